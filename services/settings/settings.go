package settings

import (
	"gorm.io/gorm"

	settingModel "towing-booking/models/setting"
)

// Provider hands out site-wide configuration values. It is injected wherever
// business settings are needed instead of being read through package-level
// state, so tests can substitute a fixed map.
type Provider interface {
	Get(key string) (string, error)
	All() (map[string]string, error)
}

type gormProvider struct {
	db *gorm.DB
}

// NewProvider returns a Provider backed by the settings table.
func NewProvider(db *gorm.DB) Provider {
	return &gormProvider{db: db}
}

func (p *gormProvider) Get(key string) (string, error) {
	var row settingModel.Setting
	if err := p.db.Where("key = ?", key).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil
		}
		return "", err
	}
	return row.Value, nil
}

func (p *gormProvider) All() (map[string]string, error) {
	var rows []settingModel.Setting
	if err := p.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	settingsMap := make(map[string]string, len(rows))
	for _, s := range rows {
		settingsMap[s.Key] = s.Value
	}
	return settingsMap, nil
}

// StaticProvider serves a fixed settings map; used by tests.
type StaticProvider map[string]string

func (p StaticProvider) Get(key string) (string, error) {
	return p[key], nil
}

func (p StaticProvider) All() (map[string]string, error) {
	return p, nil
}
