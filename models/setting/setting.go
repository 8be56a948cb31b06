package setting

import (
	"time"
)

// Setting is a single key/value row of site-wide configuration
// (business name, contact phone, hero copy, ...).
type Setting struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key   string `gorm:"type:varchar(255);not null;unique" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}
