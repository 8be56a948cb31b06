package seeders

import (
	"log"

	"gorm.io/gorm"

	"towing-booking/constants"
	"towing-booking/models/setting"
)

// SeedSettings inserts the default site settings for keys that do not exist
// yet. Values staff already changed are never overwritten.
func SeedSettings(db *gorm.DB) {
	log.Printf("🔍 Checking site settings...")

	defaults := map[string]string{
		constants.SettingSiteTitle:       "Jasa Derek Mobil 24 Jam",
		constants.SettingSiteDescription: "Layanan derek dan bantuan darurat kendaraan, siaga 24 jam.",
		constants.SettingBusinessName:    "Derek Nusantara",
		constants.SettingLogoURL:         "",
		constants.SettingContactPhone:    "081234567890",
		constants.SettingHeroTitle:       "Mogok di jalan? Kami jemput.",
		constants.SettingHeroDescription: "Pesan derek atau bantuan darurat dan pantau driver secara langsung.",
	}

	successCount := 0
	for key, value := range defaults {
		var existing setting.Setting
		err := db.Where("key = ?", key).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("❌ Failed to check setting %s: %v", key, err)
			continue
		}

		if err := db.Create(&setting.Setting{Key: key, Value: value}).Error; err != nil {
			log.Printf("❌ Failed to seed setting %s: %v", key, err)
		} else {
			log.Printf("✅ Added setting: %s", key)
			successCount++
		}
	}

	if successCount == 0 {
		log.Printf("✅ All settings are already present. No seeding needed.")
	} else {
		log.Printf("🎉 Seeded %d settings", successCount)
	}
}
