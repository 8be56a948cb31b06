package seeders

import (
	"log"

	"gorm.io/gorm"

	"towing-booking/models/service"
)

// SeedServices ensures the catalog contains the standard towing and roadside
// offerings. Existing rows (matched by slug) are left untouched.
func SeedServices(db *gorm.DB) {
	log.Printf("🔍 Checking service catalog data integrity...")

	services := []service.Service{
		{
			Title:       "Derek Mobil Standar",
			Slug:        "derek-mobil-standar",
			Description: "Layanan derek untuk mobil sedan, city car, dan hatchback dalam kota.",
			Price:       250000,
			PricePerKm:  10000,
			Type:        service.ServiceTypeTransport,
			IsActive:    true,
		},
		{
			Title:       "Derek Mobil Besar",
			Slug:        "derek-mobil-besar",
			Description: "Layanan derek untuk SUV, MPV besar, dan kendaraan niaga ringan.",
			Price:       400000,
			PricePerKm:  15000,
			Type:        service.ServiceTypeTransport,
			IsActive:    true,
		},
		{
			Title:       "Derek Antar Kota",
			Slug:        "derek-antar-kota",
			Description: "Pengiriman kendaraan antar kota dengan towing gendong.",
			Price:       750000,
			PricePerKm:  8000,
			Type:        service.ServiceTypeTransport,
			IsActive:    true,
		},
		{
			Title:       "Jumper Aki",
			Slug:        "jumper-aki",
			Description: "Bantuan jumper aki di lokasi untuk kendaraan yang mogok.",
			Price:       150000,
			PricePerKm:  0,
			Type:        service.ServiceTypeOnSite,
			IsActive:    true,
		},
		{
			Title:       "Ganti Ban Darurat",
			Slug:        "ganti-ban-darurat",
			Description: "Penggantian ban di lokasi, termasuk bantuan ban serep.",
			Price:       100000,
			PricePerKm:  0,
			Type:        service.ServiceTypeOnSite,
			IsActive:    true,
		},
	}

	var existing []service.Service
	if err := db.Find(&existing).Error; err != nil {
		log.Printf("❌ Failed to load existing services: %v", err)
		return
	}

	existingSlugs := make(map[string]bool, len(existing))
	for _, s := range existing {
		existingSlugs[s.Slug] = true
	}

	var missing []service.Service
	for _, s := range services {
		if !existingSlugs[s.Slug] {
			missing = append(missing, s)
		}
	}

	log.Printf("📊 Data integrity check:")
	log.Printf("   Expected services: %d", len(services))
	log.Printf("   Existing services: %d", len(existing))
	log.Printf("   Missing services: %d", len(missing))

	if len(missing) == 0 {
		log.Printf("✅ All services are already present. No seeding needed.")
		return
	}

	log.Printf("🌱 Seeding %d missing services...", len(missing))

	successCount := 0
	failureCount := 0
	for _, s := range missing {
		if err := db.Create(&s).Error; err != nil {
			log.Printf("❌ Failed to seed service %s: %v", s.Slug, err)
			failureCount++
		} else {
			log.Printf("✅ Added: %s", s.Title)
			successCount++
		}
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d services, %d failures", successCount, failureCount)
}
