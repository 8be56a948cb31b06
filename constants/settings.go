package constants

// Setting keys used across the site.
const (
	SettingSiteTitle       = "site_title"
	SettingSiteDescription = "site_description"
	SettingBusinessName    = "business_name"
	SettingLogoURL         = "logo_url"
	SettingContactPhone    = "contact_phone"
	SettingHeroTitle       = "hero_title"
	SettingHeroDescription = "hero_description"
)
