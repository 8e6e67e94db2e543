package models

import "time"

// SiteSettingsKey is the fixed document key for the settings singleton.
// Exactly one logical instance exists; reads upsert the defaults.
const SiteSettingsKey = "default"

// SiteSettings is the singleton document driving the public site header.
type SiteSettings struct {
	ID          string    `bson:"_id" json:"-"`
	CompanyName string    `bson:"company_name" json:"companyName"`
	Tagline     string    `bson:"tagline" json:"tagline"`
	LogoURL     string    `bson:"logo_url" json:"logoUrl"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultSiteSettings returns the instance served before any admin write.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:          SiteSettingsKey,
		CompanyName: "G.M.B Travels Kashmir",
		Tagline:     "Explore the Valley with us",
		LogoURL:     "/uploads/logo.png",
	}
}

// UpdateSiteSettingsPayload replaces the whole singleton; there is no
// partial-update path for settings.
type UpdateSiteSettingsPayload struct {
	CompanyName string `json:"companyName" binding:"required"`
	Tagline     string `json:"tagline" binding:"required"`
	LogoURL     string `json:"logoUrl" binding:"required"`
}
