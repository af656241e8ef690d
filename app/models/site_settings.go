package models

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
)

// Setting represents one site configuration row
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:255;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	Type      string    `gorm:"size:50;not null" json:"type"` // string, boolean, integer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SiteSettings is the in-memory view of the settings table
type SiteSettings struct {
	SiteTitle           string `json:"site_title"`
	SiteDescription     string `json:"site_description"`
	ContactEmail        string `json:"contact_email"`
	ApplicationsEnabled bool   `json:"applications_enabled"`
	LeadsEnabled        bool   `json:"leads_enabled"`
}

var (
	siteSettings *SiteSettings
	settingsMu   sync.RWMutex
)

// GetSiteSettings returns the current site settings
func GetSiteSettings() *SiteSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return siteSettings
}

// LoadSiteSettings loads settings from database into memory
func LoadSiteSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	siteSettings = &SiteSettings{
		SiteTitle:           "LocalPages",
		SiteDescription:     "Local business directory",
		ContactEmail:        "",
		ApplicationsEnabled: true,
		LeadsEnabled:        true,
	}

	var settings []Setting
	if err := db.Find(&settings).Error; err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	for _, setting := range settings {
		switch setting.Key {
		case "site_title":
			siteSettings.SiteTitle = setting.Value
		case "site_description":
			siteSettings.SiteDescription = setting.Value
		case "contact_email":
			siteSettings.ContactEmail = setting.Value
		case "applications_enabled":
			siteSettings.ApplicationsEnabled = setting.Value == "true"
		case "leads_enabled":
			siteSettings.LeadsEnabled = setting.Value == "true"
		}
	}

	return nil
}

// SaveSiteSettings writes the given settings back to the database
func SaveSiteSettings(db *gorm.DB, s *SiteSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	rows := []Setting{
		{Key: "site_title", Value: s.SiteTitle, Type: "string"},
		{Key: "site_description", Value: s.SiteDescription, Type: "string"},
		{Key: "contact_email", Value: s.ContactEmail, Type: "string"},
		{Key: "applications_enabled", Value: boolToString(s.ApplicationsEnabled), Type: "boolean"},
		{Key: "leads_enabled", Value: boolToString(s.LeadsEnabled), Type: "boolean"},
	}

	for _, row := range rows {
		var existing Setting
		err := db.Where("setting_key = ?", row.Key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&row).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		existing.Value = row.Value
		existing.Type = row.Type
		if err := db.Save(&existing).Error; err != nil {
			return err
		}
	}

	siteSettings = s
	return nil
}

func boolToString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
