package models

import (
	"time"

	"gorm.io/gorm"
)

type Campaign struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	OrganisationID uint64         `gorm:"not null;index" json:"organisation_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	BannerRef      *string        `gorm:"type:varchar(36)" json:"banner_ref,omitempty"`
	StartsAt       time.Time      `gorm:"not null" json:"starts_at"`
	EndsAt         time.Time      `gorm:"not null" json:"ends_at"`
	Published      bool           `gorm:"not null;default:false" json:"published"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organisation Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
	Roles        []Role       `gorm:"foreignKey:CampaignID" json:"roles,omitempty"`
	Questions    []Question   `gorm:"foreignKey:CampaignID" json:"questions,omitempty"`
}

// IsOpenAt reports whether t falls within the campaign's half-open
// [StartsAt, EndsAt) application window.
func (c *Campaign) IsOpenAt(t time.Time) bool {
	return !t.Before(c.StartsAt) && t.Before(c.EndsAt)
}
