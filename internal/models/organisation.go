package models

import (
	"time"

	"gorm.io/gorm"
)

type Organisation struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	LogoRef    *string        `gorm:"type:varchar(36)" json:"logo_ref,omitempty"`
	InviteCode string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members   []Membership `gorm:"foreignKey:OrganisationID" json:"members,omitempty"`
	Campaigns []Campaign   `gorm:"foreignKey:OrganisationID" json:"campaigns,omitempty"`
}
