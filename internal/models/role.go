package models

import (
	"time"

	"gorm.io/gorm"
)

type Role struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	CampaignID   uint64         `gorm:"not null;index" json:"campaign_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	MinAvailable uint32         `gorm:"not null;default:1" json:"min_available"`
	MaxAvailable uint32         `gorm:"not null;default:1" json:"max_available"`
	Finalised    bool           `gorm:"not null;default:false" json:"finalised"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Campaign     Campaign      `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	Applications []Application `gorm:"foreignKey:RoleID" json:"applications,omitempty"`
	Questions    []Question    `gorm:"many2many:role_questions" json:"questions,omitempty"`
}
