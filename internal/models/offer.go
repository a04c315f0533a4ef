package models

import (
	"time"

	"gorm.io/gorm"
)

type OfferStatus string

const (
	OfferStatusDraft    OfferStatus = "DRAFT"
	OfferStatusSent     OfferStatus = "SENT"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusDeclined OfferStatus = "DECLINED"
)

type Offer struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	ApplicationID uint64         `gorm:"not null;index" json:"application_id"`
	RoleID        uint64         `gorm:"not null;index" json:"role_id"`
	EmailTemplate string         `gorm:"type:text" json:"email_template"`
	ReplyToken    string         `gorm:"type:varchar(36);uniqueIndex" json:"-"`
	ExpiresAt     time.Time      `gorm:"not null" json:"expires_at"`
	Status        OfferStatus    `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Role        Role        `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// Expired reports whether the offer can no longer be replied to at t.
func (o *Offer) Expired(t time.Time) bool {
	return !t.Before(o.ExpiresAt)
}
