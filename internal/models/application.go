package models

import (
	"time"

	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft      ApplicationStatus = "DRAFT"
	ApplicationStatusPending    ApplicationStatus = "PENDING"
	ApplicationStatusRejected   ApplicationStatus = "REJECTED"
	ApplicationStatusSuccessful ApplicationStatus = "SUCCESSFUL"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusDraft, ApplicationStatusPending, ApplicationStatusRejected, ApplicationStatusSuccessful:
		return true
	default:
		return false
	}
}

type Application struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	RoleID uint64 `gorm:"not null;index:idx_applications_role_user,unique" json:"role_id"`
	UserID uint64 `gorm:"not null;index:idx_applications_role_user,unique" json:"user_id"`
	// Status is visible to the applicant; PrivateStatus only to reviewers.
	Status        ApplicationStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	PrivateStatus ApplicationStatus `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"-"`
	Submitted     bool              `gorm:"not null;default:false" json:"submitted"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Role     Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Answers  []Answer  `gorm:"foreignKey:ApplicationID" json:"answers,omitempty"`
	Comments []Comment `gorm:"foreignKey:ApplicationID" json:"comments,omitempty"`
	Ratings  []Rating  `gorm:"foreignKey:ApplicationID" json:"ratings,omitempty"`
}

type Comment struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	ApplicationID uint64         `gorm:"not null;index" json:"application_id"`
	AuthorID      uint64         `gorm:"not null" json:"author_id"`
	Body          string         `gorm:"type:text;not null" json:"body"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Author      User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

type Rating struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	ApplicationID uint64         `gorm:"not null;index" json:"application_id"`
	RaterID       uint64         `gorm:"not null" json:"rater_id"`
	Score         int            `gorm:"not null" json:"score"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Application Application `gorm:"foreignKey:ApplicationID" json:"application,omitempty"`
	Rater       User        `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
}
