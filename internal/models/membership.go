package models

import "time"

// AdminLevel is the permission level a member holds within an organisation.
// Levels form a total order: ReadOnly < Director < Admin.
type AdminLevel string

const (
	AdminLevelReadOnly AdminLevel = "READ_ONLY"
	AdminLevelDirector AdminLevel = "DIRECTOR"
	AdminLevelAdmin    AdminLevel = "ADMIN"
)

// Rank returns the position of the level in the total order. Unknown levels
// rank below ReadOnly so a corrupted row can never satisfy a check.
func (l AdminLevel) Rank() int {
	switch l {
	case AdminLevelReadOnly:
		return 1
	case AdminLevelDirector:
		return 2
	case AdminLevelAdmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether l is equal to or above other in the total order.
func (l AdminLevel) AtLeast(other AdminLevel) bool {
	return l.Rank() >= other.Rank()
}

// Valid reports whether l is one of the known levels.
func (l AdminLevel) Valid() bool {
	return l.Rank() > 0
}

type Membership struct {
	OrganisationID uint64     `gorm:"primarykey" json:"organisation_id"`
	UserID         uint64     `gorm:"primarykey" json:"user_id"`
	AdminLevel     AdminLevel `gorm:"type:varchar(20);not null" json:"admin_level"`
	JoinedAt       time.Time  `json:"joined_at"`

	// Relations
	Organisation Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
