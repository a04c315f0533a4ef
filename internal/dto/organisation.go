package dto

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

// OrganisationDTO represents an organisation in API responses
type OrganisationDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	LogoRef    *string   `json:"logo_ref,omitempty"`
	InviteCode string    `json:"invite_code,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrganisationWithLevelDTO represents an organisation with the user's level
type OrganisationWithLevelDTO struct {
	OrganisationDTO
	AdminLevel models.AdminLevel `json:"admin_level"`
}

// MembershipDTO represents a member in an organisation
type MembershipDTO struct {
	User       UserDTO           `json:"user"`
	AdminLevel models.AdminLevel `json:"admin_level"`
	JoinedAt   time.Time         `json:"joined_at"`
}

// OrganisationDetailDTO represents detailed organisation information
type OrganisationDetailDTO struct {
	OrganisationDTO
	Members   []MembershipDTO   `json:"members"`
	YourLevel models.AdminLevel `json:"your_level"`
}

// ToOrganisationDTO converts an organisation to DTO. The invite code is only
// included for members.
func ToOrganisationDTO(org models.Organisation, includeInvite bool) OrganisationDTO {
	d := OrganisationDTO{
		ID:        org.ID,
		Name:      org.Name,
		LogoRef:   org.LogoRef,
		CreatedAt: org.CreatedAt,
	}
	if includeInvite {
		d.InviteCode = org.InviteCode
	}
	return d
}

// ToOrganisationWithLevelDTO converts a membership to DTO with level
func ToOrganisationWithLevelDTO(member models.Membership) OrganisationWithLevelDTO {
	return OrganisationWithLevelDTO{
		OrganisationDTO: ToOrganisationDTO(member.Organisation, false),
		AdminLevel:      member.AdminLevel,
	}
}

// ToMembershipDTO converts a membership to DTO
func ToMembershipDTO(member models.Membership) MembershipDTO {
	return MembershipDTO{
		User:       ToUserDTO(member.User),
		AdminLevel: member.AdminLevel,
		JoinedAt:   member.JoinedAt,
	}
}

// ToOrganisationDetailDTO converts an organisation with members to detailed DTO
func ToOrganisationDetailDTO(org models.Organisation, members []models.Membership, yourLevel models.AdminLevel) OrganisationDetailDTO {
	memberDTOs := make([]MembershipDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToMembershipDTO(member)
	}

	return OrganisationDetailDTO{
		OrganisationDTO: ToOrganisationDTO(org, true),
		Members:         memberDTOs,
		YourLevel:       yourLevel,
	}
}
