package dto

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
)

// CampaignDTO represents a campaign in API responses
type CampaignDTO struct {
	ID             uint64    `json:"id"`
	OrganisationID uint64    `json:"organisation_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	BannerRef      *string   `json:"banner_ref,omitempty"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	Published      bool      `json:"published"`
	Open           bool      `json:"open"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToCampaignDTO converts a campaign to DTO, computing openness at now.
func ToCampaignDTO(campaign models.Campaign, now time.Time) CampaignDTO {
	return CampaignDTO{
		ID:             campaign.ID,
		OrganisationID: campaign.OrganisationID,
		Name:           campaign.Name,
		Description:    campaign.Description,
		BannerRef:      campaign.BannerRef,
		StartsAt:       campaign.StartsAt,
		EndsAt:         campaign.EndsAt,
		Published:      campaign.Published,
		Open:           campaign.IsOpenAt(now),
		CreatedAt:      campaign.CreatedAt,
	}
}

// ToCampaignDTOs converts a list of campaigns to DTOs
func ToCampaignDTOs(campaigns []models.Campaign, now time.Time) []CampaignDTO {
	dtos := make([]CampaignDTO, len(campaigns))
	for i, campaign := range campaigns {
		dtos[i] = ToCampaignDTO(campaign, now)
	}
	return dtos
}

// RoleDTO represents a role in API responses
type RoleDTO struct {
	ID           uint64    `json:"id"`
	CampaignID   uint64    `json:"campaign_id"`
	Name         string    `json:"name"`
	MinAvailable uint32    `json:"min_available"`
	MaxAvailable uint32    `json:"max_available"`
	Finalised    bool      `json:"finalised"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToRoleDTO converts a role to DTO
func ToRoleDTO(role models.Role) RoleDTO {
	return RoleDTO{
		ID:           role.ID,
		CampaignID:   role.CampaignID,
		Name:         role.Name,
		MinAvailable: role.MinAvailable,
		MaxAvailable: role.MaxAvailable,
		Finalised:    role.Finalised,
		CreatedAt:    role.CreatedAt,
	}
}

// ToRoleDTOs converts a list of roles to DTOs
func ToRoleDTOs(roles []models.Role) []RoleDTO {
	dtos := make([]RoleDTO, len(roles))
	for i, role := range roles {
		dtos[i] = ToRoleDTO(role)
	}
	return dtos
}
