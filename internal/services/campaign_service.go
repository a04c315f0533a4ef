package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/repository"
	"github.com/perditionlabs/recruitd/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidCampaignName = errors.New("campaign name cannot be empty")
	ErrInvalidTimeWindow   = errors.New("campaign must start before it ends")
	ErrRoleNotFound        = errors.New("role not found")
	ErrInvalidRoleName     = errors.New("role name cannot be empty")
	ErrInvalidCapacity     = errors.New("minimum available cannot exceed maximum")
	ErrRoleFinalised       = errors.New("role has been finalised")
)

// CampaignService provides business logic for campaigns and their roles.
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	roleRepo     repository.RoleRepository
}

// NewCampaignService creates a new CampaignService.
func NewCampaignService(campaignRepo repository.CampaignRepository, roleRepo repository.RoleRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		roleRepo:     roleRepo,
	}
}

// CreateCampaignInput represents parameters to create a campaign.
type CreateCampaignInput struct {
	OrganisationID uint64
	Name           string
	Description    string
	BannerRef      *string
	StartsAt       time.Time
	EndsAt         time.Time
}

// CreateCampaign creates an unpublished campaign.
func (s *CampaignService) CreateCampaign(input CreateCampaignInput) (*models.Campaign, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidCampaignName
	}
	if !input.StartsAt.Before(input.EndsAt) {
		return nil, ErrInvalidTimeWindow
	}

	campaign := &models.Campaign{
		OrganisationID: input.OrganisationID,
		Name:           input.Name,
		Description:    input.Description,
		BannerRef:      input.BannerRef,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return campaign, nil
}

// GetCampaign returns a campaign with its roles.
func (s *CampaignService) GetCampaign(campaignID uint64) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(campaignID, "Roles")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}
	return campaign, nil
}

// UpdateCampaignInput carries the updatable campaign fields.
type UpdateCampaignInput struct {
	Name        *string
	Description *string
	BannerRef   *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Published   *bool
}

// UpdateCampaign updates campaign fields, revalidating the time window.
func (s *CampaignService) UpdateCampaign(campaignID uint64, input UpdateCampaignInput) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.FindByID(campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidCampaignName
		}
		campaign.Name = *input.Name
	}
	if input.Description != nil {
		campaign.Description = *input.Description
	}
	if input.BannerRef != nil {
		campaign.BannerRef = input.BannerRef
	}
	if input.StartsAt != nil {
		campaign.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		campaign.EndsAt = *input.EndsAt
	}
	if !campaign.StartsAt.Before(campaign.EndsAt) {
		return nil, ErrInvalidTimeWindow
	}
	if input.Published != nil {
		campaign.Published = *input.Published
	}

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	return campaign, nil
}

// DeleteCampaign removes a campaign and everything it owns.
func (s *CampaignService) DeleteCampaign(campaignID uint64) error {
	if _, err := s.campaignRepo.FindByID(campaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("failed to find campaign: %w", err)
	}

	if err := s.campaignRepo.Delete(campaignID); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	return nil
}

// ListCampaigns lists an organisation's campaigns.
func (s *CampaignService) ListCampaigns(organisationID uint64) ([]models.Campaign, error) {
	campaigns, err := s.campaignRepo.ListByOrganisation(organisationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// ListOpenCampaigns lists a page of published campaigns whose window contains
// now. This feeds the public listing; no membership is required to see it.
func (s *CampaignService) ListOpenCampaigns(now time.Time, params utils.PaginationParams) ([]models.Campaign, int64, error) {
	campaigns, total, err := s.campaignRepo.ListOpen(now, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

// CreateRoleInput represents parameters to create a role.
type CreateRoleInput struct {
	CampaignID   uint64
	Name         string
	MinAvailable uint32
	MaxAvailable uint32
}

// CreateRole creates a role within a campaign.
func (s *CampaignService) CreateRole(input CreateRoleInput) (*models.Role, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidRoleName
	}
	if input.MinAvailable > input.MaxAvailable {
		return nil, ErrInvalidCapacity
	}

	if _, err := s.campaignRepo.FindByID(input.CampaignID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to find campaign: %w", err)
	}

	role := &models.Role{
		CampaignID:   input.CampaignID,
		Name:         input.Name,
		MinAvailable: input.MinAvailable,
		MaxAvailable: input.MaxAvailable,
	}

	if err := s.roleRepo.Create(role); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return role, nil
}

// UpdateRoleInput carries the updatable role fields.
type UpdateRoleInput struct {
	Name         *string
	MinAvailable *uint32
	MaxAvailable *uint32
	Finalised    *bool
}

// UpdateRole updates a role. A finalised role only accepts un-finalising.
func (s *CampaignService) UpdateRole(roleID uint64, input UpdateRoleInput) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}

	if role.Finalised && (input.Finalised == nil || *input.Finalised) {
		return nil, ErrRoleFinalised
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidRoleName
		}
		role.Name = *input.Name
	}
	if input.MinAvailable != nil {
		role.MinAvailable = *input.MinAvailable
	}
	if input.MaxAvailable != nil {
		role.MaxAvailable = *input.MaxAvailable
	}
	if role.MinAvailable > role.MaxAvailable {
		return nil, ErrInvalidCapacity
	}
	if input.Finalised != nil {
		role.Finalised = *input.Finalised
	}

	if err := s.roleRepo.Update(role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return role, nil
}

// GetRole returns a role.
func (s *CampaignService) GetRole(roleID uint64) (*models.Role, error) {
	role, err := s.roleRepo.FindByID(roleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("failed to find role: %w", err)
	}
	return role, nil
}

// DeleteRole removes a role and its applications.
func (s *CampaignService) DeleteRole(roleID uint64) error {
	if _, err := s.roleRepo.FindByID(roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return fmt.Errorf("failed to find role: %w", err)
	}

	if err := s.roleRepo.Delete(roleID); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}

// ListRoles lists a campaign's roles.
func (s *CampaignService) ListRoles(campaignID uint64) ([]models.Role, error) {
	roles, err := s.roleRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}
