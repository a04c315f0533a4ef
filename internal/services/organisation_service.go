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
	ErrOrganisationNotFound       = errors.New("organisation not found")
	ErrInvalidOrganisationName    = errors.New("organisation name cannot be empty")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyMember              = errors.New("user is already a member of this organisation")
	ErrCannotRemoveYourself       = errors.New("cannot remove yourself from the organisation")
	ErrMemberNotFound             = errors.New("organisation member not found")
	ErrInvalidAdminLevel          = errors.New("invalid admin level")
	ErrAdminLevelNotGrantable     = errors.New("only an admin can grant the admin level")
)

// OrganisationService provides business logic for organisation operations.
type OrganisationService struct {
	orgRepo repository.OrganisationRepository
}

// NewOrganisationService creates a new OrganisationService.
func NewOrganisationService(orgRepo repository.OrganisationRepository) *OrganisationService {
	return &OrganisationService{
		orgRepo: orgRepo,
	}
}

// CreateOrganisationInput represents parameters to create a new organisation.
type CreateOrganisationInput struct {
	Name      string
	LogoRef   *string
	CreatorID uint64
}

// CreateOrganisation creates a new organisation; the creator becomes its
// first Admin member.
func (s *OrganisationService) CreateOrganisation(input CreateOrganisationInput) (*models.Organisation, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganisationName
	}

	inviteCode, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	org := &models.Organisation{
		Name:       input.Name,
		LogoRef:    input.LogoRef,
		InviteCode: inviteCode,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}

	member := &models.Membership{
		OrganisationID: org.ID,
		UserID:         input.CreatorID,
		AdminLevel:     models.AdminLevelAdmin,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add creator to organisation: %w", err)
	}

	return org, nil
}

// ListOrganisationsForUser returns organisations the user belongs to.
func (s *OrganisationService) ListOrganisationsForUser(userID uint64) ([]models.Membership, error) {
	memberships, err := s.orgRepo.ListMembersByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organisations: %w", err)
	}
	return memberships, nil
}

// GetOrganisationWithMembers returns an organisation and all of its members.
func (s *OrganisationService) GetOrganisationWithMembers(orgID uint64) (*models.Organisation, []models.Membership, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganisationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organisation members: %w", err)
	}

	return org, members, nil
}

// UpdateOrganisationInput carries the updatable organisation fields.
type UpdateOrganisationInput struct {
	Name    *string
	LogoRef *string
}

// UpdateOrganisation updates an organisation's name and logo reference.
func (s *OrganisationService) UpdateOrganisation(orgID uint64, input UpdateOrganisationInput) (*models.Organisation, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidOrganisationName
		}
		org.Name = *input.Name
	}
	if input.LogoRef != nil {
		org.LogoRef = input.LogoRef
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organisation: %w", err)
	}

	return org, nil
}

// DeleteOrganisation removes an organisation and everything it owns.
func (s *OrganisationService) DeleteOrganisation(orgID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganisationNotFound
		}
		return fmt.Errorf("failed to find organisation: %w", err)
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organisation: %w", err)
	}

	return nil
}

// JoinOrganisationByInvite adds a user via invite code at ReadOnly level.
func (s *OrganisationService) JoinOrganisationByInvite(userID uint64, inviteCode string) (*models.Organisation, error) {
	org, err := s.orgRepo.FindByInviteCode(inviteCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find organisation by invite code: %w", err)
	}

	if _, err := s.orgRepo.FindMember(org.ID, userID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.Membership{
		OrganisationID: org.ID,
		UserID:         userID,
		AdminLevel:     models.AdminLevelReadOnly,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to organisation: %w", err)
	}

	return org, nil
}

// RegenerateInviteCode generates a new invite code for the organisation.
func (s *OrganisationService) RegenerateInviteCode(orgID uint64) (*models.Organisation, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganisationNotFound
		}
		return nil, fmt.Errorf("failed to find organisation: %w", err)
	}

	code, err := utils.GenerateInviteCode()
	if err != nil {
		return nil, ErrInviteCodeGenerationFailed
	}

	org.InviteCode = code
	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update invite code: %w", err)
	}

	return org, nil
}

// SetMemberLevelInput carries an admin level change.
type SetMemberLevelInput struct {
	OrganisationID uint64
	ActorLevel     models.AdminLevel
	TargetID       uint64
	Level          models.AdminLevel
}

// SetMemberLevel changes a member's admin level. Granting Admin requires an
// Admin actor; the caller supplies the actor's resolved level.
func (s *OrganisationService) SetMemberLevel(input SetMemberLevelInput) error {
	if !input.Level.Valid() {
		return ErrInvalidAdminLevel
	}
	if input.Level == models.AdminLevelAdmin && !input.ActorLevel.AtLeast(models.AdminLevelAdmin) {
		return ErrAdminLevelNotGrantable
	}

	if err := s.orgRepo.SetMemberLevel(input.OrganisationID, input.TargetID, input.Level); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to set member level: %w", err)
	}
	return nil
}

// RemoveMember removes a member from the organisation.
func (s *OrganisationService) RemoveMember(orgID, actorID, targetID uint64) error {
	if targetID == actorID {
		return ErrCannotRemoveYourself
	}

	if _, err := s.orgRepo.FindMember(orgID, targetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to find organisation member: %w", err)
	}

	if err := s.orgRepo.RemoveMember(orgID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}
