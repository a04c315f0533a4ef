package repository

import (
	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// GormOrganisationRepository is a GORM implementation of OrganisationRepository
type GormOrganisationRepository struct {
	db *gorm.DB
}

// NewOrganisationRepository creates a new OrganisationRepository
func NewOrganisationRepository(db *gorm.DB) OrganisationRepository {
	return &GormOrganisationRepository{db: db}
}

// Create creates a new organisation
func (r *GormOrganisationRepository) Create(org *models.Organisation) error {
	return r.db.Create(org).Error
}

// FindByID finds an organisation by ID
func (r *GormOrganisationRepository) FindByID(id uint64) (*models.Organisation, error) {
	var org models.Organisation
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByInviteCode finds an organisation by invite code
func (r *GormOrganisationRepository) FindByInviteCode(code string) (*models.Organisation, error) {
	var org models.Organisation
	if err := r.db.Where("invite_code = ?", code).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// Update updates an organisation
func (r *GormOrganisationRepository) Update(org *models.Organisation) error {
	return r.db.Save(org).Error
}

// Delete deletes an organisation and all data it owns in one transaction
func (r *GormOrganisationRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var campaignIDs []uint64
		if err := tx.Model(&models.Campaign{}).Where("organisation_id = ?", id).Pluck("id", &campaignIDs).Error; err != nil {
			return err
		}
		for _, campaignID := range campaignIDs {
			if err := deleteCampaignCascade(tx, campaignID); err != nil {
				return err
			}
		}

		if err := tx.Where("organisation_id = ?", id).Delete(&models.Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Organisation{}, id).Error
	})
}

// AddMember adds a member to an organisation
func (r *GormOrganisationRepository) AddMember(member *models.Membership) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from an organisation
func (r *GormOrganisationRepository) RemoveMember(organisationID, userID uint64) error {
	return r.db.Where("organisation_id = ? AND user_id = ?", organisationID, userID).
		Delete(&models.Membership{}).Error
}

// FindMember finds a specific membership
func (r *GormOrganisationRepository) FindMember(organisationID, userID uint64) (*models.Membership, error) {
	var member models.Membership
	if err := r.db.Where("organisation_id = ? AND user_id = ?", organisationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// SetMemberLevel updates a member's admin level
func (r *GormOrganisationRepository) SetMemberLevel(organisationID, userID uint64, level models.AdminLevel) error {
	result := r.db.Model(&models.Membership{}).
		Where("organisation_id = ? AND user_id = ?", organisationID, userID).
		Update("admin_level", level)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListMembersByUserID lists all organisations a user is a member of
func (r *GormOrganisationRepository) ListMembersByUserID(userID uint64) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := r.db.Preload("Organisation").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListMembers lists all members of an organisation
func (r *GormOrganisationRepository) ListMembers(organisationID uint64) ([]models.Membership, error) {
	var members []models.Membership
	if err := r.db.Preload("User").
		Where("organisation_id = ?", organisationID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
