package repository

import (
	"time"

	"github.com/perditionlabs/recruitd/internal/database"
	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/perditionlabs/recruitd/internal/utils"
	"gorm.io/gorm"
)

// GormCampaignRepository is a GORM implementation of CampaignRepository
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Create creates a new campaign
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// FindByID finds a campaign by ID with optional preloading
func (r *GormCampaignRepository) FindByID(id uint64, preload ...string) (*models.Campaign, error) {
	var campaign models.Campaign
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&campaign, id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Update updates a campaign
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete deletes a campaign, its roles and questions in one transaction
func (r *GormCampaignRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteCampaignCascade(tx, id)
	})
}

// ListByOrganisation lists campaigns of an organisation
func (r *GormCampaignRepository) ListByOrganisation(organisationID uint64) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := r.db.Where("organisation_id = ?", organisationID).
		Order("starts_at DESC").
		Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListOpen lists published campaigns whose application window contains now,
// one page at a time, with the total count of matching campaigns.
func (r *GormCampaignRepository) ListOpen(now time.Time, params utils.PaginationParams) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{}).
		Where("published = ? AND starts_at <= ? AND ends_at > ?", true, now, now)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var campaigns []models.Campaign
	if err := query.Preload("Roles").
		Order("starts_at DESC").
		Scopes(database.Paginate(params)).
		Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}
