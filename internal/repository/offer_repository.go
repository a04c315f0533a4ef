package repository

import (
	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// GormOfferRepository is a GORM implementation of OfferRepository
type GormOfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new OfferRepository
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &GormOfferRepository{db: db}
}

// Create creates a new offer
func (r *GormOfferRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

// FindByID finds an offer by ID with optional preloading
func (r *GormOfferRepository) FindByID(id uint64, preload ...string) (*models.Offer, error) {
	var offer models.Offer
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByReplyToken finds an offer by its reply token
func (r *GormOfferRepository) FindByReplyToken(token string) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.Where("reply_token = ?", token).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// Update updates an offer
func (r *GormOfferRepository) Update(offer *models.Offer) error {
	return r.db.Save(offer).Error
}

// ListByRole lists offers for a role
func (r *GormOfferRepository) ListByRole(roleID uint64) ([]models.Offer, error) {
	var offers []models.Offer
	if err := r.db.Preload("Application").
		Where("role_id = ?", roleID).
		Order("created_at ASC").
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
