package repository

import (
	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// GormRoleRepository is a GORM implementation of RoleRepository
type GormRoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new RoleRepository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &GormRoleRepository{db: db}
}

// Create creates a new role
func (r *GormRoleRepository) Create(role *models.Role) error {
	return r.db.Create(role).Error
}

// FindByID finds a role by ID with optional preloading
func (r *GormRoleRepository) FindByID(id uint64, preload ...string) (*models.Role, error) {
	var role models.Role
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&role, id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// Update updates a role
func (r *GormRoleRepository) Update(role *models.Role) error {
	return r.db.Save(role).Error
}

// Delete deletes a role and its applications in one transaction
func (r *GormRoleRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteRoleCascade(tx, id)
	})
}

// ListByCampaign lists roles of a campaign
func (r *GormRoleRepository) ListByCampaign(campaignID uint64) ([]models.Role, error) {
	var roles []models.Role
	if err := r.db.Where("campaign_id = ?", campaignID).
		Order("id ASC").
		Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
