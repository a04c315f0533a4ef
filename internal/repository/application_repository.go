package repository

import (
	"github.com/perditionlabs/recruitd/internal/models"
	"gorm.io/gorm"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create creates a new application
func (r *GormApplicationRepository) Create(app *models.Application) error {
	return r.db.Create(app).Error
}

// FindByID finds an application by ID with optional preloading
func (r *GormApplicationRepository) FindByID(id uint64, preload ...string) (*models.Application, error) {
	var app models.Application
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// FindByRoleAndUser finds a user's application for a role
func (r *GormApplicationRepository) FindByRoleAndUser(roleID, userID uint64) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("role_id = ? AND user_id = ?", roleID, userID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// Update updates an application
func (r *GormApplicationRepository) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

// ListByRole lists applications for a role
func (r *GormApplicationRepository) ListByRole(roleID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("User").
		Where("role_id = ?", roleID).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByUser lists a user's own applications
func (r *GormApplicationRepository) ListByUser(userID uint64) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Preload("Role").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// AddComment attaches a reviewer comment
func (r *GormApplicationRepository) AddComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments lists an application's comments
func (r *GormApplicationRepository) ListComments(applicationID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Preload("Author").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// AddRating attaches a reviewer rating
func (r *GormApplicationRepository) AddRating(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// ListRatings lists an application's ratings
func (r *GormApplicationRepository) ListRatings(applicationID uint64) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Preload("Rater").
		Where("application_id = ?", applicationID).
		Order("created_at ASC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}
