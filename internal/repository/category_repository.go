package repository

import (
	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/models"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List returns all categories ordered by name
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := withRetry(func() error {
		return r.db.Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByName looks a category up by its exact name
func (r *GormCategoryRepository) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := withRetry(func() error {
		return r.db.Where("name = ?", name).First(&category).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByID looks a category up by ID
func (r *GormCategoryRepository) FindByID(id uint64) (*models.Category, error) {
	var category models.Category
	err := withRetry(func() error {
		return r.db.First(&category, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &category, nil
}
