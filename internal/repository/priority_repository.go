package repository

import (
	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/models"
)

// GormPriorityRepository is a GORM implementation of PriorityRepository
type GormPriorityRepository struct {
	db *gorm.DB
}

// NewPriorityRepository creates a new PriorityRepository
func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &GormPriorityRepository{db: db}
}

// List returns all priorities ordered by level
func (r *GormPriorityRepository) List() ([]models.Priority, error) {
	var priorities []models.Priority
	err := withRetry(func() error {
		return r.db.Order("level ASC").Find(&priorities).Error
	})
	if err != nil {
		return nil, err
	}
	return priorities, nil
}

// FindByName looks a priority up by its exact name
func (r *GormPriorityRepository) FindByName(name string) (*models.Priority, error) {
	var priority models.Priority
	err := withRetry(func() error {
		return r.db.Where("name = ?", name).First(&priority).Error
	})
	if err != nil {
		return nil, err
	}
	return &priority, nil
}
