package repository

import (
	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
)

// GormRecurringTaskRepository is a GORM implementation of RecurringTaskRepository
type GormRecurringTaskRepository struct {
	db *gorm.DB
}

// NewRecurringTaskRepository creates a new RecurringTaskRepository
func NewRecurringTaskRepository(db *gorm.DB) RecurringTaskRepository {
	return &GormRecurringTaskRepository{db: db}
}

// Create creates a new recurring task definition
func (r *GormRecurringTaskRepository) Create(def *models.RecurringTask) error {
	return withRetry(func() error {
		return r.db.Create(def).Error
	})
}

// FindByID finds a definition by ID
func (r *GormRecurringTaskRepository) FindByID(id uint64) (*models.RecurringTask, error) {
	var def models.RecurringTask
	err := withRetry(func() error {
		return r.db.First(&def, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// ListByUser lists all of a user's definitions
func (r *GormRecurringTaskRepository) ListByUser(userID uint64) ([]models.RecurringTask, error) {
	var defs []models.RecurringTask
	err := withRetry(func() error {
		return r.db.
			Where("user_id = ?", userID).
			Order("start_date ASC, id ASC").
			Find(&defs).Error
	})
	if err != nil {
		return nil, err
	}
	return defs, nil
}

// Update saves all fields of a definition
func (r *GormRecurringTaskRepository) Update(def *models.RecurringTask) error {
	return withRetry(func() error {
		return r.db.Save(def).Error
	})
}

// Delete removes a definition
func (r *GormRecurringTaskRepository) Delete(id uint64) error {
	return withRetry(func() error {
		result := r.db.Delete(&models.RecurringTask{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetCompletion records the given date as the most recent completion
func (r *GormRecurringTaskRepository) SetCompletion(id uint64, date dates.Date) error {
	return r.setCompletionColumn(id, &date)
}

// ClearCompletion erases the most recent completion
func (r *GormRecurringTaskRepository) ClearCompletion(id uint64) error {
	return r.setCompletionColumn(id, nil)
}

func (r *GormRecurringTaskRepository) setCompletionColumn(id uint64, date *dates.Date) error {
	return withRetry(func() error {
		var value interface{}
		if date != nil {
			value = *date
		}
		result := r.db.Model(&models.RecurringTask{}).
			Where("id = ?", id).
			Update("last_completed_date", value)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
