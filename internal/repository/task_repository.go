package repository

import (
	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return withRetry(func() error {
		return r.db.Create(task).Error
	})
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	err := withRetry(func() error {
		query := r.db
		for _, p := range preload {
			query = query.Preload(p)
		}
		return query.First(&task, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks matching the filter, ordered per the filter
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	var tasks []models.Task
	err := withRetry(func() error {
		query := r.db.Model(&models.Task{}).
			Where("tasks.user_id = ?", filter.UserID)

		if filter.CategoryID != nil {
			query = query.Where("tasks.category_id = ?", *filter.CategoryID)
		}
		if filter.DueOn != nil {
			query = query.Where("tasks.due_date = ?", *filter.DueOn)
		}
		if filter.DueFrom != nil {
			query = query.Where("tasks.due_date >= ?", *filter.DueFrom)
		}
		if filter.DueTo != nil {
			query = query.Where("tasks.due_date <= ?", *filter.DueTo)
		}
		if filter.DueFromOrNull != nil {
			query = query.Where("tasks.due_date IS NULL OR tasks.due_date >= ?", *filter.DueFromOrNull)
		}

		return orderTasks(query, filter.OrderDesc).
			Preload("Priority").
			Preload("Category").
			Find(&tasks).Error
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Search matches the term against title and description
func (r *GormTaskRepository) Search(userID uint64, term string) ([]models.Task, error) {
	var tasks []models.Task
	pattern := "%" + term + "%"
	err := withRetry(func() error {
		query := r.db.Model(&models.Task{}).
			Where("tasks.user_id = ?", userID).
			Where("tasks.title LIKE ? OR tasks.description LIKE ?", pattern, pattern)
		return orderTasks(query, false).
			Preload("Priority").
			Preload("Category").
			Find(&tasks).Error
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// orderTasks applies the canonical orderings: ascending puts tasks without
// a due date last and breaks ties by priority level, then insertion order;
// descending is newest due date first.
func orderTasks(query *gorm.DB, desc bool) *gorm.DB {
	if desc {
		return query.Order("tasks.due_date DESC, tasks.id ASC")
	}
	return query.
		Joins("LEFT JOIN priorities ON priorities.id = tasks.priority_id").
		Order("CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC, priorities.level ASC, tasks.id ASC")
}

// Update saves all fields of a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return withRetry(func() error {
		return r.db.Save(task).Error
	})
}

// SetCategory moves a task to another category
func (r *GormTaskRepository) SetCategory(taskID, categoryID uint64) error {
	return withRetry(func() error {
		result := r.db.Model(&models.Task{}).
			Where("id = ?", taskID).
			Update("category_id", categoryID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return withRetry(func() error {
		result := r.db.Delete(&models.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ReconcilePastDue moves every stored On-going task with a due date before
// today to Missed. One UPDATE statement, so readers never observe a
// partially reconciled set, and rerunning it writes nothing new.
func (r *GormTaskRepository) ReconcilePastDue(ongoingCategoryID, missedCategoryID uint64, today dates.Date) error {
	return withRetry(func() error {
		return r.db.Model(&models.Task{}).
			Where("category_id = ?", ongoingCategoryID).
			Where("due_date IS NOT NULL").
			Where("due_date < ?", today).
			Update("category_id", missedCategoryID).Error
	})
}
