package repository

import (
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks matching the filter, ordered per the filter
	List(filter TaskFilter) ([]models.Task, error)

	// Search matches the term against title and description
	Search(userID uint64, term string) ([]models.Task, error)

	// Update saves all fields of a task
	Update(task *models.Task) error

	// SetCategory moves a task to another category
	SetCategory(taskID, categoryID uint64) error

	// Delete removes a task
	Delete(id uint64) error

	// ReconcilePastDue rewrites every stored On-going task whose due date
	// has passed to Missed, as one atomic statement
	ReconcilePastDue(ongoingCategoryID, missedCategoryID uint64, today dates.Date) error
}

// TaskFilter holds the predicate and ordering for listing tasks.
// Ascending order puts tasks without a due date last; ties break by
// priority level, then by insertion order.
type TaskFilter struct {
	UserID     uint64
	CategoryID *uint64

	// DueOn matches an exact due date.
	DueOn *dates.Date
	// DueFrom / DueTo bound the due date inclusively.
	DueFrom *dates.Date
	DueTo   *dates.Date
	// DueFromOrNull matches tasks due on or after the date, or with no
	// due date at all.
	DueFromOrNull *dates.Date

	// OrderDesc sorts by due date descending (Completed and Missed views).
	OrderDesc bool
}

// RecurringTaskRepository defines the interface for recurring task data access
type RecurringTaskRepository interface {
	// Create creates a new recurring task definition
	Create(def *models.RecurringTask) error

	// FindByID finds a definition by ID
	FindByID(id uint64) (*models.RecurringTask, error)

	// ListByUser lists all of a user's definitions
	ListByUser(userID uint64) ([]models.RecurringTask, error)

	// Update saves all fields of a definition
	Update(def *models.RecurringTask) error

	// Delete removes a definition
	Delete(id uint64) error

	// SetCompletion records the given date as the most recent completion
	SetCompletion(id uint64, date dates.Date) error

	// ClearCompletion erases the most recent completion
	ClearCompletion(id uint64) error
}

// CategoryRepository defines the interface for the category vocabulary
type CategoryRepository interface {
	// List returns all categories ordered by name
	List() ([]models.Category, error)

	// FindByName looks a category up by its exact name
	FindByName(name string) (*models.Category, error)

	// FindByID looks a category up by ID
	FindByID(id uint64) (*models.Category, error)
}

// PriorityRepository defines the interface for the priority vocabulary
type PriorityRepository interface {
	// List returns all priorities ordered by level
	List() ([]models.Priority, error)

	// FindByName looks a priority up by its exact name
	FindByName(name string) (*models.Priority, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
