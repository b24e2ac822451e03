package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/clock"
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Filter names, as the GUI presents them.
const (
	FilterAllTasks  = "All Tasks"
	FilterToday     = "Today"
	FilterNext7Days = "Next 7 Days"
	FilterOngoing   = "On-going"
	FilterCompleted = "Completed"
	FilterMissed    = "Missed"
)

// TaskService owns task CRUD, the named filters, and the reconciliation of
// past-due categories.
type TaskService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	priorityRepo repository.PriorityRepository
	clock        clock.Clock
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo repository.TaskRepository,
	categoryRepo repository.CategoryRepository,
	priorityRepo repository.PriorityRepository,
	clk clock.Clock,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
		clock:        clk,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID       uint64
	Title        string
	Description  string
	PriorityName string      // optional; unknown names fall back to Not urgent
	DueDate      *dates.Date // optional
	CategoryName string      // optional; defaults to On-going
}

// UpdateTaskInput represents a typed partial update: each field is applied
// only when present.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	PriorityName *string
	DueDate      *dates.Date
	ClearDueDate bool
	CategoryName *string
}

// ListTasks runs one named filter over a user's tasks and returns the
// matching, ordered subset. Stored categories are reconciled against today
// first so stale On-going rows never surface as not-yet-missed.
func (s *TaskService) ListTasks(userID uint64, filterName string) ([]models.Task, error) {
	if err := s.ReconcilePastDue(); err != nil {
		return nil, err
	}

	today := s.clock.Today()
	filter := repository.TaskFilter{UserID: userID}

	switch filterName {
	case FilterAllTasks:
		// No category or date predicate.
	case FilterToday:
		categoryID, ok, err := s.categoryID(models.CategoryOngoing)
		if err != nil || !ok {
			return []models.Task{}, err
		}
		filter.CategoryID = &categoryID
		filter.DueOn = &today
	case FilterNext7Days:
		categoryID, ok, err := s.categoryID(models.CategoryOngoing)
		if err != nil || !ok {
			return []models.Task{}, err
		}
		horizon := today.AddDays(7)
		filter.CategoryID = &categoryID
		filter.DueFrom = &today
		filter.DueTo = &horizon
	case FilterOngoing:
		categoryID, ok, err := s.categoryID(models.CategoryOngoing)
		if err != nil || !ok {
			return []models.Task{}, err
		}
		filter.CategoryID = &categoryID
		filter.DueFromOrNull = &today
	case FilterCompleted:
		categoryID, ok, err := s.categoryID(models.CategoryCompleted)
		if err != nil || !ok {
			return []models.Task{}, err
		}
		filter.CategoryID = &categoryID
		filter.OrderDesc = true
	case FilterMissed:
		categoryID, ok, err := s.categoryID(models.CategoryMissed)
		if err != nil || !ok {
			return []models.Task{}, err
		}
		filter.CategoryID = &categoryID
		filter.OrderDesc = true
	default:
		return nil, invalidField("filter", fmt.Sprintf("unknown filter %q", filterName))
	}

	tasks, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return dropCorruptRows(tasks), nil
}

// SearchTasks returns the user's tasks whose title or description contains
// the term.
func (s *TaskService) SearchTasks(userID uint64, term string) ([]models.Task, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, invalidField("term", "search term is required")
	}

	if err := s.ReconcilePastDue(); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.Search(userID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return dropCorruptRows(tasks), nil
}

// GetTask returns a task with its category and priority loaded.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Priority", "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates and stores a new task. The category defaults to
// On-going; an unknown priority name falls back to Not urgent.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidField("title", "title is required")
	}

	categoryName := input.CategoryName
	if categoryName == "" {
		categoryName = models.CategoryOngoing
	}
	category, err := s.categoryRepo.FindByName(categoryName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidField("category", fmt.Sprintf("unknown category %q", categoryName))
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	priorityID, err := s.resolvePriorityID(input.PriorityName)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		PriorityID:  priorityID,
		DueDate:     input.DueDate,
		CategoryID:  category.ID,
		UserID:      input.UserID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Priority", "Category")
}

// UpdateTask applies a partial update. Editing a Missed task's due date back
// to today or later moves it to On-going; passive reconciliation never does
// that, only this edit path.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Category")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, invalidField("title", "title cannot be empty")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.PriorityName != nil {
		priorityID, err := s.resolvePriorityID(*input.PriorityName)
		if err != nil {
			return nil, err
		}
		task.PriorityID = priorityID
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	storedCategory := task.Category.Name
	if input.CategoryName != nil {
		category, err := s.categoryRepo.FindByName(*input.CategoryName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidField("category", fmt.Sprintf("unknown category %q", *input.CategoryName))
			}
			return nil, fmt.Errorf("failed to resolve category: %w", err)
		}
		task.CategoryID = category.ID
		storedCategory = category.Name
	} else if storedCategory == models.CategoryMissed {
		today := s.clock.Today()
		if Classify(models.CategoryOngoing, task.DueDate, today) == models.CategoryOngoing {
			categoryID, ok, err := s.categoryID(models.CategoryOngoing)
			if err != nil {
				return nil, err
			}
			if ok {
				task.CategoryID = categoryID
			}
		}
	}

	// Save only owned columns so the preloaded association is not written.
	task.Category = models.Category{}
	task.Priority = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Priority", "Category")
}

// CompleteTask moves a task to the sticky Completed category.
func (s *TaskService) CompleteTask(taskID uint64) (*models.Task, error) {
	return s.transition(taskID, models.CategoryCompleted)
}

// UncompleteTask is the explicit reverse transition back to On-going. If the
// due date has already passed, the next reconciliation will mark it Missed.
func (s *TaskService) UncompleteTask(taskID uint64) (*models.Task, error) {
	return s.transition(taskID, models.CategoryOngoing)
}

func (s *TaskService) transition(taskID uint64, categoryName string) (*models.Task, error) {
	category, err := s.categoryRepo.FindByName(categoryName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to resolve category: %w", err)
	}

	if err := s.taskRepo.SetCategory(taskID, category.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to set category: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "Priority", "Category")
}

// DeleteTask removes a task by id.
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ReconcilePastDue rewrites every stored On-going task whose due date has
// passed to Missed. Idempotent; runs before every read-heavy view.
func (s *TaskService) ReconcilePastDue() error {
	ongoingID, ok, err := s.categoryID(models.CategoryOngoing)
	if err != nil || !ok {
		return err
	}
	missedID, ok, err := s.categoryID(models.CategoryMissed)
	if err != nil || !ok {
		return err
	}

	if err := s.taskRepo.ReconcilePastDue(ongoingID, missedID, s.clock.Today()); err != nil {
		return fmt.Errorf("failed to reconcile past-due tasks: %w", err)
	}
	return nil
}

// Categories returns the seeded category vocabulary.
func (s *TaskService) Categories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// Priorities returns the seeded priority vocabulary ordered by level.
func (s *TaskService) Priorities() ([]models.Priority, error) {
	return s.priorityRepo.List()
}

// categoryID resolves a category name. A missing category yields ok=false
// with no error: the vocabulary is seeded at migration time, so absence is
// a deployment defect that should degrade to empty views, not failures.
func (s *TaskService) categoryID(name string) (uint64, bool, error) {
	category, err := s.categoryRepo.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("category %q missing from store", name)
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to resolve category %q: %w", name, err)
	}
	return category.ID, true, nil
}

func (s *TaskService) resolvePriorityID(name string) (*uint64, error) {
	if name == "" {
		return nil, nil
	}
	priority, err := s.priorityRepo.FindByName(name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve priority: %w", err)
		}
		// Unknown names fall back to the default priority.
		priority, err = s.priorityRepo.FindByName(models.PriorityNotUrgent)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to resolve default priority: %w", err)
		}
	}
	return &priority.ID, nil
}

// dropCorruptRows filters out tasks whose stored due date failed to parse
// (scanned to the zero date). One corrupt row must not fail the whole view.
func dropCorruptRows(tasks []models.Task) []models.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.IsZero() {
			log.Printf("skipping task %d: malformed stored due date", t.ID)
			continue
		}
		out = append(out, t)
	}
	return out
}
