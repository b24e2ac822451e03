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
	"github.com/adelacruz/timeplan/internal/schedule"
)

var ErrRecurringTaskNotFound = errors.New("recurring task not found")

// RecurringService owns habit definitions and their single-slot completion
// log.
type RecurringService struct {
	repo  repository.RecurringTaskRepository
	clock clock.Clock
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(repo repository.RecurringTaskRepository, clk clock.Clock) *RecurringService {
	return &RecurringService{repo: repo, clock: clk}
}

// CreateRecurringInput represents input for creating a habit definition
type CreateRecurringInput struct {
	UserID      uint64
	Title       string
	Description string
	StartDate   dates.Date
	Pattern     string
}

// UpdateRecurringInput is a typed partial update for a definition. The
// completion slot is not editable here; only the toggle path mutates it.
type UpdateRecurringInput struct {
	Title       *string
	Description *string
	StartDate   *dates.Date
	Pattern     *string
}

// RecurringStatus pairs a definition with its state for one day.
type RecurringStatus struct {
	Definition models.RecurringTask
	Day        dates.Date
	Status     schedule.DayStatus
}

// List returns a user's habit definitions.
func (s *RecurringService) List(userID uint64) ([]models.RecurringTask, error) {
	defs, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring tasks: %w", err)
	}
	return defs, nil
}

// Get returns one definition by id.
func (s *RecurringService) Get(id uint64) (*models.RecurringTask, error) {
	def, err := s.repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTaskNotFound
		}
		return nil, fmt.Errorf("failed to find recurring task: %w", err)
	}
	return def, nil
}

// Create validates and stores a new definition.
func (s *RecurringService) Create(input CreateRecurringInput) (*models.RecurringTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidField("title", "title is required")
	}
	if input.StartDate.IsZero() {
		return nil, invalidField("start_date", "start date is required")
	}
	pattern, err := schedule.ParsePattern(input.Pattern)
	if err != nil {
		return nil, invalidField("pattern", err.Error())
	}

	def := &models.RecurringTask{
		Title:       title,
		Description: input.Description,
		StartDate:   input.StartDate,
		Pattern:     string(pattern),
		UserID:      input.UserID,
	}
	if err := s.repo.Create(def); err != nil {
		return nil, fmt.Errorf("failed to create recurring task: %w", err)
	}
	return def, nil
}

// Update applies a partial edit to a definition.
func (s *RecurringService) Update(id uint64, input UpdateRecurringInput) (*models.RecurringTask, error) {
	def, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, invalidField("title", "title cannot be empty")
		}
		def.Title = title
	}
	if input.Description != nil {
		def.Description = *input.Description
	}
	if input.StartDate != nil {
		if input.StartDate.IsZero() {
			return nil, invalidField("start_date", "start date cannot be empty")
		}
		def.StartDate = *input.StartDate
	}
	if input.Pattern != nil {
		pattern, err := schedule.ParsePattern(*input.Pattern)
		if err != nil {
			return nil, invalidField("pattern", err.Error())
		}
		def.Pattern = string(pattern)
	}

	if err := s.repo.Update(def); err != nil {
		return nil, fmt.Errorf("failed to update recurring task: %w", err)
	}
	return def, nil
}

// Delete removes a definition.
func (s *RecurringService) Delete(id uint64) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecurringTaskNotFound
		}
		return fmt.Errorf("failed to delete recurring task: %w", err)
	}
	return nil
}

// Complete records date as the most recent completion. Only one slot
// exists, so completing a newer occurrence overwrites the previous one.
func (s *RecurringService) Complete(id uint64, date dates.Date) (*models.RecurringTask, error) {
	def, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if pattern, perr := schedule.ParsePattern(def.Pattern); perr != nil {
		return nil, invalidField("pattern", perr.Error())
	} else if !schedule.IsOccurrence(def.StartDate, pattern, date) {
		// Tolerated, not rejected: classification degrades gracefully when
		// the slot holds a non-occurrence date.
		log.Printf("recurring task %d: completion date %s is not a scheduled occurrence", id, date)
	}

	if err := s.repo.SetCompletion(id, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTaskNotFound
		}
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}
	def.LastCompletedDate = &date
	return def, nil
}

// Uncomplete clears the completion slot, but only when it currently holds
// the given date; clearing a date that was already overwritten is a no-op.
func (s *RecurringService) Uncomplete(id uint64, date dates.Date) (*models.RecurringTask, error) {
	def, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if def.LastCompletedDate == nil || !def.LastCompletedDate.Equal(date) {
		return def, nil
	}

	if err := s.repo.ClearCompletion(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecurringTaskNotFound
		}
		return nil, fmt.Errorf("failed to clear completion: %w", err)
	}
	def.LastCompletedDate = nil
	return def, nil
}

// TodayStatuses answers "is each habit due or completed today" for a user.
// Definitions with a malformed pattern or start date are skipped and logged
// rather than failing the whole view.
func (s *RecurringService) TodayStatuses(userID uint64) ([]RecurringStatus, error) {
	defs, err := s.List(userID)
	if err != nil {
		return nil, err
	}

	today := s.clock.Today()
	statuses := make([]RecurringStatus, 0, len(defs))
	for _, def := range defs {
		pattern, ok := usablePattern(def)
		if !ok {
			continue
		}
		statuses = append(statuses, RecurringStatus{
			Definition: def,
			Day:        today,
			Status:     schedule.StatusOn(def.StartDate, pattern, def.LastCompletedDate, today),
		})
	}
	return statuses, nil
}

// usablePattern validates the stored pattern and start date of one row,
// logging and skipping corrupt rows.
func usablePattern(def models.RecurringTask) (schedule.Pattern, bool) {
	if def.StartDate.IsZero() {
		log.Printf("skipping recurring task %d: malformed start date", def.ID)
		return "", false
	}
	pattern, err := schedule.ParsePattern(def.Pattern)
	if err != nil {
		log.Printf("skipping recurring task %d: %v", def.ID, err)
		return "", false
	}
	return pattern, true
}
