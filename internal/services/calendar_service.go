package services

import (
	"fmt"
	"sort"

	"github.com/adelacruz/timeplan/internal/clock"
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/repository"
	"github.com/adelacruz/timeplan/internal/schedule"
)

// CalendarEntryKind distinguishes plain due-date markers from expanded
// recurring occurrences.
type CalendarEntryKind string

const (
	EntryTask      CalendarEntryKind = "task"
	EntryRecurring CalendarEntryKind = "recurring"
)

// CalendarEntry is one marker the GUI paints on a calendar day.
type CalendarEntry struct {
	Date      dates.Date        `json:"date"`
	Title     string            `json:"title"`
	Kind      CalendarEntryKind `json:"kind"`
	SourceID  uint64            `json:"source_id"`
	Completed bool              `json:"completed"`
}

// CalendarService produces the date-window feed of task markers and
// expanded recurring occurrences.
type CalendarService struct {
	taskRepo      repository.TaskRepository
	recurringRepo repository.RecurringTaskRepository
	clock         clock.Clock
}

// NewCalendarService creates a new CalendarService
func NewCalendarService(
	taskRepo repository.TaskRepository,
	recurringRepo repository.RecurringTaskRepository,
	clk clock.Clock,
) *CalendarService {
	return &CalendarService{taskRepo: taskRepo, recurringRepo: recurringRepo, clock: clk}
}

// Entries expands the window [from, to] into calendar markers: one per
// dated task and one per recurring occurrence, each occurrence flagged
// completed when it equals the definition's most recent completion date.
func (s *CalendarService) Entries(userID uint64, from, to dates.Date) ([]CalendarEntry, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{
		UserID:  userID,
		DueFrom: &from,
		DueTo:   &to,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks for calendar: %w", err)
	}

	var entries []CalendarEntry
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.IsZero() {
			continue
		}
		entries = append(entries, CalendarEntry{
			Date:     *t.DueDate,
			Title:    t.Title,
			Kind:     EntryTask,
			SourceID: t.ID,
		})
	}

	defs, err := s.recurringRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring tasks for calendar: %w", err)
	}
	for _, def := range defs {
		pattern, ok := usablePattern(def)
		if !ok {
			continue
		}
		it := schedule.Occurrences(def.StartDate, pattern, from, to)
		for d, more := it.Next(); more; d, more = it.Next() {
			entries = append(entries, CalendarEntry{
				Date:      d,
				Title:     def.Title,
				Kind:      EntryRecurring,
				SourceID:  def.ID,
				Completed: def.LastCompletedDate != nil && def.LastCompletedDate.Equal(d),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}
