package services

import (
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
)

// Classify decides the category a task should display as, independent of
// what is stored. Completed is sticky: it is never overridden by date
// comparison, only an explicit un-complete moves it back. A task without a
// due date never becomes Missed.
func Classify(storedCategory string, dueDate *dates.Date, today dates.Date) string {
	if storedCategory == models.CategoryCompleted {
		return models.CategoryCompleted
	}
	if dueDate == nil || dueDate.IsZero() {
		return models.CategoryOngoing
	}
	if dueDate.Before(today) {
		return models.CategoryMissed
	}
	return models.CategoryOngoing
}

// NeedsReconciliation reports drift between the stored category and the
// derived one. Only the On-going -> Missed direction is corrected by the
// batch reconciliation pass; Missed tasks whose due date moves back to the
// future are left alone until an explicit edit.
func NeedsReconciliation(storedCategory string, dueDate *dates.Date, today dates.Date) bool {
	return storedCategory == models.CategoryOngoing &&
		Classify(storedCategory, dueDate, today) == models.CategoryMissed
}
