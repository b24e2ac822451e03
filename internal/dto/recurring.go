package dto

import (
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/services"
)

// RecurringTaskDTO represents a habit definition in API responses
type RecurringTaskDTO struct {
	ID                uint64  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	StartDate         string  `json:"start_date"`
	Pattern           string  `json:"pattern"`
	LastCompletedDate *string `json:"last_completed_date"`
}

// RecurringStatusDTO pairs a definition with its state for one day
type RecurringStatusDTO struct {
	RecurringTaskDTO
	Day    string `json:"day"`
	Status string `json:"status"`
}

// ToRecurringTaskDTO converts a definition model into its response shape
func ToRecurringTaskDTO(def models.RecurringTask) RecurringTaskDTO {
	d := RecurringTaskDTO{
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		StartDate:   def.StartDate.String(),
		Pattern:     def.Pattern,
	}
	if def.LastCompletedDate != nil && !def.LastCompletedDate.IsZero() {
		last := def.LastCompletedDate.String()
		d.LastCompletedDate = &last
	}
	return d
}

// ToRecurringTaskDTOs converts a slice of definition models
func ToRecurringTaskDTOs(defs []models.RecurringTask) []RecurringTaskDTO {
	out := make([]RecurringTaskDTO, len(defs))
	for i, def := range defs {
		out[i] = ToRecurringTaskDTO(def)
	}
	return out
}

// ToRecurringStatusDTO converts a day status into its response shape
func ToRecurringStatusDTO(status services.RecurringStatus) RecurringStatusDTO {
	return RecurringStatusDTO{
		RecurringTaskDTO: ToRecurringTaskDTO(status.Definition),
		Day:              status.Day.String(),
		Status:           status.Status.String(),
	}
}

// ToRecurringStatusDTOs converts a slice of day statuses
func ToRecurringStatusDTOs(statuses []services.RecurringStatus) []RecurringStatusDTO {
	out := make([]RecurringStatusDTO, len(statuses))
	for i, s := range statuses {
		out[i] = ToRecurringStatusDTO(s)
	}
	return out
}
