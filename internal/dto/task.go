package dto

import (
	"github.com/adelacruz/timeplan/internal/dates"
	"github.com/adelacruz/timeplan/internal/models"
)

// TaskDTO represents a task in API responses. Dates travel as YYYY-MM-DD
// strings; absent optionals are null.
type TaskDTO struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Category    string  `json:"category"`
}

// ToTaskDTO converts a task model (with Category and Priority preloaded)
// into its response shape.
func ToTaskDTO(task models.Task) TaskDTO {
	d := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category.Name,
	}
	if task.Priority != nil {
		name := task.Priority.Name
		d.Priority = &name
	}
	if task.DueDate != nil && !task.DueDate.IsZero() {
		due := task.DueDate.String()
		d.DueDate = &due
	}
	return d
}

// ToTaskDTOs converts a slice of task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}

// ParseOptionalDate turns an optional YYYY-MM-DD request field into a date.
// Empty strings normalize to absent.
func ParseOptionalDate(raw string) (*dates.Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := dates.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
