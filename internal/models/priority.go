package models

// Priority names and levels, seeded at migration time. Lower level sorts
// first, so Urgent tasks come before Not urgent on due-date ties.
const (
	PriorityUrgent    = "Urgent"
	PriorityNotUrgent = "Not urgent"

	PriorityLevelUrgent    = 1
	PriorityLevelNotUrgent = 2
)

type Priority struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Level int    `gorm:"not null" json:"level"`
}
