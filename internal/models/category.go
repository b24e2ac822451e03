package models

// Category names form a closed vocabulary seeded at migration time.
// Every task is in exactly one of them at all times.
const (
	CategoryOngoing   = "On-going"
	CategoryMissed    = "Missed"
	CategoryCompleted = "Completed"
)

type Category struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}
