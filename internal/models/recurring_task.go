package models

import (
	"time"

	"github.com/adelacruz/timeplan/internal/dates"
)

// RecurringTask is a habit definition: an anchor date plus a repetition
// pattern. Only the single most recent completion date is stored, so there
// is no multi-day history and no streak tracking.
type RecurringTask struct {
	ID                uint64      `gorm:"primarykey" json:"id"`
	Title             string      `gorm:"not null" json:"title"`
	Description       string      `gorm:"type:text" json:"description"`
	StartDate         dates.Date  `gorm:"not null" json:"start_date"`
	Pattern           string      `gorm:"type:varchar(20);not null" json:"pattern"`
	LastCompletedDate *dates.Date `json:"last_completed_date"`
	UserID            uint64      `gorm:"not null;index" json:"user_id"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
