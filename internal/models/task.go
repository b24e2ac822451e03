package models

import (
	"time"

	"github.com/adelacruz/timeplan/internal/dates"
)

type Task struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	PriorityID  *uint64     `gorm:"index" json:"priority_id"`
	DueDate     *dates.Date `gorm:"index" json:"due_date"`
	CategoryID  uint64      `gorm:"not null;index" json:"category_id"`
	UserID      uint64      `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	Priority *Priority `gorm:"foreignKey:PriorityID" json:"priority,omitempty"`
	Category Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     User      `gorm:"foreignKey:UserID" json:"-"`
}
