package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adelacruz/timeplan/internal/models"
)

// Migrate creates the schema and seeds the fixed lookup vocabularies.
func Migrate(db *gorm.DB) error {
	log.Println("running database migrations")
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Priority{},
		&models.Task{},
		&models.RecurringTask{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seedCategories(db); err != nil {
		return err
	}
	if err := seedPriorities(db); err != nil {
		return err
	}

	log.Println("database migrations completed")
	return nil
}

// seedCategories inserts the closed category vocabulary. Exactly these three
// exist; every task references one of them.
func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: models.CategoryOngoing},
		{Name: models.CategoryMissed},
		{Name: models.CategoryCompleted},
	}
	err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&categories).Error
	if err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

func seedPriorities(db *gorm.DB) error {
	priorities := []models.Priority{
		{Name: models.PriorityUrgent, Level: models.PriorityLevelUrgent},
		{Name: models.PriorityNotUrgent, Level: models.PriorityLevelNotUrgent},
	}
	err := db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&priorities).Error
	if err != nil {
		return fmt.Errorf("failed to seed priorities: %w", err)
	}
	return nil
}
