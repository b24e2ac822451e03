package repository

import (
	"gorm.io/gorm"

	"github.com/adelacruz/timeplan/internal/models"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return withRetry(func() error {
		return r.db.Create(user).Error
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	err := withRetry(func() error {
		return r.db.First(&user, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := withRetry(func() error {
		return r.db.Where("username = ?", username).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
