package repositories

import (
	"errors"

	"aileana/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}
