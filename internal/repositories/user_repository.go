package repositories

import (
	"takapay/internal/models"
)

// UserListFilter narrows the admin user listing. Empty fields are ignored.
// Date bounds are ISO dates (YYYY-MM-DD), inclusive.
type UserListFilter struct {
	Search         string
	CreatedAtStart string
	CreatedAtEnd   string
	Role           string
	Status         string
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhone(phone string) (*models.User, error)
	Update(user *models.User) error
	UpdateStatus(id uint, status string) error
	Delete(id uint) error
	IncrementTokenVersion(userID uint) error

	// ListFiltered returns one page of users plus the total number of users
	// matching the filter.
	ListFiltered(filter UserListFilter, limit, offset int) ([]models.User, int64, error)
}
