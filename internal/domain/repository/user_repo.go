package repository

import "github.com/yourusername/hr-api/internal/domain/entity"

// UserRepository persists dashboard accounts. It doubles as the identity
// provider surface of the password-reset flow: lookup by email, credential
// update, account creation.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpdatePassword(userID uint, newPassword string) error
}
