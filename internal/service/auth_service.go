package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/domain/repository"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
	"github.com/yourusername/hr-api/pkg/auth"
)

// AuthService authenticates dashboard accounts and issues bearer tokens.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("jwt service is required")
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}, nil
}

// Login checks credentials and returns a signed token plus the account.
// Unknown email and wrong password collapse into the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if !user.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

// GetUser returns the account behind an authenticated request.
func (s *AuthService) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	return s.userRepo.GetByID(userID)
}
