package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/domain/repository"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// PasswordResetService composes the recovery flow on top of the OTP
// manager: request a code, check a code, reset the credential.
//
// A reset for an address without an account creates the account instead of
// failing, so the first login of a new clerk can go through recovery.
type PasswordResetService struct {
	otpService   *OtpService
	userRepo     repository.UserRepository
	emailService EmailService
}

func NewPasswordResetService(
	otpService *OtpService,
	userRepo repository.UserRepository,
	emailService EmailService,
) (*PasswordResetService, error) {
	if otpService == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if emailService == nil {
		return nil, fmt.Errorf("email service is required")
	}
	return &PasswordResetService{
		otpService:   otpService,
		userRepo:     userRepo,
		emailService: emailService,
	}, nil
}

// RequestCode issues a code and mails it. The code is returned alongside
// any delivery error: the record is already stored by then, so a failed
// dispatch does not roll issuance back. Callers must not expose the code
// outside dev mode.
func (s *PasswordResetService) RequestCode(ctx context.Context, email string) (string, error) {
	record, err := s.otpService.Issue(ctx, email)
	if err != nil {
		return "", err
	}

	idempotencyKey := fmt.Sprintf("otp-reset:%s", record.ID)
	if err := s.emailService.SendOtpCode(ctx, record.Email, record.Code, idempotencyKey); err != nil {
		return record.Code, fmt.Errorf("%w: %v", ErrEmailDelivery, err)
	}

	return record.Code, nil
}

// CheckCode verifies without consuming, so the dashboard can validate the
// code on its own step before asking for the new password.
func (s *PasswordResetService) CheckCode(ctx context.Context, email, code string) (string, error) {
	return s.otpService.Verify(ctx, email, code)
}

// Reset verifies the code, updates the account credential (creating the
// account when the address has none), and finally consumes the code.
func (s *PasswordResetService) Reset(ctx context.Context, email, code, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return fmt.Errorf("%w: empty password", apperrors.ErrValidation)
	}

	matchID, err := s.otpService.Verify(ctx, email, code)
	if err != nil {
		return err
	}

	normalized := normalizeEmail(email)
	user, err := s.userRepo.GetByEmail(normalized)
	switch {
	case err == nil:
		if err := s.userRepo.UpdatePassword(user.ID, newPassword); err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
	case errors.Is(err, apperrors.ErrNotFound):
		created := &entity.User{Email: normalized, Password: newPassword}
		if err := s.userRepo.Create(created); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
	default:
		return fmt.Errorf("failed to look up account: %w", err)
	}

	if err := s.otpService.Consume(ctx, matchID); err != nil {
		return err
	}
	return nil
}
