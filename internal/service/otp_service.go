package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/domain/repository"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// Code range [100000, 999999]. The lower bound means a code never starts
// with a zero; the range is part of what recipients and support staff
// expect, so it stays as is.
const (
	otpCodeMin  = 100000
	otpCodeSpan = 900000
)

// OtpService issues, verifies and consumes single-use verification codes
// scoped to an email address.
//
// Issue appends a record with a fixed TTL and never touches earlier codes
// for the same address, so several valid codes may coexist. Verify is
// read-only and scans a bounded window of recent records. Consume is the
// only mutation and happens at most once per record.
type OtpService struct {
	otpRepo   repository.OtpRepository
	ttl       time.Duration
	scanLimit int
}

func NewOtpService(otpRepo repository.OtpRepository, ttl time.Duration, scanLimit int) (*OtpService, error) {
	if otpRepo == nil {
		return nil, fmt.Errorf("otp repository is required")
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if scanLimit <= 0 {
		scanLimit = 20
	}
	return &OtpService{
		otpRepo:   otpRepo,
		ttl:       ttl,
		scanLimit: scanLimit,
	}, nil
}

// Issue generates a random code for the email and persists it with
// expiry now+TTL. The returned record carries the plaintext code; the
// caller is responsible for delivery.
func (s *OtpService) Issue(ctx context.Context, email string) (*entity.OtpCode, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty email", apperrors.ErrValidation)
	}

	code, err := generateOtpCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	now := time.Now()
	record := &entity.OtpCode{
		Email:     normalized,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		Used:      false,
		CreatedAt: now,
	}
	if err := s.otpRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}

	return record, nil
}

// Verify looks for a not-yet-consumed, unexpired record matching both the
// email and the code, and returns its id for a later Consume. It never
// mutates state: repeating the call with a still-valid code keeps
// succeeding until the record is consumed.
//
// The scan is bounded to the most recent records; newest first, so when
// several codes are valid the latest one wins.
func (s *OtpService) Verify(ctx context.Context, email, code string) (string, error) {
	normalized := normalizeEmail(email)
	if normalized == "" || strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("%w: email and code are required", apperrors.ErrValidation)
	}

	records, err := s.otpRepo.GetRecentByEmail(normalized, s.scanLimit)
	if err != nil {
		return "", fmt.Errorf("failed to look up verification codes: %w", err)
	}

	now := time.Now()
	for i := range records {
		record := &records[i]
		if record.IsValid(now) && record.Matches(code) {
			return record.ID, nil
		}
	}

	return "", ErrInvalidOtpCode
}

// Consume marks the record as used. The underlying update is conditional
// on used=false, so a second consume of the same id reports
// ErrOtpAlreadyConsumed instead of silently succeeding.
func (s *OtpService) Consume(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty otp id", apperrors.ErrValidation)
	}
	if err := s.otpRepo.Consume(id, time.Now()); err != nil {
		if err == apperrors.ErrConflict {
			return ErrOtpAlreadyConsumed
		}
		return fmt.Errorf("failed to consume verification code: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(otpCodeMin+n.Int64(), 10), nil
}
