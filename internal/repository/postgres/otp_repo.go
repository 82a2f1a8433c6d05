package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// OtpRepo implements repository.OtpRepository.
type OtpRepo struct {
	db *gorm.DB
}

func NewOtpRepo(db *gorm.DB) *OtpRepo {
	return &OtpRepo{db: db}
}

func (r *OtpRepo) Create(code *entity.OtpCode) error {
	return r.db.Create(code).Error
}

func (r *OtpRepo) GetRecentByEmail(email string, limit int) ([]entity.OtpCode, error) {
	var codes []entity.OtpCode
	err := r.db.
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query otp codes: %w", err)
	}
	return codes, nil
}

// Consume flips used=false -> used=true as a single conditional update so
// the transition can only happen once per record, regardless of concurrent
// verify+consume pairs.
func (r *OtpRepo) Consume(id string, usedAt time.Time) error {
	result := r.db.Model(&entity.OtpCode{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to consume otp code: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&entity.OtpCode{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check otp code existence: %w", err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrConflict
	}
	return nil
}
