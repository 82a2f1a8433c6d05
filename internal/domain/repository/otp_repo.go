package repository

import (
	"time"

	"github.com/yourusername/hr-api/internal/domain/entity"
)

// OtpRepository persists one-time verification codes. The store is
// append-only except for the single used=false -> used=true transition
// performed by Consume.
type OtpRepository interface {
	// Create appends a new code record and assigns its id.
	Create(code *entity.OtpCode) error

	// GetRecentByEmail returns up to limit records for the (already
	// normalized) email, newest first. Filtering for validity happens at
	// the caller; the store only answers the equality query.
	GetRecentByEmail(email string, limit int) ([]entity.OtpCode, error)

	// Consume marks the record used, guarded on used=false so the
	// transition happens at most once per id. Returns
	// apperrors.ErrConflict when the record was already consumed and
	// apperrors.ErrNotFound when the id does not exist.
	Consume(id string, usedAt time.Time) error
}
