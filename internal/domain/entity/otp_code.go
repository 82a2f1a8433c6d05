package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpCode is a single-use numeric verification code tied to an email
// address. Records are append-only: expiry is evaluated lazily at read time
// and consumption is the only mutation a record ever sees.
type OtpCode struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string     `gorm:"size:100;not null;index" json:"email"`
	Code      string     `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	Used      bool       `gorm:"not null;default:false" json:"used"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (OtpCode) TableName() string {
	return "otp_codes"
}

func (o *OtpCode) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

func (o *OtpCode) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// IsValid reports whether the code can still be accepted: not yet consumed
// and strictly before its expiry instant.
func (o *OtpCode) IsValid(now time.Time) bool {
	return !o.Used && now.Before(o.ExpiresAt)
}

// Matches compares the stored code against a candidate. Codes are compared
// as strings; they are only meaningful together with the record's email.
func (o *OtpCode) Matches(code string) bool {
	return o.Code == code
}
