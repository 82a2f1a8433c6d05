package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOtpCode_IsValid_FreshCode(t *testing.T) {
	now := time.Now()
	code := &OtpCode{
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: now.Add(10 * time.Minute),
		Used:      false,
	}

	assert.True(t, code.IsValid(now))
	assert.False(t, code.IsExpired(now))
}

func TestOtpCode_IsValid_ExpiredCode(t *testing.T) {
	now := time.Now()
	code := &OtpCode{
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: now.Add(-1 * time.Minute),
		Used:      false,
	}

	assert.False(t, code.IsValid(now))
	assert.True(t, code.IsExpired(now))
}

func TestOtpCode_IsValid_ExactExpiryInstant(t *testing.T) {
	// A code is no longer valid at exactly expiresAt: validity requires
	// now strictly before the expiry instant.
	now := time.Now()
	code := &OtpCode{ExpiresAt: now, Used: false}

	assert.False(t, code.IsValid(now))
	assert.True(t, code.IsExpired(now))
	assert.True(t, code.IsValid(now.Add(-time.Nanosecond)))
}

func TestOtpCode_IsValid_ConsumedCode(t *testing.T) {
	now := time.Now()
	usedAt := now.Add(-1 * time.Minute)
	code := &OtpCode{
		ExpiresAt: now.Add(5 * time.Minute),
		Used:      true,
		UsedAt:    &usedAt,
	}

	// Consumption is terminal even when the TTL has not run out.
	assert.False(t, code.IsValid(now))
	assert.False(t, code.IsExpired(now))
}

func TestOtpCode_Matches(t *testing.T) {
	code := &OtpCode{Code: "654321"}

	assert.True(t, code.Matches("654321"))
	assert.False(t, code.Matches("654320"))
	assert.False(t, code.Matches(""))
}

func TestOtpCode_BeforeCreate_AssignsID(t *testing.T) {
	code := &OtpCode{}
	err := code.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, code.ID)
}

func TestOtpCode_BeforeCreate_KeepsExistingID(t *testing.T) {
	code := &OtpCode{ID: "fixed-id"}
	err := code.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "fixed-id", code.ID)
}
