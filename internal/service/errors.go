package service

import "errors"

// Service-level errors.
var (
	// ErrInvalidOtpCode covers every verification failure: wrong code,
	// expired, already used or unknown email. Collapsing them keeps the
	// API from disclosing which case applied.
	ErrInvalidOtpCode = errors.New("invalid or expired verification code")

	// ErrOtpAlreadyConsumed is returned when consuming a code that was
	// already spent. In the intended flow consume runs once right after a
	// successful verify, so hitting this means a caller bug or a lost race.
	ErrOtpAlreadyConsumed = errors.New("verification code already consumed")

	// ErrEmailDelivery is returned when the code was stored but the mail
	// could not be dispatched. Issuance is not rolled back.
	ErrEmailDelivery = errors.New("email delivery failed")

	// ErrInvalidCredentials is returned on failed dashboard logins.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
