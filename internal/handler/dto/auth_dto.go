package dto

// LoginRequest carries dashboard credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// OtpSendRequest asks for a recovery code to be mailed.
type OtpSendRequest struct {
	Email string `json:"email" binding:"required"`
}

// OtpVerifyRequest checks a recovery code without consuming it.
type OtpVerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// PasswordResetRequest finishes the recovery flow.
type PasswordResetRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
