package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional emails.
type EmailService interface {
	SendOtpCode(ctx context.Context, toEmail, code, idempotencyKey string) error
}

// NoopEmailService is used when no mail provider is configured; recovery
// codes are then only reachable through the dev echo.
type NoopEmailService struct{}

func (s *NoopEmailService) SendOtpCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	log.Printf("[EmailService] noop send verification code to=%s", toEmail)
	return nil
}

// ResendEmailService sends emails via the Resend REST API.
type ResendEmailService struct {
	from          string
	expiryMinutes int
	client        *resend.Client
}

func NewResendEmailService(apiKey, from string, expiryMinutes int) (*ResendEmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("email from is required")
	}
	if expiryMinutes <= 0 {
		expiryMinutes = 10
	}
	return &ResendEmailService{
		from:          from,
		expiryMinutes: expiryMinutes,
		client:        resend.NewClient(apiKey),
	}, nil
}

func (s *ResendEmailService) SendOtpCode(ctx context.Context, toEmail, code, idempotencyKey string) error {
	if toEmail == "" || code == "" {
		return fmt.Errorf("toEmail and code are required")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{toEmail},
		Subject: "Código de verificación",
		Text: fmt.Sprintf("Tu código de verificación es %s. Este código expira en %d minutos.",
			code, s.expiryMinutes),
		Html: fmt.Sprintf(
			`<div style="font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial;">`+
				`<h2>Verificación de seguridad</h2>`+
				`<p>Tu código de verificación es:</p>`+
				`<div style="font-size: 28px; font-weight: 700; letter-spacing: 6px;">%s</div>`+
				`<p>Este código expira en %d minutos.</p>`+
				`</div>`,
			code, s.expiryMinutes),
	}

	options := &resend.SendEmailOptions{}
	if strings.TrimSpace(idempotencyKey) != "" {
		options.IdempotencyKey = strings.TrimSpace(idempotencyKey)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		_, err := s.client.Emails.SendWithOptions(ctx, params, options)
		if err == nil {
			return nil
		}
		lastErr = err

		if wait, ok := resendRetryDelay(err, attempt); ok {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		return fmt.Errorf("resend send failed: %w", err)
	}

	return fmt.Errorf("resend send failed after retries: %w", lastErr)
}

func resendRetryDelay(err error, attempt int) (time.Duration, bool) {
	var rateLimitErr *resend.RateLimitError
	if errors.As(err, &rateLimitErr) {
		if seconds, convErr := strconv.Atoi(strings.TrimSpace(rateLimitErr.RetryAfter)); convErr == nil && seconds > 0 {
			if seconds > 30 {
				seconds = 30
			}
			return time.Duration(seconds) * time.Second, true
		}
		return time.Duration(attempt+1) * time.Second, true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "temporar") {
		return time.Duration(attempt+1) * 500 * time.Millisecond, true
	}

	return 0, false
}
