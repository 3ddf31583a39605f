package usecase

import (
	"context"
	"strings"

	"go-contact-relay/internal/domain"
	"go-contact-relay/pkg/apperror"
	"go-contact-relay/pkg/email"
	"go-contact-relay/pkg/logger"
	"go-contact-relay/pkg/ratelimit"
	"go-contact-relay/pkg/sanitize"
	"go-contact-relay/pkg/validation"
)

// User-facing rejection reasons. Policy rejections are specific; the relay
// failure deliberately hides the underlying cause.
const (
	MsgAllFieldsRequired = "All fields are required"
	MsgInvalidFirstName  = "First name must be 2-50 letters and may include spaces, hyphens, and apostrophes"
	MsgInvalidLastName   = "Last name must be 2-50 letters and may include spaces, hyphens, and apostrophes"
	MsgInvalidEmail      = "Please provide a valid email address"
	MsgInvalidMessage    = "Message must be between 10 and 1000 characters"
	MsgProhibited        = "Message contains prohibited content."
	MsgExcessiveCaps     = "Message contains excessive capital letters"
	MsgCaptchaFailed     = "Captcha verification failed. Please try again."
	MsgDailyLimit        = "Daily message limit reached. Please try again tomorrow."
	MsgShortLimit        = "Please wait a minute before sending another message."
	MsgSendFailed        = "Failed to send email. Please try again later."
)

// CaptchaVerifier reports whether a client token belongs to a human
// submission. Implementations must treat their own failures as rejection.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) bool
}

// ContactMailer relays a sanitized submission as an outbound email.
type ContactMailer interface {
	SendContactEmail(data email.ContactEmailData) error
}

type contactUsecase struct {
	limiter  *ratelimit.Limiter
	daily    ratelimit.Window
	short    ratelimit.Window
	verifier CaptchaVerifier
	mailer   ContactMailer
}

// NewContactUsecase creates a new contact usecase. daily gates per client
// IP, short gates per IP+email composite.
func NewContactUsecase(limiter *ratelimit.Limiter, daily, short ratelimit.Window, verifier CaptchaVerifier, mailer ContactMailer) domain.ContactUsecase {
	return &contactUsecase{
		limiter:  limiter,
		daily:    daily,
		short:    short,
		verifier: verifier,
		mailer:   mailer,
	}
}

// SendContactMessage applies the pipeline stages in fixed order and
// short-circuits on the first failure. No side effect beyond the consumed
// rate-limit counters happens before a rejection.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, sub *domain.ContactSubmission, clientIP string) error {
	// Gate 1: daily cap per network address
	if res := uc.limiter.Allow(ctx, uc.daily, clientIP); !res.Allowed {
		logger.Log.Warn("daily rate limit exceeded", "ip", clientIP, "count", res.Count)
		return apperror.BadRequest(MsgDailyLimit)
	}

	// Gate 2: short cap per network address + email. The email is
	// normalized before keying so case variants share a bucket.
	shortKey := clientIP + ":" + sanitize.Email(sub.Email)
	if res := uc.limiter.Allow(ctx, uc.short, shortKey); !res.Allowed {
		logger.Log.Info("short-window rate limit exceeded", "ip", clientIP)
		return apperror.BadRequest(MsgShortLimit)
	}

	// Bot check before any field validation. Verify rejects an absent
	// token without a network call.
	if !uc.verifier.Verify(ctx, sub.CaptchaToken, clientIP) {
		return apperror.BadRequest(MsgCaptchaFailed)
	}

	// Presence of all four fields, before any format check
	if strings.TrimSpace(sub.FirstName) == "" ||
		strings.TrimSpace(sub.LastName) == "" ||
		strings.TrimSpace(sub.Email) == "" ||
		strings.TrimSpace(sub.Message) == "" {
		return apperror.BadRequest(MsgAllFieldsRequired)
	}

	if !validation.ValidName(sub.FirstName) {
		return apperror.BadRequest(MsgInvalidFirstName)
	}
	if !validation.ValidName(sub.LastName) {
		return apperror.BadRequest(MsgInvalidLastName)
	}
	if !validation.ValidEmail(sub.Email) {
		return apperror.BadRequest(MsgInvalidEmail)
	}
	if !validation.ValidMessageLength(sub.Message) {
		return apperror.BadRequest(MsgInvalidMessage)
	}
	if token, found := validation.SpamToken(sub.Message); found {
		// Best-effort content filter, not fraud prevention. The sender
		// address is the only sensitive field logged.
		logger.Log.Warn("spam content rejected", "email", sub.Email, "matched", token)
		return apperror.BadRequest(MsgProhibited)
	}
	if validation.ExcessiveCaps(sub.Message) {
		return apperror.BadRequest(MsgExcessiveCaps)
	}

	// Every field is sanitized before it is used in output
	data := email.ContactEmailData{
		SenderName:  sanitize.Clean(sub.FirstName) + " " + sanitize.Clean(sub.LastName),
		SenderEmail: sanitize.Email(sub.Email),
		Message:     sanitize.Clean(sub.Message),
	}

	if err := uc.mailer.SendContactEmail(data); err != nil {
		logger.Log.Error("contact email send failed", "error", err)
		return apperror.Internal(MsgSendFailed, err)
	}

	return nil
}
