package domain

import "context"

// ContactSubmission represents one contact form post. It exists only for
// the duration of the request and is never persisted.
type ContactSubmission struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Message      string `json:"message"`
	CaptchaToken string `json:"captchaToken"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage runs a submission through the relay pipeline:
	// rate limits, bot check, field validation, sanitization, then the
	// outbound email. Rejections surface as *apperror.AppError.
	SendContactMessage(ctx context.Context, sub *ContactSubmission, clientIP string) error
}
