package apperror

import "net/http"

// AppError carries an HTTP status code alongside the user-facing message.
// The wrapped Err is for server-side logs only and is never serialized.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest is the shape of every policy rejection: rate limit, captcha,
// and field validation failures all surface as 400 with a specific reason.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Internal(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}
