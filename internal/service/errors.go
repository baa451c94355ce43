package service

import "errors"

// Sentinel errors classified by the HTTP layer with errors.Is.
var (
	// ErrInvalidToken wraps any bearer-token verification failure (403).
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserInactive refuses deactivated accounts at the bridge (403).
	ErrUserInactive = errors.New("user account is deactivated")
	// ErrForbidden is an authenticated request the policy denies (403).
	ErrForbidden = errors.New("not authorized")
	// ErrTaskNotFound covers missing and soft-deleted tasks alike (404).
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound is a user id that does not resolve (404).
	ErrUserNotFound = errors.New("user not found")
	// ErrAssigneeNotFound is a referenced assignee that does not exist (400).
	ErrAssigneeNotFound = errors.New("assigned user not found")
)

// ValidationError marks client input rejected before any write (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

// AsValidationError reports whether err is a validation failure and
// returns it for its message.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
