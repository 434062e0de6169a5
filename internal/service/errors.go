package service

import "errors"

var (
	// ErrInvalidCredentials indicates that provided login credentials are
	// incorrect. Unknown email and wrong password both map here so the
	// response cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when registering with an email that
	// is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrTaskNotFound is returned when a task does not exist or is owned
	// by a different user. Callers cannot tell the two cases apart.
	ErrTaskNotFound = errors.New("task not found")
)

// ValidationError reports which input field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
