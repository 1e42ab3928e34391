package view

import "errors"

var ErrValidation = errors.New("validation failed")
var ErrNotConfirmed = errors.New("action not confirmed")

// ValidationError carries the message shown to the user when input is
// rejected. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// UserMessage returns the text to show for err: the validation message when
// there is one, otherwise fallback.
func UserMessage(err error, fallback string) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return fallback
}

// Confirmation gates destructive operations. Returning false cancels them.
type Confirmation func() bool

// Confirmed is a Confirmation with a fixed answer.
func Confirmed(ok bool) Confirmation {
	return func() bool { return ok }
}
