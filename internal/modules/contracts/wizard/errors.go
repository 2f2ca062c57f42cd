package wizard

import "errors"

var (
	ErrStepMismatch = errors.New("operation not allowed at current step")
	ErrUnknownField = errors.New("unknown field")
)

// ValidationError is a recoverable input failure shown inline next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
