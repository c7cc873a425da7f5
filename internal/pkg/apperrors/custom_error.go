package apperrors

// CustomError wraps a sentinel error with a human-readable message.
// errors.Is still matches the wrapped sentinel through Unwrap.
type CustomError struct {
	Err     error
	Message string
}

// Error returns the custom message if set, otherwise the sentinel's text
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped sentinel error
func (e *CustomError) Unwrap() error {
	return e.Err
}

// ValidationError carries per-field validation messages alongside the
// ErrValidationFailed sentinel.
type ValidationError struct {
	Fields map[string][]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return ErrValidationFailed.Error()
}

// Unwrap makes errors.Is(err, ErrValidationFailed) work
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a ValidationError from a field -> messages map
func NewValidationError(fields map[string][]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldError creates a ValidationError for a single field
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}
