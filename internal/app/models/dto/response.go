package dto

import "time"

// ErrorCode represents standardized error codes returned to clients
type ErrorCode string

const (
	ErrorCodeBadRequest            ErrorCode = "BAD_REQUEST"
	ErrorCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrorCodeUnauthorized          ErrorCode = "UNAUTHORIZED"
	ErrorCodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	ErrorCodeInvalidToken          ErrorCode = "INVALID_TOKEN"
	ErrorCodeExpiredToken          ErrorCode = "EXPIRED_TOKEN"
	ErrorCodeTokenNotFound         ErrorCode = "TOKEN_NOT_FOUND"
	ErrorCodeForbidden             ErrorCode = "FORBIDDEN"
	ErrorCodeResourceNotFound      ErrorCode = "RESOURCE_NOT_FOUND"
	ErrorCodeResourceAlreadyExists ErrorCode = "RESOURCE_ALREADY_EXISTS"
	ErrorCodeConflict              ErrorCode = "CONFLICT"
	ErrorCodeInternalServer        ErrorCode = "INTERNAL_SERVER_ERROR"
)

// ErrorDetail describes an error in an API response
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	// Errors carries per-field validation messages when Code is VALIDATION_FAILED
	Errors map[string][]string `json:"errors,omitempty"`
}

// NewErrorDetail creates a new ErrorDetail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds free-form details to the error
func (e *ErrorDetail) WithDetails(details string) *ErrorDetail {
	e.Details = details
	return e
}

// WithFieldErrors attaches per-field validation messages
func (e *ErrorDetail) WithFieldErrors(fields map[string][]string) *ErrorDetail {
	e.Errors = fields
	return e
}

// APIResponse is the envelope for all API responses
type APIResponse struct {
	Success   bool         `json:"success"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope around data
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorResponse creates an error envelope around an ErrorDetail
func NewErrorResponse(errorDetail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// MessageResponse is a simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}
