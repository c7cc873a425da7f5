package validation

import (
	"regexp"
	"strings"
)

// Field length rules shared between request binding and service-level checks.
const (
	PasswordMinLength = 6
	NameMinLength     = 2
	ReasonMinLength   = 10
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether the string looks like an email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword reports whether the password satisfies the minimum length rule
func IsValidPassword(password string) bool {
	return len(password) >= PasswordMinLength
}

// IsValidName reports whether the trimmed name satisfies the minimum length rule
func IsValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= NameMinLength
}

// IsValidReason reports whether the trimmed reason satisfies the minimum length rule
func IsValidReason(reason string) bool {
	return len(strings.TrimSpace(reason)) >= ReasonMinLength
}

// NormalizeEmail lowercases and trims an email address for storage and lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
