package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yigit/hostelms/internal/pkg/apperrors"
)

// TranslateValidationError converts a validator.ValidationErrors (as produced
// by gin's binding layer) into an apperrors.ValidationError with a
// field -> messages map keyed by the JSON field name.
func TranslateValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewBadRequestError("invalid request body")
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		field := jsonFieldName(fe)
		fields[field] = append(fields[field], validationMessage(fe))
	}

	return apperrors.NewValidationError(fields)
}

// jsonFieldName lowercases the first rune of the struct field name, which
// matches the camelCase JSON tags used across the DTOs.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
