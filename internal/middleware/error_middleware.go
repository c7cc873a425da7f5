package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yigit/hostelms/internal/app/models/dto"
	"github.com/yigit/hostelms/internal/pkg/apperrors"
	"github.com/yigit/hostelms/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every controller
// funnels its service errors through here so status codes stay consistent.
func HandleAPIError(c *gin.Context, err error) {
	// Validation errors carry a field -> messages map
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").
				WithFieldErrors(validationErr.Fields),
		))
		return
	}

	// A CustomError carries a more specific message for its sentinel
	message := func(fallback string) string {
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			return customErr.Message
		}
		return fallback
	}

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrLeaveRequestNotFound,
		apperrors.ErrPaymentNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message(err.Error())),
		))

	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials"),
		))

	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired"),
		))

	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token"),
		))

	case errors.Is(err, apperrors.ErrEmailNotVerified):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Email not verified"),
		))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied"),
		))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists"),
		))

	case errors.Is(err, apperrors.ErrRoomNumberExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Room number already exists"),
		))

	case errors.Is(err, apperrors.ErrRoomFull):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Room is at full capacity"),
		))

	case errors.Is(err, apperrors.ErrLeaveAlreadyReviewed):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, "Leave request has already been reviewed"),
		))

	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, message("Conflict")),
		))

	case apperrors.Is(err, apperrors.ErrBadRequest,
		apperrors.ErrValidationFailed,
		apperrors.ErrRoomNumberImmutable,
		apperrors.ErrStudentNotInRoom,
		apperrors.ErrInvalidEmailToken,
		apperrors.ErrEmailAlreadyVerified,
		apperrors.ErrInvalidPasswordResetToken):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadRequest, message(err.Error())),
		))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

// HandleBindingError translates a gin binding failure into the validation
// error response shape.
func HandleBindingError(c *gin.Context, err error) {
	HandleAPIError(c, dto.TranslateValidationError(err))
}
