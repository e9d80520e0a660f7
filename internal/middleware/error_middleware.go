package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/questionmaster/api/internal/app/models/dto"
	"github.com/questionmaster/api/internal/pkg/apperrors"
	"github.com/questionmaster/api/internal/pkg/logger"
)

// HandleAPIError maps service-layer errors to HTTP responses. Controllers
// funnel every error through here so the status taxonomy stays in one place.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, err.Error()))
	case errors.Is(err, apperrors.ErrValidationFailed):
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && len(customErr.Fields) > 0 {
			c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(err.Error(), customErr.Fields))
			return
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperrors.ErrBusinessRule):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, err.Error()))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Token has expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Invalid token"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(http.StatusForbidden, err.Error()))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error"))
	}
}

// HandleValidationError converts a gin binding failure into a 400 response.
// Struct tag violations are broken out into a field to message map.
func HandleValidationError(c *gin.Context, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields[fe.Field()] = formatFieldError(fe)
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("Validation failed", fields))
		return
	}

	c.JSON(http.StatusBadRequest,
		dto.NewErrorResponse(http.StatusBadRequest, "Invalid request: "+err.Error()))
}

// formatFieldError creates a human-readable message for a struct tag violation.
func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
