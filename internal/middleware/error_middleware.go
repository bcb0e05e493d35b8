package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/placemate/placemate/internal/app/models/dto"
	"github.com/placemate/placemate/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the response envelope. Every
// controller funnels its non-binding errors through here so status codes
// and error codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	var custom *apperrors.CustomError
	message := ""
	var details interface{}
	if errors.As(err, &custom) {
		message = custom.Message
		details = custom.Details
	}

	respond := func(status int, code, fallback string) {
		if message == "" {
			message = fallback
		}
		c.JSON(status, dto.NewErrorResponse(message, code, details))
	}

	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Invalid email or password")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrNoRolesAssigned):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "No roles assigned to this account")
	case errors.Is(err, apperrors.ErrRoleNotAssigned):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Role is not assigned to this account")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(http.StatusUnauthorized, dto.ErrorCodeTokenExpired, "Token has expired")
	case errors.Is(err, apperrors.ErrTokenInvalid),
		errors.Is(err, apperrors.ErrTokenNotFound),
		errors.Is(err, apperrors.ErrTokenRevoked):
		respond(http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid or revoked token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrNotEligible),
		errors.Is(err, apperrors.ErrProfileNotVerified),
		errors.Is(err, apperrors.ErrProfileIncomplete),
		errors.Is(err, apperrors.ErrDriveNotOpen),
		errors.Is(err, apperrors.ErrDeadlinePassed),
		errors.Is(err, apperrors.ErrMultipleNotAllowed),
		errors.Is(err, apperrors.ErrJobDriveMismatch),
		errors.Is(err, apperrors.ErrDuplicatePreference):
		respond(http.StatusUnprocessableEntity, dto.ErrorCodeValidation, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(http.StatusBadRequest, dto.ErrorCodeValidation, "Bad request")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrPhoneAlreadyExists),
		errors.Is(err, apperrors.ErrEnrollmentAlreadyExists),
		errors.Is(err, apperrors.ErrRoleAlreadyExists),
		errors.Is(err, apperrors.ErrCompanyAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyApplied):
		respond(http.StatusConflict, dto.ErrorCodeAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrConflict):
		respond(http.StatusConflict, dto.ErrorCodeConflict, "Conflict")
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrRoleNotFound),
		errors.Is(err, apperrors.ErrCompanyNotFound),
		errors.Is(err, apperrors.ErrPlacementDriveNotFound),
		errors.Is(err, apperrors.ErrCompanyDriveNotFound),
		errors.Is(err, apperrors.ErrJobNotFound),
		errors.Is(err, apperrors.ErrProgramNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound):
		respond(http.StatusNotFound, dto.ErrorCodeNotFound, "Resource not found")
	default:
		message = ""
		details = nil
		respond(http.StatusInternalServerError, dto.ErrorCodeServerError, "Internal server error")
	}
}

// HandleBindingError turns a request binding failure into a validation
// response, with per-field messages when the failure came from validator tags
func HandleBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]dto.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, dto.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: formatValidationError(fe),
			})
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("Validation failed", dto.ErrorCodeValidation, fields))
		return
	}
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request format", dto.ErrorCodeValidation, nil))
}

func formatValidationError(e validator.FieldError) string {
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
	case "url":
		return e.Field() + " must be a valid URL"
	default:
		return e.Field() + " failed " + e.Tag() + " validation"
	}
}
