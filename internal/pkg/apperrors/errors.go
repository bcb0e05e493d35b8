package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrNoRolesAssigned    = errors.New("no roles assigned")
	ErrRoleNotAssigned    = errors.New("role not assigned to this user")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Authorization errors
var (
	ErrPermissionDenied = errors.New("permission denied")
)

// Generic resource errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPhoneAlreadyExists = errors.New("phone number already registered")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleAlreadyExists  = errors.New("role already exists")
)

// Student errors
var (
	ErrStudentNotFound         = errors.New("student profile not found")
	ErrEnrollmentAlreadyExists = errors.New("enrollment number already in use")
	ErrProfileIncomplete       = errors.New("verified profile requires 10th, 12th and CGPA values")
)

// Catalog errors
var (
	ErrCompanyNotFound        = errors.New("company not found")
	ErrCompanyAlreadyExists   = errors.New("company with this name, email or phone already exists")
	ErrPlacementDriveNotFound = errors.New("placement drive not found")
	ErrCompanyDriveNotFound   = errors.New("company drive not found")
	ErrJobNotFound            = errors.New("job not found")
	ErrProgramNotFound        = errors.New("program not found")
)

// Application errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to this drive")
	ErrDriveNotOpen        = errors.New("drive is not accepting applications")
	ErrDeadlinePassed      = errors.New("application deadline has passed")
	ErrProfileNotVerified  = errors.New("student profile is not verified")
	ErrMultipleNotAllowed  = errors.New("this drive allows only one job selection")
	ErrNotEligible         = errors.New("not eligible")
	ErrJobDriveMismatch    = errors.New("job does not belong to this company drive")
	ErrDuplicatePreference = errors.New("duplicate job or preference order in selection")
	ErrInvalidTransition   = errors.New("invalid application state transition")
)

// CustomError carries an underlying sentinel plus request-specific context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError wrapping a sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds a machine-readable error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}
