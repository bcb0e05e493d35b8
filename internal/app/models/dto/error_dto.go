package dto

// Machine-readable error codes returned in the envelope's error_code field
const (
	ErrorCodeValidation    = "VALIDATION_ERROR"
	ErrorCodeUnauthorized  = "UNAUTHORIZED"
	ErrorCodeInvalidToken  = "INVALID_TOKEN"
	ErrorCodeTokenExpired  = "TOKEN_EXPIRED"
	ErrorCodeForbidden     = "FORBIDDEN"
	ErrorCodeNotFound      = "NOT_FOUND"
	ErrorCodeConflict      = "CONFLICT"
	ErrorCodeAlreadyExists = "ALREADY_EXISTS"
	ErrorCodeRateLimited   = "RATE_LIMITED"
	ErrorCodeServerError   = "SERVER_ERROR"
)

// FieldError scopes a validation failure to one request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
