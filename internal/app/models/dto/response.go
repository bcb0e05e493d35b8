package dto

import "time"

// APIResponse is the envelope every endpoint returns, success or failure
type APIResponse struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Errors     interface{}     `json:"errors,omitempty"`
	ErrorCode  string          `json:"error_code,omitempty"`
}

// PaginationInfo is the pagination block attached to list responses
type PaginationInfo struct {
	Count       int64   `json:"count"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
	PageSize    int     `json:"page_size"`
}

// NewSuccessResponse builds a success envelope
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// NewPaginatedResponse builds a success envelope with pagination
func NewPaginatedResponse(message string, data interface{}, pagination *PaginationInfo) APIResponse {
	return APIResponse{
		Success:    true,
		Message:    message,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pagination,
	}
}

// NewErrorResponse builds a failure envelope
func NewErrorResponse(message, errorCode string, errors interface{}) APIResponse {
	return APIResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Errors:    errors,
		ErrorCode: errorCode,
	}
}
