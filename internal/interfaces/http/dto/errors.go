package dto

import "net/http"

// Error codes surfaced by the API.
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeStore        = "STORE_ERROR"
	ErrCodeInternal     = "INTERNAL"
)

// errorStatusMap maps error codes to HTTP status codes
var errorStatusMap = map[string]int{
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeStore:        http.StatusInternalServerError,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes default to 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorStatusMap[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the wire shape of every JSON error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse creates an error response body
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}
