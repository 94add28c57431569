package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrStore        = NewDomainError("STORE_ERROR", "Underlying store operation failed")
)

// NewStoreError wraps a persistence failure, forwarding the underlying
// message verbatim under the store error code.
func NewStoreError(err error) *DomainError {
	if err == nil {
		return ErrStore
	}
	return NewDomainError("STORE_ERROR", err.Error())
}
