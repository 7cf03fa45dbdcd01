package api

import "fmt"

// APIError represents an error returned by the document store.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsForbidden returns true if the error is a 403 Forbidden error, the
// status the store answers with when a request escapes its owner scope.
func (e *APIError) IsForbidden() bool {
	return e.StatusCode == 403
}

// IsAPIError checks if an error is an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}
