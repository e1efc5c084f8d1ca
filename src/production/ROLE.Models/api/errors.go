package api_models

import (
	"errors"
	"net/http"
)

// Error is a structured API failure carrying a status classification.
// Controllers translate it to the wire exactly once at the boundary.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"error"`
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFound builds a 404 condition: the subject does not exist.
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Message: message}
}

// NewForbidden builds a 403 condition: the subject exists but the caller
// is not its owner.
func NewForbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Message: message}
}

// AsError unwraps a structured API error from an error chain.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err classifies as a 404 condition.
func IsNotFound(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsForbidden reports whether err classifies as a 403 condition.
func IsForbidden(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusForbidden
}
