package common

import "fmt"

// APIError is the error every layer hands back to the HTTP edge. Status is
// the response code, Message is shown to the caller as "error".
type APIError struct {
	Status  int            `json:"-"`
	Message string         `json:"error"`
	Details string         `json:"details,omitempty"`
	Fields  map[string]any `json:"fields,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

func Errf(status int, format string, args ...any) APIError {
	return APIError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// NewAPIError creates an APIError with status, message, and optional fields
func NewAPIError(status int, message string, fields map[string]any) APIError {
	return APIError{
		Status:  status,
		Message: message,
		Fields:  fields,
	}
}

// WithDetails returns a copy of e carrying internal error text. Only set it
// when the caller is allowed to see it (development mode).
func (e APIError) WithDetails(details string) APIError {
	e.Details = details
	return e
}
