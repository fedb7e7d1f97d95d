package util

import "fmt"

// Error taxonomy surfaced in the response envelope's "type" field.
const (
	ErrTypeValidation         = "ValidationFailed"
	ErrTypeInvalidCredentials = "InvalidCredentials"
	ErrTypeConflict           = "Conflict"
	ErrTypeUnauthenticated    = "Unauthenticated"
	ErrTypeForbidden          = "Forbidden"
	ErrTypeNotFound           = "NotFound"
	ErrTypeConfiguration      = "ConfigurationFault"
	ErrTypeStore              = "StoreFault"
)

// APIError is a failure the controller is allowed to show to the client.
// Anything that is not an APIError renders as a generic 500.
type APIError struct {
	Status   int
	Type     string
	Msg      string
	Location string
}

func (e *APIError) Error() string { return e.Msg }

func NewAPIError(status int, errType, location, format string, args ...interface{}) *APIError {
	return &APIError{
		Status:   status,
		Type:     errType,
		Msg:      fmt.Sprintf(format, args...),
		Location: location,
	}
}
