package snipeitapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned by NewClient when the base URL or API token is
// missing. Tools surface this as a configuration error without attempting any
// network call.
var ErrNotConfigured = errors.New("Snipe-IT URL and API token must be configured")

// NotFoundError is returned when the API answers 404 for a resource.
type NotFoundError struct {
	// Endpoint is the API path that was requested, relative to /api/v1.
	Endpoint string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Endpoint)
}

// AuthenticationError is returned when the API answers 401. Credentials do not
// self-heal, so callers should not retry.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// ValidationError is returned when the API rejects a request with 422, or when
// a 2xx body carries an application-level {"status":"error"} payload. Messages
// holds the field-level errors when the API provides them; Raw preserves the
// remote messages verbatim so agents can surface them to a human unmodified.
type ValidationError struct {
	Messages map[string][]string
	Raw      string
}

func (e *ValidationError) Error() string {
	return e.Raw
}

// newValidationError builds a ValidationError from the raw "messages" value of
// an error response. The value may be an object of field -> messages, a plain
// string, or anything else the server decides to send; Raw keeps it verbatim.
func newValidationError(messages json.RawMessage) *ValidationError {
	verr := &ValidationError{Raw: string(messages)}
	var fields map[string][]string
	if err := json.Unmarshal(messages, &fields); err == nil {
		verr.Messages = fields
		return verr
	}
	var s string
	if err := json.Unmarshal(messages, &s); err == nil {
		verr.Raw = s
	}
	return verr
}

// APIError is returned for any other non-2xx response.
type APIError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s: %s", e.StatusCode, e.Endpoint, e.Body)
}
