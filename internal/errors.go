package internal

import (
	"errors"
	"maps"
	"net/http"
)

// HTTPError represents an HTTP error with all data needed for rendering.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Fields are extra members merged into the JSON error body.
	Fields map[string]any

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 400, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// WithField adds a member to the JSON error body.
func WithField(key string, value any) HTTPErrorOption {
	return func(e *HTTPError) {
		if e.Fields == nil {
			e.Fields = make(map[string]any)
		}
		e.Fields[key] = value
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// Helper functions for error inspection.

func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError extracts the HTTPError from an error chain.
// Returns nil if there is none.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// DefaultErrorHandler renders err as {"success": false, "error": message}.
// An *HTTPError keeps its code and extra fields; any other error is a 500
// carrying err.Error().
func DefaultErrorHandler(c Context, err error) error {
	code := http.StatusInternalServerError
	body := map[string]any{}

	message := err.Error()
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		message = httpErr.Message
		maps.Copy(body, httpErr.Fields)
	}

	body["success"] = false
	body["error"] = message

	if code >= http.StatusInternalServerError {
		c.LogError("request failed", "status", code, "error", err)
	} else {
		c.LogWarn("request rejected", "status", code, "error", err)
	}

	return c.JSON(code, body)
}
