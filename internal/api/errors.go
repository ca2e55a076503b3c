// ABOUTME: Error taxonomy for the blogging REST backend.
// ABOUTME: Maps transport failures and HTTP statuses onto sentinels matched with errors.Is.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNetwork covers transport failures and an open circuit breaker.
	ErrNetwork = errors.New("network error")
	// ErrUnauthorized is returned for 401 and 403 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when the server rejects input (400, 422).
	ErrValidation = errors.New("validation failed")
	// ErrServer is returned for every other status >= 400.
	ErrServer = errors.New("server error")
)

// Error is a failed API call. Message is what the server said, shown
// verbatim; it is empty when the server gave no message.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("remote API returned %d: %s", e.Status, http.StatusText(e.Status))
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	} `json:"errors"`
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrServer
	}
}

// statusError builds an Error from a non-2xx response body.
func statusError(status int, body []byte) *Error {
	e := &Error{Kind: kindForStatus(status), Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Message = strings.TrimSpace(eb.Message)
		if e.Message == "" && len(eb.Errors) > 0 {
			e.Message = eb.Errors[0].Msg
			if e.Message == "" {
				e.Message = eb.Errors[0].Message
			}
		}
	}
	return e
}

func networkError(err error) *Error {
	return &Error{Kind: ErrNetwork, Err: err}
}

// MessageOr returns the server's message for err, or fallback when the
// server did not send one.
func MessageOr(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// IsRetryable reports whether err came from the transport or a 5xx response.
func IsRetryable(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == ErrNetwork || apiErr.Status >= 500
}
