// Package apperr defines the error kinds the chat core reports to its callers.
// Absence is not an error: lookups return nil values instead.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrValidation means the caller supplied empty or malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict means the write would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means a referenced resource the operation depends on is absent.
	ErrNotFound = errors.New("not found")
)

// Validation returns an ErrValidation carrying a client-facing message.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Conflict returns an ErrConflict carrying a client-facing message.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// NotFound returns an ErrNotFound carrying a client-facing message.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// IsClientError reports whether err is one of the kinds caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}

// HTTPStatus maps an error kind to the status code the transport responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing part of err, without the kind prefix.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, kind := range []error{ErrValidation, ErrConflict, ErrNotFound} {
		if msg, ok := strings.CutPrefix(err.Error(), kind.Error()+": "); ok {
			return msg
		}
	}
	return err.Error()
}
