package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable covers every failed round trip to the storage backend:
	// transport errors, non-success HTTP statuses and explicit failure envelopes.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
	// ErrMalformedStoredData marks a stored JSON-encoded column that failed to decode.
	// It never leaves the row normalizer.
	ErrMalformedStoredData = errors.New("malformed stored data")
)

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewBackendUnavailableError reports a non-success response from the backend.
// backendStatus is the backend's HTTP status, message its error text.
func NewBackendUnavailableError(backendStatus int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrBackendUnavailable,
		Details:    fmt.Sprintf("backend responded %d %s: %s", backendStatus, http.StatusText(backendStatus), message),
	}
}

// NewBackendCallError reports a round trip that failed before a response arrived
func NewBackendCallError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrBackendUnavailable,
		Details:    fmt.Sprintf("%s failed", operation),
		Cause:      cause,
	}
}

func NewMalformedStoredDataError(column string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrMalformedStoredData,
		Details:    fmt.Sprintf("column %s could not be decoded", column),
		Field:      column,
		Cause:      cause,
	}
}

func IsBackendUnavailableError(err error) bool {
	return errors.Is(err, ErrBackendUnavailable)
}

func IsMalformedStoredDataError(err error) bool {
	return errors.Is(err, ErrMalformedStoredData)
}
