package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendUnavailable wraps transport failures: timeouts, refused
	// connections, TLS failures.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrIncompatibleResponse marks a response the client could not decode,
	// which indicates a client/server contract mismatch.
	ErrIncompatibleResponse = errors.New("incompatible backend response")

	// ErrOrderRejected is returned when the backend answered but explicitly
	// refused the order.
	ErrOrderRejected = errors.New("backend rejected the order")
)

// APIError carries a non-2xx status the backend answered with.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend request failed with status %d: %s", e.Status, e.Body)
}
