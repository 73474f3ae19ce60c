package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the addressed object does not exist.
var ErrNotFound = errors.New("object not found")

// ErrStorageUnavailable marks a backend fault. The request is safe to retry.
var ErrStorageUnavailable = errors.New("storage unavailable")

// unavailable wraps a backend fault so errors.Is(err, ErrStorageUnavailable)
// holds while the backend detail stays available for the log sink.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, ErrStorageUnavailable)
}
