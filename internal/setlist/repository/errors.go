package repository

import "fmt"

// Error is the error kind returned by every store adapter.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNotFound         Error = "record not found"
	ErrStoreUnavailable Error = "store unavailable"
	ErrDuplicateToken   Error = "duplicate session token"
	ErrDuplicateSong    Error = "song already exists"
	ErrConflict         Error = "concurrent update conflict"
	ErrNilConfig        Error = "config cannot be nil"
	ErrNilClient        Error = "client cannot be nil"
	ErrUnknownDriver    Error = "unknown store driver"
)

// unavailable tags a backend failure as ErrStoreUnavailable while keeping
// the driver error in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
