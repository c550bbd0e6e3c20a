package service

// ServiceError is a custom error type for setlist service errors
type ServiceError string

// Error implements the error interface
func (e ServiceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnauthenticated ServiceError = "missing, invalid or inactive token"
	ErrInvalidRole     ServiceError = "role must be host or guest"
	ErrNilConfig       ServiceError = "config cannot be nil"
	ErrNilSongStore    ServiceError = "song store cannot be nil"
	ErrNilSessionStore ServiceError = "session store cannot be nil"
)
