package repository

import (
	"context"

	"setlist-api/internal/setlist/models"
)

// Collection names shared by all adapters.
const (
	SongCollection    = "song"
	SessionCollection = "session"
)

// SongStore persists the catalog and each song's performed flag.
type SongStore interface {
	// ListAll returns every song in insertion order.
	ListAll(ctx context.Context) ([]models.Song, error)

	// FindByTitle returns ErrNotFound when no song has the exact title.
	FindByTitle(ctx context.Context, title string) (*models.Song, error)

	// SetPerformed overwrites the flag unconditionally (last writer wins).
	SetPerformed(ctx context.Context, title string, performed bool) error

	// CompareAndSetPerformed writes next only if the stored flag equals
	// expected, otherwise it returns ErrConflict.
	CompareAndSetPerformed(ctx context.Context, title string, expected, next bool) error

	IsEmpty(ctx context.Context) (bool, error)

	// InsertDefaults bulk-inserts songs, skipping titles that already exist.
	InsertDefaults(ctx context.Context, songs []models.Song) error

	// AddSong inserts a single song, failing with ErrDuplicateSong.
	AddSong(ctx context.Context, song models.Song) error
}

// SessionStore persists issued sessions keyed by token.
type SessionStore interface {
	// Insert fails with ErrDuplicateToken if the token was already issued.
	Insert(ctx context.Context, session models.Session) error

	// FindActiveByToken returns ErrNotFound for unknown and inactive tokens alike.
	FindActiveByToken(ctx context.Context, token string) (*models.Session, error)

	// SetActive is used by operators; the service itself never deactivates.
	SetActive(ctx context.Context, token string, active bool) error
}

// Diagnostics reports backend reachability for the /test and readiness endpoints.
type Diagnostics interface {
	Driver() string
	Ping(ctx context.Context) error
	Collections(ctx context.Context) ([]string, error)
}

// Store is implemented by every adapter.
type Store interface {
	SongStore
	SessionStore
	Diagnostics
	Close() error
}
