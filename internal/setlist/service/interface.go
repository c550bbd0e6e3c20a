package service

import (
	"context"

	"setlist-api/internal/setlist/models"
)

// Service defines the setlist operations exposed over HTTP
type Service interface {
	// ListSongs returns the whole catalog
	ListSongs(ctx context.Context) ([]models.Song, error)

	// Authorize resolves a presented token to its active session
	Authorize(ctx context.Context, token string) (*models.Session, error)

	// Toggle flips a song's performed flag for an authorized caller
	Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error)

	// CreateSession issues a new token for the requested role
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// EnsureSeeded inserts the catalog when the song store is empty
	EnsureSeeded(ctx context.Context, catalog []models.Song) (*SeedOutput, error)
}
