package service

import (
	"context"
	"fmt"

	"setlist-api/internal/setlist/models"
)

// ============================================================
// Seeding
// ============================================================

// defaultCatalog is the built-in setlist: every track of the 2008 album.
var defaultCatalog = []string{
	"Life Beyond Earth",
	"The Story Unfolds",
	"The Art of Creation",
	"The World Is Yours",
	"Numbers",
	"Fantasy or Reality",
	"It’s All In Your Head",
}

const defaultCatalogYear = 2008

// DefaultCatalog returns a fresh copy of the built-in songs, none performed.
func DefaultCatalog() []models.Song {
	songs := make([]models.Song, 0, len(defaultCatalog))
	for _, title := range defaultCatalog {
		songs = append(songs, models.NewSong(title, models.DefaultArtist, models.YearPtr(defaultCatalogYear)))
	}
	return songs
}

// EnsureSeeded inserts catalog only when the song store holds nothing. The
// content of an existing catalog is never inspected. Startup callers log the
// returned error and carry on.
func (s *service) EnsureSeeded(ctx context.Context, catalog []models.Song) (*SeedOutput, error) {
	empty, err := s.songs.IsEmpty(ctx)
	if err != nil {
		return &SeedOutput{}, fmt.Errorf("seed: %w", err)
	}
	if !empty {
		return &SeedOutput{}, nil
	}

	if err := s.songs.InsertDefaults(ctx, catalog); err != nil {
		return &SeedOutput{}, fmt.Errorf("seed: %w", err)
	}
	return &SeedOutput{Inserted: len(catalog)}, nil
}
