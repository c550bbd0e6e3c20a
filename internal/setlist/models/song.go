package models

// ============================================================
// Song Model
// ============================================================

// DefaultArtist is applied to songs created without an artist.
const DefaultArtist = "Project One"

// Song is a setlist entry. Title is the catalog key; Performed is the only
// field mutated after creation.
type Song struct {
	Title     string `json:"title" yaml:"title"`
	Artist    string `json:"artist" yaml:"artist"`
	Performed bool   `json:"performed" yaml:"performed"`
	Year      *int   `json:"year" yaml:"year,omitempty"`
}

// NewSong builds a not-yet-performed song, filling in the default artist.
func NewSong(title, artist string, year *int) Song {
	if artist == "" {
		artist = DefaultArtist
	}
	return Song{
		Title:  title,
		Artist: artist,
		Year:   year,
	}
}

// YearPtr is a helper for building songs with a known release year.
func YearPtr(year int) *int {
	return &year
}
