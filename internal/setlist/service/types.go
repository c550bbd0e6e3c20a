package service

import "setlist-api/internal/setlist/models"

// ToggleInput contains parameters for flipping a song
type ToggleInput struct {
	// Title is matched exactly against the catalog
	Title string

	// Token is the caller's session token; empty means none was presented
	Token string
}

// ToggleOutput is the song's new state
type ToggleOutput struct {
	Title     string `json:"title"`
	Performed bool   `json:"performed"`
}

// CreateSessionInput contains parameters for issuing a session
type CreateSessionInput struct {
	// Role is "host" or "guest"; empty defaults to host
	Role string
}

// CreateSessionOutput contains the issued session and its share URL
type CreateSessionOutput struct {
	Session *models.Session

	// URL embeds the token for the frontend, or "/" when no frontend is configured
	URL string
}

// SeedOutput reports what EnsureSeeded did
type SeedOutput struct {
	// Inserted is zero when the store already had songs
	Inserted int
}
