package service

import (
	"context"
	"time"

	"setlist-api/internal/common/logging"
	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/repository"

	"github.com/charmbracelet/log"
)

// DefaultMaxToggleRetries bounds the optimistic toggle loop.
const DefaultMaxToggleRetries = 3

// Config holds the dependencies of the setlist service
type Config struct {
	Songs    repository.SongStore
	Sessions repository.SessionStore

	// Tokens defaults to RandomTokens with DefaultTokenBytes.
	Tokens TokenGenerator

	// Now defaults to time.Now.
	Now func() time.Time

	// FrontendURL is the base the session share URL points at.
	FrontendURL string

	// OptimisticToggle switches Toggle from last-writer-wins to
	// compare-and-set with bounded retries.
	OptimisticToggle bool
	MaxToggleRetries int

	Logger *log.Logger
}

// service implements the Service interface
type service struct {
	songs    repository.SongStore
	sessions repository.SessionStore
	tokens   TokenGenerator
	now      func() time.Time

	frontendURL string
	optimistic  bool
	maxRetries  int

	logger *log.Logger
}

// New creates a new setlist service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Songs == nil {
		return nil, ErrNilSongStore
	}
	if cfg.Sessions == nil {
		return nil, ErrNilSessionStore
	}

	svc := &service{
		songs:       cfg.Songs,
		sessions:    cfg.Sessions,
		tokens:      cfg.Tokens,
		now:         cfg.Now,
		frontendURL: cfg.FrontendURL,
		optimistic:  cfg.OptimisticToggle,
		maxRetries:  cfg.MaxToggleRetries,
		logger:      cfg.Logger,
	}
	if svc.tokens == nil {
		svc.tokens = NewRandomTokens(DefaultTokenBytes)
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.maxRetries <= 0 {
		svc.maxRetries = DefaultMaxToggleRetries
	}
	if svc.logger == nil {
		svc.logger = logging.Discard()
	}
	return svc, nil
}

// ListSongs returns the whole catalog in store order
func (s *service) ListSongs(ctx context.Context) ([]models.Song, error) {
	return s.songs.ListAll(ctx)
}
