package service

import (
	"context"

	"setlist-api/internal/setlist/models"

	"github.com/stretchr/testify/mock"
)

// MockSongStore is a mock implementation of repository.SongStore for testing
type MockSongStore struct {
	mock.Mock
}

func (m *MockSongStore) ListAll(ctx context.Context) ([]models.Song, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockSongStore) FindByTitle(ctx context.Context, title string) (*models.Song, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockSongStore) SetPerformed(ctx context.Context, title string, performed bool) error {
	return m.Called(ctx, title, performed).Error(0)
}

func (m *MockSongStore) CompareAndSetPerformed(ctx context.Context, title string, expected, next bool) error {
	return m.Called(ctx, title, expected, next).Error(0)
}

func (m *MockSongStore) IsEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockSongStore) InsertDefaults(ctx context.Context, songs []models.Song) error {
	return m.Called(ctx, songs).Error(0)
}

func (m *MockSongStore) AddSong(ctx context.Context, song models.Song) error {
	return m.Called(ctx, song).Error(0)
}

// MockSessionStore is a mock implementation of repository.SessionStore for testing
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Insert(ctx context.Context, session models.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionStore) FindActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionStore) SetActive(ctx context.Context, token string, active bool) error {
	return m.Called(ctx, token, active).Error(0)
}

// fixedTokens hands out a predetermined sequence of tokens.
type fixedTokens struct {
	tokens []string
	next   int
}

func (f *fixedTokens) Generate() string {
	t := f.tokens[f.next%len(f.tokens)]
	f.next++
	return t
}
