package repository

import (
	"context"
	"sync"

	"setlist-api/internal/setlist/models"
)

// ============================================================
// In-Memory Repository
// ============================================================

// MemoryStore keeps both collections in process. The mutex only makes the
// maps safe to share; toggles still read and write in separate calls.
type MemoryStore struct {
	mu       sync.RWMutex
	titles   []string
	songs    map[string]models.Song
	sessions map[string]models.Session
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		songs:    make(map[string]models.Song),
		sessions: make(map[string]models.Session),
	}
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	songs := make([]models.Song, 0, len(m.titles))
	for _, title := range m.titles {
		songs = append(songs, m.songs[title])
	}
	return songs, nil
}

func (m *MemoryStore) FindByTitle(ctx context.Context, title string) (*models.Song, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	song, ok := m.songs[title]
	if !ok {
		return nil, ErrNotFound
	}
	return &song, nil
}

func (m *MemoryStore) SetPerformed(ctx context.Context, title string, performed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	song, ok := m.songs[title]
	if !ok {
		return ErrNotFound
	}
	song.Performed = performed
	m.songs[title] = song
	return nil
}

func (m *MemoryStore) CompareAndSetPerformed(ctx context.Context, title string, expected, next bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	song, ok := m.songs[title]
	if !ok {
		return ErrNotFound
	}
	if song.Performed != expected {
		return ErrConflict
	}
	song.Performed = next
	m.songs[title] = song
	return nil
}

func (m *MemoryStore) IsEmpty(ctx context.Context) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.titles) == 0, nil
}

func (m *MemoryStore) InsertDefaults(ctx context.Context, songs []models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, song := range songs {
		if _, exists := m.songs[song.Title]; exists {
			continue
		}
		m.put(song)
	}
	return nil
}

func (m *MemoryStore) AddSong(ctx context.Context, song models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.songs[song.Title]; exists {
		return ErrDuplicateSong
	}
	m.put(song)
	return nil
}

func (m *MemoryStore) put(song models.Song) {
	m.titles = append(m.titles, song.Title)
	m.songs[song.Title] = song
}

func (m *MemoryStore) Insert(ctx context.Context, session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.Token]; exists {
		return ErrDuplicateToken
	}
	m.sessions[session.Token] = session
	return nil
}

func (m *MemoryStore) FindActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[token]
	if !ok || !session.Active {
		return nil, ErrNotFound
	}
	return &session, nil
}

func (m *MemoryStore) SetActive(ctx context.Context, token string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return ErrNotFound
	}
	session.Active = active
	m.sessions[token] = session
	return nil
}

func (m *MemoryStore) Driver() string { return DriverMemory }

func (m *MemoryStore) Ping(ctx context.Context) error { return nil }

func (m *MemoryStore) Collections(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	if len(m.songs) > 0 {
		names = append(names, SongCollection)
	}
	if len(m.sessions) > 0 {
		names = append(names, SessionCollection)
	}
	return names, nil
}

func (m *MemoryStore) Close() error { return nil }
