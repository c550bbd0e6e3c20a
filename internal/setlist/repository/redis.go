package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"setlist-api/internal/setlist/models"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes every key written by the Redis store.
const DefaultNamespace = "setlist"

// RedisConfig holds configuration for the Redis store
type RedisConfig struct {
	// Redis client
	RedisClient *redis.Client

	// Namespace is prepended to every key. Defaults to DefaultNamespace.
	Namespace string
}

// RedisStore keeps songs as hashes (one per title) plus a list preserving
// insertion order, and sessions as JSON documents keyed by token.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// NewRedis creates a Redis-backed store. It does not ping: the service has
// to start even when Redis is down.
func NewRedis(cfg *RedisConfig) (*RedisStore, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RedisClient == nil {
		return nil, ErrNilClient
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &RedisStore{
		client:    cfg.RedisClient,
		namespace: namespace,
	}, nil
}

func (r *RedisStore) songKey(title string) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, SongCollection, title)
}

func (r *RedisStore) songIndexKey() string {
	return fmt.Sprintf("%s:%ss", r.namespace, SongCollection)
}

func (r *RedisStore) sessionKey(token string) string {
	return fmt.Sprintf("%s:%s:%s", r.namespace, SessionCollection, token)
}

// ============================================================
// Songs
// ============================================================

func (r *RedisStore) ListAll(ctx context.Context) ([]models.Song, error) {
	titles, err := r.client.LRange(ctx, r.songIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, unavailable("list song titles", err)
	}
	if len(titles) == 0 {
		return []models.Song{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(titles))
	for i, title := range titles {
		cmds[i] = pipe.HGetAll(ctx, r.songKey(title))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, unavailable("list songs", err)
	}

	songs := make([]models.Song, 0, len(titles))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// Index entry without a hash; skip rather than fail the listing.
			continue
		}
		song, err := decodeSong(fields)
		if err != nil {
			return nil, fmt.Errorf("decode song %q: %w", titles[i], err)
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func (r *RedisStore) FindByTitle(ctx context.Context, title string) (*models.Song, error) {
	fields, err := r.client.HGetAll(ctx, r.songKey(title)).Result()
	if err != nil {
		return nil, unavailable("find song", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	song, err := decodeSong(fields)
	if err != nil {
		return nil, fmt.Errorf("decode song %q: %w", title, err)
	}
	return &song, nil
}

func (r *RedisStore) SetPerformed(ctx context.Context, title string, performed bool) error {
	key := r.songKey(title)

	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return unavailable("set performed", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	if err := r.client.HSet(ctx, key, "performed", encodeBool(performed)).Err(); err != nil {
		return unavailable("set performed", err)
	}
	return nil
}

func (r *RedisStore) CompareAndSetPerformed(ctx context.Context, title string, expected, next bool) error {
	key := r.songKey(title)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.HGet(ctx, key, "performed").Result()
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if decodeBool(current) != expected {
			return ErrConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, "performed", encodeBool(next))
			return nil
		})
		return err
	}, key)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return err
	default:
		return unavailable("compare and set performed", err)
	}
}

func (r *RedisStore) IsEmpty(ctx context.Context) (bool, error) {
	n, err := r.client.LLen(ctx, r.songIndexKey()).Result()
	if err != nil {
		return false, unavailable("count songs", err)
	}
	return n == 0, nil
}

func (r *RedisStore) InsertDefaults(ctx context.Context, songs []models.Song) error {
	for _, song := range songs {
		if _, err := r.insertSong(ctx, song); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisStore) AddSong(ctx context.Context, song models.Song) error {
	created, err := r.insertSong(ctx, song)
	if err != nil {
		return err
	}
	if !created {
		return ErrDuplicateSong
	}
	return nil
}

// insertSong writes the hash and the index entry in one MULTI under WATCH
// on the song key, so a title is either fully present or absent. A title
// that already exists, or is created concurrently, is left untouched.
func (r *RedisStore) insertSong(ctx context.Context, song models.Song) (bool, error) {
	key := r.songKey(song.Title)
	created := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, encodeSong(song))
			pipe.RPush(ctx, r.songIndexKey(), song.Title)
			return nil
		})
		if err != nil {
			return err
		}
		created = true
		return nil
	}, key)

	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, unavailable("insert song", err)
	}
}

// ============================================================
// Sessions
// ============================================================

func (r *RedisStore) Insert(ctx context.Context, session models.Session) error {
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.sessionKey(session.Token), sessionJSON, 0).Result()
	if err != nil {
		return unavailable("insert session", err)
	}
	if !created {
		return ErrDuplicateToken
	}
	return nil
}

func (r *RedisStore) FindActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	session, err := r.getSession(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.Active {
		return nil, ErrNotFound
	}
	return session, nil
}

func (r *RedisStore) SetActive(ctx context.Context, token string, active bool) error {
	session, err := r.getSession(ctx, token)
	if err != nil {
		return err
	}
	session.Active = active

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	updated, err := r.client.SetXX(ctx, r.sessionKey(token), sessionJSON, 0).Result()
	if err != nil {
		return unavailable("update session", err)
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func (r *RedisStore) getSession(ctx context.Context, token string) (*models.Session, error) {
	sessionJSON, err := r.client.Get(ctx, r.sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, unavailable("get session", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// ============================================================
// Diagnostics
// ============================================================

func (r *RedisStore) Driver() string { return DriverRedis }

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (r *RedisStore) Collections(ctx context.Context) ([]string, error) {
	var names []string

	n, err := r.client.LLen(ctx, r.songIndexKey()).Result()
	if err != nil {
		return nil, unavailable("collections", err)
	}
	if n > 0 {
		names = append(names, SongCollection)
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.sessionKey("*"), 100).Result()
		if err != nil {
			return nil, unavailable("collections", err)
		}
		if len(keys) > 0 {
			names = append(names, SessionCollection)
			break
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return names, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func encodeSong(song models.Song) map[string]interface{} {
	fields := map[string]interface{}{
		"title":     song.Title,
		"artist":    song.Artist,
		"performed": encodeBool(song.Performed),
	}
	if song.Year != nil {
		fields["year"] = strconv.Itoa(*song.Year)
	}
	return fields
}

func decodeSong(fields map[string]string) (models.Song, error) {
	song := models.Song{
		Title:     fields["title"],
		Artist:    fields["artist"],
		Performed: decodeBool(fields["performed"]),
	}
	if raw, ok := fields["year"]; ok && raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return models.Song{}, fmt.Errorf("invalid year %q: %w", raw, err)
		}
		song.Year = &year
	}
	return song, nil
}

func encodeBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func decodeBool(v string) bool {
	return v == "1"
}
