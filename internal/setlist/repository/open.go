package repository

import (
	"context"
	"fmt"

	"setlist-api/internal/setlist/models"

	"github.com/redis/go-redis/v9"
)

// Supported store drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Options selects and configures a store backend.
type Options struct {
	Driver string

	// RedisURL takes precedence over the discrete address fields.
	RedisURL      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string

	SQLitePath string
}

// Open builds the store named by opts.Driver. Redis connectivity is not
// checked here; callers ping separately so a down backend does not stop
// the process.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil

	case DriverRedis:
		redisOpts := &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}
		if opts.RedisURL != "" {
			parsed, err := redis.ParseURL(opts.RedisURL)
			if err != nil {
				return nil, fmt.Errorf("parse redis url: %w", err)
			}
			redisOpts = parsed
		}
		return NewRedis(&RedisConfig{
			RedisClient: redis.NewClient(redisOpts),
			Namespace:   opts.Namespace,
		})

	case DriverSQLite:
		db, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		store := NewSQLite(db)
		if err := store.Init(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// ============================================================
// Unavailable Store
// ============================================================

// UnavailableStore stands in for a backend that could not be opened. Every
// operation fails with ErrStoreUnavailable so the HTTP surface stays up and
// reports 500s instead of the process exiting.
type UnavailableStore struct {
	driver string
	cause  error
}

func NewUnavailable(driver string, cause error) *UnavailableStore {
	return &UnavailableStore{driver: driver, cause: cause}
}

func (u *UnavailableStore) err(op string) error {
	return unavailable(op, u.cause)
}

func (u *UnavailableStore) ListAll(context.Context) ([]models.Song, error) {
	return nil, u.err("list songs")
}

func (u *UnavailableStore) FindByTitle(context.Context, string) (*models.Song, error) {
	return nil, u.err("find song")
}

func (u *UnavailableStore) SetPerformed(context.Context, string, bool) error {
	return u.err("set performed")
}

func (u *UnavailableStore) CompareAndSetPerformed(context.Context, string, bool, bool) error {
	return u.err("compare and set performed")
}

func (u *UnavailableStore) IsEmpty(context.Context) (bool, error) {
	return false, u.err("count songs")
}

func (u *UnavailableStore) InsertDefaults(context.Context, []models.Song) error {
	return u.err("insert songs")
}

func (u *UnavailableStore) AddSong(context.Context, models.Song) error {
	return u.err("insert song")
}

func (u *UnavailableStore) Insert(context.Context, models.Session) error {
	return u.err("insert session")
}

func (u *UnavailableStore) FindActiveByToken(context.Context, string) (*models.Session, error) {
	return nil, u.err("find session")
}

func (u *UnavailableStore) SetActive(context.Context, string, bool) error {
	return u.err("update session")
}

func (u *UnavailableStore) Driver() string { return u.driver }

func (u *UnavailableStore) Ping(context.Context) error { return u.err("ping") }

func (u *UnavailableStore) Collections(context.Context) ([]string, error) {
	return nil, u.err("collections")
}

func (u *UnavailableStore) Close() error { return nil }
