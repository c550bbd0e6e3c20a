package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"setlist-api/internal/setlist/models"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// ============================================================
// SQLite Repository
// ============================================================

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Init applies the embedded migrations in file name order.
func (s *SQLiteStore) Init(ctx context.Context) error {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := migrationFiles.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}
	return nil
}

// ============================================================
// Songs
// ============================================================

func (s *SQLiteStore) ListAll(ctx context.Context) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT title, artist, performed, year
        FROM song
        ORDER BY position
    `)
	if err != nil {
		return nil, unavailable("list songs", err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, unavailable("scan song", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list songs", err)
	}
	return songs, nil
}

func (s *SQLiteStore) FindByTitle(ctx context.Context, title string) (*models.Song, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT title, artist, performed, year
        FROM song
        WHERE title = ?
    `, title)

	song, err := scanSong(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("find song", err)
	}
	return &song, nil
}

func (s *SQLiteStore) SetPerformed(ctx context.Context, title string, performed bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE song SET performed = ? WHERE title = ?`, performed, title)
	if err != nil {
		return unavailable("set performed", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("set performed", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) CompareAndSetPerformed(ctx context.Context, title string, expected, next bool) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE song SET performed = ?
        WHERE title = ? AND performed = ?
    `, next, title, expected)
	if err != nil {
		return unavailable("compare and set performed", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("compare and set performed", err)
	}
	if n == 1 {
		return nil
	}

	if _, err := s.FindByTitle(ctx, title); err != nil {
		return err
	}
	return ErrConflict
}

func (s *SQLiteStore) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM song`).Scan(&count); err != nil {
		return false, unavailable("count songs", err)
	}
	return count == 0, nil
}

func (s *SQLiteStore) InsertDefaults(ctx context.Context, songs []models.Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("begin seed", err)
	}
	defer tx.Rollback()

	for _, song := range songs {
		if _, err := insertSong(ctx, tx, song); err != nil {
			return unavailable("insert song", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit seed", err)
	}
	return nil
}

func (s *SQLiteStore) AddSong(ctx context.Context, song models.Song) error {
	n, err := insertSong(ctx, s.db, song)
	if err != nil {
		return unavailable("insert song", err)
	}
	if n == 0 {
		return ErrDuplicateSong
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSong(ctx context.Context, db execer, song models.Song) (int64, error) {
	var year sql.NullInt64
	if song.Year != nil {
		year = sql.NullInt64{Int64: int64(*song.Year), Valid: true}
	}

	res, err := db.ExecContext(ctx, `
        INSERT INTO song (title, artist, performed, year)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(title) DO NOTHING
    `, song.Title, song.Artist, song.Performed, year)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (models.Song, error) {
	var (
		song models.Song
		year sql.NullInt64
	)
	if err := row.Scan(&song.Title, &song.Artist, &song.Performed, &year); err != nil {
		return models.Song{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		song.Year = &y
	}
	return song, nil
}

// ============================================================
// Sessions
// ============================================================

func (s *SQLiteStore) Insert(ctx context.Context, session models.Session) error {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO session (token, role, active, created_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(token) DO NOTHING
    `, session.Token, string(session.Role), session.Active, session.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return unavailable("insert session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("insert session", err)
	}
	if n == 0 {
		return ErrDuplicateToken
	}
	return nil
}

func (s *SQLiteStore) FindActiveByToken(ctx context.Context, token string) (*models.Session, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT token, role, active, created_at
        FROM session
        WHERE token = ? AND active = 1
    `, token)

	var (
		session   models.Session
		role      string
		createdAt string
	)
	if err := row.Scan(&session.Token, &role, &session.Active, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, unavailable("find session", err)
	}

	session.Role = models.Role(role)
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		session.CreatedAt = t
	}
	return &session, nil
}

func (s *SQLiteStore) SetActive(ctx context.Context, token string, active bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE session SET active = ? WHERE token = ?`, active, token)
	if err != nil {
		return unavailable("update session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("update session", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ============================================================
// Diagnostics
// ============================================================

func (s *SQLiteStore) Driver() string { return DriverSQLite }

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *SQLiteStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT name FROM sqlite_master
        WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
        ORDER BY name
    `)
	if err != nil {
		return nil, unavailable("collections", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, unavailable("collections", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// OpenSQLite opens (creating if needed) the sqlite database at dbPath.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
