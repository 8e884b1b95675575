package session

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/migration"
	"github.com/julianstephens/preptrack/internal/models"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const (
	keyToken = "token"
	keyUser  = "user"
)

// SQLiteStore keeps the session in a local kv table, for hosts without a
// usable keyring.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (creating if needed) the session database at path and
// brings its schema up to date.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	db.SetMaxOpenConns(1)

	runner, err := migrationRunner(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := runner.Apply(ctx, func(s string) { logger.Debug(s) }); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run session migrations: %w", err)
	}

	return &SQLiteStore{path: path, db: db}, nil
}

func migrationRunner(db *sql.DB) (*migration.Runner, error) {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}
	return migration.NewRunner(db, sub), nil
}

// SchemaVersion returns the applied schema version and the newest one this
// build knows about.
func (s *SQLiteStore) SchemaVersion(ctx context.Context) (current, latest int, err error) {
	runner, err := migrationRunner(s.db)
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(ctx); err != nil {
		return 0, 0, err
	}
	migrations, err := runner.Migrations()
	if err != nil {
		return 0, 0, err
	}
	if n := len(migrations); n > 0 {
		latest = migrations[n-1].Version
	}
	return current, latest, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) get(key string) (string, error) {
	var v string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

func (s *SQLiteStore) put(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value,
			updated_at = strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Token() (string, error) {
	v, err := s.get(keyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

func (s *SQLiteStore) SetToken(token string) error {
	if token == "" {
		_, err := s.db.Exec("DELETE FROM kv WHERE key = ?", keyToken)
		return err
	}
	return s.put(keyToken, token)
}

func (s *SQLiteStore) User() (*models.User, error) {
	v, err := s.get(keyUser)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeUser(v)
}

func (s *SQLiteStore) SetUser(u models.User) error {
	raw, err := encodeUser(u)
	if err != nil {
		return err
	}
	return s.put(keyUser, raw)
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key IN (?, ?)", keyToken, keyUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
