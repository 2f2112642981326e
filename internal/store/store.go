// Package store handles profile persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when no profile record exists for a username,
// including when a stored record is malformed and treated as absent.
var ErrNotFound = errors.New("profile not found")

const currentUserKey = "current_user"

// ProfileStore persists profiles keyed by username and tracks the active
// user. Guest profiles are never written.
type ProfileStore interface {
	SaveProfile(ctx context.Context, p *model.Profile) error
	GetProfile(ctx context.Context, username string) (*model.Profile, error)
	SetCurrentUser(ctx context.Context, username string) error
	ClearCurrentUser(ctx context.Context) error
	CurrentProfile(ctx context.Context) (*model.Profile, error)
	Close() error
}

// Store is the SQLite-backed ProfileStore. Profiles are stored as JSON
// records in a key-value layout.
type Store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string, log *logger.Logger) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	st := &Store{db: db, log: log}
	if err := st.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return st, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			username TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveProfile upserts the profile's JSON record. Guest profiles are
// silently skipped.
func (s *Store) SaveProfile(ctx context.Context, p *model.Profile) error {
	if p.Guest {
		s.log.Debug().Str("username", p.Username).Msg("skipping guest profile save")
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (username, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		p.Username, string(data), time.Now().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile loads a profile by username. A malformed stored record is
// logged and treated as absent.
func (s *Store) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE username = ?`, username).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		s.log.Warn().Str("username", username).Err(err).Msg("malformed profile record, treating as absent")
		return nil, ErrNotFound
	}
	return &p, nil
}

// SetCurrentUser records the active username.
func (s *Store) SetCurrentUser(ctx context.Context, username string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		currentUserKey, username)
	if err != nil {
		return fmt.Errorf("failed to set current user: %w", err)
	}
	return nil
}

// ClearCurrentUser removes the active-user record.
func (s *Store) ClearCurrentUser(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ?`, currentUserKey); err != nil {
		return fmt.Errorf("failed to clear current user: %w", err)
	}
	return nil
}

// CurrentProfile loads the profile of the active user, if any.
func (s *Store) CurrentProfile(ctx context.Context) (*model.Profile, error) {
	var username string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, currentUserKey).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load current user: %w", err)
	}
	return s.GetProfile(ctx, username)
}
