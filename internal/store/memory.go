package store

import (
	"context"
	"encoding/json"

	"github.com/kmatveev/typemaster/internal/model"
)

// Memory is an in-memory ProfileStore used when the SQLite database is
// unavailable. Contents last for the process lifetime only.
type Memory struct {
	profiles map[string]string
	current  string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{profiles: map[string]string{}}
}

// SaveProfile stores a JSON snapshot of the profile. Guest profiles are
// skipped, matching the SQLite store.
func (m *Memory) SaveProfile(_ context.Context, p *model.Profile) error {
	if p.Guest {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.profiles[p.Username] = string(data)
	return nil
}

// GetProfile loads a profile by username.
func (m *Memory) GetProfile(_ context.Context, username string) (*model.Profile, error) {
	data, ok := m.profiles[username]
	if !ok {
		return nil, ErrNotFound
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, ErrNotFound
	}
	return &p, nil
}

// SetCurrentUser records the active username.
func (m *Memory) SetCurrentUser(_ context.Context, username string) error {
	m.current = username
	return nil
}

// ClearCurrentUser removes the active-user record.
func (m *Memory) ClearCurrentUser(_ context.Context) error {
	m.current = ""
	return nil
}

// CurrentProfile loads the profile of the active user, if any.
func (m *Memory) CurrentProfile(ctx context.Context) (*model.Profile, error) {
	if m.current == "" {
		return nil, ErrNotFound
	}
	return m.GetProfile(ctx, m.current)
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
