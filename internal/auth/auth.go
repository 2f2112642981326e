// Package auth manages profile registration, login, and guest mode.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kmatveev/typemaster/internal/logger"
	"github.com/kmatveev/typemaster/internal/model"
	"github.com/kmatveev/typemaster/internal/store"
)

var (
	// ErrInvalidCredentials is returned when the username is unknown or
	// the password does not match. No state changes on this error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateUsername is returned when registering an existing
	// username. The stored profile is never overwritten.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
)

// GuestUsername names the ephemeral guest profile.
const GuestUsername = "Guest"

// Service layers credential handling over a ProfileStore.
type Service struct {
	store store.ProfileStore
	log   *logger.Logger
}

// NewService returns an auth service over the given store.
func NewService(st store.ProfileStore, log *logger.Logger) *Service {
	return &Service{store: st, log: log}
}

// Register creates a new profile with a bcrypt-hashed secret and makes it
// the current user. Persistence failures degrade to in-memory operation:
// they are logged, not returned.
func (s *Service) Register(ctx context.Context, username, password string) (*model.Profile, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := s.store.GetProfile(ctx, username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	p := model.NewProfile(username)
	p.Secret = string(hash)

	if err := s.store.SaveProfile(ctx, p); err != nil {
		s.log.Warn().Str("username", username).Err(err).Msg("failed to save new profile")
	}
	if err := s.store.SetCurrentUser(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to set current user")
	}
	return p, nil
}

// Login verifies the password against the stored secret and makes the
// profile the current user.
func (s *Service) Login(ctx context.Context, username, password string) (*model.Profile, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	p, err := s.store.GetProfile(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Secret), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.SetCurrentUser(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("failed to set current user")
	}
	return p, nil
}

// Logout clears the current-user record.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.ClearCurrentUser(ctx)
}

// Guest returns an ephemeral guest profile. It is never persisted.
func Guest() *model.Profile {
	p := model.NewProfile(GuestUsername)
	p.Guest = true
	return p
}
