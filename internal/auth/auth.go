// Package auth implements account registration, credential checks and the
// persisted session slot.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// Service handles sign-up, sign-in and the current-user slot.
type Service struct {
	store store.Store
	log   zerolog.Logger
}

func NewService(s store.Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log.With().Str("component", "auth").Logger()}
}

// RegisterRequest carries the sign-up form fields.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register validates the request, stores the new account with a hashed
// password and logs the user in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*model.SessionUser, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", model.ErrValidation)
	}
	if len(username) < minUsernameLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters", model.ErrValidation, minUsernameLen)
	}
	if len(req.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, minPasswordLen)
	}

	if _, err := s.store.Users().ByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", model.ErrConflict)
	}
	if _, err := s.store.Users().ByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", model.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Users().Add(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}

	session := user.Session()
	if err := s.store.Session().Set(ctx, session); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return session, nil
}

// Login accepts a username or an email, case-insensitively. Failures report
// invalid credentials without saying which field was wrong.
func (s *Service) Login(ctx context.Context, identifier, password string) (*model.SessionUser, error) {
	identifier = strings.TrimSpace(identifier)

	user, err := s.store.Users().ByUsername(ctx, identifier)
	if err != nil {
		user, err = s.store.Users().ByEmail(ctx, identifier)
	}
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	session := user.Session()
	if err := s.store.Session().Set(ctx, session); err != nil {
		return nil, fmt.Errorf("set session: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return session, nil
}

// Logout clears the session slot. Logging out while logged out is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Session().Clear(ctx)
}

// CurrentUser returns the logged-in user, or model.ErrNotFound when the
// session slot is empty.
func (s *Service) CurrentUser(ctx context.Context) (*model.SessionUser, error) {
	return s.store.Session().Get(ctx)
}

// ChangePassword verifies the current password for the logged-in user and
// stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	session, err := s.store.Session().Get(ctx)
	if err != nil {
		return err
	}
	if len(next) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", model.ErrValidation, minPasswordLen)
	}

	user, err := s.store.Users().Get(ctx, session.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return model.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.store.Users().Update(ctx, user.ID, func(u *model.User) error {
		u.PasswordHash = string(hash)
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID).Time("at", time.Now().UTC()).Msg("password changed")
	return nil
}
