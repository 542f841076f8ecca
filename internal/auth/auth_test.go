package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avatimes/avatimes/internal/auth"
	"github.com/avatimes/avatimes/internal/blob"
	"github.com/avatimes/avatimes/internal/model"
	"github.com/avatimes/avatimes/internal/store"
)

func newService(t *testing.T) (*auth.Service, store.Store) {
	t.Helper()
	s := store.New(blob.NewMemoryKV(), zerolog.Nop())
	return auth.NewService(s, zerolog.Nop()), s
}

func TestRegisterAndLogin(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "ava", Email: "ava@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if session.Username != "ava" || session.ID == "" {
		t.Fatalf("Register session: %+v", session)
	}

	// Registration logs the user in.
	if cur, err := svc.CurrentUser(ctx); err != nil || cur.ID != session.ID {
		t.Fatalf("CurrentUser after register: got=%+v err=%v", cur, err)
	}

	// Stored password is hashed, never plaintext.
	stored, err := s.Users().Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("password stored in the clear: %q", stored.PasswordHash)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.CurrentUser(ctx); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("CurrentUser after logout: err=%v", err)
	}

	// Username match is case-insensitive.
	if got, err := svc.Login(ctx, "AVA", "secret1"); err != nil || got.ID != session.ID {
		t.Fatalf("Login by username: got=%+v err=%v", got, err)
	}
	// Email works too.
	if got, err := svc.Login(ctx, "Ava@Example.com", "secret1"); err != nil || got.ID != session.ID {
		t.Fatalf("Login by email: got=%+v err=%v", got, err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "ava", Email: "ava@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Wrong password and unknown account produce the same error.
	if _, err := svc.Login(ctx, "ava", "wrong"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("wrong password: err=%v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "secret1"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("unknown user: err=%v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  auth.RegisterRequest
	}{
		{"missing fields", auth.RegisterRequest{Username: "ava"}},
		{"short username", auth.RegisterRequest{Username: "av", Email: "a@b.c", Password: "secret1"}},
		{"short password", auth.RegisterRequest{Username: "ava", Email: "a@b.c", Password: "12345"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.req); !errors.Is(err, model.ErrValidation) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestRegisterConflicts(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "ava", Email: "ava@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Duplicates are rejected case-insensitively.
	if _, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "AVA", Email: "other@example.com", Password: "secret1",
	}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate username: err=%v", err)
	}
	if _, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "someone", Email: "AVA@EXAMPLE.COM", Password: "secret1",
	}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate email: err=%v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, auth.RegisterRequest{
		Username: "ava", Email: "ava@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, "wrong", "newsecret"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: err=%v", err)
	}
	if err := svc.ChangePassword(ctx, "secret1", "short"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("short new password: err=%v", err)
	}
	if err := svc.ChangePassword(ctx, "secret1", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, "ava", "secret1"); !errors.Is(err, model.ErrInvalidCredentials) {
		t.Fatalf("old password should fail: err=%v", err)
	}
	if _, err := svc.Login(ctx, "ava", "newsecret"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}
