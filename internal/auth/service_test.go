package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store/memory"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.NewStore(), NewMemorySessionStore(), NewTokenIssuer("test-secret"), time.Hour, zap.NewNop())
	svc.BcryptCost = bcrypt.MinCost
	return svc
}

func register(t *testing.T, svc *Service) models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "jane@example.com",
		Name:     "Jane",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestService_RegisterHashesPassword(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc)

	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Errorf("expected bcrypt hash, got %q", u.PasswordHash)
	}
}

func TestService_RegisterDuplicate(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "JANE@example.com", Name: "J", Password: "another1"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestService_RegisterPasswordTooLong(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "long@example.com", Name: "L", Password: strings.Repeat("é", 40)})
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("expected ErrPasswordTooLong, got %v", err)
	}
}

func TestService_LoginAuthenticateLogout(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" || resp.User.ID != u.ID {
		t.Fatalf("unexpected login response: %+v", resp)
	}

	sess, err := svc.Authenticate(ctx, resp.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.UserID != u.ID {
		t.Errorf("expected session for %s, got %s", u.ID, sess.UserID)
	}

	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, resp.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected token to be rejected after logout, got %v", err)
	}
}

func TestService_LoginBadCredentials(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "jane@example.com", "nope"},
		{"unknown email", "who@example.com", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestService_SessionsAreIndependent(t *testing.T) {
	svc := newTestService(t)
	register(t, svc)
	ctx := context.Background()

	first, err := svc.Login(ctx, "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	second, err := svc.Login(ctx, "jane@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	sess, err := svc.Authenticate(ctx, first.Token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if err := svc.Logout(ctx, sess); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if _, err := svc.Authenticate(ctx, second.Token); err != nil {
		t.Errorf("second session should survive logout of the first, got %v", err)
	}
}

func TestService_CurrentUser(t *testing.T) {
	svc := newTestService(t)
	u := register(t, svc)

	got, err := svc.CurrentUser(context.Background(), Session{ID: "s", UserID: u.ID})
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got.Email != "jane@example.com" {
		t.Errorf("unexpected user: %+v", got)
	}
}
