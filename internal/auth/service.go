// Package auth implements accounts and the explicit session lifecycle:
// a session is created at login, checked on every request and
// invalidated at logout.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// Service registers users and manages their sessions.
type Service struct {
	Users      store.UserStore
	Sessions   SessionStore
	Tokens     *TokenIssuer
	TTL        time.Duration
	BcryptCost int
	Now        func() time.Time
	Log        *zap.Logger
}

// NewService creates a Service issuing sessions that live for ttl.
func NewService(users store.UserStore, sessions SessionStore, tokens *TokenIssuer, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		Users:      users,
		Sessions:   sessions,
		Tokens:     tokens,
		TTL:        ttl,
		BcryptCost: bcrypt.DefaultCost,
		Now:        time.Now,
		Log:        log,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.BcryptCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return models.User{}, ErrPasswordTooLong
	}
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{Email: req.Email, Name: req.Name, PasswordHash: string(hash)}
	if err := s.Users.CreateUser(ctx, &u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}

	s.Log.Info("User registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login verifies the credentials and opens a new session.
func (s *Service) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	u, err := s.Users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return models.LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.LoginResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	sess := Session{
		ID:        uuid.New().String(),
		UserID:    u.ID,
		ExpiresAt: s.Now().Add(s.TTL),
	}
	token, err := s.Tokens.Issue(sess)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("issue token: %w", err)
	}
	if err := s.Sessions.Save(ctx, sess); err != nil {
		return models.LoginResponse{}, err
	}

	s.Log.Info("User logged in", zap.String("user_id", u.ID), zap.String("session_id", sess.ID))
	return models.LoginResponse{Token: token, ExpiresAt: sess.ExpiresAt, User: u}, nil
}

// Authenticate resolves a bearer token to its live session.
func (s *Service) Authenticate(ctx context.Context, token string) (Session, error) {
	claims, err := s.Tokens.Parse(token)
	if err != nil {
		return Session{}, err
	}

	sess, err := s.Sessions.Lookup(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return Session{}, ErrInvalidToken
	}
	if err != nil {
		return Session{}, err
	}
	if sess.UserID != claims.Subject {
		return Session{}, ErrInvalidToken
	}
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}

// Logout invalidates the session. Tokens bound to it stop working
// immediately.
func (s *Service) Logout(ctx context.Context, sess Session) error {
	if err := s.Sessions.Revoke(ctx, sess.ID); err != nil {
		return err
	}
	s.Log.Info("User logged out", zap.String("user_id", sess.UserID), zap.String("session_id", sess.ID))
	return nil
}

// CurrentUser loads the account behind sess.
func (s *Service) CurrentUser(ctx context.Context, sess Session) (models.User, error) {
	return s.Users.GetUserByID(ctx, sess.UserID)
}
