// Package client is a typed HTTP client for the event API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/middleware"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

// ErrUnauthorized is returned when the API rejects the session token.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a non-2xx response other than 401.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// Client talks to the API at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a client for baseURL with a 10 second request timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var u models.User
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &u)
	return u, err
}

// Login opens a session. Wrong credentials yield ErrUnauthorized.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &Session{client: c, Token: resp.Token, ExpiresAt: resp.ExpiresAt, User: resp.User}, nil
}

// Session is an authenticated handle. It is dropped after Logout.
type Session struct {
	client    *Client
	Token     string
	ExpiresAt time.Time
	User      models.User
}

// ListEvents returns every event in store order.
func (s *Session) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := s.client.do(ctx, http.MethodGet, "/api/events", s.Token, nil, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

// GetEvent returns a single event.
func (s *Session) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var ev models.Event
	err := s.client.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), s.Token, nil, &ev)
	return ev, err
}

// CreateEvent creates an event owned by the session's user.
func (s *Session) CreateEvent(ctx context.Context, req models.CreateEventRequest) (models.Event, error) {
	var ev models.Event
	err := s.client.do(ctx, http.MethodPost, "/api/events", s.Token, req, &ev)
	return ev, err
}

// Logout revokes the session on the server.
func (s *Session) Logout(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "/api/auth/logout", s.Token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response (correlation_id=%s): %w", resp.Header.Get(middleware.CorrelationIDHeader), err)
	}
	return nil
}
