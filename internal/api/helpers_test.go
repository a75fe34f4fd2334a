package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/auth"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store/memory"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockPublisher implements EventPublisher for testing.
type mockPublisher struct {
	published []publishedMsg
	err       error
}

type publishedMsg struct {
	RoutingKey    string
	Body          []byte
	CorrelationID string
}

func (m *mockPublisher) Publish(_ context.Context, routingKey string, body []byte, correlationID string) error {
	m.published = append(m.published, publishedMsg{
		RoutingKey:    routingKey,
		Body:          body,
		CorrelationID: correlationID,
	})
	return m.err
}

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	pub    *mockPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	st := memory.NewStore()
	return newTestServerWith(t, st, st)
}

func newTestServerWith(t *testing.T, events store.EventStore, users store.UserStore) *testServer {
	t.Helper()
	log := zap.NewNop()

	svc := auth.NewService(users, auth.NewMemorySessionStore(), auth.NewTokenIssuer("test-secret"), time.Hour, log)
	svc.BcryptCost = bcrypt.MinCost

	pub := &mockPublisher{}
	router := NewRouter(NewEventHandler(events, pub, log), NewAuthHandler(svc, log), log)

	ts := &testServer{router: router, pub: pub}
	if m, ok := events.(*memory.Store); ok {
		ts.store = m
	}
	return ts
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	return ts.doWithHeader(method, path, token, body, "", "")
}

func (ts *testServer) doWithHeader(method, path, token string, body any, header, value string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// signIn registers an account and returns a bearer token for it.
func (ts *testServer) signIn(t *testing.T, email string) (string, models.User) {
	t.Helper()

	w := ts.do(http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Email: email, Name: "Tester", Password: "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal login response: %v", err)
	}
	return resp.Token, resp.User
}
