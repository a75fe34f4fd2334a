// Package browse holds the state behind the event browsing screen: the
// fetched list, the active filter and the loading flag.
package browse

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/catalog"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

var (
	// ErrNoSession is returned by Fetch before a source is attached.
	ErrNoSession = errors.New("browse: no session")
	// ErrClosed is returned by Fetch after Close.
	ErrClosed = errors.New("browse: screen closed")
	// ErrSuperseded is returned by a fetch whose result was discarded
	// because a newer fetch, a logout or Close happened meanwhile.
	ErrSuperseded = errors.New("browse: fetch superseded")
)

// EventSource lists events. *client.Session implements it.
type EventSource interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
}

// Session is an EventSource that can be signed out.
type Session interface {
	EventSource
	Logout(ctx context.Context) error
}

// Screen is safe for concurrent use; a fetch may run on its own goroutine
// while the caller renders.
type Screen struct {
	mu       sync.Mutex
	log      *zap.Logger
	session  Session
	events   []models.Event
	criteria catalog.Criteria
	loading  bool
	gen      uint64
	closed   bool
}

// NewScreen returns an empty screen with no session attached.
func NewScreen(log *zap.Logger) *Screen {
	return &Screen{log: log, events: []models.Event{}}
}

// Attach binds the screen to a signed-in session.
func (s *Screen) Attach(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = sess
}

// SignedIn reports whether a session is attached.
func (s *Screen) SignedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Fetch loads the full event list once. On failure the previous list is
// kept and the error is logged and returned.
func (s *Screen) Fetch(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.session == nil {
		s.mu.Unlock()
		return ErrNoSession
	}
	s.gen++
	gen := s.gen
	src := s.session
	s.loading = true
	s.mu.Unlock()

	events, err := src.ListEvents(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Whoever bumped the generation owns the loading flag now.
	if gen != s.gen {
		return ErrSuperseded
	}
	s.loading = false

	if err != nil {
		s.log.Error("Error fetching events", zap.Error(err))
		return err
	}
	if events == nil {
		events = []models.Event{}
	}
	s.events = events
	return nil
}

// Loading reports whether a fetch is pending.
func (s *Screen) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Events returns the last fetched list, unfiltered.
func (s *Screen) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Event(nil), s.events...)
}

// Visible returns the fetched list narrowed by the active criteria.
func (s *Screen) Visible() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Filter(append([]models.Event{}, s.events...), s.criteria)
}

// SelectCategory applies the selector to name and returns the category
// now active ("" when cleared).
func (s *Screen) SelectCategory(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Category = catalog.Select(s.criteria.Category, name)
	return s.criteria.Category
}

// SetQuery records the search text. It is shown with the criteria but
// does not narrow Visible.
func (s *Screen) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Query = q
}

// Criteria returns the active filter.
func (s *Screen) Criteria() catalog.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// Logout signs the session out. A failure is logged and swallowed and the
// session stays attached; on success the session and everything fetched
// with it are dropped. It reports whether the session was dropped.
func (s *Screen) Logout(ctx context.Context) bool {
	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()
	if sess == nil {
		return true
	}

	if err := sess.Logout(ctx); err != nil {
		s.log.Warn("Logout failed", zap.Error(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == sess {
		s.session = nil
		s.events = []models.Event{}
		s.criteria = catalog.Criteria{}
		s.gen++
		s.loading = false
	}
	return true
}

// Close detaches the screen. Fetches still in flight are discarded.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	s.loading = false
}
