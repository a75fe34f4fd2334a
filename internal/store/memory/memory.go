package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/catalog"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

// Store is an in-memory EventStore and UserStore for local runs and tests.
// Events keep insertion order.
type Store struct {
	mu     sync.RWMutex
	events []models.Event
	users  map[string]models.User
	now    func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{users: make(map[string]models.User), now: time.Now}
}

// NewSeededStore returns a store holding a handful of events so the
// browser has something to show on a fresh checkout.
func NewSeededStore() *Store {
	s := NewStore()
	seed := []models.Event{
		{Title: "Rooftop Jazz Night", Category: "Music", Price: 25, Date: "Fri 20:00", Location: "Karachi", Image: "https://images.pexels.com/photos/1190297/pexels-photo-1190297.jpeg"},
		{Title: "City Derby", Category: "Sports", Price: 15, Date: "Sat 16:00", Location: "Lahore", Image: "https://images.pexels.com/photos/274422/pexels-photo-274422.jpeg"},
		{Title: "Street Art Walk", Category: "Art", Price: 0, Date: "Sun 11:00", Location: "Islamabad", Image: "https://images.pexels.com/photos/1183992/pexels-photo-1183992.jpeg"},
		{Title: "Food Truck Fair", Category: "Food", Price: 5, Date: "Sun 18:00", Location: "Karachi", Image: "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg"},
		{Title: "Go Meetup", Category: "Tech", Price: 0, Date: "Wed 19:00", Location: "Lahore", Image: "https://images.pexels.com/photos/1181396/pexels-photo-1181396.jpeg"},
	}
	for i := range seed {
		_ = s.Create(context.Background(), &seed[i])
	}
	return s
}

// List returns the events matching filter in insertion order.
func (s *Store) List(_ context.Context, filter models.EventFilter) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cloned := append([]models.Event(nil), s.events...)
	out := catalog.Filter(cloned, catalog.FromFilter(filter))
	if out == nil {
		out = []models.Event{}
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, id string) (models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.events[i], nil
	}
	return models.Event{}, store.ErrNotFound
}

func (s *Store) Create(_ context.Context, ev *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	ev.ID = uuid.NewString()
	ev.CreatedAt = now
	ev.UpdatedAt = now
	s.events = append(s.events, *ev)
	return nil
}

func (s *Store) Update(_ context.Context, ev *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(ev.ID)
	if i < 0 {
		return store.ErrNotFound
	}
	ev.CreatedAt = s.events[i].CreatedAt
	ev.UpdatedAt = s.now()
	s.events[i] = *ev
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, ev := range s.events {
		if ev.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.Email = store.NormalizeEmail(u.Email)
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrConflict
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = store.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *Store) GetUserByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return models.User{}, store.ErrNotFound
}
