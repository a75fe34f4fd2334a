// Package store defines the persistence contracts shared by the
// postgres, mongo and memory drivers.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

var (
	// ErrNotFound is returned when no record matches the given id or key.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("conflict")
)

// EventStore persists events. Implementations are safe for concurrent use.
type EventStore interface {
	// List returns the events matching filter in the store's natural order.
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Get(ctx context.Context, id string) (models.Event, error)
	// Create assigns ev.ID and the timestamps, then saves it.
	Create(ctx context.Context, ev *models.Event) error
	Update(ctx context.Context, ev *models.Event) error
	Delete(ctx context.Context, id string) error
}

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// NormalizeEmail lower-cases and trims an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
