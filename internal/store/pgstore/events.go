package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

const eventColumns = "id, title, description, category, price, date, location, image, created_by, created_at, updated_at"

// EventStore is the PostgreSQL EventStore.
type EventStore struct {
	DB  *sql.DB
	Now func() time.Time
}

// NewEventStore creates a new EventStore on db.
func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{DB: db, Now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var ev models.Event
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Category, &ev.Price,
		&ev.Date, &ev.Location, &ev.Image, &ev.CreatedBy, &ev.CreatedAt, &ev.UpdatedAt)
	return ev, err
}

// listQuery builds the SELECT for filter with numbered placeholders.
func listQuery(filter models.EventFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	query := "SELECT " + eventColumns + " FROM events"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	return query + " ORDER BY created_at, id", args
}

// List returns the events matching filter in insertion order.
func (s *EventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	query, args := listQuery(filter)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *EventStore) Get(ctx context.Context, id string) (models.Event, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = $1", id)
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Event{}, store.ErrNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("get event %s: %w", id, err)
	}
	return ev, nil
}

func (s *EventStore) Create(ctx context.Context, ev *models.Event) error {
	now := s.Now()
	ev.ID = uuid.New().String()
	ev.CreatedAt = now
	ev.UpdatedAt = now

	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO events ("+eventColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
		ev.ID, ev.Title, ev.Description, ev.Category, ev.Price,
		ev.Date, ev.Location, ev.Image, ev.CreatedBy, ev.CreatedAt, ev.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *EventStore) Update(ctx context.Context, ev *models.Event) error {
	ev.UpdatedAt = s.Now()

	err := s.DB.QueryRowContext(ctx,
		`UPDATE events SET title = $1, description = $2, category = $3, price = $4, date = $5,
		 location = $6, image = $7, updated_at = $8 WHERE id = $9 RETURNING created_at`,
		ev.Title, ev.Description, ev.Category, ev.Price, ev.Date,
		ev.Location, ev.Image, ev.UpdatedAt, ev.ID,
	).Scan(&ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update event %s: %w", ev.ID, err)
	}
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
