package pgstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

var eventRowColumns = []string{"id", "title", "description", "category", "price", "date", "location", "image", "created_by", "created_at", "updated_at"}

func newEventStore(t *testing.T) (*EventStore, sqlmock.Sqlmock, time.Time) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC)
	s := NewEventStore(db)
	s.Now = func() time.Time { return now }
	return s, mock, now
}

func TestListQuery(t *testing.T) {
	tests := []struct {
		name      string
		filter    models.EventFilter
		wantQuery string
		wantArgs  int
	}{
		{"no filter", models.EventFilter{}, "SELECT " + eventColumns + " FROM events ORDER BY created_at, id", 0},
		{"category", models.EventFilter{Category: "Music"}, "SELECT " + eventColumns + " FROM events WHERE category = $1 ORDER BY created_at, id", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := listQuery(tt.filter)
			if q != tt.wantQuery {
				t.Errorf("query:\n got  %s\n want %s", q, tt.wantQuery)
			}
			if len(args) != tt.wantArgs {
				t.Errorf("expected %d args, got %d", tt.wantArgs, len(args))
			}
		})
	}
}

func TestEventStore_List(t *testing.T) {
	s, mock, now := newEventStore(t)

	rows := sqlmock.NewRows(eventRowColumns).
		AddRow("evt-1", "Jazz Night", "", "Music", 25.0, "Fri", "Karachi", "", "user-1", now, now).
		AddRow("evt-2", "Rock Fest", "", "Music", 40.0, "Sat", "Lahore", "", "user-2", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE category = $1 ORDER BY created_at, id")).
		WithArgs("Music").
		WillReturnRows(rows)

	events, err := s.List(context.Background(), models.EventFilter{Category: "Music"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ID != "evt-1" || events[1].Price != 40 {
		t.Errorf("unexpected events: %+v", events)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestEventStore_ListEmptyIsNotNil(t *testing.T) {
	s, mock, _ := newEventStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := s.List(context.Background(), models.EventFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", events)
	}
}

func TestEventStore_ListQueryError(t *testing.T) {
	s, mock, _ := newEventStore(t)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	if _, err := s.List(context.Background(), models.EventFilter{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestEventStore_GetNotFound(t *testing.T) {
	s, mock, _ := newEventStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM events WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventStore_Create(t *testing.T) {
	s, mock, now := newEventStore(t)

	mock.ExpectExec("INSERT INTO events").
		WithArgs(sqlmock.AnyArg(), "Jazz Night", "", "Music", 25.0, "Fri", "Karachi", "", "user-1", now, now).
		WillReturnResult(sqlmock.NewResult(1, 1))

	ev := models.Event{Title: "Jazz Night", Category: "Music", Price: 25, Date: "Fri", Location: "Karachi", CreatedBy: "user-1"}
	if err := s.Create(context.Background(), &ev); err != nil {
		t.Fatalf("create: %v", err)
	}
	if ev.ID == "" {
		t.Error("expected ID to be assigned")
	}
	if !ev.CreatedAt.Equal(now) {
		t.Errorf("expected CreatedAt %s, got %s", now, ev.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestEventStore_Update(t *testing.T) {
	s, mock, now := newEventStore(t)
	created := now.Add(-time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE events SET title = $1")).
		WithArgs("Jazz Night II", "", "Music", 30.0, "Fri", "Karachi", "", now, "evt-1").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	ev := models.Event{ID: "evt-1", Title: "Jazz Night II", Category: "Music", Price: 30, Date: "Fri", Location: "Karachi"}
	if err := s.Update(context.Background(), &ev); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !ev.CreatedAt.Equal(created) || !ev.UpdatedAt.Equal(now) {
		t.Errorf("unexpected timestamps: %+v", ev)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestEventStore_UpdateNotFound(t *testing.T) {
	s, mock, _ := newEventStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE events SET")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	ev := models.Event{ID: "missing", Title: "x", Category: "Art"}
	if err := s.Update(context.Background(), &ev); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEventStore_Delete(t *testing.T) {
	s, mock, _ := newEventStore(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs("evt-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).
		WithArgs("evt-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.Delete(context.Background(), "evt-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(context.Background(), "evt-1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
