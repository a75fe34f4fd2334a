package models

import (
	"encoding/json"
	"testing"
)

func TestUpdateEventRequestApply(t *testing.T) {
	ev := Event{
		ID:       "evt-1",
		Title:    "Old",
		Category: "Music",
		Price:    10,
		Location: "Lahore",
	}

	var req UpdateEventRequest
	if err := json.Unmarshal([]byte(`{"title":"New","price":0}`), &req); err != nil {
		t.Fatalf("failed to unmarshal UpdateEventRequest: %v", err)
	}
	req.Apply(&ev)

	if ev.Title != "New" {
		t.Errorf("Title: expected New, got %q", ev.Title)
	}
	if ev.Price != 0 {
		t.Errorf("Price: expected 0, got %v", ev.Price)
	}
	if ev.Category != "Music" {
		t.Errorf("Category: expected unchanged Music, got %q", ev.Category)
	}
	if ev.Location != "Lahore" {
		t.Errorf("Location: expected unchanged Lahore, got %q", ev.Location)
	}
}

func TestCreateEventRequestNewEvent(t *testing.T) {
	req := CreateEventRequest{Title: "Derby", Category: "Sports", Price: 15, Location: "Stadium"}
	ev := req.NewEvent("user-1")

	if ev.ID != "" {
		t.Errorf("expected empty ID before the store assigns one, got %q", ev.ID)
	}
	if ev.CreatedBy != "user-1" {
		t.Errorf("CreatedBy: expected user-1, got %q", ev.CreatedBy)
	}
	if ev.Category != "Sports" || ev.Price != 15 {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestUserPasswordHashNotSerialised(t *testing.T) {
	data, err := json.Marshal(User{ID: "u1", Email: "a@b.c", PasswordHash: "$2a$10$secret"})
	if err != nil {
		t.Fatalf("failed to marshal User: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("failed to unmarshal User: %v", err)
	}
	if _, ok := raw["password_hash"]; ok {
		t.Error("password hash leaked into JSON")
	}
}
