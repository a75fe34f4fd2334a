package models

import "time"

// Event is a discoverable happening listed by the API.
type Event struct {
	ID          string    `json:"id" db:"id" bson:"-"`
	Title       string    `json:"title" db:"title" bson:"title"`
	Description string    `json:"description,omitempty" db:"description" bson:"description,omitempty"`
	Category    string    `json:"category" db:"category" bson:"category"`
	Price       float64   `json:"price" db:"price" bson:"price"`
	Date        string    `json:"date" db:"date" bson:"date"`
	Location    string    `json:"location" db:"location" bson:"location"`
	Image       string    `json:"image" db:"image" bson:"image"`
	CreatedBy   string    `json:"created_by,omitempty" db:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" bson:"updated_at"`
}

// EventFilter narrows a store listing. Zero value lists everything.
type EventFilter struct {
	Category string
}

// CreateEventRequest is the request body for creating an event.
type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required,max=255" example:"Jazz Night"`
	Description string  `json:"description" example:"Live quartet on the rooftop"`
	Category    string  `json:"category" binding:"required,max=64" example:"Music"`
	Price       float64 `json:"price" binding:"gte=0,lte=9999999999.99" example:"25"`
	Date        string  `json:"date" binding:"max=64" example:"2025-03-14 20:00"`
	Location    string  `json:"location" binding:"max=255" example:"Karachi"`
	Image       string  `json:"image" binding:"omitempty,url" example:"https://example.com/jazz.jpg"`
}

// UpdateEventRequest is the request body for updating an event.
// Nil fields are left unchanged.
type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,min=1,max=255" example:"Jazz Night"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" binding:"omitempty,min=1,max=64" example:"Music"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0,lte=9999999999.99" example:"30"`
	Date        *string  `json:"date,omitempty" binding:"omitempty,max=64"`
	Location    *string  `json:"location,omitempty" binding:"omitempty,max=255"`
	Image       *string  `json:"image,omitempty" binding:"omitempty,url"`
}

// NewEvent builds an unsaved event from a create request.
func (r CreateEventRequest) NewEvent(createdBy string) Event {
	return Event{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Price:       r.Price,
		Date:        r.Date,
		Location:    r.Location,
		Image:       r.Image,
		CreatedBy:   createdBy,
	}
}

// Apply copies the set fields of the request onto ev.
func (r UpdateEventRequest) Apply(ev *Event) {
	if r.Title != nil {
		ev.Title = *r.Title
	}
	if r.Description != nil {
		ev.Description = *r.Description
	}
	if r.Category != nil {
		ev.Category = *r.Category
	}
	if r.Price != nil {
		ev.Price = *r.Price
	}
	if r.Date != nil {
		ev.Date = *r.Date
	}
	if r.Location != nil {
		ev.Location = *r.Location
	}
	if r.Image != nil {
		ev.Image = *r.Image
	}
}
