package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Date        string             `bson:"date"`
	Location    string             `bson:"location"`
	Image       string             `bson:"image"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toEventDocument(ev models.Event) eventDocument {
	return eventDocument{
		Title:       ev.Title,
		Description: ev.Description,
		Category:    ev.Category,
		Price:       ev.Price,
		Date:        ev.Date,
		Location:    ev.Location,
		Image:       ev.Image,
		CreatedBy:   ev.CreatedBy,
		CreatedAt:   ev.CreatedAt,
		UpdatedAt:   ev.UpdatedAt,
	}
}

func (d eventDocument) model() models.Event {
	return models.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Price:       d.Price,
		Date:        d.Date,
		Location:    d.Location,
		Image:       d.Image,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// EventStore is the MongoDB EventStore, one document per event.
type EventStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewEventStore creates a new EventStore on coll.
func NewEventStore(coll *mongo.Collection) *EventStore {
	return &EventStore{coll: coll, now: time.Now}
}

func listFilter(filter models.EventFilter) bson.M {
	m := bson.M{}
	if filter.Category != "" {
		m["category"] = filter.Category
	}
	return m
}

// List returns the events matching filter in insertion order.
func (s *EventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	cur, err := s.coll.Find(ctx, listFilter(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	for cur.Next(ctx) {
		var doc eventDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, doc.model())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

func (s *EventStore) Get(ctx context.Context, id string) (models.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Event{}, store.ErrNotFound
	}

	var doc eventDocument
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Event{}, store.ErrNotFound
	}
	if err != nil {
		return models.Event{}, fmt.Errorf("find event %s: %w", id, err)
	}
	return doc.model(), nil
}

func (s *EventStore) Create(ctx context.Context, ev *models.Event) error {
	now := s.now().UTC().Truncate(time.Millisecond)
	ev.CreatedAt = now
	ev.UpdatedAt = now

	doc := toEventDocument(*ev)
	doc.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	ev.ID = doc.ID.Hex()
	return nil
}

func (s *EventStore) Update(ctx context.Context, ev *models.Event) error {
	oid, err := primitive.ObjectIDFromHex(ev.ID)
	if err != nil {
		return store.ErrNotFound
	}
	ev.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)

	update := bson.M{"$set": bson.M{
		"title":       ev.Title,
		"description": ev.Description,
		"category":    ev.Category,
		"price":       ev.Price,
		"date":        ev.Date,
		"location":    ev.Location,
		"image":       ev.Image,
		"updated_at":  ev.UpdatedAt,
	}}
	var doc eventDocument
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update event %s: %w", ev.ID, err)
	}
	*ev = doc.model()
	return nil
}

func (s *EventStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
