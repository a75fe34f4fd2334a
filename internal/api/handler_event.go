package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/middleware"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

// EventPublisher defines the interface for publishing event changes.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte, correlationID string) error
}

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	Store     store.EventStore
	Publisher EventPublisher
	Log       *zap.Logger
}

// NewEventHandler creates a new EventHandler. pub may be nil, in which
// case writes are not announced.
func NewEventHandler(s store.EventStore, pub EventPublisher, log *zap.Logger) *EventHandler {
	return &EventHandler{Store: s, Publisher: pub, Log: log}
}

type listEventsQuery struct {
	Category string `form:"category"`
}

// ListEvents godoc
// @Summary      List events
// @Description  Returns every event in insertion order, narrowed in the store when category is set.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Exact category match"
// @Success      200       {array}   models.Event
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	var q listEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.Store.List(c.Request.Context(), models.EventFilter{Category: q.Category})
	if err != nil {
		h.Log.Error("Error listing events", zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary      Get an event by ID
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  models.Event
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	ev, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err, "failed to fetch event")
		return
	}
	c.JSON(http.StatusOK, ev)
}

// CreateEvent godoc
// @Summary      Create an event
// @Description  Creates an event owned by the caller and publishes an event.created message
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      models.CreateEventRequest  true  "Create event request"
// @Success      201      {object}  models.Event
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	sess, _ := middleware.GetSession(c)

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev := req.NewEvent(sess.UserID)
	if err := h.Store.Create(c.Request.Context(), &ev); err != nil {
		h.storeError(c, err, "failed to create event")
		return
	}

	h.publishChange(c, models.ChangeEventCreated, ev)
	h.Log.Info("Event created",
		zap.String("event_id", ev.ID),
		zap.String("category", ev.Category),
		zap.String("correlation_id", middleware.GetCorrelationID(c)))
	c.JSON(http.StatusCreated, ev)
}

// UpdateEvent godoc
// @Summary      Update an event
// @Description  Applies the set fields to an event owned by the caller and publishes an event.updated message
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                     true  "Event ID"
// @Param        request  body      models.UpdateEventRequest  true  "Update event request"
// @Success      200      {object}  models.Event
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, ok := h.loadOwned(c)
	if !ok {
		return
	}

	req.Apply(&ev)
	if err := h.Store.Update(c.Request.Context(), &ev); err != nil {
		h.storeError(c, err, "failed to update event")
		return
	}

	h.publishChange(c, models.ChangeEventUpdated, ev)
	h.Log.Info("Event updated", zap.String("event_id", ev.ID), zap.String("correlation_id", middleware.GetCorrelationID(c)))
	c.JSON(http.StatusOK, ev)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Description  Deletes an event owned by the caller and publishes an event.deleted message
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	ev, ok := h.loadOwned(c)
	if !ok {
		return
	}

	if err := h.Store.Delete(c.Request.Context(), ev.ID); err != nil {
		h.storeError(c, err, "failed to delete event")
		return
	}

	h.publishChange(c, models.ChangeEventDeleted, ev)
	h.Log.Info("Event deleted", zap.String("event_id", ev.ID), zap.String("correlation_id", middleware.GetCorrelationID(c)))
	c.Status(http.StatusNoContent)
}

// loadOwned fetches the :id event and checks the caller may modify it.
// Events without a recorded creator are open to every signed-in user.
func (h *EventHandler) loadOwned(c *gin.Context) (models.Event, bool) {
	ev, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err, "failed to fetch event")
		return models.Event{}, false
	}

	sess, _ := middleware.GetSession(c)
	if ev.CreatedBy != "" && ev.CreatedBy != sess.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator can modify this event"})
		return models.Event{}, false
	}
	return ev, true
}

func (h *EventHandler) storeError(c *gin.Context, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	h.Log.Error(msg, zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// publishChange announces a write. Failures are logged and never fail the
// request; the write has already been committed.
func (h *EventHandler) publishChange(c *gin.Context, ct models.ChangeType, ev models.Event) {
	if h.Publisher == nil {
		return
	}
	correlationID := middleware.GetCorrelationID(c)
	sess, _ := middleware.GetSession(c)

	body, err := json.Marshal(models.EventChange{
		MessageID:     uuid.New().String(),
		CorrelationID: correlationID,
		ChangeType:    ct,
		Timestamp:     time.Now().UTC(),
		ActorID:       sess.UserID,
		Data:          ev,
	})
	if err != nil {
		h.Log.Error("Error encoding change", zap.Error(err), zap.String("correlation_id", correlationID))
		return
	}

	if err := h.Publisher.Publish(c.Request.Context(), string(ct), body, correlationID); err != nil {
		h.Log.Error("Error publishing change",
			zap.Error(err),
			zap.String("change_type", string(ct)),
			zap.String("event_id", ev.ID),
			zap.String("correlation_id", correlationID))
	}
}
