package models

import "time"

// ChangeType represents the kind of change applied to an event.
type ChangeType string

const (
	ChangeEventCreated ChangeType = "event.created"
	ChangeEventUpdated ChangeType = "event.updated"
	ChangeEventDeleted ChangeType = "event.deleted"
)

// ChangeTypes lists every routing key published for event changes.
var ChangeTypes = []ChangeType{ChangeEventCreated, ChangeEventUpdated, ChangeEventDeleted}

// RoutingKeys returns ChangeTypes as plain strings for queue bindings.
func RoutingKeys() []string {
	keys := make([]string, len(ChangeTypes))
	for i, ct := range ChangeTypes {
		keys[i] = string(ct)
	}
	return keys
}

// EventChange is the message published whenever an event is written.
type EventChange struct {
	MessageID     string     `json:"message_id"`
	CorrelationID string     `json:"correlation_id"`
	ChangeType    ChangeType `json:"change_type"`
	Timestamp     time.Time  `json:"timestamp"`
	ActorID       string     `json:"actor_id,omitempty"`
	Data          Event      `json:"data"`
}
