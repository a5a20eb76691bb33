// Package events implements the audit event sink: a structured, queryable
// log of everything the core does to needs, supplies, shipments, and
// matching passes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a structured audit event type.
type Kind string

const (
	NeedCreated        Kind = "need.created"
	NeedUpdated        Kind = "need.updated"
	NeedFulfilled      Kind = "need.fulfilled"
	SupplyCreated      Kind = "supply.created"
	SupplyUpdated      Kind = "supply.updated"
	SupplyDepleted     Kind = "supply.depleted"
	MatchMade          Kind = "match.made"
	MatchFailed        Kind = "match.failed"
	ShipmentCreated    Kind = "shipment.created"
	ShipmentDispatched Kind = "shipment.dispatched"
	ShipmentDelivered  Kind = "shipment.delivered"
	ShipmentCancelled  Kind = "shipment.cancelled"
	PanicModeTriggered Kind = "panic.triggered"
	SystemAlert        Kind = "system.alert"
	UserAction         Kind = "user.action"
)

// MetadataValue is a closed sum type over the shapes an Entry's free-form
// metadata bag may hold. Any other Go value is rejected at the sink
// boundary (see NewMetadata).
type MetadataValue interface {
	isMetadataValue()
}

type (
	StringValue string
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	IDValue     uuid.UUID
)

func (StringValue) isMetadataValue() {}
func (IntValue) isMetadataValue()    {}
func (FloatValue) isMetadataValue()  {}
func (BoolValue) isMetadataValue()   {}
func (IDValue) isMetadataValue()     {}

// Metadata is the free-form key/value bag carried by an Entry.
type Metadata map[string]MetadataValue

// NewMetadata builds a Metadata map from plain Go values, rejecting any
// value whose type isn't one of the permitted shapes.
func NewMetadata(fields map[string]any) (Metadata, error) {
	out := make(Metadata, len(fields))
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			out[k] = StringValue(val)
		case int:
			out[k] = IntValue(val)
		case int64:
			out[k] = IntValue(val)
		case float64:
			out[k] = FloatValue(val)
		case bool:
			out[k] = BoolValue(val)
		case uuid.UUID:
			out[k] = IDValue(val)
		default:
			return nil, &UnsupportedMetadataError{Key: k, Value: v}
		}
	}
	return out, nil
}

// UnsupportedMetadataError reports a metadata value that isn't one of the
// permitted shapes.
type UnsupportedMetadataError struct {
	Key   string
	Value any
}

func (e *UnsupportedMetadataError) Error() string {
	return "events: unsupported metadata value for key " + e.Key
}

// Entry is a structured audit log record.
type Entry struct {
	ID         uuid.UUID  `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	EventType  Kind       `json:"eventType"`
	Message    string     `json:"message"`
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	UserID     string     `json:"userId,omitempty"`
	Priority   string     `json:"priority,omitempty"`
	Metadata   Metadata   `json:"metadata,omitempty"`
}

// NewEntry constructs an Entry with a fresh identifier and the current
// timestamp.
func NewEntry(kind Kind, message string) Entry {
	return Entry{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		EventType: kind,
		Message:   message,
	}
}

// WithEntity attaches an entity reference to an Entry, returning the
// modified copy.
func (e Entry) WithEntity(id uuid.UUID, entityType string) Entry {
	e.EntityID = &id
	e.EntityType = entityType
	return e
}

// WithMetadata attaches a metadata bag to an Entry, returning the modified
// copy.
func (e Entry) WithMetadata(m Metadata) Entry {
	e.Metadata = m
	return e
}

// Sink is the audit event sink contract: structured append plus the three
// query shapes the dashboard and CLI need (recent, by type, by time range),
// all returning newest-first snapshots that are safe to retain beyond the
// call (no aliasing of internal storage).
type Sink interface {
	Record(entry Entry) error
	Recent(n int) []Entry
	ByType(kind Kind) []Entry
	ByTimeRange(from, to time.Time) []Entry
	AddObserver(o Observer)
	NotifyPanicModeTriggered(panicEntityIDs []uuid.UUID)
}

// Observer receives synchronous notifications from a Sink. OnLogAdded
// fires after each successful append; OnPanicModeTriggered fires once per
// dashboard snapshot that finds a non-empty panic set. Observers run on the
// caller's goroutine and must not block indefinitely.
type Observer interface {
	OnLogAdded(entry Entry)
	OnPanicModeTriggered(panicEntityIDs []uuid.UUID)
}
