package entities

import "time"

// AuthorRole identifies who recorded a tracking event.
type AuthorRole string

const (
	RoleSeller  AuthorRole = "SELLER"
	RolePartner AuthorRole = "DELIVERY_PARTNER"
	RoleSystem  AuthorRole = "SYSTEM"
)

// EventType classifies the severity of a tracking event.
type EventType string

const (
	EventInfo    EventType = "INFO"
	EventWarning EventType = "WARNING"
	EventSuccess EventType = "SUCCESS"
)

// TrackingEvent is one immutable fact in a shipment's history. Events are
// never updated or deleted once written.
type TrackingEvent struct {
	ID         string
	ShipmentID string

	// Seq is assigned by the log on append and breaks ordering ties
	// between events with equal timestamps.
	Seq int64

	OccurredAt time.Time
	Author     string
	AuthorRole AuthorRole
	Message    string
	Type       EventType

	// ResultingStatus is nil for events that do not change status,
	// e.g. a courier reassignment note.
	ResultingStatus *ShipmentStatus
}

// EventTypeFor derives the severity recorded for a transition into next.
func EventTypeFor(next ShipmentStatus) EventType {
	switch next {
	case StatusDelivered:
		return EventSuccess
	case StatusException, StatusReturned:
		return EventWarning
	default:
		return EventInfo
	}
}
