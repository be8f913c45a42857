package entities

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"time"
)

type Shipment struct {
	ID             string
	OrderID        string
	TrackingNumber string

	// PartnerID/PartnerName are a weak reference to the assigned courier,
	// empty when unassigned. PartnerName is denormalized for display.
	PartnerID   string
	PartnerName string

	// Status is a projection of the last status-bearing tracking event.
	// The event log is the source of truth.
	Status ShipmentStatus

	Origin            string
	Destination       string
	CurrentLocation   string
	EstimatedDelivery time.Time
	CreatedAt         time.Time
}

type ShipmentFilter struct {
	Status    *ShipmentStatus
	PartnerID string
	// Query matches case-insensitively as a substring of the tracking
	// number or the order ID.
	Query string
}

var (
	ErrShipmentNotFound       = errors.New("shipment not found")
	ErrPartnerNotFound        = errors.New("delivery partner not found")
	ErrDuplicateOrder         = errors.New("shipment already exists for order")
	ErrTrackingNumberConflict = errors.New("tracking number already in use")
	ErrTerminalState          = errors.New("shipment is in a terminal state")
)

// InvalidTransitionError reports a rejected status change together with the
// validator's reason, so callers can render a precise message.
type InvalidTransitionError struct {
	From   ShipmentStatus
	To     ShipmentStatus
	Reason string
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s: %s", e.From, e.To, e.Reason)
}

func (s *Shipment) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Shipment) Unmarshal(data []byte) error {
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	return dec.Decode(s)
}

func init() {
	gob.Register(Shipment{})
}
