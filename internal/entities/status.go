package entities

// ShipmentStatus is the closed set of states a shipment can be in.
type ShipmentStatus string

const (
	StatusPickupPending  ShipmentStatus = "PICKUP_PENDING"
	StatusInTransit      ShipmentStatus = "IN_TRANSIT"
	StatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShipmentStatus = "DELIVERED"
	StatusReturned       ShipmentStatus = "RETURNED"
	StatusException      ShipmentStatus = "EXCEPTION"
)

// Statuses lists every known status. Order matches the typical progression.
var Statuses = []ShipmentStatus{
	StatusPickupPending,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusReturned,
	StatusException,
}

// transitions holds the legal status graph. A status missing from the map or
// mapped to an empty set is terminal.
var transitions = map[ShipmentStatus][]ShipmentStatus{
	StatusPickupPending:  {StatusInTransit, StatusException, StatusReturned},
	StatusInTransit:      {StatusOutForDelivery, StatusException, StatusReturned},
	StatusOutForDelivery: {StatusDelivered, StatusException, StatusReturned},
	StatusDelivered:      {},
	StatusReturned:       {},
	StatusException:      {StatusInTransit, StatusReturned},
}

func (s ShipmentStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed from s.
func (s ShipmentStatus) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Rejection reasons returned by ValidateTransition.
const (
	ReasonIdentity = "identity transition"
	ReasonTerminal = "terminal state"
	ReasonNoEdge   = "no such edge"
)

// Decision is the outcome of validating a proposed status change.
type Decision struct {
	Allowed bool
	Reason  string
}

// ValidateTransition decides whether current→next is a legal status change.
// It is pure: no I/O, no state.
func ValidateTransition(current, next ShipmentStatus) Decision {
	if next == current {
		return Decision{Reason: ReasonIdentity}
	}
	if current.Terminal() {
		return Decision{Reason: ReasonTerminal}
	}
	for _, allowed := range transitions[current] {
		if next == allowed {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: ReasonNoEdge}
}

// StatusDisplay carries the presentation attributes clients render for a status.
type StatusDisplay struct {
	Label string
	Tone  string
}

var statusDisplay = map[ShipmentStatus]StatusDisplay{
	StatusPickupPending:  {Label: "Pickup Pending", Tone: "neutral"},
	StatusInTransit:      {Label: "In Transit", Tone: "info"},
	StatusOutForDelivery: {Label: "Out for Delivery", Tone: "info"},
	StatusDelivered:      {Label: "Delivered", Tone: "success"},
	StatusReturned:       {Label: "Returned", Tone: "warning"},
	StatusException:      {Label: "Exception", Tone: "danger"},
}

func DisplayFor(s ShipmentStatus) StatusDisplay {
	return statusDisplay[s]
}
