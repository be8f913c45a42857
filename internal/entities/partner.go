package entities

// PartnerAvailability is the courier agent's current availability.
type PartnerAvailability string

const (
	PartnerOnline  PartnerAvailability = "ONLINE"
	PartnerOffline PartnerAvailability = "OFFLINE"
	PartnerOnBreak PartnerAvailability = "ON_BREAK"
)

// DeliveryPartner is a courier agent assignable to shipments. Shipments hold
// a weak reference to a partner, not ownership.
type DeliveryPartner struct {
	ID           string
	Name         string
	Provider     string
	Rating       float64
	ActiveOrders int
	Availability PartnerAvailability
	VehicleClass string
}
