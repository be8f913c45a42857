package repo

import (
	"database/sql"
	"time"

	"github.com/porterhub/shipment-service/internal/entities"
)

type Shipment struct {
	ShipmentID        string         `db:"shipment_id"`
	OrderID           string         `db:"order_id"`
	TrackingNumber    string         `db:"tracking_number"`
	PartnerID         sql.NullString `db:"partner_id"`
	PartnerName       sql.NullString `db:"partner_name"`
	Status            string         `db:"status"`
	Origin            string         `db:"origin"`
	Destination       string         `db:"destination"`
	CurrentLocation   sql.NullString `db:"current_location"`
	EstimatedDelivery time.Time      `db:"estimated_delivery"`
	CreatedAt         time.Time      `db:"created_at"`
}

type TrackingEvent struct {
	EventID         string         `db:"event_id"`
	ShipmentID      string         `db:"shipment_id"`
	Seq             int64          `db:"seq"`
	OccurredAt      time.Time      `db:"occurred_at"`
	Author          string         `db:"author"`
	AuthorRole      string         `db:"author_role"`
	Message         string         `db:"message"`
	EventType       string         `db:"event_type"`
	ResultingStatus sql.NullString `db:"resulting_status"`
}

type DeliveryPartner struct {
	PartnerID    string  `db:"partner_id"`
	Name         string  `db:"name"`
	Provider     string  `db:"provider"`
	Rating       float64 `db:"rating"`
	ActiveOrders int     `db:"active_orders"`
	Availability string  `db:"availability"`
	VehicleClass string  `db:"vehicle_class"`
}

func ShipmentToEntity(s Shipment) entities.Shipment {
	return entities.Shipment{
		ID:                s.ShipmentID,
		OrderID:           s.OrderID,
		TrackingNumber:    s.TrackingNumber,
		PartnerID:         nullStringToString(s.PartnerID),
		PartnerName:       nullStringToString(s.PartnerName),
		Status:            entities.ShipmentStatus(s.Status),
		Origin:            s.Origin,
		Destination:       s.Destination,
		CurrentLocation:   nullStringToString(s.CurrentLocation),
		EstimatedDelivery: s.EstimatedDelivery,
		CreatedAt:         s.CreatedAt,
	}
}

func EventToEntity(e TrackingEvent) entities.TrackingEvent {
	ev := entities.TrackingEvent{
		ID:         e.EventID,
		ShipmentID: e.ShipmentID,
		Seq:        e.Seq,
		OccurredAt: e.OccurredAt,
		Author:     e.Author,
		AuthorRole: entities.AuthorRole(e.AuthorRole),
		Message:    e.Message,
		Type:       entities.EventType(e.EventType),
	}
	if e.ResultingStatus.Valid {
		status := entities.ShipmentStatus(e.ResultingStatus.String)
		ev.ResultingStatus = &status
	}
	return ev
}

func PartnerToEntity(p DeliveryPartner) entities.DeliveryPartner {
	return entities.DeliveryPartner{
		ID:           p.PartnerID,
		Name:         p.Name,
		Provider:     p.Provider,
		Rating:       p.Rating,
		ActiveOrders: p.ActiveOrders,
		Availability: entities.PartnerAvailability(p.Availability),
		VehicleClass: p.VehicleClass,
	}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullStatus(s *entities.ShipmentStatus) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*s), Valid: true}
}
