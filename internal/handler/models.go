package handler

import (
	"time"

	"github.com/porterhub/shipment-service/internal/entities"
)

// Shipment is the JSON representation of a shipment
type Shipment struct {
	ID                string    `json:"shipment_id"`
	OrderID           string    `json:"order_id"`
	TrackingNumber    string    `json:"tracking_number"`
	PartnerID         string    `json:"partner_id,omitempty"`
	PartnerName       string    `json:"partner_name,omitempty"`
	Status            string    `json:"status"`
	Origin            string    `json:"origin,omitempty"`
	Destination       string    `json:"destination,omitempty"`
	CurrentLocation   string    `json:"current_location,omitempty"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	CreatedAt         time.Time `json:"created_at"`
}

// TrackingEvent is one entry of a shipment's history
type TrackingEvent struct {
	ID              string    `json:"event_id"`
	ShipmentID      string    `json:"shipment_id"`
	OccurredAt      time.Time `json:"occurred_at"`
	Author          string    `json:"author"`
	AuthorRole      string    `json:"author_role"`
	Message         string    `json:"message"`
	Type            string    `json:"type"`
	ResultingStatus string    `json:"resulting_status,omitempty"`
}

// DeliveryPartner is a courier agent assignable to shipments
type DeliveryPartner struct {
	ID           string  `json:"partner_id"`
	Name         string  `json:"name"`
	Provider     string  `json:"provider"`
	Rating       float64 `json:"rating"`
	ActiveOrders int     `json:"active_orders"`
	Availability string  `json:"availability"`
	VehicleClass string  `json:"vehicle_class,omitempty"`
}

// StatusDisplay is the presentation config for one shipment status
type StatusDisplay struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Tone   string `json:"tone"`
}

// CreateShipmentRequest registers a shipment for a confirmed order
type CreateShipmentRequest struct {
	OrderID           string    `json:"order_id" validate:"required"`
	TrackingNumber    string    `json:"tracking_number,omitempty"`
	PartnerID         string    `json:"partner_id,omitempty"`
	Origin            string    `json:"origin" validate:"required"`
	Destination       string    `json:"destination" validate:"required"`
	EstimatedDelivery time.Time `json:"estimated_delivery,omitempty"`
}

// ChangeStatusRequest requests a status transition
type ChangeStatusRequest struct {
	Status    string `json:"status" validate:"required,oneof=PICKUP_PENDING IN_TRANSIT OUT_FOR_DELIVERY DELIVERED RETURNED EXCEPTION"`
	Remarks   string `json:"remarks,omitempty"`
	Actor     string `json:"actor" validate:"required"`
	ActorRole string `json:"actor_role" validate:"required,oneof=SELLER DELIVERY_PARTNER SYSTEM"`
}

// ReassignCourierRequest points the shipment at a different partner
type ReassignCourierRequest struct {
	PartnerID string `json:"partner_id" validate:"required"`
}

// ReassignTrackingNumberRequest replaces the shipment's tracking number
type ReassignTrackingNumberRequest struct {
	TrackingNumber string `json:"tracking_number" validate:"required"`
}

// MutationResponse returns the updated shipment with the recorded event
type MutationResponse struct {
	Shipment Shipment      `json:"shipment"`
	Event    TrackingEvent `json:"event"`
}

func ShipmentEntityToJSON(s entities.Shipment) Shipment {
	return Shipment{
		ID:                s.ID,
		OrderID:           s.OrderID,
		TrackingNumber:    s.TrackingNumber,
		PartnerID:         s.PartnerID,
		PartnerName:       s.PartnerName,
		Status:            string(s.Status),
		Origin:            s.Origin,
		Destination:       s.Destination,
		CurrentLocation:   s.CurrentLocation,
		EstimatedDelivery: s.EstimatedDelivery,
		CreatedAt:         s.CreatedAt,
	}
}

func EventEntityToJSON(e entities.TrackingEvent) TrackingEvent {
	ev := TrackingEvent{
		ID:         e.ID,
		ShipmentID: e.ShipmentID,
		OccurredAt: e.OccurredAt,
		Author:     e.Author,
		AuthorRole: string(e.AuthorRole),
		Message:    e.Message,
		Type:       string(e.Type),
	}
	if e.ResultingStatus != nil {
		ev.ResultingStatus = string(*e.ResultingStatus)
	}
	return ev
}

func PartnerEntityToJSON(p entities.DeliveryPartner) DeliveryPartner {
	return DeliveryPartner{
		ID:           p.ID,
		Name:         p.Name,
		Provider:     p.Provider,
		Rating:       p.Rating,
		ActiveOrders: p.ActiveOrders,
		Availability: string(p.Availability),
		VehicleClass: p.VehicleClass,
	}
}

func ShipmentsEntityToJSON(shipments []entities.Shipment) []Shipment {
	result := make([]Shipment, 0, len(shipments))
	for _, s := range shipments {
		result = append(result, ShipmentEntityToJSON(s))
	}
	return result
}

func EventsEntityToJSON(events []entities.TrackingEvent) []TrackingEvent {
	result := make([]TrackingEvent, 0, len(events))
	for _, e := range events {
		result = append(result, EventEntityToJSON(e))
	}
	return result
}
