package repo

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/porterhub/shipment-service/internal/entities"
)

// MemoryRepo is an in-memory implementation of the same store interfaces the
// Postgres repo satisfies. It backs tests and local development without a
// database. There are no transactions; callers rely on append-first ordering
// and on the service's per-shipment lock.
type MemoryRepo struct {
	mu        sync.RWMutex
	shipments map[string]entities.Shipment
	events    map[string][]entities.TrackingEvent
	partners  map[string]entities.DeliveryPartner
	nextSeq   int64
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		shipments: make(map[string]entities.Shipment),
		events:    make(map[string][]entities.TrackingEvent),
		partners:  make(map[string]entities.DeliveryPartner),
	}
}

func (r *MemoryRepo) CreateShipment(_ context.Context, s entities.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.shipments {
		if existing.OrderID == s.OrderID {
			return entities.ErrDuplicateOrder
		}
		if existing.TrackingNumber == s.TrackingNumber {
			return entities.ErrTrackingNumberConflict
		}
	}

	r.shipments[s.ID] = s
	return nil
}

func (r *MemoryRepo) GetShipment(_ context.Context, shipmentID string) (entities.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.shipments[shipmentID]
	if !ok {
		return entities.Shipment{}, entities.ErrShipmentNotFound
	}
	return s, nil
}

func (r *MemoryRepo) GetShipmentByOrder(_ context.Context, orderID string) (entities.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.shipments {
		if s.OrderID == orderID {
			return s, nil
		}
	}
	return entities.Shipment{}, entities.ErrShipmentNotFound
}

func (r *MemoryRepo) GetShipmentByTracking(_ context.Context, trackingNumber string) (entities.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.shipments {
		if s.TrackingNumber == trackingNumber {
			return s, nil
		}
	}
	return entities.Shipment{}, entities.ErrShipmentNotFound
}

func (r *MemoryRepo) SearchShipments(_ context.Context, f entities.ShipmentFilter) ([]entities.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query := strings.ToLower(f.Query)

	result := make([]entities.Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		if f.Status != nil && s.Status != *f.Status {
			continue
		}
		if f.PartnerID != "" && s.PartnerID != f.PartnerID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(s.TrackingNumber), query) &&
			!strings.Contains(strings.ToLower(s.OrderID), query) {
			continue
		}
		result = append(result, s)
	}

	sortShipments(result)
	return result, nil
}

func (r *MemoryRepo) LatestShipments(_ context.Context, count int) ([]entities.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		result = append(result, s)
	}
	sortShipments(result)

	if len(result) > count {
		result = result[:count]
	}
	return result, nil
}

// sortShipments orders newest first, shipment ID as tiebreak, matching the
// Postgres repo so searches are stable across backends.
func sortShipments(shipments []entities.Shipment) {
	slices.SortFunc(shipments, func(a, b entities.Shipment) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}

func (r *MemoryRepo) UpdateStatus(_ context.Context, shipmentID string, status entities.ShipmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shipments[shipmentID]
	if !ok {
		return entities.ErrShipmentNotFound
	}
	s.Status = status
	r.shipments[shipmentID] = s
	return nil
}

func (r *MemoryRepo) UpdateTrackingNumber(_ context.Context, shipmentID, trackingNumber string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shipments[shipmentID]
	if !ok {
		return entities.ErrShipmentNotFound
	}
	for _, other := range r.shipments {
		if other.ID != shipmentID && other.TrackingNumber == trackingNumber {
			return entities.ErrTrackingNumberConflict
		}
	}
	s.TrackingNumber = trackingNumber
	r.shipments[shipmentID] = s
	return nil
}

func (r *MemoryRepo) UpdateCourier(_ context.Context, shipmentID, partnerID, partnerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.shipments[shipmentID]
	if !ok {
		return entities.ErrShipmentNotFound
	}
	s.PartnerID = partnerID
	s.PartnerName = partnerName
	r.shipments[shipmentID] = s
	return nil
}

func (r *MemoryRepo) AppendEvent(_ context.Context, e entities.TrackingEvent) (entities.TrackingEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.shipments[e.ShipmentID]; !ok {
		return entities.TrackingEvent{}, entities.ErrShipmentNotFound
	}

	r.nextSeq++
	e.Seq = r.nextSeq
	r.events[e.ShipmentID] = append(r.events[e.ShipmentID], e)
	return e, nil
}

func (r *MemoryRepo) ListEvents(_ context.Context, shipmentID string) ([]entities.TrackingEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := r.events[shipmentID]
	result := make([]entities.TrackingEvent, len(events))
	copy(result, events)

	slices.SortStableFunc(result, func(a, b entities.TrackingEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return int(a.Seq - b.Seq)
	})
	return result, nil
}

func (r *MemoryRepo) GetPartner(_ context.Context, partnerID string) (entities.DeliveryPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.partners[partnerID]
	if !ok {
		return entities.DeliveryPartner{}, entities.ErrPartnerNotFound
	}
	return p, nil
}

func (r *MemoryRepo) ListPartners(_ context.Context) ([]entities.DeliveryPartner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]entities.DeliveryPartner, 0, len(r.partners))
	for _, p := range r.partners {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b entities.DeliveryPartner) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// SeedPartner registers a delivery partner. Partner onboarding is owned by
// another subsystem, so tests and local setups seed partners directly.
func (r *MemoryRepo) SeedPartner(p entities.DeliveryPartner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.partners[p.ID] = p
}
