package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/porterhub/shipment-service/internal/entities"
	"github.com/porterhub/shipment-service/pkg/keylock"
	"github.com/porterhub/shipment-service/pkg/trm"
	"github.com/porterhub/shipment-service/pkg/utils"

	"github.com/google/uuid"
)

type ShipmentRepo interface {
	CreateShipment(ctx context.Context, s entities.Shipment) error
	GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error)
	GetShipmentByOrder(ctx context.Context, orderID string) (entities.Shipment, error)
	GetShipmentByTracking(ctx context.Context, trackingNumber string) (entities.Shipment, error)
	SearchShipments(ctx context.Context, f entities.ShipmentFilter) ([]entities.Shipment, error)
	LatestShipments(ctx context.Context, count int) ([]entities.Shipment, error)

	// Updates overwrite the cached projection columns only; they are invoked
	// inside the same transaction as the event append.
	UpdateStatus(ctx context.Context, shipmentID string, status entities.ShipmentStatus) error
	UpdateTrackingNumber(ctx context.Context, shipmentID, trackingNumber string) error
	UpdateCourier(ctx context.Context, shipmentID, partnerID, partnerName string) error
}

// EventLog is the append-only tracking event store. No update or delete
// exists by design.
type EventLog interface {
	AppendEvent(ctx context.Context, e entities.TrackingEvent) (entities.TrackingEvent, error)
	ListEvents(ctx context.Context, shipmentID string) ([]entities.TrackingEvent, error)
}

type PartnerRepo interface {
	GetPartner(ctx context.Context, partnerID string) (entities.DeliveryPartner, error)
	ListPartners(ctx context.Context) ([]entities.DeliveryPartner, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

// StatusChange is the fire-and-forget notification emitted to order
// management after a successful status mutation.
type StatusChange struct {
	ShipmentID string
	OrderID    string
	OldStatus  entities.ShipmentStatus
	NewStatus  entities.ShipmentStatus
	ChangedBy  string
	OccurredAt time.Time
}

type Notifier interface {
	StatusChanged(ctx context.Context, change StatusChange) error
}

type CreateShipmentInput struct {
	OrderID           string
	TrackingNumber    string
	PartnerID         string
	Origin            string
	Destination       string
	EstimatedDelivery time.Time
}

var readRetry = utils.RetryConfig{
	InitialDelay: 100 * time.Millisecond,
	MaxAttempts:  5,
	Multiplier:   2,
}

type shipmentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	shipments ShipmentRepo
	events    EventLog
	partners  PartnerRepo
	cache     Cache
	notifier  Notifier

	// locks serializes mutations per shipment ID so two concurrent callers
	// cannot both validate against the same current status and leave the
	// projection behind the log.
	locks *keylock.KeyLock
}

func NewShipmentService(
	logger *slog.Logger,
	txManager trm.Manager,
	shipments ShipmentRepo,
	events EventLog,
	partners PartnerRepo,
	cache Cache,
	notifier Notifier,
) *shipmentService {
	return &shipmentService{
		logger:    logger.With(slog.String("service", "shipment")),
		txManager: txManager,
		shipments: shipments,
		events:    events,
		partners:  partners,
		cache:     cache,
		notifier:  notifier,
		locks:     keylock.New(),
	}
}

// CreateShipment registers a shipment for a confirmed order in
// PICKUP_PENDING and records the seed tracking event atomically.
func (s *shipmentService) CreateShipment(ctx context.Context, in CreateShipmentInput) (entities.Shipment, error) {
	trackingNumber := in.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = newTrackingNumber()
	}

	var partnerName string
	if in.PartnerID != "" {
		partner, err := s.partners.GetPartner(ctx, in.PartnerID)
		if err != nil {
			return entities.Shipment{}, fmt.Errorf("failed to resolve partner: %w", err)
		}
		partnerName = partner.Name
	}

	now := time.Now().UTC()
	status := entities.StatusPickupPending
	shipment := entities.Shipment{
		ID:                uuid.NewString(),
		OrderID:           in.OrderID,
		TrackingNumber:    trackingNumber,
		PartnerID:         in.PartnerID,
		PartnerName:       partnerName,
		Status:            status,
		Origin:            in.Origin,
		Destination:       in.Destination,
		EstimatedDelivery: in.EstimatedDelivery,
		CreatedAt:         now,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// The unique indexes back these checks up; checking here keeps the
		// invariant owned by the service, not just the storage.
		if _, err := s.shipments.GetShipmentByOrder(ctx, in.OrderID); err == nil {
			return entities.ErrDuplicateOrder
		} else if !errors.Is(err, entities.ErrShipmentNotFound) {
			return err
		}

		if err := s.shipments.CreateShipment(ctx, shipment); err != nil {
			return fmt.Errorf("failed to create shipment: %w", err)
		}

		seed := entities.TrackingEvent{
			ID:              uuid.NewString(),
			ShipmentID:      shipment.ID,
			OccurredAt:      now,
			Author:          "system",
			AuthorRole:      entities.RoleSystem,
			Message:         "Label generated",
			Type:            entities.EventInfo,
			ResultingStatus: &status,
		}
		if _, err := s.events.AppendEvent(ctx, seed); err != nil {
			return fmt.Errorf("failed to append seed event: %w", err)
		}
		return nil
	})
	if err != nil {
		return entities.Shipment{}, err
	}

	s.logger.InfoContext(ctx, "shipment created",
		slog.String("shipment_id", shipment.ID),
		slog.String("order_id", shipment.OrderID),
	)
	return shipment, nil
}

func (s *shipmentService) GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error) {
	if data, ok := s.cache.Get(shipmentID); ok {
		var shipment entities.Shipment
		if err := shipment.Unmarshal(data); err != nil {
			s.logger.Error("failed to unmarshal cached shipment", slog.String("shipment_id", shipmentID), slog.Any("error", err))
			return entities.Shipment{}, err
		}
		return shipment, nil
	}

	var shipment entities.Shipment
	fn := func() error {
		var err error
		shipment, err = s.shipments.GetShipment(ctx, shipmentID)
		return err
	}
	if err := utils.Retry(readRetry, fn, entities.ErrShipmentNotFound); err != nil {
		return entities.Shipment{}, err
	}

	s.cacheShipment(shipment)
	return shipment, nil
}

// ListEvents returns the shipment's full history, oldest first.
func (s *shipmentService) ListEvents(ctx context.Context, shipmentID string) ([]entities.TrackingEvent, error) {
	if _, err := s.shipments.GetShipment(ctx, shipmentID); err != nil {
		return nil, err
	}
	return s.events.ListEvents(ctx, shipmentID)
}

func (s *shipmentService) Search(ctx context.Context, f entities.ShipmentFilter) ([]entities.Shipment, error) {
	var shipments []entities.Shipment
	fn := func() error {
		var err error
		shipments, err = s.shipments.SearchShipments(ctx, f)
		return err
	}
	if err := utils.Retry(readRetry, fn); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (s *shipmentService) ListPartners(ctx context.Context) ([]entities.DeliveryPartner, error) {
	return s.partners.ListPartners(ctx)
}

// ChangeStatus applies a validated status transition. The event append and
// the projection update commit in one transaction; a rejected transition
// performs no writes. Mutations are not retried internally: there is no
// idempotency key, so retry policy belongs to the caller.
func (s *shipmentService) ChangeStatus(ctx context.Context, shipmentID string, next entities.ShipmentStatus, remarks, actor string, role entities.AuthorRole) (entities.Shipment, entities.TrackingEvent, error) {
	unlock := s.locks.Lock(shipmentID)
	defer unlock()

	var (
		updated  entities.Shipment
		event    entities.TrackingEvent
		previous entities.ShipmentStatus
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetShipment(ctx, shipmentID)
		if err != nil {
			return err
		}
		previous = shipment.Status

		if d := entities.ValidateTransition(shipment.Status, next); !d.Allowed {
			return entities.InvalidTransitionError{From: shipment.Status, To: next, Reason: d.Reason}
		}

		message := remarks
		if message == "" {
			message = "Status changed to " + entities.DisplayFor(next).Label
		}

		status := next
		event = entities.TrackingEvent{
			ID:              uuid.NewString(),
			ShipmentID:      shipmentID,
			OccurredAt:      time.Now().UTC(),
			Author:          actor,
			AuthorRole:      role,
			Message:         message,
			Type:            entities.EventTypeFor(next),
			ResultingStatus: &status,
		}
		event, err = s.events.AppendEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}

		if err := s.shipments.UpdateStatus(ctx, shipmentID, next); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		updated = shipment
		updated.Status = next
		return nil
	})
	if err != nil {
		return entities.Shipment{}, entities.TrackingEvent{}, err
	}

	s.cache.Delete(shipmentID)
	s.notifyStatusChange(ctx, StatusChange{
		ShipmentID: shipmentID,
		OrderID:    updated.OrderID,
		OldStatus:  previous,
		NewStatus:  next,
		ChangedBy:  actor,
		OccurredAt: event.OccurredAt,
	})

	s.logger.InfoContext(ctx, "shipment status changed",
		slog.String("shipment_id", shipmentID),
		slog.String("status", string(next)),
		slog.String("actor", actor),
	)
	return updated, event, nil
}

// ReassignCourier points the shipment at a different delivery partner and
// records an informational event. The status is unchanged.
func (s *shipmentService) ReassignCourier(ctx context.Context, shipmentID, partnerID string) (entities.Shipment, entities.TrackingEvent, error) {
	unlock := s.locks.Lock(shipmentID)
	defer unlock()

	var (
		updated entities.Shipment
		event   entities.TrackingEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetShipment(ctx, shipmentID)
		if err != nil {
			return err
		}
		if shipment.Status.Terminal() {
			return entities.ErrTerminalState
		}

		partner, err := s.partners.GetPartner(ctx, partnerID)
		if err != nil {
			return err
		}

		if err := s.shipments.UpdateCourier(ctx, shipmentID, partner.ID, partner.Name); err != nil {
			return fmt.Errorf("failed to update courier: %w", err)
		}

		event = entities.TrackingEvent{
			ID:         uuid.NewString(),
			ShipmentID: shipmentID,
			OccurredAt: time.Now().UTC(),
			Author:     "system",
			AuthorRole: entities.RoleSystem,
			Message:    "Courier reassigned to " + partner.Name,
			Type:       entities.EventInfo,
		}
		event, err = s.events.AppendEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}

		updated = shipment
		updated.PartnerID = partner.ID
		updated.PartnerName = partner.Name
		return nil
	})
	if err != nil {
		return entities.Shipment{}, entities.TrackingEvent{}, err
	}

	s.cache.Delete(shipmentID)
	return updated, event, nil
}

// ReassignTrackingNumber replaces the shipment's tracking number, keeping
// the number unique across shipments, and records an informational event.
func (s *shipmentService) ReassignTrackingNumber(ctx context.Context, shipmentID, trackingNumber string) (entities.Shipment, entities.TrackingEvent, error) {
	unlock := s.locks.Lock(shipmentID)
	defer unlock()

	var (
		updated entities.Shipment
		event   entities.TrackingEvent
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		shipment, err := s.shipments.GetShipment(ctx, shipmentID)
		if err != nil {
			return err
		}
		if shipment.Status.Terminal() {
			return entities.ErrTerminalState
		}

		if other, err := s.shipments.GetShipmentByTracking(ctx, trackingNumber); err == nil {
			if other.ID != shipmentID {
				return entities.ErrTrackingNumberConflict
			}
		} else if !errors.Is(err, entities.ErrShipmentNotFound) {
			return err
		}

		if err := s.shipments.UpdateTrackingNumber(ctx, shipmentID, trackingNumber); err != nil {
			return fmt.Errorf("failed to update tracking number: %w", err)
		}

		event = entities.TrackingEvent{
			ID:         uuid.NewString(),
			ShipmentID: shipmentID,
			OccurredAt: time.Now().UTC(),
			Author:     "system",
			AuthorRole: entities.RoleSystem,
			Message:    fmt.Sprintf("Tracking number changed from %s to %s", shipment.TrackingNumber, trackingNumber),
			Type:       entities.EventInfo,
		}
		event, err = s.events.AppendEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to append event: %w", err)
		}

		updated = shipment
		updated.TrackingNumber = trackingNumber
		return nil
	})
	if err != nil {
		return entities.Shipment{}, entities.TrackingEvent{}, err
	}

	s.cache.Delete(shipmentID)
	return updated, event, nil
}

// WarmUpCache preloads the newest shipments into the read cache.
func (s *shipmentService) WarmUpCache(ctx context.Context, count int) error {
	shipments, err := s.shipments.LatestShipments(ctx, count)
	if err != nil {
		return fmt.Errorf("failed to warm up cache: %w", err)
	}
	for _, shipment := range shipments {
		s.cacheShipment(shipment)
	}
	s.logger.Info("cache warmed up", slog.Int("shipments", len(shipments)))
	return nil
}

func (s *shipmentService) cacheShipment(shipment entities.Shipment) {
	data, err := shipment.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal shipment", slog.String("shipment_id", shipment.ID), slog.Any("error", err))
		return
	}
	s.cache.Set(shipment.ID, data)
}

func (s *shipmentService) notifyStatusChange(ctx context.Context, change StatusChange) {
	if err := s.notifier.StatusChanged(ctx, change); err != nil {
		// Fire-and-forget: order management reconciles on its own schedule.
		s.logger.WarnContext(ctx, "failed to notify status change",
			slog.String("shipment_id", change.ShipmentID),
			slog.Any("error", err),
		)
	}
}

func newTrackingNumber() string {
	return "TRK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
}
