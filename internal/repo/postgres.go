package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/porterhub/shipment-service/internal/entities"
	"github.com/porterhub/shipment-service/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var shipmentColumns = []string{
	"shipment_id", "order_id", "tracking_number", "partner_id", "partner_name",
	"status", "origin", "destination", "current_location",
	"estimated_delivery", "created_at",
}

var eventColumns = []string{
	"event_id", "shipment_id", "seq", "occurred_at", "author", "author_role",
	"message", "event_type", "resulting_status",
}

var partnerColumns = []string{
	"partner_id", "name", "provider", "rating", "active_orders",
	"availability", "vehicle_class",
}

type postgresRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewPostgresRepo(db *sqlx.DB) *postgresRepo {
	return &postgresRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *postgresRepo) CreateShipment(ctx context.Context, s entities.Shipment) error {
	query, args := r.qb.Insert("shipments").
		Columns(shipmentColumns...).
		Values(
			s.ID, s.OrderID, s.TrackingNumber,
			nullString(s.PartnerID), nullString(s.PartnerName),
			string(s.Status), s.Origin, s.Destination,
			nullString(s.CurrentLocation), s.EstimatedDelivery, s.CreatedAt,
		).
		MustSql()

	_, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", uniquenessError(err))
	}
	return nil
}

func (r *postgresRepo) GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error) {
	return r.getShipmentWhere(ctx, sq.Eq{"shipment_id": shipmentID})
}

func (r *postgresRepo) GetShipmentByOrder(ctx context.Context, orderID string) (entities.Shipment, error) {
	return r.getShipmentWhere(ctx, sq.Eq{"order_id": orderID})
}

func (r *postgresRepo) GetShipmentByTracking(ctx context.Context, trackingNumber string) (entities.Shipment, error) {
	return r.getShipmentWhere(ctx, sq.Eq{"tracking_number": trackingNumber})
}

func (r *postgresRepo) getShipmentWhere(ctx context.Context, where sq.Eq) (entities.Shipment, error) {
	query, args := r.qb.Select(shipmentColumns...).
		From("shipments").
		Where(where).
		MustSql()

	var row Shipment
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Shipment{}, entities.ErrShipmentNotFound
	}
	if err != nil {
		return entities.Shipment{}, fmt.Errorf("failed to get shipment: %w", err)
	}
	return ShipmentToEntity(row), nil
}

func (r *postgresRepo) SearchShipments(ctx context.Context, f entities.ShipmentFilter) ([]entities.Shipment, error) {
	q := r.qb.Select(shipmentColumns...).
		From("shipments").
		OrderBy("created_at DESC", "shipment_id DESC")

	if f.Status != nil {
		q = q.Where(sq.Eq{"status": string(*f.Status)})
	}
	if f.PartnerID != "" {
		q = q.Where(sq.Eq{"partner_id": f.PartnerID})
	}
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where(sq.Or{
			sq.ILike{"tracking_number": pattern},
			sq.ILike{"order_id": pattern},
		})
	}

	query, args := q.MustSql()

	var rows []Shipment
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search shipments: %w", err)
	}

	result := make([]entities.Shipment, 0, len(rows))
	for _, row := range rows {
		result = append(result, ShipmentToEntity(row))
	}
	return result, nil
}

// LatestShipments returns up to count shipments, newest first. Used to warm
// the read cache on startup.
func (r *postgresRepo) LatestShipments(ctx context.Context, count int) ([]entities.Shipment, error) {
	query, args := r.qb.Select(shipmentColumns...).
		From("shipments").
		OrderBy("created_at DESC", "shipment_id DESC").
		Limit(uint64(count)).
		MustSql()

	var rows []Shipment
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select latest shipments: %w", err)
	}

	result := make([]entities.Shipment, 0, len(rows))
	for _, row := range rows {
		result = append(result, ShipmentToEntity(row))
	}
	return result, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, shipmentID string, status entities.ShipmentStatus) error {
	query, args := r.qb.Update("shipments").
		Set("status", string(status)).
		Where(sq.Eq{"shipment_id": shipmentID}).
		MustSql()

	return r.updateOne(ctx, query, args, "status")
}

func (r *postgresRepo) UpdateTrackingNumber(ctx context.Context, shipmentID, trackingNumber string) error {
	query, args := r.qb.Update("shipments").
		Set("tracking_number", trackingNumber).
		Where(sq.Eq{"shipment_id": shipmentID}).
		MustSql()

	return r.updateOne(ctx, query, args, "tracking number")
}

func (r *postgresRepo) UpdateCourier(ctx context.Context, shipmentID, partnerID, partnerName string) error {
	query, args := r.qb.Update("shipments").
		Set("partner_id", nullString(partnerID)).
		Set("partner_name", nullString(partnerName)).
		Where(sq.Eq{"shipment_id": shipmentID}).
		MustSql()

	return r.updateOne(ctx, query, args, "courier")
}

func (r *postgresRepo) updateOne(ctx context.Context, query string, args []any, what string) error {
	res, err := r.execContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, uniquenessError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if affected == 0 {
		return entities.ErrShipmentNotFound
	}
	return nil
}

func (r *postgresRepo) AppendEvent(ctx context.Context, e entities.TrackingEvent) (entities.TrackingEvent, error) {
	query, args := r.qb.Insert("tracking_events").
		Columns("event_id", "shipment_id", "occurred_at", "author", "author_role",
			"message", "event_type", "resulting_status").
		Values(
			e.ID, e.ShipmentID, e.OccurredAt, e.Author, string(e.AuthorRole),
			e.Message, string(e.Type), nullStatus(e.ResultingStatus),
		).
		Suffix("RETURNING seq").
		MustSql()

	if err := r.getContext(ctx, &e.Seq, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return entities.TrackingEvent{}, entities.ErrShipmentNotFound
		}
		return entities.TrackingEvent{}, fmt.Errorf("failed to append event: %w", err)
	}
	return e, nil
}

func (r *postgresRepo) ListEvents(ctx context.Context, shipmentID string) ([]entities.TrackingEvent, error) {
	query, args := r.qb.Select(eventColumns...).
		From("tracking_events").
		Where(sq.Eq{"shipment_id": shipmentID}).
		OrderBy("occurred_at ASC", "seq ASC").
		MustSql()

	var rows []TrackingEvent
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make([]entities.TrackingEvent, 0, len(rows))
	for _, row := range rows {
		result = append(result, EventToEntity(row))
	}
	return result, nil
}

func (r *postgresRepo) GetPartner(ctx context.Context, partnerID string) (entities.DeliveryPartner, error) {
	query, args := r.qb.Select(partnerColumns...).
		From("delivery_partners").
		Where(sq.Eq{"partner_id": partnerID}).
		MustSql()

	var row DeliveryPartner
	err := r.getContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.DeliveryPartner{}, entities.ErrPartnerNotFound
	}
	if err != nil {
		return entities.DeliveryPartner{}, fmt.Errorf("failed to get partner: %w", err)
	}
	return PartnerToEntity(row), nil
}

func (r *postgresRepo) ListPartners(ctx context.Context) ([]entities.DeliveryPartner, error) {
	query, args := r.qb.Select(partnerColumns...).
		From("delivery_partners").
		OrderBy("name ASC").
		MustSql()

	var rows []DeliveryPartner
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	result := make([]entities.DeliveryPartner, 0, len(rows))
	for _, row := range rows {
		result = append(result, PartnerToEntity(row))
	}
	return result, nil
}

// uniquenessError maps unique-violation errors on the shipments table to the
// matching sentinel. The unique indexes back up the service-level checks.
func uniquenessError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return err
	}
	switch pqErr.Constraint {
	case "shipments_order_id_key":
		return entities.ErrDuplicateOrder
	case "shipments_tracking_number_key":
		return entities.ErrTrackingNumberConflict
	}
	return err
}

func (r *postgresRepo) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return r.db.ExecContext(ctx, query, args...)
}

func (r *postgresRepo) getContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return r.db.GetContext(ctx, dest, query, args...)
}

func (r *postgresRepo) selectContext(ctx context.Context, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return r.db.SelectContext(ctx, dest, query, args...)
}
