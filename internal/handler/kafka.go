package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/porterhub/shipment-service/internal/config"
	"github.com/porterhub/shipment-service/internal/entities"
	"github.com/porterhub/shipment-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

// FulfillmentRequest is the message order management emits when an order is
// confirmed for fulfillment.
type FulfillmentRequest struct {
	OrderID           string `json:"order_id" validate:"required"`
	TrackingNumber    string `json:"tracking_number,omitempty"`
	PartnerID         string `json:"partner_id,omitempty"`
	Origin            string `json:"origin" validate:"required"`
	Destination       string `json:"destination" validate:"required"`
	EstimatedDelivery int64  `json:"estimated_delivery,omitempty"`
}

type ShipmentCreator interface {
	CreateShipment(ctx context.Context, in service.CreateShipmentInput) (entities.Shipment, error)
}

type kafkaHandler struct {
	dlq      *kafka.Writer
	reader   *kafka.Reader
	logger   *slog.Logger
	validate *validator.Validate
	creator  ShipmentCreator
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, creator ShipmentCreator) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.FulfillmentTopic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		creator:  creator,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			} else {
				h.logger.Error("failed to fetch message", slog.Any("error", err))
				continue
			}
		}

		if err := h.handleFulfillment(ctx, m); err != nil {
			fulfillmentFailed.Inc()
			h.logger.Error("failed to handle message", slog.Any("error", err))

			// The library already retries writes.
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				continue
			}
			fulfillmentDLQ.Inc()
		} else {
			fulfillmentProcessed.Inc()
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleFulfillment(ctx context.Context, m kafka.Message) error {
	var req FulfillmentRequest
	if err := json.Unmarshal(m.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal fulfillment request: %w", err)
	}

	if err := h.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid fulfillment request: %w", err)
	}

	in := service.CreateShipmentInput{
		OrderID:        req.OrderID,
		TrackingNumber: req.TrackingNumber,
		PartnerID:      req.PartnerID,
		Origin:         req.Origin,
		Destination:    req.Destination,
	}
	if req.EstimatedDelivery > 0 {
		in.EstimatedDelivery = time.Unix(req.EstimatedDelivery, 0).UTC()
	}

	_, err := h.creator.CreateShipment(ctx, in)
	if errors.Is(err, entities.ErrDuplicateOrder) {
		// Redelivery of an order we already hold a shipment for.
		h.logger.Debug("shipment already exists", slog.String("order_id", req.OrderID))
		return nil
	}
	return err
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	m.Topic = fmt.Sprintf("%s-dlq", m.Topic)
	return h.dlq.WriteMessages(ctx, m)
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
