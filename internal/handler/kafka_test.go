package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/porterhub/shipment-service/internal/entities"
	"github.com/porterhub/shipment-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type creatorStub struct {
	got    *service.CreateShipmentInput
	result entities.Shipment
	err    error
}

func (c *creatorStub) CreateShipment(ctx context.Context, in service.CreateShipmentInput) (entities.Shipment, error) {
	c.got = &in
	return c.result, c.err
}

func newTestKafkaHandler(creator ShipmentCreator) *kafkaHandler {
	return &kafkaHandler{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		validate: validator.New(),
		creator:  creator,
	}
}

func TestKafkaHandler_HandleFulfillment(t *testing.T) {
	t.Run("valid request creates a shipment", func(t *testing.T) {
		creator := &creatorStub{}
		h := newTestKafkaHandler(creator)

		eta := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
		msg := kafka.Message{Value: []byte(`{
			"order_id": "ORD-55",
			"origin": "Delhi",
			"destination": "Jaipur",
			"partner_id": "p-1",
			"estimated_delivery": 1788436800
		}`)}

		err := h.handleFulfillment(context.Background(), msg)
		require.NoError(t, err)

		require.NotNil(t, creator.got)
		assert.Equal(t, "ORD-55", creator.got.OrderID)
		assert.Equal(t, "Delhi", creator.got.Origin)
		assert.Equal(t, "p-1", creator.got.PartnerID)
		assert.Equal(t, eta, creator.got.EstimatedDelivery)
	})

	t.Run("malformed json", func(t *testing.T) {
		creator := &creatorStub{}
		h := newTestKafkaHandler(creator)

		err := h.handleFulfillment(context.Background(), kafka.Message{Value: []byte(`not json`)})
		require.Error(t, err)
		assert.Nil(t, creator.got)
	})

	t.Run("missing required field", func(t *testing.T) {
		creator := &creatorStub{}
		h := newTestKafkaHandler(creator)

		err := h.handleFulfillment(context.Background(), kafka.Message{Value: []byte(`{"order_id":"ORD-55"}`)})
		require.Error(t, err)
		assert.Nil(t, creator.got)
	})

	t.Run("duplicate order is treated as processed", func(t *testing.T) {
		creator := &creatorStub{err: entities.ErrDuplicateOrder}
		h := newTestKafkaHandler(creator)

		msg := kafka.Message{Value: []byte(`{"order_id":"ORD-55","origin":"Delhi","destination":"Jaipur"}`)}
		err := h.handleFulfillment(context.Background(), msg)
		assert.NoError(t, err)
	})

	t.Run("service failure propagates", func(t *testing.T) {
		creator := &creatorStub{err: errors.New("db down")}
		h := newTestKafkaHandler(creator)

		msg := kafka.Message{Value: []byte(`{"order_id":"ORD-55","origin":"Delhi","destination":"Jaipur"}`)}
		err := h.handleFulfillment(context.Background(), msg)
		assert.Error(t, err)
	})
}
