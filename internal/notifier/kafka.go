package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/porterhub/shipment-service/internal/config"
	"github.com/porterhub/shipment-service/internal/service"

	"github.com/segmentio/kafka-go"
)

type statusChangeMessage struct {
	ShipmentID string `json:"shipment_id"`
	OrderID    string `json:"order_id"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	ChangedBy  string `json:"changed_by"`
	Timestamp  int64  `json:"timestamp"`
}

// KafkaNotifier publishes status change notifications keyed by shipment ID,
// so changes to one shipment land on a single partition in order.
type KafkaNotifier struct {
	writer *kafka.Writer
}

func NewKafkaNotifier(cfg config.Kafka) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.StatusTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (n *KafkaNotifier) StatusChanged(ctx context.Context, change service.StatusChange) error {
	payload, err := json.Marshal(statusChangeMessage{
		ShipmentID: change.ShipmentID,
		OrderID:    change.OrderID,
		OldStatus:  string(change.OldStatus),
		NewStatus:  string(change.NewStatus),
		ChangedBy:  change.ChangedBy,
		Timestamp:  change.OccurredAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal status change: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.ShipmentID),
		Value: payload,
	})
}

func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
