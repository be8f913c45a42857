package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	fulfillmentProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "kafka_consumer",
			Name:      "fulfillment_requests_processed_total",
			Help:      "Total number of successfully processed fulfillment requests",
		},
	)

	fulfillmentFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "kafka_consumer",
			Name:      "fulfillment_requests_failed_total",
			Help:      "Total number of failed fulfillment request processing attempts",
		},
	)

	fulfillmentDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "kafka_consumer",
			Name:      "fulfillment_requests_dlq_total",
			Help:      "Total number of fulfillment requests written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)
)

var (
	shipmentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "lifecycle",
			Name:      "shipments_created_total",
			Help:      "Total number of shipments created",
		},
	)

	statusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "lifecycle",
			Name:      "status_changes_total",
			Help:      "Total number of applied status transitions",
		},
		[]string{"status"},
	)

	invalidTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shipment_service",
			Subsystem: "lifecycle",
			Name:      "invalid_transitions_total",
			Help:      "Total number of rejected status transitions",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		fulfillmentProcessed,
		fulfillmentFailed,
		fulfillmentDLQ,
		commitErrors,

		shipmentsCreated,
		statusChanges,
		invalidTransitions,
	)
}
