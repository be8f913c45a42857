package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

type FulfillmentRequest struct {
	OrderID           string `json:"order_id"`
	TrackingNumber    string `json:"tracking_number,omitempty"`
	PartnerID         string `json:"partner_id,omitempty"`
	Origin            string `json:"origin"`
	Destination       string `json:"destination"`
	EstimatedDelivery int64  `json:"estimated_delivery,omitempty"`
}

var cities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Chennai",
	"Pune", "Kolkata", "Ahmedabad", "Jaipur", "Lucknow",
}

func randomString(n int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	b := make([]rune, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func generateRandomRequest() FulfillmentRequest {
	req := FulfillmentRequest{
		OrderID:           "ORD-" + randomString(10),
		Origin:            cities[rand.Intn(len(cities))],
		Destination:       cities[rand.Intn(len(cities))],
		EstimatedDelivery: time.Now().AddDate(0, 0, 2+rand.Intn(5)).Unix(),
	}
	if rand.Intn(2) == 0 {
		req.TrackingNumber = fmt.Sprintf("TRK-%s", randomString(12))
	}
	return req
}

func main() {
	addr := kafka.TCP("localhost:9092")

	writer := &kafka.Writer{
		Addr:  addr,
		Topic: "fulfillment-requests",
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	for {
		select {
		case <-ticker.C:
			req := generateRandomRequest()
			data, _ := json.Marshal(req)
			writer.WriteMessages(context.Background(), kafka.Message{Value: data})
			log.Println("fulfillment request generated", req.OrderID)
		case <-ctx.Done():
			return
		}
	}
}
