package services

import (
	"encoding/json"
	"fmt"
	"log"

	"storefront/internal/models"
)

// HandleOrderCreated processes an order.created message from the queue by
// recording the confirmation to send.
func HandleOrderCreated(body []byte) error {
	var event models.OrderCreatedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to decode order event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order event without order id")
	}
	log.Printf("Order %s confirmed: %d item(s), total %s, confirmation to %s",
		event.OrderID, event.ItemCount, event.Total.StringFixed(2), event.Email)
	return nil
}
