package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// InventoryEvent is published by the ingestion side whenever flights are
// added, repriced or removed.
type InventoryEvent struct {
	Type        string    `json:"type"`
	FlightID    int64     `json:"flight_id"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func DecodeInventoryEvent(msg kafka.Message) (InventoryEvent, error) {
	var event InventoryEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return InventoryEvent{}, fmt.Errorf("decode inventory event: %w", err)
	}
	if event.Type == "" {
		return InventoryEvent{}, fmt.Errorf("decode inventory event: missing type")
	}
	return event, nil
}
