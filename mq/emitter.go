package mq

import (
	"context"
	"encoding/json"
	"log"

	"riviera/rdx"
)

const eventsChannel = "club-events"

// Event is a domain notification published on the internal bus.
type Event struct {
	Name       string `json:"name"`
	EntityType string `json:"entity_type"`
	EntityId   string `json:"entity_id"`
	Detail     string `json:"detail,omitempty"`
}

// Emit publishes a domain event to Redis. Failures are logged, never fatal:
// notifications are best-effort.
func Emit(ctx context.Context, name string, event Event) {
	event.Name = name
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[mq] failed to marshal event %s: %v", name, err)
		return
	}
	if err := rdx.Conn.Publish(ctx, eventsChannel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish %s: %v", name, err)
	}
}

// StartNotifierWorker consumes domain events and fans them out to the staff
// notification log. Runs until the process exits.
func StartNotifierWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[notifier] listening for club events...")

	for msg := range ch {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[notifier] failed to parse event: %v", err)
			continue
		}
		log.Printf("[notifier] %s %s/%s %s", event.Name, event.EntityType, event.EntityId, event.Detail)
	}
}
