package order_events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"orders/internal/entities"
)

const EventType = "order.status.changed"

type statusChangedEvent struct {
	EventID    int64     `json:"event_id"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func toMessage(topic string, event entities.OrderEvent) (*sarama.ProducerMessage, error) {
	body, err := json.Marshal(statusChangedEvent{
		EventID:    event.ID,
		OrderID:    event.OrderID,
		UserID:     event.UserID,
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event %d: %w", event.ID, err)
	}

	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(body),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(EventType)},
			{Key: []byte("event-id"), Value: []byte(strconv.FormatInt(event.ID, 10))},
		},
	}, nil
}
