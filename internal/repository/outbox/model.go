package outbox

import (
	"time"

	"github.com/google/uuid"
	"orders/internal/entities"
)

type OrderEventDB struct {
	ID          int64
	OrderID     uuid.UUID
	UserID      string
	Status      string
	OccurredAt  time.Time
	PublishedAt *time.Time
}

func ToDomain(e *OrderEventDB) entities.OrderEvent {
	return entities.OrderEvent{
		ID:          e.ID,
		OrderID:     e.OrderID.String(),
		UserID:      e.UserID,
		Status:      entities.OrderStatusType(e.Status),
		OccurredAt:  e.OccurredAt,
		PublishedAt: e.PublishedAt,
	}
}
