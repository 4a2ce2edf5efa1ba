package entities

import "time"

// OrderEvent смена статуса, пишется в outbox в той же транзакции, что и сама смена.
type OrderEvent struct {
	ID          int64
	OrderID     string
	UserID      string
	Status      OrderStatusType
	OccurredAt  time.Time
	PublishedAt *time.Time
}

type DeliveryStatusType string

const (
	DeliveryAssigned  DeliveryStatusType = "assigned"
	DeliveryDelivered DeliveryStatusType = "delivered"
)

func (s DeliveryStatusType) String() string {
	return string(s)
}
