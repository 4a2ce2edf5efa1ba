package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        string
	UserID    string
	Status    OrderStatusType
	LineItems []LineItem
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LineItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

type OrderStatusType string

const (
	OrderPending   OrderStatusType = "pending"
	OrderPaid      OrderStatusType = "paid"
	OrderCompleted OrderStatusType = "completed"
	OrderCancelled OrderStatusType = "cancelled"
)

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal true, если дальше заказ никуда не переходит.
func (s OrderStatusType) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// OrderFilter условия на равенство через AND, nil поля игнорируются.
type OrderFilter struct {
	ID     *string
	UserID *string
	Status *OrderStatusType
}

type OrderPlacement struct {
	LineItems      []LineItem
	Amount         *decimal.Decimal
	IdempotencyKey *string
}

// OrderModify админский патч. UserID менять нельзя.
type OrderModify struct {
	Status    *OrderStatusType
	LineItems *[]LineItem
	Amount    *decimal.Decimal
}

func (m OrderModify) IsEmpty() bool {
	return m.Status == nil && m.LineItems == nil && m.Amount == nil
}
