package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDB struct {
	ID        uuid.UUID
	UserID    string
	Status    string
	LineItems []LineItemDB
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LineItemDB хранится как элемент JSONB массива line_items.
type LineItemDB struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderModifyDB struct {
	Status    *string
	LineItems *[]LineItemDB
	Amount    *decimal.Decimal
}
