package order

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"orders/internal/entities"
)

const (
	amountScale          = 2
	maxIdempotencyKeyLen = 128
)

func isValidOrderID(orderID string) bool {
	return uuid.Validate(orderID) == nil
}

func validateLineItems(items []entities.LineItem) error {
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" || it.Quantity <= 0 {
			return ErrInvalidLineItems
		}
		if it.UnitPrice.IsNegative() || it.UnitPrice.Exponent() < -amountScale {
			return ErrInvalidLineItems
		}
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.Exponent() < -amountScale {
		return ErrInvalidAmount
	}
	return nil
}

func validatePlacement(placement entities.OrderPlacement) error {
	if err := validateLineItems(placement.LineItems); err != nil {
		return err
	}
	if placement.Amount != nil {
		if err := validateAmount(*placement.Amount); err != nil {
			return err
		}
	}
	if placement.IdempotencyKey != nil {
		key := strings.TrimSpace(*placement.IdempotencyKey)
		if key == "" || len(key) > maxIdempotencyKeyLen {
			return ErrInvalidIdempotencyKey
		}
	}
	return nil
}

func validateModify(modify entities.OrderModify) error {
	if modify.IsEmpty() {
		return ErrEmptyModify
	}
	if modify.Status != nil && !modify.Status.IsValid() {
		return ErrInvalidStatus
	}
	if modify.LineItems != nil {
		if err := validateLineItems(*modify.LineItems); err != nil {
			return err
		}
	}
	if modify.Amount != nil {
		if err := validateAmount(*modify.Amount); err != nil {
			return err
		}
	}
	return nil
}

// lineItemsTotal сумма заказа по умолчанию, если клиент ее не передал.
func lineItemsTotal(items []entities.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return total
}
