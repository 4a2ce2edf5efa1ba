package convert

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"orders/internal/entities"
	"orders/internal/generated/dto"
)

var ErrInvalidDecimal = errors.New("invalid decimal value")

func ToDTOOrder(order entities.Order) dto.Order {
	items := make([]dto.LineItem, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		items = append(items, dto.LineItem{
			ProductId: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.StringFixed(2),
		})
	}

	// id приходят из БД, при ошибке парсинга остается нулевой uuid
	id, _ := uuid.Parse(order.ID)

	return dto.Order{
		Id:        id,
		UserId:    order.UserID,
		Status:    dto.OrderStatus(order.Status),
		LineItems: items,
		Amount:    order.Amount.StringFixed(2),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func ToDTOOrders(orders []entities.Order) []dto.Order {
	res := make([]dto.Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, ToDTOOrder(o))
	}
	return res
}

func FromDTOLineItems(items []dto.LineItem) ([]entities.LineItem, error) {
	res := make([]entities.LineItem, 0, len(items))
	for i, li := range items {
		price, err := decimal.NewFromString(li.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: line_items[%d].unit_price", ErrInvalidDecimal, i)
		}
		res = append(res, entities.LineItem{
			ProductID: li.ProductId,
			Quantity:  li.Quantity,
			UnitPrice: price,
		})
	}
	return res, nil
}

func FromDTOAmount(amount *string) (*decimal.Decimal, error) {
	if amount == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*amount)
	if err != nil {
		return nil, fmt.Errorf("%w: amount", ErrInvalidDecimal)
	}
	return &d, nil
}
