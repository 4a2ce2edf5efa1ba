//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"orders/internal/entities"
)

type Repository interface {
	FindAll(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)
	FindOne(ctx context.Context, filter entities.OrderFilter) (*entities.Order, error)
	Create(ctx context.Context, userID string, placement entities.OrderPlacement) (*entities.Order, error)
	Transition(
		ctx context.Context,
		orderID string,
		expected []entities.OrderStatusType,
		next entities.OrderStatusType,
	) (*entities.Order, error)
	Update(ctx context.Context, orderID string, modify entities.OrderModify) (*entities.Order, error)
}

type OutboxRepository interface {
	Add(ctx context.Context, event entities.OrderEvent) error
}

type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (string, bool, error)
	Commit(ctx context.Context, key, orderID string) error
	Release(ctx context.Context, key string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
