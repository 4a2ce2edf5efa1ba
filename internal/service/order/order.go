package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orders/internal/entities"
)

type transition struct {
	from []entities.OrderStatusType
	to   entities.OrderStatusType
}

// Переходы state machine. Все остальное отсекает условный UPDATE в репозитории.
var (
	payTransition = transition{
		from: []entities.OrderStatusType{entities.OrderPending},
		to:   entities.OrderPaid,
	}
	cancelTransition = transition{
		from: []entities.OrderStatusType{entities.OrderPending},
		to:   entities.OrderCancelled,
	}
	completeTransition = transition{
		from: []entities.OrderStatusType{entities.OrderPaid},
		to:   entities.OrderCompleted,
	}
)

type Service struct {
	repository  Repository
	outbox      OutboxRepository
	idempotency IdempotencyStore
	txManager   TxManager
}

func New(
	repository Repository,
	outbox OutboxRepository,
	idempotency IdempotencyStore,
	txManager TxManager,
) *Service {
	return &Service{
		repository:  repository,
		outbox:      outbox,
		idempotency: idempotency,
		txManager:   txManager,
	}
}

// ListOrders возвращает заказы самого пользователя, опционально по статусу.
func (s *Service) ListOrders(ctx context.Context, caller entities.Caller, status *entities.OrderStatusType) ([]entities.Order, error) {
	return s.List(ctx, caller, entities.ScopeOwner, status)
}

// ListAllOrders возвращает заказы всех пользователей, только для админа.
func (s *Service) ListAllOrders(ctx context.Context, caller entities.Caller, status *entities.OrderStatusType) ([]entities.Order, error) {
	return s.List(ctx, caller, entities.ScopeAll, status)
}

func (s *Service) List(
	ctx context.Context,
	caller entities.Caller,
	scope entities.Scope,
	status *entities.OrderStatusType,
) ([]entities.Order, error) {
	filter := entities.OrderFilter{}

	switch scope {
	case entities.ScopeOwner:
		if caller.ID == "" {
			return nil, ErrForbidden
		}
		filter.UserID = &caller.ID
	case entities.ScopeAll:
		if !caller.IsAdmin {
			return nil, ErrForbidden
		}
	default:
		return nil, ErrForbidden
	}

	if status != nil {
		if !status.IsValid() {
			return nil, ErrInvalidStatus
		}
		filter.Status = status
	}

	orders, err := s.repository.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	return orders, nil
}

// GetOrder отдает ErrOrderNotFound и для несуществующего заказа, и для чужого.
func (s *Service) GetOrder(ctx context.Context, caller entities.Caller, orderID string) (*entities.Order, error) {
	if caller.ID == "" {
		return nil, ErrForbidden
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := s.repository.FindOne(ctx, ownedBy(caller, orderID))
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// PlaceOrder создает заказ в pending. Повтор с тем же ключом идемпотентности
// возвращает заказ, созданный первым запросом.
func (s *Service) PlaceOrder(ctx context.Context, caller entities.Caller, placement entities.OrderPlacement) (*entities.Order, error) {
	if caller.ID == "" {
		return nil, ErrForbidden
	}
	if err := validatePlacement(placement); err != nil {
		return nil, err
	}
	if placement.Amount == nil {
		total := lineItemsTotal(placement.LineItems)
		placement.Amount = &total
	}

	if placement.IdempotencyKey == nil {
		return s.createOrder(ctx, caller, placement)
	}

	key := caller.ID + ":" + strings.TrimSpace(*placement.IdempotencyKey)

	existingID, reserved, err := s.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if !reserved {
		if existingID == "" {
			return nil, ErrDuplicateRequest
		}
		order, err := s.repository.FindOne(ctx, ownedBy(caller, existingID))
		if err != nil {
			return nil, fmt.Errorf("find placed order: %w", err)
		}
		return order, nil
	}

	order, err := s.createOrder(ctx, caller, placement)
	if err != nil {
		if releaseErr := s.idempotency.Release(ctx, key); releaseErr != nil {
			return nil, errors.Join(err, fmt.Errorf("release idempotency key: %w", releaseErr))
		}
		return nil, err
	}

	if err := s.idempotency.Commit(ctx, key, order.ID); err != nil {
		return nil, fmt.Errorf("commit idempotency key: %w", err)
	}
	return order, nil
}

func (s *Service) CancelOrder(ctx context.Context, caller entities.Caller, orderID string) (*entities.Order, error) {
	return s.transitionOwned(ctx, caller, orderID, cancelTransition)
}

func (s *Service) PayOrder(ctx context.Context, caller entities.Caller, orderID string) (*entities.Order, error) {
	return s.transitionOwned(ctx, caller, orderID, payTransition)
}

// CompleteOrder закрывает оплаченный заказ. Только для админа и SystemCaller.
func (s *Service) CompleteOrder(ctx context.Context, caller entities.Caller, orderID string) (*entities.Order, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return s.applyTransition(ctx, orderID, completeTransition, nil)
}

// UpdateOrder применяет админский патч в обход state machine.
func (s *Service) UpdateOrder(
	ctx context.Context,
	caller entities.Caller,
	orderID string,
	modify entities.OrderModify,
) (*entities.Order, error) {
	if !caller.IsAdmin {
		return nil, ErrForbidden
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if err := validateModify(modify); err != nil {
		return nil, err
	}

	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repository.Update(ctx, orderID, modify)
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if modify.Status != nil {
			if err := s.outbox.Add(ctx, statusChanged(order)); err != nil {
				return fmt.Errorf("record status change: %w", err)
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) createOrder(ctx context.Context, caller entities.Caller, placement entities.OrderPlacement) (*entities.Order, error) {
	var created *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.repository.Create(ctx, caller.ID, placement)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := s.outbox.Add(ctx, statusChanged(order)); err != nil {
			return fmt.Errorf("record status change: %w", err)
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) transitionOwned(
	ctx context.Context,
	caller entities.Caller,
	orderID string,
	rule transition,
) (*entities.Order, error) {
	if caller.ID == "" {
		return nil, ErrForbidden
	}
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}

	return s.applyTransition(ctx, orderID, rule, &caller)
}

// applyTransition в одной транзакции: поиск с учетом владельца, условный UPDATE
// и запись в outbox. При owner == nil владельца не проверяем.
func (s *Service) applyTransition(
	ctx context.Context,
	orderID string,
	rule transition,
	owner *entities.Caller,
) (*entities.Order, error) {
	var updated *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if owner != nil {
			if _, err := s.repository.FindOne(ctx, ownedBy(*owner, orderID)); err != nil {
				return fmt.Errorf("find order: %w", err)
			}
		}

		order, err := s.repository.Transition(ctx, orderID, rule.from, rule.to)
		if err != nil {
			return fmt.Errorf("transition order to %s: %w", rule.to, err)
		}

		if err := s.outbox.Add(ctx, statusChanged(order)); err != nil {
			return fmt.Errorf("record status change: %w", err)
		}

		updated = order
		return nil
	})
	observeTransition(rule, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func ownedBy(caller entities.Caller, orderID string) entities.OrderFilter {
	return entities.OrderFilter{
		ID:     &orderID,
		UserID: &caller.ID,
	}
}

func statusChanged(order *entities.Order) entities.OrderEvent {
	return entities.OrderEvent{
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		OccurredAt: order.UpdatedAt,
	}
}
