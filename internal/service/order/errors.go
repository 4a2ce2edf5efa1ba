package order

import (
	"errors"
	"fmt"

	"orders/internal/entities"
)

var ErrValidation = errors.New("validation failed")

var (
	ErrMissingRequiredFields = fmt.Errorf("%w: missing required fields", ErrValidation)
	ErrInvalidOrderID        = fmt.Errorf("%w: invalid order id", ErrValidation)
	ErrInvalidStatus         = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrInvalidLineItems      = fmt.Errorf("%w: invalid line items", ErrValidation)
	ErrInvalidAmount         = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrEmptyModify           = fmt.Errorf("%w: nothing to update", ErrValidation)
	ErrInvalidIdempotencyKey = fmt.Errorf("%w: invalid idempotency key", ErrValidation)
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrDuplicateRequest  = errors.New("request with this idempotency key is in progress")
)

// TransitionError возвращается, когда текущий статус не подходит для перехода.
type TransitionError struct {
	OrderID string
	Current entities.OrderStatusType
	Target  entities.OrderStatusType
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot move from %s to %s", e.OrderID, e.Current, e.Target)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
