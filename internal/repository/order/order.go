package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"orders/internal/entities"
	"orders/internal/repository"
	"orders/internal/service/order"
)

const returningColumns = "id, user_id, status, line_items, amount, created_at, updated_at"

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) FindAll(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	query, args, err := qb.
		Select(returningColumns).
		From("orders").
		Where(filterPredicate(filter)).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository find all error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return []entities.Order{}, nil
		}
		return nil, fmt.Errorf("unexpected order repository find all error: %w", err)
	}
	defer rows.Close()

	models := make([]OrderDB, 0, 8)
	for rows.Next() {
		var model OrderDB
		if err := scanOrder(rows, &model); err != nil {
			return nil, fmt.Errorf("unexpected order repository find all error: %w", err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation) {
			return []entities.Order{}, nil
		}
		return nil, fmt.Errorf("unexpected order repository find all error: %w", err)
	}

	return ToDomainList(models), nil
}

// FindOne требует filter.ID; если задан filter.UserID, ищем только среди заказов этого владельца.
func (r *Repository) FindOne(ctx context.Context, filter entities.OrderFilter) (*entities.Order, error) {
	if filter.ID == nil {
		return nil, fmt.Errorf("order repository find one: %w", order.ErrMissingRequiredFields)
	}

	query, args, err := qb.
		Select(returningColumns).
		From("orders").
		Where(filterPredicate(filter)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository find one error: %w", err)
	}

	var model OrderDB
	err = scanOrder(r.querier.QueryRow(ctx, query, args...), &model)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository find one error: %w", err)
	}

	return ToDomain(&model), nil
}

func (r *Repository) Create(ctx context.Context, userID string, placement entities.OrderPlacement) (*entities.Order, error) {
	query := `
		INSERT INTO orders (user_id, status, line_items, amount)
		VALUES ($1, $2, $3, COALESCE($4::numeric, 0))
		RETURNING ` + returningColumns

	var amount any
	if placement.Amount != nil {
		amount = *placement.Amount
	}

	var model OrderDB
	err := scanOrder(r.querier.QueryRow(
		ctx,
		query,
		userID,
		entities.OrderPending.String(),
		FromDomainLineItems(placement.LineItems),
		amount,
	), &model)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return ToDomain(&model), nil
}

// Transition переводит заказ в next, только если текущий статус входит в expected.
// Проверка и запись это один условный UPDATE, два конкурентных вызова не могут пройти оба.
func (r *Repository) Transition(
	ctx context.Context,
	orderID string,
	expected []entities.OrderStatusType,
	next entities.OrderStatusType,
) (*entities.Order, error) {
	query, args, err := qb.
		Update("orders").
		Set("status", next.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID, "status": statusStrings(expected)}).
		Suffix("RETURNING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository transition error: %w", err)
	}

	var model OrderDB
	err = scanOrder(r.querier.QueryRow(ctx, query, args...), &model)
	switch {
	case err == nil:
		return ToDomain(&model), nil
	case repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation):
		return nil, order.ErrOrderNotFound
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("unexpected order repository transition error: %w", err)
	}

	var current string
	err = r.querier.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1`, orderID).Scan(&current)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository transition error: %w", err)
	}

	return nil, &order.TransitionError{
		OrderID: orderID,
		Current: entities.OrderStatusType(current),
		Target:  next,
	}
}

// Update пишет не-nil поля modify без проверок state machine.
func (r *Repository) Update(ctx context.Context, orderID string, modify entities.OrderModify) (*entities.Order, error) {
	modifyDB := FromDomainModify(&modify)

	builder := qb.Update("orders")

	if modifyDB.Status != nil {
		builder = builder.Set("status", *modifyDB.Status)
	}
	if modifyDB.LineItems != nil {
		builder = builder.Set("line_items", *modifyDB.LineItems)
	}
	if modifyDB.Amount != nil {
		builder = builder.Set("amount", *modifyDB.Amount)
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID}).
		Suffix("RETURNING " + returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	var model OrderDB
	err = scanOrder(r.querier.QueryRow(ctx, query, args...), &model)
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return ToDomain(&model), nil
}

func filterPredicate(filter entities.OrderFilter) sq.Eq {
	eq := sq.Eq{}
	if filter.ID != nil {
		eq["id"] = *filter.ID
	}
	if filter.UserID != nil {
		eq["user_id"] = *filter.UserID
	}
	if filter.Status != nil {
		eq["status"] = filter.Status.String()
	}
	return eq
}

func scanOrder(row pgx.Row, model *OrderDB) error {
	return row.Scan(
		&model.ID,
		&model.UserID,
		&model.Status,
		&model.LineItems,
		&model.Amount,
		&model.CreatedAt,
		&model.UpdatedAt,
	)
}

// isNotFound покрывает и битый uuid, такой строки в таблице быть не может.
func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) ||
		repository.IsPgErrorWithCode(err, repository.PgErrInvalidTextRepresentation)
}
