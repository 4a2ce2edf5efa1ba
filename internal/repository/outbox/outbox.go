package outbox

import (
	"context"
	"fmt"
	"time"

	"orders/internal/entities"
)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Add пишет событие; вызывать в той же транзакции, что меняет заказ.
func (r *Repository) Add(ctx context.Context, event entities.OrderEvent) error {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	_, err := r.querier.Exec(ctx, `
		INSERT INTO order_events (order_id, user_id, status, occurred_at)
		VALUES ($1, $2, $3, $4)
	`, event.OrderID, event.UserID, event.Status.String(), occurredAt)
	if err != nil {
		return fmt.Errorf("unexpected outbox repository add error: %w", err)
	}
	return nil
}

// FetchUnpublished блокирует до limit неопубликованных событий, строки других релеев пропускает.
// Вызывать внутри транзакции, иначе блокировки не доживут до MarkPublished.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]entities.OrderEvent, error) {
	rows, err := r.querier.Query(ctx, `
		SELECT id, order_id, user_id, status, occurred_at, published_at
		FROM order_events
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	defer rows.Close()

	events := make([]entities.OrderEvent, 0, limit)
	for rows.Next() {
		var model OrderEventDB
		err := rows.Scan(
			&model.ID,
			&model.OrderID,
			&model.UserID,
			&model.Status,
			&model.OccurredAt,
			&model.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
		}
		events = append(events, ToDomain(&model))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected outbox repository fetch error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	_, err := r.querier.Exec(ctx, `
		UPDATE order_events
		SET published_at = NOW()
		WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return fmt.Errorf("unexpected outbox repository mark published error: %w", err)
	}
	return nil
}
