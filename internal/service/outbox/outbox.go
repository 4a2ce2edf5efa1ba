package outbox

import (
	"context"
	"fmt"
)

const defaultBatchSize = 100

type Service struct {
	repository Repository
	publisher  Publisher
	txManager  TxManager
	batchSize  int
}

func New(repository Repository, publisher Publisher, txManager TxManager, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Service{
		repository: repository,
		publisher:  publisher,
		txManager:  txManager,
		batchSize:  batchSize,
	}
}

// PublishPending отправляет одну пачку неопубликованных событий. Строки заблокированы
// до конца транзакции, два релея одну пачку не отправят. При ошибке публикации
// транзакция откатывается и пачка уйдет на следующем запуске (at-least-once).
func (s *Service) PublishPending(ctx context.Context) (int, error) {
	var published int

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		events, err := s.repository.FetchUnpublished(ctx, s.batchSize)
		if err != nil {
			return fmt.Errorf("fetch unpublished: %w", err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := s.publisher.Publish(ctx, events); err != nil {
			return fmt.Errorf("publish %d events: %w", len(events), err)
		}

		ids := make([]int64, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}

		if err := s.repository.MarkPublished(ctx, ids); err != nil {
			return fmt.Errorf("mark published: %w", err)
		}

		published = len(events)
		return nil
	})
	if err != nil {
		PublishFailuresTotal.Inc()
		return 0, fmt.Errorf("service outbox: %w", err)
	}

	EventsPublishedTotal.Add(float64(published))
	return published, nil
}
