package outbox_relay

import (
	"context"
	"time"

	"orders/pkg/logger"
)

type Service interface {
	PublishPending(ctx context.Context) (int, error)
}

type OutboxRelay struct {
	log      logger.Logger
	service  Service
	interval time.Duration
}

func NewOutboxRelay(log logger.Logger, service Service, interval time.Duration) *OutboxRelay {
	return &OutboxRelay{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (o *OutboxRelay) TTL() time.Duration {
	return o.interval
}

func (o *OutboxRelay) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	published, err := o.service.PublishPending(ctxWithTimeout)

	if published > 0 {
		o.log.With(
			logger.NewField("published_events", published),
		).Info("outbox relay")
	}

	return err
}

func (o *OutboxRelay) Info() string {
	return "outbox relay"
}
