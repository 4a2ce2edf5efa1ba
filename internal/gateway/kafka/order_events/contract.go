package order_events

import (
	"context"

	"github.com/IBM/sarama"
)

type producer interface {
	SendMessages(msgs []*sarama.ProducerMessage) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}
