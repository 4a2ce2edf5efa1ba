package order_events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"orders/internal/entities"
	retrierconfig "orders/pkg/retrier"
	"orders/pkg/retrier/backoff_adapter"
)

const target = "kafka"

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 5 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

type Gateway struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Gateway {
	return &Gateway{
		producer: producer,
		topic:    topic,
		retrier: backoff_adapter.New(retrierconfig.Config{
			InitialInterval: initialInterval,
			MaxInterval:     maxInterval,
			MaxElapsedTime:  maxElapsedTime,
			Randomization:   randomization,
			Multiplier:      multiplier,
			ShouldRetry:     isRetryable,
		}),
	}
}

// Publish отправляет пачку с ключом order id, чтобы события одного заказа шли по порядку в своей партиции.
func (g *Gateway) Publish(ctx context.Context, events []entities.OrderEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for _, e := range events {
		msg, err := toMessage(g.topic, e)
		if err != nil {
			return fmt.Errorf("gateway order events: %w", err)
		}
		msgs = append(msgs, msg)
	}

	err := g.executeWithMetrics(ctx, "SendMessages", func(context.Context) error {
		return g.producer.SendMessages(msgs)
	})
	if err != nil {
		return fmt.Errorf("gateway order events, send %d messages: %w", len(msgs), err)
	}
	return nil
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	result := resultLabel(err)
	GatewayRequestDuration.WithLabelValues(target, method, result).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(target, method, result).Inc()
	}

	return err
}

func isRetryable(err error) bool {
	var producerErrs sarama.ProducerErrors
	if errors.As(err, &producerErrs) {
		if len(producerErrs) == 0 {
			return false
		}
		for _, pe := range producerErrs {
			if !isRetryableKafkaError(pe.Err) {
				return false
			}
		}
		return true
	}
	return isRetryableKafkaError(err)
}

func isRetryableKafkaError(err error) bool {
	switch {
	case errors.Is(err, sarama.ErrOutOfBrokers),
		errors.Is(err, sarama.ErrNotConnected),
		errors.Is(err, sarama.ErrLeaderNotAvailable),
		errors.Is(err, sarama.ErrNotLeaderForPartition),
		errors.Is(err, sarama.ErrRequestTimedOut),
		errors.Is(err, sarama.ErrNotEnoughReplicas),
		errors.Is(err, sarama.ErrNotEnoughReplicasAfterAppend):
		return true
	default:
		return false
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return kerr.Error()
	}
	return "error"
}
