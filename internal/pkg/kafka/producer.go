package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"orders/internal/pkg/config"
	"orders/pkg/logger"
)

const producerRetryMax = 5

func NewProducerConfig(cfg *config.Kafka) (*sarama.Config, error) {
	version, err := parseVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, err
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Version = version
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Idempotent = true
	saramaCfg.Producer.Retry.Max = producerRetryMax
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Net.MaxOpenRequests = 1
	return saramaCfg, nil
}

// NewSyncProducer дожидается брокеров и возвращает producer с acks=all.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka) (sarama.SyncProducer, error) {
	saramaCfg, err := NewProducerConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("build sarama config: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", cfg.Brokers),
		logger.NewField("topic", cfg.OrderEventsTopic),
	)

	if err := ping(ctx, kafkaLog, cfg.Brokers, saramaCfg); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, fmt.Errorf("create sync producer: %w", err)
	}
	return producer, nil
}
