//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	orderEventsGateway "orders/internal/gateway/kafka/order_events"
	"orders/internal/handlers/tasks/outbox_relay"
	"orders/internal/pkg/config"
	idempotencyRepo "orders/internal/repository/idempotency"
	orderRepo "orders/internal/repository/order"
	outboxRepo "orders/internal/repository/outbox"
	orderService "orders/internal/service/order"
	outboxService "orders/internal/service/outbox"
	"orders/pkg/logger"
	"orders/pkg/tx"
)

var orderSet = wire.NewSet(
	provideTxManager,
	provideQuerier,

	provideOrderRepository,
	provideOutboxRepository,
	provideIdempotencyStore,
	provideOrderService,

	wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
	wire.Bind(new(orderService.OutboxRepository), new(*outboxRepo.Repository)),
	wire.Bind(new(orderService.IdempotencyStore), new(*idempotencyRepo.Store)),
	wire.Bind(new(orderService.TxManager), new(*tx.Manager)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	producer sarama.SyncProducer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		orderSet,

		provideOrderEventsGateway,
		provideOutboxService,
		provideOutboxRelayTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(outboxService.Repository), new(*outboxRepo.Repository)),
		wire.Bind(new(outboxService.Publisher), new(*orderEventsGateway.Gateway)),
		wire.Bind(new(outboxService.TxManager), new(*tx.Manager)),
		wire.Bind(new(outbox_relay.Service), new(*outboxService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-delivery-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	redisClient *goredis.Client,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		orderSet,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
