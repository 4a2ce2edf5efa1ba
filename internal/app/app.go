package app

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	orderEventsGateway "orders/internal/gateway/kafka/order_events"
	"orders/internal/handlers/rest/order_cancel_post"
	"orders/internal/handlers/rest/order_complete_post"
	"orders/internal/handlers/rest/order_get"
	"orders/internal/handlers/rest/order_patch"
	"orders/internal/handlers/rest/order_pay_post"
	"orders/internal/handlers/rest/order_post"
	"orders/internal/handlers/rest/orders_get"
	"orders/internal/handlers/tasks/outbox_relay"
	"orders/internal/pkg/config"
	idempotencyRepo "orders/internal/repository/idempotency"
	orderRepo "orders/internal/repository/order"
	outboxRepo "orders/internal/repository/outbox"
	orderService "orders/internal/service/order"
	outboxService "orders/internal/service/outbox"
	"orders/pkg/background"
	"orders/pkg/logger"
	"orders/pkg/querier"
	"orders/pkg/tx"
)

type Application struct {
	ServiceOrder      ServiceOrder
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	orders_get.Service
	order_get.Service
	order_post.Service
	order_cancel_post.Service
	order_pay_post.Service
	order_complete_post.Service
	order_patch.Service
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideOutboxRepository(querier *querier.Querier) *outboxRepo.Repository {
	return outboxRepo.New(querier)
}

func provideIdempotencyStore(client *goredis.Client, cfg *config.Config) *idempotencyRepo.Store {
	return idempotencyRepo.New(client, cfg.Redis.IdempotencyTTL)
}

func provideOrderService(
	repository orderService.Repository,
	outbox orderService.OutboxRepository,
	idempotency orderService.IdempotencyStore,
	txManager orderService.TxManager,
) *orderService.Service {
	return orderService.New(repository, outbox, idempotency, txManager)
}

func provideOrderEventsGateway(producer sarama.SyncProducer, cfg *config.Config) *orderEventsGateway.Gateway {
	return orderEventsGateway.New(producer, cfg.Kafka.OrderEventsTopic)
}

func provideOutboxService(
	repository outboxService.Repository,
	publisher outboxService.Publisher,
	txManager outboxService.TxManager,
	cfg *config.Config,
) *outboxService.Service {
	return outboxService.New(repository, publisher, txManager, cfg.Tasks.OutboxRelayBatchSize)
}

func provideOutboxRelayTask(
	log logger.Logger,
	service outbox_relay.Service,
	cfg *config.Config,
) *outbox_relay.OutboxRelay {
	return outbox_relay.NewOutboxRelay(log, service, cfg.Tasks.OutboxRelayInterval)
}

func provideTaskList(
	outboxRelayTask *outbox_relay.OutboxRelay,
) []background.Task {
	return []background.Task{
		outboxRelayTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
