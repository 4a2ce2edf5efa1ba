package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "orders/internal/app"
	"orders/internal/entities"
	"orders/internal/handlers/rest/healthcheck_head"
	"orders/internal/handlers/rest/order_cancel_post"
	"orders/internal/handlers/rest/order_complete_post"
	"orders/internal/handlers/rest/order_get"
	"orders/internal/handlers/rest/order_patch"
	"orders/internal/handlers/rest/order_pay_post"
	"orders/internal/handlers/rest/order_post"
	"orders/internal/handlers/rest/orders_get"
	"orders/internal/handlers/rest/ping_get"
	"orders/internal/pkg/config"
	"orders/internal/pkg/dotenv"
	"orders/internal/pkg/kafka"
	metrics_system "orders/internal/pkg/metrics"
	"orders/internal/pkg/middlewares/auth"
	"orders/internal/pkg/middlewares/graceful_shutdown"
	"orders/internal/pkg/middlewares/metrics"
	"orders/internal/pkg/middlewares/rate_limiter"
	"orders/internal/pkg/middlewares/timeout"
	"orders/internal/pkg/migrations"
	"orders/internal/pkg/postgres"
	"orders/internal/pkg/redis"
	"orders/pkg/logger"
	"orders/pkg/logger/zap_adapter"
	"orders/pkg/token_bucket"
)

const rateLimiterIdleTTL = 10 * time.Minute

func main() {
	if err := dotenv.Load(".env"); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(
		zap_adapter.WithLevel(cfg.LogLevel),
		zap_adapter.WithServiceName("order-service"),
	)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting order-service application")

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdown contexts are derived from context.Background() on purpose
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, log, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	redisClient, err := redis.NewClient(ctx, log, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			runLog.Error("failed to close redis client", logger.NewField("error", err))
		}
	}()

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	// workersCtx живет дольше сигнала, outbox relay останавливаем только после остановки http сервера.
	workersCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	businessApp, err := application.InitializeApplication(
		workersCtx, log, pool, pgxv5.DefaultCtxGetter, redisClient, producer, cfg,
	)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(workersCtx)

	// ongoingCtx используется для BaseContext и отменяется только после server.Shutdown().
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, pool, businessApp, cfg),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}

	select {
	case <-ctx.Done():
		runLog.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr: // nil канал, если pprof выключен
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	stopWorkers()
	businessApp.BackgroundWorkers.Wait()

	runLog.Info("server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg *config.Config,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(timeout.Middleware(cfg.Server.RequestTimeout))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	router.Handle("/ping", ping_get.New(log)).Methods(http.MethodGet)

	authenticate := auth.Middleware(log, auth.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
	limit := rate_limiter.Middleware(log, cfg.Server.RateLimiterBurst, token_bucket.NewKeyedLimiter(
		cfg.Server.RateLimiterBurst,
		float64(cfg.Server.RateLimiterQPS),
		rateLimiterIdleTTL,
	))
	adminOnly := auth.AdminOnly(log)

	user := func(h http.Handler) http.Handler {
		return authenticate(limit(h))
	}
	admin := func(h http.Handler) http.Handler {
		return authenticate(limit(adminOnly(h)))
	}

	svc := app.ServiceOrder

	// статические и статусные роуты до /orders/{id}
	router.Handle("/orders/all", admin(orders_get.New(log, svc, entities.ScopeAll))).Methods(http.MethodGet)
	router.Handle("/orders/all/{status}", admin(orders_get.New(log, svc, entities.ScopeAll))).Methods(http.MethodGet)
	router.Handle("/orders/{status:pending|paid|cancelled|completed}",
		user(orders_get.New(log, svc, entities.ScopeOwner))).Methods(http.MethodGet)

	router.Handle("/orders", user(orders_get.New(log, svc, entities.ScopeOwner))).Methods(http.MethodGet)
	router.Handle("/orders", user(order_post.New(log, svc))).Methods(http.MethodPost)
	router.Handle("/orders/{id}", user(order_get.New(log, svc))).Methods(http.MethodGet)
	router.Handle("/orders/{id}", admin(order_patch.New(log, svc))).Methods(http.MethodPatch)
	router.Handle("/orders/{id}/cancel", user(order_cancel_post.New(log, svc))).Methods(http.MethodPost)
	router.Handle("/orders/{id}/pay", user(order_pay_post.New(log, svc))).Methods(http.MethodPost)
	router.Handle("/orders/{id}/complete", admin(order_complete_post.New(log, svc))).Methods(http.MethodPost)

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods(http.MethodHead)
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
