package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staybook/cancellation-risk/internal/application/usecase"
	"github.com/staybook/cancellation-risk/internal/domain/model"
	"github.com/staybook/cancellation-risk/internal/domain/port"
	"github.com/staybook/cancellation-risk/internal/domain/service"
	"github.com/staybook/cancellation-risk/internal/infrastructure/config"
	"github.com/staybook/cancellation-risk/internal/infrastructure/kafka"
	"github.com/staybook/cancellation-risk/internal/infrastructure/messaging"
	"github.com/staybook/cancellation-risk/internal/infrastructure/ml"
	"github.com/staybook/cancellation-risk/internal/infrastructure/postgres"
	"github.com/staybook/cancellation-risk/internal/infrastructure/telemetry"
	pkgkafka "github.com/staybook/cancellation-risk/internal/pkg/kafka"
	"github.com/staybook/cancellation-risk/internal/pkg/observability"
	pgpkg "github.com/staybook/cancellation-risk/internal/pkg/postgres"
	grpcpresentation "github.com/staybook/cancellation-risk/internal/presentation/grpc"
	"github.com/staybook/cancellation-risk/internal/presentation/rest"
)

func main() {
	if err := run(); err != nil {
		slog.Error("booking-risk service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting booking-risk service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPC.Port,
		"classifier_backend", cfg.Classifier.Backend,
	)

	if cfg.Telemetry.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	metrics, err := telemetry.NewAssessmentMetrics(meterProvider.Meter(telemetry.MeterName))
	if err != nil {
		return fmt.Errorf("failed to create assessment metrics: %w", err)
	}

	// The classifier must be loaded before any listener opens.
	loadCtx, loadCancel := context.WithTimeout(ctx, 15*time.Second)
	loaded, err := ml.Load(loadCtx, cfg.Classifier, logger)
	loadCancel()
	if err != nil {
		if errors.Is(err, model.ErrStartupUnavailable) {
			return fmt.Errorf("classifier artifacts unavailable: %w", err)
		}
		return fmt.Errorf("failed to load classifier: %w", err)
	}

	checks := map[string]rest.ReadinessCheck{
		"classifier": loaded.Ready,
	}

	var watchlist port.WatchlistRepository
	if cfg.DB.Postgres().Enabled() {
		pool, err := openDatabase(ctx, cfg.DB, logger)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer pool.Close()

		watchlist = postgres.NewWatchlistRepository(pool)
		checks["database"] = func(ctx context.Context) error { return pgpkg.HealthCheck(ctx, pool) }
	} else {
		logger.Info("DB_HOST not set, watchlist disabled")
	}

	var publisher port.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkgkafka.NewProducer(cfg.Kafka.Producer())
		if err != nil {
			return fmt.Errorf("failed to create kafka producer: %w", err)
		}
		kafkaPublisher := kafka.NewPublisher(producer, cfg.Kafka.Topic, logger)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("publishing events to kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	} else {
		publisher = messaging.NewLogPublisher(logger)
	}

	classifier := service.NewRiskClassifier(loaded.Classifier)
	assessBookingUC := usecase.NewAssessBooking(loaded.Table, classifier, watchlist, publisher, metrics, logger)
	listWatchlistUC := usecase.NewListWatchlist(watchlist)

	grpcAddress := fmt.Sprintf(":%d", cfg.GRPC.Port)
	grpcHandler := grpcpresentation.NewRiskServiceHandler(assessBookingUC, listWatchlistUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     grpcAddress,
		TLSCertFile: cfg.GRPC.TLSCertFile,
		TLSKeyFile:  cfg.GRPC.TLSKeyFile,
		Reflection:  cfg.GRPC.Reflection,
	}, logger)

	router := rest.NewRouter(rest.RouterConfig{
		Assessments:  rest.NewAssessmentHandler(assessBookingUC, listWatchlistUC, logger),
		Health:       rest.NewHealthHandler(cfg.Telemetry.ServiceName, checks),
		Metrics:      metricsHandler,
		Logger:       logger,
		RateLimitRPS: cfg.RateLimitRPS,
	})

	httpAddress := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:         httpAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", httpAddress)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("booking-risk service started",
		"grpc_address", grpcAddress,
		"http_address", httpAddress,
		"environment", cfg.Environment,
	)

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	logger.Info("shutting down booking-risk service")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("booking-risk service stopped")
	return serveErr
}

func openDatabase(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pgCfg := cfg.Postgres()

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pgpkg.NewPool(dbCtx, pgCfg)
	if err != nil {
		return nil, err
	}

	if err := pgpkg.RunMigrations(pgCfg.DSN(), "file://"+cfg.MigrationsDir); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to database", "host", pgCfg.Host, "database", pgCfg.Database)
	return pool, nil
}
