package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicflow/scheduler/internal/api/router"
	"github.com/clinicflow/scheduler/internal/appointments"
	appconfig "github.com/clinicflow/scheduler/internal/config"
	"github.com/clinicflow/scheduler/internal/events"
	"github.com/clinicflow/scheduler/internal/http/handlers"
	"github.com/clinicflow/scheduler/internal/notify"
	"github.com/clinicflow/scheduler/internal/observability/metrics"
	"github.com/clinicflow/scheduler/internal/queue"
	"github.com/clinicflow/scheduler/internal/scheduler"
	"github.com/clinicflow/scheduler/pkg/logging"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic scheduler API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Appointment storage: Postgres in production, in-memory for local
	// runs and demos. Without a database the event outbox degrades to
	// log-only delivery.
	var (
		repo appointments.Repository
		sink events.Sink
	)
	if cfg.UseMemoryRepo || cfg.DatabaseURL == "" {
		logger.Warn("running with in-memory appointment storage")
		repo = appointments.NewInMemoryRepository()
		sink = events.NewLogSink(logger)
	} else {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		repo = appointments.NewPostgresRepository(pool)

		outbox := events.NewOutboxStore(pool)
		sink = outbox

		// Drain the outbox into the notification layer in the background.
		handler := notify.NewService(notify.NewLogDispatcher(logger), logger)
		go events.NewDeliverer(outbox, handler, logger).Start(ctx)
	}

	redisOpts := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("redis unreachable", "error", err, "addr", cfg.RedisAddr)
		os.Exit(1)
	}

	queues := queue.NewStore(redisClient, queue.Defaults{
		WorkingHoursStart:   cfg.WorkingHoursStart,
		WorkingHoursEnd:     cfg.WorkingHoursEnd,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	schedMetrics := metrics.NewSchedulerMetrics(registry)

	svc := scheduler.NewService(repo, queues, sink, logger).
		WithLockTimeout(cfg.LockTimeout).
		WithMetrics(schedMetrics)

	r := router.New(&router.Config{
		Logger:             logger,
		Scheduling:         handlers.NewSchedulingHandler(svc, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: 20,
		RateLimitBurst:     40,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
