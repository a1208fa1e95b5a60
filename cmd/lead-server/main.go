package main

import (
	"io/fs"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"leadform/internal/leads/handler"
	"leadform/internal/leads/lock"
	"leadform/internal/leads/repository"
	"leadform/internal/leads/service"
	"leadform/internal/leads/validator"
	"leadform/pkg/app"
	"leadform/pkg/client"
	"leadform/pkg/config"
	"leadform/pkg/contracts"
	"leadform/pkg/kafka"
	kafka_middleware "leadform/pkg/kafka/middleware"
	"leadform/pkg/metrics"
	"leadform/pkg/middleware"
	"leadform/web"
)

const (
	serviceName      = "lead-server"
	redisConnTimeout = 5 * time.Second
)

func main() {
	cfg := config.Load(serviceName)
	cfg.Log.Info("Starting lead server")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	application := app.NewApplication()
	clients := client.NewClient()

	locker, idempotencyStore := initCoordination(cfg, clients)
	publisher := initPublisher(cfg, m, application)

	repo, err := repository.NewAirtableLeadRepository(cfg, m)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize record store", "error", err)
	}

	leadService := service.NewLeadService(
		repo,
		validator.NewLeadValidator(cfg.Log),
		locker,
		publisher,
		m,
		cfg,
	)
	cfg.Log.Info("Lead service initialized")

	var readiness handler.Pinger
	if clients.Redis != nil {
		readiness = clients
	}

	application.SetApp(cfg, app.Options{
		Metrics:          m,
		IdempotencyStore: idempotencyStore,
		Probes:           handler.NewHealthHandler(readiness, m.Handler(), cfg.Log),
		ProbePaths:       handler.ProbePaths,
		Handlers: []contracts.Handler{
			handler.NewLeadHandler(leadService, cfg.SuccessRedirect, cfg.Log),
			handler.NewPageHandler(staticFiles(cfg), cfg.Log),
		},
	})
	application.AddCloser("redis", clients)
	application.Run()
}

// initCoordination picks Redis-backed lock and idempotency storage when
// REDIS_URL is set, in-process versions otherwise.
func initCoordination(cfg *config.Config, clients *client.Client) (lock.Locker, middleware.IdempotencyStore) {
	if cfg.RedisURL == "" {
		cfg.Log.Info("REDIS_URL not set, using in-process submission lock")
		return lock.NewKeyedMutex(), middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)
	}

	clients.SetRedis(cfg.Log, cfg.RedisURL, redisConnTimeout)
	cfg.Log.Info("Using Redis submission lock and idempotency store")
	return lock.NewRedisLocker(clients.Redis, cfg.LeadLockTTL),
		middleware.NewRedisIdempotencyStore(clients.Redis, cfg.IdempotencyTTL, cfg.Log)
}

func initPublisher(cfg *config.Config, m *metrics.Metrics, application *app.Application) service.EventPublisher {
	if cfg.Kafka == nil || !cfg.Kafka.Enabled() {
		cfg.Log.Info("KAFKA_BROKERS not set, lead events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	application.AddCloser("kafka producer", producer)

	cfg.Log.Info("Publishing lead events", "topic", producer.Topic(), "brokers", cfg.Kafka.Brokers)
	return producer
}

func staticFiles(cfg *config.Config) fs.FS {
	if cfg.StaticDir == "" {
		return web.Static()
	}
	cfg.Log.Info("Serving pages from directory", "dir", cfg.StaticDir)
	return os.DirFS(cfg.StaticDir)
}
