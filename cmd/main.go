package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"device-event-pipeline/internal/archive"
	"device-event-pipeline/internal/config"
	"device-event-pipeline/internal/controller"
	"device-event-pipeline/internal/db"
	httpserver "device-event-pipeline/internal/http"
	"device-event-pipeline/internal/logger"
	"device-event-pipeline/internal/queue"
	"device-event-pipeline/internal/repository"
	"device-event-pipeline/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(cfg.LogLevel, cfg.AppMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		lg.Fatal().Err(err).Msg("migrate")
	}

	arch, err := archive.NewMinio(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseTLS, cfg.ArchiveBucket)
	if err != nil {
		lg.Fatal().Err(err).Msg("archive client")
	}
	if err := arch.EnsureBucket(ctx); err != nil {
		lg.Fatal().Err(err).Msg("ensure archive bucket")
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		lg.Fatal().Err(err).Msg("connect nats")
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		lg.Fatal().Err(err).Msg("jetstream context")
	}

	if err := queue.EnsureStream(ctx, js, cfg.StreamName, cfg.Subject); err != nil {
		lg.Fatal().Err(err).Msg("ensure stream")
	}

	consumer, err := queue.NewConsumer(ctx, js, cfg.StreamName, cfg.ConsumerName, cfg.Subject, cfg.WorkerFetchWait)
	if err != nil {
		lg.Fatal().Err(err).Msg("create consumer")
	}

	repo := repository.NewAggregateRepository(pool)
	publisher := queue.NewPublisher(js, cfg.Subject)

	worker := service.NewAggregationWorker(repo, consumer, cfg.WorkerBatchSize, lg)
	ingestService := service.NewIngestService(arch, publisher, lg)
	queryService := service.NewQueryService(repo, lg)
	ctrl := controller.NewPipelineController(ingestService, queryService)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx)
	}()

	server := httpserver.NewServer(cfg, ctrl)

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			lg.Error().Err(err).Msg("server shutdown")
		}
	}()

	lg.Info().Str("addr", cfg.HTTPPort).Msg("starting server")
	if err := server.Listen(cfg.HTTPPort); err != nil {
		lg.Fatal().Err(err).Msg("server stopped")
	}

	wg.Wait()
}
