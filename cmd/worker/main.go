package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/educursus/adapters/event"
	"github.com/khoahotran/educursus/adapters/llm"
	"github.com/khoahotran/educursus/adapters/media_storage"
	"github.com/khoahotran/educursus/adapters/persistence"
	backupUC "github.com/khoahotran/educursus/internal/application/usecase/backup"
	gamificationUC "github.com/khoahotran/educursus/internal/application/usecase/gamification"
	marketUC "github.com/khoahotran/educursus/internal/application/usecase/market"
	"github.com/khoahotran/educursus/internal/config"
	"github.com/khoahotran/educursus/internal/domain/gamification"
	"github.com/khoahotran/educursus/pkg/logger"
	"github.com/khoahotran/educursus/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Educursus Worker...")

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "educursus-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tracing.Shutdown(context.Background(), tp)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Redis cache for market insights
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	generator, err := llm.NewTextGenerator(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot init text generator", err)
	}

	// Worker Use Cases
	processEventUC := gamificationUC.NewProcessEventUseCase(persistence.NewPostgresGamificationRepo(dbPool), appLogger)
	marketUseCase := marketUC.NewMarketUseCase(persistence.NewRedisCache(redisClient), generator, appLogger)

	// Scheduler
	scheduler := gocron.NewScheduler(time.UTC)
	_, err = scheduler.Every(1).Day().At(cfg.Scheduler.InsightsRefreshAt).Do(func() {
		if _, err := marketUseCase.ExecuteRefreshAll(ctx); err != nil {
			appLogger.Error("Market insights refresh failed", err)
		}
	})
	if err != nil {
		appLogger.Fatal("cannot schedule market insights refresh", err, zap.String("at", cfg.Scheduler.InsightsRefreshAt))
	}
	if cfg.Scheduler.BackupAt != "" {
		uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("database backup needs object storage", err)
		}
		backupUseCase := backupUC.NewBackupUseCase(cfg.DB.DSN, backupUC.PgDump, uploader, appLogger)
		_, err = scheduler.Every(1).Day().At(cfg.Scheduler.BackupAt).Do(func() {
			if _, err := backupUseCase.Execute(ctx); err != nil {
				appLogger.Error("Database backup failed", err)
			}
		})
		if err != nil {
			appLogger.Fatal("cannot schedule database backup", err, zap.String("at", cfg.Scheduler.BackupAt))
		}
	}
	scheduler.StartAsync()
	defer scheduler.Stop()

	// Kafka Consumer
	consumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicGamificationEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer consumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicGamificationEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				appLogger.Info("Worker stopping")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		appLogger.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		var e gamification.Event
		if err := json.Unmarshal(msg.Value, &e); err != nil {
			appLogger.Error("Failed to unmarshal event. Skipping.", err, zap.Int64("offset", msg.Offset))
			commitMessage(consumer, msg, appLogger)
			continue
		}

		err = processEventUC.Execute(ctx, e)
		if errors.Is(err, gamificationUC.ErrMalformedEvent) {
			appLogger.Error("Dropping malformed event", err, zap.String("event_id", e.ID.String()))
			commitMessage(consumer, msg, appLogger)
			continue
		}
		if err != nil {
			appLogger.Error("Failed to process event", err, zap.String("event_id", e.ID.String()), zap.String("student_id", e.StudentID.String()))
			continue
		}

		commitMessage(consumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
