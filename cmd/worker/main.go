package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	"github.com/khoahotran/portfolio-cms/adapters/mail"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"github.com/khoahotran/portfolio-cms/pkg/tracing"
)

func main() {
	fmt.Println("Starting Portfolio CMS Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("worker needs Kafka brokers", errors.New("kafka.brokers is empty"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-worker")
	if err != nil {
		appLogger.Fatal("cannot init tracer", err)
	}
	defer tracing.Shutdown(context.Background(), tp, appLogger)

	// Storage
	stores, closeStores, err := persistence.OpenStores(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot open stores", err, zap.String("driver", cfg.DB.Driver))
	}
	defer closeStores()

	var cache service.SnapshotCache = persistence.NopSnapshotCache{}
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		cache = persistence.NewRedisSnapshotCache(redisClient, cfg.Redis.SnapshotTTL)
	}

	// Mailer
	var mailer service.Mailer
	smtpMailer, err := mail.NewSMTPMailer(cfg)
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		appLogger.Warn("SMTP not configured, contact messages will be retried until it is")
	case err != nil:
		appLogger.Fatal("cannot init SMTP mailer", err)
	default:
		mailer = smtpMailer
	}

	// Worker Use Cases
	siteUseCase := siteUC.NewSiteUseCase(stores, cache, siteUC.FeedConfig{Title: cfg.Site.Title, BaseURL: cfg.Site.BaseURL}, appLogger)
	contactUseCase := contactUC.NewContactUseCase(event.NewLogPublisher(appLogger), mailer, appLogger)

	// Kafka Consumers
	contentConsumer := event.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-snapshot", event.TopicContentEvents,
		event.ContentEventHandler(func(ctx context.Context, evt service.ContentEvent) error {
			appLogger.Info("Rebuilding snapshot",
				zap.String("collection", evt.Collection),
				zap.String("action", string(evt.Action)),
			)
			_, err := siteUseCase.Rebuild(ctx)
			return err
		}), appLogger)

	contactConsumer := event.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID+"-contact", event.TopicContactMessages,
		event.ContactMessageHandler(contactUseCase.Deliver), appLogger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return contentConsumer.Run(gctx) })
	g.Go(func() error { return contactConsumer.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Worker stopped", err)
		return
	}
	appLogger.Info("Worker stopped")
}
