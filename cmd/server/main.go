package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-cms/adapters/event"
	httpAdapter "github.com/khoahotran/portfolio-cms/adapters/http"
	"github.com/khoahotran/portfolio-cms/adapters/media_storage"
	"github.com/khoahotran/portfolio-cms/adapters/persistence"
	"github.com/khoahotran/portfolio-cms/internal/application/service"
	authUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/auth"
	backupUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/backup"
	contactUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio-cms/internal/application/usecase/content"
	mediaUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/media"
	siteUC "github.com/khoahotran/portfolio-cms/internal/application/usecase/site"
	"github.com/khoahotran/portfolio-cms/internal/config"
	"github.com/khoahotran/portfolio-cms/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-cms/pkg/auth"
	"github.com/khoahotran/portfolio-cms/pkg/logger"
	"github.com/khoahotran/portfolio-cms/pkg/tracing"
)

func main() {
	fmt.Println("Start Portfolio CMS API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
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
	var revoked auth.Denylist = auth.NewMemoryDenylist()
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot connect Redis", err)
		}
		defer redisClient.Close()
		cache = persistence.NewRedisSnapshotCache(redisClient, cfg.Redis.SnapshotTTL)
		revoked = persistence.NewRedisDenylist(redisClient)
	}

	// Events
	var events service.EventPublisher = event.NewLogPublisher(appLogger)
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		events = kafkaClient
	}

	// Services
	uploader, err := media_storage.NewCloudinaryAdapter(cfg, appLogger)
	if errors.Is(err, media_storage.ErrNotConfigured) {
		appLogger.Warn("Cloudinary not configured, media uploads are disabled")
	} else if err != nil {
		appLogger.Fatal("Failed to initialize uploader", err)
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = auth.RandomSecret()
		if err != nil {
			appLogger.Fatal("cannot generate session secret", err)
		}
		appLogger.Warn("JWT_SECRET not set, sessions will not survive a restart")
	}
	jwtSvc := auth.NewJWTService(secret, cfg.Auth.TokenLifespan)

	// Use Cases
	profiles := content.NewManager[portfolio.Profile](portfolio.ProfileSchema, stores.Profiles, events, cache, appLogger)
	skills := content.NewManager[portfolio.Skill](portfolio.SkillSchema, stores.Skills, events, cache, appLogger)
	experiences := content.NewManager[portfolio.Experience](portfolio.ExperienceSchema, stores.Experiences, events, cache, appLogger)
	certificates := content.NewManager[portfolio.Certificate](portfolio.CertificateSchema, stores.Certificates, events, cache, appLogger)
	projects := content.NewManager[portfolio.Project](portfolio.ProjectSchema, stores.Projects, events, cache, appLogger)
	status := content.NewManager[portfolio.Status](portfolio.StatusSchema, stores.Status, events, cache, appLogger)
	socialLinks := content.NewManager[portfolio.SocialLink](portfolio.SocialLinkSchema, stores.SocialLinks, events, cache, appLogger)

	sessionUseCase := authUC.NewSessionUseCase(cfg.Auth.AdminPassword, appLogger)
	siteUseCase := siteUC.NewSiteUseCase(stores, cache, siteUC.FeedConfig{Title: cfg.Site.Title, BaseURL: cfg.Site.BaseURL}, appLogger)
	contactUseCase := contactUC.NewContactUseCase(events, nil, appLogger)
	uploadMediaUseCase := mediaUC.NewUploadMediaUseCase(uploader, appLogger)
	deleteMediaUseCase := mediaUC.NewDeleteMediaUseCase(uploader, appLogger)
	backupUseCase := backupUC.NewBackupUseCase(siteUseCase, uploader, appLogger)

	// HTTP Handlers
	cookies := httpAdapter.NewSessionCookies(jwtSvc, revoked, cfg.Auth.AdminPassword, cfg.Auth.SecureCookie)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(httpAdapter.RouterDeps{
		Collections: []httpAdapter.Routes{
			httpAdapter.NewCollectionHandler(profiles, appLogger),
			httpAdapter.NewCollectionHandler(skills, appLogger),
			httpAdapter.NewCollectionHandler(experiences, appLogger),
			httpAdapter.NewCollectionHandler(certificates, appLogger),
			httpAdapter.NewCollectionHandler(projects, appLogger),
			httpAdapter.NewCollectionHandler(status, appLogger),
			httpAdapter.NewCollectionHandler(socialLinks, appLogger),
		},
		ExperienceImages: httpAdapter.NewExperienceImageHandler(content.NewExperienceImages(experiences), appLogger),
		Auth:             httpAdapter.NewAuthHandler(sessionUseCase, cookies, appLogger),
		Site:             httpAdapter.NewSiteHandler(siteUseCase, appLogger),
		RSS:              httpAdapter.NewRSSHandler(siteUseCase, appLogger),
		Contact:          httpAdapter.NewContactHandler(contactUseCase, appLogger),
		Media:            httpAdapter.NewMediaHandler(uploadMediaUseCase, deleteMediaUseCase, appLogger),
		Backup:           httpAdapter.NewBackupHandler(backupUseCase, appLogger),
		AdminGuard:       httpAdapter.AdminGuard(sessionUseCase, cookies),
		Logger:           appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}
