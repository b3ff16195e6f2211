package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nexcruit/ats-backend/config"
	_ "github.com/nexcruit/ats-backend/docs"
	"github.com/nexcruit/ats-backend/internal/application"
	"github.com/nexcruit/ats-backend/internal/container"
	"github.com/nexcruit/ats-backend/internal/infrastructure/calendar"
	"github.com/nexcruit/ats-backend/internal/infrastructure/mongodb"
	"github.com/nexcruit/ats-backend/internal/infrastructure/notify"
	pginfra "github.com/nexcruit/ats-backend/internal/infrastructure/postgres"
	"github.com/nexcruit/ats-backend/internal/infrastructure/search"
	"github.com/nexcruit/ats-backend/internal/interface/middleware"
	"github.com/nexcruit/ats-backend/internal/router"
	"github.com/nexcruit/ats-backend/pkg/helpers"
	"github.com/nexcruit/ats-backend/pkg/mailer"
	"github.com/nexcruit/ats-backend/pkg/validation"
)

// @title           Nexcruit ATS API
// @version         1.0
// @description     Applicant tracking backend: candidates, interviews, letters and offers.
// @BasePath        /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// MongoDB is the system of record; without it there is nothing to serve.
	store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() { _ = store.Close(context.Background()) }()
	if err := store.EnsureIndexes(ctx); err != nil {
		logger.WithError(err).Fatal("failed to ensure mongodb indexes")
	}

	infra := container.Infra{Mongo: store}

	infra.Redis = connectRedis(ctx, cfg, logger)
	if infra.Redis != nil {
		defer func() { _ = infra.Redis.Close() }()
	}

	if cfg.AuditDatabaseURL != "" {
		pool, err := pginfra.Open(ctx, cfg, logger)
		if err != nil {
			logger.WithError(err).Warn("audit trail disabled")
		} else {
			infra.Audit = pool
			defer pool.Close()
		}
	}

	if cfg.ElasticsearchEnable {
		es, err := connectSearch(ctx, cfg)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable, candidate search falls back to name match")
		} else {
			infra.ES = es
		}
	}

	if cfg.StorageDriver == "gcs" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("failed to init GCS client, storing uploads locally")
		} else {
			infra.GCS = gcsClient
			defer func() { _ = gcsClient.Close() }()
		}
	}

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()
	infra.Notifier = notifier
	infra.Meetings = buildMeetings(ctx, cfg, logger)

	c := container.New(cfg, logger, infra)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorHandler(logger))
	r.MaxMultipartMemory = cfg.MaxUploadBytes

	reg := router.NewRegistry(r)
	reg.Use(middleware.NoStore())
	router.InitModules(reg, c)
	reg.RegisterAll()

	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	if cfg.SchedulerEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Reminders.Run(sweepCtx)
		}()
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	stopSweeper()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	wg.Wait()
	logger.Info("server exited properly")
}

// connectRedis returns nil when Redis does not answer; sessions and rate limits are then disabled.
func connectRedis(ctx context.Context, cfg *config.Config, logger *logrus.Logger) *redis.Client {
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		logger.WithError(err).Warn("redis unavailable, sessions and rate limits disabled")
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func connectSearch(ctx context.Context, cfg *config.Config) (*elasticsearch.Client, error) {
	es, err := search.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		return nil, err
	}
	if err := search.EnsureIndex(ctx, es, cfg.ESCandidatesIndex); err != nil {
		return nil, err
	}
	return es, nil
}

// buildNotifier picks how emails leave the API: dropped, queued for cmd/email_worker, or sent inline.
// A queue that cannot be reached falls back to inline sending.
func buildNotifier(cfg *config.Config, logger *logrus.Logger) (application.Notifier, func()) {
	noop := func() {}
	if !cfg.MailSendEnabled {
		return notify.NewDiscard(logger), noop
	}
	if cfg.MailDelivery == "queue" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err == nil {
			logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("emails are queued for the worker")
			return notify.NewQueue(pub), pub.Close
		}
		logger.WithError(err).Warn("rabbitmq unavailable, sending emails inline")
	}
	sender, err := mailer.NewSender(cfg)
	if err != nil {
		logger.WithError(err).Warn("mail transport not configured, emails are dropped")
		return notify.NewDiscard(logger), noop
	}
	logger.WithField("provider", sender.Name()).Info("emails are sent inline")
	return notify.NewDirect(sender), noop
}

func buildMeetings(ctx context.Context, cfg *config.Config, logger *logrus.Logger) application.MeetingScheduler {
	gc, err := calendar.NewGoogleCalendar(ctx, cfg)
	if err != nil {
		logger.WithError(err).Warn("google calendar unavailable, using placeholder meeting links")
		return calendar.NewPlaceholder(cfg.MeetingFallbackBaseURL)
	}
	return gc
}
