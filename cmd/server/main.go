package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ptz-simulator/internal/admin"
	"ptz-simulator/internal/eligibility"
	"ptz-simulator/internal/notify"
	"ptz-simulator/internal/platform/config"
	"ptz-simulator/internal/platform/httpserver"
	"ptz-simulator/internal/platform/logger"
	"ptz-simulator/internal/platform/metrics"
	"ptz-simulator/internal/platform/postgres"
	platformredis "ptz-simulator/internal/platform/redis"
	"ptz-simulator/internal/ratelimit"
	"ptz-simulator/internal/submission"
	httptransport "ptz-simulator/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal services
// packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	m := metrics.New()

	var store submission.Store
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connection failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()

		pg := submission.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Error("schema migration failed", "error", err.Error())
			os.Exit(1)
		}
		store = pg
	} else {
		log.Warn("DATABASE_URL not set, using in-memory store; submissions will not survive restarts")
		store = submission.NewInMemoryStore()
	}

	var notifier notify.Notifier = notify.Noop{}
	if cfg.SESRegion != "" && cfg.SenderEmail != "" {
		sesNotifier, err := notify.NewSESNotifier(ctx, cfg.SESRegion, cfg.SenderEmail)
		if err != nil {
			log.Error("ses client init failed", "error", err.Error())
			os.Exit(1)
		}
		notifier = sesNotifier
	} else {
		log.Warn("SES not configured, confirmation emails disabled")
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient == nil {
		log.Warn("REDIS_URL not set, rate limiting disabled")
	} else {
		defer redisClient.Close()
	}
	limiter := ratelimit.New(redisClient, log, cfg.RateLimitPerMinute, time.Minute)

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD not set, admin login disabled until one is configured")
	}
	authenticator := admin.NewAuthenticator(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSigningKey)

	service := submission.NewService(
		store,
		notifier,
		eligibility.Tables2025(),
		log,
		m,
		submission.WithLegacySource(submission.NewLegacySource(cfg.LegacySnapshotPath)),
	)

	router := httptransport.NewRouter(
		httptransport.NewSubmissionHandler(service, log),
		httptransport.NewAdminHandler(authenticator, log),
		authenticator,
		limiter,
		m,
		log,
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting ptz-simulator", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
