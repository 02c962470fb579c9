package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"notekeeper/backend/internal/cache"
	"notekeeper/backend/internal/config"
	"notekeeper/backend/internal/database"
	"notekeeper/backend/internal/handlers"
	"notekeeper/backend/internal/logger"
	"notekeeper/backend/internal/metrics"
	"notekeeper/backend/internal/middleware"
	"notekeeper/backend/internal/reporting"
	"notekeeper/backend/internal/repository/mongodb"
	"notekeeper/backend/internal/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped with error", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep := reporting.New(cfg.SentryDSN, cfg.SentryEnvironment, version, zlog)
	defer rep.Flush(2 * time.Second)

	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := database.Connect(connectCtx, cfg.MongoURI, cfg.DBName, zlog)
	if err != nil {
		cancel()
		return err
	}
	if err := db.EnsureIndexes(connectCtx); err != nil {
		cancel()
		return fmt.Errorf("ensure indexes: %w", err)
	}
	cancel()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(closeCtx); err != nil {
			zlog.Warn("closing mongo", zap.Error(err))
		}
	}()

	var userCache cache.UserCache = cache.Nop{}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.UserCacheTTL, zlog)
		if err != nil {
			return err
		}
		defer rc.Close()
		userCache = rc
	}

	fb, err := newFirebaseApp(ctx, cfg)
	if err != nil {
		return err
	}
	verifier, err := newVerifier(ctx, cfg, fb)
	if err != nil {
		return err
	}
	store, err := newUploader(ctx, cfg, fb, zlog)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	users := mongodb.NewUserRepo(db.Database)
	notes := mongodb.NewNoteRepo(db.Database)
	reminders := mongodb.NewReminderRepo(db.Database)

	directory := services.NewDirectory(users, notes, reminders, zlog,
		services.WithUserCache(userCache),
		services.WithProvisionRecorder(collector),
	)
	h := handlers.New(handlers.Services{
		Notes:     services.NewNoteService(notes, cfg.NotePlaceholderImage),
		Reminders: services.NewReminderService(reminders),
		Users:     directory,
		Search:    services.NewSearchService(notes, reminders),
		Uploads:   services.NewUploadService(store, directory, collector, cfg.UploadMaxBytes, zlog),
		DB:        db,
	}, zlog, rep)

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimitPerMinute,
		Burst:     cfg.RateLimitBurst,
	}, zlog)
	defer limiter.Stop()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(h, handlers.RouterConfig{
		Verifier:       verifier,
		Limiter:        limiter,
		Recorder:       collector,
		MetricsHandler: metrics.Handler(reg),
		CORSOrigin:     cfg.CORSAllowedOrigin,
		RequestTimeout: cfg.RequestTimeout,
		Log:            zlog,
		Reporter:       rep,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("auth_mode", cfg.AuthMode),
			zap.String("storage", cfg.StorageBackend),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zlog.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	zlog.Info("server stopped")
	return nil
}
