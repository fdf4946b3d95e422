// cmd/internmatch-web/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"internmatch-web/internal/common/config"
	"internmatch-web/internal/common/database"
	commonhttp "internmatch-web/internal/common/http"
	"internmatch-web/internal/common/logger"
	"internmatch-web/internal/common/observability"
	"internmatch-web/internal/i18n"
	"internmatch-web/internal/recommender"
	"internmatch-web/internal/session"
	"internmatch-web/internal/web"
	"internmatch-web/internal/web/page"

	ad "internmatch-web/internal/views/admin-dashboard"
	cf "internmatch-web/internal/views/candidate-form"
	ld "internmatch-web/internal/views/landing"
	rl "internmatch-web/internal/views/recommendation-list"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting web server", zap.String("config", cfg.String()))

	obs := observability.New(cfg.Observability.ServiceName, log)
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint, cfg.Observability.TracingEnabled)
	if err != nil {
		zapLog.Fatal("tracing setup failed", zap.Error(err))
	}
	obs.AttachTracing(tracing)

	ctx := context.Background()

	// --- Session store ---
	var store session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendMemory:
		store = session.NewMemoryStore(config.GetDuration(cfg.Session.TTL))
		zapLog.Warn("Using in-memory session store; sessions are lost on restart")
	default:
		var rdb *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Session.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb.GetClient(), config.GetDuration(cfg.Session.TTL))
		zapLog.Info("Redis connected successfully")
	}

	sessions := session.NewManager(store, session.Config{
		CookieName: cfg.Session.CookieName,
		TTL:        config.GetDuration(cfg.Session.TTL),
		PendingTTL: config.GetDuration(cfg.Session.PendingTTL),
		Secure:     cfg.App.Environment == "production",
	}, log)

	// --- Recommendation service ---
	api := recommender.NewClient(
		cfg.Recommender.BaseURL,
		commonhttp.NewClient(config.GetDuration(cfg.Recommender.Timeout)),
		log,
		recommender.WithTracing(tracing),
		recommender.WithObservability(obs),
	)

	// --- Pages ---
	catalog, err := i18n.LoadEmbedded(cfg.I18n.DefaultLanguage)
	if err != nil {
		zapLog.Fatal("failed to load translations", zap.Error(err))
	}

	templates, err := page.NewTemplates(log)
	if err != nil {
		zapLog.Fatal("failed to parse templates", zap.Error(err))
	}

	views := web.Views{
		Landing:         ld.NewHandler(ld.LoadConfig(), templates, log),
		Form:            cf.NewHandler(cf.LoadConfig(), api, templates, log),
		Recommendations: rl.NewHandler(rl.LoadConfig(), templates, log),
		Admin:           ad.NewHandler(ad.LoadConfig(), api, templates, log),
	}
	zapLog.Info("All 4 views registered successfully")

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           web.NewServer(cfg.Observability.ServiceName, views, sessions, catalog, log).Handler(),
		ReadTimeout:       config.GetDuration(cfg.Server.ReadTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Web server stopped gracefully")
}
