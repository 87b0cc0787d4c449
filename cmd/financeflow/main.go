package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/financeflow/internal/adapters/storage"
	portsrepo "github.com/SscSPs/financeflow/internal/core/ports/repositories"
	"github.com/SscSPs/financeflow/internal/core/services"
	"github.com/SscSPs/financeflow/internal/dto"
	"github.com/SscSPs/financeflow/internal/handlers"
	"github.com/SscSPs/financeflow/internal/middleware"
	"github.com/SscSPs/financeflow/internal/platform/metrics"
	"github.com/SscSPs/financeflow/pkg/config"
)

// @title FinanceFlow API
// @version 1.0
// @description Double-entry bookkeeping engine: journal, ledgers, trial balance and financial summary.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open journal store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	recorder := metrics.NewRecorder()
	repos := portsrepo.RepositoryProvider{JournalBlobs: store}
	container := services.NewServiceContainer(cfg, repos, services.WithRecomputeObserver(recorder))

	// A failed read is logged and the server starts with whatever was loaded.
	report, err := container.Book.Load(middleware.WithLogger(ctx, logger))
	if err != nil {
		logger.Error("Journal load incomplete", slog.String("error", err.Error()))
	}
	if report.Quarantined > 0 || report.Discarded {
		logger.Warn("Unreadable journal data moved to quarantine",
			slog.String("key", cfg.StoreKey+services.QuarantineSuffix),
			slog.Int("entries", report.Quarantined),
			slog.Bool("whole_slot", report.Discarded))
	}

	if err := dto.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiterInstance, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, CORS, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(recorder.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", handlers.PersistenceErrorHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(limiterInstance))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(recorder.Handler()))
	handlers.RegisterRoutes(r, cfg, container)

	if !cfg.AuthEnabled() {
		logger.Warn("JWT_SECRET not set, API routes are unauthenticated")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
