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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/msomdec/reelnotes/internal/config"
	"github.com/msomdec/reelnotes/internal/handler"
	"github.com/msomdec/reelnotes/internal/repository/sqlite"
	"github.com/msomdec/reelnotes/internal/service"
	"github.com/msomdec/reelnotes/internal/tmdb"
	"github.com/msomdec/reelnotes/internal/tracing"
)

const serviceName = "reelnotes"

func main() {
	logOpts := &slog.HandlerOptions{Level: slog.LevelInfo}
	logger := slog.New(tracing.NewLogHandler(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))).With("service", serviceName)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.InitTracerProvider(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		slog.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}
	if cfg.TracingEnabled() {
		slog.Info("exporting traces", "endpoint", cfg.OTLPEndpoint)
	}

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	if !cfg.CatalogEnabled() {
		slog.Warn("TMDB_API_KEY and TMDB_BEARER_TOKEN are unset; movie lookups will fail with 502")
	}
	catalog := tmdb.New(cfg.TMDBAPIKey, cfg.TMDBBearerToken, cfg.TMDBBaseURL, cfg.TMDBCacheTTL)
	defer catalog.Close()

	authLimiter := service.NewTokenBucket(cfg.AuthRatePerSec, float64(cfg.AuthRateBurst))
	defer authLimiter.Stop()

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, handler.Services{
		Auth:        service.NewAuthService(db.Users(), cfg.JWTSecret, cfg.BcryptCost, cfg.TokenTTL),
		Users:       service.NewUserService(db.Users()),
		Favorites:   service.NewFavoriteService(db.Favorites()),
		Reviews:     service.NewReviewService(db.Reviews()),
		Catalog:     service.NewCatalogService(catalog),
		AuthLimiter: authLimiter,
		DB:          db.SqlDB,
	})

	var h http.Handler = handler.Metrics(mux)
	h = handler.Recover(h)
	h = handler.RequestLogger(h)
	h = handler.SecurityHeaders(h)
	h = handler.CORS(cfg.CORSOrigins)(h)
	h = otelhttp.NewHandler(h, serviceName)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("tracer shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
