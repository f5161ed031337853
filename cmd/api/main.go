package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appconfig "github.com/makhmudjon-inadullaev/quote-service/internal/config"
	"github.com/makhmudjon-inadullaev/quote-service/internal/cache"
	pgRepo "github.com/makhmudjon-inadullaev/quote-service/internal/infra/adapter/persistence/postgres"
	"github.com/makhmudjon-inadullaev/quote-service/internal/infra/db"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/slo"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/tracing"
	"github.com/makhmudjon-inadullaev/quote-service/internal/recommend"
	"github.com/makhmudjon-inadullaev/quote-service/pkg/config"

	quoteUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/quote"
	recUC "github.com/makhmudjon-inadullaev/quote-service/internal/usecase/recommendation"

	hhttp "github.com/makhmudjon-inadullaev/quote-service/internal/handler/http"
	hquote "github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/quote"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/requestid"

	_ "github.com/makhmudjon-inadullaev/quote-service/docs" // swagger docs
)

// @title           Quote Service API
// @version         1.0
// @description     名言の収集・推薦システムの REST API
// @description     名言の閲覧・投稿・いいね、類似名言の推薦、ランダム取得機能を提供します。

// @contact.name   API Support
// @contact.url    https://github.com/makhmudjon-inadullaev/quote-service
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	store := initCache(logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close cache", slog.Any("error", err))
		}
	}()

	recCfg := loadRecommendationConfig(logger)
	version := getVersion()

	handler := setupServer(logger, database, store, recCfg, version)
	runServer(logger, handler, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initCache connects to Redis when REDIS_URL is set and falls back to the
// in-process cache otherwise. A Redis connection failure is not fatal: the
// ephemeral tier degrades to local memory and recommendations keep working.
func initCache(logger *slog.Logger) cache.Cache {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		logger.Info("REDIS_URL not set, using in-memory cache")
		return cache.NewMemoryCache()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(ctx, url)
	if err != nil {
		logger.Warn("redis connection failed, falling back to in-memory cache",
			slog.Any("error", err))
		return cache.NewMemoryCache()
	}

	logger.Info("redis cache connected")
	return redisCache
}

// loadRecommendationConfig loads the YAML recommendation configuration.
// When RECOMMENDATION_CONFIG is unset the built-in defaults are used.
func loadRecommendationConfig(logger *slog.Logger) *appconfig.RecommendationConfig {
	path := os.Getenv("RECOMMENDATION_CONFIG")
	if path == "" {
		logger.Info("RECOMMENDATION_CONFIG not set, using default recommendation config")
		return appconfig.DefaultRecommendationConfig()
	}

	cfg, err := appconfig.LoadRecommendationConfig(path)
	if err != nil {
		logger.Error("failed to load recommendation configuration",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("recommendation configuration loaded",
		slog.String("path", path),
		slog.Duration("ephemeral_ttl", cfg.GetEphemeralTTL()))
	return cfg
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(
	logger *slog.Logger,
	database *sql.DB,
	store cache.Cache,
	recCfg *appconfig.RecommendationConfig,
	version string,
) http.Handler {
	quoteRepo := pgRepo.NewQuoteRepo(database)
	similarityRepo := pgRepo.NewSimilarityRepo(database)

	recSvc := &recUC.Service{
		Quotes:     quoteRepo,
		Similarity: similarityRepo,
		Ephemeral:  store,
		Selector:   recommend.NewSelector(rand.NewSource(time.Now().UnixNano())),
		TTL:        recCfg.GetEphemeralTTL(),
	}
	quoteSvc := &quoteUC.Service{
		Repo:        quoteRepo,
		Invalidator: recSvc,
	}

	mux := setupRoutes(database, store, version, quoteSvc, recSvc)
	return applyMiddleware(logger, mux)
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	store cache.Cache,
	version string,
	quoteSvc *quoteUC.Service,
	recSvc *recUC.Service,
) *http.ServeMux {
	mux := http.NewServeMux()

	hquote.Register(mux, quoteSvc, recSvc)

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Cache: store, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Middleware order: Request ID → Tracing → Rate Limit → Recovery → Logging → Body Limit → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	// レート制限: 1分間あたりのリクエスト数(IP単位)
	limit := config.GetEnvInt("RATELIMIT_LIMIT", 100)
	window := config.GetEnvDuration("RATELIMIT_WINDOW", 1*time.Minute)
	rateLimiter := hhttp.NewRateLimiter(limit, window)

	logger.Info("rate limiting initialized",
		slog.Int("limit", limit),
		slog.Duration("window", window))

	middlewareChain := handler

	// Apply in reverse order (innermost to outermost)
	middlewareChain = hhttp.MetricsMiddleware(middlewareChain)
	middlewareChain = hhttp.LimitRequestBody(1 << 20)(middlewareChain) // 1MB limit
	middlewareChain = hhttp.Logging(logger)(middlewareChain)
	middlewareChain = hhttp.Recover(logger)(middlewareChain)
	middlewareChain = rateLimiter.Limit(middlewareChain)
	middlewareChain = tracing.Middleware(middlewareChain)
	middlewareChain = requestid.Middleware(middlewareChain)

	return middlewareChain
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := config.GetEnvString("HTTP_ADDR", ":8080")

	slo.StartUpdater(ctx, config.GetEnvDuration("SLO_UPDATE_INTERVAL", time.Minute), logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
