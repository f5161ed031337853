package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	appconfig "github.com/makhmudjon-inadullaev/quote-service/internal/config"
	"github.com/makhmudjon-inadullaev/quote-service/internal/domain/entity"
	"github.com/makhmudjon-inadullaev/quote-service/internal/handler/http/respond"
	pgRepo "github.com/makhmudjon-inadullaev/quote-service/internal/infra/adapter/persistence/postgres"
	"github.com/makhmudjon-inadullaev/quote-service/internal/infra/db"
	"github.com/makhmudjon-inadullaev/quote-service/internal/infra/fetcher"
	"github.com/makhmudjon-inadullaev/quote-service/internal/infra/scraper"
	workerPkg "github.com/makhmudjon-inadullaev/quote-service/internal/infra/worker"
	"github.com/makhmudjon-inadullaev/quote-service/internal/observability/metrics"
	"github.com/makhmudjon-inadullaev/quote-service/internal/repository"
	"github.com/makhmudjon-inadullaev/quote-service/internal/usecase/ingest"
)

// defaultQOTDFeedURL is the quote-of-the-day feed crawled when the rss
// source is enabled and QOTD_FEED_URL is not set.
const defaultQOTDFeedURL = "https://www.brainyquote.com/link/quotebr.rss"

func waitForMigrations(logger *slog.Logger, db *sql.DB) {
	const probe = "SELECT 1 FROM quotes LIMIT 1"
	for i := 0; i < 10; i++ {
		if _, err := db.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", i+1))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// The YAML recommendation config takes precedence for the crawl
	// schedule and source selection when present.
	recCfg := loadRecommendationConfig(logger)
	if os.Getenv("RECOMMENDATION_CONFIG") != "" {
		workerConfig.CronSchedule = recCfg.GetCrawlSchedule()
	}

	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("crawl_timeout", workerConfig.CrawlTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// Start metrics HTTP server
	startMetricsServer(ctx, logger)

	// Start health check server
	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	quoteRepo := pgRepo.NewQuoteRepo(database)
	svc := setupIngestService(logger, quoteRepo, recCfg)

	startCronWorker(logger, svc, quoteRepo, workerConfig, workerMetrics, healthServer)
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

// initDatabase opens the database connection and waits for migrations to complete.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	waitForMigrations(logger, database)
	return database
}

// loadRecommendationConfig loads the YAML recommendation configuration.
// When RECOMMENDATION_CONFIG is unset the built-in defaults are used.
func loadRecommendationConfig(logger *slog.Logger) *appconfig.RecommendationConfig {
	path := os.Getenv("RECOMMENDATION_CONFIG")
	if path == "" {
		return appconfig.DefaultRecommendationConfig()
	}

	cfg, err := appconfig.LoadRecommendationConfig(path)
	if err != nil {
		logger.Error("failed to load recommendation configuration",
			slog.String("path", path),
			slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}

// setupIngestService creates the ingest service with one fetcher per
// enabled crawl source.
func setupIngestService(logger *slog.Logger, repo repository.QuoteRepository, recCfg *appconfig.RecommendationConfig) ingest.Service {
	crawlConfig, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load crawl configuration", slog.Any("error", err))
		os.Exit(1)
	}

	apiClient := createHTTPClient(crawlConfig.Timeout)
	scraperClient := createHTTPClient(10 * time.Second)

	var fetchers []ingest.QuoteFetcher
	if recCfg.HasSource(entity.SourceQuotable) {
		fetchers = append(fetchers, fetcher.NewQuotableFetcher(apiClient, crawlConfig))
	}
	if recCfg.HasSource(entity.SourceDummyJSON) {
		fetchers = append(fetchers, fetcher.NewDummyJSONFetcher(apiClient, crawlConfig))
	}
	if recCfg.HasSource(entity.SourceToScrape) {
		fetchers = append(fetchers, scraper.NewToScrapeScraper(scraperClient, os.Getenv("TOSCRAPE_BASE_URL")))
	}
	if recCfg.HasSource(entity.SourceRSS) {
		feedURL := os.Getenv("QOTD_FEED_URL")
		if feedURL == "" {
			feedURL = defaultQOTDFeedURL
		}
		fetchers = append(fetchers, scraper.NewQOTDFetcher(apiClient, feedURL))
	}

	names := make([]string, 0, len(fetchers))
	for _, f := range fetchers {
		names = append(names, f.Name())
	}
	logger.Info("crawl sources initialized", slog.Any("sources", names))

	return ingest.NewService(repo, fetchers)
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced for security.
func createHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12, // Enforce TLS 1.2+
			},
		},
	}
}

// startCronWorker starts the cron scheduler and runs the crawl job periodically.
func startCronWorker(
	logger *slog.Logger,
	svc ingest.Service,
	repo repository.QuoteRepository,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
	healthServer *workerPkg.HealthServer,
) {
	// Load timezone
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(cfg.CronSchedule, func() {
		runCrawlJob(logger, svc, repo, cfg, workerMetrics)
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	// Mark as ready after cron is set up
	healthServer.SetReady(true)
	logger.Info("worker marked as ready")

	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))
	select {}
}

// runCrawlJob executes a single crawl job with timeout and error handling.
func runCrawlJob(
	logger *slog.Logger,
	svc ingest.Service,
	repo repository.QuoteRepository,
	cfg *workerPkg.WorkerConfig,
	workerMetrics *workerPkg.WorkerMetrics,
) {
	startTime := time.Now()
	workerMetrics.RecordJobRun("started")
	logger.Info("crawl started")

	// クロール処理のタイムアウト（設定から取得）
	ctx, cancel := context.WithTimeout(context.Background(), cfg.CrawlTimeout)
	defer cancel()

	stats, err := svc.CrawlAll(ctx)
	if err != nil {
		// 機密情報をマスクしてログ出力
		logger.Error("crawl failed", slog.Any("error", respond.SanitizeError(err)))
		workerMetrics.RecordJobRun("failure")
		workerMetrics.RecordJobDuration(time.Since(startTime).Seconds())
		return
	}

	// Record metrics
	workerMetrics.RecordJobRun("success")
	workerMetrics.RecordJobDuration(time.Since(startTime).Seconds())
	workerMetrics.RecordSourcesProcessed(stats.Sources)
	workerMetrics.RecordLastSuccess()

	if total, err := repo.Count(ctx); err == nil {
		metrics.UpdateQuotesTotal(total)
	}

	logger.Info("crawl completed",
		slog.Int("sources", stats.Sources),
		slog.Int64("fetched", stats.Fetched),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("invalid", stats.Invalid),
		slog.Duration("duration", stats.Duration),
	)
}
