package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"

	"ads-report-service/internal/cache"
	"ads-report-service/internal/config"
	"ads-report-service/internal/controller"
	"ads-report-service/internal/db"
	"ads-report-service/internal/demo"
	httpserver "ads-report-service/internal/http"
	"ads-report-service/internal/observability"
	"ads-report-service/internal/repository"
	"ads-report-service/internal/service"
	"ads-report-service/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.AppMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var archiveRepo repository.SnapshotRepository
	worker := service.NewNoopWorker()
	if cfg.ArchiveEnabled {
		conn, err := db.NewConnection(ctx, cfg)
		if err != nil {
			logger.Fatal("connect clickhouse", zap.Error(err))
		}
		defer conn.Close()

		if err := db.RunMigrations(ctx, conn); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}

		archiveRepo = repository.NewSnapshotRepository(conn)
		worker = service.NewSnapshotWorker(archiveRepo, cfg.WorkerBufferSize, cfg.WorkerBatchSize, cfg.WorkerFlushEvery, logger)
	}

	leadSource, statsSources := buildSources(ctx, cfg, logger)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	generator := demo.New(cfg.DemoCPLMin, cfg.DemoCPLMax)
	reportCache := cache.New(cfg.CacheTTL)

	reportService := service.NewReportService(
		leadSource, statsSources, cfg.ColumnMap,
		reportCache, generator, cfg.DemoSeed,
		worker, metrics, logger,
	)
	reportController := controller.NewReportController(reportService, archiveRepo, cfg.DemoMode)

	server := httpserver.NewServer(cfg, reportController)

	go func() {
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			logger.Error("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server",
		zap.String("addr", cfg.HTTPPort),
		zap.Bool("demo_default", cfg.DemoMode),
		zap.Bool("archive", cfg.ArchiveEnabled))
	if err := server.Listen(cfg.HTTPPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}

	worker.Shutdown()
}

// buildSources constructs whichever live collaborators have credentials.
// Missing sources are not fatal: the facade degrades to synthetic data.
func buildSources(ctx context.Context, cfg *config.Config, logger *zap.Logger) (source.LeadSource, []source.StatsSource) {
	var leadSource source.LeadSource
	if cfg.SheetsConfigured() {
		sheetsSource, err := source.NewSheets(ctx, cfg.SheetsCredentialsFile, cfg.SpreadsheetID, cfg.SheetName)
		if err != nil {
			logger.Warn("sheets source unavailable, reports will use synthetic data", zap.Error(err))
		} else {
			leadSource = sheetsSource
		}
	} else {
		logger.Warn("spreadsheet not configured, reports will use synthetic data")
	}

	var statsSources []source.StatsSource
	if cfg.MetaConfigured() {
		httpClient := source.NewHTTPClient(cfg.HTTPTimeout)
		statsSources = append(statsSources, source.NewMeta(httpClient, cfg.MetaAccessToken, cfg.MetaAdAccountID))
	}
	if cfg.GoogleAdsConfigured() {
		statsSources = append(statsSources, source.NewGoogleAds(ctx, cfg))
	}
	return leadSource, statsSources
}

func newLogger(appMode string) (*zap.Logger, error) {
	if appMode == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
