package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/vaultdocs/vaultdocs/internal/config"
	"github.com/vaultdocs/vaultdocs/internal/database"
	"github.com/vaultdocs/vaultdocs/internal/database/migration"
	handlers "github.com/vaultdocs/vaultdocs/internal/http/handler"
	"github.com/vaultdocs/vaultdocs/internal/http/middleware"
	"github.com/vaultdocs/vaultdocs/internal/otel"
	"github.com/vaultdocs/vaultdocs/internal/repository/postgres"
	"github.com/vaultdocs/vaultdocs/internal/service"
	"github.com/vaultdocs/vaultdocs/internal/storage"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		logger.Fatal("failed to run schema migration", zap.Error(err))
	}

	blobs, err := newStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage backend", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := service.NewMetrics(reg)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	store := postgres.NewStore(db)
	svcs := handlers.Services{
		Documents: service.NewDocumentService(store, blobs, logger, metrics),
		Search:    service.NewSearchService(store),
		Audit:     service.NewAuditService(store),
		Catalog:   service.NewCatalogService(store),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    handlers.MaxRequestBodyBytes,
	})

	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal("failed to register http metrics", zap.Error(err))
	}
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, svcs, reg)

	addr := ":" + cfg.Port
	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("storage_backend", cfg.Storage.Backend))

	if err := app.Listen(addr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Backend {
	case "fs":
		return storage.NewFS(cfg.FSRoot)
	case "s3":
		return storage.NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
