package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/vaultdocs/vaultdocs/internal/config"
	"github.com/vaultdocs/vaultdocs/internal/database"
	"github.com/vaultdocs/vaultdocs/internal/database/migration"
	"github.com/vaultdocs/vaultdocs/internal/migrate"
	"github.com/vaultdocs/vaultdocs/internal/repository/postgres"
	"github.com/vaultdocs/vaultdocs/internal/storage"
)

// One-shot migration of the legacy document store into the current
// schema and storage backend. Safe to re-run: already-migrated files
// are skipped by name.
func main() {
	verifyOnly := flag.Bool("verify", false, "verify a previous run instead of migrating")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to target database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger); err != nil {
		logger.Fatal("failed to run schema migration", zap.Error(err))
	}

	legacyDB, err := database.NewLegacyPostgres(cfg.Legacy.Database)
	if err != nil {
		logger.Fatal("failed to connect to legacy database", zap.Error(err))
	}
	defer legacyDB.Close()

	blobs, err := newStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage backend", zap.Error(err))
	}

	runner := migrate.NewRunner(
		migrate.NewSQLLegacySource(legacyDB, cfg.Legacy.FileRoot),
		migrate.NewSQLEntityDirectory(legacyDB),
		postgres.NewStore(db),
		blobs,
		logger,
	)

	if *verifyOnly {
		verify(ctx, runner, logger)
		return
	}

	res, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("migration aborted", zap.Error(err))
	}

	logger.Info("migration finished",
		zap.String("status", string(runner.Status())),
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed),
		zap.Int("skipped", res.Skipped))
	for _, item := range res.Errors {
		logger.Warn("migration item failed",
			zap.Int64("legacy_id", item.LegacyID),
			zap.String("reason", item.Reason))
	}

	verify(ctx, runner, logger)

	if res.Failed > 0 {
		os.Exit(1)
	}
}

func verify(ctx context.Context, runner *migrate.Runner, logger *zap.Logger) {
	vr, err := runner.Verify(ctx)
	if err != nil {
		logger.Fatal("verification failed to run", zap.Error(err))
	}
	logger.Info("verification finished",
		zap.Bool("ok", vr.OK),
		zap.Int("legacy_count", vr.LegacyCount),
		zap.Int("migrated_count", vr.MigratedCount),
		zap.Strings("missing_files", vr.MissingFiles))
	if !vr.OK {
		os.Exit(1)
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
