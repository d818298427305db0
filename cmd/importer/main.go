package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/csvsource"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

// importer loads a reviews CSV (argv[1], default SEED_CSV) into the MySQL
// seed table read by `reviewd serve` when SEED_SOURCE=mysql.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	path := cfg.SeedCSV
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	log.Info().
		Str("file", path).
		Int("workers", cfg.ImportWorkers).
		Int("batch", cfg.ImportBatch).
		Msg("importer starting")

	recs, err := csvsource.NewFile(path).LoadReviews(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read csv failed")
	}
	rows, rep := app.PrepareImport(recs, domain.NewLocationRegistry(cfg.Locations...))
	log.Info().Int("valid", rep.Loaded).Int("skipped", rep.Skipped).Msg("csv parsed")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	n, err := app.NewImportService(repo, cfg.ImportBatch, cfg.ImportWorkers).Import(ctx, rows)
	if err != nil {
		log.Error().Err(err).Int("written", n).Msg("import incomplete")
		os.Exit(1)
	}
	total, _ := repo.Count(ctx)
	log.Info().Int("written", n).Int("table_rows", total).Msg("import completed")
}
