package cli

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/adapters/csvsource"
	redisad "review_analyzer/internal/adapters/redis"
	"review_analyzer/internal/adapters/sentimentapi"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/sentiment"
	"review_analyzer/internal/shared"
	mysqlrepo "review_analyzer/internal/storage/mysql"
)

type modelScorer interface {
	domain.SentimentScorer
	Model() string
}

// buildScorer picks the remote model when SENTIMENT_URL is set, the built-in
// VADER analyzer otherwise, and memoizes it in Redis when REDIS_ADDR is set.
func buildScorer(ctx context.Context, cfg shared.Config) (domain.SentimentScorer, func(), error) {
	var base modelScorer = sentiment.NewVader()
	if cfg.SentimentURL != "" {
		c, err := sentimentapi.New(cfg.SentimentURL, cfg.SentimentKey, cfg.SentimentRPS)
		if err != nil {
			return nil, nil, fmt.Errorf("sentiment client: %w", err)
		}
		base = c
	}
	log.Info().Str("model", base.Model()).Msg("sentiment scorer ready")

	if cfg.RedisAddr == "" {
		return base, func() {}, nil
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, scoring uncached until it recovers")
	}
	closer := func() {
		if err := cache.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis")
		}
	}
	return sentiment.NewCached(base, cache, base.Model(), cfg.CacheTTL), closer, nil
}

// seedSource returns nil when seeding is disabled.
func seedSource(cfg shared.Config) (domain.ReviewSource, func(), error) {
	switch cfg.SeedSource {
	case "none", "":
		return nil, func() {}, nil
	case "csv":
		return csvsource.NewFile(cfg.SeedCSV), func() {}, nil
	case "mysql":
		db, err := openMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown SEED_SOURCE %q (want csv, mysql or none)", cfg.SeedSource)
	}
}

func openMySQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	log.Info().Msg("database connection ok")
	return db, nil
}
