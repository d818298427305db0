package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"review_analyzer/internal/domain"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	Port        int
	MetricsAddr string

	SeedSource string // csv|mysql|none
	SeedCSV    string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	SentimentURL string
	SentimentKey string
	SentimentRPS int

	ScoreWorkers      int
	SubmitRPS         float64
	SubmitBurst       int
	EndOfDayInclusive bool
	Locations         []string
	RequestTimeout    time.Duration

	ImportWorkers int
	ImportBatch   int
}

// Load reads the process configuration. A .env file in the working
// directory is applied first; real environment variables win over it.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	c := Config{
		AppEnv:            env("APP_ENV", "prod"),
		LogLevel:          env("LOG_LEVEL", "info"),
		Port:              atoi("PORT", 8000),
		MetricsAddr:       env("METRICS_ADDR", ""),
		SeedSource:        strings.ToLower(env("SEED_SOURCE", "csv")),
		SeedCSV:           env("SEED_CSV", "data/reviews.csv"),
		MySQLDSN:          env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviews?parseTime=true&charset=utf8mb4&loc=UTC"),
		RedisAddr:         env("REDIS_ADDR", ""),
		RedisPass:         env("REDIS_PASSWORD", ""),
		RedisDB:           atoi("REDIS_DB", 0),
		CacheTTL:          time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,
		SentimentURL:      env("SENTIMENT_URL", ""),
		SentimentKey:      env("SENTIMENT_API_KEY", ""),
		SentimentRPS:      atoi("SENTIMENT_RPS", 10),
		ScoreWorkers:      atoi("SCORE_WORKERS", 0),
		SubmitRPS:         atof("SUBMIT_RPS", 0),
		SubmitBurst:       atoi("SUBMIT_BURST", 10),
		EndOfDayInclusive: atob("END_OF_DAY_INCLUSIVE", false),
		Locations:         list("LOCATIONS", domain.DefaultLocations),
		RequestTimeout:    time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		ImportWorkers:     atoi("IMPORT_WORKERS", 4),
		ImportBatch:       atoi("IMPORT_BATCH", 500),
	}
	if c.SentimentURL != "" && c.SentimentKey == "" {
		log.Warn().Msg("SENTIMENT_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func atoi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
	}
	return def
}

func atof(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
	}
	return def
}

func atob(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
	}
	return def
}

// list splits a ';'-separated value; location names contain commas.
func list(k string, def []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ";") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
