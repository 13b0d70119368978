package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	LogLevel       string
	HTTPAddr       string
	MetricsAddr    string
	LexiconPath    string
	ModelPath      string
	VectorizerPath string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool
	RequestTimeout time.Duration
	MySQLDSN       string
	BackfillWorker int
	BackfillBatch  int
	BackfillRPS    int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win over it.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a number, using default")
		}
		return def
	}
	atob := func(k string, def bool) bool {
		if v := os.Getenv(k); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not a boolean, using default")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		LogLevel:       env("LOG_LEVEL", "info"),
		HTTPAddr:       env("HTTP_ADDR", ":5001"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		LexiconPath:    env("LEXICON_PATH", ""),
		ModelPath:      env("MODEL_PATH", "best_model_svc.joblib"),
		VectorizerPath: env("VECTORIZER_PATH", "tfidf_vectorizer.joblib"),
		RedisAddr:      env("REDIS_ADDR", ""),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 3600)) * time.Second,
		CORSOrigins:    splitList(env("CORS_ALLOWED_ORIGINS", "*")),
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),
		TrustProxy:     atob("TRUST_PROXY_HEADERS", false),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotel_reviews?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		BackfillWorker: atoi("BACKFILL_WORKERS", 8),
		BackfillBatch:  atoi("BACKFILL_BATCH", 500),
		BackfillRPS:    atoi("BACKFILL_RPS", 200),
	}
	if c.RedisAddr == "" {
		log.Info().Msg("REDIS_ADDR is empty, prediction cache disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
