package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_sentiment/internal/adapters/http_server"
	"hotel_sentiment/internal/adapters/model"
	"hotel_sentiment/internal/adapters/observability"
	redisad "hotel_sentiment/internal/adapters/redis"
	"hotel_sentiment/internal/app"
	"hotel_sentiment/internal/domain"
	"hotel_sentiment/internal/sentiment"
	"hotel_sentiment/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	lex, err := sentiment.LoadLexicon(cfg.LexiconPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LexiconPath).Msg("load lexicon failed")
	}
	engine, err := sentiment.NewEngine(lex)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid lexicon")
	}
	log.Info().
		Str("lexicon", engine.Fingerprint()).
		Strs("aspects", engine.Aspects()).
		Msg("aspect engine ready")

	// The artifacts only gate readiness reporting; scoring never uses them.
	pair, err := model.Load(cfg.ModelPath, cfg.VectorizerPath)
	if err != nil {
		log.Warn().Err(err).Msg("model artifacts not loaded")
	} else {
		log.Info().Str("model", pair.Model.SHA256).Str("vectorizer", pair.Vectorizer.SHA256).Msg("model artifacts loaded")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, prediction cache disabled")
			_ = rc.Close()
		} else {
			cache = rc
			defer rc.Close()
		}
		cancel()
	}
	p := app.NewPredictionService(engine, engine.Fingerprint(), cache, cfg.CacheTTL)

	// http
	srv := server.New(server.Options{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,

		TrustProxyHeaders: cfg.TrustProxy,
	})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		P:       p,
		Model:   pair,
		Lexicon: engine.Fingerprint(),
		Aspects: engine.Aspects(),
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
