package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_sentiment/internal/adapters/observability"
	"hotel_sentiment/internal/app"
	"hotel_sentiment/internal/sentiment"
	"hotel_sentiment/internal/shared"
	mysqlrepo "hotel_sentiment/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)
	observability.Serve()

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
		Int("workers", cfg.BackfillWorker).
		Int("batch", cfg.BackfillBatch).
		Int("rps", cfg.BackfillRPS).
		Msg("backfill starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	svc := app.NewBackfillService(mysqlrepo.New(db), engine, cfg.BackfillWorker, cfg.BackfillBatch, cfg.BackfillRPS)

	start := time.Now()
	stats, err := svc.Run(ctx)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int64("rated", stats.Rated).
		Int64("skipped", stats.Skipped).
		Int64("failed", stats.Failed).
		Dur("took", time.Since(start)).
		Msg("backfill finished")
	if err != nil {
		os.Exit(1)
	}
}
