package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/bitquery"
	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/config"
	"github.com/phishscan/pkg/dashboard"
	"github.com/phishscan/pkg/db"
	"github.com/phishscan/pkg/fetcher"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()
	log.Info().Msg("🎣 PhishScan server starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config invalid")
	}

	store, err := db.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer store.Close()

	bq := bitquery.New(cfg.BitqueryURL, cfg.BitqueryAPIKey, cfg.HTTPTimeout)
	chk := checker.New(cfg, fetcher.New(cfg, bq), store)

	// Keep the recent-phishy log bounded.
	cr := cron.New()
	cr.AddFunc("@hourly", func() {
		if err := store.Prune(cfg.RecentPhishyLimit); err != nil {
			log.Warn().Err(err).Msg("recent-phishy prune failed")
		}
	})
	cr.Start()
	defer cr.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigCh; log.Info().Msg("shutting down..."); cancel() }()

	dash := dashboard.New(cfg, chk, store)
	if err := dash.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("dashboard error")
	}
	log.Info().Msg("goodbye 👋")
}
