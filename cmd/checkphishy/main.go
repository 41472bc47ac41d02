package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/bitquery"
	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/config"
	"github.com/phishscan/pkg/fetcher"
	"github.com/phishscan/pkg/report"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: checkphishy <token_address> [bonding_curve]")
		fmt.Fprintln(os.Stderr, "  token_address: Solana mint (32-44 base58 chars) or BSC contract (0x + 40 hex)")
		fmt.Fprintln(os.Stderr, "  bonding_curve: optional — auto-discovered for Pump.fun tokens when omitted")
		os.Exit(2)
	}
	tokenAddress := os.Args[1]
	bondingCurve := ""
	if len(os.Args) > 2 {
		bondingCurve = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config invalid")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigCh; cancel() }()

	bq := bitquery.New(cfg.BitqueryURL, cfg.BitqueryAPIKey, cfg.HTTPTimeout)
	chk := checker.New(cfg, fetcher.New(cfg, bq), nil)

	res, err := chk.Run(ctx, tokenAddress, bondingCurve)
	if err != nil {
		if checker.IsInfo(err) {
			// Not a failure — the token is just outside what can be analyzed yet.
			fmt.Println(err.Error())
			return
		}
		log.Fatal().Err(err).Msg("check failed")
	}

	report.Render(os.Stdout, res)
}
