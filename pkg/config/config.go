package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBitqueryURL is the streaming GraphQL endpoint all queries go through.
const DefaultBitqueryURL = "https://streaming.bitquery.io/graphql"

type Config struct {
	// Bitquery
	BitqueryAPIKey string
	BitqueryURL    string
	HTTPTimeout    time.Duration

	// Recent-phishy log
	DBPath            string
	RecentPhishyLimit int

	// Dashboard
	Port int

	// Pump.fun constraints
	MaxTokenAge     time.Duration // bonding-curve heuristic is unreliable past early token life
	MinLiquiditySOL float64

	// Holder analysis thresholds (percent of circulating supply)
	CreatorMaxPct float64
	HolderMaxPct  float64
	Top10MaxPct   float64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BitqueryAPIKey: os.Getenv("BITQUERY_API_KEY"),
		BitqueryURL:    envOr("BITQUERY_URL", DefaultBitqueryURL),
		HTTPTimeout:    time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 120)) * time.Second,

		DBPath:            envOr("DB_PATH", "phishscan.db"),
		RecentPhishyLimit: envInt("RECENT_PHISHY_LIMIT", 100),

		Port: envInt("PORT", 8080),

		MaxTokenAge:     time.Duration(envInt("MAX_TOKEN_AGE_HOURS", 8)) * time.Hour,
		MinLiquiditySOL: envFloat("MIN_LIQUIDITY_SOL", 10),

		CreatorMaxPct: envFloat("CREATOR_MAX_PCT", 5),
		HolderMaxPct:  envFloat("HOLDER_MAX_PCT", 5),
		Top10MaxPct:   envFloat("TOP10_MAX_PCT", 70),
	}

	return cfg, nil
}

// Validate rejects a missing API key up front — a configuration error,
// never silently degraded behavior.
func (c *Config) Validate() error {
	if c.BitqueryAPIKey == "" {
		return fmt.Errorf("BITQUERY_API_KEY is required — set it in the environment or a .env file")
	}
	return nil
}

// helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
