package db

import "time"

// PhishyTokenEntry is one row of the recent-phishy log, kept only for UI
// convenience. Request-scoped analysis data is never persisted.
type PhishyTokenEntry struct {
	TokenAddress     string    `json:"token_address"`
	TokenType        string    `json:"token_type"`
	TokenSymbol      string    `json:"token_symbol,omitempty"`
	PhishyCount      int       `json:"phishy_count"`
	TotalAddresses   int       `json:"total_addresses"`
	TotalTransferred float64   `json:"total_transferred"`
	TotalBought      float64   `json:"total_bought"`
	TotalWithoutBuy  float64   `json:"total_without_buy"`
	RiskScore        int       `json:"risk_score"`
	DetectedAt       time.Time `json:"detected_at"`
}
