package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/phishscan/pkg/analyzer"
	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/token"
)

func init() {
	color.NoColor = true
}

func TestRender_PhishyReport(t *testing.T) {
	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	res := &checker.Result{
		TokenAddress:   "0xdeadbeef",
		TokenType:      token.TypeFourmeme,
		TotalAddresses: 3,
		PhishyCount:    1,
		NormalCount:    2,
		Phishy:         true,
		Classification: analyzer.Classification{
			Phishy: []analyzer.ClassificationResult{{
				Address:               "0xaaa",
				FirstTransferTime:     first,
				TotalTransferred:      1234567.89,
				TransferredWithoutBuy: 1234567.89,
				IsPhishy:              true,
				Reason:                analyzer.ReasonNeverBought,
			}},
		},
		Totals:    analyzer.AggregateTotals{TotalTransferred: 1234567.89, TotalWithoutBuy: 1234567.89},
		RiskScore: 80,
		Checks:    []analyzer.Check{{Name: "no_phishy_addresses", Passed: false}},
	}

	var buf bytes.Buffer
	Render(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "TOKEN IS PHISHY")
	assert.Contains(t, out, "Four.Meme (BSC)")
	assert.Contains(t, out, "0xaaa")
	assert.Contains(t, out, "Never bought the token")
	assert.Contains(t, out, "2025-06-01 10:00:00 UTC")
	assert.Contains(t, out, "N/A") // no first-buy timestamp
	assert.Contains(t, out, "1,234,567.89")
	assert.Contains(t, out, "RISK SCORE: 80/100")
	assert.Contains(t, out, "FAIL")
}

func TestRender_SafeToken(t *testing.T) {
	res := &checker.Result{
		TokenAddress:   "mint",
		TokenType:      token.TypePumpfun,
		TotalAddresses: 2,
		NormalCount:    2,
		RiskScore:      100,
	}

	var buf bytes.Buffer
	Render(&buf, res)
	out := buf.String()

	assert.Contains(t, out, "Pump.fun (Solana)")
	assert.Contains(t, out, "appears to be safe")
	assert.NotContains(t, out, "TOKEN IS PHISHY")
}

func TestRender_NoActivity(t *testing.T) {
	res := &checker.Result{
		TokenAddress: "mint",
		TokenType:    token.TypePumpfun,
		NoActivity:   true,
		Message:      "No transfers found for this token",
	}

	var buf bytes.Buffer
	Render(&buf, res)

	assert.Contains(t, buf.String(), "No transfers found for this token")
	assert.NotContains(t, buf.String(), "RISK SCORE")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0", formatAmount(0))
	assert.Equal(t, "999.00", formatAmount(999))
	assert.Equal(t, "1,000.00", formatAmount(1000))
	assert.Equal(t, "1,234,567.89", formatAmount(1234567.89))
	assert.Equal(t, "-12,345.60", formatAmount(-12345.6))
}
