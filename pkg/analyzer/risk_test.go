package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fp(v float64) *float64 { return &v }

func TestRiskScore_AllFiveChecksPass(t *testing.T) {
	score, checks := RiskScore(RiskChecks{
		LiquiditySOL:    fp(50),
		MinLiquiditySOL: 10,
		PhishyCount:     0,
		Holders: &HolderAnalysis{
			CreatorCheckPassed:      true,
			OtherHoldersCheckPassed: true,
			Top10CheckPassed:        true,
		},
	})

	assert.Equal(t, 100, score)
	assert.Len(t, checks, 5)
}

func TestRiskScore_AllFiveChecksFail(t *testing.T) {
	score, checks := RiskScore(RiskChecks{
		LiquiditySOL:    fp(2),
		MinLiquiditySOL: 10,
		PhishyCount:     7,
		Holders:         &HolderAnalysis{},
	})

	assert.Equal(t, 0, score)
	assert.Len(t, checks, 5)
}

func TestRiskScore_ThreeFailing(t *testing.T) {
	score, _ := RiskScore(RiskChecks{
		LiquiditySOL:    fp(2), // fail
		MinLiquiditySOL: 10,
		PhishyCount:     1, // fail
		Holders: &HolderAnalysis{
			CreatorCheckPassed:      false, // fail
			OtherHoldersCheckPassed: true,
			Top10CheckPassed:        true,
		},
	})

	assert.Equal(t, 40, score)
}

func TestRiskScore_UnevaluableChecksAreExcluded(t *testing.T) {
	// No liquidity data and no holder snapshot: only the phishy-count check
	// is evaluated. Missing checks never count as failures.
	score, checks := RiskScore(RiskChecks{PhishyCount: 0})
	assert.Equal(t, 100, score)
	assert.Len(t, checks, 1)

	score, checks = RiskScore(RiskChecks{PhishyCount: 3})
	assert.Equal(t, 80, score)
	assert.Len(t, checks, 1)
}

func TestRiskScore_LiquidityAtThresholdPasses(t *testing.T) {
	score, _ := RiskScore(RiskChecks{
		LiquiditySOL:    fp(10),
		MinLiquiditySOL: 10,
	})
	assert.Equal(t, 100, score)
}
