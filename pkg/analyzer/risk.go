package analyzer

// Check is one boolean risk metric. Checks that could not be evaluated
// (missing liquidity data, no holder snapshot) are never constructed, so
// they are excluded from the tally rather than counted as failures.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// RiskChecks collects the up-to-five independently evaluated metrics that
// feed the score. Nil pointer fields mean "could not evaluate".
type RiskChecks struct {
	LiquiditySOL    *float64 // bonding-curve native balance, if known
	MinLiquiditySOL float64
	PhishyCount     int
	Holders         *HolderAnalysis
}

// RiskScore is 100 minus 20 per failed metric, floored at zero.
// Five metrics: liquidity below the minimum, any phishy address present,
// and the three holder-concentration checks.
func RiskScore(rc RiskChecks) (int, []Check) {
	var checks []Check

	if rc.LiquiditySOL != nil {
		checks = append(checks, Check{Name: "liquidity", Passed: *rc.LiquiditySOL >= rc.MinLiquiditySOL})
	}
	checks = append(checks, Check{Name: "no_phishy_addresses", Passed: rc.PhishyCount == 0})
	if rc.Holders != nil {
		checks = append(checks,
			Check{Name: "creator_holding", Passed: rc.Holders.CreatorCheckPassed},
			Check{Name: "other_holders", Passed: rc.Holders.OtherHoldersCheckPassed},
			Check{Name: "top10_concentration", Passed: rc.Holders.Top10CheckPassed},
		)
	}

	failed := 0
	for _, c := range checks {
		if !c.Passed {
			failed++
		}
	}
	score := 100 - 20*failed
	if score < 0 {
		score = 0
	}
	return score, checks
}
