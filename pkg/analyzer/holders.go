package analyzer

import "sort"

// Known AI-agent accounts that operate across many Pump.fun launches.
// Their holdings are flagged in the display data and excluded from the
// concentration checks the same way the bonding curve is.
var KnownAgentAccounts = map[string]bool{
	"8psNvWTrdNTiVRNzAgsou9kETXNJm2SXZyaKuJraVRtf": true,
	"AkTgH1uW6J6j6QHmFNGzZuZwwXaHQsPCpHUriED28tRj": true,
}

// HolderBalance is one raw holder-snapshot row before analysis.
type HolderBalance struct {
	Address   string
	Balance   float64
	BuyCount  int
	SellCount int
}

// ComputeHolderAnalysis evaluates the three supply-concentration checks and
// derives the top-10 display rows. Percentages are of circulating supply
// (total minus burned). Returns nil when circulating supply is unknown or
// zero — the checks cannot be evaluated and must not count as failed.
func ComputeHolderAnalysis(holders []HolderBalance, creator, bondingCurve string, circulating float64, th HolderThresholds) *HolderAnalysis {
	if circulating <= 0 || len(holders) == 0 {
		return nil
	}

	sorted := make([]HolderBalance, len(holders))
	copy(sorted, holders)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Balance > sorted[j].Balance })

	ha := &HolderAnalysis{
		CreatorCheckPassed:      true,
		OtherHoldersCheckPassed: true,
	}

	top10Sum := 0.0
	rank := 0
	for _, h := range sorted {
		pct := h.Balance / circulating * 100
		isCurve := h.Address == bondingCurve
		isAgent := KnownAgentAccounts[h.Address]
		isCreator := h.Address == creator

		if isCreator {
			ha.CreatorPercent += pct
			if ha.CreatorPercent >= th.CreatorMaxPct {
				ha.CreatorCheckPassed = false
			}
		} else if !isCurve && !isAgent && pct >= th.HolderMaxPct {
			ha.OtherHoldersCheckPassed = false
		}

		// Top-10 display and concentration exclude the bonding curve itself.
		if isCurve {
			continue
		}
		if rank < 10 {
			top10Sum += pct
			ha.TopHolders = append(ha.TopHolders, TopHolder{
				Address:        h.Address,
				Balance:        h.Balance,
				Percent:        pct,
				BuyCount:       h.BuyCount,
				SellCount:      h.SellCount,
				IsBondingCurve: isCurve,
				IsKnownAgent:   isAgent,
				IsCreator:      isCreator,
			})
			rank++
		}
	}

	ha.Top10Percent = top10Sum
	ha.Top10CheckPassed = top10Sum < th.Top10MaxPct
	return ha
}
