package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/token"
)

// Render writes the sectioned plain-text report for one completed check.
// Unit context comes from the token type parameter — formatting carries no
// shared state, so concurrent renders can never interfere.
func Render(w io.Writer, res *checker.Result) {
	line := strings.Repeat("=", 60)

	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Token:        %s\n", res.TokenAddress)
	fmt.Fprintf(w, "Token Type:   %s\n", typeLabel(res.TokenType))
	if res.BondingCurve != "" {
		fmt.Fprintf(w, "Bonding Curve: %s\n", res.BondingCurve)
	}
	if res.TokenInfo != nil && res.TokenInfo.Name != "" {
		fmt.Fprintf(w, "Name:         %s (%s)\n", res.TokenInfo.Name, res.TokenInfo.Symbol)
	}
	fmt.Fprintln(w, line)

	if res.NoActivity {
		fmt.Fprintf(w, "\n%s\n", res.Message)
		return
	}

	fmt.Fprintf(w, "\nTotal addresses that received transfers: %d\n", res.TotalAddresses)
	fmt.Fprintf(w, "Addresses with phishy behavior: %d\n", res.PhishyCount)
	fmt.Fprintf(w, "Addresses with normal behavior: %d\n", res.NormalCount)

	if res.Phishy {
		color.New(color.FgRed, color.Bold).Fprintf(w, "\nTOKEN IS PHISHY — %d suspicious address(es)\n\n", res.PhishyCount)

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"#", "Address", "First Transfer", "First Buy", "Transferred", "Bought", "Without Buy", "Reason"})
		table.SetBorder(false)
		for i, p := range res.Classification.Phishy {
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				p.Address,
				formatTime(&p.FirstTransferTime),
				formatTime(p.FirstBuyTime),
				formatAmount(p.TotalTransferred),
				formatAmount(p.TotalBought),
				formatAmount(p.TransferredWithoutBuy),
				p.Reason,
			})
		}
		table.Render()

		fmt.Fprintln(w, "\n"+strings.Repeat("-", 60))
		fmt.Fprintln(w, "SUMMARY OF PHISHY BEHAVIOR:")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		fmt.Fprintf(w, "Total Amount Transferred to Phishy Addresses: %s\n", formatAmount(res.Totals.TotalTransferred))
		fmt.Fprintf(w, "Total Amount Bought by Phishy Addresses:      %s\n", formatAmount(res.Totals.TotalBought))
		fmt.Fprintf(w, "Total Amount Transferred WITHOUT Purchase:    %s\n", formatAmount(res.Totals.TotalWithoutBuy))
	} else {
		color.New(color.FgGreen, color.Bold).Fprintln(w, "\nToken appears to be safe (no phishy behavior detected)")
	}

	if res.Holders != nil {
		fmt.Fprintln(w, "\n"+strings.Repeat("-", 60))
		fmt.Fprintln(w, "TOP HOLDERS (percent of circulating supply):")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Address", "%", "Buys", "Sells", "Flags"})
		table.SetBorder(false)
		for _, h := range res.Holders.TopHolders {
			table.Append([]string{
				h.Address,
				fmt.Sprintf("%.2f", h.Percent),
				fmt.Sprintf("%d", h.BuyCount),
				fmt.Sprintf("%d", h.SellCount),
				holderFlags(h.IsCreator, h.IsKnownAgent),
			})
		}
		table.Render()
		fmt.Fprintf(w, "Creator holds %.2f%% — check %s\n", res.Holders.CreatorPercent, passFail(res.Holders.CreatorCheckPassed))
		fmt.Fprintf(w, "Non-creator whales — check %s\n", passFail(res.Holders.OtherHoldersCheckPassed))
		fmt.Fprintf(w, "Top 10 hold %.2f%% — check %s\n", res.Holders.Top10Percent, passFail(res.Holders.Top10CheckPassed))
	}

	if res.LiquiditySOL != nil {
		fmt.Fprintf(w, "\nBonding curve liquidity: %.2f %s\n", *res.LiquiditySOL, nativeSymbol(res.TokenType))
	}

	fmt.Fprintln(w, "\n"+line)
	scoreColor := color.New(color.FgGreen, color.Bold)
	if res.RiskScore < 60 {
		scoreColor = color.New(color.FgRed, color.Bold)
	} else if res.RiskScore < 100 {
		scoreColor = color.New(color.FgYellow, color.Bold)
	}
	scoreColor.Fprintf(w, "RISK SCORE: %d/100\n", res.RiskScore)
	for _, c := range res.Checks {
		fmt.Fprintf(w, "  %-22s %s\n", c.Name, passFail(c.Passed))
	}
	fmt.Fprintln(w, line)
}

func typeLabel(t token.Type) string {
	switch t {
	case token.TypePumpfun:
		return "Pump.fun (Solana)"
	default:
		return "Four.Meme (BSC)"
	}
}

func nativeSymbol(t token.Type) string {
	if t == token.TypePumpfun {
		return "SOL"
	}
	return "BNB"
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}

func formatAmount(v float64) string {
	if v == 0 {
		return "0"
	}
	s := fmt.Sprintf("%.2f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String() + frac
	}
	return b.String() + frac
}

func passFail(ok bool) string {
	if ok {
		return color.GreenString("PASS")
	}
	return color.RedString("FAIL")
}

func holderFlags(isCreator, isAgent bool) string {
	var flags []string
	if isCreator {
		flags = append(flags, "creator")
	}
	if isAgent {
		flags = append(flags, "agent")
	}
	return strings.Join(flags, ",")
}
