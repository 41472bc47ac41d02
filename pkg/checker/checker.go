package checker

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/phishscan/pkg/analyzer"
	"github.com/phishscan/pkg/config"
	"github.com/phishscan/pkg/db"
	"github.com/phishscan/pkg/fetcher"
	"github.com/phishscan/pkg/token"
)

// DataSource is everything the pipeline needs from the upstream API.
// *fetcher.Fetcher is the production implementation.
type DataSource interface {
	FirstTransfersFourmeme(ctx context.Context, token string) ([]analyzer.TransferRecord, error)
	FirstBuysFourmeme(ctx context.Context, token string, buyers []string) (map[string]analyzer.BuyRecord, error)
	FirstTransfersPumpfun(ctx context.Context, mint, bondingCurve string) ([]analyzer.TransferRecord, error)
	FirstBuysPumpfun(ctx context.Context, mint string, buyers []string) (map[string]analyzer.BuyRecord, error)
	ResolveBondingCurve(ctx context.Context, mint string) (string, error)
	TokenInfo(ctx context.Context, mint string) (*fetcher.TokenInfo, error)
	FetchMetadataJSON(ctx context.Context, uri string) (*fetcher.Metadata, error)
	HolderSnapshot(ctx context.Context, mint string) ([]analyzer.HolderBalance, error)
	Supply(ctx context.Context, mint string) (total, circulating float64, err error)
	Liquidity(ctx context.Context, bondingCurve string) (*float64, error)
}

// Result is the full outcome of one token check. All fields are built fresh
// from live API responses; nothing here is cached between requests.
type Result struct {
	TokenAddress string     `json:"token_address"`
	TokenType    token.Type `json:"token_type"`
	BondingCurve string     `json:"bonding_curve,omitempty"`

	NoActivity bool   `json:"no_activity,omitempty"`
	Message    string `json:"message,omitempty"`

	TotalAddresses int  `json:"total_addresses"`
	PhishyCount    int  `json:"phishy_count"`
	NormalCount    int  `json:"normal_count"`
	Phishy         bool `json:"phishy"`

	Classification analyzer.Classification  `json:"classification"`
	Totals         analyzer.AggregateTotals `json:"totals"`

	RiskScore    int              `json:"risk_score"`
	Checks       []analyzer.Check `json:"checks,omitempty"`
	LiquiditySOL *float64         `json:"liquidity_sol,omitempty"`

	TokenInfo *fetcher.TokenInfo       `json:"token_info,omitempty"`
	Metadata  *fetcher.Metadata        `json:"metadata,omitempty"`
	Holders   *analyzer.HolderAnalysis `json:"holder_analysis,omitempty"`
}

// Checker runs the check pipeline: fetch, classify, aggregate, score.
type Checker struct {
	cfg   *config.Config
	ds    DataSource
	store *db.Store // optional; nil in CLI mode
}

func New(cfg *config.Config, ds DataSource, store *db.Store) *Checker {
	return &Checker{cfg: cfg, ds: ds, store: store}
}

// Run performs a full analysis of one token. bondingCurve may be empty for
// Pump.fun tokens, in which case it is auto-discovered. Either the full
// classification completes or an error/info condition is returned — there is
// no partial-success mode.
func (c *Checker) Run(ctx context.Context, tokenAddress, bondingCurve string) (*Result, error) {
	tokenType, err := token.Detect(tokenAddress)
	if err != nil {
		return nil, &InvalidInputError{Msg: err.Error()}
	}

	var res *Result
	switch tokenType {
	case token.TypePumpfun:
		res, err = c.runPumpfun(ctx, tokenAddress, bondingCurve)
	default:
		res, err = c.runFourmeme(ctx, tokenAddress)
	}
	if err != nil {
		return nil, err
	}

	if res.Phishy && c.store != nil {
		entry := db.PhishyTokenEntry{
			TokenAddress:     res.TokenAddress,
			TokenType:        string(res.TokenType),
			PhishyCount:      res.PhishyCount,
			TotalAddresses:   res.TotalAddresses,
			TotalTransferred: res.Totals.TotalTransferred,
			TotalBought:      res.Totals.TotalBought,
			TotalWithoutBuy:  res.Totals.TotalWithoutBuy,
			RiskScore:        res.RiskScore,
		}
		if res.TokenInfo != nil {
			entry.TokenSymbol = res.TokenInfo.Symbol
		}
		if err := c.store.AppendPhishy(entry); err != nil {
			log.Warn().Err(err).Msg("recent-phishy append failed")
		}
	}
	return res, nil
}

func (c *Checker) runFourmeme(ctx context.Context, tokenAddress string) (*Result, error) {
	res := &Result{TokenAddress: tokenAddress, TokenType: token.TypeFourmeme}

	transfers, err := c.ds.FirstTransfersFourmeme(ctx, tokenAddress)
	if err != nil {
		return nil, err
	}
	if len(transfers) == 0 {
		res.NoActivity = true
		res.Message = "No transfers found for this token"
		res.RiskScore, res.Checks = analyzer.RiskScore(analyzer.RiskChecks{})
		return res, nil
	}

	buyers := addresses(transfers)
	buys, err := c.ds.FirstBuysFourmeme(ctx, tokenAddress, buyers)
	if err != nil {
		return nil, err
	}

	c.finish(res, transfers, buys, nil, nil)
	return res, nil
}

func (c *Checker) runPumpfun(ctx context.Context, mint, bondingCurve string) (*Result, error) {
	res := &Result{TokenAddress: mint, TokenType: token.TypePumpfun}

	info, err := c.ds.TokenInfo(ctx, mint)
	if err != nil {
		return nil, err
	}
	if age := time.Since(info.CreatedAt); age > c.cfg.MaxTokenAge {
		return nil, infof("token was created %.1f hours ago — only tokens newer than %v are supported, since the bonding-curve heuristic is unreliable past early token life",
			age.Hours(), c.cfg.MaxTokenAge)
	}
	res.TokenInfo = info

	if bondingCurve == "" {
		bondingCurve, err = c.ds.ResolveBondingCurve(ctx, mint)
		if errors.Is(err, fetcher.ErrBondingCurveNotFound) {
			return nil, infof("bonding curve not found — the token may have already migrated off the launchpad")
		}
		if err != nil {
			return nil, err
		}
	} else if err := token.ValidateSolana(bondingCurve); err != nil {
		return nil, &InvalidInputError{Msg: err.Error()}
	}
	res.BondingCurve = bondingCurve

	// Metadata, holders, supply and liquidity have no dependency on the
	// transfer/buy queries, so they run alongside them. Each is best-effort:
	// a missing auxiliary signal means the matching risk check is skipped,
	// never that the classification fails.
	var (
		metadata    *fetcher.Metadata
		holders     []analyzer.HolderBalance
		circulating float64
		liquidity   *float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if info.URI == "" {
			return nil
		}
		md, err := c.ds.FetchMetadataJSON(gctx, info.URI)
		if err != nil {
			log.Debug().Err(err).Msg("token metadata unavailable")
			return nil
		}
		metadata = md
		return nil
	})
	g.Go(func() error {
		h, err := c.ds.HolderSnapshot(gctx, mint)
		if err != nil {
			log.Warn().Err(err).Msg("holder snapshot unavailable")
			return nil
		}
		holders = h
		return nil
	})
	g.Go(func() error {
		_, circ, err := c.ds.Supply(gctx, mint)
		if err != nil {
			log.Warn().Err(err).Msg("supply unavailable")
			return nil
		}
		circulating = circ
		return nil
	})
	g.Go(func() error {
		l, err := c.ds.Liquidity(gctx, bondingCurve)
		if err != nil {
			log.Warn().Err(err).Msg("liquidity unavailable")
			return nil
		}
		liquidity = l
		return nil
	})

	transfers, err := c.ds.FirstTransfersPumpfun(ctx, mint, bondingCurve)
	if err != nil {
		return nil, err
	}

	var buys map[string]analyzer.BuyRecord
	if len(transfers) > 0 {
		buys, err = c.ds.FirstBuysPumpfun(ctx, mint, addresses(transfers))
		if err != nil {
			return nil, err
		}
	}

	_ = g.Wait() // goroutines swallow their own errors
	res.Metadata = metadata
	res.LiquiditySOL = liquidity

	var ha *analyzer.HolderAnalysis
	if len(holders) > 0 {
		ha = analyzer.ComputeHolderAnalysis(holders, info.Creator, bondingCurve, circulating, analyzer.HolderThresholds{
			CreatorMaxPct: c.cfg.CreatorMaxPct,
			HolderMaxPct:  c.cfg.HolderMaxPct,
			Top10MaxPct:   c.cfg.Top10MaxPct,
		})
	}
	res.Holders = ha

	if len(transfers) == 0 {
		res.NoActivity = true
		res.Message = "No transfers found for this token"
		res.RiskScore, res.Checks = analyzer.RiskScore(analyzer.RiskChecks{
			LiquiditySOL: liquidity, MinLiquiditySOL: c.cfg.MinLiquiditySOL, Holders: ha,
		})
		return res, nil
	}

	c.finish(res, transfers, buys, liquidity, ha)
	return res, nil
}

// finish runs the pure tail of the pipeline: classify, aggregate, score.
func (c *Checker) finish(res *Result, transfers []analyzer.TransferRecord, buys map[string]analyzer.BuyRecord, liquidity *float64, ha *analyzer.HolderAnalysis) {
	cls := analyzer.Classify(transfers, buys)
	res.Classification = cls
	res.TotalAddresses = len(transfers)
	res.PhishyCount = len(cls.Phishy)
	res.NormalCount = len(cls.Normal)
	res.Phishy = res.PhishyCount > 0
	res.Totals = analyzer.Totals(cls.Phishy)
	res.RiskScore, res.Checks = analyzer.RiskScore(analyzer.RiskChecks{
		LiquiditySOL:    liquidity,
		MinLiquiditySOL: c.cfg.MinLiquiditySOL,
		PhishyCount:     res.PhishyCount,
		Holders:         ha,
	})

	log.Info().Str("token", res.TokenAddress).Str("type", string(res.TokenType)).
		Int("addresses", res.TotalAddresses).Int("phishy", res.PhishyCount).
		Int("risk", res.RiskScore).Msg("check complete")
}

func addresses(transfers []analyzer.TransferRecord) []string {
	out := make([]string, 0, len(transfers))
	for _, t := range transfers {
		out = append(out, t.Address)
	}
	return out
}
