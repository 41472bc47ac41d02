package analyzer

import "time"

// TransferRecord is one Query-1 row: an address that received the token,
// with its first-transfer timestamp and cumulative transferred amount.
// At most one record exists per address per token.
type TransferRecord struct {
	Address           string    `json:"address"`
	FirstTransferTime time.Time `json:"first_transfer_time"`
	TotalTransferred  float64   `json:"total_transferred"`
}

// BuyRecord is one Query-2 row for an address that ever bought the token.
// FirstBuyTime may be nil when the upstream aggregation returned a buy row
// without a timestamp.
type BuyRecord struct {
	Address      string     `json:"address"`
	FirstBuyTime *time.Time `json:"first_buy_time"`
	TotalBought  float64    `json:"total_bought"`
}

// Classification reasons. Kept verbatim from the report wording users see.
const (
	ReasonNeverBought       = "Never bought the token"
	ReasonTransferBeforeBuy = "Transfer occurred before first buy"
	ReasonBuyNoTimestamp    = "Buy record exists but no timestamp"
)

// ClassificationResult carries the per-address verdict along with the raw
// figures it was derived from. TransferredWithoutBuy is total_transferred
// minus total_bought and is deliberately NOT floored at zero: a negative
// value on a normal address means it bought more than it was sent, which is
// itself useful signal.
type ClassificationResult struct {
	Address               string     `json:"address"`
	FirstTransferTime     time.Time  `json:"first_transfer_time"`
	FirstBuyTime          *time.Time `json:"first_buy_time"`
	TotalTransferred      float64    `json:"total_transferred"`
	TotalBought           float64    `json:"total_bought"`
	TransferredWithoutBuy float64    `json:"transferred_without_buy"`
	IsPhishy              bool       `json:"is_phishy"`
	Reason                string     `json:"reason,omitempty"`
}

// Classification partitions the Query-1 address set. Phishy and Normal are
// disjoint and together cover every transfer record exactly once.
type Classification struct {
	Phishy []ClassificationResult `json:"phishy"`
	Normal []ClassificationResult `json:"normal"`
}

// AggregateTotals sums the classifier output over phishy addresses only.
type AggregateTotals struct {
	TotalTransferred float64 `json:"total_transferred"`
	TotalBought      float64 `json:"total_bought"`
	TotalWithoutBuy  float64 `json:"total_without_buy"`
}

// TopHolder is one row of the holder-snapshot display data.
type TopHolder struct {
	Address        string  `json:"address"`
	Balance        float64 `json:"balance"`
	Percent        float64 `json:"percent"` // of circulating supply
	BuyCount       int     `json:"buy_count"`
	SellCount      int     `json:"sell_count"`
	IsBondingCurve bool    `json:"is_bonding_curve"`
	IsKnownAgent   bool    `json:"is_known_agent"`
	IsCreator      bool    `json:"is_creator"`
}

// HolderAnalysis carries the supply-concentration checks for the Pump.fun
// variant. A check that could not be evaluated is simply absent from the
// risk tally, not counted as failed.
type HolderAnalysis struct {
	CreatorPercent          float64     `json:"creator_percent"`
	CreatorCheckPassed      bool        `json:"creator_check_passed"`
	OtherHoldersCheckPassed bool        `json:"other_holders_check_passed"`
	Top10Percent            float64     `json:"top10_percent"`
	Top10CheckPassed        bool        `json:"top10_check_passed"`
	TopHolders              []TopHolder `json:"top_holders"`
}

// HolderThresholds are the percent-of-circulating-supply limits the checks
// are evaluated against.
type HolderThresholds struct {
	CreatorMaxPct float64
	HolderMaxPct  float64
	Top10MaxPct   float64
}
