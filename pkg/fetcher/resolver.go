package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/analyzer"
)

// ErrBondingCurveNotFound means the mint does not follow the expected
// bonding-curve program pattern — typically the token already migrated.
var ErrBondingCurveNotFound = errors.New("bonding curve not found for mint (token may have migrated)")

// Incinerator is where burned Solana tokens end up.
const incineratorAddress = "1nc1nerator11111111111111111111111111111111"

const bondingCurveQuery = `
query ($token: String!) {
  Solana {
    DEXPools(
      limit: { count: 1 }
      orderBy: { descending: Block_Time }
      where: {
        Pool: {
          Market: { BaseCurrency: { MintAddress: { is: $token } } }
          Dex: { ProtocolName: { is: "pump" } }
        }
        Transaction: { Result: { Success: true } }
      }
    ) {
      Pool {
        Market {
          MarketAddress
        }
      }
    }
  }
}`

// ResolveBondingCurve discovers the bonding-curve account for a Pump.fun
// mint: the pump-protocol pool market address holding the token's liquidity.
// Returns exactly one address or ErrBondingCurveNotFound.
func (f *Fetcher) ResolveBondingCurve(ctx context.Context, mint string) (string, error) {
	var resp struct {
		Solana struct {
			DEXPools []struct {
				Pool struct {
					Market struct {
						MarketAddress string `json:"MarketAddress"`
					} `json:"Market"`
				} `json:"Pool"`
			} `json:"DEXPools"`
		} `json:"Solana"`
	}

	if err := f.bq.Do(ctx, bondingCurveQuery, map[string]any{"token": mint}, &resp); err != nil {
		return "", err
	}
	if len(resp.Solana.DEXPools) == 0 || resp.Solana.DEXPools[0].Pool.Market.MarketAddress == "" {
		return "", ErrBondingCurveNotFound
	}
	curve := resp.Solana.DEXPools[0].Pool.Market.MarketAddress
	log.Info().Str("mint", mint).Str("curve", curve).Msg("resolved bonding curve")
	return curve, nil
}

// TokenInfo is the on-chain identity of a Pump.fun mint.
type TokenInfo struct {
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	URI       string    `json:"uri,omitempty"`
	Creator   string    `json:"creator,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

const tokenCreationQuery = `
query ($token: String!) {
  Solana {
    TokenSupplyUpdates(
      limit: { count: 1 }
      orderBy: { ascending: Block_Time }
      where: {
        TokenSupplyUpdate: { Currency: { MintAddress: { is: $token } } }
        Transaction: { Result: { Success: true } }
      }
    ) {
      Block {
        Time
      }
      Transaction {
        Signer
      }
      TokenSupplyUpdate {
        Currency {
          Name
          Symbol
          Uri
        }
      }
    }
  }
}`

// TokenInfo resolves creation time, creator and metadata pointers for a mint.
// A mint with no supply updates has never been created on-chain.
func (f *Fetcher) TokenInfo(ctx context.Context, mint string) (*TokenInfo, error) {
	var resp struct {
		Solana struct {
			Updates []struct {
				Block struct {
					Time timestamp `json:"Time"`
				} `json:"Block"`
				Transaction struct {
					Signer string `json:"Signer"`
				} `json:"Transaction"`
				TokenSupplyUpdate struct {
					Currency struct {
						Name   string `json:"Name"`
						Symbol string `json:"Symbol"`
						URI    string `json:"Uri"`
					} `json:"Currency"`
				} `json:"TokenSupplyUpdate"`
			} `json:"TokenSupplyUpdates"`
		} `json:"Solana"`
	}

	if err := f.bq.Do(ctx, tokenCreationQuery, map[string]any{"token": mint}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Solana.Updates) == 0 {
		return nil, fmt.Errorf("no on-chain record for mint %s", mint)
	}
	u := resp.Solana.Updates[0]
	return &TokenInfo{
		Name:      u.TokenSupplyUpdate.Currency.Name,
		Symbol:    u.TokenSupplyUpdate.Currency.Symbol,
		URI:       u.TokenSupplyUpdate.Currency.URI,
		Creator:   u.Transaction.Signer,
		CreatedAt: u.Block.Time.t,
	}, nil
}

// Metadata is the off-chain token metadata resolved best-effort from the
// token URI. Absent fields are simply omitted; failure to fetch is not an
// error at the pipeline level.
type Metadata struct {
	Name       string `json:"name,omitempty"`
	Symbol     string `json:"symbol,omitempty"`
	Image      string `json:"image,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Telegram   string `json:"telegram,omitempty"`
	Website    string `json:"website,omitempty"`
	MayhemMode bool   `json:"mayhem_mode,omitempty"`
}

// FetchMetadataJSON pulls the metadata document behind the token URI.
func (f *Fetcher) FetchMetadataJSON(ctx context.Context, uri string) (*Metadata, error) {
	if uri == "" {
		return nil, fmt.Errorf("no metadata URI")
	}
	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata fetch HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var md Metadata
	if err := json.Unmarshal(body, &md); err != nil {
		return nil, fmt.Errorf("metadata parse: %w", err)
	}
	return &md, nil
}

const holderSnapshotQuery = `
query ($token: String!) {
  Solana {
    BalanceUpdates(
      limit: { count: 50 }
      orderBy: { descendingByField: "BalanceUpdate_Holding_maximum" }
      where: {
        BalanceUpdate: { Currency: { MintAddress: { is: $token } } }
        Transaction: { Result: { Success: true } }
      }
    ) {
      BalanceUpdate {
        Account {
          Token {
            Owner
          }
        }
        Holding: PostBalance(maximum: Block_Slot)
      }
    }
  }
}`

const holderTradeCountsQuery = `
query ($token: String!, $holders: [String!]) {
  Solana {
    DEXTradeByTokens(
      where: {
        Trade: {
          Currency: { MintAddress: { is: $token } }
          Account: { Token: { Owner: { in: $holders } } }
        }
        Transaction: { Result: { Success: true } }
      }
    ) {
      Trade {
        Account {
          Token {
            Owner
          }
        }
      }
      buys: count(if: { Trade: { Side: { Type: { is: buy } } } })
      sells: count(if: { Trade: { Side: { Type: { is: sell } } } })
    }
  }
}`

// HolderSnapshot returns the current largest holders of a mint with their
// buy/sell trade counts. Independent of Query 1/2 and safe to run
// concurrently with them.
func (f *Fetcher) HolderSnapshot(ctx context.Context, mint string) ([]analyzer.HolderBalance, error) {
	var resp struct {
		Solana struct {
			Updates []struct {
				BalanceUpdate struct {
					Account struct {
						Token struct {
							Owner string `json:"Owner"`
						} `json:"Token"`
					} `json:"Account"`
					Holding amount `json:"Holding"`
				} `json:"BalanceUpdate"`
			} `json:"BalanceUpdates"`
		} `json:"Solana"`
	}

	if err := f.bq.Do(ctx, holderSnapshotQuery, map[string]any{"token": mint}, &resp); err != nil {
		return nil, err
	}

	holders := make([]analyzer.HolderBalance, 0, len(resp.Solana.Updates))
	owners := make([]string, 0, len(resp.Solana.Updates))
	for _, u := range resp.Solana.Updates {
		owner := u.BalanceUpdate.Account.Token.Owner
		if owner == "" || float64(u.BalanceUpdate.Holding) <= 0 {
			continue
		}
		holders = append(holders, analyzer.HolderBalance{
			Address: owner,
			Balance: float64(u.BalanceUpdate.Holding),
		})
		owners = append(owners, owner)
	}
	if len(holders) == 0 {
		return holders, nil
	}

	var tc struct {
		Solana struct {
			Trades []struct {
				Trade struct {
					Account struct {
						Token struct {
							Owner string `json:"Owner"`
						} `json:"Token"`
					} `json:"Account"`
				} `json:"Trade"`
				Buys  int `json:"buys"`
				Sells int `json:"sells"`
			} `json:"DEXTradeByTokens"`
		} `json:"Solana"`
	}
	if err := f.bq.Do(ctx, holderTradeCountsQuery, map[string]any{"token": mint, "holders": owners}, &tc); err != nil {
		// Trade counts are display garnish; the snapshot still stands.
		log.Warn().Err(err).Msg("holder trade counts unavailable")
		return holders, nil
	}

	counts := map[string][2]int{}
	for _, t := range tc.Solana.Trades {
		counts[t.Trade.Account.Token.Owner] = [2]int{t.Buys, t.Sells}
	}
	for i := range holders {
		if c, ok := counts[holders[i].Address]; ok {
			holders[i].BuyCount = c[0]
			holders[i].SellCount = c[1]
		}
	}
	return holders, nil
}

const supplyQuery = `
query ($token: String!, $burn: String!) {
  Solana {
    TokenSupplyUpdates(
      limit: { count: 1 }
      orderBy: { descending: Block_Time }
      where: {
        TokenSupplyUpdate: { Currency: { MintAddress: { is: $token } } }
        Transaction: { Result: { Success: true } }
      }
    ) {
      TokenSupplyUpdate {
        PostBalance
      }
    }
    BalanceUpdates(
      limit: { count: 1 }
      orderBy: { descending: Block_Slot }
      where: {
        BalanceUpdate: {
          Currency: { MintAddress: { is: $token } }
          Account: { Token: { Owner: { is: $burn } } }
        }
        Transaction: { Result: { Success: true } }
      }
    ) {
      BalanceUpdate {
        Burned: PostBalance(maximum: Block_Slot)
      }
    }
  }
}`

// Supply returns total and circulating supply for a mint.
// Circulating supply is total supply minus the burned amount.
func (f *Fetcher) Supply(ctx context.Context, mint string) (total, circulating float64, err error) {
	var resp struct {
		Solana struct {
			SupplyUpdates []struct {
				TokenSupplyUpdate struct {
					PostBalance amount `json:"PostBalance"`
				} `json:"TokenSupplyUpdate"`
			} `json:"TokenSupplyUpdates"`
			BalanceUpdates []struct {
				BalanceUpdate struct {
					Burned amount `json:"Burned"`
				} `json:"BalanceUpdate"`
			} `json:"BalanceUpdates"`
		} `json:"Solana"`
	}

	vars := map[string]any{"token": mint, "burn": incineratorAddress}
	if err := f.bq.Do(ctx, supplyQuery, vars, &resp); err != nil {
		return 0, 0, err
	}
	if len(resp.Solana.SupplyUpdates) == 0 {
		return 0, 0, fmt.Errorf("no supply data for mint %s", mint)
	}
	total = float64(resp.Solana.SupplyUpdates[0].TokenSupplyUpdate.PostBalance)
	burned := 0.0
	if len(resp.Solana.BalanceUpdates) > 0 {
		burned = float64(resp.Solana.BalanceUpdates[0].BalanceUpdate.Burned)
	}
	return total, total - burned, nil
}

const liquidityQuery = `
query ($curve: String!) {
  Solana {
    BalanceUpdates(
      limit: { count: 1 }
      orderBy: { descending: Block_Slot }
      where: {
        BalanceUpdate: {
          Account: { Address: { is: $curve } }
          Currency: { Native: true }
        }
        Transaction: { Result: { Success: true } }
      }
    ) {
      BalanceUpdate {
        Liquidity: PostBalance(maximum: Block_Slot)
      }
    }
  }
}`

// Liquidity returns the bonding curve's native SOL balance, or nil when no
// balance data is available — an unevaluable check, not a failed one.
func (f *Fetcher) Liquidity(ctx context.Context, bondingCurve string) (*float64, error) {
	var resp struct {
		Solana struct {
			Updates []struct {
				BalanceUpdate struct {
					Liquidity amount `json:"Liquidity"`
				} `json:"BalanceUpdate"`
			} `json:"BalanceUpdates"`
		} `json:"Solana"`
	}

	if err := f.bq.Do(ctx, liquidityQuery, map[string]any{"curve": bondingCurve}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Solana.Updates) == 0 {
		return nil, nil
	}
	sol := float64(resp.Solana.Updates[0].BalanceUpdate.Liquidity)
	return &sol, nil
}
