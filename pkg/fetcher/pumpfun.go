package fetcher

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/analyzer"
)

// AI-agent accounts that receive tokens from many Pump.fun launches as part
// of automated promotion. Excluded from Query 1 alongside the bonding curve
// so they do not register as phishy recipients.
var pumpfunAgentAccounts = []string{
	"8psNvWTrdNTiVRNzAgsou9kETXNJm2SXZyaKuJraVRtf",
	"AkTgH1uW6J6j6QHmFNGzZuZwwXaHQsPCpHUriED28tRj",
}

const pumpfunTransfersQuery = `
query ($token: String, $bonding_curve: String, $excluded: [String!]) {
  Solana {
    Transfers(
      limit: { count: 1000 }
      orderBy: { ascendingByField: "Block_first_transfer" }
      where: {
        Transfer: {
          Receiver: { Token: { Owner: { not: $bonding_curve, notIn: $excluded } } }
          Currency: { MintAddress: { is: $token } }
        }
        Transaction: { Result: { Success: true } }
      }
    ) {
      Transfer {
        Receiver {
          Token {
            Owner
          }
        }
      }
      Block {
        first_transfer: Time(minimum: Block_Time)
      }
      total_transferred_amount: sum(of: Transfer_Amount)
    }
  }
}`

const pumpfunBuysQuery = `
query ($token: String!, $buyersList: [String!]) {
  Solana {
    DEXTradeByTokens(
      orderBy: { ascendingByField: "Block_first_buy" }
      where: {
        Trade: {
          Account: { Token: { Owner: { in: $buyersList } } }
          Currency: { MintAddress: { is: $token } }
          Side: { Type: { is: buy } }
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
      Block {
        first_buy: Time(minimum: Block_Time)
      }
      total_bought_amount: sum(of: Trade_Amount)
    }
  }
}`

// FirstTransfersPumpfun runs Query 1 for a Pump.fun mint, excluding the
// bonding curve account from the receiver set.
func (f *Fetcher) FirstTransfersPumpfun(ctx context.Context, mint, bondingCurve string) ([]analyzer.TransferRecord, error) {
	var resp struct {
		Solana struct {
			Transfers []struct {
				Transfer struct {
					Receiver struct {
						Token struct {
							Owner string `json:"Owner"`
						} `json:"Token"`
					} `json:"Receiver"`
				} `json:"Transfer"`
				Block struct {
					FirstTransfer timestamp `json:"first_transfer"`
				} `json:"Block"`
				TotalTransferred amount `json:"total_transferred_amount"`
			} `json:"Transfers"`
		} `json:"Solana"`
	}

	vars := map[string]any{
		"token":         mint,
		"bonding_curve": bondingCurve,
		"excluded":      pumpfunAgentAccounts,
	}
	if err := f.bq.Do(ctx, pumpfunTransfersQuery, vars, &resp); err != nil {
		return nil, err
	}

	records := make([]analyzer.TransferRecord, 0, len(resp.Solana.Transfers))
	for _, t := range resp.Solana.Transfers {
		records = append(records, analyzer.TransferRecord{
			Address:           t.Transfer.Receiver.Token.Owner,
			FirstTransferTime: t.Block.FirstTransfer.t,
			TotalTransferred:  float64(t.TotalTransferred),
		})
	}
	log.Info().Str("mint", mint).Str("curve", bondingCurve).Int("addresses", len(records)).Msg("fetched first transfers (solana)")
	return records, nil
}

// FirstBuysPumpfun runs Query 2 scoped to the Query-1 owner set.
func (f *Fetcher) FirstBuysPumpfun(ctx context.Context, mint string, buyers []string) (map[string]analyzer.BuyRecord, error) {
	if len(buyers) == 0 {
		return map[string]analyzer.BuyRecord{}, nil
	}

	var resp struct {
		Solana struct {
			Trades []struct {
				Trade struct {
					Account struct {
						Token struct {
							Owner string `json:"Owner"`
						} `json:"Token"`
					} `json:"Account"`
				} `json:"Trade"`
				Block struct {
					FirstBuy timestamp `json:"first_buy"`
				} `json:"Block"`
				TotalBought amount `json:"total_bought_amount"`
			} `json:"DEXTradeByTokens"`
		} `json:"Solana"`
	}

	vars := map[string]any{"token": mint, "buyersList": buyers}
	if err := f.bq.Do(ctx, pumpfunBuysQuery, vars, &resp); err != nil {
		return nil, err
	}

	buys := make(map[string]analyzer.BuyRecord, len(resp.Solana.Trades))
	for _, t := range resp.Solana.Trades {
		owner := t.Trade.Account.Token.Owner
		buys[owner] = analyzer.BuyRecord{
			Address:      owner,
			FirstBuyTime: t.Block.FirstBuy.ptr(),
			TotalBought:  float64(t.TotalBought),
		}
	}
	log.Info().Str("mint", mint).Int("buyers", len(buys)).Msg("fetched first buys (solana)")
	return buys, nil
}
