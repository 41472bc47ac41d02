package fetcher

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/analyzer"
)

// Four.meme platform contracts. They receive every launch's tokens as part
// of the listing flow and would drown out real recipients in Query 1.
var fourmemePlatformAccounts = []string{
	"0x5c952063c7fc8610ffdb798152d69f0b9550762b",
	"0x757eba15a64468e6535532fcF093Cef90e226F85",
}

const fourmemeTransfersQuery = `
query ($token: String, $excluded: [String!]) {
  EVM(network: bsc, dataset: realtime) {
    Transfers(
      limit: { count: 1000 }
      orderBy: { ascendingByField: "Block_first_transfer" }
      where: {
        TransactionStatus: { Success: true }
        Transfer: {
          Receiver: { notIn: $excluded }
          Currency: { SmartContract: { is: $token } }
        }
      }
    ) {
      Transfer {
        Receiver
      }
      Block {
        first_transfer: Time(minimum: Block_Time)
      }
      total_transferred_amount: sum(of: Transfer_Amount)
    }
  }
}`

const fourmemeBuysQuery = `
query ($token: String!, $buyersList: [String!]) {
  EVM(network: bsc, dataset: realtime) {
    DEXTradeByTokens(
      orderBy: { descendingByField: "Block_first_buy" }
      where: {
        Trade: {
          Currency: { SmartContract: { is: $token } }
          Side: { Type: { is: buy } }
          Buyer: { in: $buyersList }
        }
        TransactionStatus: { Success: true }
      }
    ) {
      Trade {
        Buyer
      }
      Block {
        first_buy: Time(minimum: Block_Time)
      }
      total_bought_amount: sum(of: Trade_Amount)
    }
  }
}`

// FirstTransfersFourmeme runs Query 1 for a BSC token: up to 1000 distinct
// receiving addresses with first-transfer time and cumulative amount.
// An empty result is the "no activity yet" state, not an error.
func (f *Fetcher) FirstTransfersFourmeme(ctx context.Context, token string) ([]analyzer.TransferRecord, error) {
	var resp struct {
		EVM struct {
			Transfers []struct {
				Transfer struct {
					Receiver string `json:"Receiver"`
				} `json:"Transfer"`
				Block struct {
					FirstTransfer timestamp `json:"first_transfer"`
				} `json:"Block"`
				TotalTransferred amount `json:"total_transferred_amount"`
			} `json:"Transfers"`
		} `json:"EVM"`
	}

	vars := map[string]any{"token": token, "excluded": fourmemePlatformAccounts}
	if err := f.bq.Do(ctx, fourmemeTransfersQuery, vars, &resp); err != nil {
		return nil, err
	}

	records := make([]analyzer.TransferRecord, 0, len(resp.EVM.Transfers))
	for _, t := range resp.EVM.Transfers {
		records = append(records, analyzer.TransferRecord{
			Address:           t.Transfer.Receiver,
			FirstTransferTime: t.Block.FirstTransfer.t,
			TotalTransferred:  float64(t.TotalTransferred),
		})
	}
	log.Info().Str("token", token).Int("addresses", len(records)).Msg("fetched first transfers (bsc)")
	return records, nil
}

// FirstBuysFourmeme runs Query 2 scoped to the Query-1 address set.
// Addresses absent from the result never bought the token.
func (f *Fetcher) FirstBuysFourmeme(ctx context.Context, token string, buyers []string) (map[string]analyzer.BuyRecord, error) {
	if len(buyers) == 0 {
		return map[string]analyzer.BuyRecord{}, nil
	}

	var resp struct {
		EVM struct {
			Trades []struct {
				Trade struct {
					Buyer string `json:"Buyer"`
				} `json:"Trade"`
				Block struct {
					FirstBuy timestamp `json:"first_buy"`
				} `json:"Block"`
				TotalBought amount `json:"total_bought_amount"`
			} `json:"DEXTradeByTokens"`
		} `json:"EVM"`
	}

	vars := map[string]any{"token": token, "buyersList": buyers}
	if err := f.bq.Do(ctx, fourmemeBuysQuery, vars, &resp); err != nil {
		return nil, err
	}

	buys := make(map[string]analyzer.BuyRecord, len(resp.EVM.Trades))
	for _, t := range resp.EVM.Trades {
		buys[t.Trade.Buyer] = analyzer.BuyRecord{
			Address:      t.Trade.Buyer,
			FirstBuyTime: t.Block.FirstBuy.ptr(),
			TotalBought:  float64(t.TotalBought),
		}
	}
	log.Info().Str("token", token).Int("buyers", len(buys)).Msg("fetched first buys (bsc)")
	return buys, nil
}
