package analyzer

// Classify joins the Query-1 transfer records with the Query-2 buy records
// and partitions the address set into phishy and normal.
//
// An address is phishy when it never bought the token, or when its first
// transfer strictly precedes its first buy. Equal timestamps are normal —
// the upstream-provided first-event timestamps are authoritative and ties
// do not count as phishy.
//
// Pure function of its inputs: no I/O, deterministic, processes every
// transfer record with no truncation.
func Classify(transfers []TransferRecord, buys map[string]BuyRecord) Classification {
	out := Classification{
		Phishy: []ClassificationResult{},
		Normal: []ClassificationResult{},
	}

	for _, t := range transfers {
		buy, bought := buys[t.Address]

		r := ClassificationResult{
			Address:           t.Address,
			FirstTransferTime: t.FirstTransferTime,
			TotalTransferred:  t.TotalTransferred,
		}

		switch {
		case !bought:
			r.TransferredWithoutBuy = t.TotalTransferred
			r.IsPhishy = true
			r.Reason = ReasonNeverBought

		case buy.FirstBuyTime == nil:
			// Upstream returned a buy aggregation without a timestamp.
			// We cannot order it against the transfer, so treat as phishy.
			r.TotalBought = buy.TotalBought
			r.TransferredWithoutBuy = t.TotalTransferred - buy.TotalBought
			r.IsPhishy = true
			r.Reason = ReasonBuyNoTimestamp

		default:
			r.FirstBuyTime = buy.FirstBuyTime
			r.TotalBought = buy.TotalBought
			r.TransferredWithoutBuy = t.TotalTransferred - buy.TotalBought
			if t.FirstTransferTime.Before(*buy.FirstBuyTime) {
				r.IsPhishy = true
				r.Reason = ReasonTransferBeforeBuy
			}
		}

		if r.IsPhishy {
			out.Phishy = append(out.Phishy, r)
		} else {
			out.Normal = append(out.Normal, r)
		}
	}

	return out
}
