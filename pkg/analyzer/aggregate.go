package analyzer

// Totals sums transferred, bought, and transferred-without-buy amounts over
// the phishy partition only. An empty phishy set yields all zeros.
func Totals(phishy []ClassificationResult) AggregateTotals {
	var t AggregateTotals
	for _, r := range phishy {
		t.TotalTransferred += r.TotalTransferred
		t.TotalBought += r.TotalBought
		t.TotalWithoutBuy += r.TransferredWithoutBuy
	}
	return t
}
