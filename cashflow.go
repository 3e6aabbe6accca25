package casfolio

import (
	"github.com/knatarajan-dev/casfolio/date"
)

// Cashflow is a dated, signed monetary amount, the input unit of the XIRR
// solver. Amounts are float64: the root-finder iterates in floating point
// anyway, exactness stops at the ledger boundary.
type Cashflow struct {
	Date   date.Date `json:"date"`
	Amount float64   `json:"amount"`
}

// SynthesizeCashflows appends one synthetic HOLDINGS transaction per current
// holding to the classified ledger, dated on and valued at market. The
// synthetic row is a positive inflow representing the hypothetical
// liquidation of the position that day; it is what makes unrealized holdings
// comparable, in return terms, to realized historical cashflows.
func SynthesizeCashflows(txns []Transaction, current []Holding, on date.Date) []Transaction {
	series := make([]Transaction, 0, len(txns)+len(current))
	series = append(series, txns...)
	for _, h := range current {
		series = append(series, Transaction{
			Date:        on,
			Amount:      h.MarketValue,
			ISIN:        h.ISIN,
			Scheme:      h.Scheme,
			Type:        TypeHoldings,
			Description: "Current holdings",
		})
	}
	return series
}

// CashflowsOf extracts the dated signed amounts from a transaction series.
func CashflowsOf(txns []Transaction) []Cashflow {
	flows := make([]Cashflow, 0, len(txns))
	for _, tx := range txns {
		flows = append(flows, Cashflow{Date: tx.Date, Amount: tx.Amount.InexactFloat64()})
	}
	return flows
}
