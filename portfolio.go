// Package casfolio derives a portfolio from the transaction history of a
// mutual-fund consolidated account statement (CAS) and answers return and
// composition queries over it.
//
// The pipeline is one-directional: raw ledger → classified ledger →
// aggregated holdings → synthesized cashflow series → return and summary
// outputs. Each statement parse re-derives everything from scratch; nothing
// is mutated incrementally.
package casfolio

import (
	"fmt"

	"github.com/knatarajan-dev/casfolio/date"
)

// Portfolio is the complete artifact set derived from one statement parse.
// It is immutable after construction; queries only ever read it.
type Portfolio struct {
	// Transactions is the classified statement ledger, signed amounts.
	Transactions []Transaction `json:"transactions"`
	// CurrentHoldings are open positions valued at the latest NAV.
	CurrentHoldings []Holding `json:"curr_holdings"`
	// PastHoldings are fully liquidated positions.
	PastHoldings []PastHolding `json:"past_holdings"`
	// Cashflows is the ledger plus one synthetic HOLDINGS inflow per current
	// holding, the series return computations run on.
	Cashflows []Transaction `json:"cashflows"`
	// AsOf is the valuation date of the synthetic holdings rows.
	AsOf date.Date `json:"as_of"`
}

// NewPortfolio runs the full derivation over a raw (unsigned) statement
// ledger as a single atomic unit: classify, aggregate, value, synthesize.
// Callers never observe a partially aggregated state; on error there is no
// portfolio at all.
func NewPortfolio(raw []Transaction, nav NAVLookup, on date.Date) (*Portfolio, error) {
	if on.IsZero() {
		on = date.Today()
	}
	txns := Classify(raw)
	current, past, err := Holdings(txns, nav)
	if err != nil {
		return nil, fmt.Errorf("aggregating holdings: %w", err)
	}
	return &Portfolio{
		Transactions:    txns,
		CurrentHoldings: current,
		PastHoldings:    past,
		Cashflows:       SynthesizeCashflows(txns, current, on),
		AsOf:            on,
	}, nil
}

// XIRR computes the money-weighted annualized return of the whole portfolio,
// over the historical ledger plus the synthetic liquidation of current
// holdings.
func (p *Portfolio) XIRR() (Percent, error) {
	return GetXIRR(p.Cashflows)
}
