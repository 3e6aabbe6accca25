package casfolio

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// unitsEpsilon is the threshold below which a position counts as closed.
// Registrars leave dust fractions of a unit behind on full redemptions.
var unitsEpsilon = decimal.NewFromFloat(0.001)

// Holding is an open position derived from the classified ledger.
type Holding struct {
	ISIN        string          `json:"isin"`
	Scheme      string          `json:"scheme"`
	Units       decimal.Decimal `json:"units"`
	Amount      decimal.Decimal `json:"amount"` // net invested cost basis, signed
	LatestNAV   decimal.Decimal `json:"latest_nav"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// PastHolding is a fully liquidated position. Units and amounts are dropped
// on purpose: once closed they are stale or zero and carry no meaning.
type PastHolding struct {
	ISIN   string `json:"isin"`
	Scheme string `json:"scheme"`
}

// NAVLookup resolves a security identifier to its latest known price per unit.
type NAVLookup interface {
	LatestNAV(isin string) (decimal.Decimal, error)
}

// Holdings groups the classified ledger by ISIN and partitions the groups
// into current and past positions.
//
// Within a group the first-seen scheme name is canonical (spelling varies
// across statement rows), units and signed amounts are summed. Groups with at
// least 0.001 units are current and get valued at the latest NAV; the rest
// are past. A NAV miss on a current holding fails the whole aggregation:
// downstream return computation needs a complete valuation.
func Holdings(txns []Transaction, nav NAVLookup) (current []Holding, past []PastHolding, err error) {
	type group struct {
		scheme string
		units  decimal.Decimal
		amount decimal.Decimal
	}
	groups := make(map[string]*group)
	var order []string // first-seen ISIN order
	for _, tx := range txns {
		g, ok := groups[tx.ISIN]
		if !ok {
			g = &group{scheme: tx.Scheme}
			groups[tx.ISIN] = g
			order = append(order, tx.ISIN)
		}
		g.units = g.units.Add(tx.Units)
		g.amount = g.amount.Add(tx.Amount)
	}

	for _, isin := range order {
		g := groups[isin]
		if g.units.LessThan(unitsEpsilon) {
			past = append(past, PastHolding{ISIN: isin, Scheme: g.scheme})
			continue
		}
		price, err := nav.LatestNAV(isin)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot value holding %q (%s): %w", g.scheme, isin, err)
		}
		current = append(current, Holding{
			ISIN:        isin,
			Scheme:      g.scheme,
			Units:       g.units,
			Amount:      g.amount,
			LatestNAV:   price,
			MarketValue: g.units.Mul(price),
		})
	}
	return current, past, nil
}

// TotalMarketValue sums the market value of the given holdings.
func TotalMarketValue(holdings []Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.MarketValue)
	}
	return total
}

// MarshalJSON renders the decimal fields as JSON numbers, matching the
// Transaction encoding.
func (h Holding) MarshalJSON() ([]byte, error) {
	type alias struct {
		ISIN        string      `json:"isin"`
		Scheme      string      `json:"scheme"`
		Units       json.Number `json:"units"`
		Amount      json.Number `json:"amount"`
		LatestNAV   json.Number `json:"latest_nav"`
		MarketValue json.Number `json:"market_value"`
	}
	return json.Marshal(alias{
		ISIN:        h.ISIN,
		Scheme:      h.Scheme,
		Units:       json.Number(h.Units.String()),
		Amount:      json.Number(h.Amount.String()),
		LatestNAV:   json.Number(h.LatestNAV.String()),
		MarketValue: json.Number(h.MarketValue.String()),
	})
}
