package casfolio

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

// UnknownAssetClass is the bucket for holdings whose ISIN has no category in
// the reference data. It is surfaced, never dropped, so that the percentage
// column stays auditable against total portfolio value.
const UnknownAssetClass = "UNKNOWN"

// ErrCategoryNotFound reports a missing scheme-category reference row.
var ErrCategoryNotFound = errors.New("scheme category not found")

// CategoryLookup resolves an ISIN to its scheme category and a category to
// its asset class. A miss returns an error wrapping ErrCategoryNotFound.
type CategoryLookup interface {
	Category(isin string) (string, error)
	AssetClass(category string) (string, error)
}

// AssetClassShare is one row of the asset-class summary.
type AssetClassShare struct {
	AssetClass  string  `json:"asset_class"`
	MarketValue float64 `json:"market_value"`
	Percent     Percent `json:"percent"`
}

// FilterTransactionsByISIN returns the subset of the ledger matching the
// ISIN. Empty input or no match yields an empty, non-nil slice, never an
// error.
func FilterTransactionsByISIN(txns []Transaction, isin string) []Transaction {
	filtered := make([]Transaction, 0)
	for _, tx := range txns {
		if tx.ISIN == isin {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// AssetClassSummary joins each current holding to its asset class through the
// scheme-category reference, groups by asset class and computes each class's
// share of total portfolio value, rounded to 2 decimal places. Holdings with
// no category row land in the UNKNOWN class.
func AssetClassSummary(current []Holding, categories CategoryLookup) ([]AssetClassShare, error) {
	totals := make(map[string]decimal.Decimal)
	for _, h := range current {
		class := UnknownAssetClass
		category, err := categories.Category(h.ISIN)
		if err == nil {
			class, err = categories.AssetClass(category)
		}
		if err != nil {
			if !errors.Is(err, ErrCategoryNotFound) {
				return nil, err
			}
			class = UnknownAssetClass
		}
		totals[class] = totals[class].Add(h.MarketValue)
	}

	grandTotal := TotalMarketValue(current)
	summary := make([]AssetClassShare, 0, len(totals))
	for class, value := range totals {
		share := AssetClassShare{
			AssetClass:  class,
			MarketValue: value.Round(2).InexactFloat64(),
		}
		if !grandTotal.IsZero() {
			pct := value.Div(grandTotal).Mul(decimal.NewFromInt(100)).Round(2)
			share.Percent = Percent(pct.InexactFloat64())
		}
		summary = append(summary, share)
	}
	// Deterministic output: largest share first, UNKNOWN last on ties.
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].MarketValue != summary[j].MarketValue {
			return summary[i].MarketValue > summary[j].MarketValue
		}
		return summary[i].AssetClass < summary[j].AssetClass
	})
	return summary, nil
}
