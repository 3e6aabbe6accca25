package casfolio

import (
	"fmt"

	"github.com/knatarajan-dev/casfolio/date"
	"github.com/shopspring/decimal"
)

// dec is a helper for tests to build decimals from consts.
func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// tx is a helper for tests to build a raw ledger row.
func tx(on string, typ TransactionType, isin, scheme string, amount, units float64) Transaction {
	return Transaction{
		Date:   date.MustParse(on),
		Amount: dec(amount),
		Units:  dec(units),
		ISIN:   isin,
		Scheme: scheme,
		Type:   typ,
	}
}

// navTable is a fixture NAVLookup backed by a map.
type navTable map[string]float64

func (n navTable) LatestNAV(isin string) (decimal.Decimal, error) {
	v, ok := n[isin]
	if !ok {
		return decimal.Zero, fmt.Errorf("no NAV for %s", isin)
	}
	return dec(v), nil
}

// catTable is a fixture CategoryLookup: isin → category and category → class.
type catTable struct {
	categories map[string]string
	classes    map[string]string
}

func (c catTable) Category(isin string) (string, error) {
	v, ok := c.categories[isin]
	if !ok {
		return "", fmt.Errorf("isin %s: %w", isin, ErrCategoryNotFound)
	}
	return v, nil
}

func (c catTable) AssetClass(category string) (string, error) {
	v, ok := c.classes[category]
	if !ok {
		return "", fmt.Errorf("category %s: %w", category, ErrCategoryNotFound)
	}
	return v, nil
}
