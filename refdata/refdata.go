// Package refdata loads and serves the reference tables the portfolio
// derivation depends on: the AMFI-style daily NAV file, the scheme-category
// table and the category-to-asset-class mapping.
//
// A Table is constructed once at startup and passed to every component that
// needs it; there are no package-level caches. Prices only change through an
// explicit Reload or Refresh, never behind the caller's back.
package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/knatarajan-dev/casfolio"
	"github.com/shopspring/decimal"
)

// ErrNAVNotFound reports that no NAV row matches the requested ISIN.
var ErrNAVNotFound = errors.New("no NAV found for ISIN")

// Column headers of the AMFI NAV file. The file is ';'-delimited and its
// numeric values may carry thousands separators.
const (
	colSchemeCode   = "Scheme Code"
	colISINGrowth   = "ISIN Div Payout/ ISIN Growth"
	colISINReinvest = "ISIN Div Reinvestment"
	colSchemeName   = "Scheme Name"
	colNAV          = "Net Asset Value"
)

type navRow struct {
	schemeCode   string
	isinGrowth   string
	isinReinvest string
	scheme       string
	value        decimal.Decimal
}

// Table is the in-memory reference dataset.
type Table struct {
	mu         sync.RWMutex
	navs       []navRow
	categories map[string]string // ISIN → scheme category
	classes    map[string]string // category → asset class
	quoteURL   string            // base URL for Refresh, DefaultQuoteURL when empty
}

var _ casfolio.NAVLookup = (*Table)(nil)
var _ casfolio.CategoryLookup = (*Table)(nil)

// Load reads the three reference files. schemePath and classPath may be empty
// when only NAV lookups are needed; category queries then resolve to UNKNOWN.
func Load(navPath, schemePath, classPath string) (*Table, error) {
	t := &Table{
		categories: make(map[string]string),
		classes:    make(map[string]string),
	}

	f, err := os.Open(navPath)
	if err != nil {
		return nil, fmt.Errorf("could not open NAV file: %w", err)
	}
	defer f.Close()
	if t.navs, err = readNAV(f); err != nil {
		return nil, fmt.Errorf("could not read NAV file %q: %w", navPath, err)
	}

	if schemePath != "" {
		if t.categories, err = readPairs(schemePath); err != nil {
			return nil, fmt.Errorf("could not read scheme categories %q: %w", schemePath, err)
		}
	}
	if classPath != "" {
		if t.classes, err = readPairs(classPath); err != nil {
			return nil, fmt.Errorf("could not read asset classes %q: %w", classPath, err)
		}
	}
	return t, nil
}

// readNAV parses the ';'-delimited AMFI NAV table. The file interleaves fund
// house banner lines and blank lines with data rows; anything that does not
// parse as a data row is skipped.
func readNAV(r io.Reader) ([]navRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1 // banner lines have a single field

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colISINGrowth, colISINReinvest, colNAV} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var rows []navRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) <= idx[colNAV] {
			continue // banner or blank line
		}
		value, err := parseAmount(record[idx[colNAV]])
		if err != nil {
			continue // "N.A." and friends
		}
		row := navRow{
			isinGrowth:   strings.TrimSpace(record[idx[colISINGrowth]]),
			isinReinvest: strings.TrimSpace(record[idx[colISINReinvest]]),
			value:        value,
		}
		if i, ok := idx[colSchemeCode]; ok && i < len(record) {
			row.schemeCode = strings.TrimSpace(record[i])
		}
		if i, ok := idx[colSchemeName]; ok && i < len(record) {
			row.scheme = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// readPairs reads a two-column CSV with a header into a map.
func readPairs(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("empty file")
	}
	pairs := make(map[string]string, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		pairs[strings.TrimSpace(record[0])] = strings.TrimSpace(record[1])
	}
	return pairs, nil
}

// parseAmount parses a numeric value that may carry thousands separators.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, errors.New("empty value")
	}
	return decimal.NewFromString(s)
}

// LatestNAV returns the price per unit for the security. Both the growth and
// the reinvestment ISIN columns are searched; the first matching row is
// authoritative (dividend variants share scheme-level pricing).
func (t *Table) LatestNAV(isin string) (decimal.Decimal, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.navs {
		if row.isinGrowth == isin || row.isinReinvest == isin {
			return row.value, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s", ErrNAVNotFound, isin)
}

// Category returns the scheme category for the ISIN.
func (t *Table) Category(isin string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	category, ok := t.categories[isin]
	if !ok {
		return "", fmt.Errorf("isin %s: %w", isin, casfolio.ErrCategoryNotFound)
	}
	return category, nil
}

// AssetClass returns the asset class for the scheme category.
func (t *Table) AssetClass(category string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	class, ok := t.classes[category]
	if !ok {
		return "", fmt.Errorf("category %s: %w", category, casfolio.ErrCategoryNotFound)
	}
	return class, nil
}
