package cas

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/shopspring/decimal"
)

// ErrNoTransactions reports a statement with no recognizable transaction rows.
var ErrNoTransactions = errors.New("no transactions found in statement")

// Decode extracts and parses a full statement PDF into a raw ledger.
func Decode(r io.ReaderAt, size int64, password string) ([]casfolio.Transaction, error) {
	pages, err := ExtractText(r, size, password)
	if err != nil {
		return nil, err
	}
	return ParseText(strings.Join(pages, "\n"))
}

var (
	// isinRe matches an Indian mutual-fund ISIN anywhere in a scheme header line.
	isinRe = regexp.MustCompile(`\bIN[A-Z0-9]{10}\b`)
	// txnRe matches a transaction row: date, free-text description, then 2 to 4
	// numeric columns (amount [units [nav [balance]]]).
	txnRe = regexp.MustCompile(`^(\d{2}-[A-Za-z]{3}-\d{4})\s+(.+?)\s+(\(?-?[\d,]+\.\d+\)?)(?:\s+(\(?-?[\d,]+\.\d+\)?))?(?:\s+([\d,]+\.\d+))?(?:\s+([\d,]+\.\d+))?\s*$`)
)

const statementDateFormat = "02-Jan-2006"

// ParseText parses the text of a CAS into a raw ledger. Scheme sections are
// introduced by a header line bearing the ISIN; the transactions that follow
// belong to that scheme until the next header.
func ParseText(text string) ([]casfolio.Transaction, error) {
	var (
		txns   []casfolio.Transaction
		isin   string
		scheme string
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := isinRe.FindString(line); m != "" {
			isin = m
			scheme = schemeName(line, m)
			continue
		}
		m := txnRe.FindStringSubmatch(line)
		if m == nil || isin == "" {
			continue
		}
		on, err := time.Parse(statementDateFormat, m[1])
		if err != nil {
			continue
		}
		amount, err := parseStatementNumber(m[3])
		if err != nil {
			continue
		}
		units := decimal.Zero
		if m[4] != "" {
			// tax rows carry an amount only; unit rows carry both
			if u, err := parseStatementNumber(m[4]); err == nil {
				units = u
			}
		}
		description := strings.TrimSpace(m[2])
		txns = append(txns, casfolio.Transaction{
			Date:        date.New(on.Date()),
			Amount:      amount.Abs(), // raw ledger is unsigned
			Units:       units,
			ISIN:        isin,
			Scheme:      scheme,
			Type:        typeOf(description),
			Description: description,
		})
	}
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}
	return txns, nil
}

// schemeName extracts a readable scheme name from the header line.
func schemeName(line, isin string) string {
	name := line
	if i := strings.Index(name, "ISIN"); i >= 0 {
		name = name[:i]
	} else if i := strings.Index(name, isin); i >= 0 {
		name = name[:i]
	}
	name = strings.Trim(name, " -:(")
	// Headers often lead with a folio or scheme code, e.g. "B123G-Axis...".
	if i := strings.Index(name, "-"); i > 0 && i < 12 {
		name = name[i+1:]
	}
	return strings.TrimSpace(name)
}

// typeOf maps a statement row description to the transaction vocabulary, the
// way registrar statements phrase them.
func typeOf(description string) casfolio.TransactionType {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "stt"):
		return casfolio.TypeSTTTax
	case strings.Contains(d, "stamp duty"):
		return casfolio.TypeStampDutyTax
	case strings.Contains(d, "tds"):
		return casfolio.TypeTDSTax
	case strings.Contains(d, "switch out") || strings.Contains(d, "switch-out") || strings.Contains(d, "switchout"):
		if strings.Contains(d, "merger") {
			return casfolio.TypeSwitchOutMerger
		}
		return casfolio.TypeSwitchOut
	case strings.Contains(d, "switch in") || strings.Contains(d, "switch-in") || strings.Contains(d, "switchin"):
		if strings.Contains(d, "merger") {
			return casfolio.TypeSwitchInMerger
		}
		return casfolio.TypeSwitchIn
	case strings.Contains(d, "dividend") || strings.Contains(d, "idcw"):
		if strings.Contains(d, "reinvest") {
			return casfolio.TypeDividendReinvest
		}
		return casfolio.TypeDividendPayout
	case strings.Contains(d, "reversal") || strings.Contains(d, "rejection"):
		return casfolio.TypeReversal
	case strings.Contains(d, "redemption") || strings.Contains(d, "redeem"):
		return casfolio.TypeRedemption
	case strings.Contains(d, "segregat"):
		return casfolio.TypeSegregation
	case strings.Contains(d, "systematic") || strings.Contains(d, "sip"):
		return casfolio.TypePurchaseSIP
	case strings.Contains(d, "purchase") || strings.Contains(d, "subscription"):
		return casfolio.TypePurchase
	case strings.Contains(d, "misc"):
		return casfolio.TypeMisc
	}
	return casfolio.TypeUnknown
}

// parseStatementNumber parses a statement numeric cell: thousands separators,
// and negatives written either with a sign or in parentheses.
func parseStatementNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// casparser CSV column names. Only a subset is required; the exporter writes
// more columns than the ledger needs.
const (
	colDate        = "date"
	colDescription = "description"
	colAmount      = "amount"
	colUnits       = "units"
	colType        = "type"
	colScheme      = "scheme"
	colISIN        = "isin"
)

// DecodeCSV parses the casparser-style CSV transaction table into a raw
// ledger. Amounts are kept unsigned; rows without an ISIN are skipped.
func DecodeCSV(r io.Reader) ([]casfolio.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colDate, colAmount, colType, colISIN} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var txns []casfolio.Transaction
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		isin := field(record, colISIN)
		if isin == "" {
			continue
		}
		on, err := date.Parse(field(record, colDate))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		amount, err := parseStatementNumber(field(record, colAmount))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, field(record, colAmount), err)
		}
		units := decimal.Zero
		if s := field(record, colUnits); s != "" {
			if u, err := parseStatementNumber(s); err == nil {
				units = u
			}
		}
		txns = append(txns, casfolio.Transaction{
			Date:        on,
			Amount:      amount.Abs(),
			Units:       units,
			ISIN:        isin,
			Scheme:      field(record, colScheme),
			Type:        casfolio.TransactionType(field(record, colType)),
			Description: field(record, colDescription),
		})
	}
	if len(txns) == 0 {
		return nil, ErrNoTransactions
	}
	return txns, nil
}
