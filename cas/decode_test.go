package cas

import (
	"errors"
	"strings"
	"testing"

	"github.com/knatarajan-dev/casfolio"
	"github.com/shopspring/decimal"
)

const statementText = `Consolidated Account Statement
01-Jan-2023 To 31-Dec-2023

B123G-Axis Bluechip Fund - Direct Growth - ISIN: INF846K01EW2 (Advisor: DIRECT)
Folio No: 91000000000 / 0
02-Jan-2023 Purchase - Systematic 1,000.00 23.456 42.6300 23.456
15-Mar-2023 Purchase 5,000.00 115.234 43.3900 138.690
15-Mar-2023 *** Stamp Duty *** 0.25
20-Jun-2023 Redemption (2,000.00) (44.123) 45.3200 94.567
20-Jun-2023 *** STT Paid *** 0.02

X99-HDFC Liquid Fund - Growth - ISIN: INF179K01VY8
05-Feb-2023 Purchase 10,000.00 2.345 4264.8800 2.345
`

func TestParseText(t *testing.T) {
	txns, err := ParseText(statementText)
	if err != nil {
		t.Fatalf("ParseText: %v", err)
	}
	if len(txns) != 6 {
		t.Fatalf("got %d transactions, want 6: %+v", len(txns), txns)
	}

	first := txns[0]
	if first.ISIN != "INF846K01EW2" {
		t.Errorf("ISIN = %s, want INF846K01EW2", first.ISIN)
	}
	if !strings.Contains(first.Scheme, "Axis Bluechip Fund") {
		t.Errorf("scheme = %q", first.Scheme)
	}
	if first.Type != casfolio.TypePurchaseSIP {
		t.Errorf("type = %s, want PURCHASE_SIP", first.Type)
	}
	if first.Date.String() != "2023-01-02" {
		t.Errorf("date = %s, want 2023-01-02", first.Date)
	}
	if !first.Amount.Equal(decimal.NewFromFloat(1000)) {
		t.Errorf("amount = %s, want 1000 (unsigned)", first.Amount)
	}
	if !first.Units.Equal(decimal.NewFromFloat(23.456)) {
		t.Errorf("units = %s, want 23.456", first.Units)
	}

	// Tax rows attach to the enclosing scheme and carry no units.
	stamp := txns[2]
	if stamp.Type != casfolio.TypeStampDutyTax || !stamp.Units.IsZero() {
		t.Errorf("stamp duty row = %+v", stamp)
	}

	// Redemption units are negative (statement prints them in parentheses),
	// the amount stays an unsigned magnitude.
	redemption := txns[3]
	if redemption.Type != casfolio.TypeRedemption {
		t.Errorf("type = %s, want REDEMPTION", redemption.Type)
	}
	if !redemption.Units.Equal(decimal.NewFromFloat(-44.123)) {
		t.Errorf("redemption units = %s, want -44.123", redemption.Units)
	}
	if !redemption.Amount.Equal(decimal.NewFromFloat(2000)) {
		t.Errorf("redemption amount = %s, want 2000 (unsigned)", redemption.Amount)
	}

	// The second scheme section starts a new ISIN context.
	last := txns[5]
	if last.ISIN != "INF179K01VY8" || last.Type != casfolio.TypePurchase {
		t.Errorf("last = %+v", last)
	}
}

func TestParseTextNoTransactions(t *testing.T) {
	_, err := ParseText("Consolidated Account Statement\nno rows here\n")
	if !errors.Is(err, ErrNoTransactions) {
		t.Errorf("error = %v, want ErrNoTransactions", err)
	}
}

func TestTypeOf(t *testing.T) {
	testCases := []struct {
		description string
		want        casfolio.TransactionType
	}{
		{"Purchase - Systematic Investment", casfolio.TypePurchaseSIP},
		{"SIP Purchase (BSE)", casfolio.TypePurchaseSIP},
		{"Purchase", casfolio.TypePurchase},
		{"Subscription", casfolio.TypePurchase},
		{"Redemption", casfolio.TypeRedemption},
		{"Switch Out - To Liquid Fund", casfolio.TypeSwitchOut},
		{"Switch Out - Merger", casfolio.TypeSwitchOutMerger},
		{"Switch In - From Equity Fund", casfolio.TypeSwitchIn},
		{"IDCW Reinvestment", casfolio.TypeDividendReinvest},
		{"Dividend Payout", casfolio.TypeDividendPayout},
		{"*** STT Paid ***", casfolio.TypeSTTTax},
		{"*** Stamp Duty ***", casfolio.TypeStampDutyTax},
		{"TDS on Dividend", casfolio.TypeTDSTax},
		{"Redemption Reversal", casfolio.TypeReversal},
		{"Creation of segregated portfolio", casfolio.TypeSegregation},
		{"Address updated", casfolio.TypeUnknown},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := typeOf(tc.description); got != tc.want {
				t.Errorf("typeOf(%q) = %s, want %s", tc.description, got, tc.want)
			}
		})
	}
}

const csvFixture = `date,description,amount,units,nav,balance,type,dividend_rate,scheme,amc,folio,isin
2023-01-02,Purchase - Systematic,1000.00,23.456,42.63,23.456,PURCHASE_SIP,,Axis Bluechip Fund,Axis,91000/0,INF846K01EW2
2023-06-20,Redemption,2000.00,-44.123,45.32,94.567,REDEMPTION,,Axis Bluechip Fund,Axis,91000/0,INF846K01EW2
2023-06-20,*** STT Paid ***,0.02,,,,STT_TAX,,Axis Bluechip Fund,Axis,91000/0,INF846K01EW2
`

func TestDecodeCSV(t *testing.T) {
	txns, err := DecodeCSV(strings.NewReader(csvFixture))
	if err != nil {
		t.Fatalf("DecodeCSV: %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txns))
	}
	if txns[0].Type != casfolio.TypePurchaseSIP || txns[0].ISIN != "INF846K01EW2" {
		t.Errorf("txns[0] = %+v", txns[0])
	}
	if !txns[1].Units.Equal(decimal.NewFromFloat(-44.123)) {
		t.Errorf("units = %s, want -44.123", txns[1].Units)
	}
	// Raw amounts are unsigned magnitudes.
	if !txns[1].Amount.Equal(decimal.NewFromFloat(2000)) {
		t.Errorf("amount = %s, want 2000", txns[1].Amount)
	}
	if !txns[2].Units.IsZero() {
		t.Errorf("tax row units = %s, want 0", txns[2].Units)
	}
}

func TestDecodeCSVMissingColumn(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader("date,amount,type\n2023-01-02,100,PURCHASE\n"))
	if err == nil || !strings.Contains(err.Error(), "isin") {
		t.Errorf("error = %v, want missing column isin", err)
	}
}
