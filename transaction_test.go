package casfolio

import (
	"testing"

	"github.com/knatarajan-dev/casfolio/date"
	"github.com/shopspring/decimal"
)

func TestSignAmount(t *testing.T) {
	testCases := []struct {
		typ    TransactionType
		amount float64
		want   float64
		wantOK bool
	}{
		{TypePurchase, 1000, -1000, true},
		{TypePurchaseSIP, 500, -500, true},
		{TypeDividendReinvest, 42.5, -42.5, true},
		{TypeSwitchIn, 300, -300, true},
		{TypeSwitchInMerger, 300, -300, true},
		{TypeSTTTax, 1.5, -1.5, true},
		{TypeStampDutyTax, 0.5, -0.5, true},
		{TypeTDSTax, 10, -10, true},
		{TypeRedemption, 2000, 2000, true},
		{TypeDividendPayout, 55, 55, true},
		{TypeSwitchOut, 300, 300, true},
		{TypeSwitchOutMerger, 300, 300, true},
		{TypeReversal, 100, 100, true},
		{TypeSegregation, 999, 0, true},
		{TypeMisc, 999, 0, true},
		{TypeUnknown, 999, 0, true},
		// Signs are derived from the magnitude, never trusted from input.
		{TypePurchase, -1000, -1000, true},
		{TypeRedemption, -2000, 2000, true},
		// Outside the vocabulary.
		{TransactionType("BONUS"), 100, 0, false},
	}
	for _, tc := range testCases {
		t.Run(string(tc.typ), func(t *testing.T) {
			got, ok := SignAmount(tc.typ, dec(tc.amount))
			if ok != tc.wantOK {
				t.Fatalf("SignAmount(%s, %v) ok = %v, want %v", tc.typ, tc.amount, ok, tc.wantOK)
			}
			if !got.Equal(dec(tc.want)) {
				t.Errorf("SignAmount(%s, %v) = %s, want %v", tc.typ, tc.amount, got, tc.want)
			}
		})
	}
}

func TestSignAmountIsPure(t *testing.T) {
	// Classifying the same input twice must yield the identical output.
	for i := 0; i < 2; i++ {
		got, ok := SignAmount(TypePurchase, dec(1234.56))
		if !ok || !got.Equal(dec(-1234.56)) {
			t.Fatalf("call %d: SignAmount = %s, %v", i, got, ok)
		}
	}
}

func TestClassify(t *testing.T) {
	raw := []Transaction{
		tx("2023-01-01", TypePurchase, "INF1", "Fund A", 1000, 10),
		tx("2023-02-01", TypeRedemption, "INF1", "Fund A", 500, -5),
		tx("2023-03-01", TransactionType("BONUS"), "INF1", "Fund A", 77, 0),
	}
	got := Classify(raw)
	if len(got) != 3 {
		t.Fatalf("Classify returned %d rows, want 3", len(got))
	}
	if !got[0].Amount.Equal(dec(-1000)) {
		t.Errorf("purchase amount = %s, want -1000", got[0].Amount)
	}
	if !got[1].Amount.Equal(dec(500)) {
		t.Errorf("redemption amount = %s, want 500", got[1].Amount)
	}
	// Unrecognized types are neutral, the parse does not fail.
	if !got[2].Amount.Equal(decimal.Zero) {
		t.Errorf("unrecognized type amount = %s, want 0", got[2].Amount)
	}
	// The input slice must be left untouched.
	if !raw[0].Amount.Equal(dec(1000)) {
		t.Errorf("Classify mutated its input: %s", raw[0].Amount)
	}
}

func TestClassifyKeepsHoldingsRows(t *testing.T) {
	raw := []Transaction{
		{Date: date.MustParse("2024-01-01"), Amount: dec(4500), ISIN: "INF1", Type: TypeHoldings},
	}
	got := Classify(raw)
	if !got[0].Amount.Equal(dec(4500)) {
		t.Errorf("HOLDINGS amount = %s, want 4500 untouched", got[0].Amount)
	}
}
