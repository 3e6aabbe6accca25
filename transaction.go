package casfolio

import (
	"encoding/json"
	"log"

	"github.com/knatarajan-dev/casfolio/date"
	"github.com/shopspring/decimal"
)

// TransactionType is a typed string for the transaction kinds found in a
// consolidated account statement.
type TransactionType string

// Transaction types as reported by CAS statements.
const (
	TypePurchase         TransactionType = "PURCHASE"
	TypePurchaseSIP      TransactionType = "PURCHASE_SIP"
	TypeRedemption       TransactionType = "REDEMPTION"
	TypeDividendPayout   TransactionType = "DIVIDEND_PAYOUT"
	TypeDividendReinvest TransactionType = "DIVIDEND_REINVEST"
	TypeSwitchIn         TransactionType = "SWITCH_IN"
	TypeSwitchInMerger   TransactionType = "SWITCH_IN_MERGER"
	TypeSwitchOut        TransactionType = "SWITCH_OUT"
	TypeSwitchOutMerger  TransactionType = "SWITCH_OUT_MERGER"
	TypeReversal         TransactionType = "REVERSAL"
	TypeSTTTax           TransactionType = "STT_TAX"
	TypeStampDutyTax     TransactionType = "STAMP_DUTY_TAX"
	TypeTDSTax           TransactionType = "TDS_TAX"
	TypeSegregation      TransactionType = "SEGREGATION"
	TypeMisc             TransactionType = "MISC"
	TypeUnknown          TransactionType = "UNKNOWN"

	// TypeHoldings marks the synthetic liquidation row appended per current
	// holding by SynthesizeCashflows. It never appears in a statement and is
	// never re-classified.
	TypeHoldings TransactionType = "HOLDINGS"
)

// Direction is the cash direction of a transaction from the investor's
// perspective.
type Direction int

const (
	// Neutral transactions carry no cash impact for return computation.
	Neutral Direction = iota
	// Inflow is money paid out to the investor (redemptions, payouts).
	Inflow
	// Outflow is money invested by the investor (purchases, reinvested
	// dividends, taxes).
	Outflow
)

// Direction returns the cash direction for the transaction type. The second
// return value is false when the type is outside the known vocabulary.
//
// Tax types are classified as outflows under the assumption that they are not
// already netted into the redemption amounts of the statement. That is a
// policy choice, not an accounting fact, and should be validated against real
// statement samples.
func (t TransactionType) Direction() (Direction, bool) {
	switch t {
	case TypeRedemption, TypeDividendPayout, TypeSwitchOut, TypeSwitchOutMerger, TypeReversal, TypeHoldings:
		return Inflow, true
	case TypePurchase, TypePurchaseSIP, TypeDividendReinvest, TypeSwitchIn, TypeSwitchInMerger,
		TypeSTTTax, TypeStampDutyTax, TypeTDSTax:
		return Outflow, true
	case TypeSegregation, TypeMisc, TypeUnknown:
		return Neutral, true
	}
	return Neutral, false
}

// Transaction is a single ledger row derived from a statement.
//
// Amount is an unsigned magnitude as parsed from the statement, and a signed
// cashflow once classified. Raw amounts must never feed a return computation.
type Transaction struct {
	Date        date.Date       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Units       decimal.Decimal `json:"units"` // zero for non-unit events
	ISIN        string          `json:"isin"`
	Scheme      string          `json:"scheme"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description,omitempty"`
}

// SignAmount returns the given magnitude signed according to the type's cash
// direction. It is a pure function of (type, amount). The second return value
// is false when the type is outside the known vocabulary; the amount is then
// zero.
func SignAmount(typ TransactionType, amount decimal.Decimal) (decimal.Decimal, bool) {
	dir, ok := typ.Direction()
	if !ok {
		return decimal.Zero, false
	}
	switch dir {
	case Inflow:
		return amount.Abs(), true
	case Outflow:
		return amount.Abs().Neg(), true
	default:
		return decimal.Zero, true
	}
}

// Classify returns a copy of the ledger with every amount signed by cash
// direction. A type outside the vocabulary is classified neutral (zero) and
// logged; the parse continues. HOLDINGS rows keep their amount untouched.
func Classify(txns []Transaction) []Transaction {
	classified := make([]Transaction, len(txns))
	for i, tx := range txns {
		if tx.Type == TypeHoldings {
			classified[i] = tx
			continue
		}
		signed, ok := SignAmount(tx.Type, tx.Amount)
		if !ok {
			log.Printf("warning: unrecognized transaction type %q on %s (%s), treated as neutral", tx.Type, tx.Date, tx.ISIN)
		}
		tx.Amount = signed
		classified[i] = tx
	}
	return classified
}

// MarshalJSON renders Amount and Units as JSON numbers rather than the
// decimal default of quoted strings, so that agent tool payloads stay plain.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias struct {
		Date        date.Date       `json:"date"`
		Amount      json.Number     `json:"amount"`
		Units       json.Number     `json:"units"`
		ISIN        string          `json:"isin"`
		Scheme      string          `json:"scheme"`
		Type        TransactionType `json:"type"`
		Description string          `json:"description,omitempty"`
	}
	return json.Marshal(alias{
		Date:        t.Date,
		Amount:      json.Number(t.Amount.String()),
		Units:       json.Number(t.Units.String()),
		ISIN:        t.ISIN,
		Scheme:      t.Scheme,
		Type:        t.Type,
		Description: t.Description,
	})
}
