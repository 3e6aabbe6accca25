package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// fixturePortfolio is one fund bought for 1000 and worth 1100 a year later.
func fixturePortfolio() *casfolio.Portfolio {
	buy := casfolio.Transaction{
		Date:   date.MustParse("2023-01-01"),
		Amount: decimal.NewFromInt(-1000),
		Units:  decimal.NewFromInt(10),
		ISIN:   "INF846K01EW2",
		Scheme: "Axis Bluechip Fund",
		Type:   casfolio.TypePurchase,
	}
	holding := casfolio.Holding{
		ISIN:        "INF846K01EW2",
		Scheme:      "Axis Bluechip Fund",
		Units:       decimal.NewFromInt(10),
		Amount:      decimal.NewFromInt(-1000),
		LatestNAV:   decimal.NewFromInt(110),
		MarketValue: decimal.NewFromInt(1100),
	}
	txns := []casfolio.Transaction{buy}
	current := []casfolio.Holding{holding}
	return &casfolio.Portfolio{
		Transactions:    txns,
		CurrentHoldings: current,
		PastHoldings:    nil,
		Cashflows:       casfolio.SynthesizeCashflows(txns, current, date.MustParse("2024-01-01")),
		AsOf:            date.MustParse("2024-01-01"),
	}
}

type fixtureCategories struct{}

func (fixtureCategories) Category(isin string) (string, error) {
	if isin == "INF846K01EW2" {
		return "Large Cap", nil
	}
	return "", casfolio.ErrCategoryNotFound
}

func (fixtureCategories) AssetClass(category string) (string, error) {
	if category == "Large Cap" {
		return "Equity", nil
	}
	return "", casfolio.ErrCategoryNotFound
}

func TestXirrFunc(t *testing.T) {
	f := xirrFunc(fixturePortfolio())
	resp := f.Call(context.Background(), "id1", map[string]any{})
	out, ok := resp.Response["output"].(float64)
	if !ok {
		t.Fatalf("response = %+v, want numeric output", resp.Response)
	}
	if out < 9.9 || out > 10.1 {
		t.Errorf("xirr = %v, want ~10 (percent convention)", out)
	}
}

func TestXirrFuncWithISIN(t *testing.T) {
	f := xirrFunc(fixturePortfolio())
	resp := f.Call(context.Background(), "id1", map[string]any{"isin": "INF000000000"})
	if _, ok := resp.Response["error"]; !ok {
		// Filtering to an unknown ISIN leaves no cashflows: a tool error the
		// model can phrase, not a crash.
		t.Errorf("response = %+v, want an error entry", resp.Response)
	}
}

func TestFilterFunc(t *testing.T) {
	f := filterFunc(fixturePortfolio())
	resp := f.Call(context.Background(), "id2", map[string]any{"isin": "INF846K01EW2"})
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("response = %+v, want JSON output", resp.Response)
	}
	if !strings.Contains(out, "INF846K01EW2") || !strings.Contains(out, "PURCHASE") {
		t.Errorf("output = %s", out)
	}
}

func TestSummaryFunc(t *testing.T) {
	f := summaryFunc(fixturePortfolio(), fixtureCategories{})
	resp := f.Call(context.Background(), "id3", nil)
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("response = %+v, want JSON output", resp.Response)
	}
	if !strings.Contains(out, "Equity") || !strings.Contains(out, "100") {
		t.Errorf("output = %s", out)
	}
}

func TestLibraryUnknownFunction(t *testing.T) {
	lib := NewLibrary([]Function{xirrFunc(fixturePortfolio())})
	resp := lib(context.Background(), &genai.FunctionCall{ID: "id4", Name: "no_such_tool"})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("response = %+v, want an error entry", resp.Response)
	}
}
