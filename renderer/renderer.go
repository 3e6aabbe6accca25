// Package renderer builds markdown views of the derived portfolio artifacts,
// for the CLI and for the agent's context window.
package renderer

import (
	"fmt"
	"strings"

	"github.com/knatarajan-dev/casfolio"
)

// reportingCurrency is the display currency. Statements in scope are
// single-currency Indian CAS files.
const reportingCurrency = "INR"

func inr(v float64) casfolio.Money { return casfolio.M(v, reportingCurrency) }

// HoldingsMarkdown renders the current and past holdings of a portfolio.
func HoldingsMarkdown(p *casfolio.Portfolio) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings on %s\n\n", p.AsOf)

	if len(p.CurrentHoldings) > 0 {
		fmt.Fprintln(&b, "## Current")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Scheme | ISIN | Units | Invested | Latest NAV | Market Value |")
		fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
		for _, h := range p.CurrentHoldings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
				h.Scheme,
				h.ISIN,
				h.Units.StringFixed(3),
				inr(h.Amount.Neg().InexactFloat64()),
				h.LatestNAV.StringFixed(4),
				inr(h.MarketValue.InexactFloat64()),
			)
		}
		fmt.Fprintf(&b, "\nTotal market value: %s\n", inr(casfolio.TotalMarketValue(p.CurrentHoldings).InexactFloat64()))
	} else {
		fmt.Fprintln(&b, "No current holdings.")
	}

	if len(p.PastHoldings) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "## Past")
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "| Scheme | ISIN |")
		fmt.Fprintln(&b, "|:---|:---|")
		for _, h := range p.PastHoldings {
			fmt.Fprintf(&b, "| %s | %s |\n", h.Scheme, h.ISIN)
		}
	}
	return b.String()
}

// AssetClassMarkdown renders the asset-class summary table.
func AssetClassMarkdown(summary []casfolio.AssetClassShare) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Asset classes\n\n")
	fmt.Fprintln(&b, "| Asset class | Market Value | Share |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, s := range summary {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", s.AssetClass, inr(s.MarketValue), s.Percent)
	}
	return b.String()
}

// TransactionsMarkdown renders a classified transaction log.
func TransactionsMarkdown(txns []casfolio.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")
	if len(txns) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Date | Type | Scheme | Units | Amount |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|")
	for _, tx := range txns {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			tx.Date,
			tx.Type,
			tx.Scheme,
			tx.Units.StringFixed(3),
			inr(tx.Amount.InexactFloat64()),
		)
	}
	return b.String()
}
