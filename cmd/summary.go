package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/knatarajan-dev/casfolio/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct{}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display the asset-class breakdown of the current holdings"
}
func (*summaryCmd) Usage() string {
	return `casfolio -statement <file> summary

  Displays the market value and percentage share of each asset class.
  Holdings without a scheme-category row land in the UNKNOWN class.

`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, ref, err := LoadPortfolio(date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	summary, err := casfolio.AssetClassSummary(p.CurrentHoldings, ref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing asset classes: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AssetClassMarkdown(summary))
	return subcommands.ExitSuccess
}
