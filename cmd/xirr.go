package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/date"
)

// xirrCmd holds the flags for the 'xirr' subcommand.
type xirrCmd struct {
	isin string
}

func (*xirrCmd) Name() string { return "xirr" }
func (*xirrCmd) Synopsis() string {
	return "compute the annualized money-weighted return of the portfolio"
}
func (*xirrCmd) Usage() string {
	return `casfolio -statement <file> xirr [-isin <isin>]

  Computes the XIRR of the whole portfolio, or of a single fund when an ISIN
  is given. Open positions enter the series as a liquidation at today's
  market value.

Usage Examples:
$ casfolio -statement cas.pdf -password secret xirr
$ casfolio -statement cas.pdf -password secret xirr -isin INF846K01EW2

`
}

func (c *xirrCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "Restrict the computation to this fund's ISIN")
}

func (c *xirrCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, _, err := LoadPortfolio(date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	flows := p.Cashflows
	if c.isin != "" {
		flows = casfolio.FilterTransactionsByISIN(flows, c.isin)
	}
	rate, err := casfolio.GetXIRR(flows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing XIRR: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("XIRR: %s\n", rate)
	return subcommands.ExitSuccess
}
