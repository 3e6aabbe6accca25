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

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	isin string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the classified transactions of the statement" }
func (*txCmd) Usage() string {
	return `casfolio -statement <file> tx [-isin <isin>]

  Lists the classified transactions, signed by direction: investments are
  negative outflows, redemptions positive inflows.

`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.isin, "isin", "", "Only list transactions of this fund's ISIN")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, _, err := LoadPortfolio(date.Today())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	txns := p.Transactions
	if c.isin != "" {
		txns = casfolio.FilterTransactionsByISIN(txns, c.isin)
	}

	printMarkdown(renderer.TransactionsMarkdown(txns))
	return subcommands.ExitSuccess
}
