package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/knatarajan-dev/casfolio/renderer"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date string
}

func (*holdingsCmd) Name() string { return "holdings" }
func (*holdingsCmd) Synopsis() string {
	return "display current and past holdings derived from the statement"
}
func (*holdingsCmd) Usage() string {
	return `casfolio -statement <file> holdings [-d <date>]

  Displays the holdings derived from the statement's transactions: open
  positions valued at the latest NAV, and funds that were fully exited.

Usage Examples:
$ casfolio -statement cas.pdf -password secret holdings

`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Valuation date for the synthetic liquidation row")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, _, err := LoadPortfolio(on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingsMarkdown(p))
	return subcommands.ExitSuccess
}
