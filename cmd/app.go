// Package cmd implements the CLI application over a parsed account statement.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/knatarajan-dev/casfolio"
	"github.com/knatarajan-dev/casfolio/cas"
	"github.com/knatarajan-dev/casfolio/date"
	"github.com/knatarajan-dev/casfolio/refdata"
)

// Commands lists the subcommands. A main package registers them on its
// commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&holdingsCmd{},
	&xirrCmd{},
	&summaryCmd{},
	&txCmd{},
	&assistCmd{},
	&serveCmd{},
}

// As a CLI application it is very short lived, so globals for the shared
// flags are ok.
var (
	statementFile = flag.String("statement", "", "Path to the account statement (password-protected PDF, or a CSV export)")
	password      = flag.String("password", "", "Password of the statement PDF")
	navFile       = flag.String("nav-file", "reference_data/navall.csv", "Path to the AMFI NAV table (';' separated)")
	schemeFile    = flag.String("scheme-file", "reference_data/scheme_categories.csv", "Path to the ISIN to scheme-category table")
	classFile     = flag.String("class-file", "reference_data/asset_classes.csv", "Path to the category to asset-class table")
)

// DecodeStatement decodes the statement named by the -statement flag into the
// raw transaction ledger.
func DecodeStatement() ([]casfolio.Transaction, error) {
	if *statementFile == "" {
		return nil, fmt.Errorf("no statement given; use -statement")
	}
	f, err := os.Open(*statementFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(*statementFile), ".csv") {
		return cas.DecodeCSV(f)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return cas.Decode(f, info.Size(), *password)
}

// LoadRefdata loads the reference tables named by the global flags. The NAV
// table is required; the category tables are optional and category queries
// fall back to the UNKNOWN class without them.
func LoadRefdata() (*refdata.Table, error) {
	return refdata.Load(*navFile, optionalFile(*schemeFile), optionalFile(*classFile))
}

// optionalFile returns path when the file exists, empty otherwise.
func optionalFile(path string) string {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, reference file %q does not exist, continuing without it", path)
		return ""
	}
	return path
}

// LoadPortfolio decodes the statement, loads the reference data and derives
// the portfolio valued on the given date.
func LoadPortfolio(on date.Date) (*casfolio.Portfolio, *refdata.Table, error) {
	raw, err := DecodeStatement()
	if err != nil {
		return nil, nil, fmt.Errorf("could not decode statement: %w", err)
	}
	ref, err := LoadRefdata()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load reference data: %w", err)
	}
	p, err := casfolio.NewPortfolio(raw, ref, on)
	if err != nil {
		return nil, nil, err
	}
	return p, ref, nil
}
