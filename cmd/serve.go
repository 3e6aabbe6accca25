package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/knatarajan-dev/casfolio/refdata"
	"github.com/knatarajan-dev/casfolio/server"
	"google.golang.org/genai"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "run the HTTP API (upload a statement, chat about it)" }
func (*serveCmd) Usage() string {
	return `casfolio serve [-addr <addr>]

  Runs the HTTP API. Configuration comes from the environment (and an
  optional .env file): CASFOLIO_ADDR, CASFOLIO_NAV_FILE,
  CASFOLIO_SCHEME_FILE, CASFOLIO_ASSET_CLASS_FILE. The -addr flag, when
  given, overrides CASFOLIO_ADDR.

`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address, overrides CASFOLIO_ADDR")
}

func (c *serveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := server.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.addr != "" {
		cfg.Addr = c.addr
	}

	ref, err := refdata.Load(cfg.NAVFile, optionalFile(cfg.SchemeFile), optionalFile(cfg.AssetClassFile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference data: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := server.New(cfg, ref, client, log)
	if err := s.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
