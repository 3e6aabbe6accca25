package server

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config carries everything the HTTP server needs, resolved once at startup
// and passed down; no component reads the environment after this.
type Config struct {
	Addr string
	// Reference data files.
	NAVFile        string
	SchemeFile     string
	AssetClassFile string
	// SessionTTLMinutes bounds how long a parsed portfolio is kept in memory.
	SessionTTLMinutes int
}

// LoadConfig resolves the configuration from a .env file (when present) and
// the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is the common case outside development.
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := Config{
		Addr:              getenv("CASFOLIO_ADDR", ":8080"),
		NAVFile:           getenv("CASFOLIO_NAV_FILE", "reference_data/navall.csv"),
		SchemeFile:        getenv("CASFOLIO_SCHEME_FILE", "reference_data/scheme_categories.csv"),
		AssetClassFile:    getenv("CASFOLIO_ASSET_CLASS_FILE", "reference_data/asset_classes.csv"),
		SessionTTLMinutes: 120,
	}
	if cfg.NAVFile == "" {
		return Config{}, fmt.Errorf("CASFOLIO_NAV_FILE must not be empty")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
