package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// #region config
// Config is the runtime configuration shared by the server and the CLI.
type Config struct {
	DBPath         string    // sqlite file holding the case snapshot and run log
	HTTPAddr       string    // e.g. ":8080"
	GRPCAddr       string    // e.g. ":50051"
	CatalogPath    string    // optional YAML catalog; empty means the compiled default
	AsOf           time.Time // reference date for day counts
	EscalationCap  int
	EscalationSeed string
}

// DefaultConfig returns the configuration used when no environment is set.
// AsOf is today's date in UTC.
func DefaultConfig() Config {
	return Config{
		DBPath:         "lci.db",
		HTTPAddr:       ":8080",
		GRPCAddr:       ":50051",
		AsOf:           Today(),
		EscalationCap:  12,
		EscalationSeed: "escalations-seed",
	}
}

// #endregion config

// #region load
// Load reads a .env file if one exists, then the LCI_* environment variables.
// Unset variables keep their defaults; malformed ones are errors.
func Load() (Config, error) {
	godotenv.Load()

	cfg := DefaultConfig()
	cfg.DBPath = envOr("LCI_DB", cfg.DBPath)
	cfg.HTTPAddr = envOr("LCI_HTTP_ADDR", cfg.HTTPAddr)
	cfg.GRPCAddr = envOr("LCI_GRPC_ADDR", cfg.GRPCAddr)
	cfg.CatalogPath = os.Getenv("LCI_CATALOG")

	if v := os.Getenv("LCI_AS_OF"); v != "" {
		asOf, err := ParseAsOf(v)
		if err != nil {
			return Config{}, err
		}
		cfg.AsOf = asOf
	}

	if v := os.Getenv("LCI_ESCALATION_CAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("LCI_ESCALATION_CAP: want a positive integer, got %q", v)
		}
		cfg.EscalationCap = n
	}
	return cfg, nil
}

// #endregion load

// #region helpers
// ParseAsOf parses a YYYY-MM-DD reference date as midnight UTC.
func ParseAsOf(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("as-of date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
