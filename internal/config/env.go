package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "AUTOGAAP_"

// ApplyEnv overrides settings from AUTOGAAP_* environment variables. The
// ipinfo token is also read from IPINFO_TOKEN.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(os.LookupEnv)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{"DATA_DIR", &c.DataDir},
		{"STORAGE_KEY", &c.Ledger.StorageKey},
		{"CSV_PATH", &c.Ledger.CSVPath},
		{"FALLBACK_FILE", &c.Ledger.FallbackFile},
		{"FALLBACK_URL", &c.Ledger.FallbackURL},
		{"ENTRIES_PATH", &c.Ledger.EntriesPath},
		{"DB_PATH", &c.Store.Path},
		{"CURRENCY", &c.Report.Currency},
		{"TOLERANCE", &c.Report.Tolerance},
		{"ADDR", &c.Server.Addr},
		{"IPINFO_URL", &c.Geo.IPInfoURL},
		{"IPAPI_URL", &c.Geo.IPAPIURL},
		{"LOCATION_ENDPOINT", &c.Geo.LogEndpoint},
		{"IPINFO_TOKEN", &c.Geo.IPInfoToken},
	}
	// The prefixed variable, applied below, wins.
	if v, ok := lookup("IPINFO_TOKEN"); ok {
		c.Geo.IPInfoToken = v
	}

	for _, s := range strs {
		if v, ok := lookup(EnvPrefix + s.key); ok {
			*s.dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "TOP_ACCOUNTS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sTOP_ACCOUNTS: %w", EnvPrefix, err)
		}
		c.Report.TopAccounts = n
	}
	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout},
		{"GEO_TIMEOUT", &c.Geo.Timeout},
	}
	for _, d := range durations {
		v, ok := lookup(EnvPrefix + d.key)
		if !ok {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}
