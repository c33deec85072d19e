// Package config loads autogaap.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "autogaap.yaml"

// Config represents the top-level autogaap.yaml configuration.
type Config struct {
	DataDir string       `yaml:"data_dir"`
	Ledger  LedgerConfig `yaml:"ledger"`
	Store   StoreConfig  `yaml:"store"`
	Report  ReportConfig `yaml:"report"`
	Server  ServerConfig `yaml:"server"`
	Geo     GeoConfig    `yaml:"geo"`
}

// LedgerConfig says where journal entries come from. Sources are tried in
// order: the store, the CSV journal, the fallback file, the fallback URL.
type LedgerConfig struct {
	StorageKey   string `yaml:"storage_key"`
	CSVPath      string `yaml:"csv_path,omitempty"`
	FallbackFile string `yaml:"fallback_file,omitempty"`
	FallbackURL  string `yaml:"fallback_url,omitempty"`
	EntriesPath  string `yaml:"entries_path"` // JSONPath to the entries array
}

// StoreConfig locates the key-value database.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to <data_dir>/autogaap.db
}

// ReportConfig controls presentation.
type ReportConfig struct {
	Currency    string `yaml:"currency"`
	Tolerance   string `yaml:"tolerance"` // decimal text, e.g. "0.01"
	TopAccounts int    `yaml:"top_accounts"`
}

// ServerConfig controls `autogaap serve`.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// GeoConfig points the geolocation client at its services.
type GeoConfig struct {
	IPInfoURL   string        `yaml:"ipinfo_url"`
	IPInfoToken string        `yaml:"ipinfo_token,omitempty"`
	IPAPIURL    string        `yaml:"ipapi_url"`
	LogEndpoint string        `yaml:"log_endpoint"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Load reads an autogaap.yaml file from disk. Settings missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Ledger: LedgerConfig{
			StorageKey:   "journalEntries",
			FallbackFile: filepath.Join("data", "journal.json"),
			EntriesPath:  "$.journalEntries",
		},
		Report: ReportConfig{
			Currency:    "USD",
			Tolerance:   "0.01",
			TopAccounts: 5,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Geo: GeoConfig{
			IPInfoURL:   "https://ipinfo.io",
			IPAPIURL:    "http://ip-api.com",
			LogEndpoint: "http://localhost:8080/log-location",
			Timeout:     10 * time.Second,
		},
	}
}

// LoadEnv loads a .env file into the process environment. With no path, a
// .env in the working directory is loaded if there is one.
func LoadEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		return nil
	}
	_ = godotenv.Load()
	return nil
}

// Resolve makes relative file paths relative to base, normally the
// directory holding the config file. URLs are left alone.
func (c *Config) Resolve(base string) {
	for _, p := range []*string{&c.DataDir, &c.Store.Path, &c.Ledger.CSVPath, &c.Ledger.FallbackFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// StorePath returns the key-value database path.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(c.DataDir, "autogaap.db")
}

// ToleranceDecimal returns the balance tolerance. Call Validate first; an
// unparseable value yields zero.
func (c *Config) ToleranceDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(strings.TrimSpace(c.Report.Tolerance))
	return d
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must be set"))
	}
	if strings.TrimSpace(c.Ledger.StorageKey) == "" {
		errs = append(errs, errors.New("ledger.storage_key must be set"))
	}
	if c.Ledger.EntriesPath != "" && !strings.HasPrefix(c.Ledger.EntriesPath, "$") {
		errs = append(errs, fmt.Errorf("ledger.entries_path %q must be a JSONPath starting with $", c.Ledger.EntriesPath))
	}
	if money.GetCurrency(strings.ToUpper(c.Report.Currency)) == nil {
		errs = append(errs, fmt.Errorf("report.currency %q is not a known currency code", c.Report.Currency))
	}
	if tol, err := decimal.NewFromString(strings.TrimSpace(c.Report.Tolerance)); err != nil {
		errs = append(errs, fmt.Errorf("report.tolerance %q is not a number", c.Report.Tolerance))
	} else if !tol.IsPositive() {
		errs = append(errs, fmt.Errorf("report.tolerance %q must be positive", c.Report.Tolerance))
	}
	if c.Report.TopAccounts <= 0 {
		errs = append(errs, fmt.Errorf("report.top_accounts must be positive, got %d", c.Report.TopAccounts))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must be set"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}
	if c.Geo.Timeout <= 0 {
		errs = append(errs, errors.New("geo.timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
