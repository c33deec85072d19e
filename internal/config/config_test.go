package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Ledger.FallbackURL = "https://example.com/data/journal.json"
	cfg.Geo.IPInfoToken = "tok"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "journalEntries", cfg.Ledger.StorageKey)
	assert.Equal(t, "$.journalEntries", cfg.Ledger.EntriesPath)
	assert.Equal(t, "USD", cfg.Report.Currency)
	assert.Equal(t, "0.01", cfg.ToleranceDecimal().String())
	assert.Equal(t, 5, cfg.Report.TopAccounts)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, filepath.Join("data", "autogaap.db"), cfg.StorePath())
	assert.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("report:\n  currency: EUR\nserver:\n  shutdown_timeout: 3s\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", cfg.Report.Currency)
	assert.Equal(t, "0.01", cfg.Report.Tolerance)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("report: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "data_dir: data")
	assert.Contains(t, contents, "storage_key: journalEntries")
	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "timeout: 10s")
	assert.NotContains(t, contents, "ipinfo_token")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Report.Currency = "ZZZ"
	cfg.Report.Tolerance = "-1"
	cfg.Report.TopAccounts = 0
	cfg.Ledger.EntriesPath = "journalEntries"
	cfg.Server.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"report.currency", "report.tolerance", "report.top_accounts", "ledger.entries_path", "server.addr"} {
		assert.Contains(t, err.Error(), want)
	}

	cfg = Default()
	cfg.Report.Tolerance = "abc"
	assert.ErrorContains(t, cfg.Validate(), "is not a number")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"AUTOGAAP_DATA_DIR":     "/srv/autogaap",
		"AUTOGAAP_CURRENCY":     "GBP",
		"AUTOGAAP_TOP_ACCOUNTS": "3",
		"AUTOGAAP_GEO_TIMEOUT":  "2s",
		"IPINFO_TOKEN":          "plain",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "/srv/autogaap", cfg.DataDir)
	assert.Equal(t, filepath.Join("/srv/autogaap", "autogaap.db"), cfg.StorePath())
	assert.Equal(t, "GBP", cfg.Report.Currency)
	assert.Equal(t, 3, cfg.Report.TopAccounts)
	assert.Equal(t, 2*time.Second, cfg.Geo.Timeout)
	assert.Equal(t, "plain", cfg.Geo.IPInfoToken)

	env["AUTOGAAP_IPINFO_TOKEN"] = "prefixed"
	require.NoError(t, cfg.applyEnv(lookup))
	assert.Equal(t, "prefixed", cfg.Geo.IPInfoToken)

	env["AUTOGAAP_TOP_ACCOUNTS"] = "many"
	assert.Error(t, cfg.applyEnv(lookup))
}

func TestApplyEnv_Process(t *testing.T) {
	t.Setenv("AUTOGAAP_ADDR", "127.0.0.1:9999")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("AUTOGAAP_TEST_LOADENV=from-file\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AUTOGAAP_TEST_LOADENV") })

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "from-file", os.Getenv("AUTOGAAP_TEST_LOADENV"))

	assert.Error(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Ledger.CSVPath = "/abs/journal.csv"
	cfg.Ledger.FallbackURL = "https://example.com/journal.json"
	cfg.Resolve("/srv/books")

	assert.Equal(t, filepath.Join("/srv/books", "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join("/srv/books", "data", "journal.json"), cfg.Ledger.FallbackFile)
	assert.Equal(t, "/abs/journal.csv", cfg.Ledger.CSVPath)
	assert.Equal(t, "https://example.com/journal.json", cfg.Ledger.FallbackURL)
	assert.Equal(t, filepath.Join("/srv/books", "data", "autogaap.db"), cfg.StorePath())
}
