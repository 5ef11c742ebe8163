package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthdesk/internal/models"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_DRIVER", "POSTGRES_URL", "SQLITE_PATH", "LOG_LEVEL", "FEE_RATE", "TAX_RATE", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wealthdesk.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.True(t, cfg.Rates().Fee.Equal(decimal.RequireFromString("0.001")))
	assert.True(t, cfg.Rates().Tax.Equal(decimal.RequireFromString("0.15")))
	assert.Equal(t, logrus.InfoLevel, cfg.Logger().GetLevel())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
log_level = "debug"

[server]
port = 9090

[store]
driver = "sqlite"
sqlite_path = "/tmp/w.db"

[ledger]
fee_rate = 0.002
tax_rate = 0.2
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7070")
	t.Setenv("TAX_RATE", "0.3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/w.db", cfg.Store.SQLitePath)
	assert.True(t, cfg.Rates().Fee.Equal(decimal.RequireFromString("0.002")))
	assert.True(t, cfg.Rates().Tax.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, logrus.DebugLevel, cfg.Logger().GetLevel())
}

func TestLoad_CollectsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PORT", "abc")
	t.Setenv("FEE_RATE", "-0.1")
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := Load("")
	require.ErrorIs(t, err, models.ErrConfiguration)
	for _, want := range []string{"POSTGRES_URL", "invalid PORT", "LOG_LEVEL", "negative"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoad_UnknownDriverAndBadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load("")
	assert.ErrorIs(t, err, models.ErrConfiguration)

	clearEnv(t)
	_, err = Load(writeFile(t, "[server\nport ="))
	assert.ErrorIs(t, err, models.ErrConfiguration)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
