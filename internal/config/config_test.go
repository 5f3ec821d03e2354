package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every SIMULPOST_ env var that Load() reads.
var allConfigKeys = []string{
	"SIMULPOST_DATA_DIR",
	"SIMULPOST_KEY_PATH",
	"SIMULPOST_CREDENTIALS_PATH",
	"SIMULPOST_TOKENS_PATH",
	"SIMULPOST_DRAFTS_DIR",
	"SIMULPOST_SETTINGS_PATH",
	"SIMULPOST_HISTORY_DB_PATH",
	"SIMULPOST_LISTEN_ADDR",
	"SIMULPOST_CALL_TIMEOUT",
}

// isolateConfigEnv saves and unsets all SIMULPOST_ env vars so tests don't
// inherit values from the host environment. t.Cleanup restores original
// values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SIMULPOST_DATA_DIR", "/tmp/simulpost")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/simulpost", cfg.DataDir)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "secret.key"), cfg.KeyPath)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "credentials.json"), cfg.CredentialsPath)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "tokens.json"), cfg.TokensPath)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "drafts"), cfg.DraftsDir)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "settings.json"), cfg.SettingsPath)
	assert.Equal(t, filepath.Join("/tmp/simulpost", "history.db"), cfg.HistoryDBPath)
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
}

func TestLoad_DataDirDefaultsToHome(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".simulpost"), cfg.DataDir)
}

func TestLoad_PathOverrides(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SIMULPOST_DATA_DIR", "/tmp/simulpost")
	t.Setenv("SIMULPOST_KEY_PATH", "/secure/simulpost.key")
	t.Setenv("SIMULPOST_TOKENS_PATH", "/tmp/elsewhere/tokens.json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/secure/simulpost.key", cfg.KeyPath)
	assert.Equal(t, "/tmp/elsewhere/tokens.json", cfg.TokensPath)
	// non-overridden paths still anchor on the data dir
	assert.Equal(t, filepath.Join("/tmp/simulpost", "credentials.json"), cfg.CredentialsPath)
}

func TestLoad_ListenAddrAndTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SIMULPOST_DATA_DIR", "/tmp/simulpost")
	t.Setenv("SIMULPOST_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("SIMULPOST_CALL_TIMEOUT", "5s")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, 5*time.Second, cfg.CallTimeout)
}

func TestLoad_InvalidCallTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SIMULPOST_DATA_DIR", "/tmp/simulpost")
	t.Setenv("SIMULPOST_CALL_TIMEOUT", "not-a-duration")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIMULPOST_CALL_TIMEOUT")
}

func TestLoad_NegativeCallTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("SIMULPOST_DATA_DIR", "/tmp/simulpost")
	t.Setenv("SIMULPOST_CALL_TIMEOUT", "-10s")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}
