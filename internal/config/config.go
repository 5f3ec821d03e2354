// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DataDir         string
	KeyPath         string
	CredentialsPath string
	TokensPath      string
	DraftsDir       string
	SettingsPath    string
	HistoryDBPath   string
	ListenAddr      string
	CallTimeout     time.Duration
}

// Load reads configuration from environment variables and returns a validated
// Config. Everything is optional. SIMULPOST_DATA_DIR (default ~/.simulpost)
// anchors all file paths; each path can be overridden individually via
// SIMULPOST_KEY_PATH, SIMULPOST_CREDENTIALS_PATH, SIMULPOST_TOKENS_PATH,
// SIMULPOST_DRAFTS_DIR, SIMULPOST_SETTINGS_PATH and SIMULPOST_HISTORY_DB_PATH.
// SIMULPOST_LISTEN_ADDR defaults to 127.0.0.1:8080 and SIMULPOST_CALL_TIMEOUT
// (the per-platform network call budget) to 30s.
func Load() (*Config, error) {
	dataDir := os.Getenv("SIMULPOST_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("SIMULPOST_DATA_DIR is unset and the home directory could not be resolved: %w", err)
		}
		dataDir = filepath.Join(home, ".simulpost")
	}

	callTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("SIMULPOST_CALL_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SIMULPOST_CALL_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("SIMULPOST_CALL_TIMEOUT must be positive, got %q", v)
		}
		callTimeout = parsed
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("SIMULPOST_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	return &Config{
		DataDir:         dataDir,
		KeyPath:         pathOrDefault("SIMULPOST_KEY_PATH", dataDir, "secret.key"),
		CredentialsPath: pathOrDefault("SIMULPOST_CREDENTIALS_PATH", dataDir, "credentials.json"),
		TokensPath:      pathOrDefault("SIMULPOST_TOKENS_PATH", dataDir, "tokens.json"),
		DraftsDir:       pathOrDefault("SIMULPOST_DRAFTS_DIR", dataDir, "drafts"),
		SettingsPath:    pathOrDefault("SIMULPOST_SETTINGS_PATH", dataDir, "settings.json"),
		HistoryDBPath:   pathOrDefault("SIMULPOST_HISTORY_DB_PATH", dataDir, "history.db"),
		ListenAddr:      listenAddr,
		CallTimeout:     callTimeout,
	}, nil
}

func pathOrDefault(key, dataDir, name string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return filepath.Join(dataDir, name)
}
