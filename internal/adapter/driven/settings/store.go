// Package settings persists operator preferences as a plaintext JSON file.
// Credentials never pass through here; they belong to the credential vault.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SettingsStore = (*Store)(nil)

type settingsFile struct {
	SelectedPlatforms map[model.Platform]bool `json:"selected_platforms"`
}

// Store is the JSON-file implementation of the SettingsStore port.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store persisting to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save atomically replaces the stored settings file.
func (s *Store) Save(_ context.Context, settings model.Settings) error {
	data, err := json.MarshalIndent(settingsFile{
		SelectedPlatforms: settings.SelectedPlatforms,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Load returns the stored settings. A missing file yields defaults. Unknown
// platforms in the file are dropped so a stale file cannot smuggle entries
// outside the fixed set.
func (s *Store) Load(_ context.Context) (model.Settings, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var sf settingsFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return model.Settings{}, fmt.Errorf("parse settings: %w", err)
	}

	settings := model.NewSettings()
	for _, p := range model.AllPlatforms() {
		if selected, ok := sf.SelectedPlatforms[p]; ok {
			settings.SelectedPlatforms[p] = selected
		}
	}
	return settings, nil
}
