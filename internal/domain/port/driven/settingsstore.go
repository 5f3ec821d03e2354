package driven

import (
	"context"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// SettingsStore defines the driven port for operator preferences.
type SettingsStore interface {
	// Save replaces the stored settings in one atomic write.
	Save(ctx context.Context, settings model.Settings) error

	// Load returns the stored settings, or defaults when nothing is stored.
	Load(ctx context.Context) (model.Settings, error)
}
