package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// ErrMissingCredential is returned when an operation needs a stored credential
// for a platform and none exists.
var ErrMissingCredential = errors.New("no credential stored for platform")

// CredentialVault defines the driven port for encrypted API credential
// persistence. The adapter layer is responsible for encryption; this interface
// operates on plaintext values at the domain boundary.
type CredentialVault interface {
	// Save encrypts every value and replaces the whole stored map in one
	// atomic write. Nothing is persisted on error.
	Save(ctx context.Context, credentials map[model.Platform]string) error

	// Load returns the decrypted credential map. A missing file yields an
	// empty map. Entries that fail to decrypt are dropped, not fatal.
	Load(ctx context.Context) (map[model.Platform]string, error)

	// Get returns the decrypted credential for one platform. Returns
	// ErrMissingCredential if the platform has no stored credential.
	Get(ctx context.Context, platform model.Platform) (string, error)
}
