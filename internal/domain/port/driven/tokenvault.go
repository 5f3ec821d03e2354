package driven

import (
	"context"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// TokenVault defines the driven port for encrypted authorization token
// persistence. Only the token value is encrypted at rest; expiry and user
// info are stored plaintext so the file stays human-inspectable.
type TokenVault interface {
	// Save encrypts each token value and replaces the whole stored map in
	// one atomic write. Nothing is persisted on error.
	Save(ctx context.Context, tokens map[model.Platform]model.Token) error

	// Load returns the decrypted token map. A missing file yields an empty
	// map. Entries whose token fails to decrypt are dropped, not fatal.
	Load(ctx context.Context) (map[model.Platform]model.Token, error)

	// Status derives the authorization state for one platform: no entry
	// means unauthorized; a past expiry means unauthorized and needing
	// refresh; a nil or future expiry means authorized.
	Status(ctx context.Context, platform model.Platform) (model.AuthStatus, error)
}
