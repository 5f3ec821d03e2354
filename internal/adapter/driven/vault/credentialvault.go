package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CredentialVault = (*CredentialVault)(nil)

// CredentialVault is the JSON-file implementation of the CredentialVault
// port. The persisted file maps platform identifier to ciphertext; values are
// encrypted before write and decrypted after read, so callers only ever see
// plaintext.
type CredentialVault struct {
	path    string
	secrets driven.SecretStore
	logger  *slog.Logger

	mu sync.Mutex // serializes writers; readers rely on atomic rename
}

// NewCredentialVault creates a CredentialVault persisting to path.
func NewCredentialVault(path string, secrets driven.SecretStore, logger *slog.Logger) *CredentialVault {
	return &CredentialVault{path: path, secrets: secrets, logger: logger}
}

// Save encrypts every credential and atomically replaces the stored file.
// Nothing is persisted if any value fails to encrypt.
func (v *CredentialVault) Save(_ context.Context, credentials map[model.Platform]string) error {
	encrypted := make(map[model.Platform]string, len(credentials))
	for platform, plaintext := range credentials {
		if plaintext == "" {
			continue
		}
		ciphertext, err := v.secrets.Encrypt(plaintext)
		if err != nil {
			return fmt.Errorf("encrypt credential for %s: %w", platform, err)
		}
		encrypted[platform] = ciphertext
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return writeJSONAtomic(v.path, encrypted)
}

// Load reads the stored file and decrypts each value. A missing file yields
// an empty map. Entries that fail to decrypt are dropped with a warning so
// one corrupt value cannot block access to the rest.
func (v *CredentialVault) Load(_ context.Context) (map[model.Platform]string, error) {
	var encrypted map[model.Platform]string
	found, err := readJSON(v.path, &encrypted)
	if err != nil {
		return nil, err
	}

	credentials := make(map[model.Platform]string)
	if !found {
		return credentials, nil
	}

	for platform, ciphertext := range encrypted {
		plaintext, err := v.secrets.Decrypt(ciphertext)
		if err != nil {
			v.logger.Warn("dropping undecryptable credential", "platform", platform, "error", err)
			continue
		}
		credentials[platform] = plaintext
	}
	return credentials, nil
}

// Get returns the decrypted credential for one platform, or
// driven.ErrMissingCredential when none is stored (or it failed to decrypt).
func (v *CredentialVault) Get(ctx context.Context, platform model.Platform) (string, error) {
	credentials, err := v.Load(ctx)
	if err != nil {
		return "", err
	}
	plaintext, ok := credentials[platform]
	if !ok {
		return "", fmt.Errorf("%w: %s", driven.ErrMissingCredential, platform)
	}
	return plaintext, nil
}
