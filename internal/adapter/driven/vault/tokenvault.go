package vault

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenVault = (*TokenVault)(nil)

// tokenEntry is the on-disk shape of one token record. Only Token is
// ciphertext; expiry and user info stay plaintext so the file remains
// human-inspectable.
type tokenEntry struct {
	Token     string          `json:"token"`
	ExpiresAt *int64          `json:"expires_at"`
	UserInfo  *model.UserInfo `json:"user_info,omitempty"`
}

// TokenVault is the JSON-file implementation of the TokenVault port.
type TokenVault struct {
	path    string
	secrets driven.SecretStore
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex // serializes writers; readers rely on atomic rename
}

// NewTokenVault creates a TokenVault persisting to path.
func NewTokenVault(path string, secrets driven.SecretStore, logger *slog.Logger) *TokenVault {
	return &TokenVault{path: path, secrets: secrets, logger: logger, now: time.Now}
}

// Save encrypts each token value and atomically replaces the stored file.
// Nothing is persisted if any token fails to encrypt.
func (v *TokenVault) Save(_ context.Context, tokens map[model.Platform]model.Token) error {
	entries := make(map[model.Platform]tokenEntry, len(tokens))
	for platform, token := range tokens {
		ciphertext, err := v.secrets.Encrypt(token.Value)
		if err != nil {
			return fmt.Errorf("encrypt token for %s: %w", platform, err)
		}
		entry := tokenEntry{Token: ciphertext, UserInfo: token.UserInfo}
		if token.ExpiresAt != nil {
			unix := token.ExpiresAt.Unix()
			entry.ExpiresAt = &unix
		}
		entries[platform] = entry
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return writeJSONAtomic(v.path, entries)
}

// Load reads the stored file and decrypts each token value. A missing file
// yields an empty map. Entries whose token fails to decrypt are dropped with
// a warning.
func (v *TokenVault) Load(_ context.Context) (map[model.Platform]model.Token, error) {
	var entries map[model.Platform]tokenEntry
	found, err := readJSON(v.path, &entries)
	if err != nil {
		return nil, err
	}

	tokens := make(map[model.Platform]model.Token)
	if !found {
		return tokens, nil
	}

	for platform, entry := range entries {
		plaintext, err := v.secrets.Decrypt(entry.Token)
		if err != nil {
			v.logger.Warn("dropping undecryptable token", "platform", platform, "error", err)
			continue
		}
		token := model.Token{Value: plaintext, UserInfo: entry.UserInfo}
		if entry.ExpiresAt != nil {
			expiry := time.Unix(*entry.ExpiresAt, 0)
			token.ExpiresAt = &expiry
		}
		tokens[platform] = token
	}
	return tokens, nil
}

// Status derives the authorization state for one platform. A dropped
// (undecryptable) entry reads the same as a missing one: unauthorized.
func (v *TokenVault) Status(ctx context.Context, platform model.Platform) (model.AuthStatus, error) {
	tokens, err := v.Load(ctx)
	if err != nil {
		return model.AuthStatus{}, err
	}

	token, ok := tokens[platform]
	if !ok {
		return model.AuthStatus{Authorized: false, NeedsRefresh: true}, nil
	}
	if token.Expired(v.now()) {
		return model.AuthStatus{Authorized: false, NeedsRefresh: true, ExpiresAt: token.ExpiresAt}, nil
	}
	return model.AuthStatus{Authorized: true, NeedsRefresh: false, ExpiresAt: token.ExpiresAt}, nil
}
