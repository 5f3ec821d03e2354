package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// CredentialService fronts the credential vault with per-platform validation
// through the adapter registry.
type CredentialService struct {
	vault       driven.CredentialVault
	registry    driven.PlatformRegistry
	logger      *slog.Logger
	callTimeout time.Duration
}

// NewCredentialService creates a CredentialService.
func NewCredentialService(
	vault driven.CredentialVault,
	registry driven.PlatformRegistry,
	callTimeout time.Duration,
	logger *slog.Logger,
) *CredentialService {
	return &CredentialService{vault: vault, registry: registry, logger: logger, callTimeout: callTimeout}
}

// Validate checks a credential through the platform's adapter. Stub adapters
// accept anything, so a true here is not a correctness guarantee for
// platforms without a real client yet.
func (s *CredentialService) Validate(ctx context.Context, platform model.Platform, credential string) bool {
	client, ok := s.registry.Client(platform)
	if !ok {
		return false
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	return client.ValidateCredential(callCtx, credential)
}

// ValidateAll validates a credential map, returning the per-platform verdicts.
func (s *CredentialService) ValidateAll(ctx context.Context, credentials map[model.Platform]string) map[model.Platform]bool {
	verdicts := make(map[model.Platform]bool, len(credentials))
	for platform, credential := range credentials {
		verdicts[platform] = s.Validate(ctx, platform, credential)
	}
	return verdicts
}

// Save encrypts and persists the full credential map in one atomic write.
func (s *CredentialService) Save(ctx context.Context, credentials map[model.Platform]string) error {
	if err := s.vault.Save(ctx, credentials); err != nil {
		return err
	}
	s.logger.Info("credentials saved", "platforms", len(credentials))
	return nil
}

// Load returns the decrypted credential map.
func (s *CredentialService) Load(ctx context.Context) (map[model.Platform]string, error) {
	return s.vault.Load(ctx)
}
