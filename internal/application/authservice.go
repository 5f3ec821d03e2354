package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// AuthService orchestrates the per-platform authorization lifecycle: deciding
// which platforms need (re)authorization, invoking the adapters, and updating
// the token vault. Token-map writes are whole-map atomic, so every
// read-modify-write runs under one mutex to keep concurrent refreshes from
// dropping each other's tokens.
type AuthService struct {
	credentials driven.CredentialVault
	tokens      driven.TokenVault
	registry    driven.PlatformRegistry
	logger      *slog.Logger
	callTimeout time.Duration
	now         func() time.Time

	mu sync.Mutex // guards token vault read-modify-write cycles
}

// NewAuthService creates an AuthService. callTimeout bounds every adapter
// call so one stalled platform cannot block the rest.
func NewAuthService(
	credentials driven.CredentialVault,
	tokens driven.TokenVault,
	registry driven.PlatformRegistry,
	callTimeout time.Duration,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		registry:    registry,
		logger:      logger,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// AuthorizePlatform calls the platform adapter's authorize operation with the
// given credential. It persists nothing; batch callers own persistence so
// this stays side-effect-free and independently testable.
func (s *AuthService) AuthorizePlatform(ctx context.Context, platform model.Platform, credential string) model.AuthResult {
	client, ok := s.registry.Client(platform)
	if !ok {
		return model.AuthResult{Success: false, Error: fmt.Sprintf("no adapter registered for platform %s", platform)}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	return client.Authorize(callCtx, credential)
}

// Status reports the current authorization state of a platform from the
// token vault.
func (s *AuthService) Status(ctx context.Context, platform model.Platform) (model.AuthStatus, error) {
	return s.tokens.Status(ctx, platform)
}

// Refresh re-authorizes one platform from its stored credential and, on
// success, persists the new token. Returns driven.ErrMissingCredential when
// no credential is stored for the platform.
func (s *AuthService) Refresh(ctx context.Context, platform model.Platform) (model.AuthResult, error) {
	credential, err := s.credentials.Get(ctx, platform)
	if err != nil {
		return model.AuthResult{}, err
	}

	result := s.AuthorizePlatform(ctx, platform, credential)
	if !result.Success {
		s.logger.Warn("authorization refresh failed", "platform", platform, "error", result.Error)
		return result, nil
	}

	// Whole-map read-modify-write: storage is rewritten as a unit, so the
	// other platforms' tokens ride along unchanged.
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		return model.AuthResult{}, fmt.Errorf("load tokens: %w", err)
	}
	tokens[platform] = tokenFromResult(result)
	if err := s.tokens.Save(ctx, tokens); err != nil {
		return model.AuthResult{}, fmt.Errorf("save tokens: %w", err)
	}

	s.logger.Info("authorization refreshed", "platform", platform)
	return result, nil
}

// AuthorizeAll ensures every requested platform holds a valid authorization.
// Platforms already authorized are short-circuited without an adapter call.
// Each platform's outcome is independent; a failure never aborts the rest.
// All successful results are combined into a single token vault save so the
// batch costs exactly one file rewrite.
func (s *AuthService) AuthorizeAll(ctx context.Context, platforms []model.Platform) map[model.Platform]model.AuthResult {
	results := make(map[model.Platform]model.AuthResult, len(platforms))

	credentials, err := s.credentials.Load(ctx)
	if err != nil {
		s.logger.Error("loading credentials failed", "error", err)
		for _, platform := range platforms {
			results[platform] = model.AuthResult{Success: false, Error: fmt.Sprintf("load credentials: %v", err)}
		}
		return results
	}

	// Unlocked snapshot for the short-circuit check; the merge below re-reads
	// under the lock before writing.
	stored, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Error("loading tokens failed", "error", err)
		for _, platform := range platforms {
			results[platform] = model.AuthResult{Success: false, Error: fmt.Sprintf("load tokens: %v", err)}
		}
		return results
	}

	now := s.now()
	refreshed := make(map[model.Platform]model.Token)

	for _, platform := range platforms {
		credential, hasCredential := credentials[platform]
		if !hasCredential {
			results[platform] = model.AuthResult{
				Success: false,
				Error:   fmt.Sprintf("no credential stored for %s", platform),
			}
			continue
		}

		if token, ok := stored[platform]; ok && !token.Expired(now) {
			results[platform] = model.AuthResult{
				Success:   true,
				Message:   "already authorized",
				ExpiresAt: token.ExpiresAt,
				UserInfo:  token.UserInfo,
			}
			continue
		}

		result := s.AuthorizePlatform(ctx, platform, credential)
		results[platform] = result
		if result.Success {
			refreshed[platform] = tokenFromResult(result)
		}
		// On failure any previous (expired) entry stays in place; status
		// checks still report it as needing refresh.
	}

	if len(refreshed) == 0 {
		return results
	}

	// One save for the whole batch. Adapter calls above run outside the lock
	// so a concurrent Refresh is never stuck behind a slow platform.
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, err := s.tokens.Load(ctx)
	if err != nil {
		s.logger.Error("loading tokens failed", "error", err)
		return results
	}
	for platform, token := range refreshed {
		tokens[platform] = token
	}
	if err := s.tokens.Save(ctx, tokens); err != nil {
		s.logger.Error("saving refreshed tokens failed", "error", err)
	}

	return results
}

// tokenFromResult converts a successful AuthResult into its vault record.
func tokenFromResult(result model.AuthResult) model.Token {
	return model.Token{
		Value:     result.Token,
		ExpiresAt: result.ExpiresAt,
		UserInfo:  result.UserInfo,
	}
}
