package platform

import (
	"context"
	"time"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// stubTokenTTL is the mock expiry window granted by stub authorizations. A
// finite expiry keeps the refresh path exercised even for stub platforms.
const stubTokenTTL = time.Hour

// Compile-time interface satisfaction check.
var _ driven.PlatformClient = (*StubClient)(nil)

// StubClient is the placeholder adapter for platforms without a real API
// client yet. Every operation reports deterministic success with fixed mock
// payloads. Callers must not read success from a stub as a guarantee that a
// credential is correct.
type StubClient struct {
	platform model.Platform
	now      func() time.Time
}

// NewStubClient creates a stub adapter for the given platform.
func NewStubClient(platform model.Platform) *StubClient {
	return &StubClient{platform: platform, now: time.Now}
}

// Platform returns the identifier this stub serves.
func (s *StubClient) Platform() model.Platform {
	return s.platform
}

// ValidateCredential accepts any credential unconditionally.
func (s *StubClient) ValidateCredential(_ context.Context, _ string) bool {
	return true
}

// Authorize grants a fixed mock token with a one-hour expiry.
func (s *StubClient) Authorize(_ context.Context, _ string) model.AuthResult {
	expiry := s.now().Add(stubTokenTTL)
	return model.AuthResult{
		Success:   true,
		Token:     "stub-token-" + string(s.platform),
		ExpiresAt: &expiry,
		Message:   "authorization not implemented (mock success)",
	}
}

// Post reports a fixed mock post.
func (s *StubClient) Post(_ context.Context, _ string, _ string, _ []string) model.PostResult {
	return model.PostResult{
		Success: true,
		PostID:  "stub-" + string(s.platform) + "-1",
		PostURL: "https://example.com/" + string(s.platform) + "/post/stub-" + string(s.platform) + "-1",
	}
}

// CharacterLimit returns the platform's documented limit.
func (s *StubClient) CharacterLimit() int {
	return s.platform.CharacterLimit()
}
