package driven

import (
	"context"

	"github.com/ericfisherdev/simulpost/internal/domain/model"
)

// PlatformClient defines the uniform capability contract every platform
// adapter implements, real or stub. The orchestrator and dispatcher never
// branch on the concrete adapter, so swapping a stub for a real client never
// touches calling code.
type PlatformClient interface {
	// Platform returns the identifier this client serves.
	Platform() model.Platform

	// ValidateCredential checks a credential string, typically with a cheap
	// authenticated API call. Stub adapters return true unconditionally.
	ValidateCredential(ctx context.Context, credential string) bool

	// Authorize exchanges a credential for an authorization token. Failures
	// are reported in the result, not as an error, so the adapter's message
	// reaches the caller verbatim.
	Authorize(ctx context.Context, credential string) model.AuthResult

	// Post publishes text (and optional media files) using a previously
	// obtained token. Failures are reported in the result.
	Post(ctx context.Context, token, text string, mediaFiles []string) model.PostResult

	// CharacterLimit returns the maximum post length for the platform.
	CharacterLimit() int
}

// PlatformRegistry resolves the client for a platform identifier.
type PlatformRegistry interface {
	// Client returns the adapter for the platform, or false if the platform
	// is not registered.
	Client(platform model.Platform) (PlatformClient, bool)
}
