package model

import "fmt"

// Platform identifies one of the supported social networks. The same value
// keys the credential vault, the token vault, and the adapter registry.
type Platform string

const (
	PlatformX        Platform = "x"
	PlatformThreads  Platform = "threads"
	PlatformBluesky  Platform = "bluesky"
	PlatformMastodon Platform = "mastodon"
	PlatformLinkedIn Platform = "linkedin"
)

// characterLimits holds the per-platform post length ceiling. The X limit is
// also reported by the real adapter; the rest apply to the stub adapters.
var characterLimits = map[Platform]int{
	PlatformX:        280,
	PlatformThreads:  500,
	PlatformBluesky:  300,
	PlatformMastodon: 500,
	PlatformLinkedIn: 3000,
}

// DefaultCharacterLimit applies to any platform without an explicit entry.
const DefaultCharacterLimit = 500

// AllPlatforms returns the fixed platform set in display order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformX,
		PlatformThreads,
		PlatformBluesky,
		PlatformMastodon,
		PlatformLinkedIn,
	}
}

// ParsePlatform converts a string identifier to a Platform, rejecting values
// outside the fixed set.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	switch p {
	case PlatformX, PlatformThreads, PlatformBluesky, PlatformMastodon, PlatformLinkedIn:
		return p, nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// CharacterLimit returns the post length ceiling for the platform.
func (p Platform) CharacterLimit() int {
	if limit, ok := characterLimits[p]; ok {
		return limit
	}
	return DefaultCharacterLimit
}

// DisplayName returns the human-readable platform name.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformX:
		return "X (Twitter)"
	case PlatformThreads:
		return "Threads"
	case PlatformBluesky:
		return "Bluesky"
	case PlatformMastodon:
		return "Mastodon"
	case PlatformLinkedIn:
		return "LinkedIn"
	}
	return string(p)
}
