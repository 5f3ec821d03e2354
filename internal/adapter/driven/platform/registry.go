// Package platform implements the per-platform capability contract. X has a
// real API client; the remaining platforms are stubs that report success so
// the end-to-end flow can be exercised before their clients are written.
package platform

import (
	"github.com/ericfisherdev/simulpost/internal/domain/model"
	"github.com/ericfisherdev/simulpost/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PlatformRegistry = (*Registry)(nil)

// Registry is the static adapter registry keyed by the fixed platform set.
// Adding a platform means registering its client here; orchestrator and
// dispatcher code never changes.
type Registry struct {
	clients map[model.Platform]driven.PlatformClient
}

// NewRegistry builds the default registry: a real X client plus stubs for
// every other platform.
func NewRegistry(x *XClient) *Registry {
	clients := map[model.Platform]driven.PlatformClient{
		model.PlatformX: x,
	}
	for _, p := range model.AllPlatforms() {
		if _, ok := clients[p]; !ok {
			clients[p] = NewStubClient(p)
		}
	}
	return &Registry{clients: clients}
}

// NewRegistryWith builds a registry from explicit clients. Intended for tests
// and for swapping stubs out as real clients land.
func NewRegistryWith(clients ...driven.PlatformClient) *Registry {
	m := make(map[model.Platform]driven.PlatformClient, len(clients))
	for _, c := range clients {
		m[c.Platform()] = c
	}
	return &Registry{clients: m}
}

// Client returns the adapter for the platform, or false if none is registered.
func (r *Registry) Client(platform model.Platform) (driven.PlatformClient, bool) {
	c, ok := r.clients[platform]
	return c, ok
}
