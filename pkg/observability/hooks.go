// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation is optional and backend-agnostic. Consumers register hooks
// at startup to receive events about canvas population, vault scans and cache
// activity; libraries call the registered hooks, which default to no-ops.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPopulateHooks(&myPopulateHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Populate().OnSample(ctx, requested, len(picked), seed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Populate Hooks
// =============================================================================

// PopulateHooks receives events from the canvas populate flow.
type PopulateHooks interface {
	// OnSample records a draw of got candidates out of requested.
	OnSample(ctx context.Context, requested, got int, seed uint64)

	// OnPopulateComplete records the end of a populate run. added is 0 when
	// the run was declined or failed.
	OnPopulateComplete(ctx context.Context, canvas string, added int, duration time.Duration, err error)
}

// =============================================================================
// Vault Hooks
// =============================================================================

// VaultHooks receives events from vault scanning and indexing.
type VaultHooks interface {
	// OnScanComplete records a full vault scan.
	OnScanComplete(ctx context.Context, root string, notes int, duration time.Duration, err error)

	// OnIndexRefresh records a watcher-triggered index refresh.
	OnIndexRefresh(ctx context.Context, root string, notes int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPopulateHooks is a no-op implementation of PopulateHooks.
type NoopPopulateHooks struct{}

func (NoopPopulateHooks) OnSample(context.Context, int, int, uint64) {}
func (NoopPopulateHooks) OnPopulateComplete(context.Context, string, int, time.Duration, error) {
}

// NoopVaultHooks is a no-op implementation of VaultHooks.
type NoopVaultHooks struct{}

func (NoopVaultHooks) OnScanComplete(context.Context, string, int, time.Duration, error) {}
func (NoopVaultHooks) OnIndexRefresh(context.Context, string, int)                      {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	populateHooks PopulateHooks = NoopPopulateHooks{}
	vaultHooks    VaultHooks    = NoopVaultHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPopulateHooks registers custom populate hooks.
// This should be called once at application startup.
func SetPopulateHooks(h PopulateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		populateHooks = h
	}
}

// SetVaultHooks registers custom vault hooks.
// This should be called once at application startup.
func SetVaultHooks(h VaultHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		vaultHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Populate returns the registered populate hooks.
func Populate() PopulateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return populateHooks
}

// Vault returns the registered vault hooks.
func Vault() VaultHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return vaultHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	populateHooks = NoopPopulateHooks{}
	vaultHooks = NoopVaultHooks{}
	cacheHooks = NoopCacheHooks{}
}
