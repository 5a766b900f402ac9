// Package observability carries optional event hooks for artifact generation,
// the artifact cache and the HTTP server.
//
// Every category has a no-op default. Commands that want events register an
// implementation once before serving; [UseLogger] registers [LogHooks] for all
// categories at once:
//
//	observability.UseLogger(logger)
//
// Instrumented code fetches the current hooks at the call site:
//
//	observability.Generate().OnGenerateStart(ctx, seed, formats)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generate Hooks
// =============================================================================

// GenerateHooks receives events from the artifact pipeline.
type GenerateHooks interface {
	// Artifact generation for one seed
	OnGenerateStart(ctx context.Context, seed string, formats []string)
	OnGenerateComplete(ctx context.Context, seed string, formats []string, duration time.Duration, err error)

	// Token id to seed resolution
	OnTokenResolve(ctx context.Context, tokenID string, duration time.Duration, err error)
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
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, route, requestID string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	// OnError records a handler error before it is mapped to a status code.
	OnError(ctx context.Context, method, route string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerateHooks is a no-op implementation of GenerateHooks.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnGenerateStart(context.Context, string, []string) {}
func (NoopGenerateHooks) OnGenerateComplete(context.Context, string, []string, time.Duration, error) {
}
func (NoopGenerateHooks) OnTokenResolve(context.Context, string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)              {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

type registry struct {
	mu       sync.RWMutex
	generate GenerateHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = registry{
	generate: NoopGenerateHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

// set runs fn under the write lock. Callers skip nil hooks.
func (r *registry) set(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn()
}

// SetGenerateHooks registers generation hooks. Call it at startup; nil is ignored.
func SetGenerateHooks(h GenerateHooks) {
	if h != nil {
		hooks.set(func() { hooks.generate = h })
	}
}

// SetCacheHooks registers cache hooks. Call it at startup; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		hooks.set(func() { hooks.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Call it at startup; nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		hooks.set(func() { hooks.http = h })
	}
}

// Generate returns the registered generation hooks.
func Generate() GenerateHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.generate
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset restores the no-op hooks. Tests use it to undo registrations.
func Reset() {
	hooks.set(func() {
		hooks.generate = NoopGenerateHooks{}
		hooks.cache = NoopCacheHooks{}
		hooks.http = NoopHTTPHooks{}
	})
}
