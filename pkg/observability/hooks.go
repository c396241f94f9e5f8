// Package observability lets callers watch jappaper at work without tying
// the libraries to a logging or metrics backend.
//
// The pipeline, the caches and the HTTP server report events through three
// hook interfaces. Each starts as a no-op; register an implementation once at
// startup, for example the structured logging hooks from [NewLogHooks]:
//
//	hooks := observability.NewLogHooks(logger)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetAPIHooks(hooks)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives the start and end of each pipeline step: a bulk
// character import, the page layout and a multi-format render.
type PipelineHooks interface {
	OnImportStart(ctx context.Context, size int)
	OnImportComplete(ctx context.Context, applied, skipped int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, pageSize string, cellCount int)
	OnLayoutComplete(ctx context.Context, pageSize string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups and writes. keyType names the kind of
// entry, e.g. "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// API Hooks
// =============================================================================

// APIHooks receives events from the HTTP API server.
type APIHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response written for a request.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnImportStart(context.Context, int)                               {}
func (NoopPipelineHooks) OnImportComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopAPIHooks is a no-op implementation of APIHooks.
type NoopAPIHooks struct{}

func (NoopAPIHooks) OnRequest(context.Context, string, string)                      {}
func (NoopAPIHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registry
// =============================================================================

// slot holds one registered hook implementation.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// set ignores nil so callers never observe a missing implementation.
func (s *slot[T]) set(h T) {
	if any(h) == nil {
		return
	}
	s.mu.Lock()
	s.cur = h
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.cur = s.def
	s.mu.Unlock()
}

var (
	pipelineHooks = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheHooks    = newSlot[CacheHooks](NoopCacheHooks{})
	apiHooks      = newSlot[APIHooks](NoopAPIHooks{})
)

// SetPipelineHooks registers h for pipeline events. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineHooks.set(h) }

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheHooks.set(h) }

// SetAPIHooks registers h for HTTP events. A nil h is ignored.
func SetAPIHooks(h APIHooks) { apiHooks.set(h) }

func Pipeline() PipelineHooks { return pipelineHooks.get() }
func Cache() CacheHooks       { return cacheHooks.get() }
func API() APIHooks           { return apiHooks.get() }

// Reset restores the no-op hooks.
func Reset() {
	pipelineHooks.reset()
	cacheHooks.reset()
	apiHooks.reset()
}
