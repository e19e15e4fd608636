// Package observability provides hooks for instrumenting imgsort runs.
//
// The ordering engine and the pipeline around it stay free of hard
// dependencies on any metrics or tracing backend: they emit events through
// narrow hook interfaces with no-op defaults, and an embedding application
// registers real implementations at startup.
//
// Register hooks before running any pipeline:
//
//	func main() {
//	    observability.SetPipelineHooks(&myHooks{})
//	    // ... run
//	}
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the ordering pipeline's stages.
type PipelineHooks interface {
	// OnScanComplete reports how many candidate images a source directory scan found.
	OnScanComplete(ctx context.Context, source string, found int, duration time.Duration)

	// Extraction events. skipped counts items dropped because extraction failed.
	OnExtractStart(ctx context.Context, items int)
	OnExtractComplete(ctx context.Context, extracted, skipped int, duration time.Duration, err error)

	// Pairwise distance events. pairs is n·(n−1)/2 for n extracted items.
	OnDistancesStart(ctx context.Context, items, pairs int)
	OnDistancesComplete(ctx context.Context, pairs int, duration time.Duration, err error)

	// OnTreeBuilt reports the completed spanning tree (edges == items − 1).
	OnTreeBuilt(ctx context.Context, items, edges int, duration time.Duration, err error)

	// OnMaterializeComplete reports the output stage (links/copies written).
	OnMaterializeComplete(ctx context.Context, output string, written int, duration time.Duration, err error)
}

// CacheHooks receives events from descriptor cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context)
	OnCacheMiss(ctx context.Context)
	OnCacheSet(ctx context.Context, size int)
}

// NoopPipelineHooks is the default PipelineHooks implementation.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnScanComplete(context.Context, string, int, time.Duration) {}
func (NoopPipelineHooks) OnExtractStart(context.Context, int)                        {}
func (NoopPipelineHooks) OnExtractComplete(context.Context, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnDistancesStart(context.Context, int, int) {}
func (NoopPipelineHooks) OnDistancesComplete(context.Context, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnTreeBuilt(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnMaterializeComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is the default CacheHooks implementation.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, int) {}

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Call once at startup,
// before any pipeline runs.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Call once at startup.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults. Primarily useful in tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
