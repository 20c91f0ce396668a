// Package observability lets hosts watch the pipeline, the cache and the HTTP
// service without the generation core depending on a metrics backend.
//
// Hooks are process-wide. Register them once at startup; every call site
// reads the current set through [Pipeline], [Cache] and [HTTP]:
//
//	observability.Use(observability.NewLogHooks(logger))
//
//	observability.Pipeline().OnGenerateStart(ctx, seedCount, pointCount, mode)
//	// ... iterate ...
//	observability.Pipeline().OnGenerateComplete(ctx, points, duration, err)
//
// Until something is registered every hook is a no-op.
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives events from the generate and export stages.
type PipelineHooks interface {
	OnGenerateStart(ctx context.Context, seedCount, pointCount int, mode string)
	OnGenerateComplete(ctx context.Context, points int, duration time.Duration, err error)
	OnExportStart(ctx context.Context, formats []string)
	OnExportComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "cloud" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives served requests. route is the matched route pattern
// when one is known.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Hooks implements every hook interface.
type Hooks interface {
	PipelineHooks
	CacheHooks
	HTTPHooks
}

// Noop ignores every event. Embed it to implement only some hooks.
type Noop struct{}

func (Noop) OnGenerateStart(context.Context, int, int, string) {}

func (Noop) OnGenerateComplete(context.Context, int, time.Duration, error) {}

func (Noop) OnExportStart(context.Context, []string) {}

func (Noop) OnExportComplete(context.Context, []string, time.Duration, error) {}

func (Noop) OnCacheHit(context.Context, string) {}

func (Noop) OnCacheMiss(context.Context, string) {}

func (Noop) OnCacheSet(context.Context, string, int) {}

func (Noop) OnRequest(context.Context, string, string) {}

func (Noop) OnResponse(context.Context, string, string, int, time.Duration) {}

var _ Hooks = Noop{}

var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}{pipeline: Noop{}, cache: Noop{}, http: Noop{}}

// Use registers h for all three event groups. Nil is ignored.
func Use(h Hooks) {
	if h == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	registry.pipeline, registry.cache, registry.http = h, h, h
}

// SetPipelineHooks registers pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	registry.pipeline = h
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	registry.cache = h
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	defer registry.Unlock()
	registry.http = h
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset restores the no-op hooks.
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.pipeline, registry.cache, registry.http = Noop{}, Noop{}, Noop{}
}
