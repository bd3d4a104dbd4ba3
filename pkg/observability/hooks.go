// Package observability lets a binary observe feedscope without the libraries
// importing a metrics or tracing framework.
//
// Three hook families are defined: [PipelineHooks] for the aggregate, layout
// and render stages, [CacheHooks] for cache lookups and writes, and
// [HTTPHooks] for outgoing requests made by the insight client. Each family
// defaults to a no-op implementation.
//
// Hooks are registered once at startup, usually from main or the CLI root
// command:
//
//	observability.Register(observability.Hooks{
//	    Pipeline: myPipelineHooks{},
//	    Cache:    myCacheHooks{},
//	})
//
// Libraries fetch the current hooks at the call site:
//
//	hooks := observability.Pipeline()
//	hooks.OnLayoutStart(ctx, len(words))
//	res, err := cloud.Layout(words, opts)
//	hooks.OnLayoutComplete(ctx, len(res.Placed()), len(res.Dropped()), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives stage events from the pipeline runner.
type PipelineHooks interface {
	OnAggregateStart(ctx context.Context, records int)
	OnAggregateComplete(ctx context.Context, records int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, words int)
	OnLayoutComplete(ctx context.Context, placed, dropped int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "report", "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events for outgoing HTTP requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError is called when no response was received.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnAggregateStart(context.Context, int)                             {}
func (NoopPipelineHooks) OnAggregateComplete(context.Context, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// Hooks bundles one implementation per family. Nil fields are left unchanged
// by [Register].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

func defaults() Hooks {
	return Hooks{
		Pipeline: NoopPipelineHooks{},
		Cache:    NoopCacheHooks{},
		HTTP:     NoopHTTPHooks{},
	}
}

var (
	mu      sync.RWMutex
	current = defaults()
)

// Register installs the non-nil hooks of h.
func Register(h Hooks) {
	mu.Lock()
	defer mu.Unlock()
	if h.Pipeline != nil {
		current.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// SetPipelineHooks installs h as the pipeline hooks. Nil is ignored.
func SetPipelineHooks(h PipelineHooks) { Register(Hooks{Pipeline: h}) }

// SetCacheHooks installs h as the cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) { Register(Hooks{Cache: h}) }

// SetHTTPHooks installs h as the HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) { Register(Hooks{HTTP: h}) }

// Current returns a snapshot of the installed hooks.
func Current() Hooks {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return Current().Pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return Current().Cache }

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks { return Current().HTTP }

// Reset restores the no-op hooks. Tests call it in cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}
