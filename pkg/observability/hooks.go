// Package observability lets a program watch the navigator and the payload
// sources without those packages importing a metrics backend.
//
// Three hook sets exist: navigator events (expansions, level lifecycle and
// render passes), payload cache events and upstream HTTP events. Each
// starts as a no-op. A binary installs its own implementation once at
// startup, before any navigator is attached:
//
//	observability.Register(observability.Hooks{
//	    Navigator: counters,
//	    HTTP:      counters,
//	})
//
// Library code reads the current set on every event:
//
//	observability.Navigator().OnLevelCreate(ctx, depth, root.Count())
//
// The serve command's /stats endpoint is built on these hooks.
package observability

import (
	"context"
	"sync"
	"time"
)

// NavigatorHooks receives navigator events. Names and urls are those of the
// node being expanded.
type NavigatorHooks interface {
	OnExpandStart(ctx context.Context, name, url string)
	// OnExpandComplete fires once per expansion, after the payload was
	// fetched and the nested level built or the attempt failed. nodeCount
	// is the size of the loaded payload tree.
	OnExpandComplete(ctx context.Context, name, url string, nodeCount int, duration time.Duration, err error)

	OnLevelCreate(ctx context.Context, depth, nodeCount int)
	OnLevelDispose(ctx context.Context, depth int)

	// OnRender fires after each render pass with the number of live levels.
	OnRender(ctx context.Context, levels int, duration time.Duration)
}

// CacheHooks receives payload cache events. namespace names the cache
// partition, e.g. "payload".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, namespace string)
	OnCacheMiss(ctx context.Context, namespace string)
	OnCacheSet(ctx context.Context, namespace string, size int)
}

// HTTPHooks receives events for requests sent to payload servers.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires when no response arrived at all.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopNavigatorHooks ignores every navigator event.
type NoopNavigatorHooks struct{}

func (NoopNavigatorHooks) OnExpandStart(context.Context, string, string) {}
func (NoopNavigatorHooks) OnExpandComplete(context.Context, string, string, int, time.Duration, error) {
}
func (NoopNavigatorHooks) OnLevelCreate(context.Context, int, int)      {}
func (NoopNavigatorHooks) OnLevelDispose(context.Context, int)          {}
func (NoopNavigatorHooks) OnRender(context.Context, int, time.Duration) {}

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

// Hooks bundles the three hook sets. Nil fields leave the current set in
// place.
type Hooks struct {
	Navigator NavigatorHooks
	Cache     CacheHooks
	HTTP      HTTPHooks
}

var (
	mu      sync.RWMutex
	current = defaults()
)

func defaults() Hooks {
	return Hooks{
		Navigator: NoopNavigatorHooks{},
		Cache:     NoopCacheHooks{},
		HTTP:      NoopHTTPHooks{},
	}
}

// Register installs every non-nil set in h.
func Register(h Hooks) {
	mu.Lock()
	defer mu.Unlock()
	if h.Navigator != nil {
		current.Navigator = h.Navigator
	}
	if h.Cache != nil {
		current.Cache = h.Cache
	}
	if h.HTTP != nil {
		current.HTTP = h.HTTP
	}
}

// SetNavigatorHooks installs h. A nil h is ignored.
func SetNavigatorHooks(h NavigatorHooks) { Register(Hooks{Navigator: h}) }

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { Register(Hooks{Cache: h}) }

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { Register(Hooks{HTTP: h}) }

// Navigator returns the installed navigator hooks.
func Navigator() NavigatorHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.Navigator
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.Cache
}

// HTTP returns the installed HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return current.HTTP
}

// Reset puts the no-op hooks back. Tests that register hooks call it on
// cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = defaults()
}
