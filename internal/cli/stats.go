package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/matzehuels/packnav/pkg/observability"
)

// stats counts navigator, cache and HTTP events for the serve command's
// /stats endpoint. It implements the observability hook interfaces.
type stats struct {
	mu      sync.Mutex
	started time.Time

	Expansions     int           `json:"expansions"`
	ExpandFailures int           `json:"expand_failures"`
	ExpandTime     time.Duration `json:"expand_time_ns"`
	LevelsCreated  int           `json:"levels_created"`
	LevelsDisposed int           `json:"levels_disposed"`
	Renders        int           `json:"renders"`
	CacheHits      int           `json:"cache_hits"`
	CacheMisses    int           `json:"cache_misses"`
	CacheBytes     int           `json:"cache_bytes_written"`
	Requests       int           `json:"upstream_requests"`
	RequestErrors  int           `json:"upstream_errors"`
}

func newStats() *stats {
	return &stats{started: time.Now()}
}

// register makes s receive every observability event.
func (s *stats) register() {
	observability.Register(observability.Hooks{Navigator: s, Cache: s, HTTP: s})
}

func (s *stats) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *stats) OnExpandStart(context.Context, string, string) {}

func (s *stats) OnExpandComplete(_ context.Context, _, _ string, _ int, d time.Duration, err error) {
	s.update(func() {
		s.Expansions++
		s.ExpandTime += d
		if err != nil {
			s.ExpandFailures++
		}
	})
}

func (s *stats) OnLevelCreate(context.Context, int, int) {
	s.update(func() { s.LevelsCreated++ })
}

func (s *stats) OnLevelDispose(context.Context, int) {
	s.update(func() { s.LevelsDisposed++ })
}

func (s *stats) OnRender(context.Context, int, time.Duration) {
	s.update(func() { s.Renders++ })
}

func (s *stats) OnCacheHit(context.Context, string) {
	s.update(func() { s.CacheHits++ })
}

func (s *stats) OnCacheMiss(context.Context, string) {
	s.update(func() { s.CacheMisses++ })
}

func (s *stats) OnCacheSet(_ context.Context, _ string, size int) {
	s.update(func() { s.CacheBytes += size })
}

func (s *stats) OnRequest(context.Context, string, string, string) {
	s.update(func() { s.Requests++ })
}

func (s *stats) OnResponse(context.Context, string, string, string, int, time.Duration) {}

func (s *stats) OnError(context.Context, string, string, string, error) {
	s.update(func() { s.RequestErrors++ })
}

func (s *stats) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := struct {
		*stats
		Uptime string `json:"uptime"`
	}{s, time.Since(s.started).Round(time.Second).String()}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

var (
	_ observability.NavigatorHooks = (*stats)(nil)
	_ observability.CacheHooks     = (*stats)(nil)
	_ observability.HTTPHooks      = (*stats)(nil)
)
