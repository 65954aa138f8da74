package observability

import (
	"context"
	"testing"
	"time"
)

type levelCounter struct {
	NoopNavigatorHooks
	created, disposed int
}

func (c *levelCounter) OnLevelCreate(context.Context, int, int) { c.created++ }
func (c *levelCounter) OnLevelDispose(context.Context, int)     { c.disposed++ }

type hitCounter struct {
	NoopCacheHooks
	hits int
}

func (c *hitCounter) OnCacheHit(context.Context, string) { c.hits++ }

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Navigator().(NoopNavigatorHooks); !ok {
		t.Errorf("Navigator() = %T, want NoopNavigatorHooks", Navigator())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T, want NoopHTTPHooks", HTTP())
	}

	Navigator().OnExpandComplete(ctx, "src", "src.json", 3, time.Millisecond, nil)
	Cache().OnCacheSet(ctx, "payload", 512)
	HTTP().OnResponse(ctx, "GET", "example.com", "/src.json", 200, time.Millisecond)
}

func TestRegisterRoutesEvents(t *testing.T) {
	t.Cleanup(Reset)
	levels, cache := &levelCounter{}, &hitCounter{}
	Register(Hooks{Navigator: levels, Cache: cache})

	ctx := context.Background()
	Navigator().OnLevelCreate(ctx, 2, 3)
	Navigator().OnLevelCreate(ctx, 3, 1)
	Navigator().OnLevelDispose(ctx, 3)
	Cache().OnCacheHit(ctx, "payload")

	if levels.created != 2 || levels.disposed != 1 {
		t.Errorf("levels created/disposed = %d/%d, want 2/1", levels.created, levels.disposed)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %d, want 1", cache.hits)
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("a nil HTTP field should keep the no-op hooks")
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)
	levels := &levelCounter{}
	SetNavigatorHooks(levels)
	SetNavigatorHooks(nil)
	SetCacheHooks(nil)

	if Navigator() != levels {
		t.Error("SetNavigatorHooks(nil) replaced the installed hooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should leave the no-op hooks")
	}

	Reset()
	if Navigator() == levels {
		t.Error("Reset should restore the no-op hooks")
	}
}
