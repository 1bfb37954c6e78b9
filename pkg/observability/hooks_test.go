package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, 4)
	p.OnLoadComplete(ctx, 4, time.Second, nil)
	p.OnLayoutStart(ctx, 4, 2)
	p.OnLayoutComplete(ctx, 210, 130, time.Second, nil)
	p.OnRenderStart(ctx, []string{"image"})
	p.OnRenderComplete(ctx, []string{"image"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Reset() should restore NoopCacheHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the current hooks")
	}
}

func TestCustomHooksReceiveEvents(t *testing.T) {
	Reset()
	defer Reset()

	h := &testPipelineHooks{}
	SetPipelineHooks(h)

	ctx := context.Background()
	Pipeline().OnLoadStart(ctx, 3)
	Pipeline().OnLayoutComplete(ctx, 100, 50, time.Millisecond, nil)

	if h.loads != 1 || h.layouts != 1 {
		t.Errorf("events = loads %d, layouts %d; want 1 each", h.loads, h.layouts)
	}
}

type testPipelineHooks struct {
	NoopPipelineHooks
	loads, layouts int
}

func (h *testPipelineHooks) OnLoadStart(context.Context, int) { h.loads++ }
func (h *testPipelineHooks) OnLayoutComplete(context.Context, int, int, time.Duration, error) {
	h.layouts++
}

type testCacheHooks struct {
	NoopCacheHooks
}
