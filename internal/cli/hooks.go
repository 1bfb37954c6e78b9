package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridplot/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

// registerHooks installs logHooks as the process-wide pipeline and cache hooks.
func registerHooks(l *log.Logger) {
	h := &logHooks{logger: l}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}

func (h *logHooks) OnLoadStart(_ context.Context, n int) {
	h.logger.Debug("load start", "images", n)
}

func (h *logHooks) OnLoadComplete(_ context.Context, n int, d time.Duration, err error) {
	h.done("load", d, err, "images", n)
}

func (h *logHooks) OnLayoutStart(_ context.Context, n, rows int) {
	h.logger.Debug("layout start", "images", n, "rows", rows)
}

func (h *logHooks) OnLayoutComplete(_ context.Context, w, ht int, d time.Duration, err error) {
	h.done("layout", d, err, "width", w, "height", ht)
}

func (h *logHooks) OnRenderStart(_ context.Context, artifacts []string) {
	h.logger.Debug("render start", "artifacts", artifacts)
}

func (h *logHooks) OnRenderComplete(_ context.Context, artifacts []string, d time.Duration, err error) {
	h.done("render", d, err, "artifacts", artifacts)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h *logHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d.Round(time.Millisecond))
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" complete", kv...)
}

var (
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
