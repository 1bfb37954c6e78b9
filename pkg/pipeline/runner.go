package pipeline

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/matzehuels/gridplot/pkg/cache"
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/fonts"
	"github.com/matzehuels/gridplot/pkg/io"
	"github.com/matzehuels/gridplot/pkg/label"
	"github.com/matzehuels/gridplot/pkg/layout"
	"github.com/matzehuels/gridplot/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// run holds the per-execution state shared by the stages.
type run struct {
	opts     Options
	sources  []io.Source
	images   []image.Image
	face     *fonts.Face
	fontHash string
}

// Execute runs the complete load → layout → render pipeline with caching.
//
// When both the geometry and every artifact are cached, the source images
// are read (to compute their digests) but never decoded.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	st := &run{opts: opts}
	defer st.close()

	result := &Result{}

	// Stage 1: Load. Files are read and hashed here; decoding is deferred
	// until a stage misses the cache and needs pixels.
	loadStart := time.Now()
	observability.Pipeline().OnLoadStart(ctx, len(opts.Images))
	sources, err := io.ReadSources(ctx, opts.Images)
	result.Stats.LoadTime = time.Since(loadStart)
	observability.Pipeline().OnLoadComplete(ctx, len(opts.Images), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	st.sources = sources
	digests := make([]string, len(sources))
	for i, s := range sources {
		digests[i] = s.Digest
	}
	result.InputHash = cache.HashStrings(digests)
	result.Stats.ImageCount = len(sources)

	r.Logger.Info("loaded images",
		"images", len(sources),
		"duration", result.Stats.LoadTime)

	if err := st.openFont(); err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	geo, layoutHit, err := r.layoutWithCacheInfo(ctx, st, result.InputHash)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Geometry = geo
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Rows = len(geo.RowHeights)
	result.Stats.Columns = len(geo.ColumnWidths)
	result.Stats.Width = geo.Width
	result.Stats.Height = geo.Height

	r.Logger.Info("computed layout",
		"images", result.Stats.ImageCount,
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"canvas", fmt.Sprintf("%dx%d", geo.Width, geo.Height),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.renderWithCacheInfo(ctx, st, result.InputHash, geo)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"artifacts", opts.ArtifactNames(),
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// layoutWithCacheInfo returns the geometry from cache or computes it.
func (r *Runner) layoutWithCacheInfo(ctx context.Context, st *run, inputHash string) (*layout.Geometry, bool, error) {
	cacheKey := r.Keyer.LayoutKey(inputHash, st.opts.LayoutKeyOpts(st.fontHash))

	if !st.opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if geo, err := layout.UnmarshalGeometry(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return geo, true, nil
			}
			// Stale or corrupt entries fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	if err := st.decode(ctx); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(st.images), st.opts.Rows)
	geo, err := ComputeLayout(io.Sizes(st.images), st.metrics(), st.opts)
	if err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnLayoutComplete(ctx, geo.Width, geo.Height, time.Since(start), nil)

	if data, err := layout.MarshalGeometry(geo); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", "layout", "err", err)
		}
	}
	return geo, false, nil
}

// renderWithCacheInfo returns the artifacts from cache or renders them.
// The geometry JSON is always included. Artifact keys cover the source
// content and the font as well as the geometry.
func (r *Runner) renderWithCacheInfo(ctx context.Context, st *run, inputHash string, geo *layout.Geometry) (map[string][]byte, bool, error) {
	geoData, err := layout.MarshalGeometry(geo)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "serialize geometry")
	}
	geoHash := cache.HashStrings([]string{inputHash, cache.Hash(geoData), st.fontHash})
	names := st.opts.ArtifactNames()

	artifacts := map[string][]byte{ArtifactGeometry: geoData}
	if !st.opts.Refresh {
		allCached := true
		for _, name := range names {
			key := r.Keyer.ArtifactKey(geoHash, st.opts.ArtifactKeyOpts(name))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				allCached = false
				break
			}
			artifacts[name] = data
		}
		if allCached {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	if err := st.decode(ctx); err != nil {
		return nil, false, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, names)
	rendered, err := Render(ctx, geo, st.images, st.fontFace(), st.opts)
	observability.Pipeline().OnRenderComplete(ctx, names, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for name, data := range rendered {
		key := r.Keyer.ArtifactKey(geoHash, st.opts.ArtifactKeyOpts(name))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		} else {
			r.Logger.Debug("cache write failed", "key", name, "err", err)
		}
		artifacts[name] = data
	}
	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// decode decodes the sources once.
func (st *run) decode(ctx context.Context) error {
	if st.images != nil {
		return nil
	}
	images, err := io.DecodeSources(ctx, st.sources)
	if err != nil {
		return err
	}
	st.images = images
	return nil
}

// openFont opens the label face when any label is set and records a digest
// of the font for cache keys.
func (st *run) openFont() error {
	if !st.opts.HasLabels() {
		return nil
	}
	face, err := fonts.Open(st.opts.FontPath, st.opts.FallbackFonts, float64(st.opts.FontSize), st.opts.LineSpacing)
	if err != nil {
		return err
	}
	st.face = face
	if st.opts.FontPath == "" && len(st.opts.FallbackFonts) == 0 {
		return nil
	}
	digests := make([]string, 0, 1+len(st.opts.FallbackFonts))
	for i, path := range append([]string{st.opts.FontPath}, st.opts.FallbackFonts...) {
		if i == 0 && path == "" {
			digests = append(digests, "")
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFontLoad, err, "read font %s", path)
		}
		digests = append(digests, cache.Hash(data))
	}
	st.fontHash = cache.HashStrings(digests)
	return nil
}

// metrics and fontFace avoid wrapping a nil *fonts.Face in a non-nil interface.
func (st *run) metrics() label.Metrics {
	if st.face == nil {
		return nil
	}
	return st.face
}

func (st *run) fontFace() font.Face {
	if st.face == nil {
		return nil
	}
	return st.face
}

func (st *run) close() {
	if st.face != nil {
		st.face.Close()
	}
}
