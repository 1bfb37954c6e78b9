package pipeline

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"

	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/layout"
)

// memCache is an in-memory cache that counts hits.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quietLogger() *log.Logger { return log.New(io.Discard) }

func writeImages(t *testing.T, dir string, sizes ...[2]int) []string {
	t.Helper()
	paths := make([]string, len(sizes))
	for i, s := range sizes {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		img := imaging.New(s[0], s[1], color.NRGBA{R: uint8(40 * i), G: 100, B: 200, A: 255})
		if err := imaging.Save(img, paths[i]); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return paths
}

func decodeArtifact(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode artifact: %v", err)
	}
	return img
}

func TestRunnerExecute(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Images = writeImages(t, dir, [2]int{100, 50}, [2]int{80, 60}, [2]int{120, 40}, [2]int{90, 70})
	opts.Rows = 2
	opts.Output = filepath.Join(dir, "out.png")
	opts.Debug = true

	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Stats.Width != 210 || result.Stats.Height != 130 {
		t.Errorf("canvas = %dx%d, want 210x130", result.Stats.Width, result.Stats.Height)
	}
	if result.Stats.Rows != 2 || result.Stats.Columns != 2 || result.Stats.ImageCount != 4 {
		t.Errorf("stats = %+v", result.Stats)
	}

	for _, name := range []string{ArtifactImage, ArtifactDebug} {
		img := decodeArtifact(t, result.Artifacts[name])
		if b := img.Bounds(); b.Dx() != 210 || b.Dy() != 130 {
			t.Errorf("%s artifact = %dx%d, want 210x130", name, b.Dx(), b.Dy())
		}
	}

	geo, err := layout.UnmarshalGeometry(result.Artifacts[ArtifactGeometry])
	if err != nil {
		t.Fatalf("geometry artifact: %v", err)
	}
	if len(geo.Cells) != 4 {
		t.Errorf("geometry has %d cells, want 4", len(geo.Cells))
	}
}

func TestRunnerExecuteWithLabels(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Images = writeImages(t, dir, [2]int{100, 100})
	opts.ColumnLabels = []string{`Title\nSubtitle`}
	opts.Output = filepath.Join(dir, "out.jpg")

	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	lbl := result.Geometry.ColumnLabels[0]
	if len(lbl.Lines) != 2 {
		t.Fatalf("label has %d lines, want 2", len(lbl.Lines))
	}
	// The two-line block exceeds the 40px padding at 24px type.
	if lbl.Rect.H <= DefaultTopPadding {
		t.Errorf("band height = %d, want above %d", lbl.Rect.H, DefaultTopPadding)
	}
	if result.Geometry.Height != lbl.Rect.H+100 {
		t.Errorf("canvas height = %d, want band + 100", result.Geometry.Height)
	}
}

func TestRunnerCache(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Images = writeImages(t, dir, [2]int{10, 10}, [2]int{20, 5})
	opts.Output = filepath.Join(dir, "out.png")

	c := newMemCache()
	r := NewRunner(c, nil, quietLogger())
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run hit the cache: %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run missed the cache: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[ArtifactImage], second.Artifacts[ArtifactImage]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	// Changing a layout option invalidates both stages.
	opts.Gutter = 4
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Errorf("changed options hit the cache: %+v", third.CacheInfo)
	}

	// Refresh recomputes even when entries exist.
	opts.Refresh = true
	fourth, _ := r.Execute(ctx, opts)
	if fourth.CacheInfo.LayoutHit || fourth.CacheInfo.RenderHit {
		t.Errorf("refresh run hit the cache: %+v", fourth.CacheInfo)
	}
}

func TestRunnerCacheKeyedByContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	opts := DefaultOptions()
	opts.Images = []string{path}
	opts.Output = filepath.Join(dir, "out.png")

	r := NewRunner(newMemCache(), nil, quietLogger())
	colors := []color.NRGBA{{R: 255, A: 255}, {B: 255, A: 255}}
	for i, c := range colors {
		if err := imaging.Save(imaging.New(8, 8, c), path); err != nil {
			t.Fatalf("save: %v", err)
		}
		result, err := r.Execute(context.Background(), opts)
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if result.CacheInfo.RenderHit {
			t.Fatalf("run %d: same-size image with new pixels hit the artifact cache", i)
		}
		got := color.NRGBAModel.Convert(decodeArtifact(t, result.Artifacts[ArtifactImage]).At(4, 4)).(color.NRGBA)
		if got != c {
			t.Errorf("run %d: pixel = %v, want %v", i, got, c)
		}
	}
}

func TestRunnerDeterministic(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Images = writeImages(t, dir, [2]int{30, 20}, [2]int{10, 40}, [2]int{25, 25})
	opts.Rows = 2
	opts.RowLabels = []string{"one", "two"}
	opts.Output = filepath.Join(dir, "out.png")
	opts.Debug = true

	r := NewRunner(nil, nil, quietLogger())
	a, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	b, _ := r.Execute(context.Background(), opts)
	for _, name := range []string{ArtifactImage, ArtifactDebug, ArtifactGeometry} {
		if !bytes.Equal(a.Artifacts[name], b.Artifacts[name]) {
			t.Errorf("%s artifact differs between runs", name)
		}
	}
}

func TestRunnerErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeImages(t, dir, [2]int{4, 4})[0]
	corrupt := filepath.Join(dir, "corrupt.png")
	if err := os.WriteFile(corrupt, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"rows exceed images", func(o *Options) { o.Images = []string{good}; o.Rows = 2 }, errors.ErrCodeInvalidGridSpec},
		{"missing image", func(o *Options) { o.Images = []string{good, filepath.Join(dir, "missing.png")} }, errors.ErrCodeImageLoad},
		{"corrupt image", func(o *Options) { o.Images = []string{corrupt} }, errors.ErrCodeImageLoad},
		{"bad font", func(o *Options) {
			o.Images = []string{good}
			o.RowLabels = []string{"x"}
			o.FontPath = filepath.Join(dir, "missing.ttf")
		}, errors.ErrCodeFontLoad},
		{"bad fallback font", func(o *Options) {
			o.Images = []string{good}
			o.RowLabels = []string{"x"}
			o.FallbackFonts = []string{corrupt}
		}, errors.ErrCodeFontLoad},
	}

	r := NewRunner(nil, nil, quietLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Output = filepath.Join(dir, "out.png")
			tt.modify(&opts)
			if _, err := r.Execute(context.Background(), opts); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestResultWrite(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.Images = writeImages(t, dir, [2]int{8, 8}, [2]int{8, 8})
	opts.Output = filepath.Join(dir, "out", "grid.jpg")
	opts.GeometryPath = filepath.Join(dir, "out", "grid.json")
	opts.Debug = true

	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	written, err := result.Write(opts)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := []string{
		filepath.Join(dir, "out", "grid.jpg"),
		filepath.Join(dir, "out", "grid_debug.jpg"),
		filepath.Join(dir, "out", "grid.json"),
	}
	if len(written) != len(want) {
		t.Fatalf("written = %v, want %v", written, want)
	}
	for i, path := range want {
		if written[i] != path {
			t.Errorf("written[%d] = %s, want %s", i, written[i], path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not written: %v", path, err)
		}
	}
}
