package pipeline

import (
	"github.com/matzehuels/gridplot/pkg/errors"
	"github.com/matzehuels/gridplot/pkg/io"
)

// Write stores the artifacts of r at the paths named by opts: the output
// image at opts.Output, the debug overlay next to it with "_debug" before
// the extension, and the geometry JSON at opts.GeometryPath when set.
// It returns the written paths in that order.
func (r *Result) Write(opts Options) ([]string, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	type target struct {
		artifact string
		path     string
	}
	targets := []target{{ArtifactImage, opts.Output}}
	if opts.Debug {
		targets = append(targets, target{ArtifactDebug, io.DebugPath(opts.Output)})
	}
	if opts.GeometryPath != "" {
		targets = append(targets, target{ArtifactGeometry, opts.GeometryPath})
	}

	written := make([]string, 0, len(targets))
	for _, t := range targets {
		data, ok := r.Artifacts[t.artifact]
		if !ok {
			return written, errors.New(errors.ErrCodeInternal, "missing %s artifact for %s", t.artifact, t.path)
		}
		if err := io.WriteFile(t.path, data); err != nil {
			return written, err
		}
		written = append(written, t.path)
	}
	return written, nil
}
