package layout

import (
	"encoding/json"

	"github.com/matzehuels/gridplot/pkg/errors"
)

// MarshalGeometry exports g as a pretty-printed JSON document.
func MarshalGeometry(g *Geometry) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// UnmarshalGeometry parses a document written by [MarshalGeometry] and
// validates it before returning.
func UnmarshalGeometry(data []byte) (*Geometry, error) {
	var g Geometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse geometry")
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}
