package cache

// Keyer derives cache keys for pipeline stages.
type Keyer interface {
	// LayoutKey identifies a geometry computed from the inputs digest.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies one encoded output of a geometry.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes the geometry.
type LayoutKeyOpts struct {
	Rows            int      `json:"rows"`
	RowLabels       []string `json:"row_labels,omitempty"`
	ColumnLabels    []string `json:"column_labels,omitempty"`
	RowAlignment    string   `json:"row_alignment"`
	ColumnAlignment string   `json:"column_alignment"`
	TopPadding      int      `json:"top_padding"`
	LeftPadding     int      `json:"left_padding"`
	Gutter          int      `json:"gutter"`
	FontSize        float64  `json:"font_size"`
	LineSpacing     int      `json:"line_spacing"`
	FontHash        string   `json:"font_hash,omitempty"`
}

// ArtifactKeyOpts lists every option that changes an encoded artifact.
type ArtifactKeyOpts struct {
	Kind    string `json:"kind"`   // "image", "debug" or "geometry"
	Format  string `json:"format"` // output file extension
	Quality int    `json:"quality,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
