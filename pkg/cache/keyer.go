package cache

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key of one rendered artifact. pageHash is the
	// [Hash] of the computed page layout.
	ArtifactKey(pageHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	FontFile   string  `json:"font_file,omitempty"`
	FontFamily string  `json:"font_family,omitempty"`
	HideTrace  bool    `json:"hide_trace,omitempty"`
	RSVG       bool    `json:"rsvg,omitempty"`
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey hashes the page hash together with the render options.
func (DefaultKeyer) ArtifactKey(pageHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pageHash, opts)
}

var _ Keyer = DefaultKeyer{}
