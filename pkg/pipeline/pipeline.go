// Package pipeline provides the template → layout → render pipeline.
//
// This package is shared by the CLI and the HTTP API so both produce the same
// artifacts for the same template document.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: validate the [template.Document] and compute its page geometry
//     ([layout.Page]). This is synchronous and never touches the cache.
//  2. Render: produce SVG, PNG, PDF or JSON from the geometry. Formats are
//     rendered concurrently, each checked against the artifact cache first.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "pdf"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jappaper/pkg/cache"
	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/render/sink"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists every output format in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// IsFormat reports whether format is one of [Formats].
func IsFormat(format string) bool {
	_, ok := contentTypes[format]
	return ok
}

// ContentType returns the MIME type served for format.
func ContentType(format string) (string, bool) {
	ct, ok := contentTypes[format]
	return ct, ok
}

// DefaultScale is the PNG capture scale.
const DefaultScale = sink.DefaultScale

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options selects the artifacts to render and how. API requests decode into
// it directly.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	FontFile   string   `json:"font_file,omitempty"`
	FontFamily string   `json:"font_family,omitempty"`
	HideTrace  bool     `json:"hide_trace,omitempty"`
	RSVG       bool     `json:"rsvg,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Page is the computed geometry every artifact was rendered from.
	Page layout.Page

	// PageHash identifies the geometry in cache keys and API responses.
	PageHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	// Hits lists the formats served from cache.
	Hits []string
	// RenderHit is true when every artifact came from cache.
	RenderHit bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat returns an INVALID_FORMAT error unless format is one of
// [Formats].
func ValidateFormat(format string) error {
	if !IsFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults fills in defaults and then rejects unknown formats
// and negative scales. Calling it again is harmless.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %g (must be positive)", o.Scale)
	}
	return nil
}

// SetRenderDefaults renders SVG at [DefaultScale] with a silent logger unless
// told otherwise.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one format. Options that do
// not affect a format are left out so they do not split its cache entries.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, HideTrace: o.HideTrace}
	switch format {
	case FormatSVG, FormatPDF:
		k.FontFamily = o.FontFamily
	case FormatPNG:
		k.Scale = o.Scale
		k.RSVG = o.RSVG
		if o.RSVG {
			k.FontFamily = o.FontFamily
		} else {
			k.FontFile = o.FontFile
		}
	}
	return k
}
