// Package page resolves page-size presets and orientation into concrete
// page dimensions.
//
// Dimensions are expressed in abstract "page units", analogous to CSS
// pixels. Presets are authored landscape; portrait is the exact transpose.
//
//	d := page.Resolve("1440", page.Dimensions{}, page.Portrait)
//	// d == page.Dimensions{Width: 1080, Height: 1440}
//
// Resolve never fails: unknown keys and unusable custom resolutions fall back
// to [Default].
package page

import (
	"fmt"
	"math"
	"strings"
)

// Orientation selects landscape or portrait layout.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Preset keys.
const (
	Size1440   = "1440"
	Size1280   = "1280"
	Size720    = "720"
	Size4K     = "4k"
	SizeCustom = "custom"
)

// Dimensions is a page size in page units.
type Dimensions struct {
	Width  float64 `json:"width" toml:"width" yaml:"width" bson:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height" bson:"height"`
}

// Default is used whenever a size key cannot be resolved.
var Default = Dimensions{Width: 1440, Height: 1080}

// Valid reports whether both sides are positive and finite.
func (d Dimensions) Valid() bool { return finite(d.Width) && finite(d.Height) }

func finite(v float64) bool { return v > 0 && !math.IsInf(v, 1) }

// Transpose swaps width and height.
func (d Dimensions) Transpose() Dimensions { return Dimensions{Width: d.Height, Height: d.Width} }

// Aspect returns width / height.
func (d Dimensions) Aspect() float64 { return d.Width / d.Height }

func (d Dimensions) String() string { return fmt.Sprintf("%gx%g", d.Width, d.Height) }

// Preset is a labelled landscape page size.
type Preset struct {
	Key   string
	Label string
	Dimensions
}

var presets = []Preset{
	{Key: Size1440, Label: "1440p (Standard)", Dimensions: Dimensions{1440, 1080}},
	{Key: Size1280, Label: "1280p (HD)", Dimensions: Dimensions{1280, 720}},
	{Key: Size720, Label: "720p (SD)", Dimensions: Dimensions{720, 480}},
	{Key: Size4K, Label: "4K (Ultra HD)", Dimensions: Dimensions{3840, 2160}},
	{Key: SizeCustom, Label: "Custom", Dimensions: Dimensions{1440, 1080}},
}

// Presets returns the page-size presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Lookup returns the preset registered under key.
func Lookup(key string) (Preset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Resolve maps a size key, a custom resolution and an orientation to page
// dimensions. The custom resolution is only consulted when size is
// [SizeCustom].
func Resolve(size string, custom Dimensions, o Orientation) Dimensions {
	d := Default
	if p, ok := Lookup(size); ok {
		d = p.Dimensions
	}
	if size == SizeCustom {
		d = custom
		if !d.Valid() {
			d = Default
		}
	}
	if o == Portrait {
		return d.Transpose()
	}
	return d
}

// ParseOrientation accepts "landscape" or "portrait" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(strings.ToLower(strings.TrimSpace(s))) {
	case Landscape, "":
		return Landscape, nil
	case Portrait:
		return Portrait, nil
	}
	return "", fmt.Errorf("invalid orientation: %q (must be 'landscape' or 'portrait')", s)
}
