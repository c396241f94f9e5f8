package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/jappaper/pkg/page"
)

// Kind names a pattern variant.
type Kind string

const (
	KindNone  Kind = "none"
	KindDots  Kind = "dots"
	KindLines Kind = "lines"
	KindGrid  Kind = "grid"
)

// ParseKind accepts a pattern kind name. The empty string is [KindNone].
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case "":
		return KindNone, nil
	case KindNone, KindDots, KindLines, KindGrid:
		return k, nil
	}
	return "", fmt.Errorf("invalid pattern kind: %q (must be one of: none, dots, lines, grid)", s)
}

// CrossStyle is the stroke style of grid cross-dividers.
type CrossStyle string

const (
	CrossSolid  CrossStyle = "solid"
	CrossDashed CrossStyle = "dashed"
)

// CrossDash is the fixed on/off dash length for dashed cross-dividers.
const CrossDash = 4

// DotFeather is the antialiasing band added outside each dot's radius.
const DotFeather = 0.5

// Cross configures the centred cross-dividers drawn inside grid cells.
type Cross struct {
	Enabled bool
	Style   CrossStyle
	Color   string
	Opacity float64
}

// Dashed reports whether the cross is drawn dashed.
func (c Cross) Dashed() bool { return c.Style == CrossDashed }

// Pattern is the closed set of repeating page patterns: [NoPattern], [Dots],
// [Lines] and [Grid]. Each variant carries only its own parameters.
type Pattern interface {
	Kind() Kind
	sealed()
}

// NoPattern draws nothing.
type NoPattern struct{}

// Dots is a lattice of round dots, one per cell of pitch Size+Spacing.
type Dots struct {
	Size    float64
	Spacing float64
	Color   string
}

// Lines is a stack of full-width horizontal rules.
type Lines struct {
	Thickness float64
	Spacing   float64
	Color     string
}

// Grid is a ruled grid with optional cross-dividers inside each cell.
type Grid struct {
	Thickness float64
	Spacing   float64
	Color     string
	Cross     Cross
}

func (NoPattern) Kind() Kind { return KindNone }
func (Dots) Kind() Kind      { return KindDots }
func (Lines) Kind() Kind     { return KindLines }
func (Grid) Kind() Kind      { return KindGrid }

func (NoPattern) sealed() {}
func (Dots) sealed()      {}
func (Lines) sealed()     {}
func (Grid) sealed()      {}

// PatternConfig is the flat, serialisable form of a pattern. Fields that do
// not apply to Kind are ignored.
type PatternConfig struct {
	Kind      Kind
	Size      float64
	Spacing   float64
	Thickness float64
	Color     string
	Margin    float64
	Cross     Cross
}

// Pattern converts c into its variant. Unknown kinds map to [NoPattern].
func (c PatternConfig) Pattern() Pattern {
	switch c.Kind {
	case KindDots:
		return Dots{Size: c.Size, Spacing: c.Spacing, Color: c.Color}
	case KindLines:
		return Lines{Thickness: c.Thickness, Spacing: c.Spacing, Color: c.Color}
	case KindGrid:
		return Grid{Thickness: c.Thickness, Spacing: c.Spacing, Color: c.Color, Cross: c.Cross}
	default:
		return NoPattern{}
	}
}

// Tiling computes the tiling of c on a page of dimensions d.
func (c PatternConfig) Tiling(d page.Dimensions) (Tiling, bool) {
	return ComputeTiling(c.Pattern(), c.Margin, d)
}

// Tiling is the placement of a repeating pattern on a page.
//
// Region is the area the tiles cover, already centred in the printable area.
// Tiles of TileW x TileH start at Region's origin. For [Grid] the region also
// includes one trailing border of the grid's thickness along its right and
// bottom edges.
type Tiling struct {
	Pattern Pattern
	Region  Rect
	TileW   float64
	TileH   float64
	Cols    int
	Rows    int
}

// TilePercent returns the tile size as a percentage of the region, the form a
// CSS background-size wants.
func (t Tiling) TilePercent() (w, h float64) {
	return pct(t.TileW, t.Region.W), pct(t.TileH, t.Region.H)
}

// Trailing returns the thickness of the closing right/bottom border. Only
// grids have one.
func (t Tiling) Trailing() float64 {
	if g, ok := t.Pattern.(Grid); ok {
		return g.Thickness
	}
	return 0
}

// TrailingPercent returns Trailing as a percentage of the region's width and
// height.
func (t Tiling) TrailingPercent() (w, h float64) {
	tr := t.Trailing()
	return pct(tr, t.Region.W), pct(tr, t.Region.H)
}

// Dot returns the dot drawn in every cell of a [Dots] tiling.
func (t Tiling) Dot() (DotTile, bool) {
	d, ok := t.Pattern.(Dots)
	if !ok {
		return DotTile{}, false
	}
	return DotTile{
		CX:      t.TileW / 2,
		CY:      t.TileH / 2,
		Radius:  d.Size / 2,
		Feather: DotFeather,
		Color:   d.Color,
	}, true
}

// GridTile returns the vector tile of a [Grid] tiling.
func (t Tiling) GridTile() (GridTile, bool) {
	g, ok := t.Pattern.(Grid)
	if !ok {
		return GridTile{}, false
	}
	return newGridTile(t.TileW, t.TileH, g), true
}

// DotTile is one dot, relative to its cell's top-left corner.
type DotTile struct {
	CX, CY  float64
	Radius  float64
	Feather float64
	Color   string
}

// ComputeTiling tiles p over the printable area of a d-sized page with the
// given margin. It returns false when nothing should be drawn.
func ComputeTiling(p Pattern, margin float64, d page.Dimensions) (Tiling, bool) {
	availW, availH := Available(d, margin)

	switch p := p.(type) {
	case Dots:
		return tileDots(p, margin, availW, availH)
	case Lines:
		return tileLines(p, margin, availW, availH)
	case Grid:
		return tileGrid(p, margin, availW, availH)
	default:
		return Tiling{}, false
	}
}

func tileDots(p Dots, margin, availW, availH float64) (Tiling, bool) {
	pitch := p.Size + p.Spacing
	if p.Size < 0 || !positive(pitch) {
		return Tiling{}, false
	}
	cols := floorCount(availW / pitch)
	rows := floorCount(availH / pitch)
	if cols <= 0 || rows <= 0 {
		return Tiling{}, false
	}

	totalW := float64(cols) * pitch
	totalH := float64(rows) * pitch
	return Tiling{
		Pattern: p,
		Region: Rect{
			X: centered(margin, availW, totalW),
			Y: centered(margin, availH, totalH),
			W: totalW,
			H: totalH,
		},
		TileW: pitch,
		TileH: pitch,
		Cols:  cols,
		Rows:  rows,
	}, true
}

func tileLines(p Lines, margin, availW, availH float64) (Tiling, bool) {
	pitch := p.Thickness + p.Spacing
	if p.Thickness < 0 || !positive(pitch) {
		return Tiling{}, false
	}
	rows := floorCount(availH / pitch)
	if rows <= 0 || availW <= 0 {
		return Tiling{}, false
	}

	totalH := float64(rows) * pitch
	return Tiling{
		Pattern: p,
		Region: Rect{
			X: max(0, margin),
			Y: centered(margin, availH, totalH),
			W: availW,
			H: totalH,
		},
		TileW: availW,
		TileH: pitch,
		Cols:  1,
		Rows:  rows,
	}, true
}

// tileGrid fits whole tiles plus one shared trailing border, then re-derives
// an integer tile size so the tiles fill the space evenly. The line thickness
// is rounded to whole units so every tile edge stays on the unit grid.
func tileGrid(p Grid, margin, availW, availH float64) (Tiling, bool) {
	if p.Thickness < 0 {
		return Tiling{}, false
	}
	p.Thickness = math.Round(p.Thickness)
	t := p.Thickness
	requested := t + p.Spacing
	if !positive(requested) {
		return Tiling{}, false
	}
	cols := floorCount((availW - t) / requested)
	rows := floorCount((availH - t) / requested)
	if cols <= 0 || rows <= 0 {
		return Tiling{}, false
	}

	tileW := math.Floor((availW - t) / float64(cols))
	tileH := math.Floor((availH - t) / float64(rows))
	drawW := float64(cols)*tileW + t
	drawH := float64(rows)*tileH + t
	return Tiling{
		Pattern: p,
		Region: Rect{
			X: centered(margin, availW, drawW),
			Y: centered(margin, availH, drawH),
			W: drawW,
			H: drawH,
		},
		TileW: tileW,
		TileH: tileH,
		Cols:  cols,
		Rows:  rows,
	}, true
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }
