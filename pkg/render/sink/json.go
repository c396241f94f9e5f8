package sink

import (
	"encoding/json"

	"github.com/matzehuels/jappaper/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	hideTrace   bool
	withDormant bool
}

// WithJSONWithoutTrace leaves out the cells.
func WithJSONWithoutTrace() JSONOption { return func(r *jsonRenderer) { r.hideTrace = true } }

// WithJSONDormant includes cells that lie outside the visible grid.
func WithJSONDormant() JSONOption { return func(r *jsonRenderer) { r.withDormant = true } }

type jsonOutput struct {
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Background string       `json:"background"`
	Pattern    *jsonPattern `json:"pattern,omitempty"`
	Grid       *jsonGrid    `json:"grid,omitempty"`
	Cells      []jsonCell   `json:"cells,omitempty"`
}

type jsonPattern struct {
	Kind    layout.Kind        `json:"kind"`
	Color   string             `json:"color"`
	Opacity float64            `json:"opacity"`
	Region  jsonRect           `json:"region"`
	Tile    jsonSize           `json:"tile"`
	Cols    int                `json:"cols"`
	Rows    int                `json:"rows"`
	Dot     *jsonDot           `json:"dot,omitempty"`
	Border  *jsonBorder        `json:"border,omitempty"`
	Image   string             `json:"image,omitempty"`
	Percent layout.PercentRect `json:"percent"`
}

type jsonRect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

type jsonSize struct {
	W        float64 `json:"width"`
	H        float64 `json:"height"`
	WPercent float64 `json:"width_percent"`
	HPercent float64 `json:"height_percent"`
}

type jsonDot struct {
	Radius  float64 `json:"radius"`
	Feather float64 `json:"feather"`
}

type jsonBorder struct {
	Thickness float64 `json:"thickness"`
	WPercent  float64 `json:"width_percent"`
	HPercent  float64 `json:"height_percent"`
}

type jsonGrid struct {
	Rows        int                  `json:"rows"`
	Cols        int                  `json:"cols"`
	MaxRows     int                  `json:"max_rows"`
	MaxCols     int                  `json:"max_cols"`
	CellSize    float64              `json:"cell_size"`
	Gap         float64              `json:"gap"`
	Color       string               `json:"color"`
	Opacity     float64              `json:"opacity"`
	Cross       *jsonCross           `json:"cross,omitempty"`
	Region      jsonRect             `json:"region"`
	Percent     layout.PercentRect   `json:"percent"`
	CellPercent float64              `json:"cell_percent"`
	GapPercent  float64              `json:"gap_percent"`
	Bands       []layout.PercentRect `json:"bands"`
}

type jsonCross struct {
	Style   layout.CrossStyle `json:"style"`
	Color   string            `json:"color"`
	Opacity float64           `json:"opacity"`
}

type jsonCell struct {
	Row     int      `json:"row"`
	Col     int      `json:"col"`
	Char    string   `json:"char"`
	Visible bool     `json:"visible"`
	Rect    jsonRect `json:"rect"`
}

// RenderJSON exports the page geometry as a pretty-printed JSON document, in
// absolute page units and in percentages of the page. Another renderer can
// draw the page from it without re-running the layout.
//
// Opacities are clamped. RenderJSON does not modify p and is safe to call
// concurrently.
func RenderJSON(p layout.Page, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      p.Size.Width,
		Height:     p.Size.Height,
		Background: p.Background,
	}
	if p.Pattern != nil {
		out.Pattern = buildJSONPattern(p)
	}
	if p.Grid != nil {
		out.Grid = buildJSONGrid(p)
		if !r.hideTrace {
			out.Cells = buildJSONCells(p, r.withDormant)
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONRect(r layout.Rect) jsonRect { return jsonRect{X: r.X, Y: r.Y, W: r.W, H: r.H} }

func buildJSONPattern(p layout.Page) *jsonPattern {
	t := *p.Pattern
	wp, hp := t.TilePercent()
	jp := &jsonPattern{
		Kind:    t.Pattern.Kind(),
		Opacity: layout.ClampOpacity(p.PatternOpacity),
		Region:  toJSONRect(t.Region),
		Tile:    jsonSize{W: t.TileW, H: t.TileH, WPercent: wp, HPercent: hp},
		Cols:    t.Cols,
		Rows:    t.Rows,
		Percent: t.Region.Percent(p.Size),
	}
	switch pat := t.Pattern.(type) {
	case layout.Dots:
		jp.Color = pat.Color
		dot, _ := t.Dot()
		jp.Dot = &jsonDot{Radius: dot.Radius, Feather: dot.Feather}
	case layout.Lines:
		jp.Color = pat.Color
	case layout.Grid:
		jp.Color = pat.Color
		bw, bh := t.TrailingPercent()
		jp.Border = &jsonBorder{Thickness: t.Trailing(), WPercent: bw, HPercent: bh}
		tile, _ := t.GridTile()
		jp.Image = tile.DataURI()
	}
	return jp
}

func buildJSONGrid(p layout.Page) *jsonGrid {
	g := *p.Grid
	jg := &jsonGrid{
		Rows:        g.Rows,
		Cols:        g.Cols,
		MaxRows:     g.Max.Rows,
		MaxCols:     g.Max.Cols,
		CellSize:    g.CellSize,
		Gap:         g.Gap,
		Color:       p.GridStyle.Color,
		Opacity:     layout.ClampOpacity(p.GridStyle.Opacity),
		Region:      toJSONRect(g.Region),
		Percent:     g.Region.Percent(p.Size),
		CellPercent: g.CellBasisPercent(),
		GapPercent:  g.GapPercent(),
	}
	if c := p.GridStyle.Cross; c.Enabled {
		jg.Cross = &jsonCross{Style: c.Style, Color: c.Color, Opacity: layout.ClampOpacity(c.Opacity)}
	}
	for _, b := range g.Bands() {
		jg.Bands = append(jg.Bands, b.Percent(p.Size))
	}
	return jg
}

func buildJSONCells(p layout.Page, withDormant bool) []jsonCell {
	var cells []jsonCell
	for _, e := range p.Cells.Entries() {
		if e.Char == "" {
			continue
		}
		visible := p.Grid.Contains(e.Row, e.Col)
		if !visible && !withDormant {
			continue
		}
		cells = append(cells, jsonCell{
			Row:     e.Row,
			Col:     e.Col,
			Char:    e.Char,
			Visible: visible,
			Rect:    toJSONRect(p.Grid.Cell(e.Row, e.Col)),
		})
	}
	return cells
}
