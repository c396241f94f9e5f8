package sink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/render"
)

// DefaultScale is the PNG capture scale.
const DefaultScale = 2.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts   []SVGOption
	scale     float64
	fontFile  string
	rsvg      bool
	hideTrace bool
}

// WithPNGSVGOptions passes options through to the SVG renderer when
// rasterising through rsvg-convert.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithFontFile sets a TrueType font for trace characters. The built-in Go
// font has no CJK glyphs.
func WithFontFile(path string) PNGOption {
	return func(r *pngRenderer) { r.fontFile = path }
}

// WithRSVG rasterises the SVG output with rsvg-convert instead of the native
// renderer.
func WithRSVG() PNGOption { return func(r *pngRenderer) { r.rsvg = true } }

// WithPNGWithoutTrace leaves out the characters.
func WithPNGWithoutTrace() PNGOption { return func(r *pngRenderer) { r.hideTrace = true } }

// RenderPNG renders the page as PNG. The image is the page size times the
// scale.
func RenderPNG(ctx context.Context, p layout.Page, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultScale}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, fmt.Errorf("invalid scale: %g", r.scale)
	}
	if r.rsvg {
		svgOpts := r.svgOpts
		if r.hideTrace {
			svgOpts = append(svgOpts, WithoutTrace())
		}
		return render.ToPNG(ctx, RenderSVG(p, svgOpts...), r.scale)
	}
	return r.raster(p)
}

func (r pngRenderer) raster(p layout.Page) ([]byte, error) {
	w := int(math.Ceil(p.Size.Width * r.scale))
	h := int(math.Ceil(p.Size.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty page: %v", p.Size)
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	dc.SetColor(hexColor(p.Background, 1))
	dc.DrawRectangle(0, 0, p.Size.Width, p.Size.Height)
	dc.Fill()

	if p.Pattern != nil {
		drawPattern(dc, *p.Pattern, layout.ClampOpacity(p.PatternOpacity))
	}
	if p.Grid != nil {
		var f *truetype.Font
		if !r.hideTrace && len(p.VisibleEntries()) > 0 {
			var err error
			if f, err = loadFont(r.fontFile); err != nil {
				return nil, err
			}
		}
		drawGrid(dc, p, f)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawPattern(dc *gg.Context, t layout.Tiling, opacity float64) {
	reg := t.Region
	switch p := t.Pattern.(type) {
	case layout.Dots:
		dot, _ := t.Dot()
		for row := range t.Rows {
			for col := range t.Cols {
				cx := reg.X + float64(col)*t.TileW + dot.CX
				cy := reg.Y + float64(row)*t.TileH + dot.CY
				outer := dot.Radius + dot.Feather
				grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, outer)
				grad.AddColorStop(dot.Radius/outer, hexColor(p.Color, opacity))
				grad.AddColorStop(1, hexColor(p.Color, 0))
				dc.SetFillStyle(grad)
				dc.DrawCircle(cx, cy, outer)
				dc.Fill()
			}
		}
	case layout.Lines:
		dc.SetColor(hexColor(p.Color, opacity))
		for row := range t.Rows {
			dc.DrawRectangle(reg.X, reg.Y+float64(row)*t.TileH, reg.W, p.Thickness)
		}
		dc.Fill()
	case layout.Grid:
		tile, _ := t.GridTile()
		dc.SetColor(hexColor(p.Color, opacity))
		for col := range t.Cols {
			dc.DrawRectangle(reg.X+float64(col)*t.TileW, reg.Y, tile.Thickness, reg.H)
		}
		for row := range t.Rows {
			dc.DrawRectangle(reg.X, reg.Y+float64(row)*t.TileH, reg.W, tile.Thickness)
		}
		dc.DrawRectangle(reg.Right()-tile.Thickness, reg.Y, tile.Thickness, reg.H)
		dc.DrawRectangle(reg.X, reg.Bottom()-tile.Thickness, reg.W, tile.Thickness)
		dc.Fill()

		if tile.Cross.Enabled {
			dc.Push()
			setCrossStroke(dc, tile.Cross, opacity*layout.ClampOpacity(tile.Cross.Opacity))
			for row := range t.Rows {
				for col := range t.Cols {
					x := reg.X + float64(col)*t.TileW
					y := reg.Y + float64(row)*t.TileH
					dc.DrawLine(x, y+tile.CrossY(), x+t.TileW, y+tile.CrossY())
					dc.DrawLine(x+tile.CrossX(), y, x+tile.CrossX(), y+t.TileH)
				}
			}
			dc.Stroke()
			dc.Pop()
		}
	}
}

func drawGrid(dc *gg.Context, p layout.Page, f *truetype.Font) {
	g := *p.Grid
	style := p.GridStyle
	cellOpacity := layout.ClampOpacity(style.Opacity)

	dc.Push()
	dc.SetLineWidth(1)
	dc.SetColor(hexColor(style.Color, cellOpacity))
	for row := range g.Rows {
		for col := range g.Cols {
			c := g.Cell(row, col)
			dc.DrawRectangle(c.X+0.5, c.Y+0.5, max(0, c.W-1), max(0, c.H-1))
		}
	}
	dc.Stroke()

	if style.Cross.Enabled {
		setCrossStroke(dc, style.Cross, cellOpacity*layout.ClampOpacity(style.Cross.Opacity))
		for row := range g.Rows {
			for col := range g.Cols {
				c := g.Cell(row, col)
				dc.DrawLine(c.X, c.CenterY(), c.Right(), c.CenterY())
				dc.DrawLine(c.CenterX(), c.Y, c.CenterX(), c.Bottom())
			}
		}
		dc.Stroke()
	}
	dc.Pop()

	if f == nil {
		return
	}
	face := truetype.NewFace(f, &truetype.Options{Size: g.CellSize * TextScale, Hinting: font.HintingNone})
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(hexColor(p.Trace.Color, cellOpacity*layout.ClampOpacity(p.Trace.Opacity)))
	for _, e := range p.VisibleEntries() {
		c := g.Cell(e.Row, e.Col)
		dc.DrawStringAnchored(e.Char, c.CenterX(), c.CenterY(), 0.5, 0.35)
	}
}

func setCrossStroke(dc *gg.Context, c layout.Cross, alpha float64) {
	dc.SetLineWidth(1)
	dc.SetColor(hexColor(c.Color, alpha))
	if c.Dashed() {
		dc.SetDash(layout.CrossDash, layout.CrossDash)
	} else {
		dc.SetDash()
	}
}

func loadFont(path string) (*truetype.Font, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// hexColor converts #rgb or #rrggbb and an opacity into a colour. Unparseable
// input is black.
func hexColor(hex string, alpha float64) color.Color {
	r, g, b, _ := layout.ParseHex(hex)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(layout.ClampOpacity(alpha) * 255))}
}
