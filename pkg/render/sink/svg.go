package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/jappaper/pkg/layout"
)

// TextScale is a character's font size relative to its cell.
const TextScale = 0.7

// DefaultFontFamily is the font stack used for trace characters in SVG.
const DefaultFontFamily = `"Noto Sans JP", "Hiragino Sans", "Yu Gothic", sans-serif`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fontFamily string
	hideTrace  bool
}

// WithFontFamily sets the CSS font stack for trace characters.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// WithoutTrace leaves out the characters, drawing only the empty grid.
func WithoutTrace() SVGOption { return func(r *svgRenderer) { r.hideTrace = true } }

// RenderSVG draws p as an SVG document whose view box is the page.
func RenderSVG(p layout.Page, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	w, h := p.Size.Width, p.Size.Height

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(w), num(h), num(w), num(h))
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(w), num(h), esc(p.Background))

	if p.Pattern != nil {
		renderPattern(&buf, *p.Pattern, layout.ClampOpacity(p.PatternOpacity))
	}
	if p.Grid != nil {
		renderGrid(&buf, p, r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{fontFamily: DefaultFontFamily}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderPattern(buf *bytes.Buffer, t layout.Tiling, opacity float64) {
	reg := t.Region
	buf.WriteString("  <defs>\n")
	if dot, ok := t.Dot(); ok {
		outer := dot.Radius + dot.Feather
		buf.WriteString(`    <radialGradient id="dot-fill">` + "\n")
		fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"/>`+"\n", num(dot.Radius/outer), esc(dot.Color))
		fmt.Fprintf(buf, `      <stop offset="1" stop-color="%s" stop-opacity="0"/>`+"\n", esc(dot.Color))
		buf.WriteString("    </radialGradient>\n")
	}
	fmt.Fprintf(buf, `    <pattern id="page-pattern" patternUnits="userSpaceOnUse" x="%s" y="%s" width="%s" height="%s">`+"\n",
		num(reg.X), num(reg.Y), num(t.TileW), num(t.TileH))

	switch p := t.Pattern.(type) {
	case layout.Dots:
		dot, _ := t.Dot()
		fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="url(#dot-fill)"/>`+"\n",
			num(dot.CX), num(dot.CY), num(dot.Radius+dot.Feather))
	case layout.Lines:
		fmt.Fprintf(buf, `      <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n",
			num(t.TileW), num(p.Thickness), esc(p.Color))
	case layout.Grid:
		tile, _ := t.GridTile()
		renderGridTile(buf, tile)
	}
	buf.WriteString("    </pattern>\n  </defs>\n")

	fmt.Fprintf(buf, `  <g id="pattern" opacity="%s">`+"\n", num(opacity))
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="url(#page-pattern)"/>`+"\n",
		num(reg.X), num(reg.Y), num(reg.W), num(reg.H))
	if tr := t.Trailing(); tr > 0 {
		color := esc(t.Pattern.(layout.Grid).Color)
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(reg.Right()-tr), num(reg.Y), num(tr), num(reg.H), color)
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(reg.X), num(reg.Bottom()-tr), num(reg.W), num(tr), color)
	}
	buf.WriteString("  </g>\n")
}

// renderGridTile draws the tile inside a <pattern>. Same shapes as
// [layout.GridTile.SVG], without the outer document.
func renderGridTile(buf *bytes.Buffer, t layout.GridTile) {
	buf.WriteString(`      <g shape-rendering="crispEdges">` + "\n")
	fmt.Fprintf(buf, `        <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(t.W), num(t.Thickness), esc(t.Color))
	fmt.Fprintf(buf, `        <rect x="0" y="0" width="%s" height="%s" fill="%s"/>`+"\n", num(t.Thickness), num(t.H), esc(t.Color))
	if t.Cross.Enabled {
		stroke := esc(layout.CrossColor(t.Cross.Color, t.Cross.Opacity))
		dash := dashAttr(t.Cross)
		fmt.Fprintf(buf, `        <line x1="0" y1="%[1]s" x2="%[2]s" y2="%[1]s" stroke="%[3]s" stroke-width="1"%[4]s/>`+"\n",
			num(t.CrossY()), num(t.W), stroke, dash)
		fmt.Fprintf(buf, `        <line x1="%[1]s" y1="0" x2="%[1]s" y2="%[2]s" stroke="%[3]s" stroke-width="1"%[4]s/>`+"\n",
			num(t.CrossX()), num(t.H), stroke, dash)
	}
	buf.WriteString("      </g>\n")
}

// renderGrid draws the manual grid. Each cell is a group at the grid opacity
// holding its outline, its cross and its character, so the opacities multiply.
func renderGrid(buf *bytes.Buffer, p layout.Page, r svgRenderer) {
	g := *p.Grid
	style := p.GridStyle
	fmt.Fprintf(buf, `  <g id="grid" fill="none" stroke="%s" stroke-width="1">`+"\n", esc(style.Color))
	cellOpacity := num(layout.ClampOpacity(style.Opacity))

	for row := range g.Rows {
		for col := range g.Cols {
			c := g.Cell(row, col)
			fmt.Fprintf(buf, `    <g opacity="%s">`+"\n", cellOpacity)
			fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n",
				num(c.X+0.5), num(c.Y+0.5), num(max(0, c.W-1)), num(max(0, c.H-1)))
			if style.Cross.Enabled {
				renderCellCross(buf, c, style.Cross)
			}
			if ch := layout.ReadCell(p.Cells, row, col); ch != "" && !r.hideTrace {
				renderChar(buf, c, ch, p.Trace, r.fontFamily)
			}
			buf.WriteString("    </g>\n")
		}
	}
	buf.WriteString("  </g>\n")
}

func renderCellCross(buf *bytes.Buffer, c layout.Rect, cross layout.Cross) {
	fmt.Fprintf(buf, `      <g stroke="%s" stroke-opacity="%s"%s>`+"\n",
		esc(cross.Color), num(layout.ClampOpacity(cross.Opacity)), dashAttr(cross))
	fmt.Fprintf(buf, `        <line x1="%[1]s" y1="%[2]s" x2="%[3]s" y2="%[2]s"/>`+"\n", num(c.X), num(c.CenterY()), num(c.Right()))
	fmt.Fprintf(buf, `        <line x1="%[1]s" y1="%[2]s" x2="%[1]s" y2="%[3]s"/>`+"\n", num(c.CenterX()), num(c.Y), num(c.Bottom()))
	buf.WriteString("      </g>\n")
}

func renderChar(buf *bytes.Buffer, c layout.Rect, ch string, style layout.TraceStyle, fontFamily string) {
	fmt.Fprintf(buf, `      <text x="%s" y="%s" font-size="%s" font-family="%s" text-anchor="middle" dominant-baseline="central" stroke="none" fill="%s" fill-opacity="%s">%s</text>`+"\n",
		num(c.CenterX()), num(c.CenterY()), num(c.H*TextScale), esc(fontFamily),
		esc(style.Color), num(layout.ClampOpacity(style.Opacity)), esc(ch))
}

func dashAttr(c layout.Cross) string {
	if !c.Dashed() {
		return ""
	}
	return fmt.Sprintf(` stroke-dasharray="%d,%d"`, layout.CrossDash, layout.CrossDash)
}

func esc(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
