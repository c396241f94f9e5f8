package layout

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GridTile is the repeating image of a [Grid] tiling: a top border, a left
// border and, optionally, two centred cross-dividers. All coordinates are
// integers so edges land on whole units.
type GridTile struct {
	W, H      float64
	Thickness float64
	Color     string
	Cross     Cross
}

func newGridTile(w, h float64, g Grid) GridTile {
	return GridTile{W: w, H: h, Thickness: g.Thickness, Color: g.Color, Cross: g.Cross}
}

// CrossX is the x coordinate of the vertical cross-divider.
func (t GridTile) CrossX() float64 { return math.Floor(t.W / 2) }

// CrossY is the y coordinate of the horizontal cross-divider.
func (t GridTile) CrossY() float64 { return math.Floor(t.H / 2) }

// SVG returns the tile as a standalone SVG document.
func (t GridTile) SVG() []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" shape-rendering="crispEdges">`,
		num(t.W), num(t.H))
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`, num(t.W), num(t.Thickness), t.Color)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%s" height="%s" fill="%s"/>`, num(t.Thickness), num(t.H), t.Color)
	if t.Cross.Enabled {
		stroke := CrossColor(t.Cross.Color, t.Cross.Opacity)
		dash := ""
		if t.Cross.Dashed() {
			dash = fmt.Sprintf(` stroke-dasharray="%d,%d"`, CrossDash, CrossDash)
		}
		cy, cx := num(t.CrossY()), num(t.CrossX())
		fmt.Fprintf(&b, `<line x1="0" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="1"%s/>`,
			cy, num(t.W), cy, stroke, dash)
		fmt.Fprintf(&b, `<line x1="%s" y1="0" x2="%s" y2="%s" stroke="%s" stroke-width="1"%s/>`,
			cx, cx, num(t.H), stroke, dash)
	}
	b.WriteString(`</svg>`)
	return []byte(b.String())
}

// DataURI returns the tile SVG as a base64 data URI, ready for use as a CSS
// background image.
func (t GridTile) DataURI() string {
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(t.SVG())
}

// CrossColor folds an opacity into a hex colour as rgba(). Colours that are
// not #rgb or #rrggbb are returned unchanged.
func CrossColor(hex string, opacity float64) string {
	r, g, b, ok := ParseHex(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, num(ClampOpacity(opacity)))
}

// ParseHex decodes #rgb or #rrggbb.
func ParseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// num formats a coordinate without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
