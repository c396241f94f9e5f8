package layout

import "github.com/matzehuels/jappaper/pkg/page"

// Rect is an axis-aligned rectangle in page units. Y grows downwards.
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Within reports whether r lies inside the page.
func (r Rect) Within(d page.Dimensions) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= d.Width && r.Bottom() <= d.Height
}

// Percent re-expresses r as percentages of the page.
func (r Rect) Percent(d page.Dimensions) PercentRect {
	return PercentRect{
		Left:   pct(r.X, d.Width),
		Top:    pct(r.Y, d.Height),
		Width:  pct(r.W, d.Width),
		Height: pct(r.H, d.Height),
	}
}

// PercentRect is a rectangle in percent of its container.
type PercentRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func pct(v, of float64) float64 {
	if of == 0 {
		return 0
	}
	return v / of * 100
}

// Available returns the printable width and height after removing margin from
// every side. Negative margins count as zero and the result is never negative.
func Available(d page.Dimensions, margin float64) (w, h float64) {
	m := max(0, margin)
	return max(0, d.Width-2*m), max(0, d.Height-2*m)
}

// centered places a span of length size inside the available span that starts
// at margin.
func centered(margin, avail, size float64) float64 {
	return max(0, margin) + (avail-size)/2
}
