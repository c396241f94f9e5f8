package layout

import "github.com/matzehuels/jappaper/pkg/page"

// Style is the stroke colour and opacity of manual grid cells, along with the
// cross-dividers drawn inside them.
type Style struct {
	Color   string
	Opacity float64
	Cross   Cross
}

// TraceStyle is how characters in cells are drawn.
type TraceStyle struct {
	Color   string
	Opacity float64
}

// PageConfig is everything needed to lay out one page.
type PageConfig struct {
	Size       page.Dimensions
	Background string
	Pattern    PatternConfig
	// Grid is nil when the manual grid is switched off.
	Grid      *GridConfig
	GridStyle Style
	Trace     TraceStyle
	Cells     CellMap
}

// Page is a fully computed page: geometry plus the styles a renderer needs.
// It is a snapshot and is safe to read from several goroutines.
type Page struct {
	Size       page.Dimensions
	Background string

	// Pattern is nil when no pattern is drawn.
	Pattern *Tiling
	// PatternOpacity is unclamped; see [PatternOpacity].
	PatternOpacity float64

	// Grid is nil when no manual grid is drawn.
	Grid      *GridLayout
	GridStyle Style
	Trace     TraceStyle
	Cells     CellMap
}

// Compose computes the page described by cfg.
func Compose(cfg PageConfig) Page {
	p := Page{
		Size:           cfg.Size,
		Background:     cfg.Background,
		PatternOpacity: PatternOpacity(cfg.GridStyle.Opacity),
		GridStyle:      cfg.GridStyle,
		Trace:          cfg.Trace,
		Cells:          cfg.Cells.Clone(),
	}
	if t, ok := cfg.Pattern.Tiling(cfg.Size); ok {
		p.Pattern = &t
	}
	if cfg.Grid != nil {
		if g, ok := ComputeGrid(*cfg.Grid, cfg.Size); ok {
			p.Grid = &g
		}
	}
	return p
}

// VisibleEntries returns the non-empty cells inside the manual grid, in
// row-major order. Dormant entries outside the grid are left out.
func (p Page) VisibleEntries() []Entry {
	if p.Grid == nil {
		return nil
	}
	var out []Entry
	for _, e := range p.Cells.Entries() {
		if e.Char != "" && p.Grid.Contains(e.Row, e.Col) {
			out = append(out, e)
		}
	}
	return out
}
