package layout

import "github.com/matzehuels/jappaper/pkg/page"

// GridConfig configures a manual grid of addressable cells. A Rows or Cols
// of zero (or less) fills as many as fit.
type GridConfig struct {
	Rows     int
	Cols     int
	CellSize float64
	Gap      float64
	Margin   float64
}

// GridLayout is a manual grid placed on a page.
type GridLayout struct {
	Rows     int
	Cols     int
	CellSize float64
	Gap      float64
	// Region is the area covered by all cells and the gaps between them.
	Region Rect
	// Max is the largest grid that would fit with the same cell size and gap.
	Max Fit
}

// ComputeGrid places cfg on a page of dimensions d. Requested counts are
// capped by [MaxFit]. It returns false when no cell fits.
func ComputeGrid(cfg GridConfig, d page.Dimensions) (GridLayout, bool) {
	fit := MaxFit(d, cfg.Margin, cfg.CellSize, cfg.Gap)
	rows := effective(cfg.Rows, fit.Rows)
	cols := effective(cfg.Cols, fit.Cols)
	if rows <= 0 || cols <= 0 {
		return GridLayout{Max: fit}, false
	}

	availW, availH := Available(d, cfg.Margin)
	totalW := span(cols, cfg.CellSize, cfg.Gap)
	totalH := span(rows, cfg.CellSize, cfg.Gap)
	return GridLayout{
		Rows:     rows,
		Cols:     cols,
		CellSize: cfg.CellSize,
		Gap:      cfg.Gap,
		Region: Rect{
			X: centered(cfg.Margin, availW, totalW),
			Y: centered(cfg.Margin, availH, totalH),
			W: totalW,
			H: totalH,
		},
		Max: fit,
	}, true
}

func effective(requested, limit int) int {
	if requested > 0 {
		return min(requested, limit)
	}
	return limit
}

func span(n int, size, gap float64) float64 {
	return float64(n)*size + float64(n-1)*gap
}

// Pitch is the distance between the origins of neighbouring cells.
func (g GridLayout) Pitch() float64 { return g.CellSize + g.Gap }

// Bands returns one rectangle per row, spanning the grid's full width.
func (g GridLayout) Bands() []Rect {
	bands := make([]Rect, g.Rows)
	for r := range bands {
		bands[r] = Rect{
			X: g.Region.X,
			Y: g.Region.Y + float64(r)*g.Pitch(),
			W: g.Region.W,
			H: g.CellSize,
		}
	}
	return bands
}

// Cell returns the rectangle of the cell at (row, col). Coordinates outside
// the grid extrapolate.
func (g GridLayout) Cell(row, col int) Rect {
	return Rect{
		X: g.Region.X + float64(col)*g.Pitch(),
		Y: g.Region.Y + float64(row)*g.Pitch(),
		W: g.CellSize,
		H: g.CellSize,
	}
}

// Contains reports whether (row, col) is a visible cell.
func (g GridLayout) Contains(row, col int) bool {
	return row >= 0 && col >= 0 && row < g.Rows && col < g.Cols
}

// CellBasisPercent is one cell's width as a percentage of a row band.
func (g GridLayout) CellBasisPercent() float64 { return pct(g.CellSize, g.Region.W) }

// GapPercent is the gap between cells as a percentage of a row band.
func (g GridLayout) GapPercent() float64 { return pct(g.Gap, g.Region.W) }

// RowGapPercent is the gap between row bands as a percentage of the grid
// height.
func (g GridLayout) RowGapPercent() float64 { return pct(g.Gap, g.Region.H) }
