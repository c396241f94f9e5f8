package template

import (
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
	"github.com/matzehuels/jappaper/pkg/trace"
)

// Dimensions resolves the page size.
func (d *Document) Dimensions() page.Dimensions {
	return page.Resolve(d.Page.Size, d.Page.Custom, d.Page.Orientation)
}

// Background resolves the page colour.
func (d *Document) Background() string {
	return page.ResolveColor(d.Page.Color, d.Page.CustomColor)
}

// CrossConfig returns the cross-divider settings.
func (d *Document) CrossConfig() layout.Cross {
	return layout.Cross{
		Enabled: d.Cross.Enabled,
		Style:   d.Cross.Style,
		Color:   d.Cross.Color,
		Opacity: d.Cross.Opacity,
	}
}

// PatternConfig returns the pattern settings. Patterns share the grid margin.
func (d *Document) PatternConfig() layout.PatternConfig {
	return layout.PatternConfig{
		Kind:      d.Pattern.Kind,
		Size:      d.Pattern.Size,
		Spacing:   d.Pattern.Spacing,
		Thickness: d.Pattern.Thickness,
		Color:     d.Pattern.Color,
		Margin:    d.Grid.Margin,
		Cross:     d.CrossConfig(),
	}
}

// GridConfig returns the manual grid settings, whether or not the grid is
// enabled.
func (d *Document) GridConfig() layout.GridConfig {
	return layout.GridConfig{
		Rows:     d.Grid.Rows,
		Cols:     d.Grid.Cols,
		CellSize: d.Grid.CellSize,
		Gap:      d.Grid.Gap,
		Margin:   d.Grid.Margin,
	}
}

// MaxFit is the largest manual grid the current page and cell size allow.
func (d *Document) MaxFit() layout.Fit {
	return layout.MaxFit(d.Dimensions(), d.Grid.Margin, d.Grid.CellSize, d.Grid.Gap)
}

// CellMap returns the cells as a map.
func (d *Document) CellMap() layout.CellMap {
	return layout.FromEntries(d.Cells)
}

// SetCells replaces the cells with the contents of m.
func (d *Document) SetCells(m layout.CellMap) {
	d.Cells = m.Entries()
}

// WriteCell stores value at (row, col).
func (d *Document) WriteCell(row, col int, value string) {
	d.SetCells(layout.WriteCell(d.CellMap(), row, col, value))
}

// ApplyImport merges an import result into the document and turns the grid
// on.
func (d *Document) ApplyImport(res trace.Result) {
	d.SetCells(res.Cells)
	d.Grid.Rows = res.Grid.Rows
	d.Grid.Cols = res.Grid.Cols
	d.Grid.Enabled = true
}

// ApplyGenerated replaces the cells and grid geometry with a generated grid.
func (d *Document) ApplyGenerated(g trace.Generated) {
	d.SetCells(g.Cells)
	d.Grid.Rows = g.Grid.Rows
	d.Grid.Cols = g.Grid.Cols
	d.Grid.CellSize = g.Grid.CellSize
	d.Grid.Gap = g.Grid.Gap
	d.Grid.Margin = g.Grid.Margin
	d.Grid.Enabled = true
}

// GridSize is the configured manual grid size.
func (d *Document) GridSize() trace.Size {
	return trace.Size{Rows: d.Grid.Rows, Cols: d.Grid.Cols}
}

// Layout computes the page geometry.
func (d *Document) Layout() layout.Page {
	cfg := layout.PageConfig{
		Size:       d.Dimensions(),
		Background: d.Background(),
		Pattern:    d.PatternConfig(),
		GridStyle: layout.Style{
			Color:   d.Grid.Color,
			Opacity: d.Grid.Opacity,
			Cross:   d.CrossConfig(),
		},
		Trace: layout.TraceStyle{Color: d.Trace.Color, Opacity: d.Trace.Opacity},
		Cells: d.CellMap(),
	}
	if d.Grid.Enabled {
		g := d.GridConfig()
		cfg.Grid = &g
	}
	return layout.Compose(cfg)
}
