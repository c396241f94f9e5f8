package trace

import (
	"slices"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
)

// GeneratorConfig configures [Generate].
type GeneratorConfig struct {
	CellSize float64 `json:"cell_size"`
	Margin   float64 `json:"margin"`
	Gap      float64 `json:"gap"`
	Char     string  `json:"char"`
}

// DefaultGenerator matches the generator's initial settings.
var DefaultGenerator = GeneratorConfig{CellSize: 60, Margin: 80, Gap: 10, Char: "あ"}

// Generated is a freshly filled grid.
type Generated struct {
	Cells layout.CellMap
	Grid  layout.GridConfig
}

// Generate fills every cell that fits on a d-sized page with cfg.Char. The
// returned map replaces any existing cells; the grid is sized to the fit.
func Generate(d page.Dimensions, cfg GeneratorConfig) Generated {
	fit := layout.MaxFit(d, cfg.Margin, cfg.CellSize, cfg.Gap)
	cells := make(layout.CellMap, fit.Rows*fit.Cols)
	for r := range fit.Rows {
		for c := range fit.Cols {
			cells[layout.Cell{Row: r, Col: c}] = cfg.Char
		}
	}
	return Generated{
		Cells: cells,
		Grid: layout.GridConfig{
			Rows:     fit.Rows,
			Cols:     fit.Cols,
			CellSize: cfg.CellSize,
			Gap:      cfg.Gap,
			Margin:   cfg.Margin,
		},
	}
}

// Preset is a named generator configuration.
type Preset struct {
	Name  string
	Label string
	GeneratorConfig
}

var presets = []Preset{
	{Name: "genkoyoshi", Label: "Genkoyoshi", GeneratorConfig: GeneratorConfig{CellSize: 80, Margin: 80, Gap: 10}},
	{Name: "kanji", Label: "Kanji Grid", GeneratorConfig: GeneratorConfig{CellSize: 100, Margin: 60, Gap: 10, Char: "あ"}},
	{Name: "kana", Label: "Kana Practice", GeneratorConfig: GeneratorConfig{CellSize: 140, Margin: 120, Gap: 20, Char: "あ"}},
}

// Presets returns the generator presets in display order.
func Presets() []Preset { return slices.Clone(presets) }

// LookupPreset returns the preset called name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, errors.New(errors.ErrCodeInvalidInput, "unknown generator preset: %q (must be one of: genkoyoshi, kanji, kana)", name)
}
