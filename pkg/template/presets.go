package template

import (
	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
)

// Preset is a quick-start template.
type Preset struct {
	Name        string
	Label       string
	Description string
	apply       func(*Document)
}

var presets = []Preset{
	{
		Name:        "practice",
		Label:       "Japanese Practice",
		Description: "Classic genkoyoshi-style practice grid",
		apply: func(d *Document) {
			d.Pattern.Kind = layout.KindNone
			d.Grid = GridSettings{
				Enabled:  true,
				Rows:     22,
				Cols:     22,
				CellSize: 45,
				Margin:   20,
				Gap:      0,
				Opacity:  0.3,
				Color:    "#000000",
			}
			d.Cross = CrossSettings{
				Enabled: true,
				Style:   layout.CrossDashed,
				Color:   "#000000",
				Opacity: 0.4,
			}
		},
	},
	{
		Name:        "graph",
		Label:       "Graph Paper",
		Description: "Ruled grid pattern without a manual grid",
		apply: func(d *Document) {
			d.Pattern.Kind = layout.KindGrid
			d.Pattern.Thickness = 1
			d.Pattern.Spacing = 45
			d.Pattern.Color = "#94a3b8"
			d.Grid.Enabled = false
			d.Cross.Enabled = false
		},
	},
	{
		Name:        "blank",
		Label:       "Blank Canvas",
		Description: "No pattern and no grid",
		apply: func(d *Document) {
			d.Pattern.Kind = layout.KindNone
			d.Grid.Enabled = false
			d.Cross.Enabled = false
		},
	},
}

// Presets returns the quick-start presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// New returns a default document with the named preset applied. The empty
// name yields the defaults.
func New(preset string) (*Document, error) {
	d := Default()
	if preset == "" {
		return d, nil
	}
	for _, p := range presets {
		if p.Name == preset {
			p.apply(d)
			d.Name = p.Label
			return d, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown preset: %q (must be one of: practice, graph, blank)", preset)
}
