// Package template defines the template document: the complete, explicit
// configuration of one practice-paper page.
//
// A [Document] is a plain value. It is loaded from and saved to TOML, YAML or
// JSON files, stored in a [github.com/matzehuels/jappaper/pkg/store.Store],
// and converted into geometry with [Document.Layout]. Nothing outside the
// document affects what gets rendered.
package template

import (
	"time"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
)

// Document is a practice-paper template.
type Document struct {
	ID        string    `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty" bson:"_id"`
	Name      string    `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty" bson:"name"`
	UpdatedAt time.Time `json:"updated_at,omitzero" toml:"updated_at,omitempty" yaml:"updated_at,omitempty" bson:"updated_at"`

	Page    PageSettings    `json:"page" toml:"page" yaml:"page" bson:"page"`
	Pattern PatternSettings `json:"pattern" toml:"pattern" yaml:"pattern" bson:"pattern"`
	Cross   CrossSettings   `json:"cross" toml:"cross" yaml:"cross" bson:"cross"`
	Grid    GridSettings    `json:"grid" toml:"grid" yaml:"grid" bson:"grid"`
	Trace   TraceSettings   `json:"trace" toml:"trace" yaml:"trace" bson:"trace"`

	// Cells are zero-based. Entries outside the current grid are kept.
	Cells []layout.Entry `json:"cells,omitempty" toml:"cells,omitempty" yaml:"cells,omitempty" bson:"cells"`
}

// PageSettings selects page size, orientation and background.
type PageSettings struct {
	Size        string           `json:"size" toml:"size" yaml:"size" bson:"size"`
	Custom      page.Dimensions  `json:"custom" toml:"custom" yaml:"custom" bson:"custom"`
	Orientation page.Orientation `json:"orientation" toml:"orientation" yaml:"orientation" bson:"orientation"`
	Color       string           `json:"color" toml:"color" yaml:"color" bson:"color"`
	CustomColor string           `json:"custom_color" toml:"custom_color" yaml:"custom_color" bson:"custom_color"`
}

// PatternSettings configures the repeating background pattern. Size applies
// to dots; Thickness to lines and grids.
type PatternSettings struct {
	Kind      layout.Kind `json:"kind" toml:"kind" yaml:"kind" bson:"kind"`
	Size      float64     `json:"size" toml:"size" yaml:"size" bson:"size"`
	Spacing   float64     `json:"spacing" toml:"spacing" yaml:"spacing" bson:"spacing"`
	Thickness float64     `json:"thickness" toml:"thickness" yaml:"thickness" bson:"thickness"`
	Color     string      `json:"color" toml:"color" yaml:"color" bson:"color"`
}

// CrossSettings configures the cross-dividers inside grid pattern tiles and
// manual grid cells.
type CrossSettings struct {
	Enabled bool              `json:"enabled" toml:"enabled" yaml:"enabled" bson:"enabled"`
	Style   layout.CrossStyle `json:"style" toml:"style" yaml:"style" bson:"style"`
	Color   string            `json:"color" toml:"color" yaml:"color" bson:"color"`
	Opacity float64           `json:"opacity" toml:"opacity" yaml:"opacity" bson:"opacity"`
}

// GridSettings configures the manual grid. Margin and Opacity are shared with
// the pattern. Rows or Cols of zero fill the page.
type GridSettings struct {
	Enabled  bool    `json:"enabled" toml:"enabled" yaml:"enabled" bson:"enabled"`
	Rows     int     `json:"rows" toml:"rows" yaml:"rows" bson:"rows"`
	Cols     int     `json:"cols" toml:"cols" yaml:"cols" bson:"cols"`
	CellSize float64 `json:"cell_size" toml:"cell_size" yaml:"cell_size" bson:"cell_size"`
	Gap      float64 `json:"gap" toml:"gap" yaml:"gap" bson:"gap"`
	Margin   float64 `json:"margin" toml:"margin" yaml:"margin" bson:"margin"`
	Color    string  `json:"color" toml:"color" yaml:"color" bson:"color"`
	Opacity  float64 `json:"opacity" toml:"opacity" yaml:"opacity" bson:"opacity"`
}

// TraceSettings is the style of characters written into cells.
type TraceSettings struct {
	Color   string  `json:"color" toml:"color" yaml:"color" bson:"color"`
	Opacity float64 `json:"opacity" toml:"opacity" yaml:"opacity" bson:"opacity"`
}

// Default returns a document with every setting at its default.
func Default() *Document {
	return &Document{
		Page: PageSettings{
			Size:        page.Size1440,
			Custom:      page.Default,
			Orientation: page.Landscape,
			Color:       "white",
			CustomColor: page.DefaultColor,
		},
		Pattern: PatternSettings{
			Kind:      layout.KindNone,
			Size:      4,
			Spacing:   20,
			Thickness: 1,
			Color:     "#cbd5e1",
		},
		Cross: CrossSettings{
			Style:   layout.CrossDashed,
			Color:   "#cbd5e1",
			Opacity: 0.4,
		},
		Grid: GridSettings{
			Rows:     22,
			Cols:     22,
			CellSize: 45,
			Margin:   20,
			Color:    "#000000",
			Opacity:  0.3,
		},
		Trace: TraceSettings{
			Color:   "#000000",
			Opacity: 0.6,
		},
	}
}

// SetDefaults fills empty enum and colour fields with their defaults.
// Numeric fields are left alone: zero is a meaningful value for most of them.
func (d *Document) SetDefaults() {
	def := Default()
	setString(&d.Page.Size, def.Page.Size)
	setString((*string)(&d.Page.Orientation), string(def.Page.Orientation))
	setString(&d.Page.Color, def.Page.Color)
	setString(&d.Page.CustomColor, def.Page.CustomColor)
	setString((*string)(&d.Pattern.Kind), string(def.Pattern.Kind))
	setString(&d.Pattern.Color, def.Pattern.Color)
	setString((*string)(&d.Cross.Style), string(def.Cross.Style))
	setString(&d.Cross.Color, def.Cross.Color)
	setString(&d.Grid.Color, def.Grid.Color)
	setString(&d.Trace.Color, def.Trace.Color)
	if d.Page.Size == page.SizeCustom && !d.Page.Custom.Valid() {
		d.Page.Custom = def.Page.Custom
	}
}

func setString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// Validate checks colours and enumerations. Geometry is not validated: the
// layout engine degrades gracefully on any numeric input.
func (d *Document) Validate() error {
	checks := []error{
		errors.ValidateOneOf("page.size", d.Page.Size, presetKeys()...),
		errors.ValidateOneOf("page.orientation", string(d.Page.Orientation), string(page.Landscape), string(page.Portrait)),
		errors.ValidateOneOf("page.color", d.Page.Color, colorIDs()...),
		errors.ValidateOneOf("pattern.kind", string(d.Pattern.Kind),
			string(layout.KindNone), string(layout.KindDots), string(layout.KindLines), string(layout.KindGrid)),
		errors.ValidateHexColor("pattern.color", d.Pattern.Color),
		errors.ValidateOneOf("cross.style", string(d.Cross.Style), string(layout.CrossSolid), string(layout.CrossDashed)),
		errors.ValidateHexColor("cross.color", d.Cross.Color),
		errors.ValidateHexColor("grid.color", d.Grid.Color),
		errors.ValidateHexColor("trace.color", d.Trace.Color),
	}
	if d.Page.Color == page.ColorCustom {
		checks = append(checks, errors.ValidateHexColor("page.custom_color", d.Page.CustomColor))
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func presetKeys() []string {
	var keys []string
	for _, p := range page.Presets() {
		keys = append(keys, p.Key)
	}
	return keys
}

func colorIDs() []string {
	ids := []string{page.ColorCustom}
	for _, c := range page.Colors() {
		ids = append(ids, c.ID)
	}
	return ids
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	c := *d
	c.Cells = append([]layout.Entry(nil), d.Cells...)
	return &c
}
