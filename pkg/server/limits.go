package server

import (
	"math"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
	"github.com/matzehuels/jappaper/pkg/template"
	"github.com/matzehuels/jappaper/pkg/trace"
)

// Request limits. The geometry engine accepts any values; the server refuses
// documents whose output would not fit in memory.
const (
	MaxScale        = 8
	MaxPageSide     = 16384
	MaxGridCells    = 100_000
	MaxPatternTiles = 1_000_000
)

// checkScale rejects a PNG scale outside (0, MaxScale].
func checkScale(scale float64) error {
	if math.IsNaN(scale) || scale <= 0 || scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale: %g (must be in (0, %d])", scale, MaxScale)
	}
	return nil
}

// checkDocument rejects pages larger than MaxPageSide and layouts with more
// grid cells or pattern tiles than the limits allow.
func checkDocument(doc *template.Document) error {
	if err := checkPage(doc.Dimensions()); err != nil {
		return err
	}

	p := doc.Layout()
	if p.Grid != nil {
		if err := checkCells(p.Grid.Rows, p.Grid.Cols); err != nil {
			return err
		}
	}
	if t := p.Pattern; t != nil && t.Rows*t.Cols > MaxPatternTiles {
		return errors.New(errors.ErrCodeInvalidInput,
			"pattern of %dx%d tiles exceeds %d tiles", t.Rows, t.Cols, MaxPatternTiles)
	}
	return nil
}

func checkPage(d page.Dimensions) error {
	if !d.Valid() || d.Width > MaxPageSide || d.Height > MaxPageSide {
		return errors.New(errors.ErrCodeInvalidInput,
			"page %gx%g exceeds %d units per side", d.Width, d.Height, MaxPageSide)
	}
	return nil
}

func checkCells(rows, cols int) error {
	if rows*cols > MaxGridCells {
		return errors.New(errors.ErrCodeInvalidInput,
			"grid of %dx%d cells exceeds %d cells", rows, cols, MaxGridCells)
	}
	return nil
}

// checkGenerate rejects a generator run on an oversized page or one that
// would fill more than MaxGridCells.
func checkGenerate(d page.Dimensions, cfg trace.GeneratorConfig) error {
	if err := checkPage(d); err != nil {
		return err
	}
	fit := layout.MaxFit(d, cfg.Margin, cfg.CellSize, cfg.Gap)
	return checkCells(fit.Rows, fit.Cols)
}
