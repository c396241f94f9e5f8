package sink

import (
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
)

var testSize = page.Dimensions{Width: 400, Height: 300}

func practicePage(cells layout.CellMap) layout.Page {
	cross := layout.Cross{Enabled: true, Style: layout.CrossDashed, Color: "#000000", Opacity: 0.4}
	return layout.Compose(layout.PageConfig{
		Size:       testSize,
		Background: "#fffdd0",
		Pattern:    layout.PatternConfig{Kind: layout.KindNone},
		Grid:       &layout.GridConfig{Rows: 2, Cols: 3, CellSize: 80, Gap: 10, Margin: 20},
		GridStyle:  layout.Style{Color: "#000000", Opacity: 0.3, Cross: cross},
		Trace:      layout.TraceStyle{Color: "#000000", Opacity: 0.6},
		Cells:      cells,
	})
}

func patternPage(cfg layout.PatternConfig, opacity float64) layout.Page {
	return layout.Compose(layout.PageConfig{
		Size:       testSize,
		Background: "#ffffff",
		Pattern:    cfg,
		GridStyle:  layout.Style{Color: "#000000", Opacity: opacity},
	})
}
