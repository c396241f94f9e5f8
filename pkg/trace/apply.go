package trace

import "github.com/matzehuels/jappaper/pkg/layout"

// Size is a manual grid's configured row and column count.
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Result is a cell map after import together with the grid size needed to
// show it.
type Result struct {
	Cells   layout.CellMap
	Grid    Size
	Applied int
	Skipped int
}

// Apply merges entries into cells in order, later entries winning, and grows
// grid so that every imported cell is visible. The grid never shrinks and
// cells is not modified.
func Apply(cells layout.CellMap, grid Size, entries []Entry) Result {
	out := cells.Clone()
	maxRow, maxCol := 0, 0
	for _, e := range entries {
		out[layout.Cell{Row: e.Row - 1, Col: e.Col - 1}] = e.Char
		maxRow = max(maxRow, e.Row)
		maxCol = max(maxCol, e.Col)
	}
	return Result{
		Cells:   out,
		Grid:    Size{Rows: max(grid.Rows, maxRow), Cols: max(grid.Cols, maxCol)},
		Applied: len(entries),
	}
}

// Import parses data and applies it. On error nothing is applied.
func Import(cells layout.CellMap, grid Size, data []byte) (Result, error) {
	parsed, err := Parse(data)
	if err != nil {
		return Result{}, err
	}
	res := Apply(cells, grid, parsed.Entries)
	res.Skipped = parsed.Skipped
	return res, nil
}
