package layout

import (
	"maps"
	"slices"
)

// Cell addresses one cell of a manual grid, zero-based.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellMap holds the characters written into a manual grid. It is sparse and
// is not tied to the grid's current size: entries beyond the visible grid are
// kept and reappear when the grid grows.
type CellMap map[Cell]string

// ReadCell returns the character at (row, col), or "" when none is stored.
func ReadCell(m CellMap, row, col int) string {
	return m[Cell{Row: row, Col: col}]
}

// WriteCell returns a copy of m with (row, col) set to value. m is not
// modified and may be nil. Writing "" keeps the entry with an empty value.
// Coordinates are not bounds-checked.
func WriteCell(m CellMap, row, col int, value string) CellMap {
	out := make(CellMap, len(m)+1)
	maps.Copy(out, m)
	out[Cell{Row: row, Col: col}] = value
	return out
}

// Clone returns a copy of m.
func (m CellMap) Clone() CellMap {
	out := make(CellMap, len(m))
	maps.Copy(out, m)
	return out
}

// Merge returns a copy of m with every entry of other written over it.
func (m CellMap) Merge(other CellMap) CellMap {
	out := m.Clone()
	maps.Copy(out, other)
	return out
}

// Bounds returns the smallest grid that shows every non-empty entry.
func (m CellMap) Bounds() Fit {
	var f Fit
	for c, v := range m {
		if v == "" || c.Row < 0 || c.Col < 0 {
			continue
		}
		f.Rows = max(f.Rows, c.Row+1)
		f.Cols = max(f.Cols, c.Col+1)
	}
	return f
}

// Prune returns a copy of m without entries outside a rows x cols grid and
// without empty values.
func (m CellMap) Prune(rows, cols int) CellMap {
	out := make(CellMap, len(m))
	for c, v := range m {
		if v == "" || c.Row < 0 || c.Col < 0 || c.Row >= rows || c.Col >= cols {
			continue
		}
		out[c] = v
	}
	return out
}

// Cells returns the keys of m in row-major order.
func (m CellMap) Cells() []Cell {
	keys := slices.Collect(maps.Keys(m))
	slices.SortFunc(keys, compareCells)
	return keys
}

func compareCells(a, b Cell) int {
	if a.Row != b.Row {
		return a.Row - b.Row
	}
	return a.Col - b.Col
}

// Entry is one stored character with its address.
type Entry struct {
	Row  int    `json:"row" toml:"row" yaml:"row" bson:"row"`
	Col  int    `json:"col" toml:"col" yaml:"col" bson:"col"`
	Char string `json:"char" toml:"char" yaml:"char" bson:"char"`
}

// Entries returns the contents of m in row-major order.
func (m CellMap) Entries() []Entry {
	cells := m.Cells()
	out := make([]Entry, len(cells))
	for i, c := range cells {
		out[i] = Entry{Row: c.Row, Col: c.Col, Char: m[c]}
	}
	return out
}

// FromEntries builds a map from entries. Later entries win.
func FromEntries(entries []Entry) CellMap {
	out := make(CellMap, len(entries))
	for _, e := range entries {
		out[Cell{Row: e.Row, Col: e.Col}] = e.Char
	}
	return out
}
