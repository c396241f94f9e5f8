package layout

import (
	"reflect"
	"testing"
)

func TestWriteCell(t *testing.T) {
	var m CellMap
	if got := ReadCell(m, 0, 0); got != "" {
		t.Errorf("ReadCell(nil) = %q, want empty", got)
	}

	m1 := WriteCell(m, 2, 4, "あ")
	if got := ReadCell(m1, 2, 4); got != "あ" {
		t.Errorf("ReadCell after write = %q, want あ", got)
	}
	if other := WriteCell(m1, 0, 0, "x"); len(m1) != 1 || len(other) != 2 {
		t.Error("WriteCell modified its input")
	}

	m2 := WriteCell(m1, 2, 4, "あ")
	if !reflect.DeepEqual(m1, m2) {
		t.Errorf("WriteCell is not idempotent: %v != %v", m1, m2)
	}

	m3 := WriteCell(m2, 2, 4, "い")
	if ReadCell(m3, 2, 4) != "い" || ReadCell(m2, 2, 4) != "あ" {
		t.Error("overwrite must produce a new map and leave the old one alone")
	}

	m4 := WriteCell(m3, 2, 4, "")
	if _, ok := m4[Cell{Row: 2, Col: 4}]; !ok {
		t.Error("writing an empty value must keep the key")
	}
	if ReadCell(m4, 2, 4) != "" {
		t.Error("cleared cell must read empty")
	}
}

func TestWriteCellUnbounded(t *testing.T) {
	m := WriteCell(nil, 500, 900, "x")
	m = WriteCell(m, -1, -1, "y")
	if ReadCell(m, 500, 900) != "x" || ReadCell(m, -1, -1) != "y" {
		t.Errorf("writes outside any grid must be kept, got %v", m)
	}
}

func TestCompositeKeysDoNotCollide(t *testing.T) {
	m := WriteCell(nil, 1, 23, "a")
	m = WriteCell(m, 12, 3, "b")
	if ReadCell(m, 1, 23) != "a" || ReadCell(m, 12, 3) != "b" || len(m) != 2 {
		t.Errorf("keys collided: %v", m)
	}
}

func TestCellMapBoundsAndPrune(t *testing.T) {
	m := CellMap{
		{Row: 0, Col: 0}:  "あ",
		{Row: 2, Col: 4}:  "a",
		{Row: 9, Col: 9}:  "",
		{Row: 30, Col: 1}: "z",
	}
	if got, want := m.Bounds(), (Fit{Rows: 31, Cols: 5}); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}

	p := m.Prune(22, 22)
	want := CellMap{{Row: 0, Col: 0}: "あ", {Row: 2, Col: 4}: "a"}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Prune(22, 22) = %v, want %v", p, want)
	}
	if len(m) != 4 {
		t.Error("Prune modified its receiver")
	}
}

func TestCellMapEntries(t *testing.T) {
	m := CellMap{
		{Row: 1, Col: 0}: "c",
		{Row: 0, Col: 5}: "b",
		{Row: 0, Col: 1}: "a",
	}
	want := []Entry{
		{Row: 0, Col: 1, Char: "a"},
		{Row: 0, Col: 5, Char: "b"},
		{Row: 1, Col: 0, Char: "c"},
	}
	got := m.Entries()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if back := FromEntries(got); !reflect.DeepEqual(back, m) {
		t.Errorf("FromEntries(Entries()) = %v, want %v", back, m)
	}
}

func TestCellMapMerge(t *testing.T) {
	a := CellMap{{Row: 0, Col: 0}: "a", {Row: 0, Col: 1}: "b"}
	b := CellMap{{Row: 0, Col: 1}: "B", {Row: 1, Col: 1}: "c"}
	got := a.Merge(b)
	want := CellMap{{Row: 0, Col: 0}: "a", {Row: 0, Col: 1}: "B", {Row: 1, Col: 1}: "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
	if a[Cell{Row: 0, Col: 1}] != "b" {
		t.Error("Merge modified its receiver")
	}
}
