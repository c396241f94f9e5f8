package trace

import (
	"reflect"
	"testing"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
)

func TestImport(t *testing.T) {
	data := []byte(`[{"row":1,"columns":1,"character":"あ"},{"row":3,"columns":5,"character":"a"}]`)

	res, err := Import(nil, Size{}, data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	want := layout.CellMap{{Row: 0, Col: 0}: "あ", {Row: 2, Col: 4}: "a"}
	if !reflect.DeepEqual(res.Cells, want) {
		t.Errorf("Cells = %v, want %v", res.Cells, want)
	}
	if res.Grid.Rows < 3 || res.Grid.Cols < 5 {
		t.Errorf("Grid = %+v, want at least 3x5", res.Grid)
	}
	if res.Applied != 2 || res.Skipped != 0 {
		t.Errorf("Applied, Skipped = %d, %d, want 2, 0", res.Applied, res.Skipped)
	}
}

func TestImportMergesAndNeverShrinks(t *testing.T) {
	existing := layout.CellMap{{Row: 0, Col: 0}: "x", {Row: 9, Col: 9}: "keep"}
	data := []byte(`[{"row":1,"columns":1,"character":"a"},{"row":1,"columns":1,"character":"b"}]`)

	res, err := Import(existing, Size{Rows: 22, Cols: 22}, data)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if got := layout.ReadCell(res.Cells, 0, 0); got != "b" {
		t.Errorf("later record must win, got %q", got)
	}
	if got := layout.ReadCell(res.Cells, 9, 9); got != "keep" {
		t.Errorf("existing cells must survive, got %q", got)
	}
	if res.Grid != (Size{Rows: 22, Cols: 22}) {
		t.Errorf("Grid = %+v, want 22x22", res.Grid)
	}
	if layout.ReadCell(existing, 0, 0) != "x" {
		t.Error("Import modified its input")
	}
}

func TestParseLenientRecords(t *testing.T) {
	data := []byte(`[
		{"row": "2", "column": "3px", "charecter": "い"},
		{"row": 2.9, "columns": 1, "character": "う"},
		{"row": " 4", "columns": 0, "column": 2, "character": "え"},
		{"row": 0, "columns": 1, "character": "skip"},
		{"row": 1, "columns": -2, "character": "skip"},
		{"row": "abc", "columns": 1, "character": "skip"},
		{"columns": 1, "character": "skip"},
		{"row": 1, "columns": 1},
		{"row": 1, "columns": 1, "character": ""},
		{"row": 1, "columns": 1, "character": 7},
		"not an object",
		null
	]`)

	res, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []Entry{
		{Row: 2, Col: 3, Char: "い"},
		{Row: 2, Col: 1, Char: "う"},
		{Row: 4, Col: 2, Char: "え"},
	}
	if !reflect.DeepEqual(res.Entries, want) {
		t.Errorf("Entries = %+v, want %+v", res.Entries, want)
	}
	if res.Skipped != 9 {
		t.Errorf("Skipped = %d, want 9", res.Skipped)
	}
}

func TestParseNormalizes(t *testing.T) {
	// か followed by a combining voiced sound mark composes to が.
	res, err := Parse([]byte(`[{"row":1,"columns":1,"character":"\u304b\u3099"}]`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].Char != "\u304c" {
		t.Errorf("Entries = %+q, want NFC \u304c", res.Entries)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"object", `{"row":1,"columns":1,"character":"a"}`},
		{"number", `42`},
		{"truncated", `[{"row":1`},
		{"trailing garbage", `[] []`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Import(layout.CellMap{{Row: 0, Col: 0}: "x"}, Size{Rows: 1, Cols: 1}, []byte(tt.data))
			if err == nil {
				t.Fatalf("Import() = %+v, want error", res)
			}
			if !errors.Is(err, errors.ErrCodeInvalidImport) {
				t.Errorf("Import() error = %v, want %s", err, errors.ErrCodeInvalidImport)
			}
			if res.Cells != nil {
				t.Error("failed import must not return cells")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	d := page.Dimensions{Width: 1440, Height: 1080}
	g := Generate(d, GeneratorConfig{CellSize: 100, Margin: 60, Gap: 10, Char: "あ"})

	// (1320+10)/110 = 12.09, (960+10)/110 = 8.8
	if g.Grid.Rows != 8 || g.Grid.Cols != 12 {
		t.Errorf("Grid = %+v, want 8x12", g.Grid)
	}
	if len(g.Cells) != 96 {
		t.Errorf("len(Cells) = %d, want 96", len(g.Cells))
	}
	if layout.ReadCell(g.Cells, 7, 11) != "あ" || layout.ReadCell(g.Cells, 8, 0) != "" {
		t.Error("generated cells do not match the fit")
	}
	if layout.MaxFit(d, 60, 100, 10) != (layout.Fit{Rows: g.Grid.Rows, Cols: g.Grid.Cols}) {
		t.Error("Generate must size the grid with MaxFit")
	}

	empty := Generate(d, GeneratorConfig{CellSize: 0})
	if len(empty.Cells) != 0 || empty.Grid.Rows != 0 {
		t.Errorf("degenerate generator = %+v, want empty", empty)
	}
}

func TestLookupPreset(t *testing.T) {
	p, err := LookupPreset("kana")
	if err != nil {
		t.Fatalf("LookupPreset(kana) error = %v", err)
	}
	if p.CellSize != 140 || p.Margin != 120 || p.Gap != 20 || p.Char != "あ" {
		t.Errorf("kana = %+v", p)
	}
	if _, err := LookupPreset("hangul"); err == nil {
		t.Error("LookupPreset(hangul) error = nil, want error")
	}
	if len(Presets()) != 3 {
		t.Errorf("len(Presets()) = %d, want 3", len(Presets()))
	}
}
