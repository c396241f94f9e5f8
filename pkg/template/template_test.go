package template

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/page"
	"github.com/matzehuels/jappaper/pkg/trace"
)

func TestDefaultIsValid(t *testing.T) {
	d := Default()
	if err := d.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if got := d.Dimensions(); got != (page.Dimensions{Width: 1440, Height: 1080}) {
		t.Errorf("Dimensions() = %v", got)
	}
	if got := d.Background(); got != "#ffffff" {
		t.Errorf("Background() = %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Document)
	}{
		{"page size", func(d *Document) { d.Page.Size = "a4" }},
		{"orientation", func(d *Document) { d.Page.Orientation = "diagonal" }},
		{"page colour", func(d *Document) { d.Page.Color = "sepia" }},
		{"custom colour", func(d *Document) { d.Page.Color = page.ColorCustom; d.Page.CustomColor = "white" }},
		{"pattern kind", func(d *Document) { d.Pattern.Kind = "waves" }},
		{"pattern colour", func(d *Document) { d.Pattern.Color = "#12" }},
		{"cross style", func(d *Document) { d.Cross.Style = "dotted" }},
		{"cross colour", func(d *Document) { d.Cross.Color = "" }},
		{"grid colour", func(d *Document) { d.Grid.Color = "black" }},
		{"trace colour", func(d *Document) { d.Trace.Color = "#zzzzzz" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Default()
			tt.modify(d)
			err := d.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidTemplate) {
				t.Errorf("Validate() error = %v, want %s", err, errors.ErrCodeInvalidTemplate)
			}
		})
	}
}

func TestValidateIgnoresGeometry(t *testing.T) {
	d := Default()
	d.Grid.Margin = -50
	d.Grid.CellSize = -1
	d.Pattern.Spacing = -10
	if err := d.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
	p := d.Layout()
	if p.Pattern != nil || p.Grid != nil {
		t.Errorf("degenerate geometry must draw nothing, got %+v", p)
	}
}

func TestNew(t *testing.T) {
	practice, err := New("practice")
	if err != nil {
		t.Fatalf("New(practice) error = %v", err)
	}
	if !practice.Grid.Enabled || !practice.Cross.Enabled || practice.Cross.Color != "#000000" {
		t.Errorf("practice = %+v", practice)
	}
	p := practice.Layout()
	if p.Grid == nil || p.Grid.Rows != 22 || p.Grid.Cols != 22 {
		t.Fatalf("practice grid = %+v, want 22x22", p.Grid)
	}
	if p.Pattern != nil {
		t.Error("practice has no pattern")
	}

	graph, err := New("graph")
	if err != nil {
		t.Fatalf("New(graph) error = %v", err)
	}
	g := graph.Layout()
	if g.Grid != nil || g.Pattern == nil || g.Pattern.Pattern.Kind() != layout.KindGrid {
		t.Errorf("graph layout = %+v", g)
	}

	blank, _ := New("blank")
	if b := blank.Layout(); b.Grid != nil || b.Pattern != nil {
		t.Errorf("blank layout = %+v", b)
	}

	if _, err := New("lined"); err == nil {
		t.Error("New(lined) error = nil, want error")
	}
}

func TestCells(t *testing.T) {
	d := Default()
	d.WriteCell(2, 4, "a")
	d.WriteCell(0, 0, "あ")
	d.WriteCell(2, 4, "b")

	want := []layout.Entry{{Row: 0, Col: 0, Char: "あ"}, {Row: 2, Col: 4, Char: "b"}}
	if !reflect.DeepEqual(d.Cells, want) {
		t.Errorf("Cells = %v, want %v", d.Cells, want)
	}
}

func TestApplyImport(t *testing.T) {
	d := Default()
	res, err := trace.Import(d.CellMap(), d.GridSize(), []byte(`[{"row":30,"columns":2,"character":"x"}]`))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	d.ApplyImport(res)
	if d.Grid.Rows != 30 || d.Grid.Cols != 22 || !d.Grid.Enabled {
		t.Errorf("Grid = %+v, want 30x22 enabled", d.Grid)
	}
	if layout.ReadCell(d.CellMap(), 29, 1) != "x" {
		t.Error("imported cell missing")
	}
}

func TestApplyGenerated(t *testing.T) {
	d := Default()
	d.WriteCell(50, 50, "old")
	d.ApplyGenerated(trace.Generate(d.Dimensions(), trace.GeneratorConfig{CellSize: 100, Margin: 60, Gap: 10, Char: "あ"}))
	if len(d.Cells) != 96 {
		t.Errorf("len(Cells) = %d, want 96", len(d.Cells))
	}
	if layout.ReadCell(d.CellMap(), 50, 50) != "" {
		t.Error("generated grid must replace existing cells")
	}
	if d.Grid.CellSize != 100 || d.Grid.Margin != 60 || d.Grid.Gap != 10 {
		t.Errorf("Grid = %+v", d.Grid)
	}
}

func TestPatternSharesGridMargin(t *testing.T) {
	d := Default()
	d.Grid.Margin = 37
	if got := d.PatternConfig().Margin; got != 37 {
		t.Errorf("PatternConfig().Margin = %g, want 37", got)
	}
}

func TestSaveLoad(t *testing.T) {
	for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			d, _ := New("practice")
			d.Name = "kana sheet"
			d.Page.Orientation = page.Portrait
			d.Pattern.Kind = layout.KindDots
			d.WriteCell(0, 0, "あ")
			d.WriteCell(3, 1, "ん")

			path := filepath.Join(t.TempDir(), "sheet"+ext)
			if err := Save(path, d); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, d) {
				t.Errorf("Load(Save(d)) = %+v, want %+v", got, d)
			}
		})
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet.json")

	first, _ := New("practice")
	first.Name = "first"
	if err := Save(path, first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	second, _ := New("practice")
	second.Name = "second"
	if err := Save(path, second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Name != "second" {
		t.Errorf("Load().Name = %q, want %q", got.Name, "second")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "sheet.json" {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("directory holds %v, want only sheet.json", names)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o644 {
		t.Errorf("file mode = %v, want 0644", perm)
	}
}

func TestUnmarshalPartial(t *testing.T) {
	d, err := Unmarshal([]byte("[grid]\nenabled = true\nrows = 5\n"), TOML)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if d.Grid.Rows != 5 || d.Grid.Cols != 22 || d.Grid.CellSize != 45 || d.Page.Size != page.Size1440 {
		t.Errorf("omitted settings must keep defaults, got %+v", d)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Unmarshal([]byte("{not json"), JSON); !errors.Is(err, errors.ErrCodeInvalidTemplate) {
		t.Errorf("Unmarshal(bad json) error = %v, want %s", err, errors.ErrCodeInvalidTemplate)
	}
}
