package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/observability"
	"github.com/matzehuels/jappaper/pkg/template"
)

// execute runs the root command with args and returns what commands wrote
// to their output stream.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("JAPPAPER_MONGO_URI", "")
	t.Setenv("JAPPAPER_REDIS_URL", "")
	t.Cleanup(observability.Reset)

	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func load(t *testing.T, path string) *template.Document {
	t.Helper()
	doc, err := template.Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error: %v", path, err)
	}
	return doc
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces and case", " PNG , json ", []string{"png", "json"}},
		{"empty items dropped", "svg,,pdf", []string{"svg", "pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		row, col         string
		wantRow, wantCol int
		wantErr          bool
	}{
		{"1", "1", 0, 0, false},
		{"3", "5", 2, 4, false},
		{"0", "1", 0, 0, true},
		{"1", "-2", 0, 0, true},
		{"a", "1", 0, 0, true},
	}
	for _, tt := range tests {
		row, col, err := parsePosition(tt.row, tt.col)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePosition(%q, %q) error = %v, wantErr %v", tt.row, tt.col, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.IsInvalid(err) {
				t.Errorf("parsePosition(%q, %q) error code = %s, want invalid", tt.row, tt.col, errors.GetCode(err))
			}
			continue
		}
		if row != tt.wantRow || col != tt.wantCol {
			t.Errorf("parsePosition(%q, %q) = %d, %d, want %d, %d", tt.row, tt.col, row, col, tt.wantRow, tt.wantCol)
		}
	}
}

func TestRootCommandRegistersCommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"new", "fit", "layout", "render", "import", "generate", "cell", "edit", "serve", "templates", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("root command is missing %q", name)
		}
	}
}

func TestNewCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kana.toml")

	mustExecute(t, "new", path, "--preset", "practice", "--name", "Kana")
	doc := load(t, path)
	if doc.Name != "Kana" {
		t.Errorf("Name = %q, want %q", doc.Name, "Kana")
	}
	if !doc.Grid.Enabled || doc.Grid.Rows != 22 || doc.Grid.Cols != 22 {
		t.Errorf("Grid = %+v, want enabled 22x22", doc.Grid)
	}

	if _, err := execute(t, "new", path); err == nil {
		t.Error("new over an existing file should fail without --force")
	}
	mustExecute(t, "new", path, "--preset", "blank", "--force")
	if load(t, path).Grid.Enabled {
		t.Error("blank preset should disable the grid")
	}

	if _, err := execute(t, "new", filepath.Join(t.TempDir(), "x.toml"), "--preset", "nope"); !errors.IsInvalid(err) {
		t.Errorf("unknown preset error = %v, want invalid input", err)
	}
}

func TestCellCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kana.yaml")
	mustExecute(t, "new", path)

	mustExecute(t, "cell", "set", path, "1", "2", "あ")
	if got := mustExecute(t, "cell", "get", path, "1", "2"); got != "あ\n" {
		t.Errorf("cell get = %q, want %q", got, "あ\n")
	}
	if got := layout.ReadCell(load(t, path).CellMap(), 0, 1); got != "あ" {
		t.Errorf("stored cell (0,1) = %q, want %q", got, "あ")
	}

	// Outside the 22x22 grid: kept until pruned.
	mustExecute(t, "cell", "set", path, "40", "40", "x")
	if got := mustExecute(t, "cell", "get", path, "40", "40"); got != "x\n" {
		t.Errorf("dormant cell = %q, want %q", got, "x\n")
	}

	mustExecute(t, "cell", "set", path, "1", "3")
	mustExecute(t, "cell", "prune", path)

	cells := load(t, path).CellMap()
	if len(cells) != 1 || cells[layout.Cell{Row: 0, Col: 1}] != "あ" {
		t.Errorf("cells after prune = %v, want only (0,1)=あ", cells)
	}

	if _, err := execute(t, "cell", "get", path, "0", "1"); err == nil {
		t.Error("cell get with row 0 should fail")
	}
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kana.toml")
	mustExecute(t, "new", path, "--preset", "blank")

	data := `[{"row": 1, "columns": 1, "character": "あ"},
	          {"row": 3, "column": 5, "character": "a"},
	          {"row": "x", "columns": 1, "character": "b"}]`
	src := filepath.Join(dir, "chars.json")
	if err := os.WriteFile(src, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "imported.toml")
	mustExecute(t, "import", path, src, "-o", out)

	doc := load(t, out)
	if !doc.Grid.Enabled {
		t.Error("import should enable the grid")
	}
	if doc.Grid.Rows < 3 || doc.Grid.Cols < 5 {
		t.Errorf("grid = %dx%d, want at least 3x5", doc.Grid.Rows, doc.Grid.Cols)
	}
	cells := doc.CellMap()
	if cells[layout.Cell{Row: 0, Col: 0}] != "あ" || cells[layout.Cell{Row: 2, Col: 4}] != "a" {
		t.Errorf("cells = %v", cells)
	}
	if len(load(t, path).Cells) != 0 {
		t.Error("import with -o should leave the input template unchanged")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"row": 1}`), 0o644)
	if _, err := execute(t, "import", path, bad); err == nil {
		t.Error("import of a non-array should fail")
	}
}

func TestGenerateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanji.toml")
	mustExecute(t, "new", path, "--preset", "blank")

	// 1440x1080, margin 60, cell 100, gap 10: 12 columns and 8 rows.
	mustExecute(t, "generate", path, "--preset", "kanji", "--char", "木")

	doc := load(t, path)
	if doc.Grid.Rows != 8 || doc.Grid.Cols != 12 {
		t.Errorf("grid = %dx%d, want 8x12", doc.Grid.Rows, doc.Grid.Cols)
	}
	if doc.Grid.CellSize != 100 || doc.Grid.Margin != 60 || doc.Grid.Gap != 10 {
		t.Errorf("grid geometry = %+v, want kanji preset", doc.Grid)
	}
	cells := doc.CellMap()
	if len(cells) != 96 || cells[layout.Cell{Row: 7, Col: 11}] != "木" {
		t.Errorf("generated %d cells, last = %q", len(cells), cells[layout.Cell{Row: 7, Col: 11}])
	}

	if _, err := execute(t, "generate", path, "--preset", "nope"); !errors.IsInvalid(err) {
		t.Errorf("unknown generator preset error = %v, want invalid input", err)
	}
}

func TestFitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kana.toml")
	mustExecute(t, "new", path)
	mustExecute(t, "fit", path)
	mustExecute(t, "fit", path, "--cell-size", "100", "--gap", "5")
	if _, err := execute(t, "fit", filepath.Join(t.TempDir(), "missing.toml")); !errors.IsNotFound(err) {
		t.Errorf("fit on a missing file error = %v, want not found", err)
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kana.toml")
	mustExecute(t, "new", path)
	mustExecute(t, "cell", "set", path, "2", "2", "か")

	out := filepath.Join(dir, "layout.json")
	mustExecute(t, "layout", path, "-o", out)

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var got struct {
		Width float64 `json:"width"`
		Grid  *struct {
			Rows int `json:"rows"`
		} `json:"grid"`
		Cells []struct {
			Char string `json:"char"`
		} `json:"cells"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("layout output is not JSON: %v", err)
	}
	if got.Width != 1440 || got.Grid == nil || got.Grid.Rows != 22 {
		t.Errorf("layout = %+v, want 1440 wide with a 22-row grid", got)
	}
	if len(got.Cells) != 1 || got.Cells[0].Char != "か" {
		t.Errorf("cells = %+v, want one か", got.Cells)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kana.toml")
	mustExecute(t, "new", path)
	mustExecute(t, "cell", "set", path, "1", "1", "あ")

	mustExecute(t, "render", path, "-f", "svg,json")

	svg, err := os.ReadFile(filepath.Join(dir, "kana.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("あ")) {
		t.Error("svg output is missing the root element or the trace character")
	}
	if _, err := os.Stat(filepath.Join(dir, "kana.json")); err != nil {
		t.Errorf("json not written: %v", err)
	}

	single := filepath.Join(dir, "plain.svg")
	mustExecute(t, "render", path, "-o", single, "--hide-trace", "--no-cache")
	svg, _ = os.ReadFile(single)
	if bytes.Contains(svg, []byte("あ")) {
		t.Error("--hide-trace output contains the trace character")
	}

	if _, err := execute(t, "render", path, "-f", "bmp"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("render -f bmp error = %v, want INVALID_FORMAT", err)
	}
}

func TestCacheCommands(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(cacheHome, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	root = New(io.Discard, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Errorf("cache clear on an empty cache: %v", err)
	}
}
