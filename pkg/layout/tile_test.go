package layout

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestGridTileSVG(t *testing.T) {
	tile := GridTile{
		W: 45, H: 45, Thickness: 1, Color: "#94a3b8",
		Cross: Cross{Enabled: true, Style: CrossDashed, Color: "#000000", Opacity: 0.4},
	}
	svg := string(tile.SVG())

	for _, want := range []string{
		`shape-rendering="crispEdges"`,
		`<rect x="0" y="0" width="45" height="1" fill="#94a3b8"/>`,
		`<rect x="0" y="0" width="1" height="45" fill="#94a3b8"/>`,
		`y1="22"`,
		`x1="22"`,
		`stroke="rgba(0,0,0,0.4)"`,
		`stroke-dasharray="4,4"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG() missing %s\n%s", want, svg)
		}
	}

	tile.Cross.Style = CrossSolid
	if strings.Contains(string(tile.SVG()), "dasharray") {
		t.Error("solid cross must not be dashed")
	}
	tile.Cross.Enabled = false
	if strings.Contains(string(tile.SVG()), "<line") {
		t.Error("disabled cross must not draw lines")
	}
}

func TestGridTileDataURI(t *testing.T) {
	tile := GridTile{W: 30, H: 30, Thickness: 1, Color: "#000"}
	uri := tile.DataURI()
	const prefix = "data:image/svg+xml;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("DataURI() = %q", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw) != string(tile.SVG()) {
		t.Error("DataURI does not round-trip to SVG()")
	}
}

func TestCrossColor(t *testing.T) {
	tests := []struct {
		hex     string
		opacity float64
		want    string
	}{
		{"#000000", 0.4, "rgba(0,0,0,0.4)"},
		{"#cbd5e1", 1, "rgba(203,213,225,1)"},
		{"#fff", 0.5, "rgba(255,255,255,0.5)"},
		{"#fff", 3, "rgba(255,255,255,1)"},
		{"red", 0.5, "red"},
	}
	for _, tt := range tests {
		if got := CrossColor(tt.hex, tt.opacity); got != tt.want {
			t.Errorf("CrossColor(%q, %g) = %q, want %q", tt.hex, tt.opacity, got, tt.want)
		}
	}
}

func TestClampOpacity(t *testing.T) {
	if got := PatternOpacity(0.3); got <= 0.449 || got >= 0.451 {
		t.Errorf("PatternOpacity(0.3) = %g, want 0.45", got)
	}
	if got := PatternOpacity(0.8); got <= 1 {
		t.Errorf("PatternOpacity(0.8) = %g, want unclamped > 1", got)
	}
	for _, tt := range []struct{ in, want float64 }{{-1, 0}, {0.5, 0.5}, {1.2, 1}} {
		if got := ClampOpacity(tt.in); got != tt.want {
			t.Errorf("ClampOpacity(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
