package sink

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/matzehuels/jappaper/pkg/layout"
)

func TestRenderPNGNative(t *testing.T) {
	p := practicePage(layout.CellMap{{Row: 0, Col: 0}: "A", {Row: 1, Col: 1}: "あ"})

	data, err := RenderPNG(context.Background(), p)
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("size = %dx%d, want 800x600 at the default 2x scale", b.Dx(), b.Dy())
	}

	r, g, b, _ := img.At(2, 2).RGBA()
	got := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
	if got != (color.RGBA{R: 0xff, G: 0xfd, B: 0xd0}) {
		t.Errorf("background pixel = %v, want cream", got)
	}
}

func TestRenderPNGScale(t *testing.T) {
	p := patternPage(layout.PatternConfig{
		Kind: layout.KindGrid, Thickness: 1, Spacing: 29, Color: "#94a3b8",
		Cross: layout.Cross{Enabled: true, Style: layout.CrossDashed, Color: "#000000", Opacity: 0.4},
	}, 0.3)

	data, err := RenderPNG(context.Background(), p, WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("size = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestRenderPNGPatterns(t *testing.T) {
	for _, cfg := range []layout.PatternConfig{
		{Kind: layout.KindDots, Size: 4, Spacing: 20, Color: "#cbd5e1"},
		{Kind: layout.KindLines, Thickness: 1, Spacing: 20, Color: "#cbd5e1"},
	} {
		if _, err := RenderPNG(context.Background(), patternPage(cfg, 0.3), WithScale(1)); err != nil {
			t.Errorf("RenderPNG(%s) error = %v", cfg.Kind, err)
		}
	}
}

func TestRenderPNGErrors(t *testing.T) {
	p := practicePage(layout.CellMap{{Row: 0, Col: 0}: "A"})

	if _, err := RenderPNG(context.Background(), p, WithScale(0)); err == nil {
		t.Error("RenderPNG(scale 0) error = nil, want error")
	}
	missing := filepath.Join(t.TempDir(), "missing.ttf")
	if _, err := RenderPNG(context.Background(), p, WithFontFile(missing)); err == nil {
		t.Error("RenderPNG(missing font) error = nil, want error")
	}
	if _, err := RenderPNG(context.Background(), p, WithFontFile(missing), WithPNGWithoutTrace()); err != nil {
		t.Errorf("font must not be loaded when trace is hidden, got %v", err)
	}
}
