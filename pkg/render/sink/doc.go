// Package sink provides output format renderers for computed pages.
//
// # Overview
//
// A "sink" transforms a [layout.Page] into a final output format. The page
// already holds every position and size; sinks only draw. This package
// provides renderers for:
//
//   - SVG: vector output, the reference rendering
//   - PNG: raster output, drawn natively or via rsvg-convert
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: geometry export for external renderers
//
// # Opacity
//
// A page carries its pattern opacity unclamped. Every sink passes pattern,
// grid, cross and trace opacities through [layout.ClampOpacity] before use.
// Manual grid cells are drawn at the grid opacity, and their cross and
// character opacities multiply with it.
//
// # SVG Output
//
//	svg := sink.RenderSVG(page,
//	    sink.WithFontFamily(`"Noto Sans JP", sans-serif`),
//	)
//
// Patterns become a single <pattern> fill over the tiled region. Grid
// patterns add their trailing right and bottom borders as separate rects.
//
// # PNG Output
//
// [RenderPNG] rasterises natively with fogleman/gg at 2x by default. Trace
// characters use the Go font unless [WithFontFile] names a TrueType font;
// the Go font has no CJK glyphs. [WithRSVG] switches to converting the SVG
// with rsvg-convert instead.
//
// # PDF Output
//
// [RenderPDF] converts the SVG with rsvg-convert. These require librsvg to be
// installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Page]: github.com/matzehuels/jappaper/pkg/layout.Page
// [layout.ClampOpacity]: github.com/matzehuels/jappaper/pkg/layout.ClampOpacity
package sink
