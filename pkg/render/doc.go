// Package render turns computed pages into files.
//
// # Overview
//
// The geometry of a page is computed by [layout.Compose]; this package and
// its [sink] subpackage only draw it. Sinks exist for:
//
//   - SVG: the reference vector output
//   - PNG: native rasteriser, or rsvg-convert on request
//   - PDF: single print page via rsvg-convert
//   - JSON: renderer-agnostic geometry for other front ends
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(page)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [layout.Compose]: github.com/matzehuels/jappaper/pkg/layout.Compose
// [sink]: github.com/matzehuels/jappaper/pkg/render/sink
package render
