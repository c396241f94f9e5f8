// Package pkg provides the core libraries for jappaper practice-paper layout.
//
// # Overview
//
// jappaper produces printable pages for handwriting practice: genkoyoshi-style
// character grids, dotted, lined and ruled backgrounds, and trace characters
// written into grid cells. The pkg directory is organized into three areas:
//
//  1. Geometry - pure, synchronous layout ([page], [layout], [trace])
//  2. Documents - the explicit template configuration ([template], [store])
//  3. Orchestration - rendering, caching and serving ([render], [pipeline],
//     [cache], [server])
//
// # Architecture
//
// The typical data flow through jappaper:
//
//	template.Document (TOML / YAML / JSON / store)
//	         ↓
//	    [template] resolve page, pattern, grid and cells
//	         ↓
//	    [layout] compute tiling, grid bands and cell rectangles
//	         ↓
//	    [render/sink] SVG / PNG / PDF / JSON
//
// Geometry never fails: degenerate input yields an empty pattern or no grid.
// Validation of colours and enumerations happens once, in
// [template.Document.Validate].
//
// # Quick Start
//
// Lay out a quick-start template and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/jappaper/pkg/render/sink"
//	    "github.com/matzehuels/jappaper/pkg/template"
//	)
//
//	doc, _ := template.New("practice")
//	doc.WriteCell(0, 0, "あ")
//	svg := sink.RenderSVG(doc.Layout())
//
// # Main Packages
//
// ## Geometry
//
// [page] - Page size presets, orientation and background colours.
//
// [layout] - The geometry engine: [layout.MaxFit] grid capacity, pattern
// tiling for dots, lines and ruled grids, manual grid placement and the sparse
// cell map.
//
// [trace] - Bulk character import from JSON and the whole-page generator.
//
// ## Documents
//
// [template] - The template document, its quick-start presets and file
// encodings.
//
// [store] - Template persistence: a TOML file directory or MongoDB.
//
// ## Orchestration
//
// [render] - rsvg-convert based conversion; [render/sink] draws pages.
//
// [pipeline] - Layout and concurrent multi-format rendering with caching, used
// by both the CLI and the API.
//
// [cache] - Artifact caches: file, Redis and null backends.
//
// [observability] - Hooks for pipeline, cache and API events.
//
// [server] - The HTTP API.
//
// [errors] - Error codes shared by every entry point.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [page]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/page
// [layout]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/layout
// [trace]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/trace
// [template]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/template
// [store]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/store
// [render]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/observability
// [server]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/jappaper/pkg/errors
package pkg
