// Package layout is the geometry engine for practice-paper templates.
//
// # Overview
//
// Everything in this package is a pure function over configuration values:
// no globals, no I/O, no mutable state beyond the [CellMap] a caller hands
// in. Given page dimensions, a margin and a pattern or grid configuration,
// it computes where things go, in page units, and how many of them fit.
//
// There are four pieces:
//
//   - [MaxFit]: how many cells of a given size and gap fit on a page. This is
//     the single source of truth for that question; nothing else re-derives
//     the formula.
//   - [ComputeTiling]: tiles a repeating [Pattern] ([Dots], [Lines] or
//     [Grid]) across the printable area and centres the result.
//   - [ComputeGrid]: lays out a manual grid of addressable cells, centred,
//     with explicit or automatic row and column counts.
//   - [CellMap], [ReadCell], [WriteCell]: the sparse character store
//     addressed by (row, col).
//
// # Degenerate input
//
// Nothing here returns an error. Zero or negative pitch, zero available
// space, or zero fitting tiles all produce ok == false from [ComputeTiling]
// and [ComputeGrid]; callers render nothing in that case.
//
// # Resolution independence
//
// Results are absolute page units. [Rect.Percent] and the percentage helpers
// on [Tiling] and [GridLayout] re-express them as fractions of the page so a
// renderer can draw at any scale.
//
// # Opacity
//
// Patterns are drawn at [PatternOpacity] (the configured opacity times 1.5).
// That value is returned unclamped; renderers must pass it through
// [ClampOpacity] before use.
package layout
