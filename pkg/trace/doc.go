// Package trace fills a manual grid with tracing characters.
//
// There are two ways in. [Parse] and [Apply] implement bulk import: an
// ordered JSON array of 1-based records is merged into an existing
// [layout.CellMap], growing the grid so every imported cell is visible.
// [Generate] implements auto-generation: every cell that fits on the page
// is filled with one character and the grid is sized to the fit.
//
// # Import format
//
//	[
//	  {"row": 1, "columns": 1, "character": "あ"},
//	  {"row": 3, "columns": 5, "character": "a"}
//	]
//
// "column" is accepted for "columns" and "charecter" for "character".
// Numbers may be given as JSON numbers or numeric strings; like a lenient
// integer parse, only the leading integer counts ("3px" is 3, 2.9 is 2).
// Records that cannot be placed are skipped and counted, never reported as
// errors. Only input that is not a JSON array fails.
package trace
