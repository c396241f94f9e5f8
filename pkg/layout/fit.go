package layout

import (
	"math"

	"github.com/matzehuels/jappaper/pkg/page"
)

// Fit is the largest grid that fits on a page.
type Fit struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// MaxFit returns how many cells of cellSize, separated by gap, fit inside
// the page after removing margin on every side.
//
// n cells and n-1 gaps fit in avail when n*(cellSize+gap) <= avail+gap, so
// n = floor((avail+gap) / (cellSize+gap)). A non-positive pitch or zero
// available space yields zero. Results are never negative.
func MaxFit(d page.Dimensions, margin, cellSize, gap float64) Fit {
	availW, availH := Available(d, margin)
	return Fit{
		Rows: fitCount(availH, cellSize, gap),
		Cols: fitCount(availW, cellSize, gap),
	}
}

func fitCount(avail, size, gap float64) int {
	pitch := size + gap
	if pitch <= 0 || avail <= 0 {
		return 0
	}
	return floorCount((avail + gap) / pitch)
}

// floorCount floors v into a non-negative int, mapping NaN and Inf to zero.
func floorCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int(math.Floor(v))
}
