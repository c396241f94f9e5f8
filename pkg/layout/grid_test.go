package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/jappaper/pkg/page"
)

func TestComputeGrid(t *testing.T) {
	tests := []struct {
		name       string
		cfg        GridConfig
		d          page.Dimensions
		rows, cols int
		region     Rect
	}{
		{
			name: "configured counts centred",
			cfg:  GridConfig{Rows: 22, Cols: 22, CellSize: 45, Margin: 20},
			d:    standard, rows: 22, cols: 22,
			region: Rect{X: 225, Y: 45, W: 990, H: 990},
		},
		{
			name: "auto fills",
			cfg:  GridConfig{CellSize: 45, Margin: 20},
			d:    standard, rows: 23, cols: 31,
			region: Rect{X: 22.5, Y: 22.5, W: 1395, H: 1035},
		},
		{
			name: "requested counts capped",
			cfg:  GridConfig{Rows: 100, Cols: 5, CellSize: 45, Margin: 20},
			d:    standard, rows: 23, cols: 5,
			region: Rect{X: 607.5, Y: 22.5, W: 225, H: 1035},
		},
		{
			name: "gaps between cells only",
			cfg:  GridConfig{Rows: 2, Cols: 3, CellSize: 80, Gap: 10, Margin: 20},
			d:    page.Dimensions{Width: 400, Height: 300},
			rows: 2, cols: 3,
			region: Rect{X: 70, Y: 65, W: 260, H: 170},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := ComputeGrid(tt.cfg, tt.d)
			if !ok {
				t.Fatal("ComputeGrid() ok = false, want true")
			}
			if g.Rows != tt.rows || g.Cols != tt.cols {
				t.Errorf("rows, cols = %d, %d, want %d, %d", g.Rows, g.Cols, tt.rows, tt.cols)
			}
			if g.Region != tt.region {
				t.Errorf("Region = %+v, want %+v", g.Region, tt.region)
			}
		})
	}
}

func TestComputeGridDegenerate(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"zero cell", GridConfig{CellSize: 0}},
		{"cell larger than page", GridConfig{Rows: 1, Cols: 1, CellSize: 5000}},
		{"margin eats page", GridConfig{CellSize: 10, Margin: 700}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if g, ok := ComputeGrid(tt.cfg, standard); ok {
				t.Errorf("ComputeGrid() = %+v, want ok = false", g)
			}
		})
	}
}

func TestComputeGridFitsAvailable(t *testing.T) {
	for _, d := range []page.Dimensions{standard, standard.Transpose(), {Width: 720, Height: 480}} {
		for _, size := range []float64{10, 33.3, 45, 80, 140} {
			for _, gap := range []float64{0, 2.5, 10, 20} {
				for _, margin := range []float64{0, 20, 45} {
					g, ok := ComputeGrid(GridConfig{CellSize: size, Gap: gap, Margin: margin}, d)
					if !ok {
						continue
					}
					availW, availH := Available(d, margin)
					if g.Region.W > availW+1e-9 || g.Region.H > availH+1e-9 {
						t.Errorf("%v size %g gap %g margin %g: %gx%g exceeds %gx%g",
							d, size, gap, margin, g.Region.W, g.Region.H, availW, availH)
					}
					if !g.Region.Within(d) {
						t.Errorf("%v size %g gap %g margin %g: %+v outside page", d, size, gap, margin, g.Region)
					}
					left := g.Region.X - margin
					right := d.Width - margin - g.Region.Right()
					if math.Abs(left-right) > 1e-9 {
						t.Errorf("%v size %g gap %g margin %g: slack %g/%g not symmetric", d, size, gap, margin, left, right)
					}
				}
			}
		}
	}
}

func TestGridLayoutCells(t *testing.T) {
	g, _ := ComputeGrid(GridConfig{Rows: 2, Cols: 3, CellSize: 80, Gap: 10, Margin: 20}, page.Dimensions{Width: 400, Height: 300})

	if got, want := g.Cell(1, 2), (Rect{X: 250, Y: 155, W: 80, H: 80}); got != want {
		t.Errorf("Cell(1, 2) = %+v, want %+v", got, want)
	}
	if last := g.Cell(g.Rows-1, g.Cols-1); last.Right() != g.Region.Right() || last.Bottom() != g.Region.Bottom() {
		t.Errorf("last cell %+v does not end at region %+v", last, g.Region)
	}

	bands := g.Bands()
	if len(bands) != 2 {
		t.Fatalf("len(Bands()) = %d, want 2", len(bands))
	}
	if bands[1] != (Rect{X: 70, Y: 155, W: 260, H: 80}) {
		t.Errorf("Bands()[1] = %+v", bands[1])
	}

	if got := g.CellBasisPercent(); math.Abs(got-80.0/260*100) > 1e-9 {
		t.Errorf("CellBasisPercent() = %g", got)
	}
	if got := g.GapPercent(); math.Abs(got-10.0/260*100) > 1e-9 {
		t.Errorf("GapPercent() = %g", got)
	}
	sum := 3*g.CellBasisPercent() + 2*g.GapPercent()
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("cells and gaps add up to %g%%, want 100%%", sum)
	}

	if !g.Contains(1, 2) || g.Contains(2, 0) || g.Contains(0, -1) {
		t.Error("Contains() disagrees with grid size")
	}
}
