package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/jappaper/pkg/cache"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/observability"
	"github.com/matzehuels/jappaper/pkg/template"
)

// Layout validates doc and computes its page geometry.
func Layout(ctx context.Context, doc *template.Document) (layout.Page, error) {
	size := doc.Dimensions().String()
	observability.Pipeline().OnLayoutStart(ctx, size, len(doc.Cells))
	start := time.Now()

	if err := doc.Validate(); err != nil {
		observability.Pipeline().OnLayoutComplete(ctx, size, time.Since(start), err)
		return layout.Page{}, err
	}
	p := doc.Layout()

	observability.Pipeline().OnLayoutComplete(ctx, size, time.Since(start), nil)
	return p, nil
}

// GeometryHash identifies everything in doc that affects rendered output.
// Identity fields are ignored and cells are hashed in row-major order.
func GeometryHash(doc *template.Document) (string, error) {
	g := doc.Clone()
	g.ID = ""
	g.Name = ""
	g.UpdatedAt = time.Time{}
	g.SetCells(doc.CellMap())
	return cache.HashJSON(g)
}
