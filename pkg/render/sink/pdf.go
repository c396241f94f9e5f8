package sink

import (
	"context"

	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/render"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfConfig)

type pdfConfig struct {
	svg []SVGOption
}

// WithPDFSVGOptions sets the options of the SVG the PDF is converted from.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(c *pdfConfig) { c.svg = opts }
}

// RenderPDF prints the page to a one-page PDF the size of the page, so a
// landscape page gives a landscape sheet. It needs rsvg-convert.
func RenderPDF(ctx context.Context, p layout.Page, opts ...PDFOption) ([]byte, error) {
	var c pdfConfig
	for _, opt := range opts {
		opt(&c)
	}
	return render.ToPDF(ctx, RenderSVG(p, c.svg...))
}
