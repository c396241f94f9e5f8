package pipeline

import (
	"context"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/render/sink"
)

// Render generates one artifact from a computed page.
func Render(ctx context.Context, p layout.Page, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	var data []byte
	var err error
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(p, svgOpts...)
	case FormatPNG:
		data, err = sink.RenderPNG(ctx, p, buildPNGOptions(opts, svgOpts)...)
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, p, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.HideTrace {
			jsonOpts = append(jsonOpts, sink.WithJSONWithoutTrace())
		}
		data, err = sink.RenderJSON(p, jsonOpts...)
	default:
		return nil, ValidateFormat(format)
	}
	switch {
	case err == nil:
		return data, nil
	case errors.GetCode(err) != "", ctx.Err() != nil:
		return nil, err
	}
	return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "render %s", format)
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.FontFamily != "" {
		svgOpts = append(svgOpts, sink.WithFontFamily(opts.FontFamily))
	}
	if opts.HideTrace {
		svgOpts = append(svgOpts, sink.WithoutTrace())
	}
	return svgOpts
}

func buildPNGOptions(opts Options, svgOpts []sink.SVGOption) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithPNGSVGOptions(svgOpts...)}
	if opts.Scale > 0 {
		pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
	}
	if opts.FontFile != "" {
		pngOpts = append(pngOpts, sink.WithFontFile(opts.FontFile))
	}
	if opts.RSVG {
		pngOpts = append(pngOpts, sink.WithRSVG())
	}
	if opts.HideTrace {
		pngOpts = append(pngOpts, sink.WithPNGWithoutTrace())
	}
	return pngOpts
}
