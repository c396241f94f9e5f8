package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/jappaper/pkg/errors"
)

// ErrNoRSVG is returned, wrapped in an EXPORT_FAILED error, when
// rsvg-convert is not installed.
var ErrNoRSVG = stderrors.New("rsvg-convert not found (install librsvg: brew install librsvg, apt install librsvg2-bin)")

// rsvgBinary is the converter looked up on PATH.
var rsvgBinary = "rsvg-convert"

// ToPDF converts an SVG page to a one-page PDF of the same size.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG rasterizes an SVG page at scale times its size in pixels.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// HasRSVG reports whether rsvg-convert is on PATH.
func HasRSVG() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgBinary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, ErrNoRSVG, "%s export", format)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "rsvg-convert %s: %s", format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
