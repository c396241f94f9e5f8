package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/template"
)

// renderCommand creates the render command for exporting a template.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [template]",
		Short: "Render a template to SVG, PNG, PDF or JSON",
		Long: `Render a template to SVG, PNG, PDF or JSON.

With a single format, -o names the output file. With several formats, -o is a
base path and each file gets its format's extension. Without -o, outputs are
written next to the template.

PNG is rasterised natively at --scale times the page size. With --rsvg, PNG and
PDF are converted from the SVG by rsvg-convert, which must be on PATH and gives
better text shaping for --font-family. PDF always needs rsvg-convert.

Rendered files are cached locally; identical geometry with identical options
is not rendered twice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], output, opts, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.FontFile, "font", "", "TrueType font for trace characters in native PNG output")
	cmd.Flags().StringVar(&opts.FontFamily, "font-family", "", "CSS font family for trace characters in SVG output")
	cmd.Flags().BoolVar(&opts.HideTrace, "hide-trace", false, "leave written cells out of the output")
	cmd.Flags().BoolVar(&opts.RSVG, "rsvg", false, "convert PNG with rsvg-convert instead of the native rasteriser")
	cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender loads the template, runs the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options, noCache bool) error {
	doc, err := template.Load(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input)+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, doc, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return err
	}

	formats := slices.Sorted(maps.Keys(result.Artifacts))
	paths := outputPaths(input, output, formats)
	for _, format := range formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	c.Logger.Debug("render stats", "layout", result.Stats.LayoutTime, "render", result.Stats.RenderTime, "hits", result.CacheInfo.Hits)
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Page.Size.String(), result.Stats.Cells, len(result.Artifacts), result.CacheInfo.RenderHit)
	for _, format := range formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths assigns a file to each format. A single format uses output
// verbatim when it is set; otherwise files share a base path. The template
// itself is never overwritten.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		path := base + "." + f
		if path == input {
			path = base + ".layout." + f
		}
		paths[f] = path
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.IsFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
