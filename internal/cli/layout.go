package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/render/sink"
	"github.com/matzehuels/jappaper/pkg/template"
)

// newCommand creates the new command for writing a template from a preset.
func (c *CLI) newCommand() *cobra.Command {
	var (
		preset string
		name   string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "new [template.toml]",
		Short: "Create a template file from a quick-start preset",
		Long: `Create a template file from a quick-start preset.

Presets: practice (genkoyoshi grid), graph (ruled pattern), blank.
The file format follows the extension: .toml (default), .yaml or .json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(args[0], preset, name, force)
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "practice", "quick-start preset: practice, graph, blank")
	cmd.Flags().StringVar(&name, "name", "", "template display name")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, p := range template.Presets() {
			names = append(names, p.Name+"\t"+p.Description)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runNew(path, preset, name string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	doc, err := template.New(preset)
	if err != nil {
		return err
	}
	doc.Name = name

	printSuccess("Created %s template", StyleHighlight.Render(preset))
	if err := writeTemplate(path, doc); err != nil {
		return err
	}
	printNewline()
	printNextStep("Render", appName+" render "+path)
	return nil
}

// fitCommand creates the fit command for reporting grid capacity.
func (c *CLI) fitCommand() *cobra.Command {
	var cellSize, gap, margin float64

	cmd := &cobra.Command{
		Use:   "fit [template]",
		Short: "Show how many grid cells fit on the page",
		Long: `Show how many grid cells fit on the page.

The cell size, gap and margin default to the template's grid settings and can
be overridden to try out other values without editing the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := template.Load(args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cell-size") {
				doc.Grid.CellSize = cellSize
			}
			if flags.Changed("gap") {
				doc.Grid.Gap = gap
			}
			if flags.Changed("margin") {
				doc.Grid.Margin = margin
			}
			printFit(doc)
			return nil
		},
	}

	cmd.Flags().Float64Var(&cellSize, "cell-size", 0, "cell size in page units")
	cmd.Flags().Float64Var(&gap, "gap", 0, "gap between cells")
	cmd.Flags().Float64Var(&margin, "margin", 0, "page margin on every side")

	return cmd
}

func printFit(doc *template.Document) {
	fit := doc.MaxFit()
	printKeyValue("Page", doc.Dimensions().String())
	printKeyValue("Cell", fmt.Sprintf("%g (gap %g, margin %g)", doc.Grid.CellSize, doc.Grid.Gap, doc.Grid.Margin))
	printKeyValue("Max grid", StyleNumber.Render(fmt.Sprintf("%d x %d", fit.Rows, fit.Cols)))

	g, ok := layout.ComputeGrid(doc.GridConfig(), doc.Dimensions())
	if !ok {
		printWarning("No cell fits on the page")
		return
	}
	printKeyValue("Grid", fmt.Sprintf("%d x %d", g.Rows, g.Cols))
	if !doc.Grid.Enabled {
		printDetail("The manual grid is disabled in this template")
	}
}

// layoutCommand creates the layout command for exporting computed geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		dormant   bool
		hideTrace bool
	)

	cmd := &cobra.Command{
		Use:   "layout [template]",
		Short: "Compute page geometry and write it as JSON",
		Long: `Compute page geometry and write it as JSON.

The output holds the pattern tiling, the grid bands and every written cell in
page units and in percentages of the page, so another renderer can draw the
page without repeating the layout. It is the same document 'render -f json'
produces, written to stdout unless -o is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []sink.JSONOption
			if dormant {
				opts = append(opts, sink.WithJSONDormant())
			}
			if hideTrace {
				opts = append(opts, sink.WithJSONWithoutTrace())
			}
			return c.runLayout(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&dormant, "dormant", false, "include cells outside the visible grid")
	cmd.Flags().BoolVar(&hideTrace, "hide-trace", false, "leave out written cells")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, opts []sink.JSONOption) error {
	doc, err := template.Load(input)
	if err != nil {
		return err
	}
	p, err := pipeline.Layout(ctx, doc)
	if err != nil {
		return err
	}
	data, err := sink.RenderJSON(p, opts...)
	if err != nil {
		return errors.Wrap(errors.ErrCodeExportFailed, err, "encode layout")
	}
	if output == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Layout computed")
	printFile(output)
	return nil
}

// parsePosition parses 1-based row and column arguments into 0-based cell
// indices.
func parsePosition(rowArg, colArg string) (int, int, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil || row < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "row must be a positive integer, got %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil || col < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "column must be a positive integer, got %q", colArg)
	}
	return row - 1, col - 1, nil
}
