package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/pipeline"
	"github.com/matzehuels/jappaper/pkg/template"
	"github.com/matzehuels/jappaper/pkg/trace"
)

// importCommand creates the import command for bulk character imports.
func (c *CLI) importCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import [template] [characters.json]",
		Short: "Write characters into grid cells from a JSON file",
		Long: `Write characters into grid cells from a JSON file.

The file holds an array of records, applied in order:

  [{"row": 1, "columns": 1, "character": "あ"}, {"row": 3, "column": 5, "character": "a"}]

Rows and columns are 1-based. Records with a missing or invalid field are
skipped. The grid is switched on and grows so every imported cell is visible.
Use "-" to read from stdin. The template is updated in place unless -o is set.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], args[1], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated template here instead")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, source, output string) error {
	doc, err := template.Load(input)
	if err != nil {
		return err
	}
	data, err := readSource(source)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.Import(ctx, doc, data)
	if err != nil {
		return err
	}

	printSuccess("Imported %s characters", StyleNumber.Render(fmt.Sprint(res.Applied)))
	if res.Skipped > 0 {
		printWarning("Skipped %d malformed record(s)", res.Skipped)
	}
	printDetail("Grid: %d x %d", res.Grid.Rows, res.Grid.Cols)
	return writeTemplate(saveTarget(input, output), doc)
}

func readSource(source string) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

// generateCommand creates the generate command for filling the page with a
// practice character.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		preset string
		output string
		cfg    = trace.DefaultGenerator
	)

	cmd := &cobra.Command{
		Use:   "generate [template]",
		Short: "Fill the page with a grid of one practice character",
		Long: `Fill the page with a grid of one practice character.

The grid is sized to fit the page and replaces every written cell. A preset
(genkoyoshi, kanji, kana) sets cell size, margin and gap; individual flags
override it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := generatorConfig(cmd, preset, cfg)
			if err != nil {
				return err
			}
			return c.runGenerate(args[0], output, gen)
		},
	}

	cmd.Flags().StringVarP(&preset, "preset", "p", "", "generator preset: genkoyoshi, kanji, kana")
	cmd.Flags().StringVar(&cfg.Char, "char", cfg.Char, "character written into every cell")
	cmd.Flags().Float64Var(&cfg.CellSize, "cell-size", cfg.CellSize, "cell size in page units")
	cmd.Flags().Float64Var(&cfg.Margin, "margin", cfg.Margin, "page margin on every side")
	cmd.Flags().Float64Var(&cfg.Gap, "gap", cfg.Gap, "gap between cells")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated template here instead")

	return cmd
}

// generatorConfig starts from the preset, if any, and applies the flags the
// user set explicitly.
func generatorConfig(cmd *cobra.Command, preset string, flags trace.GeneratorConfig) (trace.GeneratorConfig, error) {
	if preset == "" {
		return flags, nil
	}
	p, err := trace.LookupPreset(preset)
	if err != nil {
		return trace.GeneratorConfig{}, err
	}
	cfg := p.GeneratorConfig
	set := cmd.Flags().Changed
	if set("char") {
		cfg.Char = flags.Char
	}
	if set("cell-size") {
		cfg.CellSize = flags.CellSize
	}
	if set("margin") {
		cfg.Margin = flags.Margin
	}
	if set("gap") {
		cfg.Gap = flags.Gap
	}
	return cfg, nil
}

func (c *CLI) runGenerate(input, output string, cfg trace.GeneratorConfig) error {
	doc, err := template.Load(input)
	if err != nil {
		return err
	}
	gen := pipeline.NewRunner(nil, nil, c.Logger).Generate(doc, cfg)
	if gen.Grid.Rows == 0 || gen.Grid.Cols == 0 {
		printWarning("No cell fits on the page with cell size %g and margin %g", cfg.CellSize, cfg.Margin)
	} else {
		printSuccess("Generated %s grid", StyleNumber.Render(fmt.Sprintf("%d x %d", gen.Grid.Rows, gen.Grid.Cols)))
	}
	return writeTemplate(saveTarget(input, output), doc)
}

// cellCommand creates the cell command for reading and writing single cells.
func (c *CLI) cellCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell",
		Short: "Read and write individual grid cells",
		Long: `Read and write individual grid cells.

Rows and columns are 1-based, as in import files.`,
	}

	cmd.AddCommand(c.cellGetCommand())
	cmd.AddCommand(c.cellSetCommand())
	cmd.AddCommand(c.cellPruneCommand())

	return cmd
}

func (c *CLI) cellGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [template] [row] [col]",
		Short: "Print the character in a cell",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := template.Load(args[0])
			if err != nil {
				return err
			}
			row, col, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), layout.ReadCell(doc.CellMap(), row, col))
			return nil
		},
	}
}

func (c *CLI) cellSetCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "set [template] [row] [col] [char]",
		Short: "Write a character into a cell (empty clears it)",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := template.Load(args[0])
			if err != nil {
				return err
			}
			row, col, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}
			var value string
			if len(args) == 4 {
				value = args[3]
			}
			doc.WriteCell(row, col, value)

			if g, ok := layout.ComputeGrid(doc.GridConfig(), doc.Dimensions()); !ok || !g.Contains(row, col) {
				printWarning("Cell %d,%d is outside the visible grid; it is kept but not drawn", row+1, col+1)
			}
			return writeTemplate(saveTarget(args[0], output), doc)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated template here instead")

	return cmd
}

func (c *CLI) cellPruneCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "prune [template]",
		Short: "Drop cells outside the visible grid and empty cells",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := template.Load(args[0])
			if err != nil {
				return err
			}
			removed := pruneCells(doc)
			printSuccess("Removed %d cell(s)", removed)
			return writeTemplate(saveTarget(args[0], output), doc)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated template here instead")

	return cmd
}

// pruneCells drops entries the grid would not show and reports how many
// were removed.
func pruneCells(doc *template.Document) int {
	var rows, cols int
	if g, ok := layout.ComputeGrid(doc.GridConfig(), doc.Dimensions()); ok {
		rows, cols = g.Rows, g.Cols
	}
	before := len(doc.CellMap())
	doc.SetCells(doc.CellMap().Prune(rows, cols))
	return before - len(doc.Cells)
}
