package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/store"
	"github.com/matzehuels/jappaper/pkg/template"
)

// templatesCommand creates the templates command for managing the template store.
func (c *CLI) templatesCommand() *cobra.Command {
	var stores storeOpts

	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage templates in the shared store",
		Long: `Manage templates in the shared store.

The store is the one 'serve' uses: a directory of TOML files by default, or a
MongoDB database with --mongo-uri.`,
	}
	stores.register(cmd)

	cmd.AddCommand(c.templatesListCommand(&stores))
	cmd.AddCommand(c.templatesPushCommand(&stores))
	cmd.AddCommand(c.templatesPullCommand(&stores))
	cmd.AddCommand(c.templatesDeleteCommand(&stores))

	return cmd
}

// withStore opens the store for the duration of fn.
func withStore(ctx context.Context, stores *storeOpts, fn func(store.Store) error) error {
	st, err := stores.open(ctx)
	if err != nil {
		return fmt.Errorf("open template store: %w", err)
	}
	defer st.Close()
	return fn(st)
}

func (c *CLI) templatesListCommand(stores *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), stores, func(st store.Store) error {
				docs, err := st.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(docs) == 0 {
					printInfo("No templates stored")
					return nil
				}
				fmt.Println(templateTable(docs, time.Now()))
				return nil
			})
		},
	}
}

// templateTable renders docs as a bordered table.
func templateTable(docs []*template.Document, now time.Time) string {
	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		name := d.Name
		if name == "" {
			name = "—"
		}
		grid := "off"
		if d.Grid.Enabled {
			grid = fmt.Sprintf("%dx%d", d.Grid.Rows, d.Grid.Cols)
		}
		rows = append(rows, []string{d.ID, name, d.Dimensions().String(), grid, fmt.Sprint(len(d.Cells)), formatRelativeTime(d.UpdatedAt, now)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Page", "Grid", "Cells", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 5:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func (c *CLI) templatesPushCommand(stores *storeOpts) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "push [template]",
		Short: "Upload a template file to the store",
		Long: `Upload a template file to the store.

The template's id is used, or --id when given; a template without either gets
a new id. An existing template with the same id is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := template.Load(args[0])
			if err != nil {
				return err
			}
			if id != "" {
				doc.ID = id
			}
			return withStore(cmd.Context(), stores, func(st store.Store) error {
				if err := st.Put(cmd.Context(), doc); err != nil {
					return err
				}
				printSuccess("Pushed %s", StyleHighlight.Render(doc.ID))
				printNextStep("Pull", appName+" templates pull "+doc.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "store under this id")

	return cmd
}

func (c *CLI) templatesPullCommand(stores *storeOpts) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull [id]",
		Short: "Download a stored template to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), stores, func(st store.Store) error {
				doc, err := st.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = doc.ID + ".toml"
				}
				printSuccess("Pulled %s", StyleHighlight.Render(doc.ID))
				return writeTemplate(path, doc)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.toml)")

	return cmd
}

func (c *CLI) templatesDeleteCommand(stores *storeOpts) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Remove a template from the store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), stores, func(st store.Store) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				printSuccess("Deleted %s", args[0])
				return nil
			})
		},
	}
}

// formatRelativeTime renders t relative to now for recent times and as a
// date otherwise.
func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
