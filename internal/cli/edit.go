package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jappaper/pkg/layout"
	"github.com/matzehuels/jappaper/pkg/template"
)

// Editor styles
var (
	editorCursorStyle = lipgloss.NewStyle().Reverse(true).Foreground(colorCyan)
	editorFilledStyle = lipgloss.NewStyle().Foreground(colorWhite)
	editorEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	editorHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// cellWidth is the terminal width of one cell; CJK characters take two
// columns.
const cellWidth = 2

// editCommand creates the edit command for the interactive cell editor.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit [template]",
		Short: "Write characters into grid cells interactively",
		Long: `Write characters into grid cells interactively.

Type to write into the selected cell and advance. Arrow keys move, backspace
clears and moves back, delete clears in place. ctrl+s saves and exits, esc
exits without saving. Only cells of the visible grid can be selected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the updated template here instead")

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, input, output string) error {
	doc, err := template.Load(input)
	if err != nil {
		return err
	}
	m, err := NewEditorModel(doc)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	result := final.(EditorModel)
	if !result.Saved {
		printInfo("Discarded changes")
		return nil
	}
	printSuccess("Saved %d edit(s)", result.Edits)
	return writeTemplate(saveTarget(input, output), result.Doc)
}

// EditorModel is the bubbletea model for the cell editor.
type EditorModel struct {
	Doc   *template.Document
	Rows  int
	Cols  int
	Row   int
	Col   int
	Edits int
	Saved bool

	// Visible window, in cells.
	Height  int
	Width   int
	OffsetR int
	OffsetC int
}

// NewEditorModel creates an editor bounded by doc's computed grid. It fails
// when the grid is switched off or no cell fits on the page.
func NewEditorModel(doc *template.Document) (EditorModel, error) {
	if !doc.Grid.Enabled {
		return EditorModel{}, fmt.Errorf("the manual grid is disabled; set grid.enabled = true first")
	}
	g, ok := layout.ComputeGrid(doc.GridConfig(), doc.Dimensions())
	if !ok {
		return EditorModel{}, fmt.Errorf("no grid cell fits on a %s page", doc.Dimensions())
	}
	return EditorModel{
		Doc:    doc.Clone(),
		Rows:   g.Rows,
		Cols:   g.Cols,
		Height: 20,
		Width:  30,
	}, nil
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlS:
			m.Saved = true
			return m, tea.Quit
		case tea.KeyUp:
			m.move(-1, 0)
		case tea.KeyDown, tea.KeyEnter:
			m.move(1, 0)
		case tea.KeyLeft:
			m.move(0, -1)
		case tea.KeyRight:
			m.move(0, 1)
		case tea.KeyBackspace:
			m.advance(-1)
			m.write("")
		case tea.KeyDelete:
			m.write("")
		case tea.KeySpace:
			m.write("")
			m.advance(1)
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.write(string(r))
				m.advance(1)
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-4, 1)
		m.Width = max(msg.Width/cellWidth, 1)
		m.scroll()
	}
	return m, nil
}

func (m *EditorModel) write(value string) {
	if layout.ReadCell(m.Doc.CellMap(), m.Row, m.Col) == value {
		return
	}
	m.Doc.WriteCell(m.Row, m.Col, value)
	m.Edits++
}

// move shifts the cursor, stopping at the grid edges.
func (m *EditorModel) move(dr, dc int) {
	m.Row = min(max(m.Row+dr, 0), m.Rows-1)
	m.Col = min(max(m.Col+dc, 0), m.Cols-1)
	m.scroll()
}

// advance steps n cells in reading order, wrapping between rows.
func (m *EditorModel) advance(n int) {
	i := m.Row*m.Cols + m.Col + n
	i = min(max(i, 0), m.Rows*m.Cols-1)
	m.Row, m.Col = i/m.Cols, i%m.Cols
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *EditorModel) scroll() {
	if m.Row < m.OffsetR {
		m.OffsetR = m.Row
	}
	if m.Row >= m.OffsetR+m.Height {
		m.OffsetR = m.Row - m.Height + 1
	}
	if m.Col < m.OffsetC {
		m.OffsetC = m.Col
	}
	if m.Col >= m.OffsetC+m.Width {
		m.OffsetC = m.Col - m.Width + 1
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.title()))
	b.WriteString("\n")
	b.WriteString(editorHelpStyle.Render("type to write  ←↑↓→ move  ⌫ clear  ctrl+s save  esc quit"))
	b.WriteString("\n\n")

	cells := m.Doc.CellMap()
	for r := m.OffsetR; r < min(m.OffsetR+m.Height, m.Rows); r++ {
		for c := m.OffsetC; c < min(m.OffsetC+m.Width, m.Cols); c++ {
			b.WriteString(m.renderCell(cells, r, c))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(editorHelpStyle.Render(fmt.Sprintf("  row %d/%d  col %d/%d  %d edit(s)", m.Row+1, m.Rows, m.Col+1, m.Cols, m.Edits)))
	return b.String()
}

func (m EditorModel) title() string {
	if m.Doc.Name != "" {
		return m.Doc.Name
	}
	return fmt.Sprintf("%d x %d grid", m.Rows, m.Cols)
}

func (m EditorModel) renderCell(cells layout.CellMap, r, c int) string {
	text, style := "·", editorEmptyStyle
	if v := layout.ReadCell(cells, r, c); v != "" {
		text, style = v, editorFilledStyle
	}
	text = fitCell(text)
	if r == m.Row && c == m.Col {
		style = editorCursorStyle
	}
	return style.Render(text)
}

// fitCell pads or truncates s to exactly cellWidth terminal columns.
func fitCell(s string) string {
	return runewidth.FillRight(runewidth.Truncate(s, cellWidth, ""), cellWidth)
}
