package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/procview/internal/workspace"
	"github.com/matzehuels/procview/pkg/undo"
)

// =============================================================================
// HistoryModel - Interactive history browser
// =============================================================================

// JumpTarget is a position in the history: the arguments of a jump.
type JumpTarget struct {
	Direction undo.Direction
	Index     int
}

// historyRow is one line of the browser. Row 0 is the base document.
type historyRow struct {
	label   string
	kind    string
	target  JumpTarget
	future  bool
	current bool
}

func historyRows(h workspace.HistoryView) []historyRow {
	rows := make([]historyRow, 0, len(h.Past)+len(h.Future)+1)
	rows = append(rows, historyRow{
		label:   "base document",
		target:  JumpTarget{Direction: undo.Past, Index: -1},
		current: len(h.Past) == 0,
	})
	for i, e := range h.Past {
		rows = append(rows, historyRow{
			label:   e.Description,
			kind:    e.Type,
			target:  JumpTarget{Direction: undo.Past, Index: e.Index},
			current: i == len(h.Past)-1,
		})
	}
	for _, e := range h.Future {
		rows = append(rows, historyRow{
			label:  e.Description,
			kind:   e.Type,
			target: JumpTarget{Direction: undo.Future, Index: e.Index},
			future: true,
		})
	}
	return rows
}

// HistoryModel is the bubbletea model for picking a point in the history.
type HistoryModel struct {
	rows     []historyRow
	Cursor   int
	Selected *JumpTarget
	Height   int
	Offset   int
}

// NewHistoryModel creates a browser with the cursor on the current state.
func NewHistoryModel(h workspace.HistoryView) HistoryModel {
	m := HistoryModel{rows: historyRows(h), Height: 15}
	m.Cursor = len(h.Past)
	if m.Cursor >= m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			row := m.rows[m.Cursor]
			if row.current {
				return m, tea.Quit
			}
			target := row.target
			m.Selected = &target
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m HistoryModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("History"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ jump  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := ""
		if r.current {
			marker = "●"
		}
		rows = append(rows, []string{cursor, marker, r.label, r.kind})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "", "Action", "Type").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			r := m.rows[idx]
			s := lipgloss.NewStyle()
			switch {
			case r.future:
				s = s.Foreground(colorDim)
			case r.current:
				s = s.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				s = s.Bold(true)
			}
			return s
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := time.Since(t)
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
