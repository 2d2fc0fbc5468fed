package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	dragStyle   = lipgloss.NewStyle().Reverse(true)
	cursorStyle = lipgloss.NewStyle().Bold(true)
	buttonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m *model) View() string {
	var b strings.Builder
	writeTitle(&b, m.cfg.title)

	if m.showHelp {
		writeHelp(&b)
		return b.String()
	}

	m.writeInput(&b)
	m.writeRows(&b)
	m.writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)) + "\n\n")
}

func (m *model) writeInput(b *strings.Builder) {
	b.WriteString(buttonStyle.Render(addLabel) + " " + m.input.View() + "\n\n")
}

func (m *model) writeRows(b *strings.Builder) {
	items := m.mgr.Items()
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  Nothing to do. Type above and press enter.") + "\n")
		return
	}

	dragging, _ := m.mgr.Dragging()
	end := min(len(items), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		it := items[i]

		marker := "  "
		if i == m.cursor && m.focus != focusInput {
			marker = cursorStyle.Render(">") + " "
		}
		box := "[ ]"
		if it.Completed {
			box = "[x]"
		}

		var text string
		switch {
		case it.ID == m.editing:
			b.WriteString(marker + box + " " + m.editor.View() + "\n")
			continue
		case it.ID == dragging:
			text = dragStyle.Render(m.displayText(it.Text))
		case it.Completed:
			text = doneStyle.Render(m.displayText(it.Text))
		default:
			text = m.displayText(it.Text)
		}
		b.WriteString(marker + box + " " + text + strings.Repeat(" ", labelGap) + deleteStyle.Render(deleteLabel) + "\n")
	}
}

func (m *model) writeFooter(b *strings.Builder) {
	b.WriteString("\n")
	b.WriteString(m.statsText() + strings.Repeat(" ", labelGap) + buttonStyle.Render(clearLabel) + "\n")
	b.WriteString(dimStyle.Render(m.hint()) + "\n")

	switch {
	case m.confirming:
		b.WriteString(fmt.Sprintf("Clear all %d items? (y/n)", m.mgr.Len()))
	case strings.HasPrefix(m.status, "Error:"):
		b.WriteString(errorStyle.Render(m.status))
	default:
		b.WriteString(m.status)
	}
	b.WriteString("\n")
}

func (m *model) statsText() string {
	s := m.mgr.Stats()
	noun := "items"
	if s.Total == 1 {
		noun = "item"
	}
	return fmt.Sprintf("%d %s, %d done, %d open", s.Total, noun, s.Completed, s.Open)
}

func (m *model) hint() string {
	switch m.focus {
	case focusInput:
		return "enter add | tab list | ctrl+c quit"
	case focusEdit:
		return "enter/esc save"
	default:
		return "space toggle | e edit | d delete | K/J move | C clear | tab input | ? help | q quit"
	}
}

// displayText flattens text onto one row and truncates it so a row never
// wraps. Clicks and drags assume one row per item.
func (m *model) displayText(text string) string {
	text = oneLine(text)
	if m.width <= 0 {
		return text
	}
	limit := max(4, m.width-textCol-labelGap-len(deleteLabel))
	return ansi.Truncate(text, limit, "…")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter        Add (input) or edit (list)\n")
	b.WriteString("  tab, esc     Switch between input and list\n")
	b.WriteString("  up/down, k/j Select item\n")
	b.WriteString("  space        Toggle completed\n")
	b.WriteString("  e            Edit text (enter or esc saves)\n")
	b.WriteString("  d, x         Delete item\n")
	b.WriteString("  K/J          Move item up/down\n")
	b.WriteString("  C            Clear all\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
	b.WriteString("Mouse\n\n")
	b.WriteString("  Click [ ] to toggle, Delete to remove, drag text to reorder.\n\n")
	b.WriteString("Press any key to close this help.\n")
}

// oneLine replaces newlines, tabs and other control characters with spaces.
// Items added from the command line or an import may contain them.
func oneLine(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)
}
