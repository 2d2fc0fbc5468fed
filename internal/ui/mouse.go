package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/listkeep/internal/list"
)

// Screen geometry shared by View and the mouse hit tests.
const (
	inputRow    = 3
	listTop     = 5
	footerLines = 4 // blank, stats, help, status

	checkboxCol = 2 // "[ ]" spans three columns
	textCol     = 6

	addLabel    = "[Add Todo]"
	deleteLabel = "Delete"
	clearLabel  = "[Clear All]"
	labelGap    = 2
)

// Boxes reports one box per item, one terminal row high, in list order.
// Rows scrolled out of view get boxes above or below the screen.
func (m *model) Boxes() []list.Box {
	items := m.mgr.Items()
	boxes := make([]list.Box, len(items))
	for i, it := range items {
		boxes[i] = list.Box{ID: it.ID, Top: float64(listTop + i - m.offset), Height: 1}
	}
	return boxes
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if id, dragging := m.mgr.Dragging(); dragging {
		switch msg.Action {
		case tea.MouseActionMotion:
			if msg.Y == m.dragLastY {
				return nil
			}
			m.dragLastY = msg.Y
			m.dragMoved = true
			if err := m.mgr.DragOver(float64(msg.Y), m); err != nil {
				m.report(err)
			}
			m.cursor = m.mgr.Index(id)
		case tea.MouseActionRelease:
			m.endDrag(id)
		}
		return nil
	}

	if msg.Action != tea.MouseActionPress {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cursor--
		m.ensureVisible()
		return nil
	case tea.MouseButtonWheelDown:
		m.cursor++
		m.ensureVisible()
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	switch msg.Y {
	case inputRow:
		m.commitEdit()
		m.confirming = false
		if msg.X < len(addLabel) {
			m.addFromInput()
		}
		return m.focusInput()
	case m.statsRow():
		m.commitEdit()
		start, end := m.clearSpan()
		if msg.X >= start && msg.X < end {
			if m.confirming {
				m.clearAll()
			} else {
				m.requestClear()
			}
			return nil
		}
		m.confirming = false
		return nil
	}
	m.confirming = false

	i := msg.Y - listTop + m.offset
	if msg.Y < listTop || msg.Y >= listTop+m.visibleRows() || i >= m.mgr.Len() {
		m.commitEdit()
		return nil
	}
	id, _ := m.mgr.At(i)
	if id == m.editing && msg.X >= textCol {
		return nil
	}
	m.commitEdit()
	m.focusList()
	m.cursor = i

	item, _ := m.mgr.Get(id)
	start, end := m.deleteSpan(item.Text)
	switch {
	case msg.X >= checkboxCol && msg.X < checkboxCol+3:
		m.report(m.mgr.Toggle(m.ctx, id))
	case msg.X >= start && msg.X < end:
		m.report(m.mgr.Delete(m.ctx, id))
		m.ensureVisible()
	case msg.X >= textCol:
		if err := m.mgr.BeginDrag(id); err != nil {
			m.report(err)
			return nil
		}
		m.dragLastY = msg.Y
		m.dragMoved = false
	}
	return nil
}

// endDrag persists the new order. A press and release without motion is a
// plain selection and writes nothing.
func (m *model) endDrag(id string) {
	if !m.dragMoved {
		m.mgr.CancelDrag()
		return
	}
	m.report(m.mgr.Drop(m.ctx))
	m.cursor = m.mgr.Index(id)
	m.ensureVisible()
}

func (m *model) statsRow() int {
	return listTop + m.visibleRows() + 1
}

func (m *model) clearSpan() (int, int) {
	start := lipgloss.Width(m.statsText()) + labelGap
	return start, start + len(clearLabel)
}

func (m *model) deleteSpan(text string) (int, int) {
	start := textCol + lipgloss.Width(m.displayText(text)) + labelGap
	return start, start + len(deleteLabel)
}
