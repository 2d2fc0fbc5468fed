package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/listkeep/internal/list"
)

const defaultTitle = "listkeep"

type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

type model struct {
	ctx context.Context
	mgr *list.Manager
	cfg *tuiConfig

	input   textinput.Model
	editor  textinput.Model
	focus   focus
	editing string // ID of the item open in the editor

	cursor int
	offset int // first visible item
	width  int
	height int

	confirming bool
	showHelp   bool
	status     string

	dragLastY int
	dragMoved bool
}

// changedMsg reports that the snapshot changed outside this process.
type changedMsg struct{}

type watchClosedMsg struct{}

func newModel(ctx context.Context, mgr *list.Manager, c *tuiConfig) *model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 500
	input.Focus()

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = 500

	return &model{
		ctx:    ctx,
		mgr:    mgr,
		cfg:    c,
		input:  input,
		editor: editor,
		focus:  focusInput,
	}
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.cfg.changes != nil {
		cmds = append(cmds, waitForChange(m.cfg.changes))
	}
	return tea.Batch(cmds...)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return changedMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-len(addLabel)-4)
		m.editor.Width = max(10, msg.Width-textCol-1)
		m.ensureVisible()
		return m, nil
	case changedMsg:
		_, dragging := m.mgr.Dragging()
		if !dragging && m.editing == "" && m.mgr.Reload(m.ctx) {
			m.ensureVisible()
			m.status = "Reloaded: the list changed elsewhere"
		}
		return m, waitForChange(m.cfg.changes)
	case watchClosedMsg:
		return m, nil
	case tea.BlurMsg:
		m.commitEdit()
		m.mgr.CancelDrag()
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.updateInputs(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.commitEdit()
		return m, tea.Quit
	}
	if m.confirming {
		m.confirming = false
		if key == "y" || key == "Y" {
			m.clearAll()
		} else {
			m.status = "Clear cancelled"
		}
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if _, dragging := m.mgr.Dragging(); dragging && key == "esc" {
		m.mgr.CancelDrag()
		return m, nil
	}

	switch m.focus {
	case focusEdit:
		switch key {
		case "enter", "esc", "tab":
			m.commitEdit()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case focusInput:
		switch key {
		case "enter":
			m.addFromInput()
			return m, nil
		case "esc", "tab", "down":
			m.focusList()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor--
	case "down", "j":
		m.cursor++
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = m.mgr.Len() - 1
	case " ", "space":
		m.toggle()
	case "e", "enter":
		return m, m.startEdit()
	case "d", "x", "delete":
		m.deleteSelected()
	case "K", "shift+up":
		m.move(-1)
	case "J", "shift+down":
		m.move(1)
	case "C":
		m.requestClear()
	case "a", "i", "/", "tab":
		return m, m.focusInput()
	case "?", "h":
		m.showHelp = true
	}
	m.ensureVisible()
	return m, nil
}

func (m *model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	return cmd
}

func (m *model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m *model) focusList() {
	m.input.Blur()
	m.focus = focusList
}

func (m *model) selected() (string, bool) {
	return m.mgr.At(m.cursor)
}

func (m *model) addFromInput() {
	_, ok, err := m.mgr.Add(m.ctx, m.input.Value())
	if !ok {
		return
	}
	m.input.Reset()
	m.cursor = m.mgr.Len() - 1
	m.ensureVisible()
	m.report(err)
}

func (m *model) toggle() {
	if id, ok := m.selected(); ok {
		m.report(m.mgr.Toggle(m.ctx, id))
	}
}

func (m *model) deleteSelected() {
	if id, ok := m.selected(); ok {
		m.report(m.mgr.Delete(m.ctx, id))
		m.ensureVisible()
	}
}

func (m *model) move(delta int) {
	id, ok := m.selected()
	if !ok {
		return
	}
	to := m.cursor + delta
	if to < 0 || to >= m.mgr.Len() {
		return
	}
	m.report(m.mgr.Move(m.ctx, id, to))
	m.cursor = to
}

func (m *model) startEdit() tea.Cmd {
	id, ok := m.selected()
	if !ok {
		return nil
	}
	item, _ := m.mgr.Get(id)
	m.input.Blur()
	m.editing = id
	m.focus = focusEdit
	m.editor.SetValue(item.Text)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// commitEdit saves the editor contents; it runs on Enter and on every way of
// leaving the editor.
func (m *model) commitEdit() {
	if m.editing == "" {
		return
	}
	id := m.editing
	m.editing = ""
	m.editor.Blur()
	m.focus = focusList

	ok, err := m.mgr.Edit(m.ctx, id, m.editor.Value())
	if err == nil && !ok {
		m.status = "Empty text ignored, kept the previous text"
		return
	}
	m.report(err)
}

func (m *model) requestClear() {
	if m.mgr.Len() == 0 {
		return
	}
	if m.cfg.confirmClear {
		m.confirming = true
		return
	}
	m.clearAll()
}

func (m *model) clearAll() {
	m.confirming = false
	m.report(m.mgr.Clear(m.ctx))
	m.cursor, m.offset = 0, 0
}

// report shows err in the status line; a nil err clears it.
func (m *model) report(err error) {
	if err != nil {
		m.status = "Error: " + err.Error()
		return
	}
	m.status = ""
}

// capacity is the number of item rows that fit on screen.
func (m *model) capacity() int {
	if m.height <= 0 {
		return max(1, m.mgr.Len())
	}
	return max(1, m.height-listTop-footerLines)
}

func (m *model) visibleRows() int {
	n := m.mgr.Len()
	if n == 0 {
		return 1
	}
	return min(n, m.capacity())
}

func (m *model) ensureVisible() {
	n := m.mgr.Len()
	m.cursor = max(0, min(m.cursor, n-1))
	c := m.capacity()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+c {
		m.offset = m.cursor - c + 1
	}
	m.offset = max(0, min(m.offset, n-c))
}
