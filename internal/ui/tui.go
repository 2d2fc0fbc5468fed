// Package ui provides the interactive terminal list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/list"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	mouse        bool
	confirmClear bool
	changes      <-chan struct{}
	title        string
}

// WithMouse enables mouse clicks and drag reordering.
func WithMouse(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.mouse = enabled
	}
}

// WithConfirmClear asks before clearing the list.
func WithConfirmClear(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.confirmClear = enabled
	}
}

// WithChanges reloads the list whenever ch fires. Typically the channel
// returned by store.FileStore.Watch.
func WithChanges(ch <-chan struct{}) TUIOption {
	return func(c *tuiConfig) {
		c.changes = ch
	}
}

// WithTitle overrides the heading.
func WithTitle(title string) TUIOption {
	return func(c *tuiConfig) {
		c.title = title
	}
}

// RunTUI runs the interactive list on mgr until the user quits or ctx is done.
// mgr must already be initialized.
func RunTUI(ctx context.Context, cfg *config.Config, mgr *list.Manager, opts ...TUIOption) error {
	c := &tuiConfig{
		mouse:        cfg.Mouse,
		confirmClear: cfg.ConfirmClear,
		title:        defaultTitle,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	initial := newModel(ctx, mgr, c)
	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithReportFocus(),
	}
	if c.mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(initial, programOpts...).Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
