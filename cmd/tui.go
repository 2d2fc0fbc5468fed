package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/store"
	"github.com/nibzard/listkeep/internal/ui"
)

// tuiCommand launches the interactive list.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep tui", flag.ContinueOnError)
	title := fs.String("title", "", "Heading shown above the list (default: the snapshot key)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(ctx, cfg, "tui")
	if err != nil {
		return err
	}
	defer s.Close()

	heading := *title
	if heading == "" {
		heading = "listkeep: " + cfg.SnapshotKey
	}
	opts := []ui.TUIOption{ui.WithTitle(heading)}

	if fileStore, ok := s.store.(*store.FileStore); ok && cfg.Watch {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		changes, err := fileStore.Watch(watchCtx, cfg.SnapshotKey)
		if err != nil {
			s.logger.Warn("watching snapshot failed, external changes will not show", "err", err)
		} else {
			opts = append(opts, ui.WithChanges(changes))
		}
	}

	err = ui.RunTUI(ctx, cfg, s.mgr, opts...)
	s.logger.Info("tui closed", "items", s.mgr.Len(), "err", err)
	return err
}
