package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/logging"
	"github.com/nibzard/listkeep/internal/store"
	"github.com/nibzard/listkeep/internal/todo"
)

// doctorCommand checks config, storage, snapshot validity and logs.
func doctorCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fmt.Println("listkeep doctor")
	fmt.Println("===============")
	fmt.Println()

	allOK := true

	// Config
	fmt.Println("Config:")
	if p := config.ConfigFile(); p != "" {
		fmt.Printf("  File: %s\n", p)
	} else {
		fmt.Println("  File: none (defaults)")
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Printf("  ✅ Store: %s, key: %s\n", cfg.Store, cfg.SnapshotKey)
	}
	fmt.Println()

	// Data directory
	fmt.Printf("Data directory: %s\n", cfg.DataDir)
	if cfg.Store == string(store.KindMemory) {
		fmt.Println("  ⚠️  Memory store: nothing is kept between runs")
	} else if !checkDir(cfg.DataDir) {
		allOK = false
	}
	fmt.Println()

	// Snapshot
	fmt.Printf("Snapshot %q:\n", cfg.SnapshotKey)
	if !checkSnapshot(ctx, cfg, *verbose) {
		allOK = false
	}
	fmt.Println()

	// Schema file
	if cfg.SchemaFile != "" {
		fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	// Log directory
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if checkDir(cfg.LogDir) && *verbose {
		if logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot); err == nil {
			runs, _ := logging.FindLogRuns(logDir)
			fmt.Printf("  Runs for this directory: %d\n", len(runs))
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. listkeep may not work correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkDir reports on a directory that is created on demand; only a path
// that exists and is not a directory fails.
func checkDir(path string) bool {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Println("  ⚠️  Not found (will be created on first use)")
		return true
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		return false
	case !info.IsDir():
		fmt.Println("  ❌ Error: path is not a directory")
		return false
	default:
		fmt.Println("  ✅ OK")
		return true
	}
}

// checkSnapshot reads the snapshot without going through the Manager, so
// corruption is reported instead of silently recovered.
func checkSnapshot(ctx context.Context, cfg *config.Config, verbose bool) bool {
	if cfg.Store != string(store.KindMemory) {
		if _, err := os.Stat(cfg.DataDir); err != nil {
			fmt.Println("  ⚠️  Not found (starts empty)")
			return true
		}
	}

	st, err := store.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		fmt.Printf("  ❌ Store: %v\n", err)
		return false
	}
	defer st.Close()

	switch s := st.(type) {
	case *store.FileStore:
		fmt.Printf("  Location: %s\n", s.Dir())
	case *store.SQLiteStore:
		fmt.Printf("  Database: %s\n", s.Path())
	}

	data, ok, err := st.Get(ctx, cfg.SnapshotKey)
	switch {
	case err != nil:
		fmt.Printf("  ❌ Read error: %v\n", err)
		return false
	case !ok:
		fmt.Println("  ⚠️  Not found (starts empty)")
		return true
	}

	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Println("  ❌ Validation failed (the list loads what it can read):")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		return false
	}
	fmt.Printf("  ✅ Valid (%d items)\n", result.Records)

	if verbose {
		for i, it := range todo.DecodeSnapshot(data) {
			fmt.Println("  " + formatItem(i, it))
		}
	}
	return true
}
