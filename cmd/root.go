// Package cmd implements the CLI command structure for listkeep.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the listkeep CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("listkeep", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Without a subcommand, open the interactive list on a terminal and
	// print it otherwise.
	subcommand := "tui"
	if !ui.IsTTY(os.Stdout) {
		subcommand = "ls"
	}
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs)
	case "done", "toggle":
		return doneCommand(ctx, cfg, remainingArgs)
	case "edit":
		return editCommand(ctx, cfg, remainingArgs)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs)
	case "mv", "move":
		return mvCommand(ctx, cfg, remainingArgs)
	case "clear":
		return clearCommand(ctx, cfg, remainingArgs)
	case "export":
		return exportCommand(ctx, cfg, remainingArgs)
	case "import":
		return importCommand(ctx, cfg, remainingArgs)
	case "doctor":
		return doctorCommand(ctx, cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("listkeep version %s\n", Version)
	return nil
}

// configCommand prints an example configuration, or with -path the config
// file in effect.
func configCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep config", flag.ContinueOnError)
	showPath := fs.Bool("path", false, "Print the config file in effect")
	showResolved := fs.Bool("resolved", false, "Print the resolved configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *showPath:
		if p := config.ConfigFile(); p != "" {
			fmt.Println(p)
		} else {
			fmt.Println("(no config file; using defaults)")
		}
	case *showResolved:
		fmt.Printf("data_dir = %q\n", cfg.DataDir)
		fmt.Printf("store = %q\n", cfg.Store)
		fmt.Printf("snapshot_key = %q\n", cfg.SnapshotKey)
		fmt.Printf("schema_file = %q\n", cfg.SchemaFile)
		fmt.Printf("mouse = %v\n", cfg.Mouse)
		fmt.Printf("watch = %v\n", cfg.Watch)
		fmt.Printf("confirm_clear = %v\n", cfg.ConfirmClear)
		fmt.Printf("log_dir = %q\n", cfg.LogDir)
		fmt.Printf("log_level = %q\n", cfg.LogLevel)
		fmt.Printf("log_format = %q\n", cfg.LogFormat)
		fmt.Printf("log_timestamps = %v\n", cfg.LogTimestamps)
		fmt.Printf("log_caller = %v\n", cfg.LogCaller)
	default:
		fmt.Print(config.ExampleConfig())
	}
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "listkeep - a small persistent todo list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  listkeep [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                 Interactive list (default on a terminal)")
	fmt.Fprintln(w, "  add <text...>       Add an item at the end")
	fmt.Fprintln(w, "  ls [-open|-done]    List items (default when not on a terminal)")
	fmt.Fprintln(w, "  done <n>            Toggle item n between open and completed")
	fmt.Fprintln(w, "  edit <n> <text...>  Replace the text of item n")
	fmt.Fprintln(w, "  rm <n>              Delete item n")
	fmt.Fprintln(w, "  mv <n> <to>         Move item n to position to")
	fmt.Fprintln(w, "  clear [-y]          Delete every item")
	fmt.Fprintln(w, "  export [-o file]    Print the snapshot JSON")
	fmt.Fprintln(w, "  import [-y] <file>  Replace the list from a snapshot file (- for stdin)")
	fmt.Fprintln(w, "  doctor [-v]         Check config, store, snapshot and logs")
	fmt.Fprintln(w, "  tail [-f] [-n N]    Tail the latest log file")
	fmt.Fprintln(w, "  config [-path]      Print an example config file")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Items are numbered from 1 in list order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
