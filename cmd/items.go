package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/nibzard/listkeep/internal/config"
	"github.com/nibzard/listkeep/internal/todo"
	"github.com/nibzard/listkeep/internal/ui"
)

// errEmptyText is returned when add or edit is given only whitespace.
var errEmptyText = errors.New("text is empty")

// addCommand appends one item built from all arguments.
func addCommand(ctx context.Context, cfg *config.Config, args []string) error {
	text := strings.Join(args, " ")
	s, err := openSession(ctx, cfg, "add")
	if err != nil {
		return err
	}
	defer s.Close()

	item, ok, err := s.mgr.Add(ctx, text)
	if !ok {
		return fmt.Errorf("add: %w", errEmptyText)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Added %d: %s\n", s.mgr.Len(), item.Text)
	return nil
}

// lsCommand prints the list with 1-based positions.
func lsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep ls", flag.ContinueOnError)
	onlyOpen := fs.Bool("open", false, "Show only open items")
	onlyDone := fs.Bool("done", false, "Show only completed items")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	s, err := openSession(ctx, cfg, "ls")
	if err != nil {
		return err
	}
	defer s.Close()

	items := s.mgr.Items()
	if len(items) == 0 {
		fmt.Println("No items.")
		return nil
	}
	for i, it := range items {
		if (*onlyOpen && it.Completed) || (*onlyDone && !it.Completed) {
			continue
		}
		fmt.Println(formatItem(i, it))
	}
	st := s.mgr.Stats()
	fmt.Printf("\n%d items, %d done, %d open\n", st.Total, st.Completed, st.Open)
	return nil
}

// doneCommand toggles item n.
func doneCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: listkeep done <n>")
	}
	s, err := openSession(ctx, cfg, "done")
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.itemAt(args[0])
	if err != nil {
		return err
	}
	if err := s.mgr.Toggle(ctx, id); err != nil {
		return err
	}
	item, _ := s.mgr.Get(id)
	if item.Completed {
		fmt.Printf("Completed: %s\n", item.Text)
	} else {
		fmt.Printf("Reopened: %s\n", item.Text)
	}
	return nil
}

// editCommand replaces the text of item n.
func editCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: listkeep edit <n> <text...>")
	}
	s, err := openSession(ctx, cfg, "edit")
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.itemAt(args[0])
	if err != nil {
		return err
	}
	ok, err := s.mgr.Edit(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("edit: %w", errEmptyText)
	}
	item, _ := s.mgr.Get(id)
	fmt.Printf("Edited %s: %s\n", args[0], item.Text)
	return nil
}

// rmCommand deletes item n.
func rmCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: listkeep rm <n>")
	}
	s, err := openSession(ctx, cfg, "rm")
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.itemAt(args[0])
	if err != nil {
		return err
	}
	item, _ := s.mgr.Get(id)
	if err := s.mgr.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted: %s\n", item.Text)
	return nil
}

// mvCommand moves item n to position to; positions past the end clamp.
func mvCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: listkeep mv <n> <to>")
	}
	to, err := strconv.Atoi(args[1])
	if err != nil || to < 1 {
		return fmt.Errorf("invalid position %q", args[1])
	}
	s, err := openSession(ctx, cfg, "mv")
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.itemAt(args[0])
	if err != nil {
		return err
	}
	if err := s.mgr.Move(ctx, id, to-1); err != nil {
		return err
	}
	item, _ := s.mgr.Get(id)
	fmt.Printf("Moved to %d: %s\n", s.mgr.Index(id)+1, item.Text)
	return nil
}

// clearCommand deletes every item, asking first when confirm_clear is set.
func clearCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep clear", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, "clear")
	if err != nil {
		return err
	}
	defer s.Close()

	n := s.mgr.Len()
	if cfg.ConfirmClear && !*yes && n > 0 {
		if !ui.IsTTY(os.Stdin) {
			return fmt.Errorf("refusing to clear %d items without -y", n)
		}
		if !confirm(os.Stdin, fmt.Sprintf("Clear all %d items? [y/N] ", n)) {
			fmt.Println("Cancelled.")
			return nil
		}
	}
	if err := s.mgr.Clear(ctx); err != nil {
		return err
	}
	fmt.Printf("Cleared %d items.\n", n)
	return nil
}

// exportCommand prints the snapshot, or writes it atomically with -o.
func exportCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep export", flag.ContinueOnError)
	out := fs.String("o", "", "Write to file instead of stdout")
	pretty := fs.Bool("pretty", false, "Indent the JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, "export")
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.mgr.Snapshot()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if *pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("formatting snapshot: %w", err)
		}
		data = buf.Bytes()
	}
	data = append(data, '\n')

	if *out == "" || *out == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := atomic.WriteFile(*out, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	s.logger.Info("snapshot exported", "path", *out, "items", s.mgr.Len())
	fmt.Printf("Exported %d items to %s\n", s.mgr.Len(), *out)
	return nil
}

// importCommand replaces the list with a validated snapshot file. Emptying a
// non-empty list this way needs -y, like clear.
func importCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listkeep import", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Allow replacing the list with an empty one")
	if err := fs.Parse(args); err != nil {
		return err
	}
	args = fs.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: listkeep import [-y] <file|->")
	}
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("import %s: file is empty", args[0])
	}

	result := todo.Validate(data, todo.ValidationOptions{SchemaPath: cfg.SchemaFile})
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return fmt.Errorf("import %s: snapshot is invalid", args[0])
	}
	items, err := todo.ParseSnapshot(data)
	if err != nil {
		return fmt.Errorf("import %s: %w", args[0], err)
	}

	s, err := openSession(ctx, cfg, "import")
	if err != nil {
		return err
	}
	defer s.Close()

	if len(items) == 0 && s.mgr.Len() > 0 && !*yes {
		return fmt.Errorf("import %s: refusing to replace %d items with an empty list without -y", args[0], s.mgr.Len())
	}
	if err := s.mgr.Replace(ctx, items); err != nil {
		return err
	}
	s.logger.Info("snapshot imported", "source", args[0], "items", len(items))
	fmt.Printf("Imported %d items.\n", len(items))
	return nil
}

// itemAt resolves a 1-based position argument to an item ID.
func (s *session) itemAt(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("invalid item number %q", arg)
	}
	id, ok := s.mgr.At(n - 1)
	if !ok {
		return "", fmt.Errorf("no item %d (list has %d)", n, s.mgr.Len())
	}
	return id, nil
}

func formatItem(i int, it todo.Item) string {
	box := "[ ]"
	if it.Completed {
		box = "[x]"
	}
	return fmt.Sprintf("%3d. %s %s", i+1, box, it.Text)
}

func confirm(r io.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
