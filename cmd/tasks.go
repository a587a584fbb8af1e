package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/nibzard/tasktrack/internal/todo"
	"github.com/nibzard/tasktrack/internal/utils"
)

var errEmptyDesc = errors.New("task description cannot be empty")

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("tasktrack "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// addCommand adds one task.
func (a *app) addCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("add")
	statusFlag := fs.String("status", "", "Initial status (OPEN|INPROGRESS|DONE)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	desc := strings.Join(fs.Args(), " ")
	if strings.TrimSpace(desc) == "" {
		return errEmptyDesc
	}
	var status todo.Status
	if *statusFlag != "" {
		parsed, err := todo.ParseStatus(*statusFlag)
		if err != nil {
			return err
		}
		status = parsed
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := s.Add(desc, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added #%d [%s] %s\n", position(s.Tasks(), task.ID), task.Status, task.Desc)
	return nil
}

// lsCommand lists the tasks matching a filter, newest first.
func (a *app) lsCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("ls")
	filterFlag := fs.String("filter", "ALL", "Filter (ALL|OPEN|INPROGRESS|DONE)")
	asJSON := fs.Bool("json", false, "Print tasks as a JSON array")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args()[1:])
	}
	// A bare positional argument is accepted as the filter.
	if fs.NArg() == 1 {
		*filterFlag = fs.Arg(0)
	}
	filter, ok := todo.ParseFilter(*filterFlag)
	if !ok {
		return fmt.Errorf("%w: unknown filter %q, valid filters: %s", todo.ErrInvalidArgument, *filterFlag, joinFilters())
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	s.SetFilter(filter)
	tasks := s.Visible()

	if *asJSON {
		data, err := todo.Encode(tasks)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil
	}
	printTaskList(a.stdout, tasks)
	return nil
}

// statusCommand changes the status of one task.
func (a *app) statusCommand(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tasktrack status <id> <STATUS>")
	}
	id, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || id < 0 {
		return fmt.Errorf("invalid id %q", args[0])
	}
	status, err := todo.ParseStatus(args[1])
	if err != nil {
		return err
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	if _, ok := s.Get(id); !ok {
		return fmt.Errorf("no task with id %d", id)
	}
	if err := s.ChangeStatus(id, status); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "#%d is now %s\n", id, status)
	return nil
}

// rmCommand deletes one or more tasks.
func (a *app) rmCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tasktrack rm <id> [id...]")
	}
	ids, err := utils.ParseIDs(args)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("usage: tasktrack rm <id> [id...]")
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	var missing []string
	for _, id := range ids {
		if _, ok := s.Get(id); !ok {
			missing = append(missing, strconv.Itoa(id))
		}
	}

	if len(ids) == 1 {
		err = s.Delete(ids[0])
	} else {
		err = s.DeleteMultiple(ids)
	}
	if err != nil {
		return err
	}

	if len(missing) > 0 {
		fmt.Fprintf(a.stderr, "No task with id: %s\n", strings.Join(missing, ", "))
	}
	fmt.Fprintf(a.stdout, "Removed %d task(s)\n", len(ids)-len(missing))
	return nil
}

// importCommand adds every draft from a JSON array in one batch.
func (a *app) importCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tasktrack import <file|->")
	}

	var r io.Reader = a.stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening import file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var drafts []todo.Draft
	if err := json.NewDecoder(r).Decode(&drafts); err != nil {
		return fmt.Errorf("decoding import: %w", err)
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	added, err := s.AddMultiple(drafts)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Imported %d task(s)\n", len(added))
	return nil
}

// clearCommand deletes every task, or every task with the given status.
func (a *app) clearCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("clear")
	statusFlag := fs.String("status", "", "Only delete tasks with this status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	filter := todo.FilterAll
	if *statusFlag != "" {
		status, err := todo.ParseStatus(*statusFlag)
		if err != nil {
			return err
		}
		filter = todo.Filter(status)
	}

	s, closeStore, err := a.openStore(ctx, a.cliEnv())
	if err != nil {
		return err
	}
	defer closeStore()

	var ids []int
	for _, t := range todo.FilterTasks(s.Tasks(), filter) {
		ids = append(ids, t.ID)
	}
	if err := s.DeleteMultiple(ids); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Removed %d task(s)\n", len(ids))
	return nil
}

// position returns the index of id in tasks. The next process numbers the
// loaded tasks by this index, so it is the id the user should type later.
func position(tasks []todo.Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func printTaskList(w io.Writer, tasks []todo.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDESCRIPTION")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Status, t.Desc)
	}
	tw.Flush()
}

func joinFilters() string {
	filters := todo.Filters()
	names := make([]string, len(filters))
	for i, f := range filters {
		names[i] = string(f)
	}
	return strings.Join(names, "/")
}
