// Package cmd implements the CLI command structure for tasktrack.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/config"
	"github.com/nibzard/tasktrack/internal/datadir"
	"github.com/nibzard/tasktrack/internal/hooks"
	"github.com/nibzard/tasktrack/internal/kv"
	"github.com/nibzard/tasktrack/internal/logging"
	"github.com/nibzard/tasktrack/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// streams bundles the process I/O so commands can be run against buffers.
type streams struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// app is the state shared by every command of one invocation.
type app struct {
	streams
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
}

// Run executes the tasktrack CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, streams{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr})
}

func run(ctx context.Context, args []string, std streams) error {
	fs := flag.NewFlagSet("tasktrack", flag.ContinueOnError)
	fs.SetOutput(std.stderr)
	fs.Usage = func() {
		printUsage(fs, std.stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}

	a := &app{streams: std, cfg: cws.Config, sources: cws}
	a.logger = logging.NewFromConfig(std.stderr, a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)

	if *help {
		printUsage(fs, std.stdout)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Default to listing when no subcommand is given.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "add":
		return a.addCommand(ctx, remainingArgs)
	case "ls", "list":
		return a.lsCommand(ctx, remainingArgs)
	case "status":
		return a.statusCommand(ctx, remainingArgs)
	case "rm", "delete":
		return a.rmCommand(ctx, remainingArgs)
	case "import":
		return a.importCommand(ctx, remainingArgs)
	case "clear":
		return a.clearCommand(ctx, remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "logs":
		return a.logsCommand(ctx, remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, std.stdout)
		return nil
	default:
		fmt.Fprintf(std.stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, std.stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// storeEnv says where a store's logs and hook output go.
type storeEnv struct {
	logger  *log.Logger
	hookOut io.Writer
	// asyncHooks runs the hook on a background queue instead of inside the
	// mutation call.
	asyncHooks bool
}

// cliEnv is the store environment for one-shot commands: logs and hook
// output go to stderr and the hook finishes before the command returns.
func (a *app) cliEnv() storeEnv {
	return storeEnv{logger: a.logger, hookOut: a.stderr}
}

// openStore opens the configured backend and returns an initialized store
// with the change loggers and, when configured, the hook attached. The
// returned close function drains pending hooks and releases the backend.
func (a *app) openStore(ctx context.Context, env storeEnv) (*store.Store, func(), error) {
	logger := env.logger
	location := a.cfg.StorageLocation()
	switch a.cfg.Backend {
	case kv.BackendFile:
		if err := datadir.Ensure(location); err != nil {
			return nil, nil, fmt.Errorf("creating data directory: %w", err)
		}
	case kv.BackendSQLite:
		if err := datadir.Ensure(filepath.Dir(location)); err != nil {
			return nil, nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	storage, err := kv.Open(a.cfg.Backend, location)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s storage: %w", a.cfg.Backend, err)
	}
	closeStorage := func() {
		if err := storage.Close(); err != nil {
			logger.Warn("closing storage", "err", err)
		}
	}

	s := store.New(a.cfg.Namespace, storage, store.WithLogger(logger))
	if err := s.Initialize(); err != nil {
		closeStorage()
		return nil, nil, err
	}

	s.SubscribeChanges(logging.ChangeLogger(logger, s.TaskChannel()))
	s.SubscribeFilter(logging.FilterLogger(logger, s.FilterChannel()))
	if strings.TrimSpace(a.cfg.HookCommand) == "" {
		return s, closeStorage, nil
	}

	opts := hooks.Options{
		Command:   a.cfg.HookCommand,
		Namespace: a.cfg.Namespace,
		WorkDir:   a.cfg.ProjectRoot,
		Timeout:   a.cfg.HookTimeout(),
		Stdout:    env.hookOut,
		Stderr:    env.hookOut,
	}
	if !env.asyncHooks {
		s.SubscribeChanges(hooks.Subscriber(ctx, logger, opts))
		return s, closeStorage, nil
	}
	queue := hooks.NewQueue(ctx, logger, opts, hooks.DefaultQueueSize)
	s.SubscribeChanges(queue.Subscriber())
	return s, func() {
		queue.Close()
		closeStorage()
	}, nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "tasktrack version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasktrack - A minimal task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasktrack [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-status S] <desc...>   Add a task (status defaults to OPEN)")
	fmt.Fprintln(w, "  ls [-filter F] [-json]     List tasks (default command)")
	fmt.Fprintln(w, "  status <id> <STATUS>       Change a task's status")
	fmt.Fprintln(w, "  rm <id> [id...]            Delete tasks")
	fmt.Fprintln(w, "  import <file|->            Add tasks from a JSON array of {desc, status}")
	fmt.Fprintln(w, "  clear [-status S]          Delete every task, or every task with status S")
	fmt.Fprintln(w, "  tui                        Launch terminal UI")
	fmt.Fprintln(w, "  config [-example]          Show effective configuration and sources")
	fmt.Fprintln(w, "  logs [-n N] [-f]           Show the terminal UI log")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statuses: OPEN, INPROGRESS, DONE. Filters: ALL, OPEN, INPROGRESS, DONE.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
