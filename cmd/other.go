package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/nibzard/tasktrack/internal/config"
	"github.com/nibzard/tasktrack/internal/logging"
	"github.com/nibzard/tasktrack/internal/ui"
)

// tuiCommand launches the TUI. Logs go to a file so they do not corrupt
// the screen.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	logFile, err := logging.OpenFile(a.cfg.LogFilePath())
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := logging.NewFromConfig(logFile, a.cfg.LogLevel, a.cfg.LogFormat, true, a.cfg.LogCaller)

	// Hook output would draw over the alt screen, and a slow hook would stall
	// key handling, so hooks run in the background and write to the log.
	s, closeStore, err := a.openStore(ctx, storeEnv{logger: logger, hookOut: logFile, asyncHooks: true})
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("tui started", "namespace", a.cfg.Namespace, "backend", a.cfg.Backend, "tasks", s.Len())
	return ui.RunTUI(ctx, s, logger)
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	if path := a.sources.GetConfigFile(); path != "" {
		fmt.Fprintf(a.stdout, "Config file: %s\n\n", path)
	} else {
		fmt.Fprintf(a.stdout, "Config file: (none)\n\n")
	}

	values := a.cfg.Values()
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	for _, field := range config.Fields() {
		fmt.Fprintf(tw, "%s\t%q\t(%s)\n", field, values[field], a.sources.Sources[field])
	}
	return tw.Flush()
}

// logsCommand prints the TUI log file.
func (a *app) logsCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("logs")
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	path := a.cfg.LogFilePath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(a.stdout, "No log file found.")
		return nil
	}
	return logging.TailLog(ctx, a.stdout, path, *n, *follow)
}
