// Package hooks runs an external command after every task change.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/store"
	"github.com/nibzard/tasktrack/internal/utils"
)

// Options configures a hook invocation.
type Options struct {
	// Command is a shell command line. Empty disables the hook.
	Command   string
	Namespace string
	// Payload is written to the command's stdin.
	Payload []byte
	WorkDir string
	// Timeout bounds the run; zero means no limit beyond ctx.
	Timeout time.Duration
	Stdout  io.Writer
	Stderr  io.Writer
}

// Result captures a hook invocation.
type Result struct {
	Ran      bool
	ExitCode int
	Duration time.Duration
}

// Invoke runs the hook command with the payload on stdin.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	command := strings.TrimSpace(opts.Command)
	if command == "" {
		return Result{}, nil
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := utils.ShellCommand(ctx, command)
	cmd.Stdin = bytes.NewReader(opts.Payload)
	cmd.Env = append(os.Environ(), "TASKTRACK_NAMESPACE="+opts.Namespace)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr
	// Don't wait on pipes held open by grandchildren after a kill.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	result := Result{
		Ran:      true,
		ExitCode: exitCodeFromError(err),
		Duration: time.Since(start),
	}
	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("hook %q: %w", command, ctx.Err())
		}
		return result, fmt.Errorf("hook %q failed (exit %d): %w", command, result.ExitCode, err)
	}
	return result, nil
}

// Subscriber returns a task-data subscriber that invokes the hook with the
// change set encoded as JSON. Failures are logged and never returned to the
// store.
func Subscriber(ctx context.Context, logger *log.Logger, opts Options) func(store.ChangeSet) {
	return func(cs store.ChangeSet) {
		payload, err := json.Marshal(cs)
		if err != nil {
			logger.Warn("encoding change set for hook", "err", err)
			return
		}
		run := opts
		run.Payload = payload
		result, err := Invoke(ctx, run)
		if err != nil {
			logger.Warn("hook failed", "exit_code", result.ExitCode, "err", err)
			return
		}
		if result.Ran {
			logger.Debug("hook ran", "changes", len(cs), "duration", result.Duration)
		}
	}
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

