package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/store"
	"github.com/nibzard/tasktrack/internal/todo"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook tests use sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestInvoke(t *testing.T) {
	t.Run("empty command returns success without running", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: "  "})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("payload on stdin and namespace in env", func(t *testing.T) {
		skipWithoutShell(t)
		var out bytes.Buffer
		result, err := Invoke(context.Background(), Options{
			Command:   `cat; printf ' %s' "$TASKTRACK_NAMESPACE"`,
			Namespace: "work",
			Payload:   []byte(`[{"id":1}]`),
			Stdout:    &out,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !result.Ran || result.ExitCode != 0 {
			t.Errorf("result: got %+v", result)
		}
		if got := out.String(); got != `[{"id":1}] work` {
			t.Errorf("output: got %q", got)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		skipWithoutShell(t)
		result, err := Invoke(context.Background(), Options{Command: "exit 42"})
		if err == nil {
			t.Fatal("expected error for failed hook, got nil")
		}
		if !result.Ran {
			t.Error("expected Ran to be true")
		}
		if result.ExitCode != 42 {
			t.Errorf("expected ExitCode 42, got %d", result.ExitCode)
		}
	})

	t.Run("work dir", func(t *testing.T) {
		skipWithoutShell(t)
		dir := t.TempDir()
		var out bytes.Buffer
		if _, err := Invoke(context.Background(), Options{Command: "pwd", WorkDir: dir, Stdout: &out}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want, _ := filepath.EvalSymlinks(dir)
		got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
		if got != want {
			t.Errorf("pwd: got %q, want %q", got, want)
		}
	})

	t.Run("timeout kills the hook", func(t *testing.T) {
		skipWithoutShell(t)
		start := time.Now()
		result, err := Invoke(context.Background(), Options{
			Command: "sleep 10",
			Timeout: 100 * time.Millisecond,
		})
		if err == nil {
			t.Fatal("expected timeout error, got nil")
		}
		if !result.Ran {
			t.Error("expected Ran to be true")
		}
		if time.Since(start) > 5*time.Second {
			t.Errorf("hook was not killed in time")
		}
	})
}

func TestSubscriber(t *testing.T) {
	skipWithoutShell(t)
	out := filepath.Join(t.TempDir(), "changes.json")
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	sub := Subscriber(context.Background(), logger, Options{
		Command:   "cat > " + out,
		Namespace: "todo",
		Timeout:   5 * time.Second,
	})
	task := todo.Task{ID: 3, Desc: "x", Status: todo.StatusOpen}
	sub(store.ChangeSet{
		{ID: 3, Action: store.ActionAdd, Task: &task},
		{ID: 3, Action: store.ActionUpdate, Status: todo.StatusDone},
	})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("hook output missing: %v", err)
	}
	var got []map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("hook received invalid JSON %q: %v", data, err)
	}
	if len(got) != 2 || got[0]["action"] != "ADD" || got[1]["status"] != "DONE" {
		t.Errorf("payload: got %v", got)
	}
	if !strings.Contains(logs.String(), "hook ran") {
		t.Errorf("expected debug log, got %q", logs.String())
	}
}

func TestSubscriberLogsFailure(t *testing.T) {
	skipWithoutShell(t)
	var logs bytes.Buffer
	sub := Subscriber(context.Background(), log.New(&logs), Options{Command: "exit 3"})

	// Must not panic or propagate.
	sub(store.ChangeSet{{ID: 1, Action: store.ActionDelete}})

	if !strings.Contains(logs.String(), "hook failed") {
		t.Errorf("expected warning, got %q", logs.String())
	}
}

func TestExitCodeFromError(t *testing.T) {
	t.Run("nil error returns 0", func(t *testing.T) {
		if code := exitCodeFromError(nil); code != 0 {
			t.Errorf("expected 0, got %d", code)
		}
	})

	t.Run("non-ExitError returns -1", func(t *testing.T) {
		err := &os.PathError{Err: exec.ErrNotFound}
		if code := exitCodeFromError(err); code != -1 {
			t.Errorf("expected -1, got %d", code)
		}
	})

	t.Run("ExitError returns actual exit code", func(t *testing.T) {
		skipWithoutShell(t)
		err := exec.Command("sh", "-c", "exit 42").Run()
		if code := exitCodeFromError(err); code != 42 {
			t.Errorf("expected 42, got %d", code)
		}
	})
}
