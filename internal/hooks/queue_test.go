package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack/internal/store"
)

func TestQueueDoesNotBlockPublisher(t *testing.T) {
	skipWithoutShell(t)
	out := filepath.Join(t.TempDir(), "changes.log")
	var hookOutput bytes.Buffer
	q := NewQueue(context.Background(), log.New(&bytes.Buffer{}), Options{
		Command: "sleep 0.3; cat >> " + out + "; echo >> " + out + "; echo ran",
		Timeout: 5 * time.Second,
		Stdout:  &hookOutput,
	}, 0)
	sub := q.Subscriber()

	start := time.Now()
	sub(store.ChangeSet{{ID: 1, Action: store.ActionDelete}})
	sub(store.ChangeSet{{ID: 2, Action: store.ActionDelete}})
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("subscriber blocked for %v", elapsed)
	}

	q.Close()

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("hook output missing: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"id":1`) || !strings.Contains(lines[1], `"id":2`) {
		t.Errorf("hooks ran out of order or not at all: %q", data)
	}
	if strings.Count(hookOutput.String(), "ran") != 2 {
		t.Errorf("hook stdout not routed to the configured writer: %q", hookOutput.String())
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	skipWithoutShell(t)
	var logs bytes.Buffer
	release := filepath.Join(t.TempDir(), "release")
	q := NewQueue(context.Background(), log.New(&logs), Options{
		Command: "while [ ! -e " + release + " ]; do sleep 0.01; done",
		Timeout: 5 * time.Second,
	}, 1)
	sub := q.Subscriber()

	// The worker takes the first change set; the second fills the buffer.
	sub(store.ChangeSet{{ID: 1, Action: store.ActionDelete}})
	deadline := time.Now().Add(2 * time.Second)
	for len(q.jobs) != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	sub(store.ChangeSet{{ID: 2, Action: store.ActionDelete}})
	sub(store.ChangeSet{{ID: 3, Action: store.ActionDelete}})

	if err := os.WriteFile(release, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	q.Close()

	if !strings.Contains(logs.String(), "hook queue full") {
		t.Errorf("expected drop warning, got %q", logs.String())
	}
}

func TestQueueIgnoresChangesAfterClose(t *testing.T) {
	q := NewQueue(context.Background(), log.New(&bytes.Buffer{}), Options{}, 0)
	q.Close()
	q.Close()
	// Must not panic on a closed channel.
	q.Subscriber()(store.ChangeSet{{ID: 1, Action: store.ActionDelete}})
}
