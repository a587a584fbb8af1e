package kv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func backends(t *testing.T) map[string]func(t *testing.T) Storage {
	t.Helper()
	return map[string]func(t *testing.T) Storage{
		"memory": func(t *testing.T) Storage {
			return NewMemory()
		},
		"file": func(t *testing.T) Storage {
			s, err := OpenFile(filepath.Join(t.TempDir(), "data"))
			if err != nil {
				t.Fatalf("OpenFile failed: %v", err)
			}
			return s
		},
		"sqlite": func(t *testing.T) Storage {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "tasks.db"))
			if err != nil {
				t.Fatalf("OpenSQLite failed: %v", err)
			}
			return s
		},
	}
}

func TestStorageContract(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			if _, err := s.Get("todo"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get on empty store: expected ErrNotFound, got %v", err)
			}

			if err := s.Set("todo", []byte(`[]`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Set("todo", []byte(`[{"id":0}]`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, err := s.Get("todo")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `[{"id":0}]` {
				t.Errorf("Get: got %s", got)
			}

			if err := s.Set("other", []byte("x")); err != nil {
				t.Fatalf("Set other failed: %v", err)
			}
			if err := s.Remove("todo"); err != nil {
				t.Fatalf("Remove failed: %v", err)
			}
			if _, err := s.Get("todo"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Remove: expected ErrNotFound, got %v", err)
			}
			if err := s.Remove("todo"); err != nil {
				t.Errorf("Remove of absent key: %v", err)
			}
			if v, err := s.Get("other"); err != nil || string(v) != "x" {
				t.Errorf("other key: got (%s, %v)", v, err)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	in := []byte("abc")
	if err := m.Set("k", in); err != nil {
		t.Fatal(err)
	}
	in[0] = 'z'

	out, _ := m.Get("k")
	if string(out) != "abc" {
		t.Errorf("stored value aliased caller slice: %s", out)
	}
	out[0] = 'y'
	again, _ := m.Get("k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored slice: %s", again)
	}
}

func TestFileLayout(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Set("my list", []byte("[]")); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, "my%20list.json")
	if f.Path("my list") != want {
		t.Errorf("Path: got %s, want %s", f.Path("my list"), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected %s to exist: %v", want, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileKeysDoNotCollide(t *testing.T) {
	f, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	keys := []string{"a/b", "a_b", "a b", ".a"}
	for _, key := range keys {
		if err := f.Set(key, []byte(key)); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}
	for _, key := range keys {
		got, err := f.Get(key)
		if err != nil {
			t.Fatalf("Get(%q): %v", key, err)
		}
		if string(got) != key {
			t.Errorf("Get(%q): got %q", key, got)
		}
	}
}

func TestOpenFileRequiresDir(t *testing.T) {
	if _, err := OpenFile(""); err == nil {
		t.Error("expected error for empty dir")
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("todo", []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, err := reopened.Get("todo")
	if err != nil || string(got) != `[1]` {
		t.Errorf("after reopen: got (%s, %v)", got, err)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		backend  string
		location string
		wantErr  bool
	}{
		{"memory", "", false},
		{"MEMORY", "", false},
		{"file", filepath.Join(dir, "files"), false},
		{"sqlite", filepath.Join(dir, "kv.db"), false},
		{"redis", "", true},
		{"file", "", true},
	}

	for _, tt := range tests {
		s, err := Open(tt.backend, tt.location)
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q, %q): err = %v, wantErr %v", tt.backend, tt.location, err, tt.wantErr)
			continue
		}
		if s != nil {
			s.Close()
		}
	}
}
