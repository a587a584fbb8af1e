package datadir

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirPath(t *testing.T) {
	tests := []struct {
		workDir string
		want    string
	}{
		{"", Dir},
		{".", Dir},
		{"/tmp/project", filepath.Join("/tmp/project", Dir)},
	}
	for _, tt := range tests {
		if got := DirPath(tt.workDir); got != tt.want {
			t.Errorf("DirPath(%q): got %q, want %q", tt.workDir, got, tt.want)
		}
	}
}

func TestFilePaths(t *testing.T) {
	if got := DBPath("data"); got != filepath.Join("data", DBFile) {
		t.Errorf("DBPath: got %q", got)
	}
	if got := LogPath("data"); got != filepath.Join("data", LogFile) {
		t.Errorf("LogPath: got %q", got)
	}
}

func TestEnsure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", Dir)
	if err := Ensure(dir); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory at %s: %v", dir, err)
	}
	if err := Ensure(dir); err != nil {
		t.Errorf("Ensure on existing dir: %v", err)
	}
}
