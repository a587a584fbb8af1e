package utils

import (
	"context"
	"os/exec"
	"runtime"
)

// ShellCommand returns a command that runs line through the platform shell:
// "cmd /C" on Windows and "sh -c" elsewhere.
func ShellCommand(ctx context.Context, line string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", line)
	}
	return exec.CommandContext(ctx, "sh", "-c", line)
}
