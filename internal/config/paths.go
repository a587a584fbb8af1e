package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// expandPath expands environment variables and a leading ~ in p.
// On Windows %VAR% references and a ~\ prefix are also recognized.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if runtime.GOOS == "windows" {
		expanded = expandWindowsEnv(expanded)
	}

	rest, ok := strings.CutPrefix(expanded, "~")
	if !ok {
		return expanded
	}
	if rest != "" && rest[0] != '/' && !(runtime.GOOS == "windows" && rest[0] == '\\') {
		// ~user forms are left alone.
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	return filepath.Join(home, rest)
}

func expandWindowsEnv(p string) string {
	parts := strings.Split(p, "%")
	if len(parts) < 3 {
		return p
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for i := 1; i < len(parts); i++ {
		// Odd segments sit between a pair of % signs.
		if i%2 == 1 && i < len(parts)-1 {
			if val, ok := os.LookupEnv(parts[i]); ok && parts[i] != "" {
				b.WriteString(val)
				continue
			}
			b.WriteString("%" + parts[i] + "%")
			continue
		}
		if i%2 == 1 {
			b.WriteString("%")
		}
		b.WriteString(parts[i])
	}
	return b.String()
}
