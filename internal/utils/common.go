// Package utils provides shared utility functions used across multiple packages.
package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// SplitAndTrim splits a string by sep and trims whitespace from each part.
// Empty parts are omitted from the result.
func SplitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ParseIDs parses task ids from arguments. Each argument may itself be a
// comma-separated list, so "1,2 3" yields [1 2 3].
func ParseIDs(args []string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, part := range SplitAndTrim(arg, ",") {
			id, err := strconv.Atoi(part)
			if err != nil || id < 0 {
				return nil, fmt.Errorf("invalid task id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// SanitizeKey maps a storage key to a string that is safe as a file name.
// Letters, digits, '_', '-' and any '.' but a leading one are kept; every
// other byte becomes %XX. The mapping is one-to-one, so distinct keys never
// share a file. The empty key maps to "%", which no escape produces.
func SanitizeKey(key string) string {
	if key == "" {
		return "%"
	}

	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '_' || c == '-' ||
			(c == '.' && i > 0)
		if !valid {
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0F])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
// For example, "#/foo/bar/0/baz" becomes "foo.bar[0].baz".
func JSONPointerToPath(ptr string) string {
	if ptr == "" {
		return ""
	}
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		// ~1 is '/', ~0 is '~'
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}
