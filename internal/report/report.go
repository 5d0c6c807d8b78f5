// Package report turns the frontier's raw file accumulator into the
// final sorted listing and writes it out.
package report

import (
	"os"
	"sort"
	"strings"
)

// Assemble sorts the raw file paths lexicographically and drops
// duplicates. The traversal itself never processes a directory twice,
// but the same file may be linked from more than one page.
func Assemble(files []string) []string {
	out := make([]string, len(files))
	copy(out, files)
	sort.Strings(out)

	dedup := out[:0]
	for i, p := range out {
		if i == 0 || p != out[i-1] {
			dedup = append(dedup, p)
		}
	}
	return dedup
}

// OutputName derives the result filename from the starting directory:
// the root maps to files.txt, anything else embeds the path with its
// slashes flattened, e.g. /pub/data/ -> files_pub_data.txt.
func OutputName(startDir string) string {
	trimmed := strings.Trim(startDir, "/")
	if trimmed == "" {
		return "files.txt"
	}
	return "files_" + strings.ReplaceAll(trimmed, "/", "_") + ".txt"
}

// Write creates or truncates name and writes one path per line,
// newline-terminated.
func Write(name string, files []string) error {
	var sb strings.Builder
	for _, p := range files {
		sb.WriteString(p)
		sb.WriteByte('\n')
	}
	return os.WriteFile(name, []byte(sb.String()), 0o644)
}
