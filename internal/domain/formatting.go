package domain

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// OutputLimit is the number of characters of process output shown to the
// model.
const OutputLimit = 2000

// AddLineNumbers prefixes every line with its zero-padded number.
func AddLineNumbers(code string) string {
	lines := strings.Split(strings.TrimRight(code, "\n"), "\n")
	width := len(strconv.Itoa(len(lines)))

	var b strings.Builder

	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}

		fmt.Fprintf(&b, "%0*d", width, i+1)

		if strings.TrimSpace(line) != "" {
			b.WriteString("  ")
			b.WriteString(line)
		}
	}

	return b.String()
}

// LimitText cuts text after the last whole line that fits in limit
// characters and marks the cut with "...".
func LimitText(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(text, "\n") {
		if b.Len()+len(line) > limit {
			break
		}

		b.WriteString(line)
	}

	return b.String() + "..."
}

// ShortenPaths removes dir and its trailing separator from text.
func ShortenPaths(text, dir string) string {
	if dir == "" {
		return text
	}

	if !strings.HasSuffix(dir, string(os.PathSeparator)) {
		dir += string(os.PathSeparator)
	}

	return strings.ReplaceAll(text, dir, "")
}

// UnifiedDiff renders the change from original to mutated as a unified diff.
func UnifiedDiff(path string, original, mutated []byte) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(original)),
		B:        difflib.SplitLines(string(mutated)),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
}
