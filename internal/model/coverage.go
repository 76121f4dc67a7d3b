package model

import "sort"

// FileCoverage holds the executed and missed lines of one file, both sorted.
type FileCoverage struct {
	ExecutedLines []int `json:"executed_lines"`
	MissingLines  []int `json:"missing_lines"`
}

// Coverage maps module-relative file paths to their line coverage. It is a
// read-only snapshot of one execution.
type Coverage struct {
	Files map[string]FileCoverage `json:"files"`
}

// Covers reports whether any line in [start, end] of path was executed.
func (c *Coverage) Covers(path string, start, end int) bool {
	if c == nil {
		return false
	}

	file, ok := c.Files[path]
	if !ok {
		return false
	}

	idx := sort.SearchInts(file.ExecutedLines, start)

	return idx < len(file.ExecutedLines) && file.ExecutedLines[idx] <= end
}
