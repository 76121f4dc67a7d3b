// Package mutagens implements the AST operators that produce mutants.
package mutagens

import (
	"go/ast"
	"go/token"
)

// Site is one place in a file where an operator applies.
type Site struct {
	// Start and End are the byte offsets of the replaced range.
	Start       int
	End         int
	Replacement string
	LineStart   int
	LineEnd     int
}

// Operator finds every site where one specific replacement applies. Sites
// are returned in source order; a mutant's occurrence indexes into them.
type Operator interface {
	Name() string
	Sites(fset *token.FileSet, file *ast.File, content []byte) []Site
}

// Apply returns content with site's range replaced.
func Apply(content []byte, site Site) []byte {
	return replaceRange(content, site.Start, site.End, site.Replacement)
}

func offsetForPos(fset *token.FileSet, pos token.Pos) (int, bool) {
	if !pos.IsValid() {
		return 0, false
	}

	tokFile := fset.File(pos)
	if tokFile == nil {
		return 0, false
	}

	return tokFile.Offset(pos), true
}

func replaceRange(content []byte, start, end int, replacement string) []byte {
	out := make([]byte, 0, len(content)-(end-start)+len(replacement))
	out = append(out, content[:start]...)
	out = append(out, replacement...)
	out = append(out, content[end:]...)

	return out
}

func nodeLines(fset *token.FileSet, n ast.Node) (int, int) {
	return fset.Position(n.Pos()).Line, fset.Position(n.End()).Line
}

// inspect walks file in source order, skipping functions annotated with
// //guut:ignore and nodes on lines carrying the annotation.
func inspect(fset *token.FileSet, file *ast.File, visit func(n ast.Node)) {
	ignored := ignoredLines(fset, file)

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			return true
		}

		if fd, ok := n.(*ast.FuncDecl); ok && fd.Doc != nil && hasIgnoreAnnotation(fd.Doc) {
			return false
		}

		if _, ok := ignored[fset.Position(n.Pos()).Line]; ok {
			return true
		}

		visit(n)

		return true
	})
}

const ignoreAnnotation = "//guut:ignore"

func hasIgnoreAnnotation(group *ast.CommentGroup) bool {
	for _, c := range group.List {
		if c.Text == ignoreAnnotation {
			return true
		}
	}

	return false
}

func ignoredLines(fset *token.FileSet, file *ast.File) map[int]struct{} {
	lines := make(map[int]struct{})

	for _, group := range file.Comments {
		for _, c := range group.List {
			if c.Text != ignoreAnnotation {
				continue
			}

			line := fset.Position(c.Pos()).Line
			// Trailing annotations ignore their own line, leading ones the next.
			lines[line] = struct{}{}
			lines[line+1] = struct{}{}
		}
	}

	return lines
}
