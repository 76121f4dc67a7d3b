package adapter

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/cover"
	"golang.org/x/tools/imports"

	m "guut.dev/pkg/guut/internal/model"
)

// GoFileAdapter encapsulates the Go-specific source handling of the sandbox:
// parsing, package clauses, import fixing, test discovery and coverage
// profiles.
type GoFileAdapter interface {
	// Parse builds an AST using the provided file set and source bytes.
	Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error)

	// ModulePath returns the module path declared by a go.mod file.
	ModulePath(goMod []byte) (string, error)

	// PackageName returns the package clause of a Go source file.
	PackageName(src []byte) (string, error)

	// RenamePackage rewrites the package clause of src.
	RenamePackage(filename string, src []byte, name string) ([]byte, error)

	// NormalizeTestCode turns model-written code into a test file of package
	// pkgName: a missing package clause is added and imports are fixed.
	NormalizeTestCode(filename, pkgName string, code []byte) ([]byte, error)

	// TestFunctions lists the top-level Test functions of a file.
	TestFunctions(file *ast.File) []string

	// ParseCoverProfile reads a coverage profile and keys it by file path
	// relative to the module.
	ParseCoverProfile(profile, modulePath string) (*m.Coverage, error)
}

// LocalGoFileAdapter provides a concrete GoFileAdapter backed by go/parser.
type LocalGoFileAdapter struct{}

// NewLocalGoFileAdapter constructs a LocalGoFileAdapter.
func NewLocalGoFileAdapter() *LocalGoFileAdapter {
	return &LocalGoFileAdapter{}
}

// Parse builds an AST for the provided filename/source pair.
func (a *LocalGoFileAdapter) Parse(fileSet *token.FileSet, filename string, src []byte) (*ast.File, error) {
	return parser.ParseFile(fileSet, filename, src, parser.ParseComments)
}

// ModulePath returns the module directive of a go.mod file.
func (a *LocalGoFileAdapter) ModulePath(goMod []byte) (string, error) {
	path := modfile.ModulePath(goMod)
	if path == "" {
		return "", fmt.Errorf("go.mod has no module directive")
	}

	return path, nil
}

// PackageName parses only the package clause of src.
func (a *LocalGoFileAdapter) PackageName(src []byte) (string, error) {
	file, err := parser.ParseFile(token.NewFileSet(), "", src, parser.PackageClauseOnly)
	if err != nil {
		return "", err
	}

	return file.Name.Name, nil
}

// RenamePackage rewrites the package clause and reprints the file.
func (a *LocalGoFileAdapter) RenamePackage(filename string, src []byte, name string) ([]byte, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, err
	}

	file.Name.Name = name

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// NormalizeTestCode adds a package clause when the code has none and lets
// goimports add or remove imports.
func (a *LocalGoFileAdapter) NormalizeTestCode(filename, pkgName string, code []byte) ([]byte, error) {
	if !hasPackageClause(code) {
		code = append([]byte(fmt.Sprintf("package %s\n\n", pkgName)), code...)
	}

	out, err := imports.Process(filename, code, &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func hasPackageClause(code []byte) bool {
	_, err := parser.ParseFile(token.NewFileSet(), "", code, parser.PackageClauseOnly)

	return err == nil
}

// TestFunctions returns the names of functions shaped like func TestX(t *testing.T).
func (a *LocalGoFileAdapter) TestFunctions(file *ast.File) []string {
	var names []string

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv != nil || !isTestName(fn.Name.Name) {
			continue
		}

		if fn.Type.Params == nil || len(fn.Type.Params.List) != 1 {
			continue
		}

		names = append(names, fn.Name.Name)
	}

	return names
}

func isTestName(name string) bool {
	if name == "TestMain" || !strings.HasPrefix(name, "Test") {
		return false
	}

	rest := name[len("Test"):]

	return rest == "" || !('a' <= rest[0] && rest[0] <= 'z')
}

// ParseCoverProfile converts a coverage profile into line coverage. A line is
// executed when any block spanning it ran.
func (a *LocalGoFileAdapter) ParseCoverProfile(profile, modulePath string) (*m.Coverage, error) {
	profiles, err := cover.ParseProfiles(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse coverage profile: %w", err)
	}

	prefix := strings.TrimSuffix(modulePath, "/") + "/"
	coverage := &m.Coverage{Files: make(map[string]m.FileCoverage, len(profiles))}

	for _, p := range profiles {
		executed := map[int]struct{}{}
		seen := map[int]struct{}{}

		for _, block := range p.Blocks {
			for line := block.StartLine; line <= block.EndLine; line++ {
				seen[line] = struct{}{}
				if block.Count > 0 {
					executed[line] = struct{}{}
				}
			}
		}

		var fc m.FileCoverage

		for line := range seen {
			if _, ok := executed[line]; ok {
				fc.ExecutedLines = append(fc.ExecutedLines, line)
			} else {
				fc.MissingLines = append(fc.MissingLines, line)
			}
		}

		sort.Ints(fc.ExecutedLines)
		sort.Ints(fc.MissingLines)

		coverage.Files[strings.TrimPrefix(p.FileName, prefix)] = fc
	}

	return coverage, nil
}
