// Package domain contains guut's debugging session, mutant scheduler and the
// services they run on.
package domain

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/domain/mutagens"
	m "guut.dev/pkg/guut/internal/model"
)

// Mutant is a regenerated mutation: the target file before and after.
type Mutant struct {
	Spec     m.MutantSpec
	Original []byte
	Mutated  []byte
}

// Mutagen generates mutant catalogs and regenerates single mutants from
// their specs.
type Mutagen interface {
	// Catalog lists every mutant of the non-test Go files below root.
	Catalog(ctx context.Context, root m.Path, threads int, operators ...string) ([]m.MutantSpec, error)
	// Generate lists the mutants of one module-relative file.
	Generate(ctx context.Context, root m.Path, target string, operators ...string) ([]m.MutantSpec, error)
	// Apply regenerates the mutant described by spec.
	Apply(ctx context.Context, root m.Path, spec m.MutantSpec) (Mutant, error)
}

type mutagen struct {
	adapter.GoFileAdapter
	adapter.SourceFSAdapter
}

// NewMutagen creates a new Mutagen instance.
func NewMutagen(goFileAdapter adapter.GoFileAdapter, sourceFSAdapter adapter.SourceFSAdapter) Mutagen {
	return &mutagen{
		GoFileAdapter:   goFileAdapter,
		SourceFSAdapter: sourceFSAdapter,
	}
}

func resolveOperators(names []string) ([]mutagens.Operator, error) {
	if len(names) == 0 {
		return mutagens.All(), nil
	}

	var ops []mutagens.Operator

	for _, name := range names {
		if op, ok := mutagens.Lookup(name); ok {
			ops = append(ops, op)
			continue
		}

		// A bare family name selects all of its operators.
		matched := false

		for _, op := range mutagens.All() {
			if strings.HasPrefix(op.Name(), name+"/") {
				ops = append(ops, op)
				matched = true
			}
		}

		if !matched {
			return nil, fmt.Errorf("%w: %s", ErrUnknownOperator, name)
		}
	}

	return ops, nil
}

func (mg *mutagen) Catalog(ctx context.Context, root m.Path, threads int, operators ...string) ([]m.MutantSpec, error) {
	ops, err := resolveOperators(operators)
	if err != nil {
		return nil, err
	}

	files, err := mg.sourceFiles(ctx, root)
	if err != nil {
		slog.Error("Failed to list source files", "root", root, "error", err)
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}

	if threads <= 0 {
		threads = 1
	}

	perFile := make([][]m.MutantSpec, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)

	for i, file := range files {
		g.Go(func() error {
			specs, err := mg.generate(gctx, root, file, ops)
			if err != nil {
				return err
			}

			perFile[i] = specs

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var specs []m.MutantSpec
	for _, fileSpecs := range perFile {
		specs = append(specs, fileSpecs...)
	}

	slog.Info("Generated mutant catalog", "root", root, "files", len(files), "mutants", len(specs))

	return specs, nil
}

// sourceFiles returns the module-relative paths of the mutable files below
// root: non-test Go files outside hidden, vendor and testdata directories and
// outside nested modules.
func (mg *mutagen) sourceFiles(ctx context.Context, root m.Path) ([]string, error) {
	var files []string

	err := mg.Walk(ctx, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := mg.RelPath(ctx, root, m.Path(path))
		if err != nil {
			return err
		}

		if info.IsDir() {
			if rel == "." {
				return nil
			}

			name := info.Name()
			if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "vendor" || name == "testdata" {
				return filepath.SkipDir
			}

			if _, err := mg.FileInfo(ctx, mg.JoinPath(ctx, path, "go.mod")); err == nil {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") {
			files = append(files, filepath.ToSlash(string(rel)))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)

	return files, nil
}

func (mg *mutagen) Generate(ctx context.Context, root m.Path, target string, operators ...string) ([]m.MutantSpec, error) {
	ops, err := resolveOperators(operators)
	if err != nil {
		return nil, err
	}

	return mg.generate(ctx, root, target, ops)
}

func (mg *mutagen) generate(ctx context.Context, root m.Path, target string, ops []mutagens.Operator) ([]m.MutantSpec, error) {
	content, err := mg.readTarget(ctx, root, target)
	if err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	file, err := mg.Parse(fset, target, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", target, err)
	}

	var specs []m.MutantSpec

	for _, op := range ops {
		for occurrence, site := range op.Sites(fset, file, content) {
			specs = append(specs, m.MutantSpec{
				TargetPath:   target,
				OperatorName: op.Name(),
				Occurrence:   occurrence,
				LineStart:    site.LineStart,
				LineEnd:      site.LineEnd,
			})
		}
	}

	sort.SliceStable(specs, func(i, j int) bool {
		return specs[i].LineStart < specs[j].LineStart
	})

	return specs, nil
}

func (mg *mutagen) readTarget(ctx context.Context, root m.Path, target string) ([]byte, error) {
	path := mg.JoinPath(ctx, string(root), filepath.FromSlash(target))

	content, err := mg.ReadFile(ctx, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, target)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}

	return content, nil
}

func (mg *mutagen) Apply(ctx context.Context, root m.Path, spec m.MutantSpec) (Mutant, error) {
	op, ok := mutagens.Lookup(spec.OperatorName)
	if !ok {
		return Mutant{}, fmt.Errorf("%w: %s", ErrUnknownOperator, spec.OperatorName)
	}

	content, err := mg.readTarget(ctx, root, spec.TargetPath)
	if err != nil {
		return Mutant{}, err
	}

	fset := token.NewFileSet()

	file, err := mg.Parse(fset, spec.TargetPath, content)
	if err != nil {
		return Mutant{}, fmt.Errorf("failed to parse %s: %w", spec.TargetPath, err)
	}

	sites := op.Sites(fset, file, content)
	if spec.Occurrence < 0 || spec.Occurrence >= len(sites) {
		return Mutant{}, fmt.Errorf("%w: %s has %d sites for %s", ErrTargetNotFound, spec.TargetPath, len(sites), spec.ID())
	}

	return Mutant{
		Spec:     spec,
		Original: content,
		Mutated:  mutagens.Apply(content, sites[spec.Occurrence]),
	}, nil
}
