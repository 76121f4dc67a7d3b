package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"time"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/domain/response"
	m "guut.dev/pkg/guut/internal/model"
)

// Problem is one mutant of one target file, together with the means to run
// model code against it.
type Problem interface {
	Name() string
	Spec() m.MutantSpec
	Description() m.ProblemDescription
	AllowedLanguages() []string
	AllowedDebuggerLanguages() []string
	// ValidateCode compiles code against variant without running it.
	ValidateCode(ctx context.Context, code string, variant m.Variant) (m.ValidationResult, error)
	// RunExperiment runs code with both variants importable, and under the
	// debugger when a script is given.
	RunExperiment(ctx context.Context, code, debuggerScript string) (m.ExperimentResult, error)
	// RunTest runs code against the correct and the mutant variant. Coverage
	// is collected on the correct run only.
	RunTest(ctx context.Context, code string, collectCoverage bool) (m.TestResult, error)
}

// ProblemFactory builds the problem of a catalog entry.
type ProblemFactory interface {
	NewProblem(ctx context.Context, spec m.MutantSpec) (Problem, error)
}

// ProblemConfig holds what every problem of a module shares.
type ProblemConfig struct {
	Root            m.Path
	ModulePath      string
	Timeout         time.Duration
	DebuggerCommand string
}

type problem struct {
	desc    m.ProblemDescription
	sandbox Sandbox
	cache   adapter.ExecutionCache
	// fingerprint identifies the mutant's source for cache keys.
	fingerprint string
}

// NewProblem wraps a sandbox. A nil cache disables caching.
func NewProblem(desc m.ProblemDescription, mutant Mutant, sandbox Sandbox, cache adapter.ExecutionCache) Problem {
	if cache == nil {
		cache = adapter.NopExecutionCache{}
	}

	h := sha256.New()
	h.Write(mutant.Original)
	h.Write([]byte{0})
	h.Write(mutant.Mutated)

	return &problem{
		desc:        desc,
		sandbox:     sandbox,
		cache:       cache,
		fingerprint: hex.EncodeToString(h.Sum(nil)),
	}
}

func (p *problem) Name() string {
	return p.desc.Name
}

func (p *problem) Spec() m.MutantSpec {
	return p.desc.Mutant
}

func (p *problem) Description() m.ProblemDescription {
	return p.desc
}

func (p *problem) AllowedLanguages() []string {
	return response.DefaultTestLanguages
}

func (p *problem) AllowedDebuggerLanguages() []string {
	return response.DefaultDebuggerLanguages
}

func (p *problem) ValidateCode(ctx context.Context, code string, variant m.Variant) (m.ValidationResult, error) {
	return p.sandbox.Validate(ctx, RunRequest{Code: code, Variant: variant})
}

func (p *problem) RunExperiment(ctx context.Context, code, debuggerScript string) (m.ExperimentResult, error) {
	req := RunRequest{Code: code, Variant: m.VariantBoth}

	test, err := p.sandbox.Run(ctx, req)
	if err != nil {
		return m.ExperimentResult{}, err
	}

	result := m.ExperimentResult{Test: test}

	if debuggerScript != "" {
		debug, err := p.sandbox.RunWithDebugger(ctx, req, debuggerScript)
		if err != nil {
			return m.ExperimentResult{}, err
		}

		result.Debug = &debug
	}

	return result, nil
}

func (p *problem) RunTest(ctx context.Context, code string, collectCoverage bool) (m.TestResult, error) {
	key := adapter.CacheKey(
		"test",
		p.fingerprint,
		string(p.desc.Mutant.ID()),
		code,
		strconv.FormatBool(collectCoverage),
		p.sandbox.Timeout().String(),
	)

	var cached m.TestResult

	found, err := p.cache.Get(ctx, key, &cached)
	if err != nil {
		slog.Warn("Failed to read execution cache", "mutant", p.desc.Mutant.ID(), "error", err)
	} else if found {
		slog.Debug("Execution cache hit", "mutant", p.desc.Mutant.ID())
		return cached, nil
	}

	correct, err := p.sandbox.Run(ctx, RunRequest{Code: code, Variant: m.VariantCorrect, CollectCoverage: collectCoverage})
	if err != nil {
		return m.TestResult{}, err
	}

	mutant, err := p.sandbox.Run(ctx, RunRequest{Code: code, Variant: m.VariantMutant})
	if err != nil {
		return m.TestResult{}, err
	}

	result := m.TestResult{Correct: correct, Mutant: mutant}

	if err := p.cache.Put(ctx, key, result); err != nil {
		slog.Warn("Failed to write execution cache", "mutant", p.desc.Mutant.ID(), "error", err)
	}

	return result, nil
}

type problemFactory struct {
	cfg     ProblemConfig
	mutagen Mutagen
	fs      adapter.SourceFSAdapter
	goFile  adapter.GoFileAdapter
	runner  adapter.TestRunnerAdapter
	cache   adapter.ExecutionCache
}

// NewProblemFactory creates problems for the module described by cfg.
func NewProblemFactory(
	cfg ProblemConfig,
	mutagen Mutagen,
	fs adapter.SourceFSAdapter,
	goFile adapter.GoFileAdapter,
	runner adapter.TestRunnerAdapter,
	cache adapter.ExecutionCache,
) ProblemFactory {
	return &problemFactory{cfg: cfg, mutagen: mutagen, fs: fs, goFile: goFile, runner: runner, cache: cache}
}

func (f *problemFactory) NewProblem(ctx context.Context, spec m.MutantSpec) (Problem, error) {
	mutant, err := f.mutagen.Apply(ctx, f.cfg.Root, spec)
	if err != nil {
		return nil, err
	}

	sb, err := NewSandbox(SandboxConfig{
		Root:            f.cfg.Root,
		ModulePath:      f.cfg.ModulePath,
		Mutant:          mutant,
		Timeout:         f.cfg.Timeout,
		DebuggerCommand: f.cfg.DebuggerCommand,
	}, f.fs, f.goFile, f.runner)
	if err != nil {
		return nil, err
	}

	desc, err := Describe(f.cfg.ModulePath, mutant, f.goFile)
	if err != nil {
		return nil, err
	}

	return NewProblem(desc, mutant, sb, f.cache), nil
}

// Describe builds the problem description of a mutant.
func Describe(modulePath string, mutant Mutant, goFile adapter.GoFileAdapter) (m.ProblemDescription, error) {
	pkgName, err := goFile.PackageName(mutant.Original)
	if err != nil {
		return m.ProblemDescription{}, fmt.Errorf("failed to read package of %s: %w", mutant.Spec.TargetPath, err)
	}

	diff, err := UnifiedDiff(mutant.Spec.TargetPath, mutant.Original, mutant.Mutated)
	if err != nil {
		return m.ProblemDescription{}, fmt.Errorf("failed to diff mutant: %w", err)
	}

	importPath := modulePath
	if dir := path.Dir(mutant.Spec.TargetPath); dir != "." {
		importPath = modulePath + "/" + dir
	}

	return m.ProblemDescription{
		Name:             string(mutant.Spec.ID()),
		Mutant:           mutant.Spec,
		TargetContent:    string(mutant.Original),
		MutantDiff:       diff,
		PackageName:      pkgName,
		ImportPath:       importPath,
		MutantImportPath: importPath + "/" + MutantPackage,
	}, nil
}
