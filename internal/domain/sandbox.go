package domain

import (
	"context"
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"guut.dev/pkg/guut/internal/adapter"
	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

// MutantPackage is the name of the nested package that holds the mutant copy
// of the target package in VariantBoth workspaces.
const MutantPackage = "mutant"

// RunRequest describes code to run in a sandbox.
type RunRequest struct {
	Code            string
	Variant         m.Variant
	CollectCoverage bool
}

// Sandbox runs model-written test code against one mutant. Every call works
// in a fresh copy of the module.
type Sandbox interface {
	Validate(ctx context.Context, req RunRequest) (m.ValidationResult, error)
	Run(ctx context.Context, req RunRequest) (m.ExecutionResult, error)
	RunWithDebugger(ctx context.Context, req RunRequest, script string) (m.ExecutionResult, error)
	// Timeout bounds one test run. Results depend on it.
	Timeout() time.Duration
}

// SandboxConfig configures a sandbox.
type SandboxConfig struct {
	// Root is the module root of the program under test.
	Root       m.Path
	ModulePath string
	Mutant     Mutant
	Timeout    time.Duration
	// DebuggerCommand is the Delve executable.
	DebuggerCommand string
}

type sandbox struct {
	cfg     SandboxConfig
	fs      adapter.SourceFSAdapter
	goFile  adapter.GoFileAdapter
	runner  adapter.TestRunnerAdapter
	pkgDir  string
	pkgName string
	counter atomic.Int64
}

// NewSandbox creates a sandbox for cfg.Mutant.
func NewSandbox(
	cfg SandboxConfig,
	fs adapter.SourceFSAdapter,
	goFile adapter.GoFileAdapter,
	runner adapter.TestRunnerAdapter,
) (Sandbox, error) {
	pkgName, err := goFile.PackageName(cfg.Mutant.Original)
	if err != nil {
		return nil, fmt.Errorf("failed to read package of %s: %w", cfg.Mutant.Spec.TargetPath, err)
	}

	return &sandbox{
		cfg:     cfg,
		fs:      fs,
		goFile:  goFile,
		runner:  runner,
		pkgDir:  path.Dir(cfg.Mutant.Spec.TargetPath),
		pkgName: pkgName,
	}, nil
}

type workspace struct {
	dir      m.Path
	pkg      string
	testFile m.Path
	tests    []string
}

// prepare materializes the requested variant and writes the normalized test
// code. A normalization failure is returned as invalid validation.
func (s *sandbox) prepare(ctx context.Context, req RunRequest) (*workspace, m.ValidationResult, error) {
	dir, err := s.fs.CreateTempDir(ctx, "guut-sandbox-*")
	if err != nil {
		slog.Error("Failed to create temp dir", "error", err)
		return nil, m.ValidationResult{}, fmt.Errorf("failed to create temp dir: %w", err)
	}

	ws := &workspace{dir: dir, pkg: "./" + s.pkgDir}
	if s.pkgDir == "." {
		ws.pkg = "."
	}

	if err := s.fs.CopyDir(ctx, s.cfg.Root, dir); err != nil {
		slog.Error("Failed to copy project to temp dir", "root", s.cfg.Root, "tmpDir", dir, "error", err)
		return ws, m.ValidationResult{}, fmt.Errorf("failed to copy project: %w", err)
	}

	switch req.Variant {
	case m.VariantMutant:
		err = s.writeTarget(ctx, dir, s.cfg.Mutant.Mutated)
	case m.VariantBoth:
		err = s.writeMutantPackage(ctx, dir)
	case m.VariantCorrect, "":
	default:
		err = fmt.Errorf("unknown variant %q", req.Variant)
	}

	if err != nil {
		return ws, m.ValidationResult{}, err
	}

	name := fmt.Sprintf("guut_%d_test.go", s.counter.Add(1))
	ws.testFile = s.fs.JoinPath(ctx, string(dir), filepath.FromSlash(s.pkgDir), name)

	code, err := s.goFile.NormalizeTestCode(name, s.pkgName, []byte(req.Code))
	if err != nil {
		return ws, m.ValidationResult{Error: ShortenPaths(err.Error(), string(dir))}, nil
	}

	file, err := s.goFile.Parse(token.NewFileSet(), name, code)
	if err != nil {
		return ws, m.ValidationResult{Error: err.Error()}, nil
	}

	ws.tests = s.goFile.TestFunctions(file)

	if err := s.fs.WriteFile(ctx, ws.testFile, code, 0o600); err != nil {
		return ws, m.ValidationResult{}, fmt.Errorf("failed to write test file: %w", err)
	}

	return ws, m.ValidationResult{Valid: true}, nil
}

func (s *sandbox) cleanup(ctx context.Context, ws *workspace) {
	if ws == nil {
		return
	}

	if err := s.fs.RemoveAll(ctx, ws.dir); err != nil {
		slog.Error("Failed to cleanup temp dir", "tmpDir", ws.dir, "error", err)
	}
}

func (s *sandbox) writeTarget(ctx context.Context, dir m.Path, content []byte) error {
	target := s.fs.JoinPath(ctx, string(dir), filepath.FromSlash(s.cfg.Mutant.Spec.TargetPath))

	if err := s.fs.WriteFile(ctx, target, content, 0o600); err != nil {
		slog.Error("Failed to write mutated file", "path", target, "error", err)
		return fmt.Errorf("failed to write mutated file: %w", err)
	}

	return nil
}

// writeMutantPackage copies the target package into <pkg>/mutant with the
// mutation applied and the package clause renamed.
func (s *sandbox) writeMutantPackage(ctx context.Context, dir m.Path) error {
	srcDir := s.fs.JoinPath(ctx, string(s.cfg.Root), filepath.FromSlash(s.pkgDir))
	dstDir := s.fs.JoinPath(ctx, string(dir), filepath.FromSlash(s.pkgDir), MutantPackage)

	if err := s.fs.MkdirAll(ctx, dstDir); err != nil {
		return fmt.Errorf("failed to create mutant package: %w", err)
	}

	files, err := s.packageFiles(ctx, srcDir)
	if err != nil {
		return err
	}

	targetName := path.Base(s.cfg.Mutant.Spec.TargetPath)

	for _, name := range files {
		var content []byte

		if name == targetName {
			content = s.cfg.Mutant.Mutated
		} else {
			content, err = s.fs.ReadFile(ctx, s.fs.JoinPath(ctx, string(srcDir), name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
		}

		if pkg, err := s.goFile.PackageName(content); err != nil || pkg != s.pkgName {
			continue
		}

		renamed, err := s.goFile.RenamePackage(name, content, MutantPackage)
		if err != nil {
			return fmt.Errorf("failed to rename package of %s: %w", name, err)
		}

		if err := s.fs.WriteFile(ctx, s.fs.JoinPath(ctx, string(dstDir), name), renamed, 0o600); err != nil {
			return fmt.Errorf("failed to write mutant copy of %s: %w", name, err)
		}
	}

	return nil
}

func (s *sandbox) packageFiles(ctx context.Context, dir m.Path) ([]string, error) {
	var files []string

	err := s.fs.Walk(ctx, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if p != string(dir) {
				return filepath.SkipDir
			}

			return nil
		}

		if strings.HasSuffix(p, ".go") && !strings.HasSuffix(p, "_test.go") {
			files = append(files, filepath.Base(p))
		}

		return nil
	})

	return files, err
}

func (s *sandbox) Validate(ctx context.Context, req RunRequest) (m.ValidationResult, error) {
	ws, validation, err := s.prepare(ctx, req)
	defer s.cleanup(ctx, ws)

	if err != nil || !validation.Valid {
		return validation, err
	}

	result, err := s.runner.CompileGoTest(ctx, adapter.GoTestRequest{
		Dir:     string(ws.dir),
		Package: ws.pkg,
		Timeout: s.compileTimeout(),
	})
	if err != nil {
		return m.ValidationResult{}, fmt.Errorf("failed to compile test: %w", err)
	}

	if !result.Succeeded() {
		return m.ValidationResult{Error: ShortenPaths(result.Output, string(ws.dir))}, nil
	}

	return m.ValidationResult{Valid: true}, nil
}

func (s *sandbox) Timeout() time.Duration {
	return s.cfg.Timeout
}

// compileTimeout leaves room for a cold build cache.
func (s *sandbox) compileTimeout() time.Duration {
	return max(s.cfg.Timeout*6, time.Minute)
}

func (s *sandbox) Run(ctx context.Context, req RunRequest) (result m.ExecutionResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "sandbox.run",
		attribute.String("mutant", string(s.cfg.Mutant.Spec.ID())),
		attribute.String("variant", string(req.Variant)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	ws, validation, err := s.prepare(ctx, req)
	defer s.cleanup(ctx, ws)

	if err != nil {
		return m.ExecutionResult{}, err
	}

	if !validation.Valid {
		return m.ExecutionResult{Output: validation.Error, ExitCode: 2}, nil
	}

	testReq := adapter.GoTestRequest{
		Dir:     string(ws.dir),
		Package: ws.pkg,
		Run:     ws.tests,
		Timeout: s.cfg.Timeout,
	}

	var profile m.Path
	if req.CollectCoverage {
		profile = s.fs.JoinPath(ctx, string(ws.dir), ".guut-cover.out")
		testReq.CoverProfile = string(profile)
		testReq.CoverPkg = "./..."
	}

	result, err = s.runner.RunGoTest(ctx, testReq)
	if err != nil {
		slog.Error("Failed to run test", "mutant", s.cfg.Mutant.Spec.ID(), "variant", req.Variant, "error", err)
		return m.ExecutionResult{}, fmt.Errorf("failed to run test: %w", err)
	}

	telemetry.ObserveSandboxRun(string(req.Variant), "test", result.Duration, result.TimedOut)

	if req.CollectCoverage && !result.TimedOut {
		coverage, err := s.goFile.ParseCoverProfile(string(profile), s.cfg.ModulePath)
		if err != nil {
			slog.Warn("Failed to read coverage", "mutant", s.cfg.Mutant.Spec.ID(), "error", err)
		} else {
			result.Coverage = coverage
		}
	}

	s.relativize(&result, ws)

	return result, nil
}

func (s *sandbox) RunWithDebugger(ctx context.Context, req RunRequest, script string) (result m.ExecutionResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "sandbox.debug",
		attribute.String("mutant", string(s.cfg.Mutant.Spec.ID())),
		attribute.String("variant", string(req.Variant)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	ws, validation, err := s.prepare(ctx, req)
	defer s.cleanup(ctx, ws)

	if err != nil {
		return m.ExecutionResult{}, err
	}

	if !validation.Valid {
		return m.ExecutionResult{Output: validation.Error, ExitCode: 2}, nil
	}

	result, err = s.runner.RunDebugger(ctx, adapter.DebuggerRequest{
		Dir:     string(ws.dir),
		Package: ws.pkg,
		Run:     ws.tests,
		Command: s.cfg.DebuggerCommand,
		Script:  script,
		Timeout: s.cfg.Timeout,
	})
	if err != nil {
		slog.Error("Failed to run debugger", "mutant", s.cfg.Mutant.Spec.ID(), "error", err)
		return m.ExecutionResult{}, fmt.Errorf("failed to run debugger: %w", err)
	}

	telemetry.ObserveSandboxRun(string(req.Variant), "debug", result.Duration, result.TimedOut)

	s.relativize(&result, ws)

	return result, nil
}

// relativize strips the temporary directory from everything the model sees.
func (s *sandbox) relativize(result *m.ExecutionResult, ws *workspace) {
	dir := string(ws.dir)

	result.Output = ShortenPaths(result.Output, dir)
	result.Dir = "."

	for i, arg := range result.Command {
		result.Command[i] = ShortenPaths(arg, dir)
	}
}
