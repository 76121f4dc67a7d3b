package model

import "time"

// Variant selects which program variant a sandbox run uses.
type Variant string

const (
	// VariantCorrect runs against the unmodified program.
	VariantCorrect Variant = "correct"
	// VariantMutant runs against the mutated program.
	VariantMutant Variant = "mutant"
	// VariantBoth runs against the correct program with the mutant importable
	// from a nested package.
	VariantBoth Variant = "both"
)

// ExecutionResult is the outcome of one sandboxed process.
type ExecutionResult struct {
	Command  []string      `json:"command"`
	Dir      string        `json:"dir"`
	Input    string        `json:"input,omitempty"`
	Output   string        `json:"output"`
	ExitCode int           `json:"exit_code"`
	TimedOut bool          `json:"timed_out"`
	Duration time.Duration `json:"duration"`
	Coverage *Coverage     `json:"coverage,omitempty"`
}

// Succeeded reports whether the process finished in time with status 0.
func (r ExecutionResult) Succeeded() bool {
	return !r.TimedOut && r.ExitCode == 0
}

// ExperimentResult holds the experiment run and the optional debugger run.
type ExperimentResult struct {
	Test  ExecutionResult  `json:"test"`
	Debug *ExecutionResult `json:"debug,omitempty"`
}

// TestResult holds the runs of one test against both variants.
type TestResult struct {
	Correct ExecutionResult `json:"correct"`
	Mutant  ExecutionResult `json:"mutant"`
}

// KillsMutant applies the kill rule: the correct run succeeds and the mutant
// run fails or times out.
func (r TestResult) KillsMutant() bool {
	return r.Correct.Succeeded() && !r.Mutant.Succeeded()
}

// ValidationResult is the outcome of the compile-only check of model code.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}
