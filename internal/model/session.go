package model

import "time"

// SessionSettings bounds a debugging session.
type SessionSettings struct {
	Preset                    string `json:"preset" yaml:"preset"`
	MaxNumExperiments         int    `json:"max_num_experiments" yaml:"max_num_experiments"`
	MaxRetriesForInvalidTest  int    `json:"max_retries_for_invalid_test" yaml:"max_retries_for_invalid_test"`
	MaxNumIncompleteResponses int    `json:"max_num_incomplete_responses" yaml:"max_num_incomplete_responses"`
	MaxNumTurns               int    `json:"max_num_turns" yaml:"max_num_turns"`
	TestInstructionsAfterTurn int    `json:"test_instructions_after_turn" yaml:"test_instructions_after_turn"`
	IncludeExample            bool   `json:"include_example" yaml:"include_example"`
	IsBaseline                bool   `json:"is_baseline" yaml:"is_baseline"`
}

// Preset names.
const (
	PresetDebuggingOneShot          = "debugging_one_shot"
	PresetDebuggingZeroShot         = "debugging_zero_shot"
	PresetBaselineWithIterations    = "baseline_with_iterations"
	PresetBaselineWithoutIterations = "baseline_without_iterations"
)

// DefaultSessionSettings returns the settings of the debugging_one_shot preset.
func DefaultSessionSettings() SessionSettings {
	return SessionSettings{
		Preset:                    PresetDebuggingOneShot,
		MaxNumExperiments:         99,
		MaxRetriesForInvalidTest:  99,
		MaxNumIncompleteResponses: 2,
		MaxNumTurns:               10,
		TestInstructionsAfterTurn: 8,
		IncludeExample:            true,
	}
}

// PresetSettings returns the settings registered under name.
func PresetSettings(name string) (SessionSettings, bool) {
	settings := DefaultSessionSettings()

	switch name {
	case PresetDebuggingOneShot:
	case PresetDebuggingZeroShot:
		settings.IncludeExample = false
	case PresetBaselineWithIterations:
		settings.IsBaseline = true
		settings.IncludeExample = false
		settings.MaxRetriesForInvalidTest = 9
		settings.TestInstructionsAfterTurn = 99
	case PresetBaselineWithoutIterations:
		settings.IsBaseline = true
		settings.IncludeExample = false
		settings.MaxRetriesForInvalidTest = 0
		settings.TestInstructionsAfterTurn = 99
	default:
		return SessionSettings{}, false
	}

	settings.Preset = name

	return settings, true
}

// Abort reasons.
const (
	AbortIncompleteResponse = "incomplete_response"
	AbortMaxTurns           = "max_turns"
	AbortMaxExperiments     = "max_experiments"
	AbortMaxInvalidTests    = "max_invalid_tests"
)

// ExperimentRecord is one experiment attempt. Result is nil when the code
// did not compile.
type ExperimentRecord struct {
	Action      Experiment        `json:"action"`
	Validation  ValidationResult  `json:"validation"`
	Result      *ExperimentResult `json:"result,omitempty"`
	KillsMutant bool              `json:"kills_mutant"`
}

// TestRecord is one test attempt. Result is nil when the code did not compile.
type TestRecord struct {
	Action      Test             `json:"action"`
	Validation  ValidationResult `json:"validation"`
	Result      *TestResult      `json:"result,omitempty"`
	KillsMutant bool             `json:"kills_mutant"`
}

// EndpointInfo describes the model endpoint a session talked to.
type EndpointInfo struct {
	Name  string `json:"name"`
	Model string `json:"model,omitempty"`
}

// ProblemDescription is everything the model is told about a mutant.
type ProblemDescription struct {
	Name             string     `json:"name"`
	Mutant           MutantSpec `json:"mutant"`
	TargetContent    string     `json:"target_content"`
	MutantDiff       string     `json:"mutant_diff"`
	PackageName      string     `json:"package_name"`
	ImportPath       string     `json:"import_path"`
	MutantImportPath string     `json:"mutant_import_path"`
}

// SessionResult is produced once, when a session terminates.
type SessionResult struct {
	ID           string             `json:"id"`
	Problem      ProblemDescription `json:"problem"`
	Experiments  []ExperimentRecord `json:"experiments"`
	Tests        []TestRecord       `json:"tests"`
	Conversation []Message          `json:"conversation"`
	MutantKilled bool               `json:"mutant_killed"`
	Equivalence  *EquivalenceClaim  `json:"equivalence,omitempty"`
	FinalState   State              `json:"final_state"`
	AbortReason  string             `json:"abort_reason,omitempty"`
	Settings     SessionSettings    `json:"settings"`
	Endpoint     EndpointInfo       `json:"endpoint"`
	Timestamp    time.Time          `json:"timestamp"`
}

// KillingTest returns the first test that killed the mutant, if any.
func (r SessionResult) KillingTest() (TestRecord, bool) {
	for _, test := range r.Tests {
		if test.KillsMutant {
			return test, true
		}
	}

	return TestRecord{}, false
}
