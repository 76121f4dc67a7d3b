package model

// Action is the decoded intent of a model response. The variants are
// Experiment, Test and Code; a nil Action means nothing could be decoded.
type Action interface {
	isAction()
}

// ExperimentKind distinguishes experiments from observations.
type ExperimentKind string

const (
	// KindExperiment is a hypothesis-driven experiment.
	KindExperiment ExperimentKind = "experiment"
	// KindObservation is an exploratory run without a hypothesis.
	KindObservation ExperimentKind = "observation"
)

// Experiment is a non-committal snippet run against both program variants.
type Experiment struct {
	Kind           ExperimentKind `json:"kind"`
	Code           string         `json:"code"`
	DebuggerScript string         `json:"debugger_script,omitempty"`
}

// Test is a candidate killing test.
type Test struct {
	Code string `json:"code"`
}

// Code is a code block found outside any labeled section. The session decides
// whether it is an experiment or a test.
type Code struct {
	Code           string `json:"code"`
	DebuggerScript string `json:"debugger_script,omitempty"`
}

func (Experiment) isAction() {}
func (Test) isAction()       {}
func (Code) isAction()       {}

// EquivalenceClaim is the model's assertion that the mutant cannot be killed.
type EquivalenceClaim struct {
	Text string `json:"text"`
}

// ParseResult is what the response parser makes of one text. Claim is set
// whenever an equivalence headline was seen, independently of Action.
type ParseResult struct {
	Action Action
	Claim  *EquivalenceClaim
}
