package domain

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	m "guut.dev/pkg/guut/internal/model"
)

//go:embed templates/*.md
var templateFS embed.FS

// Default stop sequences. Generation stops before the model starts inventing
// the results guut is about to provide.
var (
	DefaultDebugStopWords = []string{"## Experiment Result", "## Experiment Output", "## Test Result"}
	DefaultTestStopWords  = []string{"## Test Result", "## Experiment Result"}
)

// PromptCollection renders every message guut writes into a conversation.
type PromptCollection struct {
	templates      *template.Template
	system         bool
	DebugStopWords []string
	TestStopWords  []string
}

// PromptOption customizes a PromptCollection.
type PromptOption func(*PromptCollection)

// WithoutSystemPrompt drops the system message, for endpoints that reject it.
func WithoutSystemPrompt() PromptOption {
	return func(p *PromptCollection) {
		p.system = false
	}
}

// WithStopWords overrides the stop sequences.
func WithStopWords(debug, test []string) PromptOption {
	return func(p *PromptCollection) {
		p.DebugStopWords = debug
		p.TestStopWords = test
	}
}

// NewPromptCollection parses the embedded templates.
func NewPromptCollection(opts ...PromptOption) (*PromptCollection, error) {
	tmpl, err := template.New("prompts").Funcs(template.FuncMap{
		"lineNumbers": AddLineNumbers,
		"limit":       func(s string) string { return LimitText(s, OutputLimit) },
		"rtrim":       func(s string) string { return strings.TrimRight(s, " \t\n") },
		"execution":   FormatExecution,
	}).ParseFS(templateFS, "templates/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	p := &PromptCollection{
		templates:      tmpl,
		system:         true,
		DebugStopWords: DefaultDebugStopWords,
		TestStopWords:  DefaultTestStopWords,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// FormatExecution renders a process result as shown to the model.
func FormatExecution(r m.ExecutionResult) string {
	var b strings.Builder

	b.WriteString("```\n")
	b.WriteString(strings.TrimRight(LimitText(r.Output, OutputLimit), "\n"))
	b.WriteString("\n```\n")

	if r.TimedOut {
		b.WriteString("The process timed out and was killed.")
	} else {
		fmt.Fprintf(&b, "Exit code: %d", r.ExitCode)
	}

	return b.String()
}

func (p *PromptCollection) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.templates.ExecuteTemplate(&buf, name+".md", data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	return strings.TrimSpace(buf.String()) + "\n", nil
}

func (p *PromptCollection) message(role m.Role, tag m.State, name string, data any) (m.Message, error) {
	content, err := p.render(name, data)
	if err != nil {
		return m.Message{}, err
	}

	return m.Message{Role: role, Content: content, Tag: tag}, nil
}

// System returns the system message, if the collection has one.
func (p *PromptCollection) System() (m.Message, bool, error) {
	if !p.system {
		return m.Message{}, false, nil
	}

	msg, err := p.message(m.RoleSystem, "", "system_prompt", nil)

	return msg, err == nil, err
}

// Debug returns the instructions of a debugging session.
func (p *PromptCollection) Debug(includeExample bool) (m.Message, error) {
	return p.message(m.RoleUser, "", "debug_prompt", struct{ IncludeExample bool }{includeExample})
}

// Baseline returns the instructions of a test-only session.
func (p *PromptCollection) Baseline() (m.Message, error) {
	return p.message(m.RoleUser, "", "baseline_prompt", nil)
}

// Problem describes the mutant. The message is tagged initial.
func (p *PromptCollection) Problem(desc m.ProblemDescription) (m.Message, error) {
	return p.message(m.RoleUser, m.StateInitial, "problem_template", desc)
}

// ExperimentDoesntCompile reports a validation failure of an experiment.
func (p *PromptCollection) ExperimentDoesntCompile(v m.ValidationResult) (m.Message, error) {
	return p.message(m.RoleUser, m.StateExperimentDoesntCompile, "experiment_doesnt_compile", v)
}

// ExperimentResults reports the output of an experiment.
func (p *PromptCollection) ExperimentResults(r m.ExperimentResult) (m.Message, error) {
	return p.message(m.RoleUser, m.StateExperimentResultsGiven, "experiment_results", r)
}

// TestInstructions asks for the final test.
func (p *PromptCollection) TestInstructions(maxIterations bool) (m.Message, error) {
	return p.message(m.RoleUser, m.StateTestInstructionsGiven, "test_instructions", struct{ MaxIterations bool }{maxIterations})
}

// TestDoesntCompile reports a validation failure of a test.
func (p *PromptCollection) TestDoesntCompile(v m.ValidationResult) (m.Message, error) {
	return p.message(m.RoleUser, m.StateTestDoesntCompile, "test_doesnt_compile", v)
}

// TestDoesntDetectMutant reports a test that did not kill the mutant.
func (p *PromptCollection) TestDoesntDetectMutant(r m.TestResult) (m.Message, error) {
	return p.message(m.RoleUser, m.StateTestDoesntDetectMutant, "test_doesnt_detect_mutant", r)
}

// TestKillsMutant reports a killing test. The message is tagged done.
func (p *PromptCollection) TestKillsMutant(r m.TestResult) (m.Message, error) {
	return p.message(m.RoleUser, m.StateDone, "test_kills_mutant", r)
}

// EquivalenceMessage answers an equivalence claim.
func (p *PromptCollection) EquivalenceMessage() (m.Message, error) {
	return p.message(m.RoleUser, m.StateEquivalenceMessageGiven, "equivalence_message", nil)
}

// IncompleteResponse asks the model to continue an unfinished response.
func (p *PromptCollection) IncompleteResponse() (m.Message, error) {
	return p.message(m.RoleUser, m.StateIncompleteResponseInstructionsGiven, "incomplete_response", nil)
}

// ConversationAborted ends the conversation. The message is tagged aborted.
func (p *PromptCollection) ConversationAborted(reason string) (m.Message, error) {
	return p.message(m.RoleUser, m.StateAborted, "conversation_aborted", reason)
}
