package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/domain/response"
	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

// Session drives one conversation about one mutant. The current state is the
// tag of the last message; Step performs exactly one transition.
type Session interface {
	ID() string
	State() m.State
	// Step runs the handler of the current state. It returns
	// ErrSessionFinished in a terminal state and *InvalidStateError when the
	// conversation lacks an action its state requires.
	Step(ctx context.Context) error
	// Iterate steps until a terminal state and returns the result.
	Iterate(ctx context.Context) (m.SessionResult, error)
	Result() m.SessionResult
}

// SessionFactory creates a fresh session for a problem.
type SessionFactory func(problem Problem) Session

// SessionOption customizes a session.
type SessionOption func(*session)

// WithSessionID sets the session ID instead of a random UUID.
func WithSessionID(id string) SessionOption {
	return func(s *session) {
		s.id = id
	}
}

// WithConversation resumes a session from an existing conversation.
func WithConversation(conversation *m.Conversation) SessionOption {
	return func(s *session) {
		s.conversation = conversation
	}
}

// WithStepHook registers a function called after every step, e.g. to persist
// the conversation.
func WithStepHook(hook func(ctx context.Context, s Session)) SessionOption {
	return func(s *session) {
		s.hooks = append(s.hooks, hook)
	}
}

// WithClock replaces time.Now for result timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *session) {
		s.now = now
	}
}

type session struct {
	id           string
	problem      Problem
	endpoint     adapter.Endpoint
	prompts      *PromptCollection
	settings     m.SessionSettings
	parser       response.Parser
	conversation *m.Conversation
	experiments  []m.ExperimentRecord
	tests        []m.TestRecord
	claim        *m.EquivalenceClaim
	abortReason  string
	killed       bool
	hooks        []func(context.Context, Session)
	now          func() time.Time
}

// NewSession creates a session for problem.
func NewSession(
	problem Problem,
	endpoint adapter.Endpoint,
	prompts *PromptCollection,
	settings m.SessionSettings,
	opts ...SessionOption,
) Session {
	s := &session{
		id:           uuid.NewString(),
		problem:      problem,
		endpoint:     endpoint,
		prompts:      prompts,
		settings:     settings,
		parser:       response.NewParser(problem.AllowedLanguages(), problem.AllowedDebuggerLanguages()),
		conversation: m.NewConversation(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *session) ID() string {
	return s.id
}

func (s *session) State() m.State {
	return s.conversation.State()
}

func (s *session) Step(ctx context.Context) error {
	if err := s.step(ctx); err != nil {
		return err
	}

	for _, hook := range s.hooks {
		hook(ctx, s)
	}

	return nil
}

func (s *session) step(ctx context.Context) error {
	switch state := s.State(); state {
	case m.StateEmpty:
		return s.initConversation()
	case m.StateInitial,
		m.StateExperimentDoesntCompile,
		m.StateExperimentResultsGiven,
		m.StateTestInstructionsGiven,
		m.StateTestDoesntCompile,
		m.StateTestDoesntDetectMutant,
		m.StateEquivalenceMessageGiven,
		m.StateIncompleteResponseInstructionsGiven:
		return s.promptForAction(ctx)
	case m.StateExperimentStated:
		return s.runExperiment(ctx)
	case m.StateTestStated:
		return s.runTest(ctx)
	case m.StateClaimedEquivalent:
		return s.writeEquivalenceMessage()
	case m.StateIncompleteResponse:
		return s.handleIncompleteResponse()
	case m.StateDone, m.StateAborted, m.StateInvalid:
		return ErrSessionFinished
	default:
		return &InvalidStateError{State: state, Reason: "no handler"}
	}
}

func (s *session) Iterate(ctx context.Context) (result m.SessionResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "session",
		attribute.String("session.id", s.id),
		attribute.String("mutant", s.problem.Name()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	for !s.State().Terminal() {
		if err := s.Step(ctx); err != nil {
			slog.Error("Session failed", "session", s.id, "mutant", s.problem.Name(), "state", s.State(), "error", err)
			return s.Result(), err
		}
	}

	result = s.Result()

	telemetry.ObserveSession(string(result.FinalState), result.AbortReason)
	slog.Info("Session finished",
		"session", s.id,
		"mutant", s.problem.Name(),
		"state", result.FinalState,
		"killed", result.MutantKilled,
		"experiments", len(result.Experiments),
		"tests", len(result.Tests),
		"reason", result.AbortReason,
	)

	return result, nil
}

func (s *session) Result() m.SessionResult {
	return m.SessionResult{
		ID:           s.id,
		Problem:      s.problem.Description(),
		Experiments:  append([]m.ExperimentRecord(nil), s.experiments...),
		Tests:        append([]m.TestRecord(nil), s.tests...),
		Conversation: s.conversation.Messages(),
		MutantKilled: s.killed,
		Equivalence:  s.claim,
		FinalState:   s.State(),
		AbortReason:  s.abortReason,
		Settings:     s.settings,
		Endpoint:     s.endpoint.Info(),
		Timestamp:    s.now(),
	}
}

func (s *session) add(msg m.Message, err error) error {
	if err != nil {
		return err
	}

	s.conversation.Append(msg)

	return nil
}

func (s *session) initConversation() error {
	system, ok, err := s.prompts.System()
	if err != nil {
		return err
	}

	if ok {
		s.conversation.Append(system)
	}

	if s.settings.IsBaseline {
		err = s.add(s.prompts.Baseline())
	} else {
		err = s.add(s.prompts.Debug(s.settings.IncludeExample))
	}

	if err != nil {
		return err
	}

	return s.add(s.prompts.Problem(s.problem.Description()))
}

func (s *session) testInstructionsGiven() bool {
	return s.settings.IsBaseline || s.conversation.Count(m.StateTestInstructionsGiven) > 0
}

// incompletePrefix concatenates the incomplete responses that directly
// precede message end, skipping the continuation prompts between them.
func (s *session) incompletePrefix(end int) string {
	var parts []string

loop:
	for i := end - 1; i >= 0; i-- {
		msg := s.conversation.At(i)

		switch msg.Tag {
		case m.StateIncompleteResponseInstructionsGiven:
			continue
		case m.StateIncompleteResponse:
			parts = append(parts, msg.Content)
		default:
			break loop
		}
	}

	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}

	return b.String()
}

// lastResponse returns the last message together with the incomplete
// responses it continues.
func (s *session) lastResponse() string {
	last := s.conversation.Len() - 1
	if last < 0 {
		return ""
	}

	return s.incompletePrefix(last) + s.conversation.At(last).Content
}

func (s *session) parse(text string) m.ParseResult {
	if !s.settings.IsBaseline {
		return s.parser.Parse(text)
	}

	result := s.parser.Parse(text)
	if code, ok := s.parser.LastCode(text); ok {
		result.Action = m.Test{Code: code}
	} else {
		result.Action = nil
	}

	return result
}

func (s *session) promptForAction(ctx context.Context) error {
	stop := s.prompts.DebugStopWords
	if s.testInstructionsGiven() {
		stop = s.prompts.TestStopWords
	}

	reply, err := s.endpoint.Complete(ctx, s.conversation.Messages(), stop)
	if err != nil {
		return fmt.Errorf("failed to complete conversation: %w", err)
	}

	msg := m.Message{
		Role:    m.RoleAssistant,
		Content: response.RemoveStopWordResidue(reply.Content),
		Usage:   reply.Usage,
	}

	parsed := s.parse(s.incompletePrefix(s.conversation.Len()) + msg.Content)
	if parsed.Claim != nil {
		s.claim = parsed.Claim
	}

	switch action := parsed.Action.(type) {
	case m.Test:
		msg.Tag = m.StateTestStated
	case m.Experiment:
		msg.Tag = m.StateExperimentStated
	case m.Code:
		if s.testInstructionsGiven() {
			msg.Tag = m.StateTestStated
		} else {
			msg.Tag = m.StateExperimentStated
		}
	case nil:
		if parsed.Claim != nil {
			msg.Tag = m.StateClaimedEquivalent
		} else {
			msg.Tag = m.StateIncompleteResponse
		}
	default:
		return &InvalidStateError{State: s.State(), Reason: fmt.Sprintf("unexpected action %T", action)}
	}

	s.conversation.Append(msg)

	return nil
}

func (s *session) abort(reason string) error {
	s.abortReason = reason

	return s.add(s.prompts.ConversationAborted(reason))
}

func (s *session) turns() int {
	return len(s.experiments) + len(s.tests)
}

func (s *session) runExperiment(ctx context.Context) error {
	var experiment m.Experiment

	switch action := s.parse(s.lastResponse()).Action.(type) {
	case m.Experiment:
		experiment = action
	case m.Code:
		experiment = m.Experiment{Kind: m.KindExperiment, Code: action.Code, DebuggerScript: action.DebuggerScript}
	default:
		return &InvalidStateError{State: m.StateExperimentStated, Reason: "response holds no experiment"}
	}

	if len(s.experiments) >= s.settings.MaxNumExperiments {
		return s.abort(m.AbortMaxExperiments)
	}

	validation, err := s.problem.ValidateCode(ctx, experiment.Code, m.VariantBoth)
	if err != nil {
		return fmt.Errorf("failed to validate experiment: %w", err)
	}

	record := m.ExperimentRecord{Action: experiment, Validation: validation}

	if !validation.Valid {
		s.experiments = append(s.experiments, record)

		if err := s.add(s.prompts.ExperimentDoesntCompile(validation)); err != nil {
			return err
		}
	} else {
		result, err := s.problem.RunExperiment(ctx, experiment.Code, experiment.DebuggerScript)
		if err != nil {
			return fmt.Errorf("failed to run experiment: %w", err)
		}

		record.Result = &result
		// In a both-variant run the experiment fails exactly when its
		// assertions tell the variants apart.
		record.KillsMutant = !result.Test.TimedOut && result.Test.ExitCode != 0
		s.experiments = append(s.experiments, record)

		if err := s.add(s.prompts.ExperimentResults(result)); err != nil {
			return err
		}
	}

	turns := s.turns()

	switch {
	case turns >= s.settings.MaxNumTurns:
		return s.abort(m.AbortMaxTurns)
	case len(s.experiments) == s.settings.MaxNumExperiments:
		return s.add(s.prompts.TestInstructions(true))
	case turns == s.settings.TestInstructionsAfterTurn:
		return s.add(s.prompts.TestInstructions(false))
	}

	return nil
}

func (s *session) runTest(ctx context.Context) error {
	var test m.Test

	switch action := s.parse(s.lastResponse()).Action.(type) {
	case m.Test:
		test = action
	case m.Code:
		test = m.Test{Code: action.Code}
	default:
		return &InvalidStateError{State: m.StateTestStated, Reason: "response holds no test"}
	}

	validation, err := s.problem.ValidateCode(ctx, test.Code, m.VariantCorrect)
	if err != nil {
		return fmt.Errorf("failed to validate test: %w", err)
	}

	record := m.TestRecord{Action: test, Validation: validation}

	if !validation.Valid {
		s.tests = append(s.tests, record)

		if err := s.add(s.prompts.TestDoesntCompile(validation)); err != nil {
			return err
		}

		if s.turns() >= s.settings.MaxNumTurns {
			return s.abort(m.AbortMaxTurns)
		}

		return nil
	}

	result, err := s.problem.RunTest(ctx, test.Code, true)
	if err != nil {
		return fmt.Errorf("failed to run test: %w", err)
	}

	record.Result = &result
	record.KillsMutant = result.KillsMutant()
	s.tests = append(s.tests, record)

	if record.KillsMutant {
		s.killed = true

		return s.add(s.prompts.TestKillsMutant(result))
	}

	if err := s.add(s.prompts.TestDoesntDetectMutant(result)); err != nil {
		return err
	}

	switch {
	case s.conversation.Count(m.StateTestDoesntDetectMutant) > s.settings.MaxRetriesForInvalidTest:
		return s.abort(m.AbortMaxInvalidTests)
	case s.turns() >= s.settings.MaxNumTurns:
		return s.abort(m.AbortMaxTurns)
	}

	return nil
}

func (s *session) writeEquivalenceMessage() error {
	// Claims count against the turn budget so a model that only repeats its
	// claim still terminates.
	if s.turns()+s.conversation.Count(m.StateClaimedEquivalent) > s.settings.MaxNumTurns {
		return s.abort(m.AbortMaxTurns)
	}

	return s.add(s.prompts.EquivalenceMessage())
}

func (s *session) handleIncompleteResponse() error {
	if s.conversation.Count(m.StateIncompleteResponse) > s.settings.MaxNumIncompleteResponses {
		return s.abort(m.AbortIncompleteResponse)
	}

	return s.add(s.prompts.IncompleteResponse())
}

// IsFatal reports whether err stops a campaign rather than a single session.
func IsFatal(err error) bool {
	var invalid *InvalidStateError

	return errors.As(err, &invalid) || errors.Is(err, ErrMissingCoverage) || errors.Is(err, ErrTargetNotFound)
}
