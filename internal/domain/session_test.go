package domain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guut.dev/pkg/guut/internal/adapter"
	adaptermocks "guut.dev/pkg/guut/internal/adapter/mocks"
	"guut.dev/pkg/guut/internal/domain"
	domainmocks "guut.dev/pkg/guut/internal/domain/mocks"
	"guut.dev/pkg/guut/internal/domain/response"
	m "guut.dev/pkg/guut/internal/model"
)

var calcSpec = m.MutantSpec{
	TargetPath:   "calc.go",
	OperatorName: "arithmetic/add_sub",
	Occurrence:   0,
	LineStart:    6,
	LineEnd:      6,
}

func newMockProblem(t *testing.T) *domainmocks.MockProblem {
	t.Helper()

	p := domainmocks.NewMockProblem(t)
	p.EXPECT().AllowedLanguages().Return(response.DefaultTestLanguages).Maybe()
	p.EXPECT().AllowedDebuggerLanguages().Return(response.DefaultDebuggerLanguages).Maybe()
	p.EXPECT().Name().Return(string(calcSpec.ID())).Maybe()
	p.EXPECT().Spec().Return(calcSpec).Maybe()
	p.EXPECT().Description().Return(m.ProblemDescription{
		Name:             string(calcSpec.ID()),
		Mutant:           calcSpec,
		TargetContent:    "package calc\n\nfunc Add(a, b int) int {\n\treturn a + b\n}\n",
		MutantDiff:       "-\treturn a + b\n+\treturn a - b\n",
		PackageName:      "calc",
		ImportPath:       "example.com/calc",
		MutantImportPath: "example.com/calc/mutant",
	}).Maybe()

	return p
}

func newPrompts(t *testing.T) *domain.PromptCollection {
	t.Helper()

	prompts, err := domain.NewPromptCollection()
	require.NoError(t, err)

	return prompts
}

func testSettings() m.SessionSettings {
	settings := m.DefaultSessionSettings()
	settings.MaxNumTurns = 4
	settings.TestInstructionsAfterTurn = 3

	return settings
}

func passed() m.ExecutionResult {
	return m.ExecutionResult{ExitCode: 0, Output: "PASS"}
}

func failed() m.ExecutionResult {
	return m.ExecutionResult{ExitCode: 1, Output: "FAIL"}
}

func valid() m.ValidationResult {
	return m.ValidationResult{Valid: true}
}

// stepUntil steps s until it reaches want or a terminal state.
func stepUntil(t *testing.T, s domain.Session, want m.State) {
	t.Helper()

	for i := 0; i < 32 && s.State() != want; i++ {
		require.False(t, s.State().Terminal(), "session finished in %s before reaching %s", s.State(), want)
		require.NoError(t, s.Step(context.Background()))
	}

	require.Equal(t, want, s.State())
}

func TestSession_Init(t *testing.T) {
	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(), newPrompts(t), testSettings())

	assert.Equal(t, m.StateEmpty, s.State())
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateInitial, s.State())

	conversation := s.Result().Conversation
	require.Len(t, conversation, 3)
	assert.Equal(t, m.RoleSystem, conversation[0].Role)
	assert.Equal(t, m.RoleUser, conversation[1].Role)
	assert.Contains(t, conversation[2].Content, "example.com/calc/mutant")
}

func TestSession_TestReplyAdvancesToTestStated(t *testing.T) {
	endpoint := adapter.NewReplayEndpoint("## Test\n```go\ncode```")
	s := domain.NewSession(newMockProblem(t), endpoint, newPrompts(t), testSettings())

	require.NoError(t, s.Step(context.Background()))
	require.NoError(t, s.Step(context.Background()))

	assert.Equal(t, m.StateTestStated, s.State())
}

func TestSession_SplitResponseIsConcatenated(t *testing.T) {
	problem := newMockProblem(t)
	problem.EXPECT().ValidateCode(mock.Anything, "code", m.VariantCorrect).Return(valid(), nil).Once()
	problem.EXPECT().RunTest(mock.Anything, "code", true).Return(m.TestResult{Correct: passed(), Mutant: failed()}, nil).Once()

	endpoint := adapter.NewReplayEndpoint("## Test\n```go\nco", "de```")
	s := domain.NewSession(problem, endpoint, newPrompts(t), testSettings())

	stepUntil(t, s, m.StateInitial)
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateIncompleteResponse, s.State())
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateIncompleteResponseInstructionsGiven, s.State())
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateTestStated, s.State())

	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateDone, s.State())
}

func TestSession_SplitResponseParsesLikeWhole(t *testing.T) {
	whole := "## Experiment\n```go\nfunc TestX(t *testing.T) {\n\tt.Log(1)\n}\n```\n"

	tests := []struct {
		name  string
		parts []string
	}{
		{name: "whole", parts: []string{whole}},
		{name: "two parts", parts: []string{whole[:20], whole[20:]}},
		{name: "three parts", parts: []string{whole[:16], whole[16:40], whole[40:]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := newMockProblem(t)
			problem.EXPECT().
				ValidateCode(mock.Anything, "func TestX(t *testing.T) {\n\tt.Log(1)\n}", m.VariantBoth).
				Return(m.ValidationResult{Valid: false, Error: "boom"}, nil).
				Once()

			settings := testSettings()
			settings.MaxNumIncompleteResponses = 5

			s := domain.NewSession(problem, adapter.NewReplayEndpoint(tt.parts...), newPrompts(t), settings)

			stepUntil(t, s, m.StateExperimentStated)
			require.NoError(t, s.Step(context.Background()))
			assert.Equal(t, m.StateExperimentDoesntCompile, s.State())
		})
	}
}

func TestSession_KillEndsDone(t *testing.T) {
	problem := newMockProblem(t)
	problem.EXPECT().ValidateCode(mock.Anything, "code", m.VariantCorrect).Return(valid(), nil).Once()
	problem.EXPECT().RunTest(mock.Anything, "code", true).Return(m.TestResult{Correct: passed(), Mutant: failed()}, nil).Once()

	endpoint := adapter.NewReplayEndpoint("## Test\n```go\ncode\n```\n")
	s := domain.NewSession(problem, endpoint, newPrompts(t), testSettings())

	result, err := s.Iterate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, m.StateDone, result.FinalState)
	assert.True(t, result.MutantKilled)
	require.Len(t, result.Tests, 1)
	assert.True(t, result.Tests[0].KillsMutant)
	assert.Empty(t, result.AbortReason)
	assert.Equal(t, s.ID(), result.ID)

	killing, ok := result.KillingTest()
	require.True(t, ok)
	assert.Equal(t, "code", killing.Action.Code)
}

func TestSession_FailingCorrectRunNeverKills(t *testing.T) {
	problem := newMockProblem(t)
	problem.EXPECT().ValidateCode(mock.Anything, "code", m.VariantCorrect).Return(valid(), nil).Once()
	problem.EXPECT().RunTest(mock.Anything, "code", true).Return(m.TestResult{Correct: failed(), Mutant: failed()}, nil).Once()

	settings := testSettings()
	settings.MaxRetriesForInvalidTest = 0

	endpoint := adapter.NewReplayEndpoint("## Test\n```go\ncode\n```\n")
	s := domain.NewSession(problem, endpoint, newPrompts(t), settings)

	result, err := s.Iterate(context.Background())
	require.NoError(t, err)

	assert.False(t, result.MutantKilled)
	require.Len(t, result.Tests, 1)
	assert.False(t, result.Tests[0].KillsMutant)
	assert.Equal(t, m.StateAborted, result.FinalState)
	assert.Equal(t, m.AbortMaxInvalidTests, result.AbortReason)
}

func TestSession_TimedOutMutantRunKills(t *testing.T) {
	problem := newMockProblem(t)
	problem.EXPECT().ValidateCode(mock.Anything, "code", m.VariantCorrect).Return(valid(), nil).Once()
	problem.EXPECT().RunTest(mock.Anything, "code", true).Return(m.TestResult{
		Correct: passed(),
		Mutant:  m.ExecutionResult{ExitCode: -1, TimedOut: true},
	}, nil).Once()

	endpoint := adapter.NewReplayEndpoint("## Test\n```go\ncode\n```\n")
	s := domain.NewSession(problem, endpoint, newPrompts(t), testSettings())

	result, err := s.Iterate(context.Background())
	require.NoError(t, err)
	assert.True(t, result.MutantKilled)
}

func TestSession_KindlessCodeBlock(t *testing.T) {
	reply := "Let me try this.\n\n```go\ncode\n```\n"

	t.Run("before test instructions it is an experiment", func(t *testing.T) {
		s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings())

		stepUntil(t, s, m.StateInitial)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateExperimentStated, s.State())
	})

	t.Run("after test instructions it is a test", func(t *testing.T) {
		conversation := m.NewConversation(
			m.Message{Role: m.RoleUser, Content: "problem", Tag: m.StateInitial},
			m.Message{Role: m.RoleUser, Content: "write a test", Tag: m.StateTestInstructionsGiven},
		)

		s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings(),
			domain.WithConversation(conversation))

		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateTestStated, s.State())
	})
}

func TestSession_TestSectionWinsOverExperiment(t *testing.T) {
	reply := "## Test\n```go\ntest\n```\n\n## Experiment\n```go\nexperiment\n```\n"
	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings())

	stepUntil(t, s, m.StateInitial)
	require.NoError(t, s.Step(context.Background()))
	assert.Equal(t, m.StateTestStated, s.State())
}

func TestSession_Experiment(t *testing.T) {
	reply := "## Experiment\n```go\nexp\n```\n\n```dlv\nbreak calc.go:5\ncontinue\n```\n"

	t.Run("results then test instructions", func(t *testing.T) {
		problem := newMockProblem(t)
		problem.EXPECT().ValidateCode(mock.Anything, "exp", m.VariantBoth).Return(valid(), nil).Once()
		problem.EXPECT().RunExperiment(mock.Anything, "exp", "break calc.go:5\ncontinue").
			Return(m.ExperimentResult{Test: failed()}, nil).Once()

		settings := testSettings()
		settings.TestInstructionsAfterTurn = 1

		s := domain.NewSession(problem, adapter.NewReplayEndpoint(reply), newPrompts(t), settings)

		stepUntil(t, s, m.StateExperimentStated)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateTestInstructionsGiven, s.State())

		result := s.Result()
		require.Len(t, result.Experiments, 1)
		require.NotNil(t, result.Experiments[0].Result)
		assert.True(t, result.Experiments[0].KillsMutant)
		assert.Equal(t, m.KindExperiment, result.Experiments[0].Action.Kind)
	})

	t.Run("results without instructions", func(t *testing.T) {
		problem := newMockProblem(t)
		problem.EXPECT().ValidateCode(mock.Anything, "exp", m.VariantBoth).Return(valid(), nil).Once()
		problem.EXPECT().RunExperiment(mock.Anything, "exp", mock.Anything).
			Return(m.ExperimentResult{Test: passed()}, nil).Once()

		s := domain.NewSession(problem, adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings())

		stepUntil(t, s, m.StateExperimentStated)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateExperimentResultsGiven, s.State())
		assert.False(t, s.Result().Experiments[0].KillsMutant)
	})

	t.Run("turn budget exhausted", func(t *testing.T) {
		problem := newMockProblem(t)
		problem.EXPECT().ValidateCode(mock.Anything, "exp", m.VariantBoth).Return(valid(), nil).Once()
		problem.EXPECT().RunExperiment(mock.Anything, "exp", mock.Anything).
			Return(m.ExperimentResult{Test: passed()}, nil).Once()

		settings := testSettings()
		settings.MaxNumTurns = 1

		s := domain.NewSession(problem, adapter.NewReplayEndpoint(reply), newPrompts(t), settings)

		result, err := s.Iterate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, m.StateAborted, result.FinalState)
		assert.Equal(t, m.AbortMaxTurns, result.AbortReason)
	})

	t.Run("compile error is recorded without result", func(t *testing.T) {
		problem := newMockProblem(t)
		problem.EXPECT().ValidateCode(mock.Anything, "exp", m.VariantBoth).
			Return(m.ValidationResult{Error: "undefined: x"}, nil).Once()

		s := domain.NewSession(problem, adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings())

		stepUntil(t, s, m.StateExperimentStated)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateExperimentDoesntCompile, s.State())

		result := s.Result()
		require.Len(t, result.Experiments, 1)
		assert.Nil(t, result.Experiments[0].Result)
		assert.Contains(t, result.Conversation[len(result.Conversation)-1].Content, "undefined: x")
	})

	t.Run("experiment cap aborts", func(t *testing.T) {
		settings := testSettings()
		settings.MaxNumExperiments = 0

		s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(reply), newPrompts(t), settings)

		result, err := s.Iterate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, m.AbortMaxExperiments, result.AbortReason)
		assert.Empty(t, result.Experiments)
	})
}

func TestSession_IncompleteResponses(t *testing.T) {
	settings := testSettings()
	settings.MaxNumIncompleteResponses = 1

	endpoint := adapter.NewReplayEndpoint("I am thinking.", "Still thinking.")
	s := domain.NewSession(newMockProblem(t), endpoint, newPrompts(t), settings)

	result, err := s.Iterate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, m.StateAborted, result.FinalState)
	assert.Equal(t, m.AbortIncompleteResponse, result.AbortReason)
	assert.Equal(t, 0, endpoint.Remaining())
}

func TestSession_EquivalenceClaim(t *testing.T) {
	claim := "## Equivalent Mutant\n\nI believe the mutant is equivalent.\n"

	t.Run("claim alone gets a counter message", func(t *testing.T) {
		s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(claim), newPrompts(t), testSettings())

		stepUntil(t, s, m.StateInitial)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateClaimedEquivalent, s.State())
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateEquivalenceMessageGiven, s.State())

		require.NotNil(t, s.Result().Equivalence)
		assert.Contains(t, s.Result().Equivalence.Text, "equivalent")
	})

	t.Run("claim with code keeps the code", func(t *testing.T) {
		reply := claim + "\n## Test\n```go\ncode\n```\n"
		s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(reply), newPrompts(t), testSettings())

		stepUntil(t, s, m.StateInitial)
		require.NoError(t, s.Step(context.Background()))
		assert.Equal(t, m.StateTestStated, s.State())
		assert.NotNil(t, s.Result().Equivalence)
	})

	t.Run("repeated claims terminate", func(t *testing.T) {
		settings := testSettings()
		settings.MaxNumTurns = 2

		endpoint := adapter.NewReplayEndpoint(claim, claim, claim)
		s := domain.NewSession(newMockProblem(t), endpoint, newPrompts(t), settings)

		result, err := s.Iterate(context.Background())
		require.NoError(t, err)
		assert.Equal(t, m.StateAborted, result.FinalState)
		assert.Equal(t, m.AbortMaxTurns, result.AbortReason)
	})
}

func TestSession_StopWords(t *testing.T) {
	prompts := newPrompts(t)

	t.Run("debug stop words before instructions", func(t *testing.T) {
		endpoint := adaptermocks.NewMockEndpoint(t)
		endpoint.EXPECT().Complete(mock.Anything, mock.Anything, prompts.DebugStopWords).
			Return(m.Message{Role: m.RoleAssistant, Content: "## Test\n```go\ncode\n```\n"}, nil).Once()

		s := domain.NewSession(newMockProblem(t), endpoint, prompts, testSettings())

		stepUntil(t, s, m.StateTestStated)
	})

	t.Run("test stop words in baseline", func(t *testing.T) {
		endpoint := adaptermocks.NewMockEndpoint(t)
		endpoint.EXPECT().Complete(mock.Anything, mock.Anything, prompts.TestStopWords).
			Return(m.Message{Role: m.RoleAssistant, Content: "Here it is:\n```go\ncode\n```\n"}, nil).Once()

		settings, ok := m.PresetSettings(m.PresetBaselineWithoutIterations)
		require.True(t, ok)

		s := domain.NewSession(newMockProblem(t), endpoint, prompts, settings)

		stepUntil(t, s, m.StateTestStated)
	})
}

func TestSession_ResidueIsStripped(t *testing.T) {
	endpoint := adaptermocks.NewMockEndpoint(t)
	endpoint.EXPECT().Complete(mock.Anything, mock.Anything, mock.Anything).
		Return(m.Message{Role: m.RoleAssistant, Content: "## Test\n```go\ncode\n```\n\n##", Usage: &m.Usage{CompletionTokens: 7}}, nil).Once()
	endpoint.EXPECT().Info().Return(m.EndpointInfo{Name: "mock"}).Maybe()

	s := domain.NewSession(newMockProblem(t), endpoint, newPrompts(t), testSettings())
	stepUntil(t, s, m.StateTestStated)

	conversation := s.Result().Conversation
	last := conversation[len(conversation)-1]
	assert.Equal(t, "## Test\n```go\ncode\n```\n", last.Content)
	assert.Equal(t, m.RoleAssistant, last.Role)
	require.NotNil(t, last.Usage)
	assert.Equal(t, 7, last.Usage.CompletionTokens)
}

func TestSession_MissingActionIsFatal(t *testing.T) {
	conversation := m.NewConversation(
		m.Message{Role: m.RoleUser, Content: "problem", Tag: m.StateInitial},
		m.Message{Role: m.RoleAssistant, Content: "no code here", Tag: m.StateExperimentStated},
	)

	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(), newPrompts(t), testSettings(),
		domain.WithConversation(conversation))

	err := s.Step(context.Background())

	var invalid *domain.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, m.StateExperimentStated, invalid.State)
	assert.True(t, domain.IsFatal(err))
}

func TestSession_FinishedSession(t *testing.T) {
	conversation := m.NewConversation(m.Message{Role: m.RoleUser, Content: "done", Tag: m.StateDone})

	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(), newPrompts(t), testSettings(),
		domain.WithConversation(conversation))

	assert.ErrorIs(t, s.Step(context.Background()), domain.ErrSessionFinished)
}

func TestSession_EndpointErrorPropagates(t *testing.T) {
	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint(), newPrompts(t), testSettings())

	_, err := s.Iterate(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, adapter.ErrReplayExhausted))
	assert.False(t, domain.IsFatal(err))
}

func TestSession_StepHookAndID(t *testing.T) {
	var states []m.State

	s := domain.NewSession(newMockProblem(t), adapter.NewReplayEndpoint("## Test\n```go\ncode\n```\n"), newPrompts(t), testSettings(),
		domain.WithSessionID("fixed"),
		domain.WithStepHook(func(_ context.Context, s domain.Session) {
			states = append(states, s.State())
		}),
	)

	stepUntil(t, s, m.StateTestStated)

	assert.Equal(t, "fixed", s.ID())
	assert.Equal(t, []m.State{m.StateInitial, m.StateTestStated}, states)
}
