package domain_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guut.dev/pkg/guut/internal/domain"
	domainmocks "guut.dev/pkg/guut/internal/domain/mocks"
	m "guut.dev/pkg/guut/internal/model"
)

// firstPick always pops the first queue slot.
type firstPick struct{}

func (firstPick) IntN(int) int { return 0 }

func spec(line int) m.MutantSpec {
	return m.MutantSpec{
		TargetPath:   "calc.go",
		OperatorName: "comparison/lss_leq",
		Occurrence:   line,
		LineStart:    line,
		LineEnd:      line,
	}
}

func killingResult(id string, executed ...int) m.SessionResult {
	return m.SessionResult{
		ID:           id,
		MutantKilled: true,
		FinalState:   m.StateDone,
		Tests: []m.TestRecord{{
			Action:      m.Test{Code: "killer"},
			Validation:  m.ValidationResult{Valid: true},
			KillsMutant: true,
			Result: &m.TestResult{
				Correct: m.ExecutionResult{
					ExitCode: 0,
					Coverage: &m.Coverage{Files: map[string]m.FileCoverage{
						"calc.go": {ExecutedLines: executed},
					}},
				},
				Mutant: m.ExecutionResult{ExitCode: 1},
			},
		}},
	}
}

func survivingResult(id string) m.SessionResult {
	return m.SessionResult{ID: id, FinalState: m.StateAborted, AbortReason: m.AbortMaxTurns}
}

func mockSession(t *testing.T, result m.SessionResult, err error) *domainmocks.MockSession {
	t.Helper()

	s := domainmocks.NewMockSession(t)
	s.EXPECT().Iterate(mock.Anything).Return(result, err).Once()
	s.EXPECT().ID().Return(result.ID).Maybe()

	return s
}

func assertPartition(t *testing.T, status m.CampaignStatus) {
	t.Helper()

	assert.Equal(t, status.Total, status.Alive+status.Killed)
	assert.LessOrEqual(t, status.Queued, status.Alive)
}

func TestScheduler_SweepKillsCoveredMutantsOnly(t *testing.T) {
	first, second, third := spec(5), spec(9), spec(20)

	p1 := domainmocks.NewMockProblem(t)
	p2 := domainmocks.NewMockProblem(t)
	p3 := domainmocks.NewMockProblem(t)

	p2.EXPECT().RunTest(mock.Anything, "killer", false).Return(m.TestResult{
		Correct: m.ExecutionResult{ExitCode: 0},
		Mutant:  m.ExecutionResult{ExitCode: 1},
	}, nil).Once()

	factory := domainmocks.NewMockProblemFactory(t)
	factory.EXPECT().NewProblem(mock.Anything, first).Return(p1, nil).Once()
	factory.EXPECT().NewProblem(mock.Anything, second).Return(p2, nil).Once()
	factory.EXPECT().NewProblem(mock.Anything, third).Return(p3, nil).Once()

	var created []domain.Problem

	sessions := func(problem domain.Problem) domain.Session {
		created = append(created, problem)

		switch problem {
		case p1:
			return mockSession(t, killingResult("s1", 3, 4, 5, 9), nil)
		case p3:
			return mockSession(t, survivingResult("s3"), nil)
		}

		t.Errorf("unexpected session for %v", problem)

		return mockSession(t, survivingResult("unexpected"), nil)
	}

	var entries []m.CampaignEntry

	scheduler := domain.NewScheduler([]m.MutantSpec{first, second, third}, factory, sessions,
		domain.WithRand(firstPick{}),
		domain.WithCampaignID("c1"),
		domain.WithEntryFunc(func(_ context.Context, entry m.CampaignEntry, status m.CampaignStatus) error {
			assertPartition(t, status)
			entries = append(entries, entry)

			return nil
		}),
	)

	result, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Problem{p1, p3}, created)
	assert.Equal(t, "c1", result.ID)
	assert.Equal(t, []string{"s1", "s3"}, result.Sessions)
	assert.Equal(t, []m.MutantSpec{third}, result.Alive)

	require.Len(t, result.Killed, 2)
	assert.Equal(t, first, result.Killed[0].Spec)
	assert.False(t, result.Killed[0].ViaSweep)
	assert.Equal(t, second, result.Killed[1].Spec)
	assert.True(t, result.Killed[1].ViaSweep)
	assert.Equal(t, "s1", result.Killed[1].SessionID)

	require.Len(t, entries, 2)
	assert.Len(t, entries[0].Killed, 2)
	assert.Empty(t, entries[1].Killed)

	status := scheduler.Status()
	assert.Equal(t, m.CampaignStatus{Total: 3, Queued: 0, Alive: 1, Killed: 2, Sessions: 2}, status)
}

func TestScheduler_SweepSurvivorStaysAlive(t *testing.T) {
	first, second := spec(5), spec(9)

	p1 := domainmocks.NewMockProblem(t)
	p2 := domainmocks.NewMockProblem(t)

	// The test passes on the second mutant too.
	p2.EXPECT().RunTest(mock.Anything, "killer", false).Return(m.TestResult{
		Correct: m.ExecutionResult{ExitCode: 0},
		Mutant:  m.ExecutionResult{ExitCode: 0},
	}, nil).Once()

	factory := domainmocks.NewMockProblemFactory(t)
	factory.EXPECT().NewProblem(mock.Anything, first).Return(p1, nil).Once()
	factory.EXPECT().NewProblem(mock.Anything, second).Return(p2, nil).Twice()

	sessions := func(problem domain.Problem) domain.Session {
		if problem == p1 {
			return mockSession(t, killingResult("s1", 9), nil)
		}

		return mockSession(t, survivingResult("s2"), nil)
	}

	scheduler := domain.NewScheduler([]m.MutantSpec{first, second}, factory, sessions, domain.WithRand(firstPick{}))

	result, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []m.MutantSpec{second}, result.Alive)
	assert.Equal(t, []string{"s1", "s2"}, result.Sessions)
}

func TestScheduler_MissingCoverageIsFatal(t *testing.T) {
	p1 := domainmocks.NewMockProblem(t)

	factory := domainmocks.NewMockProblemFactory(t)
	factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(p1, nil).Once()

	killed := killingResult("s1")
	killed.Tests[0].Result.Correct.Coverage = nil

	sessions := func(domain.Problem) domain.Session {
		return mockSession(t, killed, nil)
	}

	scheduler := domain.NewScheduler([]m.MutantSpec{spec(5), spec(9)}, factory, sessions, domain.WithRand(firstPick{}))

	_, err := scheduler.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrMissingCoverage)
}

func TestScheduler_MissingTargetIsFatal(t *testing.T) {
	factory := domainmocks.NewMockProblemFactory(t)
	factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(nil, domain.ErrTargetNotFound).Once()

	sessions := func(domain.Problem) domain.Session {
		t.Error("no session expected")
		return nil
	}

	scheduler := domain.NewScheduler([]m.MutantSpec{spec(5)}, factory, sessions)

	_, err := scheduler.Run(context.Background())
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestScheduler_SessionErrors(t *testing.T) {
	t.Run("recoverable error leaves the mutant alive", func(t *testing.T) {
		factory := domainmocks.NewMockProblemFactory(t)
		factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(domainmocks.NewMockProblem(t), nil).Once()

		sessions := func(domain.Problem) domain.Session {
			return mockSession(t, survivingResult("s1"), errors.New("connection reset"))
		}

		var entries []m.CampaignEntry

		scheduler := domain.NewScheduler([]m.MutantSpec{spec(5)}, factory, sessions,
			domain.WithEntryFunc(func(_ context.Context, entry m.CampaignEntry, _ m.CampaignStatus) error {
				entries = append(entries, entry)
				return nil
			}),
		)

		result, err := scheduler.Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []m.MutantSpec{spec(5)}, result.Alive)
		require.Len(t, entries, 1)
		assert.Equal(t, "connection reset", entries[0].Err)
	})

	t.Run("cancelled session records no kill", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		factory := domainmocks.NewMockProblemFactory(t)
		factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(domainmocks.NewMockProblem(t), nil).Once()

		sessions := func(domain.Problem) domain.Session {
			s := domainmocks.NewMockSession(t)
			s.EXPECT().ID().Return("s1").Maybe()
			s.EXPECT().Iterate(mock.Anything).
				RunAndReturn(func(context.Context) (m.SessionResult, error) {
					cancel()
					return killingResult("s1", 5), fmt.Errorf("failed to run test: %w", context.Canceled)
				}).Once()

			return s
		}

		scheduler := domain.NewScheduler([]m.MutantSpec{spec(5), spec(9)}, factory, sessions, domain.WithRand(firstPick{}))

		_, err := scheduler.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)

		status := scheduler.Status()
		assert.Zero(t, status.Killed)
		assert.Equal(t, 2, status.Alive)
		assertPartition(t, status)
	})

	t.Run("invalid state stops the campaign", func(t *testing.T) {
		factory := domainmocks.NewMockProblemFactory(t)
		factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(domainmocks.NewMockProblem(t), nil).Once()

		sessions := func(domain.Problem) domain.Session {
			return mockSession(t, survivingResult("s1"), &domain.InvalidStateError{State: m.StateTestStated})
		}

		scheduler := domain.NewScheduler([]m.MutantSpec{spec(5), spec(9)}, factory, sessions, domain.WithRand(firstPick{}))

		_, err := scheduler.Run(context.Background())

		var invalid *domain.InvalidStateError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("entry callback error stops the campaign", func(t *testing.T) {
		factory := domainmocks.NewMockProblemFactory(t)
		factory.EXPECT().NewProblem(mock.Anything, spec(5)).Return(domainmocks.NewMockProblem(t), nil).Once()

		sessions := func(domain.Problem) domain.Session {
			return mockSession(t, survivingResult("s1"), nil)
		}

		boom := errors.New("disk full")

		scheduler := domain.NewScheduler([]m.MutantSpec{spec(5), spec(9)}, factory, sessions,
			domain.WithRand(firstPick{}),
			domain.WithEntryFunc(func(context.Context, m.CampaignEntry, m.CampaignStatus) error {
				return boom
			}),
		)

		_, err := scheduler.Run(context.Background())
		require.ErrorIs(t, err, boom)
	})
}

func TestScheduler_ParallelKeepsPartition(t *testing.T) {
	var mutants []m.MutantSpec
	for line := 1; line <= 8; line++ {
		mutants = append(mutants, spec(line))
	}

	factory := domainmocks.NewMockProblemFactory(t)
	factory.EXPECT().NewProblem(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, m.MutantSpec) (domain.Problem, error) {
			return domainmocks.NewMockProblem(t), nil
		}).
		Times(len(mutants))

	var mu sync.Mutex
	sessionCount := 0

	sessions := func(domain.Problem) domain.Session {
		mu.Lock()
		defer mu.Unlock()

		sessionCount++

		return mockSession(t, survivingResult("s"), nil)
	}

	scheduler := domain.NewScheduler(mutants, factory, sessions,
		domain.WithParallel(3),
		domain.WithRand(rand.New(rand.NewPCG(1, 2))),
		domain.WithEntryFunc(func(_ context.Context, _ m.CampaignEntry, status m.CampaignStatus) error {
			assertPartition(t, status)
			return nil
		}),
	)

	result, err := scheduler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(mutants), sessionCount)
	assert.ElementsMatch(t, mutants, result.Alive)
	assert.Empty(t, result.Killed)
	assert.Len(t, result.Sessions, len(mutants))
}

func TestScheduler_DuplicatesAreMerged(t *testing.T) {
	scheduler := domain.NewScheduler([]m.MutantSpec{spec(5), spec(5), spec(9)}, domainmocks.NewMockProblemFactory(t), nil)

	status := scheduler.Status()
	assert.Equal(t, 2, status.Total)
	assert.Equal(t, []m.MutantID{spec(5).ID(), spec(9).ID()}, status.Queue)
}
