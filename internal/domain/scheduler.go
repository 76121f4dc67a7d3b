package domain

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

// Scheduler runs one session per mutant and reuses every killing test against
// the other alive mutants whose lines it covered.
type Scheduler interface {
	ID() string
	// Run works the queue until it is empty. Only fatal errors are returned;
	// a session that fails leaves its mutant alive.
	Run(ctx context.Context) (m.CampaignResult, error)
	Status() m.CampaignStatus
	Result() m.CampaignResult
}

// EntryFunc receives the entry of every finished session. Calls are
// serialized. A returned error stops the campaign.
type EntryFunc func(ctx context.Context, entry m.CampaignEntry, status m.CampaignStatus) error

// SchedulerOption customizes a scheduler.
type SchedulerOption func(*scheduler)

// WithParallel sets the number of concurrent sessions.
func WithParallel(n int) SchedulerOption {
	return func(s *scheduler) {
		if n > 0 {
			s.parallel = n
		}
	}
}

// RandSource picks the next queue index. *rand.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// WithRand sets the source of the queue order.
func WithRand(r RandSource) SchedulerOption {
	return func(s *scheduler) {
		s.rand = r
	}
}

// WithEntryFunc registers the per-session callback.
func WithEntryFunc(fn EntryFunc) SchedulerOption {
	return func(s *scheduler) {
		s.onEntry = fn
	}
}

// WithCampaignID sets the campaign ID instead of a random UUID.
func WithCampaignID(id string) SchedulerOption {
	return func(s *scheduler) {
		s.id = id
	}
}

// mutantSet is a set of mutants with O(1) membership and removal.
type mutantSet struct {
	ids   []m.MutantID
	index map[m.MutantID]int
	specs map[m.MutantID]m.MutantSpec
}

func newMutantSet() *mutantSet {
	return &mutantSet{
		index: make(map[m.MutantID]int),
		specs: make(map[m.MutantID]m.MutantSpec),
	}
}

func (ms *mutantSet) add(spec m.MutantSpec) {
	id := spec.ID()
	if _, ok := ms.index[id]; ok {
		return
	}

	ms.index[id] = len(ms.ids)
	ms.ids = append(ms.ids, id)
	ms.specs[id] = spec
}

func (ms *mutantSet) has(id m.MutantID) bool {
	_, ok := ms.index[id]
	return ok
}

func (ms *mutantSet) remove(id m.MutantID) bool {
	i, ok := ms.index[id]
	if !ok {
		return false
	}

	last := len(ms.ids) - 1
	ms.ids[i] = ms.ids[last]
	ms.index[ms.ids[i]] = i
	ms.ids = ms.ids[:last]

	delete(ms.index, id)
	delete(ms.specs, id)

	return true
}

func (ms *mutantSet) len() int {
	return len(ms.ids)
}

func (ms *mutantSet) sortedIDs() []m.MutantID {
	ids := append([]m.MutantID(nil), ms.ids...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

type scheduler struct {
	id       string
	mutants  []m.MutantSpec
	problems ProblemFactory
	sessions SessionFactory
	parallel int
	rand     RandSource
	onEntry  EntryFunc
	now      func() time.Time

	mu       sync.Mutex
	queue    *mutantSet
	alive    *mutantSet
	killed   map[m.MutantID]m.KilledMutant
	order    []m.MutantID
	ran      []string
	started  time.Time
	finished time.Time

	entryMu sync.Mutex
}

// NewScheduler creates a scheduler over mutants. Duplicate specs are merged.
func NewScheduler(mutants []m.MutantSpec, problems ProblemFactory, sessions SessionFactory, opts ...SchedulerOption) Scheduler {
	s := &scheduler{
		id:       uuid.NewString(),
		problems: problems,
		sessions: sessions,
		parallel: 1,
		now:      time.Now,
		queue:    newMutantSet(),
		alive:    newMutantSet(),
		killed:   make(map[m.MutantID]m.KilledMutant),
	}

	for _, spec := range mutants {
		if s.alive.has(spec.ID()) {
			continue
		}

		s.mutants = append(s.mutants, spec)
		s.queue.add(spec)
		s.alive.add(spec)
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *scheduler) ID() string {
	return s.id
}

func (s *scheduler) Run(ctx context.Context) (result m.CampaignResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "campaign",
		attribute.String("campaign.id", s.id),
		attribute.Int("campaign.mutants", len(s.mutants)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	s.mu.Lock()
	s.started = s.now()
	s.mu.Unlock()

	slog.Info("Starting campaign", "campaign", s.id, "mutants", len(s.mutants), "parallel", s.parallel)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)

	for i := 0; i < s.parallel; i++ {
		g.Go(func() error {
			return s.work(gctx)
		})
	}

	err = g.Wait()

	s.mu.Lock()
	s.finished = s.now()
	s.mu.Unlock()

	result = s.Result()

	if err != nil {
		slog.Error("Failed to run campaign", "campaign", s.id, "error", err)
		return result, fmt.Errorf("failed to run campaign: %w", err)
	}

	slog.Info("Campaign finished", "campaign", s.id, "killed", len(result.Killed), "alive", len(result.Alive))

	return result, nil
}

func (s *scheduler) work(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		spec, ok := s.pop()
		if !ok {
			return nil
		}

		if err := s.attempt(ctx, spec); err != nil {
			return err
		}
	}
}

// pop removes a random mutant from the queue.
func (s *scheduler) pop() (m.MutantSpec, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.queue.len()
	if n == 0 {
		return m.MutantSpec{}, false
	}

	var i int
	if s.rand != nil {
		i = s.rand.IntN(n)
	} else {
		i = rand.IntN(n)
	}

	id := s.queue.ids[i]
	spec := s.queue.specs[id]
	s.queue.remove(id)

	return spec, true
}

func (s *scheduler) attempt(ctx context.Context, spec m.MutantSpec) error {
	problem, err := s.problems.NewProblem(ctx, spec)
	if err != nil {
		slog.Error("Failed to create problem", "mutant", spec.ID(), "error", err)
		return fmt.Errorf("failed to create problem for %s: %w", spec.ID(), err)
	}

	session := s.sessions(problem)

	result, err := session.Iterate(ctx)
	if err != nil && (IsFatal(err) || ctx.Err() != nil) {
		return fmt.Errorf("session %s for %s: %w", session.ID(), spec.ID(), err)
	}

	entry := m.CampaignEntry{Result: result}
	if err != nil {
		slog.Warn("Session failed, mutant stays alive", "session", session.ID(), "mutant", spec.ID(), "error", err)
		entry.Err = err.Error()
	}

	if err == nil && result.MutantKilled {
		test, ok := result.KillingTest()
		if !ok || test.Result == nil {
			return &InvalidStateError{State: result.FinalState, Reason: "killed mutant without killing test"}
		}

		if killed, ok := s.kill(spec, test.Result, result.ID, false); ok {
			entry.Killed = append(entry.Killed, killed)
		}

		swept, err := s.sweep(ctx, spec, test, result.ID)
		if err != nil {
			return err
		}

		entry.Killed = append(entry.Killed, swept...)
	}

	s.mu.Lock()
	s.ran = append(s.ran, result.ID)
	s.mu.Unlock()

	return s.report(ctx, entry)
}

func (s *scheduler) report(ctx context.Context, entry m.CampaignEntry) error {
	if s.onEntry == nil {
		return nil
	}

	s.entryMu.Lock()
	defer s.entryMu.Unlock()

	if err := s.onEntry(ctx, entry, s.Status()); err != nil {
		slog.Error("Failed to report session", "session", entry.Result.ID, "error", err)
		return fmt.Errorf("failed to report session %s: %w", entry.Result.ID, err)
	}

	return nil
}

// kill moves spec from alive to killed. It reports false when spec was
// already killed.
func (s *scheduler) kill(spec m.MutantSpec, result *m.TestResult, sessionID string, viaSweep bool) (m.KilledMutant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := spec.ID()
	if !s.alive.remove(id) {
		return m.KilledMutant{}, false
	}

	s.queue.remove(id)

	killed := m.KilledMutant{
		Spec:       spec,
		TestResult: result,
		SessionID:  sessionID,
		ViaSweep:   viaSweep,
	}
	s.killed[id] = killed
	s.order = append(s.order, id)

	telemetry.ObserveKill(viaSweep)

	return killed, true
}

// sweepCandidates returns the alive mutants whose lines the run covered.
func (s *scheduler) sweepCandidates(coverage *m.Coverage) []m.MutantSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []m.MutantSpec

	for _, id := range s.alive.sortedIDs() {
		spec := s.alive.specs[id]
		if coverage.Covers(spec.TargetPath, spec.LineStart, spec.LineEnd) {
			candidates = append(candidates, spec)
		}
	}

	return candidates
}

func (s *scheduler) isAlive(id m.MutantID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.alive.has(id)
}

// sweep re-runs a killing test against every alive mutant it covered.
func (s *scheduler) sweep(ctx context.Context, origin m.MutantSpec, test m.TestRecord, sessionID string) (killed []m.KilledMutant, err error) {
	coverage := test.Result.Correct.Coverage
	if coverage == nil {
		slog.Error("Killing test has no coverage", "mutant", origin.ID(), "session", sessionID)
		return nil, fmt.Errorf("sweep after %s: %w", origin.ID(), ErrMissingCoverage)
	}

	ctx, span := telemetry.StartSpan(ctx, "sweep", attribute.String("mutant", string(origin.ID())))
	defer func() { telemetry.EndSpan(span, err) }()

	candidates := s.sweepCandidates(coverage)
	span.SetAttributes(attribute.Int("sweep.candidates", len(candidates)))

	for _, spec := range candidates {
		if !s.isAlive(spec.ID()) {
			continue
		}

		problem, err := s.problems.NewProblem(ctx, spec)
		if err != nil {
			slog.Error("Failed to create problem", "mutant", spec.ID(), "error", err)
			return killed, fmt.Errorf("failed to create problem for %s: %w", spec.ID(), err)
		}

		result, err := problem.RunTest(ctx, test.Action.Code, false)
		if err != nil {
			slog.Error("Failed to run test against mutant", "mutant", spec.ID(), "error", err)
			return killed, fmt.Errorf("failed to sweep %s: %w", spec.ID(), err)
		}

		if !result.KillsMutant() {
			slog.Debug("Sweep candidate survived", "mutant", spec.ID())
			continue
		}

		if k, ok := s.kill(spec, &result, sessionID, true); ok {
			slog.Info("Mutant killed by sweep", "mutant", spec.ID(), "session", sessionID)
			killed = append(killed, k)
		}
	}

	return killed, nil
}

func (s *scheduler) Status() m.CampaignStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return m.CampaignStatus{
		Total:    len(s.mutants),
		Queued:   s.queue.len(),
		Alive:    s.alive.len(),
		Killed:   len(s.killed),
		Sessions: len(s.ran),
		Queue:    s.queue.sortedIDs(),
	}
}

func (s *scheduler) Result() m.CampaignResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := m.CampaignResult{
		ID:       s.id,
		Mutants:  append([]m.MutantSpec(nil), s.mutants...),
		Sessions: append([]string(nil), s.ran...),
		Started:  s.started,
		Finished: s.finished,
	}

	for _, spec := range s.mutants {
		if s.alive.has(spec.ID()) {
			result.Alive = append(result.Alive, spec)
		}
	}

	for _, id := range s.order {
		result.Killed = append(result.Killed, s.killed[id])
	}

	return result
}
