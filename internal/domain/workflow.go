package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/controller"
	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/pkg"
)

// CatalogArgs contains the arguments for generating a mutant catalog.
type CatalogArgs struct {
	Root      m.Path
	Catalog   m.Path
	Operators []string
	Threads   int
}

// ListArgs contains the arguments for listing a catalog.
type ListArgs struct {
	Catalog m.Path
}

// SessionArgs holds what every session of a run or a campaign shares.
type SessionArgs struct {
	Catalog  m.Path
	Output   m.Path
	Problems ProblemFactory
	Endpoint adapter.Endpoint
	Prompts  *PromptCollection
	Settings m.SessionSettings
}

// ShowArgs contains the arguments for showing the problem of one mutant.
type ShowArgs struct {
	Catalog  m.Path
	Mutant   m.MutantID
	Problems ProblemFactory
	Prompts  *PromptCollection
}

// RunArgs contains the arguments for a single debugging session.
type RunArgs struct {
	SessionArgs
	Mutant m.MutantID
}

// CampaignArgs contains the arguments for a campaign over the catalog.
type CampaignArgs struct {
	SessionArgs
	Parallel int
	SpillDir string
}

// ViewArgs contains the arguments for viewing stored results. An empty
// Session shows the campaign summary.
type ViewArgs struct {
	Output  m.Path
	Session string
}

// Workflow implements the use cases behind guut's commands.
type Workflow interface {
	Catalog(ctx context.Context, args CatalogArgs) error
	List(ctx context.Context, args ListArgs) error
	Show(ctx context.Context, args ShowArgs) error
	Run(ctx context.Context, args RunArgs) (m.SessionResult, error)
	Campaign(ctx context.Context, args CampaignArgs) (m.CampaignSummary, error)
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	controller.UI
	mutagen  Mutagen
	catalogs func(m.Path) adapter.CatalogStore
	results  func(m.Path) adapter.ResultStore
}

// WorkflowOption customizes a Workflow.
type WorkflowOption func(*workflow)

// WithCatalogStores replaces the catalog store selection.
func WithCatalogStores(fn func(m.Path) adapter.CatalogStore) WorkflowOption {
	return func(w *workflow) {
		w.catalogs = fn
	}
}

// WithResultStores replaces the result store constructor.
func WithResultStores(fn func(m.Path) adapter.ResultStore) WorkflowOption {
	return func(w *workflow) {
		w.results = fn
	}
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(ui controller.UI, mutagen Mutagen, opts ...WorkflowOption) Workflow {
	w := &workflow{
		UI:       ui,
		mutagen:  mutagen,
		catalogs: adapter.NewCatalogStore,
		results: func(root m.Path) adapter.ResultStore {
			return adapter.NewLocalResultStore(root)
		},
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *workflow) Catalog(ctx context.Context, args CatalogArgs) error {
	if err := w.Start(ctx, controller.WithCatalogMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	specs, err := w.mutagen.Catalog(ctx, args.Root, args.Threads, args.Operators...)
	if err != nil {
		slog.Error("Failed to generate catalog", "root", args.Root, "error", err)
		_ = w.DisplayCatalog(ctx, nil, err)

		return fmt.Errorf("failed to generate catalog: %w", err)
	}

	if err := w.catalogs(args.Catalog).Save(ctx, args.Catalog, specs); err != nil {
		slog.Error("Failed to save catalog", "path", args.Catalog, "error", err)
		return fmt.Errorf("failed to save catalog: %w", err)
	}

	slog.Info("Catalog written", "path", args.Catalog, "mutants", len(specs))

	return w.DisplayCatalog(ctx, specs, nil)
}

func (w *workflow) loadCatalog(ctx context.Context, path m.Path) ([]m.MutantSpec, error) {
	specs, err := w.catalogs(path).Load(ctx, path)
	if err != nil {
		slog.Error("Failed to load catalog", "path", path, "error", err)
		return nil, fmt.Errorf("failed to load catalog %s: %w", path, err)
	}

	return specs, nil
}

func (w *workflow) findMutant(ctx context.Context, path m.Path, id m.MutantID) (m.MutantSpec, error) {
	specs, err := w.loadCatalog(ctx, path)
	if err != nil {
		return m.MutantSpec{}, err
	}

	for _, spec := range specs {
		if spec.ID() == id {
			return spec, nil
		}
	}

	return m.MutantSpec{}, fmt.Errorf("%w: %s", ErrUnknownMutant, id)
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	specs, err := w.loadCatalog(ctx, args.Catalog)
	if err != nil {
		return err
	}

	if err := w.Start(ctx, controller.WithCatalogMode()); err != nil {
		return err
	}

	err = w.DisplayCatalog(ctx, specs, nil)

	w.Wait(ctx)
	w.Close(ctx)

	return err
}

func (w *workflow) Show(ctx context.Context, args ShowArgs) error {
	spec, err := w.findMutant(ctx, args.Catalog, args.Mutant)
	if err != nil {
		return err
	}

	problem, err := args.Problems.NewProblem(ctx, spec)
	if err != nil {
		return fmt.Errorf("failed to create problem for %s: %w", spec.ID(), err)
	}

	msg, err := args.Prompts.Problem(problem.Description())
	if err != nil {
		return err
	}

	return w.DisplayProblem(ctx, problem.Description(), msg.Content)
}

// newSession creates a session that reports its progress to the UI and
// rewrites its conversation log after every step.
func (w *workflow) newSession(ctx context.Context, problem Problem, args SessionArgs, store adapter.ResultStore) Session {
	session := NewSession(problem, args.Endpoint, args.Prompts, args.Settings,
		WithStepHook(func(ctx context.Context, s Session) {
			w.DisplaySessionStep(ctx, s.ID(), s.State())

			if err := store.SaveConversation(ctx, s.ID(), s.Result().Conversation); err != nil {
				slog.Warn("Failed to save conversation", "session", s.ID(), "error", err)
			}
		}),
	)

	w.DisplaySessionStarted(ctx, problem.Spec(), session.ID())

	return session
}

func (w *workflow) Run(ctx context.Context, args RunArgs) (m.SessionResult, error) {
	spec, err := w.findMutant(ctx, args.Catalog, args.Mutant)
	if err != nil {
		return m.SessionResult{}, err
	}

	problem, err := args.Problems.NewProblem(ctx, spec)
	if err != nil {
		return m.SessionResult{}, fmt.Errorf("failed to create problem for %s: %w", spec.ID(), err)
	}

	store := w.results(args.Output)

	if err := w.Start(ctx, controller.WithSessionMode()); err != nil {
		return m.SessionResult{}, err
	}

	result, runErr := w.newSession(ctx, problem, args.SessionArgs, store).Iterate(ctx)

	// The result is kept even when the session failed.
	persistCtx := context.WithoutCancel(ctx)

	w.Close(persistCtx)
	w.Wait(persistCtx)

	path, err := store.SaveSession(persistCtx, result)
	if err != nil {
		slog.Error("Failed to save session", "session", result.ID, "error", err)
		return result, errors.Join(runErr, fmt.Errorf("failed to save session: %w", err))
	}

	slog.Info("Session saved", "session", result.ID, "path", path)

	if runErr != nil {
		return result, runErr
	}

	return result, w.DisplaySession(ctx, result)
}

func (w *workflow) Campaign(ctx context.Context, args CampaignArgs) (m.CampaignSummary, error) {
	specs, err := w.loadCatalog(ctx, args.Catalog)
	if err != nil {
		return m.CampaignSummary{}, err
	}

	store := w.results(args.Output)

	entries, err := pkg.NewFileSpill[m.CampaignEntry](args.SpillDir)
	if err != nil {
		return m.CampaignSummary{}, err
	}

	defer func() {
		if err := entries.Remove(); err != nil {
			slog.Warn("Failed to remove spill", "path", entries.Path(), "error", err)
		}
	}()

	scheduler := NewScheduler(specs, args.Problems,
		func(problem Problem) Session {
			return w.newSession(ctx, problem, args.SessionArgs, store)
		},
		WithParallel(args.Parallel),
		WithEntryFunc(func(ctx context.Context, entry m.CampaignEntry, status m.CampaignStatus) error {
			if _, err := store.SaveSession(ctx, entry.Result); err != nil {
				return err
			}

			if err := store.SaveCampaignStatus(ctx, status); err != nil {
				return err
			}

			if err := entries.Append(entry); err != nil {
				return err
			}

			w.DisplayCampaignEntry(ctx, entry, status)

			return nil
		}),
	)

	if err := w.Start(ctx, controller.WithCampaignMode(len(specs))); err != nil {
		return m.CampaignSummary{}, err
	}

	w.DisplayCampaignInfo(ctx, len(specs), max(args.Parallel, 1))

	result, runErr := scheduler.Run(ctx)

	// Whatever the campaign achieved is written out, also after a fatal
	// error or an interrupt.
	persistCtx := context.WithoutCancel(ctx)

	summary, err := w.finishCampaign(persistCtx, store, result, scheduler.Status(), entries)

	w.Close(persistCtx)
	w.Wait(persistCtx)

	return summary, errors.Join(runErr, err)
}

func (w *workflow) finishCampaign(
	ctx context.Context,
	store adapter.ResultStore,
	result m.CampaignResult,
	status m.CampaignStatus,
	entries pkg.FileSpill[m.CampaignEntry],
) (m.CampaignSummary, error) {
	if err := store.SaveCampaign(ctx, result); err != nil {
		slog.Error("Failed to save campaign", "campaign", result.ID, "error", err)
		return m.CampaignSummary{}, fmt.Errorf("failed to save campaign: %w", err)
	}

	if err := store.SaveCampaignStatus(ctx, status); err != nil {
		slog.Error("Failed to save campaign status", "campaign", result.ID, "error", err)
		return m.CampaignSummary{}, fmt.Errorf("failed to save campaign status: %w", err)
	}

	summary, err := Summarize(result.ID, len(result.Mutants), entries)
	if err != nil {
		slog.Error("Failed to summarize campaign", "campaign", result.ID, "error", err)
		return m.CampaignSummary{}, fmt.Errorf("failed to summarize campaign: %w", err)
	}

	if err := store.SaveSummary(ctx, summary); err != nil {
		slog.Error("Failed to save summary", "campaign", result.ID, "error", err)
		return summary, fmt.Errorf("failed to save summary: %w", err)
	}

	w.DisplaySummary(ctx, summary)

	return summary, nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	store := w.results(args.Output)

	if args.Session != "" {
		result, err := store.LoadSession(ctx, m.Path(args.Session))
		if err != nil {
			slog.Error("Failed to load session", "session", args.Session, "error", err)
			return fmt.Errorf("failed to load session %s: %w", args.Session, err)
		}

		return w.DisplaySession(ctx, result)
	}

	summary, err := store.LoadSummary(ctx)
	if err != nil {
		slog.Error("Failed to load summary", "output", args.Output, "error", err)
		return fmt.Errorf("failed to load campaign summary from %s: %w", args.Output, err)
	}

	w.DisplaySummary(ctx, summary)

	return nil
}
