package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "guut.dev/pkg/guut/internal/model"
)

// SimpleUI implements UI using cobra Command's Println.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if cfg := newStartConfig(options...); cfg.mode == ModeCampaign {
		s.printf("Starting campaign over %d mutant(s)\n", cfg.total)
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCatalog prints the number of mutants per file and operator.
func (s *SimpleUI) DisplayCatalog(ctx context.Context, specs []m.MutantSpec, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		s.printf("catalog error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderCatalogTable(buildFileStats(specs), len(specs)))

	return nil
}

// DisplayProblem prints the prompt that introduces a mutant to the model.
func (s *SimpleUI) DisplayProblem(ctx context.Context, desc m.ProblemDescription, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("Mutant %s\n\n%s", desc.Name, prompt)

	return nil
}

type fileStat struct {
	path      string
	count     int
	operators map[string]int
}

func (f fileStat) operatorSummary() string {
	names := make([]string, 0, len(f.operators))
	for name := range f.operators {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s:%d", name, f.operators[name]))
	}

	return strings.Join(parts, " ")
}

func buildFileStats(specs []m.MutantSpec) []fileStat {
	info := make(map[string]fileStat)

	for _, spec := range specs {
		stat, ok := info[spec.TargetPath]
		if !ok {
			stat = fileStat{path: spec.TargetPath, operators: make(map[string]int)}
		}

		stat.count++
		stat.operators[spec.OperatorName]++
		info[spec.TargetPath] = stat
	}

	statsList := make([]fileStat, 0, len(info))
	for _, stat := range info {
		statsList = append(statsList, stat)
	}

	sort.Slice(statsList, func(i, j int) bool {
		return statsList[i].path < statsList[j].path
	})

	return statsList
}

func renderCatalogTable(statsList []fileStat, totalMutants int) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Mutants", "Operators"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT})

	for _, stat := range statsList {
		table.Append([]string{stat.path, fmt.Sprintf("%d", stat.count), stat.operatorSummary()})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(statsList)),
		fmt.Sprintf("%d", totalMutants),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayCampaignInfo shows the size of the campaign and its parallelism.
func (s *SimpleUI) DisplayCampaignInfo(ctx context.Context, mutants int, parallel int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d mutant(s) with %d worker(s)\n", mutants, parallel)
}

// DisplaySessionStarted shows the mutant a new session works on.
func (s *SimpleUI) DisplaySessionStarted(ctx context.Context, spec m.MutantSpec, sessionID string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Starting session %s for %s\n", shortID(sessionID), spec)
}

// DisplaySessionStep is a no-op. SimpleUI only reports finished sessions.
func (s *SimpleUI) DisplaySessionStep(ctx context.Context, _ string, _ m.State) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayCampaignEntry shows the outcome of a finished session.
func (s *SimpleUI) DisplayCampaignEntry(ctx context.Context, entry m.CampaignEntry, status m.CampaignStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Completed session %s (%s) -> %s\n",
		shortID(entry.Result.ID), entry.Result.Problem.Name, sessionOutcome(entry))

	for _, killed := range entry.Killed {
		if killed.ViaSweep {
			s.printf("  swept %s\n", killed.Spec.ID())
		}
	}

	s.printf("Progress: %d killed, %d alive, %d queued of %d\n",
		status.Killed, status.Alive, status.Queued, status.Total)
}

// DisplaySession prints a finished session with its conversation.
func (s *SimpleUI) DisplaySession(ctx context.Context, result m.SessionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderSessionHeader(result))

	for _, msg := range result.Conversation {
		s.printf("\n--- %s", msg.Role)

		if msg.Tag != "" {
			s.printf(" [%s]", msg.Tag)
		}

		s.printf(" ---\n%s\n", strings.TrimRight(msg.Content, "\n"))
	}

	return nil
}

func renderSessionHeader(result m.SessionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Session:     %s\n", result.ID)
	fmt.Fprintf(&b, "Mutant:      %s\n", result.Problem.Mutant)
	fmt.Fprintf(&b, "Final state: %s\n", result.FinalState)

	if result.AbortReason != "" {
		fmt.Fprintf(&b, "Abort:       %s\n", result.AbortReason)
	}

	fmt.Fprintf(&b, "Killed:      %t\n", result.MutantKilled)
	fmt.Fprintf(&b, "Experiments: %d | Tests: %d\n", len(result.Experiments), len(result.Tests))

	if result.Equivalence != nil {
		b.WriteString("Claimed equivalent\n")
	}

	return b.String()
}

// DisplaySummary prints the final campaign summary.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.CampaignSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\nSummary:\n")
	s.printf("Mutants: %d | Killed: %d (direct %d, sweep %d) | Alive: %d\n",
		summary.Mutants, summary.Killed, summary.DirectKills, summary.SweepKills, summary.Alive)
	s.printf("Sessions: %d | Done: %d | Aborted: %d | Failed: %d | Claimed equivalent: %d\n",
		summary.Sessions, summary.Done, summary.Aborted, summary.Failed, summary.ClaimedEquivalent)
	s.printf("Tokens: %d prompt, %d completion\n", summary.PromptTokens, summary.CompletionTokens)
	s.printf("Mutation score: %.2f%%\n", summary.Score*100)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func sessionOutcome(entry m.CampaignEntry) string {
	switch {
	case entry.Err != "":
		return "error: " + entry.Err
	case entry.Result.MutantKilled:
		return "killed"
	case entry.Result.FinalState == m.StateAborted:
		return "aborted (" + entry.Result.AbortReason + ")"
	case entry.Result.Equivalence != nil:
		return "claimed equivalent"
	default:
		return string(entry.Result.FinalState)
	}
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}

	return id[:n]
}
