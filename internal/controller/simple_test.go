package controller

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guut.dev/pkg/guut/internal/model"
)

func newTestSimpleUI() (*SimpleUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewSimpleUI(cmd), &buf
}

func catalogSpecs() []m.MutantSpec {
	return []m.MutantSpec{
		{TargetPath: "calc.go", OperatorName: "add_sub", Occurrence: 0, LineStart: 6, LineEnd: 6},
		{TargetPath: "calc.go", OperatorName: "lss_leq", Occurrence: 0, LineStart: 11, LineEnd: 11},
		{TargetPath: "calc.go", OperatorName: "lss_leq", Occurrence: 1, LineStart: 30, LineEnd: 30},
		{TargetPath: "geometry/geometry.go", OperatorName: "mul_div", Occurrence: 0, LineStart: 6, LineEnd: 6},
	}
}

func TestSimpleUI_DisplayCatalog(t *testing.T) {
	tests := []struct {
		name         string
		specs        []m.MutantSpec
		wantContains []string
	}{
		{
			name:         "empty catalog",
			specs:        nil,
			wantContains: []string{"TOTAL FILES 0", "0"},
		},
		{
			name:  "counts per file and operator",
			specs: catalogSpecs(),
			wantContains: []string{
				"calc.go", "geometry/geometry.go",
				"add_sub:1 lss_leq:2", "mul_div:1",
				"TOTAL FILES 2", "4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, buf := newTestSimpleUI()

			require.NoError(t, ui.DisplayCatalog(context.Background(), tt.specs, nil))

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSimpleUI_DisplayCatalogError(t *testing.T) {
	ui, buf := newTestSimpleUI()
	boom := errors.New("boom")

	err := ui.DisplayCatalog(context.Background(), nil, boom)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "catalog error: boom")
}

func TestSimpleUI_CancelledContext(t *testing.T) {
	ui, buf := newTestSimpleUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, ui.Start(ctx), context.Canceled)
	require.ErrorIs(t, ui.DisplayCatalog(ctx, catalogSpecs(), nil), context.Canceled)
	ui.DisplayCampaignInfo(ctx, 3, 1)
	ui.DisplaySummary(ctx, m.CampaignSummary{})

	assert.Empty(t, buf.String())
}

func TestSimpleUI_Campaign(t *testing.T) {
	ctx := context.Background()
	ui, buf := newTestSimpleUI()

	spec := catalogSpecs()[1]
	swept := catalogSpecs()[2]

	require.NoError(t, ui.Start(ctx, WithCampaignMode(4)))
	ui.DisplayCampaignInfo(ctx, 4, 2)
	ui.DisplaySessionStarted(ctx, spec, "0123456789abcdef")
	ui.DisplaySessionStep(ctx, "0123456789abcdef", m.StateTestStated)
	ui.DisplayCampaignEntry(ctx, m.CampaignEntry{
		Result: m.SessionResult{
			ID:           "0123456789abcdef",
			Problem:      m.ProblemDescription{Name: string(spec.ID())},
			MutantKilled: true,
			FinalState:   m.StateDone,
		},
		Killed: []m.KilledMutant{{Spec: spec}, {Spec: swept, ViaSweep: true}},
	}, m.CampaignStatus{Total: 4, Killed: 2, Alive: 2, Queued: 1, Sessions: 1})
	ui.DisplaySummary(ctx, m.CampaignSummary{Mutants: 4, Killed: 2, Alive: 2, Score: 0.5, DirectKills: 1, SweepKills: 1})
	ui.Close(ctx)
	ui.Wait(ctx)

	out := buf.String()
	assert.Contains(t, out, "Starting campaign over 4 mutant(s)")
	assert.Contains(t, out, "Running 4 mutant(s) with 2 worker(s)")
	assert.Contains(t, out, "Starting session 01234567 for calc.go lss_leq#0")
	assert.Contains(t, out, "Completed session 01234567 (calc.go:lss_leq:0) -> killed")
	assert.Contains(t, out, "swept calc.go:lss_leq:1")
	assert.Contains(t, out, "Progress: 2 killed, 2 alive, 1 queued of 4")
	assert.Contains(t, out, "Mutation score: 50.00%")
	assert.NotContains(t, out, string(m.StateTestStated))
}

func TestSessionOutcome(t *testing.T) {
	tests := []struct {
		name  string
		entry m.CampaignEntry
		want  string
	}{
		{"error", m.CampaignEntry{Err: "endpoint down"}, "error: endpoint down"},
		{"killed", m.CampaignEntry{Result: m.SessionResult{MutantKilled: true, FinalState: m.StateDone}}, "killed"},
		{
			"aborted",
			m.CampaignEntry{Result: m.SessionResult{FinalState: m.StateAborted, AbortReason: m.AbortMaxTurns}},
			"aborted (max_turns)",
		},
		{
			"equivalent",
			m.CampaignEntry{Result: m.SessionResult{FinalState: m.StateInvalid, Equivalence: &m.EquivalenceClaim{}}},
			"claimed equivalent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionOutcome(tt.entry))
		})
	}
}

func TestSimpleUI_DisplaySession(t *testing.T) {
	ui, buf := newTestSimpleUI()

	result := m.SessionResult{
		ID:          "abc",
		Problem:     m.ProblemDescription{Mutant: catalogSpecs()[0]},
		FinalState:  m.StateAborted,
		AbortReason: m.AbortIncompleteResponse,
		Conversation: []m.Message{
			{Role: m.RoleUser, Content: "describe the mutant\n", Tag: m.StateInitial},
			{Role: m.RoleAssistant, Content: "## Test\n"},
		},
	}

	require.NoError(t, ui.DisplaySession(context.Background(), result))

	out := buf.String()
	assert.Contains(t, out, "Session:     abc")
	assert.Contains(t, out, "Abort:       incomplete_response")
	assert.Contains(t, out, "--- user [initial] ---\ndescribe the mutant\n")
	assert.Contains(t, out, "--- assistant ---\n## Test\n")
}
