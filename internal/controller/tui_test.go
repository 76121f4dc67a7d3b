package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "guut.dev/pkg/guut/internal/model"
)

func TestTUI_DisplayCatalog_Empty(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.DisplayCatalog(context.Background(), nil, nil))

	assert.Contains(t, buf.String(), "guut - mutant catalog")
	assert.Contains(t, buf.String(), "No mutants found")
}

func TestTUI_DisplayCatalog_SmallList(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	require.NoError(t, tui.DisplayCatalog(context.Background(), catalogSpecs(), nil))

	out := buf.String()
	assert.Contains(t, out, "calc.go")
	assert.Contains(t, out, "geometry/geometry.go")
	assert.Contains(t, out, "Total: 4 mutants across 2 file(s)")
	assert.NotContains(t, out, "Page ")
}

func TestCatalogModel_Pagination(t *testing.T) {
	stats := make([]fileStat, 30)
	for i := range stats {
		stats[i] = fileStat{path: strings.Repeat("a", i+1) + ".go", count: 1, operators: map[string]int{"add_sub": 1}}
	}

	model := newCatalogModel(stats, 30)
	model.height = 20

	require.True(t, model.needsPagination())
	assert.Equal(t, 8, model.itemsPerPage())
	assert.Equal(t, 22, model.maxOffset())

	press := func(cm catalogModel, key string) catalogModel {
		next, _ := cm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		return next.(catalogModel)
	}

	model = press(model, "j")
	assert.Equal(t, 1, model.offset)

	model = press(model, "G")
	assert.Equal(t, 22, model.offset)

	model = press(model, "d")
	assert.Equal(t, 22, model.offset)

	model = press(model, "u")
	assert.Equal(t, 14, model.offset)

	model = press(model, "g")
	assert.Equal(t, 0, model.offset)

	model = press(model, "k")
	assert.Equal(t, 0, model.offset)

	view := model.View()
	assert.Contains(t, view, "Page 1/4 | Showing 1-8 of 30")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestCampaignModel_Update(t *testing.T) {
	spec := catalogSpecs()[0]
	swept := catalogSpecs()[3]

	var model tea.Model = newCampaignModel(4, nil)

	model, _ = model.Update(campaignInfoMsg{mutants: 4, parallel: 2})
	model, _ = model.Update(sessionStartedMsg{spec: spec, id: "session-one"})
	model, _ = model.Update(sessionStepMsg{id: "session-one", state: m.StateExperimentStated})

	view := model.View()
	assert.Contains(t, view, "0/4 mutants processed (2 worker(s))")
	assert.Contains(t, view, "session-")
	assert.Contains(t, view, "experiment_stated (step 1)")

	model, _ = model.Update(entryMsg{
		entry: m.CampaignEntry{
			Result: m.SessionResult{ID: "session-one", Problem: m.ProblemDescription{Name: string(spec.ID())}, MutantKilled: true},
			Killed: []m.KilledMutant{{Spec: spec}, {Spec: swept, ViaSweep: true}},
		},
		status: m.CampaignStatus{Total: 4, Queued: 2, Alive: 2, Killed: 2, Sessions: 1},
	})

	cm := model.(campaignModel)
	assert.Empty(t, cm.active)
	require.Len(t, cm.recent, 1)
	assert.Contains(t, cm.recent[0], "calc.go:add_sub:0 -> killed")
	assert.Contains(t, cm.recent[0], "swept geometry/geometry.go:mul_div:0")
	assert.InDelta(t, 0.5, cm.done(), 1e-9)

	model, _ = model.Update(summaryMsg{summary: m.CampaignSummary{Mutants: 4, Killed: 2, Score: 0.5}})
	assert.Contains(t, model.View(), "Mutation score: 50.00%")

	model, cmd := model.Update(finishedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.NotContains(t, model.View(), "ctrl+c")
}

func TestCampaignModel_RecentIsBounded(t *testing.T) {
	var model tea.Model = newCampaignModel(20, nil)

	for i := range 20 {
		model, _ = model.Update(entryMsg{entry: m.CampaignEntry{
			Result: m.SessionResult{ID: strings.Repeat("x", i+1), FinalState: m.StateAborted},
		}})
	}

	assert.Len(t, model.(campaignModel).recent, recentEntries)
}

func TestCampaignModel_InterruptCancels(t *testing.T) {
	cancelled := false
	model := newCampaignModel(1, func() { cancelled = true })

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.True(t, cancelled)
}

func TestTUI_DisplaySummaryWithoutMonitor(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	tui.DisplaySummary(context.Background(), m.CampaignSummary{Mutants: 2, Killed: 1, Score: 0.5})

	assert.Contains(t, buf.String(), "Mutation score: 50.00%")
}

func TestTUI_DisplaySession(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)

	err := tui.DisplaySession(context.Background(), m.SessionResult{
		ID:           "abc",
		FinalState:   m.StateDone,
		MutantKilled: true,
		Conversation: []m.Message{{Role: m.RoleUser, Content: "hello", Tag: m.StateInitial}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "guut - session")
	assert.Contains(t, out, "Killed:      true")
	assert.Contains(t, out, "user [initial]")
	assert.Contains(t, out, "hello")
}

func TestTUI_MonitorLifecycle(t *testing.T) {
	var buf bytes.Buffer
	tui := NewTUI(&buf)
	tui.input = strings.NewReader("")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, tui.Start(ctx, WithCampaignMode(1)))
	require.Error(t, tui.Start(ctx, WithCampaignMode(1)))

	tui.DisplayCampaignInfo(ctx, 1, 1)
	tui.Close(ctx)
	tui.Wait(ctx)

	require.NoError(t, ctx.Err())
	assert.Contains(t, buf.String(), "mutants processed")

	// Once the monitor is gone the summary is printed directly.
	buf.Reset()
	tui.DisplaySummary(ctx, m.CampaignSummary{Score: 1})
	assert.Contains(t, buf.String(), "Mutation score: 100.00%")
}
