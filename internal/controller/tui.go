package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "guut.dev/pkg/guut/internal/model"
)

const (
	// ANSI color codes for zero values (dark gray, faint).
	grayColor  = "\033[2;90m" // Faint + dark gray
	resetColor = "\033[0m"    // Reset

	recentEntries = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 2)
	killedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func renderTitle(subtitle string) string {
	return titleStyle.Render("guut - "+subtitle) + "\n\n"
}

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
	input  io.Reader

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	cancel  context.CancelFunc
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output, input: os.Stdin}
}

// WithInterrupt makes ctrl+c in the campaign monitor call cancel.
func (p *TUI) WithInterrupt(cancel context.CancelFunc) *TUI {
	p.cancel = cancel
	return p
}

func (p *TUI) terminalSize() (int, int) {
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd())) // #nosec G115 - file descriptors fit in int
		if err == nil {
			return width, height
		}
	}

	return 0, 0
}

// Start launches the progress monitor for sessions and campaigns. Catalogs
// are rendered on their own by DisplayCatalog.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options...)
	if cfg.mode == ModeCatalog {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.program != nil {
		return fmt.Errorf("ui already started")
	}

	model := newCampaignModel(cfg.total, p.cancel)
	model.width, model.height = p.terminalSize()

	p.program = tea.NewProgram(model, tea.WithOutput(p.output), tea.WithInput(p.input), tea.WithoutSignalHandler())
	p.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			_, _ = fmt.Fprintf(p.output, "ui error: %v\n", err)
		}
	}(p.program, p.done)

	return nil
}

func (p *TUI) send(msg tea.Msg) bool {
	p.mu.Lock()
	program := p.program
	p.mu.Unlock()

	if program == nil {
		return false
	}

	program.Send(msg)

	return true
}

// Close tells the monitor that no more events will come.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(finishedMsg{})
}

// Wait blocks until the monitor has exited.
func (p *TUI) Wait(ctx context.Context) {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	p.mu.Lock()
	p.program = nil
	p.done = nil
	p.mu.Unlock()
}

// DisplayCatalog shows the per-file mutant counts, paginated when they do
// not fit on screen.
func (p *TUI) DisplayCatalog(ctx context.Context, specs []m.MutantSpec, err error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err != nil {
		_, _ = fmt.Fprintf(p.output, "catalog error: %v\n", err)
		return err
	}

	model := newCatalogModel(buildFileStats(specs), len(specs))
	model.width, model.height = p.terminalSize()

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithInput(p.input), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayProblem prints the prompt that introduces a mutant to the model.
func (p *TUI) DisplayProblem(ctx context.Context, desc m.ProblemDescription, prompt string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(p.output, renderTitle(desc.Name)+prompt)

	return err
}

// DisplayCampaignInfo forwards the campaign size to the monitor.
func (p *TUI) DisplayCampaignInfo(ctx context.Context, mutants int, parallel int) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(campaignInfoMsg{mutants: mutants, parallel: parallel})
}

// DisplaySessionStarted adds a session to the monitor.
func (p *TUI) DisplaySessionStarted(ctx context.Context, spec m.MutantSpec, sessionID string) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(sessionStartedMsg{spec: spec, id: sessionID})
}

// DisplaySessionStep updates the state of a running session.
func (p *TUI) DisplaySessionStep(ctx context.Context, sessionID string, state m.State) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(sessionStepMsg{id: sessionID, state: state})
}

// DisplayCampaignEntry moves a finished session to the recent list.
func (p *TUI) DisplayCampaignEntry(ctx context.Context, entry m.CampaignEntry, status m.CampaignStatus) {
	if err := ctx.Err(); err != nil {
		return
	}

	p.send(entryMsg{entry: entry, status: status})
}

// DisplaySummary shows the summary in the monitor, or prints it when no
// monitor is running.
func (p *TUI) DisplaySummary(ctx context.Context, summary m.CampaignSummary) {
	if err := ctx.Err(); err != nil {
		return
	}

	if p.send(summaryMsg{summary: summary}) {
		return
	}

	_, _ = fmt.Fprint(p.output, renderSummary(summary))
}

// DisplaySession shows a finished session, scrollable when it does not fit
// on screen.
func (p *TUI) DisplaySession(ctx context.Context, result m.SessionResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content := renderSessionHeader(result) + "\n" + renderConversation(result.Conversation)
	width, height := p.terminalSize()

	if height == 0 || strings.Count(content, "\n") < height-4 {
		_, err := fmt.Fprint(p.output, renderTitle("session")+content)
		return err
	}

	model := newSessionModel(content, width, height)

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithInput(p.input), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func renderConversation(messages []m.Message) string {
	var b strings.Builder

	for _, msg := range messages {
		header := "── " + string(msg.Role)
		if msg.Tag != "" {
			header += " [" + string(msg.Tag) + "]"
		}

		b.WriteString(faintStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(msg.Content, "\n"))
		b.WriteString("\n\n")
	}

	return b.String()
}

func renderSummary(summary m.CampaignSummary) string {
	var b strings.Builder

	b.WriteString("\n  📊 Summary\n")
	fmt.Fprintf(&b, "  Mutants: %d | Killed: %s (direct %d, sweep %d) | Alive: %s\n",
		summary.Mutants,
		killedStyle.Render(fmt.Sprintf("%d", summary.Killed)), summary.DirectKills, summary.SweepKills,
		aliveStyle.Render(fmt.Sprintf("%d", summary.Alive)))
	fmt.Fprintf(&b, "  Sessions: %d | Done: %d | Aborted: %d | Failed: %d | Claimed equivalent: %d\n",
		summary.Sessions, summary.Done, summary.Aborted, summary.Failed, summary.ClaimedEquivalent)
	fmt.Fprintf(&b, "  Tokens: %d prompt, %d completion\n", summary.PromptTokens, summary.CompletionTokens)
	fmt.Fprintf(&b, "  Mutation score: %.2f%%\n", summary.Score*100)

	return b.String()
}

type (
	campaignInfoMsg struct {
		mutants  int
		parallel int
	}
	sessionStartedMsg struct {
		spec m.MutantSpec
		id   string
	}
	sessionStepMsg struct {
		id    string
		state m.State
	}
	entryMsg struct {
		entry  m.CampaignEntry
		status m.CampaignStatus
	}
	summaryMsg struct {
		summary m.CampaignSummary
	}
	finishedMsg struct{}
)

type activeSession struct {
	id    string
	spec  m.MutantSpec
	state m.State
	steps int
}

// campaignModel is the Bubble Tea model of the campaign monitor.
type campaignModel struct {
	spinner  spinner.Model
	progress progress.Model
	cancel   context.CancelFunc

	total    int
	parallel int
	status   m.CampaignStatus
	active   []activeSession
	recent   []string
	summary  *m.CampaignSummary

	width    int
	height   int
	finished bool
	quitting bool
}

func newCampaignModel(total int, cancel context.CancelFunc) campaignModel {
	return campaignModel{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		cancel:   cancel,
		total:    total,
		status:   m.CampaignStatus{Total: total, Alive: total, Queued: total},
	}
}

func (cm campaignModel) Init() tea.Cmd {
	return cm.spinner.Tick
}

func (cm campaignModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.width = msg.Width
		cm.height = msg.Height

		return cm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			cm.quitting = true
			if cm.cancel != nil {
				cm.cancel()
			}

			return cm, tea.Quit
		}

		return cm, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		cm.spinner, cmd = cm.spinner.Update(msg)

		return cm, cmd

	case campaignInfoMsg:
		cm.total = msg.mutants
		cm.parallel = msg.parallel
		cm.status.Total = msg.mutants

	case sessionStartedMsg:
		cm.active = append(cm.active, activeSession{id: msg.id, spec: msg.spec, state: m.StateEmpty})

	case sessionStepMsg:
		for i := range cm.active {
			if cm.active[i].id == msg.id {
				cm.active[i].state = msg.state
				cm.active[i].steps++
			}
		}

	case entryMsg:
		cm.finishSession(msg.entry)
		cm.status = msg.status

	case summaryMsg:
		summary := msg.summary
		cm.summary = &summary

	case finishedMsg:
		cm.finished = true
		return cm, tea.Quit
	}

	return cm, nil
}

func (cm *campaignModel) finishSession(entry m.CampaignEntry) {
	active := cm.active[:0]
	for _, session := range cm.active {
		if session.id != entry.Result.ID {
			active = append(active, session)
		}
	}

	cm.active = active

	line := fmt.Sprintf("%s %s -> %s", shortID(entry.Result.ID), entry.Result.Problem.Name, sessionOutcome(entry))
	if entry.Result.MutantKilled {
		line = killedStyle.Render(line)
	}

	for _, killed := range entry.Killed {
		if killed.ViaSweep {
			line += faintStyle.Render(fmt.Sprintf("\n    swept %s", killed.Spec.ID()))
		}
	}

	cm.recent = append(cm.recent, line)
	if len(cm.recent) > recentEntries {
		cm.recent = cm.recent[len(cm.recent)-recentEntries:]
	}
}

func (cm campaignModel) done() float64 {
	if cm.status.Total == 0 {
		return 1
	}

	return float64(cm.status.Total-cm.status.Queued) / float64(cm.status.Total)
}

func (cm campaignModel) View() string {
	var b strings.Builder

	b.WriteString(renderTitle("scientific debugging"))

	icon := cm.spinner.View()
	if cm.finished || cm.quitting {
		icon = "✓"
	}

	fmt.Fprintf(&b, "  %s %s  %d/%d mutants processed", icon, cm.progress.ViewAs(cm.done()),
		cm.status.Total-cm.status.Queued, cm.status.Total)

	if cm.parallel > 0 {
		fmt.Fprintf(&b, " (%d worker(s))", cm.parallel)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  killed %s · alive %s · queued %d · sessions %d\n\n",
		killedStyle.Render(fmt.Sprintf("%d", cm.status.Killed)),
		aliveStyle.Render(fmt.Sprintf("%d", cm.status.Alive)),
		cm.status.Queued, cm.status.Sessions)

	if len(cm.active) > 0 {
		b.WriteString("  Running:\n")

		for _, session := range cm.active {
			fmt.Fprintf(&b, "    %s %s %s\n", shortID(session.id), session.spec.ID(),
				faintStyle.Render(fmt.Sprintf("%s (step %d)", session.state, session.steps)))
		}

		b.WriteString("\n")
	}

	if len(cm.recent) > 0 {
		b.WriteString("  Recent:\n")

		for _, line := range cm.recent {
			b.WriteString("    " + line + "\n")
		}
	}

	if cm.summary != nil {
		b.WriteString(renderSummary(*cm.summary))
	}

	if !cm.finished && !cm.quitting {
		b.WriteString(faintStyle.Render("\n  ctrl+c: stop campaign") + "\n")
	}

	return b.String()
}

// catalogModel represents the Bubble Tea model for displaying catalog counts.
type catalogModel struct {
	stats    []fileStat
	total    int
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newCatalogModel(stats []fileStat, total int) catalogModel {
	return catalogModel{stats: stats, total: total}
}

func (cm catalogModel) Init() tea.Cmd {
	return nil
}

func (cm catalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cm.height = msg.Height
		cm.width = msg.Width

		return cm, nil

	case tea.KeyMsg:
		return cm.handleKeyPress(msg)
	}

	return cm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (cm catalogModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		cm.quitting = true
		return cm, tea.Quit
	default:
	}

	switch msg.String() {
	case "q":
		cm.quitting = true
		return cm, tea.Quit
	case "down", "j":
		cm.offset = min(cm.offset+1, cm.maxOffset())
	case "up", "k":
		cm.offset = max(cm.offset-1, 0)
	case "g", "home":
		cm.offset = 0
	case "G", "end":
		cm.offset = cm.maxOffset()
	case "d", "pgdown":
		cm.offset = min(cm.offset+cm.itemsPerPage(), cm.maxOffset())
	case "u", "pgup":
		cm.offset = max(cm.offset-cm.itemsPerPage(), 0)
	}

	return cm, nil
}

// itemsPerPage calculates how many items can fit on screen.
func (cm catalogModel) itemsPerPage() int {
	if cm.height == 0 {
		return 10
	}
	// Title box (4), heading (2), total (2), footer (3), margin (1).
	reserved := 12

	return max(cm.height-reserved, 1)
}

func (cm catalogModel) maxOffset() int {
	return max(len(cm.stats)-cm.itemsPerPage(), 0)
}

// needsPagination returns true if the list is too large to fit on screen.
func (cm catalogModel) needsPagination() bool {
	return len(cm.stats) > cm.itemsPerPage() && cm.height > 0
}

func (cm catalogModel) View() string {
	var b strings.Builder

	b.WriteString(renderTitle("mutant catalog"))

	if len(cm.stats) == 0 {
		b.WriteString("  📭 No mutants found\n")
		return b.String()
	}

	b.WriteString("  🔢 mutants per file:\n\n")

	perPage := cm.itemsPerPage()
	paginate := cm.needsPagination()

	start, end := 0, len(cm.stats)
	if paginate {
		start = min(cm.offset, len(cm.stats)-1)
		end = min(start+perPage, len(cm.stats))
	}

	width := 0
	for _, stat := range cm.stats {
		width = max(width, len(stat.path))
	}

	for _, stat := range cm.stats[start:end] {
		color := ""
		if stat.count == 0 {
			color = grayColor
		}

		fmt.Fprintf(&b, "  %-*s %s%4d%s  %s\n", width, stat.path, color, stat.count, resetColor,
			faintStyle.Render(stat.operatorSummary()))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  📊 Total: %d mutants across %d file(s)\n", cm.total, len(cm.stats))

	if paginate {
		b.WriteString("\n")

		currentPage := (cm.offset / perPage) + 1
		totalPages := (len(cm.stats) + perPage - 1) / perPage
		fmt.Fprintf(&b, "  Page %d/%d | Showing %d-%d of %d\n", currentPage, totalPages, start+1, end, len(cm.stats))
		b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")
	}

	return b.String()
}

// sessionModel scrolls through a rendered session.
type sessionModel struct {
	viewport viewport.Model
}

func newSessionModel(content string, width, height int) sessionModel {
	vp := viewport.New(width, max(height-2, 1))
	vp.SetContent(content)

	return sessionModel{viewport: vp}
}

func (sm sessionModel) Init() tea.Cmd {
	return nil
}

func (sm sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.viewport.Width = msg.Width
		sm.viewport.Height = max(msg.Height-2, 1)

		return sm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return sm, tea.Quit
		}
	}

	var cmd tea.Cmd
	sm.viewport, cmd = sm.viewport.Update(msg)

	return sm, cmd
}

func (sm sessionModel) View() string {
	return sm.viewport.View() + "\n" +
		faintStyle.Render(fmt.Sprintf("  %3.f%% | ↑/k ↓/j pgup pgdown | q: quit", sm.viewport.ScrollPercent()*100))
}
