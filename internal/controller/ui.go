// Package controller provides output adapters for displaying catalogs,
// campaigns and sessions.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "guut.dev/pkg/guut/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeCatalog StartMode = iota
	ModeSession
	ModeCampaign
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode  StartMode
	total int
}

// WithCatalogMode sets the UI to catalog mode.
func WithCatalogMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCatalog
	}
}

// WithSessionMode sets the UI to single session mode.
func WithSessionMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeSession
		c.total = 1
	}
}

// WithCampaignMode sets the UI to campaign mode over total mutants.
func WithCampaignMode(total int) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCampaign
		c.total = total
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	cfg := StartConfig{mode: ModeCatalog}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for reporting guut's progress.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayCatalog(ctx context.Context, specs []m.MutantSpec, err error) error
	DisplayProblem(ctx context.Context, desc m.ProblemDescription, prompt string) error
	DisplayCampaignInfo(ctx context.Context, mutants int, parallel int)
	DisplaySessionStarted(ctx context.Context, spec m.MutantSpec, sessionID string)
	DisplaySessionStep(ctx context.Context, sessionID string, state m.State)
	DisplayCampaignEntry(ctx context.Context, entry m.CampaignEntry, status m.CampaignStatus)
	DisplaySession(ctx context.Context, result m.SessionResult) error
	DisplaySummary(ctx context.Context, summary m.CampaignSummary)
}

// NewUI picks the TUI for terminals and SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) // #nosec G115 - file descriptors fit in int
}
