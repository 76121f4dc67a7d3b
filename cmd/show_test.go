package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

func TestShowCmd_PassesMutant(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newShowCmd())

	mockWorkflow.EXPECT().Show(mock.Anything, mock.MatchedBy(func(args domain.ShowArgs) bool {
		return args.Mutant == m.MutantID("calc.go:comparison/lss_leq:1") &&
			args.Problems != nil &&
			args.Prompts != nil
	})).Return(nil).Once()

	cmd.SetArgs([]string{"show", "calc.go:comparison/lss_leq:1", "--module", calcModule, "--no-cache", "--output", t.TempDir()})
	require.NoError(t, cmd.Execute())
}

func TestShowCmd_NeedsOneMutant(t *testing.T) {
	withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newShowCmd())

	cmd.SetArgs([]string{"show"})
	require.Error(t, cmd.Execute())
}
