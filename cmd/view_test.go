package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

func TestViewCmd_UsesRootOutputFlagByDefault(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newViewCmd())

	mockWorkflow.EXPECT().View(mock.Anything, domain.ViewArgs{Output: m.Path(defaultOutputDir)}).Return(nil).Once()

	cmd.SetArgs([]string{"view"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_RootOutputFlagIsPassedThrough(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newViewCmd())

	mockWorkflow.EXPECT().View(mock.Anything, domain.ViewArgs{Output: m.Path("./results-dir")}).Return(nil).Once()

	cmd.SetArgs([]string{"view", "--output", "./results-dir"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_Session(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newViewCmd())

	mockWorkflow.EXPECT().View(mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Session == "0f3c"
	})).Return(nil).Once()

	cmd.SetArgs([]string{"view", "0f3c"})
	require.NoError(t, cmd.Execute())
}

func TestViewCmd_TooManyArgsAreRejected(t *testing.T) {
	withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newViewCmd())

	cmd.SetArgs([]string{"view", "a", "b"})
	require.Error(t, cmd.Execute())
}
