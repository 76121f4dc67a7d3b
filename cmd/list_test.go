package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

func TestListCmd_UsesCatalogFlag(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newListCmd())

	mockWorkflow.EXPECT().List(mock.Anything, domain.ListArgs{Catalog: m.Path("custom.yaml")}).Return(nil).Once()

	cmd.SetArgs([]string{"list", "--catalog", "custom.yaml"})
	require.NoError(t, cmd.Execute())
}

func TestListCmd_PropagatesError(t *testing.T) {
	mockWorkflow := withMockWorkflow(t)
	cmd, _ := newTestRootCmd(newListCmd())

	boom := errors.New("no catalog")
	mockWorkflow.EXPECT().List(mock.Anything, mock.Anything).Return(boom).Once()

	cmd.SetArgs([]string{"list"})
	require.ErrorIs(t, cmd.Execute(), boom)
}
