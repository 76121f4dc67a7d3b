package cmd

import (
	"github.com/spf13/cobra"

	"guut.dev/pkg/guut/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the mutants of the catalog",
		Long:  "List the mutants of the catalog file per source file and operator.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{Catalog: catalogPath()})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
