package cmd

import (
	"github.com/spf13/cobra"

	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

// showCmd represents the show command.
var showCmd = newShowCmd()

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <mutant-id>",
		Short: "Show the problem description of a mutant",
		Long: `Print the prompt that introduces a mutant to the model: the target source
with line numbers, the mutant diff and the import paths of both versions.

Mutant IDs have the form path:operator:occurrence, as printed by "guut list".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := newSessionEnv(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer env.Close(ctx)

			return workflow.Show(ctx, domain.ShowArgs{
				Catalog:  env.args.Catalog,
				Mutant:   m.MutantID(args[0]),
				Problems: env.args.Problems,
				Prompts:  env.args.Prompts,
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(showCmd)
}
