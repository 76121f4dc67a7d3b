package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <mutant-id>",
		Short: "Run one debugging session against a mutant",
		Long: `Run a single scientific debugging session against one mutant of the catalog.
The session and its conversation are written to the output directory.`,
		Args: cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindSessionFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := newSessionEnv(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer env.Close(ctx)

			_, err = workflow.Run(ctx, domain.RunArgs{
				SessionArgs: env.args,
				Mutant:      m.MutantID(args[0]),
			})

			return err
		},
	}

	configureSessionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
