package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"guut.dev/pkg/guut/internal/domain"
)

const spillDirName = "tmp"

var campaignParallelFlag int

// campaignCmd represents the campaign command.
var campaignCmd = newCampaignCmd()

func newCampaignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Debug every mutant of the catalog",
		Long: `Run debugging sessions over the catalog until every mutant is killed or has
had its session. After each killing test the test is replayed against the
other live mutants whose lines it covers, killing them without a session.

Progress is written to status.yaml and queue.yaml in the output directory
after every session; campaign.json and summary.yaml are written at the end,
also when the campaign is interrupted.`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindSessionFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := newSessionEnv(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer env.Close(ctx)

			_, err = workflow.Campaign(ctx, domain.CampaignArgs{
				SessionArgs: env.args,
				Parallel:    viper.GetInt(runParallelKey),
				SpillDir:    filepath.Join(string(env.args.Output), spillDirName),
			})

			return err
		},
	}

	cmd.Flags().IntVarP(&campaignParallelFlag, parallelFlagName, "p", viper.GetInt(runParallelKey), "number of sessions run in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), runParallelKey)
	configureSessionFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(campaignCmd)
}
