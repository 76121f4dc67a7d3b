package cmd

import (
	"github.com/spf13/cobra"

	"guut.dev/pkg/guut/internal/domain"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [session-id]",
		Short: "View stored campaign or session results",
		Long: `Without arguments, show the summary of the last campaign in the output
directory. With a session ID or a path to a session JSON file, show that
session and its conversation.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			viewArgs := domain.ViewArgs{Output: outputPath()}
			if len(args) == 1 {
				viewArgs.Session = args[0]
			}

			return workflow.View(cmd.Context(), viewArgs)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
