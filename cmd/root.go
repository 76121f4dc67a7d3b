// Package cmd provides the root command and CLI setup for guut.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/controller"
	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
)

var goFileAdapter adapter.GoFileAdapter
var sourceFSAdapter adapter.SourceFSAdapter
var mutagen domain.Mutagen
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that read/write results.
var outputDirFlag string

// noCacheFlag disables the execution cache when set.
var noCacheFlag bool

var moduleFlag string
var catalogFlag string
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	goFileAdapter = adapter.NewLocalGoFileAdapter()
	sourceFSAdapter = adapter.NewLocalSourceFSAdapter()
	mutagen = domain.NewMutagen(goFileAdapter, sourceFSAdapter)
	workflow = domain.NewWorkflow(ui, mutagen)
}

const rootLongDescription = `guut drives a language model through a scientific debugging conversation
until it writes a Go test that passes on your code and fails on a mutant of
it. Killing tests are then replayed against the other mutants of a campaign,
so covered mutants are killed without asking the model again.

Typical workflow:
  guut catalog          generate the mutant catalog of the module
  guut campaign         debug mutants until every one is killed or tried
  guut view             show the campaign summary`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "guut",
		Short:         "LLM-driven scientific debugging of Go mutants",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey), cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh root command with the persistent flags bound.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for sessions, campaign results and the cache",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&noCacheFlag, noCacheFlagName, viper.GetBool(noCacheFlagName), "disable the execution cache (re-run every test)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(noCacheFlagName), noCacheFlagName)

	cmd.PersistentFlags().StringVarP(&moduleFlag, moduleFlagName, "m", viper.GetString(moduleConfigKey), "root directory of the Go module under test")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(moduleFlagName), moduleConfigKey)

	cmd.PersistentFlags().StringVarP(&catalogFlag, catalogFlagName, "c", viper.GetString(catalogConfigKey), "mutant catalog file (.yaml, or .db/.sqlite for SQLite)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(catalogFlagName), catalogConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level and echo all log records to stderr")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// modulePath returns the absolute module root.
func modulePath() (m.Path, error) {
	root, err := filepath.Abs(viper.GetString(moduleConfigKey))
	if err != nil {
		return "", fmt.Errorf("failed to resolve module root: %w", err)
	}

	return m.Path(root), nil
}

func catalogPath() m.Path {
	return m.Path(viper.GetString(catalogConfigKey))
}

func outputPath() m.Path {
	return m.Path(viper.GetString(outputFlagName))
}
