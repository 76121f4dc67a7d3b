package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default guut.yaml configuration file",
		Long: `Create a guut.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.

The session section holds the limits of the configured preset. Values in the
file replace the preset's, so delete a key to follow the preset again.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := initialConfig()
			if err != nil {
				return err
			}

			targetPath := filepath.Join(configFolderPath, configFileName)

			err = config.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

// initialConfig copies the current settings and adds the resolved session
// limits. Those have no viper defaults since a default would count as set.
func initialConfig() (*viper.Viper, error) {
	settings, err := sessionSettings()
	if err != nil {
		return nil, err
	}

	config := viper.New()
	config.SetConfigType("yaml")

	if err := config.MergeConfigMap(viper.AllSettings()); err != nil {
		return nil, fmt.Errorf("failed to copy settings: %w", err)
	}

	config.Set(sessionMaxExperimentsKey, settings.MaxNumExperiments)
	config.Set(sessionMaxRetriesKey, settings.MaxRetriesForInvalidTest)
	config.Set(sessionMaxIncompleteKey, settings.MaxNumIncompleteResponses)
	config.Set(sessionMaxTurnsKey, settings.MaxNumTurns)
	config.Set(sessionTestAfterTurnKey, settings.TestInstructionsAfterTurn)
	config.Set(sessionIncludeExampleKey, settings.IncludeExample)

	return config, nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
