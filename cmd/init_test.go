package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	// Fresh, unchanged flags drop values left by earlier commands.
	bindSessionFlags(newRunCmd())

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.NoError(t, err)

	targetPath := filepath.Join(tempDir, configFileName)
	t.Cleanup(func() { _ = os.Remove(targetPath) })
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)

	var written struct {
		Run struct {
			Preset string `yaml:"preset"`
		} `yaml:"run"`
		Session map[string]any `yaml:"session"`
	}
	require.NoError(t, yaml.Unmarshal(contents, &written))

	preset, err := sessionSettings()
	require.NoError(t, err)

	assert.Equal(t, viper.GetString(runPresetKey), written.Run.Preset)
	assert.Equal(t, preset.Preset, written.Run.Preset)
	assert.Equal(t, preset.MaxNumTurns, written.Session["max_num_turns"])
	assert.Equal(t, preset.MaxRetriesForInvalidTest, written.Session["max_retries_for_invalid_test"])
	assert.Equal(t, preset.IncludeExample, written.Session["include_example"])
	assert.Contains(t, written.Session, "test_instructions_after_turn")
}

func TestInitCmd_DoesNotPinSessionLimits(t *testing.T) {
	bindSessionFlags(newRunCmd())

	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Writing the file leaves the running configuration untouched.
	assert.False(t, viper.IsSet(sessionMaxTurnsKey))
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))
	t.Cleanup(func() { _ = os.Remove(targetPath) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.Error(t, err)
}
