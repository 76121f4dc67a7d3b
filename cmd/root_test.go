package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainmocks "guut.dev/pkg/guut/internal/domain/mocks"
	m "guut.dev/pkg/guut/internal/model"
)

func TestMain(tm *testing.M) {
	logDir, err := os.MkdirTemp("", "guut-cmd-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Keep the rotating log out of the package directory.
	_ = os.Setenv("GUUT_LOG_FILENAME", filepath.Join(logDir, "guut.log"))

	code := tm.Run()

	_ = os.RemoveAll(logDir)
	os.Exit(code)
}

// withMockWorkflow swaps the global workflow for a mock until the test ends.
func withMockWorkflow(t *testing.T) *domainmocks.MockWorkflow {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return mockWorkflow
}

// newTestRootCmd builds a root command with sub attached and silenced output.
func newTestRootCmd(sub *cobra.Command) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}

	cmd := newRootCmd()
	cmd.AddCommand(sub)
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	return cmd, out
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()
	assert.Equal(t, "guut", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.Equal(t, rootLongDescription, cmd.Long)

	for _, name := range []string{outputFlagName, noCacheFlagName, moduleFlagName, catalogFlagName, verboseFlagName} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_HelpOutput(t *testing.T) {
	cmd := newRootCmd()
	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{})
	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, output.String(), "Usage:")
	assert.Contains(t, output.String(), "guut catalog")
}

func TestInit(t *testing.T) {
	assert.NotNil(t, ui)
	assert.NotNil(t, goFileAdapter)
	assert.NotNil(t, sourceFSAdapter)
	assert.NotNil(t, mutagen)
	assert.NotNil(t, workflow)

	names := make([]string, 0, len(rootCmd.Commands()))
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"init", "catalog", "list", "show", "run", "campaign", "view", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestModulePath(t *testing.T) {
	cmd, _ := newTestRootCmd(&cobra.Command{Use: "noop", RunE: func(*cobra.Command, []string) error { return nil }})
	cmd.SetArgs([]string{"noop", "--module", "../examples/calc"})
	require.NoError(t, cmd.Execute())

	root, err := modulePath()
	require.NoError(t, err)

	want, err := filepath.Abs("../examples/calc")
	require.NoError(t, err)
	assert.Equal(t, m.Path(want), root)
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()

	rootCmd = originalRootCmd
}

func TestExecute_ProcessLevel_Success(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Println("success")
				return nil
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Success")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS=1")
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, string(output), "success")
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		originalRootCmd := rootCmd
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd
		defer func() { rootCmd = originalRootCmd }()

		Execute()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	require.Error(t, err)

	if exitErr, ok := err.(*exec.ExitError); ok {
		assert.Equal(t, 1, exitErr.ExitCode())
	} else {
		assert.Fail(t, "expected exec.ExitError", "got %T", err)
	}

	assert.Contains(t, string(output), "error occurred")
}
