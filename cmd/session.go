package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"guut.dev/pkg/guut/internal/adapter"
	"guut.dev/pkg/guut/internal/domain"
	m "guut.dev/pkg/guut/internal/model"
	"guut.dev/pkg/guut/internal/telemetry"
)

const cacheDirName = "cache"

// sessionEnv bundles the dependencies of commands that run sessions.
type sessionEnv struct {
	args    domain.SessionArgs
	closers []func(context.Context) error
}

// Close releases the cache and flushes telemetry.
func (e *sessionEnv) Close(ctx context.Context) {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](ctx); err != nil {
			slog.Warn("Failed to release resource", "error", err)
		}
	}
}

// newSessionEnv builds the problem factory, prompts and settings. The
// endpoint is only created when withEndpoint is set.
func newSessionEnv(ctx context.Context, cmd *cobra.Command, withEndpoint bool) (*sessionEnv, error) {
	env := &sessionEnv{}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    configBaseName,
		ServiceVersion: toolVersion(),
		TraceFile:      viper.GetString(telemetryTraceFileKey),
		MetricsAddr:    viper.GetString(telemetryMetricsAddrKey),
	})
	if err != nil {
		return nil, err
	}

	env.closers = append(env.closers, shutdown)

	settings, err := sessionSettings()
	if err != nil {
		env.Close(ctx)
		return nil, err
	}

	prompts, err := domain.NewPromptCollection()
	if err != nil {
		env.Close(ctx)
		return nil, err
	}

	cache, err := executionCache()
	if err != nil {
		env.Close(ctx)
		return nil, err
	}

	env.closers = append(env.closers, func(context.Context) error { return cache.Close() })

	problems, err := problemFactory(cache)
	if err != nil {
		env.Close(ctx)
		return nil, err
	}

	env.args = domain.SessionArgs{
		Catalog:  catalogPath(),
		Output:   outputPath(),
		Problems: problems,
		Prompts:  prompts,
		Settings: settings,
	}

	if withEndpoint {
		endpoint, err := newEndpoint(cmd)
		if err != nil {
			env.Close(ctx)
			return nil, err
		}

		env.args.Endpoint = endpoint
	}

	return env, nil
}

// sessionSettings starts from the configured preset and applies the
// session.* overrides.
func sessionSettings() (m.SessionSettings, error) {
	preset := viper.GetString(runPresetKey)

	settings, ok := m.PresetSettings(preset)
	if !ok {
		return m.SessionSettings{}, fmt.Errorf("unknown preset %q", preset)
	}

	overrides := []struct {
		key    string
		target *int
	}{
		{sessionMaxExperimentsKey, &settings.MaxNumExperiments},
		{sessionMaxRetriesKey, &settings.MaxRetriesForInvalidTest},
		{sessionMaxIncompleteKey, &settings.MaxNumIncompleteResponses},
		{sessionMaxTurnsKey, &settings.MaxNumTurns},
		{sessionTestAfterTurnKey, &settings.TestInstructionsAfterTurn},
	}

	for _, o := range overrides {
		if viper.IsSet(o.key) {
			*o.target = viper.GetInt(o.key)
		}
	}

	if viper.IsSet(sessionIncludeExampleKey) {
		settings.IncludeExample = viper.GetBool(sessionIncludeExampleKey)
	}

	return settings, nil
}

func executionCache() (adapter.ExecutionCache, error) {
	if viper.GetBool(noCacheFlagName) {
		return adapter.NopExecutionCache{}, nil
	}

	cache, err := adapter.NewBadgerExecutionCache(filepath.Join(string(outputPath()), cacheDirName))
	if err != nil {
		slog.Error("Failed to open execution cache", "error", err)
		return nil, err
	}

	return cache, nil
}

func problemFactory(cache adapter.ExecutionCache) (domain.ProblemFactory, error) {
	root, err := modulePath()
	if err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from configuration
	goMod, err := os.ReadFile(filepath.Join(string(root), "go.mod"))
	if err != nil {
		return nil, fmt.Errorf("failed to read go.mod of %s: %w", root, err)
	}

	module, err := goFileAdapter.ModulePath(goMod)
	if err != nil {
		return nil, err
	}

	timeout := time.Duration(viper.GetInt64(runTimeoutKey)) * time.Second

	return domain.NewProblemFactory(
		domain.ProblemConfig{
			Root:            root,
			ModulePath:      module,
			Timeout:         timeout,
			DebuggerCommand: viper.GetString(debuggerCommandKey),
		},
		mutagen,
		sourceFSAdapter,
		goFileAdapter,
		adapter.NewLocalTestRunnerAdapter(timeout),
		cache,
	), nil
}

// newEndpoint creates the configured endpoint, optionally behind the
// interactive safeguard, and always behind request logging.
func newEndpoint(cmd *cobra.Command) (adapter.Endpoint, error) {
	var endpoint adapter.Endpoint

	switch kind := viper.GetString(llmEndpointKey); kind {
	case endpointOpenAI:
		apiKey := viper.GetString(llmAPIKeyKey)
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}

		openAI, err := adapter.NewOpenAIEndpoint(adapter.OpenAIConfig{
			APIKey:      apiKey,
			BaseURL:     viper.GetString(llmBaseURLKey),
			Model:       viper.GetString(llmModelKey),
			MaxTokens:   viper.GetInt(llmMaxTokensKey),
			Temperature: float32(viper.GetFloat64(llmTemperatureKey)),
		})
		if err != nil {
			return nil, err
		}

		endpoint = openAI
	case endpointReplay:
		path := viper.GetString(llmReplayFileKey)
		if path == "" {
			return nil, errors.New("replay endpoint needs --replay-file")
		}

		replay, err := adapter.LoadReplayEndpoint(m.Path(path))
		if err != nil {
			return nil, err
		}

		endpoint = replay
	default:
		return nil, fmt.Errorf("unknown endpoint %q", kind)
	}

	if viper.GetBool(llmSafeguardKey) {
		endpoint = adapter.NewSafeguardEndpoint(endpoint, cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	return adapter.NewLoggingEndpoint(endpoint), nil
}

// sessionFlags maps the flags shared by run and campaign to their config keys.
var sessionFlags = []struct {
	name string
	key  string
}{
	{presetFlagName, runPresetKey},
	{timeoutFlagName, runTimeoutKey},
	{endpointFlagName, llmEndpointKey},
	{modelFlagName, llmModelKey},
	{replayFlagName, llmReplayFileKey},
	{safeguardFlag, llmSafeguardKey},
}

// configureSessionFlags adds the flags shared by run and campaign.
func configureSessionFlags(cmd *cobra.Command) {
	cmd.Flags().String(presetFlagName, viper.GetString(runPresetKey), "session preset ("+presetNames()+")")
	cmd.Flags().Int64(timeoutFlagName, viper.GetInt64(runTimeoutKey), "timeout in seconds of one sandbox run")
	cmd.Flags().String(endpointFlagName, viper.GetString(llmEndpointKey), "completion endpoint (openai or replay)")
	cmd.Flags().String(modelFlagName, viper.GetString(llmModelKey), "model name for the openai endpoint")
	cmd.Flags().String(replayFlagName, viper.GetString(llmReplayFileKey), "YAML list of responses or saved session JSON for the replay endpoint")
	cmd.Flags().Bool(safeguardFlag, viper.GetBool(llmSafeguardKey), "ask for confirmation before every completion request")
}

// bindSessionFlags binds the shared flags of the executing command. Binding
// happens at run time because run and campaign share the config keys.
func bindSessionFlags(cmd *cobra.Command) {
	for _, f := range sessionFlags {
		bindFlagToConfig(cmd.Flags().Lookup(f.name), f.key)
	}
}

func presetNames() string {
	return m.PresetDebuggingOneShot + ", " +
		m.PresetDebuggingZeroShot + ", " +
		m.PresetBaselineWithIterations + ", " +
		m.PresetBaselineWithoutIterations
}
