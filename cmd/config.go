package cmd

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	m "guut.dev/pkg/guut/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "guut"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName   = "output"
	noCacheFlagName  = "no-cache"
	moduleFlagName   = "module"
	catalogFlagName  = "catalog"
	verboseFlagName  = "verbose"
	parallelFlagName = "parallel"
	timeoutFlagName  = "timeout"
	presetFlagName   = "preset"
	endpointFlagName = "endpoint"
	modelFlagName    = "model"
	replayFlagName   = "replay-file"
	safeguardFlag    = "safeguard"
	operatorFlagName = "operator"
	threadsFlagName  = "threads"

	catalogConfigKey  = "catalog.path"
	moduleConfigKey   = "module"
	runParallelKey    = "run.parallel"
	runTimeoutKey     = "run.timeout"
	runPresetKey      = "run.preset"
	catalogThreadsKey = "catalog.threads"

	sessionMaxExperimentsKey = "session.max_num_experiments"
	sessionMaxRetriesKey     = "session.max_retries_for_invalid_test"
	sessionMaxIncompleteKey  = "session.max_num_incomplete_responses"
	sessionMaxTurnsKey       = "session.max_num_turns"
	sessionTestAfterTurnKey  = "session.test_instructions_after_turn"
	sessionIncludeExampleKey = "session.include_example"

	llmEndpointKey    = "llm.endpoint"
	llmModelKey       = "llm.model"
	llmBaseURLKey     = "llm.base_url"
	llmAPIKeyKey      = "llm.api_key"
	llmMaxTokensKey   = "llm.max_tokens"
	llmTemperatureKey = "llm.temperature"
	llmReplayFileKey  = "llm.replay_file"
	llmSafeguardKey   = "llm.safeguard"

	debuggerCommandKey = "debugger.command"

	telemetryTraceFileKey   = "telemetry.trace_file"
	telemetryMetricsAddrKey = "telemetry.metrics_addr"

	endpointOpenAI = "openai"
	endpointReplay = "replay"

	defaultOutputDir       = ".guut"
	defaultCatalog         = defaultOutputDir + "/catalog.yaml"
	defaultModule          = "."
	defaultNoCache         = false
	defaultRunParallel     = 1
	defaultRunTimeout      = time.Minute
	defaultCatalogThreads  = 4
	defaultLLMEndpoint     = endpointOpenAI
	defaultLLMModel        = "gpt-4o-mini"
	defaultLLMMaxTokens    = 2000
	defaultLLMTemperature  = 1.0
	defaultDebuggerCommand = "dlv"

	envPrefix = "GUUT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".guut.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)
	viper.SetDefault(noCacheFlagName, defaultNoCache)
	viper.SetDefault(moduleConfigKey, defaultModule)
	viper.SetDefault(catalogConfigKey, defaultCatalog)
	viper.SetDefault(catalogThreadsKey, defaultCatalogThreads)
	viper.SetDefault(runParallelKey, defaultRunParallel)
	viper.SetDefault(runTimeoutKey, int64(defaultRunTimeout.Seconds()))
	viper.SetDefault(runPresetKey, m.PresetDebuggingOneShot)

	viper.SetDefault(llmEndpointKey, defaultLLMEndpoint)
	viper.SetDefault(llmModelKey, defaultLLMModel)
	viper.SetDefault(llmBaseURLKey, "")
	viper.SetDefault(llmAPIKeyKey, "")
	viper.SetDefault(llmMaxTokensKey, defaultLLMMaxTokens)
	viper.SetDefault(llmTemperatureKey, defaultLLMTemperature)
	viper.SetDefault(llmReplayFileKey, "")
	viper.SetDefault(llmSafeguardKey, false)

	viper.SetDefault(debuggerCommandKey, defaultDebuggerCommand)

	viper.SetDefault(telemetryTraceFileKey, "")
	viper.SetDefault(telemetryMetricsAddrKey, "")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// Records go to a rotating log file. Warnings and errors are also written to
// stderr; with verbose everything is, at Debug level.
func configureLogger(logPath string, verbose bool, stderr io.Writer) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	fileHandler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	consoleLevel := slog.LevelWarn
	if verbose {
		consoleLevel = slog.LevelDebug
	}

	consoleHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: consoleLevel})

	globalLogger = slog.New(slogmulti.Fanout(fileHandler, consoleHandler))
	slog.SetDefault(globalLogger)
}
