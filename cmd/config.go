package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"hlsweep.dev/pkg/hlsweep/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "hlsweep"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	resultsDirFlagName = "results-dir"
	buildDirFlagName   = "build-dir"
	toolFlagName       = "tool"
	plainFlagName      = "plain"
	verboseFlagName    = "verbose"

	paramFlagName    = "param"
	valuesFlagName   = "values"
	rangeFlagName    = "range"
	topFlagName      = "top"
	sourceFlagName   = "source"
	tbFlagName       = "tb"
	macroFlagName    = "macro"
	partFlagName     = "part"
	clockFlagName    = "clock"
	timeoutFlagName  = "timeout"
	parallelFlagName = "parallel"
	failFastFlagName = "fail-fast"
	csimFlagName     = "csim"
	cosimFlagName    = "cosim"
	exportFlagName   = "export"

	resultsDirConfigKey = "paths.results"
	buildDirConfigKey   = "paths.build"

	toolBinaryKey      = "tool.binary"
	toolPartKey        = "tool.part"
	toolClockKey       = "tool.clock_period"
	toolMarkersKey     = "tool.failure_markers"
	toolProjectKey     = "tool.project"
	toolSolutionKey    = "tool.solution"
	toolTopKey         = "tool.top"
	toolMacroKey       = "tool.macro"
	toolSourcesKey     = "tool.sources"
	toolTestbenchesKey = "tool.testbenches"

	runParallelKey = "run.parallel"
	runTimeoutKey  = "run.timeout"
	runFailFastKey = "run.fail_fast"
	runCsimKey     = "run.csim"
	runCosimKey    = "run.cosim"
	runExportKey   = "run.export"

	reportTemplateKey  = "report.path_template"
	reportQualifierKey = "report.qualifier"
	reportMetricKey    = "report.metric"
	reportExtKey       = "report.ext"

	defaultResultsDir  = ".hlsweep-results"
	defaultBuildDir    = ".hlsweep-build"
	defaultToolBinary  = "vitis_hls"
	defaultPart        = "xc7z020clg400-1"
	defaultClockPeriod = "10"
	defaultProject     = "proj"
	defaultSolution    = "solution1"
	defaultMacro       = "UNROLL_FACTOR"
	defaultMetric      = "report"
	defaultExt         = "xml"
	defaultRunParallel = 1
	defaultRunTimeout  = time.Hour

	// SummaryFileName is the sweep summary written next to the artifacts.
	SummaryFileName = "sweep_summary.yaml"

	envPrefix = "HLSWEEP"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".hlsweep.log"
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

	viper.SetDefault(resultsDirConfigKey, defaultResultsDir)
	viper.SetDefault(buildDirConfigKey, defaultBuildDir)

	viper.SetDefault(toolBinaryKey, defaultToolBinary)
	viper.SetDefault(toolPartKey, defaultPart)
	viper.SetDefault(toolClockKey, defaultClockPeriod)
	viper.SetDefault(toolMarkersKey, []string{"ERROR:"})
	viper.SetDefault(toolProjectKey, defaultProject)
	viper.SetDefault(toolSolutionKey, defaultSolution)
	viper.SetDefault(toolTopKey, "")
	viper.SetDefault(toolMacroKey, defaultMacro)
	viper.SetDefault(toolSourcesKey, []string{})
	viper.SetDefault(toolTestbenchesKey, []string{})

	viper.SetDefault(runParallelKey, defaultRunParallel)
	viper.SetDefault(runTimeoutKey, int64(defaultRunTimeout.Seconds()))
	viper.SetDefault(runFailFastKey, false)
	viper.SetDefault(runCsimKey, false)
	viper.SetDefault(runCosimKey, false)
	viper.SetDefault(runExportKey, false)

	viper.SetDefault(reportTemplateKey, domain.DefaultReportPathTemplate)
	viper.SetDefault(reportQualifierKey, "")
	viper.SetDefault(reportMetricKey, defaultMetric)
	viper.SetDefault(reportExtKey, defaultExt)

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
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
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

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
