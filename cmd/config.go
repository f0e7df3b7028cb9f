package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "fuzzmut"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName       = "output"
	excludeFlagName      = "exclude"
	verboseFlagName      = "verbose"
	strategyFlagName     = "strategy"
	seedFlagName         = "seed"
	minSeedIndexFlagName = "min-seed-index"
	countFlagName        = "count"
	runParallelFlagName  = "parallel"

	excludeConfigKey      = "paths.exclude"
	mutateStrategyKey     = "mutate.strategy"
	mutateMinSeedIndexKey = "mutate.min_seed_index"
	mutateSeedKey         = "mutate.seed"
	runStrategiesKey      = "run.strategies"
	runCountKey           = "run.count"
	runSeedKey            = "run.seed"
	runParallelConfigKey  = "run.parallel"
	runMinSeedIndexKey    = "run.min_seed_index"

	defaultOutputDir       = ".fuzzmut-out"
	defaultMutateStrategy  = "byte-flip"
	defaultMinSeedIndex    = 0
	defaultRunCount        = 10
	defaultRunSeed         = 1
	defaultRunParallel     = 1
	defaultDotEnvFile      = ".env"
	envPrefix              = "FUZZMUT"
	defaultRunStrategyList = "byte-flip,byte-insert,byte-drop,line-swap,fuse-self"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".fuzzmut.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// A missing .env is fine; values already in the environment win.
	_ = godotenv.Load(filepath.Join(configFolderPath, defaultDotEnvFile))

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(mutateStrategyKey, defaultMutateStrategy)
	viper.SetDefault(mutateMinSeedIndexKey, defaultMinSeedIndex)
	viper.SetDefault(mutateSeedKey, defaultRunSeed)
	viper.SetDefault(runStrategiesKey, strings.Split(defaultRunStrategyList, ","))
	viper.SetDefault(runCountKey, defaultRunCount)
	viper.SetDefault(runSeedKey, defaultRunSeed)
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runMinSeedIndexKey, defaultMinSeedIndex)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := readConfig(); err != nil {
		slog.Warn("Ignoring configuration file", "path", viper.ConfigFileUsed(), "error", err)
	}
}

// readConfig loads fuzzmut.yaml. A missing file is not an error.
func readConfig() error {
	err := viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read %s: %w", configFileName, err)
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
