package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/ccsessions/config"
	"github.com/grovetools/ccsessions/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// outputOverride, when set, replaces every sink. Used by tests and --verbose.
	outputOverride io.Writer
	levelOverride  *logrus.Level

	// source is the config set by Configure; nil means the default file.
	source *config.Config
)

// NewLogger returns the cached logger for a component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logger := logrus.New()
	configure(logger, loggingConfig(source))

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure makes cfg the source of the "logging" section, replacing the
// default config file, and reconfigures every logger created so far.
func Configure(cfg *config.Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	source = cfg
	logCfg := loggingConfig(cfg)
	for _, entry := range loggers {
		configure(entry.Logger, logCfg)
	}
}

// loggingConfig decodes the "logging" section of cfg, or of the default
// config file when cfg is nil.
func loggingConfig(cfg *config.Config) Config {
	var logCfg Config
	if cfg == nil {
		loaded, err := config.LoadDefault()
		if err != nil {
			return logCfg
		}
		cfg = loaded
	}
	if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
		logrus.Warnf("Failed to parse 'logging' config: %v", err)
	}
	return logCfg
}

func configure(logger *logrus.Logger, logCfg Config) {
	levelStr := "info"
	if env := os.Getenv("CCSESSIONS_LOG_LEVEL"); env != "" {
		levelStr = env
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	if levelOverride != nil {
		level = *levelOverride
	}
	logger.SetLevel(level)

	logger.SetReportCaller(os.Getenv("CCSESSIONS_LOG_CALLER") == "true" || logCfg.ReportCaller)

	switch logCfg.Format.Preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	if outputOverride != nil {
		logger.SetOutput(outputOverride)
	} else {
		logger.SetOutput(buildOutput(logger, logCfg))
	}
}

// SetOutput redirects every logger, existing and future, to w.
func SetOutput(w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	outputOverride = w
	for _, entry := range loggers {
		entry.Logger.SetOutput(w)
	}
}

// SetLevel changes the level of every logger, existing and future.
func SetLevel(level logrus.Level) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	levelOverride = &level
	for _, entry := range loggers {
		entry.Logger.SetLevel(level)
	}
}

// Reset drops cached loggers so the next NewLogger call reconfigures.
func Reset() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	loggers = make(map[string]*logrus.Entry)
	outputOverride = nil
	levelOverride = nil
	source = nil
}

func buildOutput(logger *logrus.Logger, logCfg Config) io.Writer {
	var writers []io.Writer

	if !logCfg.File.Disabled {
		logFilePath := expandPath(logCfg.File.Path)
		if logFilePath == "" {
			logFilePath = filepath.Join(paths.LogDir(), fmt.Sprintf("ccsessions-%s.log", time.Now().Format("2006-01-02")))
		}
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err == nil {
			file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				writers = append(writers, file)
			}
		}
	}

	stderrMode := logCfg.Format.StructuredToStderr
	if stderrMode == "" {
		stderrMode = "auto"
	}
	switch stderrMode {
	case "always":
		writers = append(writers, os.Stderr)
	case "auto":
		// An interactive stderr belongs to the TUI.
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		if !isInteractive && logger.GetLevel() >= logrus.WarnLevel {
			writers = append(writers, os.Stderr)
		}
	}

	switch len(writers) {
	case 0:
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

// expandPath expands tilde in file paths
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
