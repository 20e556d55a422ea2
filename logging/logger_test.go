package logging

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/grovetools/ccsessions/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CCSESSIONS_HOME", t.TempDir())
	Reset()
	t.Cleanup(Reset)
}

func TestNewLogger(t *testing.T) {
	isolate(t)

	logger := NewLogger("test-component")
	require.NotNil(t, logger)
	assert.Equal(t, "test-component", logger.Data["component"])

	// Cached per component.
	assert.Same(t, logger, NewLogger("test-component"))
}

func TestSetOutputRedirectsExistingLoggers(t *testing.T) {
	isolate(t)

	logger := NewLogger("redirect")
	var buf bytes.Buffer
	SetOutput(&buf)

	logger.Warn("something odd")
	assert.Contains(t, buf.String(), "something odd")
	assert.Contains(t, buf.String(), "[WARN]")
}

func TestEnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("CCSESSIONS_LOG_LEVEL", "debug")
	t.Setenv("CCSESSIONS_LOG_CALLER", "true")

	logger := NewLogger("env-test")
	assert.Equal(t, logrus.DebugLevel, logger.Logger.GetLevel())
	assert.True(t, logger.Logger.ReportCaller)
}

func TestLoggingExtensionFromConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CCSESSIONS_HOME", home)
	Reset()
	t.Cleanup(Reset)

	writeConfig(t, home, `
logging:
  level: error
  format:
    preset: json
`)

	logger := NewLogger("cfg-test")
	assert.Equal(t, logrus.ErrorLevel, logger.Logger.GetLevel())
	_, isJSON := logger.Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestConfigureUsesGivenConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CCSESSIONS_HOME", home)
	Reset()
	t.Cleanup(Reset)

	writeConfig(t, home, `
logging:
  level: warn
`)
	early := NewLogger("early")
	assert.Equal(t, logrus.WarnLevel, early.Logger.GetLevel())

	cfg, err := config.LoadFromBytes([]byte("logging:\n  level: debug\n  format:\n    preset: json\n"), "yaml")
	require.NoError(t, err)
	Configure(cfg)

	assert.Equal(t, logrus.DebugLevel, early.Logger.GetLevel(), "existing loggers follow the new config")
	later := NewLogger("later")
	assert.Equal(t, logrus.DebugLevel, later.Logger.GetLevel())
	_, isJSON := later.Logger.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&TextFormatter{})
	logger.SetLevel(logrus.WarnLevel)

	entry := logger.WithField("component", "test")
	entry.Debug("debug message")
	entry.Info("info message")
	entry.Warn("warn message")
	entry.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		config  FormatConfig
		entry   *logrus.Entry
		want    []string
		notWant []string
	}{
		{
			name:   "default format",
			config: FormatConfig{},
			entry: &logrus.Entry{
				Level:   logrus.InfoLevel,
				Message: "loaded sessions",
				Data: logrus.Fields{
					"component": "sessions",
					"count":     12,
				},
			},
			want: []string{"[INFO]", "sessions", "loaded sessions", "count=12"},
		},
		{
			name: "simple format",
			config: FormatConfig{
				DisableTimestamp: true,
				DisableComponent: true,
			},
			entry: &logrus.Entry{
				Level:   logrus.WarnLevel,
				Message: "skipped line",
				Data:    logrus.Fields{"component": "sessions"},
			},
			want:    []string{"[WARN]", "skipped line"},
			notWant: []string{"[sessions]"},
		},
		{
			name:   "caller information",
			config: FormatConfig{},
			entry: func() *logrus.Entry {
				logger := logrus.New()
				logger.SetReportCaller(true)
				return &logrus.Entry{
					Logger:  logger,
					Level:   logrus.InfoLevel,
					Message: "with caller",
					Data:    logrus.Fields{},
					Caller: &runtime.Frame{
						File:     "/path/to/parse.go",
						Line:     42,
						Function: "github.com/grovetools/ccsessions/pkg/sessions.parseFile",
					},
				}
			}(),
			want: []string{"[parse.go:42 sessions.parseFile]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := &TextFormatter{Config: tt.config}
			output, err := formatter.Format(tt.entry)
			require.NoError(t, err)

			for _, want := range tt.want {
				assert.Contains(t, string(output), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, string(output), notWant)
			}
		})
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	formatter := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	out, err := formatter.Format(&logrus.Entry{
		Level:   logrus.InfoLevel,
		Message: "m",
		Data:    logrus.Fields{"b": 2, "a": 1, "c": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "[INFO] m a=1 b=2 c=3\n", string(out))
}

func TestSetLevelAppliesToLaterLoggers(t *testing.T) {
	isolate(t)

	early := NewLogger("early")
	SetLevel(logrus.DebugLevel)
	late := NewLogger("late")

	assert.Equal(t, logrus.DebugLevel, early.Logger.GetLevel())
	assert.Equal(t, logrus.DebugLevel, late.Logger.GetLevel())
}
