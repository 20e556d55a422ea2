package logging

// Config is the "logging" section of the ccsessions config file.
type Config struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	// CCSESSIONS_LOG_LEVEL overrides it.
	Level string `yaml:"level"`

	// ReportCaller adds file, line and function to each entry.
	// CCSESSIONS_LOG_CALLER=true enables it.
	ReportCaller bool `yaml:"report_caller"`

	File   FileSinkConfig `yaml:"file"`
	Format FormatConfig   `yaml:"format"`
}

// FileSinkConfig configures the file logging sink.
type FileSinkConfig struct {
	// Disabled turns off the default daily log file under the state dir.
	Disabled bool `yaml:"disabled"`
	// Path overrides the default log file location.
	Path string `yaml:"path"`
}

// FormatConfig controls the log output format.
type FormatConfig struct {
	// Preset can be "default" (rich text), "simple" (minimal text), or "json".
	Preset           string `yaml:"preset"`
	DisableTimestamp bool   `yaml:"disable_timestamp"`
	DisableComponent bool   `yaml:"disable_component"`
	// StructuredToStderr is "auto" (default), "always", or "never". "auto"
	// writes to stderr only when stderr is not a terminal.
	StructuredToStderr string `yaml:"structured_to_stderr"`
}
