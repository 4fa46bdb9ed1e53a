package domain

import "time"

const (
	// DefaultSettingsPath is the settings file read when no --config flag is given.
	DefaultSettingsPath = "config/default.yml"
	// LocalSettingsBase is the base name of the optional override file next to the settings file.
	LocalSettingsBase = "local"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "REMOTEX_"
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = "127.0.0.1:8080"
	// DefaultShutdownTimeout bounds graceful HTTP shutdown.
	DefaultShutdownTimeout = 10 * time.Second
	// DefaultMetricsPath is the route of the Prometheus handler.
	DefaultMetricsPath = "/metrics"
)

// Settings is the fully assembled service configuration.
type Settings struct {
	// Path is the primary settings file the values were loaded from.
	Path string
	// Projects lists project files or doublestar patterns, relative to Path's directory.
	Projects  []string
	Web       WebSettings
	Log       LogSettings
	Execution ExecutionSettings
	Metrics   MetricsSettings
}

// WebSettings configures the HTTP listener.
type WebSettings struct {
	Addr            string
	ShutdownTimeout time.Duration
	// MaxConcurrentExecutions bounds simultaneous executions. Zero means unbounded.
	MaxConcurrentExecutions int
}

// LogSettings configures the logger.
type LogSettings struct {
	Level string
	JSON  bool
}

// ExecutionSettings configures the task execution engine.
type ExecutionSettings struct {
	DisabledProjects DisabledPolicy
	// TaskTimeout bounds each task. Zero means tasks may run forever.
	TaskTimeout time.Duration
}

// MetricsSettings configures the Prometheus endpoint.
type MetricsSettings struct {
	Enabled bool
	Path    string
}

// DefaultSettings returns the settings used before any file is applied.
func DefaultSettings() Settings {
	return Settings{
		Web: WebSettings{
			Addr:            DefaultAddr,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Log: LogSettings{
			Level: "info",
		},
		Execution: ExecutionSettings{
			DisabledProjects: DisabledExpose,
		},
		Metrics: MetricsSettings{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}
