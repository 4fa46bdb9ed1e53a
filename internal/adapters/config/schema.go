package config

import "time"

// SettingsFile represents the structure of the settings file and of its local override.
// Pointer fields distinguish an absent key from a zero value when files are layered.
type SettingsFile struct {
	Projects  []string      `yaml:"projects"`
	Web       *WebDTO       `yaml:"web"`
	Log       *LogDTO       `yaml:"log"`
	Execution *ExecutionDTO `yaml:"execution"`
	Metrics   *MetricsDTO   `yaml:"metrics"`
}

// WebDTO represents the web section of the settings file.
type WebDTO struct {
	Addr                    *string        `yaml:"addr"`
	ShutdownTimeout         *time.Duration `yaml:"shutdown_timeout"`
	MaxConcurrentExecutions *int           `yaml:"max_concurrent_executions"`
}

// LogDTO represents the log section of the settings file.
type LogDTO struct {
	Level *string `yaml:"level"`
	JSON  *bool   `yaml:"json"`
}

// ExecutionDTO represents the execution section of the settings file.
type ExecutionDTO struct {
	DisabledProjects *string        `yaml:"disabled_projects"`
	TaskTimeout      *time.Duration `yaml:"task_timeout"`
}

// MetricsDTO represents the metrics section of the settings file.
type MetricsDTO struct {
	Enabled *bool   `yaml:"enabled"`
	Path    *string `yaml:"path"`
}

// ProjectFile represents the structure of a project definition file.
type ProjectFile struct {
	Codename string     `yaml:"codename"`
	Name     string     `yaml:"name"`
	Desc     *string    `yaml:"desc"`
	Enabled  *bool      `yaml:"enabled"`
	Tasks    []*TaskDTO `yaml:"tasks"`
	Auth     *AuthDTO   `yaml:"auth"`
}

// TaskDTO represents a task entry of a project.
type TaskDTO struct {
	Name  string        `yaml:"name"`
	Value *OperationDTO `yaml:"value"`
}

// OperationDTO is the tagged operation of a task. Kind selects the variant.
type OperationDTO struct {
	Kind string            `yaml:"kind"`
	Name string            `yaml:"name"`
	Args []string          `yaml:"args"`
	Dir  string            `yaml:"dir"`
	Env  map[string]string `yaml:"env"`
}

// AuthDTO represents the authorization section of a project.
type AuthDTO struct {
	Enabled   *bool         `yaml:"enabled"`
	Tokens    []TokenDTO    `yaml:"tokens"`
	Passwords []PasswordDTO `yaml:"passwords"`
}

// TokenDTO is a named bearer token.
type TokenDTO struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// PasswordDTO is a username/password pair.
type PasswordDTO struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}
