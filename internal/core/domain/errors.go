package domain

import "go.trai.ch/zerr"

var (
	// ErrSettingsNotFound is returned when the primary settings file does not exist.
	ErrSettingsNotFound = zerr.New("settings file not found")

	// ErrSettingsInvalid is returned when the settings file or an override holds an invalid value.
	ErrSettingsInvalid = zerr.New("invalid settings")

	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a configuration file is not valid YAML for its schema.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidProject is returned when a project definition fails validation.
	ErrInvalidProject = zerr.New("invalid project definition")

	// ErrDuplicateCodename is reported when a later project reuses a codename already loaded.
	ErrDuplicateCodename = zerr.New("duplicate project codename")

	// ErrProjectNotFound is returned when no project has the requested codename.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrProjectDisabled is returned when executing a disabled project under the reject policy.
	ErrProjectDisabled = zerr.New("project is disabled")

	// ErrUnauthorized is returned when a credential does not satisfy a project's policy.
	ErrUnauthorized = zerr.New("invalid credentials provided")

	// ErrBusy is returned when no execution slot became available.
	ErrBusy = zerr.New("too many concurrent executions")

	// ErrExecutionFailed is returned when any task of a project fails.
	ErrExecutionFailed = zerr.New("execution failed")

	// ErrSpawnFailed is returned when an external program cannot be started.
	ErrSpawnFailed = zerr.New("failed to spawn process")

	// ErrNonZeroExit is returned when an external program terminates unsuccessfully.
	ErrNonZeroExit = zerr.New("process exited with non-zero status")

	// ErrTaskTimedOut is returned when a task exceeds the configured task timeout.
	ErrTaskTimedOut = zerr.New("task timed out")

	// ErrUnsupportedOperation is returned when a task carries an operation the engine cannot run.
	ErrUnsupportedOperation = zerr.New("unsupported operation")

	// ErrInvalidTransition is returned when an execution is moved to a state it cannot reach.
	ErrInvalidTransition = zerr.New("invalid execution state transition")
)
