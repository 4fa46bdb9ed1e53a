package config

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/zerr"
)

// envOverride maps one REMOTEX_* variable onto the settings.
type envOverride struct {
	key   string
	apply func(s *domain.Settings, value string) error
}

var envOverrides = []envOverride{
	{key: "PROJECTS", apply: func(s *domain.Settings, v string) error {
		s.Projects = splitList(v)
		return nil
	}},
	{key: "WEB_ADDR", apply: func(s *domain.Settings, v string) error {
		s.Web.Addr = v
		return nil
	}},
	{key: "WEB_SHUTDOWN_TIMEOUT", apply: func(s *domain.Settings, v string) error {
		d, err := time.ParseDuration(v)
		s.Web.ShutdownTimeout = d
		return err
	}},
	{key: "WEB_MAX_CONCURRENT_EXECUTIONS", apply: func(s *domain.Settings, v string) error {
		n, err := strconv.Atoi(v)
		s.Web.MaxConcurrentExecutions = n
		return err
	}},
	{key: "LOG_LEVEL", apply: func(s *domain.Settings, v string) error {
		s.Log.Level = v
		return nil
	}},
	{key: "LOG_JSON", apply: func(s *domain.Settings, v string) error {
		b, err := strconv.ParseBool(v)
		s.Log.JSON = b
		return err
	}},
	{key: "EXECUTION_DISABLED_PROJECTS", apply: func(s *domain.Settings, v string) error {
		s.Execution.DisabledProjects = domain.DisabledPolicy(v)
		return nil
	}},
	{key: "EXECUTION_TASK_TIMEOUT", apply: func(s *domain.Settings, v string) error {
		d, err := time.ParseDuration(v)
		s.Execution.TaskTimeout = d
		return err
	}},
	{key: "METRICS_ENABLED", apply: func(s *domain.Settings, v string) error {
		b, err := strconv.ParseBool(v)
		s.Metrics.Enabled = b
		return err
	}},
	{key: "METRICS_PATH", apply: func(s *domain.Settings, v string) error {
		s.Metrics.Path = v
		return nil
	}},
}

// applyEnv overlays every set REMOTEX_* variable onto s.
func applyEnv(s *domain.Settings, lookup func(string) (string, bool)) error {
	for _, o := range envOverrides {
		name := domain.EnvPrefix + o.key
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := o.apply(s, strings.TrimSpace(value)); err != nil {
			return errors.Join(domain.ErrSettingsInvalid, zerr.With(zerr.Wrap(err, "invalid environment override"), "env", name))
		}
	}
	return nil
}

// splitList splits a comma separated list, dropping blank items.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
