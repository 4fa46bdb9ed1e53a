// Package app implements the application layer for remotex.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.trai.ch/remotex/internal/adapters/metrics"
	"go.trai.ch/remotex/internal/adapters/web"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
	"go.trai.ch/remotex/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	engine       *runner.Runner
	logger       ports.Logger
	collector    *metrics.Collector
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, engine *runner.Runner, log ports.Logger, collector *metrics.Collector) *App {
	return &App{
		configLoader: loader,
		engine:       engine,
		logger:       log,
		collector:    collector,
	}
}

// logConfigurer is implemented by loggers whose level and format can change at runtime.
type logConfigurer interface {
	Configure(settings domain.LogSettings) error
}

// Environment is the loaded runtime state shared by every command.
type Environment struct {
	Settings *domain.Settings
	Registry *domain.Registry
}

// Load reads the settings at configPath, applies the log settings and builds the registry.
// Project files that fail to load are logged and skipped.
func (a *App) Load(configPath string) (*Environment, error) {
	settings, err := a.configLoader.LoadSettings(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	if c, ok := a.logger.(logConfigurer); ok {
		if err := c.Configure(settings.Log); err != nil {
			return nil, err
		}
	}

	projects := a.configLoader.LoadProjects(settings)
	registry := domain.NewRegistry(projects, settings.Execution.DisabledProjects)
	if a.collector != nil {
		a.collector.SetProjects(registry.Len())
	}
	a.logger.Debug(fmt.Sprintf("loaded %d projects from %s", registry.Len(), settings.Path))

	return &Environment{Settings: settings, Registry: registry}, nil
}

// ServeOptions configures the Serve method.
type ServeOptions struct {
	ConfigPath string
	// Addr overrides the configured listen address when non-empty.
	Addr string
	// Ready is called with the bound address once the server accepts connections.
	Ready func(net.Addr)
}

// Serve loads the registry and serves the HTTP API until ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	env, err := a.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	webSettings := env.Settings.Web
	if opts.Addr != "" {
		webSettings.Addr = opts.Addr
	}

	serverOpts := []web.Option{web.WithMaxConcurrentExecutions(webSettings.MaxConcurrentExecutions)}
	if a.collector != nil {
		handler := a.collector.Handler()
		if !env.Settings.Metrics.Enabled {
			handler = nil
		}
		serverOpts = append(serverOpts, web.WithMetrics(a.collector, env.Settings.Metrics.Path, handler))
	}

	server := web.NewServer(env.Registry, a.engine.Configure(env.Settings.Execution), a.logger, serverOpts...)

	ready := func(addr net.Addr) {
		a.logger.Info(fmt.Sprintf("serving %d projects on http://%s", env.Registry.Len(), addr))
		if opts.Ready != nil {
			opts.Ready(addr)
		}
	}

	if err := server.ListenAndServe(ctx, webSettings.Addr, webSettings.ShutdownTimeout, ready); err != nil {
		return zerr.Wrap(err, "server stopped")
	}
	a.logger.Info("server stopped")
	return nil
}

// ExecOptions configures the Execute method.
type ExecOptions struct {
	ConfigPath string
	Codename   string
}

// Execute runs a single project locally. It bypasses the project's authorization
// but still honours the disabled-project policy.
func (a *App) Execute(ctx context.Context, opts ExecOptions) error {
	env, err := a.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	project, ok := env.Registry.Get(opts.Codename)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrProjectNotFound, "cannot execute"), "codename", opts.Codename)
	}
	if !env.Registry.Executable(project) {
		return zerr.With(zerr.Wrap(domain.ErrProjectDisabled, "cannot execute"), "codename", opts.Codename)
	}

	return a.engine.Configure(env.Settings.Execution).Execute(ctx, project)
}

// Projects returns the visible projects in load order.
func (a *App) Projects(configPath string) ([]domain.Project, error) {
	env, err := a.Load(configPath)
	if err != nil {
		return nil, err
	}
	return env.Registry.All(), nil
}

// CheckResult is the outcome of validating one project file.
type CheckResult struct {
	Path     string
	Codename string
	Err      error
}

// Check validates every configured project file without executing anything.
// The returned error joins the error of every file that failed.
func (a *App) Check(configPath string) ([]CheckResult, error) {
	settings, err := a.configLoader.LoadSettings(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load settings")
	}

	paths, err := a.configLoader.ProjectPaths(settings)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, 0, len(paths))
	seen := make(map[string]string, len(paths))
	var errs error

	for _, path := range paths {
		result := CheckResult{Path: path}
		project, err := a.configLoader.LoadProject(path)
		switch {
		case err != nil:
			result.Err = err
		case seen[project.Codename] != "":
			result.Codename = project.Codename
			dup := zerr.With(zerr.Wrap(domain.ErrDuplicateCodename, "codename already defined"), "codename", project.Codename)
			result.Err = zerr.With(dup, "first_occurrence", seen[project.Codename])
		default:
			result.Codename = project.Codename
			seen[project.Codename] = path
		}

		if result.Err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(result.Err, "invalid project file"), "path", path))
		}
		results = append(results, result)
	}

	return results, errs
}
