// Package config provides the settings and project definition loader for remotex.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
	// LookupEnv resolves environment overrides.
	LookupEnv func(key string) (string, bool)
}

// NewLoader creates a new Loader reading from the OS filesystem and environment.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{
		Logger:    logger,
		FS:        NewOSFS(),
		LookupEnv: os.LookupEnv,
	}
}

var validCodenameRegex = regexp.MustCompile("^[a-zA-Z0-9._-]+$")

// LoadSettings reads the settings file at path, then the optional local override
// next to it, then REMOTEX_* environment variables.
func (l *Loader) LoadSettings(path string) (*domain.Settings, error) {
	if path == "" {
		path = domain.DefaultSettingsPath
	}
	path = filepath.Clean(path)

	if _, err := l.FS.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrSettingsNotFound, "cannot load settings"), "path", path)
		}
		return nil, errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "stat settings"), "path", path))
	}

	settings := domain.DefaultSettings()
	settings.Path = path

	var primary SettingsFile
	if err := readAndDecode(l.FS, path, &primary); err != nil {
		return nil, err
	}
	applySettingsFile(&settings, &primary)

	localPath := filepath.Join(filepath.Dir(path), domain.LocalSettingsBase+filepath.Ext(path))
	if localPath != path {
		if _, err := l.FS.Stat(localPath); err == nil {
			var local SettingsFile
			if err := readAndDecode(l.FS, localPath, &local); err != nil {
				return nil, err
			}
			applySettingsFile(&settings, &local)
			l.Logger.Debug("applied local settings from " + localPath)
		}
	}

	if err := applyEnv(&settings, l.lookupEnv()); err != nil {
		return nil, err
	}

	if err := validateSettings(&settings); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	return &settings, nil
}

// LoadProject reads and validates the project definition at path.
func (l *Loader) LoadProject(path string) (domain.Project, error) {
	var file ProjectFile
	if err := readAndDecode(l.FS, path, &file); err != nil {
		return domain.Project{}, err
	}
	return buildProject(path, &file)
}

// ProjectPaths expands the configured entries, relative to the settings file,
// into a sorted list of unique paths.
func (l *Loader) ProjectPaths(settings *domain.Settings) ([]string, error) {
	base := filepath.Dir(settings.Path)
	unique := make(map[string]struct{})

	for _, entry := range settings.Projects {
		pattern := entry
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(base, pattern)
		}

		if !hasMeta(entry) {
			unique[pattern] = struct{}{}
			continue
		}

		matches, err := l.FS.Glob(pattern)
		if err != nil {
			return nil, errors.Join(domain.ErrSettingsInvalid, zerr.With(zerr.Wrap(err, "glob pattern failed"), "pattern", entry))
		}
		if len(matches) == 0 {
			l.Logger.Warn(fmt.Sprintf("project pattern %q matched no files", entry))
		}
		for _, match := range matches {
			unique[match] = struct{}{}
		}
	}

	paths := make([]string, 0, len(unique))
	for p := range unique {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	return paths, nil
}

// LoadProjects loads every configured project in path order.
// Files that fail to load are logged and skipped. A codename that was
// already loaded is logged and the later definition is dropped.
func (l *Loader) LoadProjects(settings *domain.Settings) []domain.Project {
	projects := make([]domain.Project, 0)

	paths, err := l.ProjectPaths(settings)
	if err != nil {
		l.Logger.Error(err)
		return projects
	}

	firstSeen := make(map[string]string, len(paths))
	for _, path := range paths {
		l.Logger.Info("loading project " + path)

		project, err := l.LoadProject(path)
		if err != nil {
			l.Logger.Error(err)
			continue
		}

		if first, dup := firstSeen[project.Codename]; dup {
			l.Logger.Warn(fmt.Sprintf("%s: %q in %s ignored, first defined in %s",
				domain.ErrDuplicateCodename, project.Codename, path, first))
			continue
		}
		firstSeen[project.Codename] = path
		projects = append(projects, project)
	}

	return projects
}

func (l *Loader) lookupEnv() func(string) (string, bool) {
	if l.LookupEnv == nil {
		return os.LookupEnv
	}
	return l.LookupEnv
}

func buildProject(path string, file *ProjectFile) (domain.Project, error) {
	if file.Codename == "" {
		return domain.Project{}, invalidProject(path, "codename", "codename is required")
	}
	if !validCodenameRegex.MatchString(file.Codename) {
		err := invalidProject(path, "codename", "codename may only contain letters, digits, '.', '_' and '-'")
		return domain.Project{}, zerr.With(err, "codename", file.Codename)
	}
	if file.Name == "" {
		return domain.Project{}, invalidProject(path, "name", "name is required")
	}
	if file.Tasks == nil {
		return domain.Project{}, invalidProject(path, "tasks", "tasks is required")
	}
	if file.Auth == nil {
		return domain.Project{}, invalidProject(path, "auth", "auth is required")
	}

	project := domain.Project{
		Codename:    file.Codename,
		Name:        file.Name,
		Description: valueOr(file.Desc, domain.DefaultDescription),
		Enabled:     valueOr(file.Enabled, true),
		Tasks:       make([]domain.Task, 0, len(file.Tasks)),
		Source:      path,
	}

	auth, err := buildAuthorization(path, file.Auth)
	if err != nil {
		return domain.Project{}, zerr.With(err, "codename", file.Codename)
	}
	project.Auth = auth

	for i, dto := range file.Tasks {
		task, err := buildTask(path, dto)
		if err != nil {
			return domain.Project{}, zerr.With(err, "task_index", i)
		}
		project.Tasks = append(project.Tasks, task)
	}

	return project, nil
}

func buildTask(path string, dto *TaskDTO) (domain.Task, error) {
	if dto == nil || dto.Name == "" {
		return domain.Task{}, invalidProject(path, "tasks.name", "task name is required")
	}
	if dto.Value == nil {
		return domain.Task{}, zerr.With(invalidProject(path, "tasks.value", "task value is required"), "task", dto.Name)
	}

	switch domain.OperationKind(dto.Value.Kind) {
	case domain.OperationCommand:
		if dto.Value.Name == "" {
			return domain.Task{}, zerr.With(invalidProject(path, "tasks.value.name", "command name is required"), "task", dto.Name)
		}
		return domain.Task{
			Name: dto.Name,
			Operation: domain.CommandOperation{
				Program: dto.Value.Name,
				Args:    dto.Value.Args,
				Dir:     resolveTaskDir(filepath.Dir(path), dto.Value.Dir),
				Env:     dto.Value.Env,
			},
		}, nil
	default:
		err := invalidProject(path, "tasks.value.kind", "unknown operation kind")
		err = zerr.With(err, "kind", dto.Value.Kind)
		return domain.Task{}, zerr.With(err, "task", dto.Name)
	}
}

// buildAuthorization rejects empty secrets, which would otherwise match an
// empty bearer token or an empty credential pair.
func buildAuthorization(path string, dto *AuthDTO) (domain.Authorization, error) {
	auth := domain.Authorization{
		Enabled:   valueOr(dto.Enabled, true),
		Tokens:    make([]domain.Token, 0, len(dto.Tokens)),
		Passwords: make([]domain.UsernamePassword, 0, len(dto.Passwords)),
	}
	for i, t := range dto.Tokens {
		if t.Value == "" {
			err := invalidProject(path, "auth.tokens.value", "token value must not be empty")
			return domain.Authorization{}, zerr.With(err, "token_index", i)
		}
		auth.Tokens = append(auth.Tokens, domain.Token{Name: t.Name, Value: t.Value})
	}
	for i, p := range dto.Passwords {
		if p.Username == "" || p.Password == "" {
			err := invalidProject(path, "auth.passwords", "username and password must not be empty")
			return domain.Authorization{}, zerr.With(err, "password_index", i)
		}
		auth.Passwords = append(auth.Passwords, domain.UsernamePassword{Username: p.Username, Password: p.Password})
	}
	return auth, nil
}

// resolveTaskDir resolves a configured working directory against the project file's directory.
// An empty value keeps the server's working directory.
func resolveTaskDir(baseDir, configured string) string {
	if configured == "" {
		return ""
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(baseDir, configured))
}

func invalidProject(path, field, reason string) error {
	err := zerr.With(zerr.Wrap(domain.ErrInvalidProject, reason), "path", path)
	return zerr.With(err, "field", field)
}

func applySettingsFile(s *domain.Settings, f *SettingsFile) {
	if f.Projects != nil {
		s.Projects = f.Projects
	}
	if w := f.Web; w != nil {
		assign(&s.Web.Addr, w.Addr)
		assign(&s.Web.ShutdownTimeout, w.ShutdownTimeout)
		assign(&s.Web.MaxConcurrentExecutions, w.MaxConcurrentExecutions)
	}
	if lg := f.Log; lg != nil {
		assign(&s.Log.Level, lg.Level)
		assign(&s.Log.JSON, lg.JSON)
	}
	if e := f.Execution; e != nil {
		if e.DisabledProjects != nil {
			s.Execution.DisabledProjects = domain.DisabledPolicy(*e.DisabledProjects)
		}
		assign(&s.Execution.TaskTimeout, e.TaskTimeout)
	}
	if m := f.Metrics; m != nil {
		assign(&s.Metrics.Enabled, m.Enabled)
		assign(&s.Metrics.Path, m.Path)
	}
}

func validateSettings(s *domain.Settings) error {
	switch {
	case s.Web.Addr == "":
		return invalidSetting("web.addr", "listen address is required")
	case s.Web.ShutdownTimeout <= 0:
		return invalidSetting("web.shutdown_timeout", "must be positive")
	case s.Web.MaxConcurrentExecutions < 0:
		return invalidSetting("web.max_concurrent_executions", "must not be negative")
	case !s.Execution.DisabledProjects.Valid():
		return zerr.With(invalidSetting("execution.disabled_projects", "must be one of expose, reject, hide"),
			"value", string(s.Execution.DisabledProjects))
	case s.Execution.TaskTimeout < 0:
		return invalidSetting("execution.task_timeout", "must not be negative")
	case !strings.HasPrefix(s.Metrics.Path, "/") || strings.HasPrefix(s.Metrics.Path, "/api/"):
		return zerr.With(invalidSetting("metrics.path", "must be an absolute path outside /api/"), "value", s.Metrics.Path)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return zerr.With(invalidSetting("log.level", "must be one of debug, info, warn, error"), "value", s.Log.Level)
	}

	return nil
}

func invalidSetting(key, reason string) error {
	return zerr.With(zerr.Wrap(domain.ErrSettingsInvalid, reason), "key", key)
}

// readAndDecode reads a YAML file and strictly decodes it into target.
func readAndDecode[T any](fsys FileSystem, path string, target *T) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(zerr.Wrap(err, "cannot read file"), "path", path))
	}

	if err := decodeStrict(data, target); err != nil {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(zerr.Wrap(err, "cannot decode yaml"), "path", path))
	}

	return nil
}

// decodeStrict rejects unknown fields. Duplicate mapping keys are rejected by yaml.v3 itself.
// An empty document decodes to the zero value.
func decodeStrict[T any](data []byte, target *T) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func assign[T any](dst, src *T) {
	if src != nil {
		*dst = *src
	}
}

func valueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
