// Package shell runs command operations as external processes.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
	"go.trai.ch/zerr"
)

// waitDelay bounds how long Wait keeps reading output after the process was killed.
const waitDelay = 5 * time.Second

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner that forwards process output to logger.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run spawns the program described by op and waits for it to exit.
// Stdout lines are logged at info level, stderr lines at warn level.
func (r *Runner) Run(ctx context.Context, op domain.CommandOperation) error {
	env := resolveEnvironment(os.Environ(), op.Env)

	executable := op.Program
	if !strings.ContainsRune(op.Program, filepath.Separator) {
		if lp, err := lookPath(op.Program, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, op.Args...) //nolint:gosec // operator provided command
	cmd.Args[0] = op.Program
	cmd.Dir = op.Dir
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	stdout := &logWriter{logger: r.logger, level: levelInfo}
	stderr := &logWriter{logger: r.logger, level: levelWarn}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return errors.Join(domain.ErrSpawnFailed,
			zerr.With(zerr.Wrap(err, "cannot start process"), "program", op.Program))
	}

	err := cmd.Wait()
	_ = stdout.Close()
	_ = stderr.Close()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		failure := zerr.With(zerr.Wrap(err, "command failed"), "program", op.Program)
		return errors.Join(domain.ErrNonZeroExit, zerr.With(failure, "exit_code", exitCode))
	}

	return nil
}

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter turns a byte stream into one log entry per line.
type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close flushes a trailing line without newline.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	switch w.level {
	case levelWarn:
		w.logger.Warn(msg)
	default:
		w.logger.Info(msg)
	}
}

// resolveEnvironment applies overrides on top of the inherited environment.
// The result is sorted by variable name.
func resolveEnvironment(sysEnv []string, overrides map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
