package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/remotex/internal/adapters/telemetry"
	"go.trai.ch/remotex/internal/app"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports/mocks"
	"go.trai.ch/remotex/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

func newProvider(t *testing.T) (ComponentProvider, *mocks.MockConfigLoader, *mocks.MockLogger, *mocks.MockCommandRunner) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockCommands := mocks.NewMockCommandRunner(ctrl)

	engine := runner.NewRunner(mockCommands, telemetry.NewNoOpTracer(), mockLogger)
	application := app.New(mockLoader, engine, mockLogger, nil)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}
	return provider, mockLoader, mockLogger, mockCommands
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	provider, _, _, _ := newProvider(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provider)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "remotex version")
}

// TestRun_ProviderError verifies that initialization failures are printed to stderr.
func TestRun_ProviderError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("wiring failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Equal(t, "Error: wiring failed\n", stderr.String())
}

// TestRun_CommandError verifies that command errors are logged.
func TestRun_CommandError(t *testing.T) {
	provider, mockLoader, mockLogger, _ := newProvider(t)

	mockLoader.EXPECT().LoadSettings("missing.yml").Return(nil, domain.ErrSettingsNotFound)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrSettingsNotFound)
	}).Times(1)

	exitCode := run(context.Background(), []string{"projects", "-c", "missing.yml"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_ExecutionFailed verifies that task failures are not logged twice.
func TestRun_ExecutionFailed(t *testing.T) {
	provider, mockLoader, mockLogger, mockCommands := newProvider(t)

	s := domain.DefaultSettings()
	project := domain.Project{
		Codename: "broken",
		Enabled:  true,
		Tasks:    []domain.Task{{Name: "fail", Operation: domain.CommandOperation{Program: "false"}}},
	}
	mockLoader.EXPECT().LoadSettings(domain.DefaultSettingsPath).Return(&s, nil)
	mockLoader.EXPECT().LoadProjects(&s).Return([]domain.Project{project})
	mockCommands.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ErrNonZeroExit)

	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	// Logged once by the engine for the failing task.
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	exitCode := run(context.Background(), []string{"exec", "broken"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
