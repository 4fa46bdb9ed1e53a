package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remotex/internal/core/domain"
)

func projectWithTasks(n int) domain.Project {
	p := domain.Project{Codename: "exec"}
	for range n {
		p.Tasks = append(p.Tasks, domain.Task{Name: "t", Operation: domain.CommandOperation{Program: "true"}})
	}
	return p
}

func TestExecution_HappyPath(t *testing.T) {
	e := domain.NewExecution("id-1", projectWithTasks(2))
	assert.Equal(t, domain.StatePending, e.State)
	assert.Equal(t, "Pending", e.String())

	require.NoError(t, e.Next())
	assert.Equal(t, domain.StateRunning, e.State)
	assert.Equal(t, 0, e.TaskIndex)
	assert.Equal(t, "Running(1/2)", e.String())

	require.Error(t, e.Complete(), "cannot complete while tasks remain")

	require.NoError(t, e.Next())
	assert.Equal(t, 1, e.TaskIndex)

	require.Error(t, e.Next(), "no task left")

	require.NoError(t, e.Complete())
	assert.Equal(t, domain.StateCompleted, e.State)
	assert.True(t, e.State.Terminal())
}

func TestExecution_NoTasksCompletesImmediately(t *testing.T) {
	e := domain.NewExecution("id-2", projectWithTasks(0))

	require.Error(t, e.Next())
	require.NoError(t, e.Complete())
	assert.Equal(t, domain.StateCompleted, e.State)
}

func TestExecution_FailIsTerminal(t *testing.T) {
	e := domain.NewExecution("id-3", projectWithTasks(3))
	require.NoError(t, e.Next())

	cause := errors.New("boom")
	require.NoError(t, e.Fail(cause))
	assert.Equal(t, domain.StateFailed, e.State)
	assert.Equal(t, cause, e.Err)
	assert.Equal(t, "Failed(1/3)", e.String())

	err := e.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	require.Error(t, e.Complete())
	require.Error(t, e.Fail(cause))
}

func TestExecution_FailRequiresRunning(t *testing.T) {
	e := domain.NewExecution("id-4", projectWithTasks(1))

	err := e.Fail(errors.New("boom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid execution state transition")
}
