package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/remotex/internal/adapters/metrics"
	"go.trai.ch/remotex/internal/core/ports"
)

func TestCollector_ObserveExecution(t *testing.T) {
	c := metrics.New()

	c.ObserveExecution("hello-example", ports.OutcomeSuccess, 20*time.Millisecond)
	c.ObserveExecution("hello-example", ports.OutcomeSuccess, 30*time.Millisecond)
	c.ObserveExecution("hello-example", ports.OutcomeFailure, time.Second)

	want := `
# HELP remotex_executions_total Project executions by outcome.
# TYPE remotex_executions_total counter
remotex_executions_total{outcome="failure",project="hello-example"} 1
remotex_executions_total{outcome="success",project="hello-example"} 2
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want), "remotex_executions_total"))

	count, err := testutil.GatherAndCount(c.Registry(), "remotex_execution_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCollector_ObserveTask(t *testing.T) {
	c := metrics.New()

	c.ObserveTask("build", "compile", ports.OutcomeSuccess, time.Second)
	c.ObserveTask("build", "test", ports.OutcomeFailure, time.Second)

	want := `
# HELP remotex_tasks_total Executed tasks by outcome.
# TYPE remotex_tasks_total counter
remotex_tasks_total{outcome="failure",project="build",task="test"} 1
remotex_tasks_total{outcome="success",project="build",task="compile"} 1
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want), "remotex_tasks_total"))
}

func TestCollector_ObserveRequestAndProjects(t *testing.T) {
	c := metrics.New()

	c.ObserveRequest("/api/health", http.MethodGet, http.StatusOK, time.Millisecond)
	c.SetProjects(3)

	want := `
# HELP remotex_http_requests_total HTTP requests by route, method and status code.
# TYPE remotex_http_requests_total counter
remotex_http_requests_total{code="200",method="GET",route="/api/health"} 1
# HELP remotex_projects Number of registered projects.
# TYPE remotex_projects gauge
remotex_projects 3
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(want),
		"remotex_http_requests_total", "remotex_projects"))
}

func TestCollector_Handler(t *testing.T) {
	c := metrics.New()
	c.SetProjects(1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "remotex_projects 1")
	assert.Contains(t, string(body), "go_goroutines")
}
