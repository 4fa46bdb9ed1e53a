package ports

import "time"

// Outcome labels the result of a measured operation.
type Outcome string

const (
	// OutcomeSuccess marks an operation that finished without error.
	OutcomeSuccess Outcome = "success"
	// OutcomeFailure marks an operation that returned an error.
	OutcomeFailure Outcome = "failure"
)

// Metrics records service measurements.
//
//go:generate mockgen -source=metrics.go -destination=mocks/mock_metrics.go -package=mocks
type Metrics interface {
	// ObserveExecution records one completed project execution.
	ObserveExecution(codename string, outcome Outcome, d time.Duration)
	// ObserveTask records one completed task.
	ObserveTask(codename, task string, outcome Outcome, d time.Duration)
	// ObserveRequest records one served HTTP request.
	ObserveRequest(route, method string, status int, d time.Duration)
	// SetProjects records the number of registered projects.
	SetProjects(n int)
}
