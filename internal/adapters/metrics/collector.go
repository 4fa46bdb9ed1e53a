// Package metrics exposes service measurements as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/remotex/internal/core/ports"
)

const namespace = "remotex"

// Collector implements ports.Metrics on a private Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	executions        *prometheus.CounterVec
	executionDuration *prometheus.HistogramVec
	tasks             *prometheus.CounterVec
	taskDuration      *prometheus.HistogramVec
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	projects          prometheus.Gauge
}

// New creates a Collector with its own registry, including Go runtime and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		executions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "executions_total",
			Help:      "Project executions by outcome.",
		}, []string{"project", "outcome"}),
		executionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "execution_duration_seconds",
			Help:      "Wall time of project executions.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"project"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_total",
			Help:      "Executed tasks by outcome.",
		}, []string{"project", "task", "outcome"}),
		taskDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "task_duration_seconds",
			Help:      "Wall time of individual tasks.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"project", "task"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		projects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "projects",
			Help:      "Number of registered projects.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.executions,
		c.executionDuration,
		c.tasks,
		c.taskDuration,
		c.requests,
		c.requestDuration,
		c.projects,
	)

	return c
}

// Registry returns the registry holding every collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveExecution records one completed project execution.
func (c *Collector) ObserveExecution(codename string, outcome ports.Outcome, d time.Duration) {
	c.executions.WithLabelValues(codename, string(outcome)).Inc()
	c.executionDuration.WithLabelValues(codename).Observe(d.Seconds())
}

// ObserveTask records one completed task.
func (c *Collector) ObserveTask(codename, task string, outcome ports.Outcome, d time.Duration) {
	c.tasks.WithLabelValues(codename, task, string(outcome)).Inc()
	c.taskDuration.WithLabelValues(codename, task).Observe(d.Seconds())
}

// ObserveRequest records one served HTTP request.
func (c *Collector) ObserveRequest(route, method string, status int, d time.Duration) {
	c.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// SetProjects records the number of registered projects.
func (c *Collector) SetProjects(n int) {
	c.projects.Set(float64(n))
}
