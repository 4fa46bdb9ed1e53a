package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to turn finished execution spans into metrics.
type Bridge struct {
	metrics ports.Metrics
}

// NewBridge returns a new Bridge.
func NewBridge(metrics ports.Metrics) *Bridge {
	return &Bridge{
		metrics: metrics,
	}
}

// OnStart does nothing; only finished spans are measured.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records the duration and outcome of project and task spans.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.metrics == nil {
		return
	}

	outcome := ports.OutcomeSuccess
	if s.Status().Code == codes.Error {
		outcome = ports.OutcomeFailure
	}
	d := s.EndTime().Sub(s.StartTime())

	switch s.Name() {
	case domain.SpanProjectExecute:
		b.metrics.ObserveExecution(stringAttr(s, domain.AttrProject), outcome, d)
	case domain.SpanTaskExecute:
		b.metrics.ObserveTask(stringAttr(s, domain.AttrProject), stringAttr(s, domain.AttrTask), outcome, d)
	}
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

func stringAttr(s sdktrace.ReadOnlySpan, key string) string {
	for _, kv := range s.Attributes() {
		if kv.Key == attribute.Key(key) {
			return kv.Value.Emit()
		}
	}
	return ""
}
