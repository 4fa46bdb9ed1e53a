package metrics

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remotex/internal/core/ports"
)

const (
	// CollectorNodeID is the unique identifier for the concrete Prometheus collector Graft node.
	CollectorNodeID graft.ID = "adapter.metrics_collector"
	// NodeID is the unique identifier for the ports.Metrics Graft node.
	NodeID graft.ID = "adapter.metrics"
)

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        CollectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Collector, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Metrics]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{CollectorNodeID},
		Run: func(ctx context.Context) (ports.Metrics, error) {
			return graft.Dep[*Collector](ctx)
		},
	})
}
