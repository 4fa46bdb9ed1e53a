package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remotex/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remotex/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remotex/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/remotex/internal/core/ports"
)

// NodeID is the unique identifier for the execution engine Graft node.
const NodeID graft.ID = "engine.runner"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Runner, error) {
			commands, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewRunner(commands, tracer, log), nil
		},
	})
}
