package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/remotex/internal/core/domain"
	"go.trai.ch/remotex/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return NewWithSettings(domain.DefaultSettings().Log)
		},
	})
}

// NewWithSettings creates a Logger on os.Stderr configured with settings.
// The app reconfigures it once the settings file has been read.
func NewWithSettings(settings domain.LogSettings) (*Logger, error) {
	l := New()
	if err := l.Configure(settings); err != nil {
		return nil, err
	}
	return l, nil
}
