package workspace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dmc/internal/adapters/logger"
	"go.trai.ch/dmc/internal/core/ports"
)

// NodeID is the unique identifier for the workspace Graft node.
const NodeID graft.ID = "adapter.workspace"

func init() {
	graft.Register(graft.Node[ports.Workspace]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Workspace, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBootstrapper(log), nil
		},
	})
}
