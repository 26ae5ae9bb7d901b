package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/dmc/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/metrics"            //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/adapters/workspace"          //nolint:depguard // Wired in app layer
	"go.trai.ch/dmc/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			workspace.NodeID,
			fs.DiscovererNodeID,
			fs.HasherNodeID,
			progrock.NodeID,
			metrics.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // dependency resolution
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	ws, err := graft.Dep[ports.Workspace](ctx)
	if err != nil {
		return nil, err
	}
	discoverer, err := graft.Dep[ports.SourceDiscoverer](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}
	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, ws, discoverer, hasher, telemetry, m, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, telemetry), nil
}
