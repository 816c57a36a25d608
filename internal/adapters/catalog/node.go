package catalog

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/telemetry"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports"
)

// NodeID is the unique identifier for the catalog source Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.CatalogSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID},
		Run: func(ctx context.Context) (ports.CatalogSource, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(tracer), nil
		},
	})
}
