package usecases

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
}

type SpatialIndex interface {
	SnapToNearestNode(qLat, qLon, radius float64) (datastructure.Index, bool)
}
