package routing

import (
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"go.uber.org/zap"
)

type RoutingEngine struct {
	graph  *da.Graph
	logger *zap.Logger
}

func NewRoutingEngine(graph *da.Graph, logger *zap.Logger) *RoutingEngine {
	return &RoutingEngine{
		graph:  graph,
		logger: logger,
	}
}

func (e *RoutingEngine) GetGraph() *da.Graph {
	return e.graph
}
