package engine

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"go.uber.org/zap"
)

type Engine struct {
	routingEngine *routing.RoutingEngine
}

func (e *Engine) GetRoutingEngine() *routing.RoutingEngine {
	return e.routingEngine
}

func NewEngine(graphFilePath string, logger *zap.Logger) (*Engine, error) {
	routingEngine, err := initializeRoutingEngine(graphFilePath, logger)
	if err != nil {
		return nil, err
	}
	return &Engine{
		routingEngine: routingEngine,
	}, nil
}

func initializeRoutingEngine(graphFilePath string, logger *zap.Logger) (*routing.RoutingEngine,
	error) {

	logger.Info("Starting routing query engine...")

	logger.Info("Reading graph from ", zap.String("graphFilePath", graphFilePath))
	graph, err := datastructure.ReadGraph(graphFilePath)
	if err != nil {
		return nil, err
	}
	logger.Info("graph loaded",
		zap.Int("vertices", graph.NumberOfVertices()),
		zap.Int("edges", graph.NumberOfEdges()))

	return routing.NewRoutingEngine(graph, logger), nil
}
