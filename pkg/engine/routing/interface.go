package routing

import (
	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
}

type Router interface {
	ShortestPathSearch(s, t datastructure.Index) (float64, float64, []datastructure.Coordinate, bool)
}
