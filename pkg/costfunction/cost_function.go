package costfunction

import (
	"github.com/lintang-b-s/osmroute/pkg"
)

type EdgeAttributes interface {
	GetLength() float64
	GetSpeed() float64
	GetFlags() pkg.VehicleFlag
}

type CostFunction interface {
	GetWeight(e EdgeAttributes) float64
}

// FromMetric pick the cost function for a metric query param. anything that is
// not "time" meters the route by distance, including typos.
func FromMetric(metric string, vehicle pkg.VehicleFlag) CostFunction {
	switch metric {
	case "time":
		return NewTimeCostFunction(vehicle)
	default:
		return NewDistanceCostFunction()
	}
}
