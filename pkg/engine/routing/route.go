package routing

import (
	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

// buildRoute walks the predecessor pointers from t back to s and accumulates
// the route geometry and its stats. travel time is always computed with the
// vehicle-capped edge speed, even when the search itself minimized distance.
// the returned coordinates start at the first vertex after s, the source point
// itself is not part of the geometry.
func (us *Dijkstra) buildRoute(s, t da.Index) (float64, float64, []da.Coordinate) {
	timeFunction := costfunction.NewTimeCostFunction(us.vehicle)

	var (
		eta      float64
		pathDist float64
	)
	pathCoords := make([]da.Coordinate, 0)

	cur := t
	for cur != s {
		edge := us.engine.graph.GetOutEdge(us.predEdge[cur])
		pathDist += edge.GetLength()
		eta += timeFunction.GetWeight(edge)

		lat, lon := us.engine.graph.GetVertexCoordinates(cur)
		pathCoords = append(pathCoords, da.NewCoordinate(lat, lon))

		cur = us.predNode[cur]
	}

	pathCoords = util.ReverseG(pathCoords)
	return eta, pathDist, pathCoords
}
