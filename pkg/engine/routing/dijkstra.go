package routing

import (
	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type Dijkstra struct {
	engine *RoutingEngine

	costFunction CostFunction
	vehicle      pkg.VehicleFlag

	dist     []float64
	predNode []da.Index
	predEdge []da.Index

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(engine *RoutingEngine, costFunction CostFunction, vehicle pkg.VehicleFlag) *Dijkstra {
	return &Dijkstra{
		engine:          engine,
		costFunction:    costFunction,
		vehicle:         vehicle,
		pq:              da.NewFourAryHeap[da.Index](),
		numSettledNodes: 0,
	}
}

// ShortestPathSearch point-to-point dijkstra from s to t over edges the vehicle
// may use. the queue is ordered purely by tentative cost and carries duplicate
// entries instead of decrease-key, a popped entry whose cost is worse than the
// current label is stale and gets dropped. the search stops as soon as t is
// settled, labels beyond t stay tentative.
//
// returns travel time (seconds), path distance (meters), path coordinates from
// s to t, and whether t is reachable at all.
func (us *Dijkstra) ShortestPathSearch(s, t da.Index) (float64, float64, []da.Coordinate, bool) {
	if s == t {
		return 0, 0, []da.Coordinate{}, true
	}

	us.Preallocate()

	us.dist[s] = 0
	us.pq.Insert(da.NewPriorityQueueNode(0, s))

	for !us.pq.IsEmpty() {
		queryKey, _ := us.pq.ExtractMin()
		uId := queryKey.GetItem()

		if da.Gt(queryKey.GetRank(), us.dist[uId]) {
			// stale duplicate, a cheaper label for uId was settled earlier
			continue
		}

		us.numSettledNodes++

		if uId == t {
			break
		}

		us.relaxOutEdges(uId)
	}

	if da.Ge(us.dist[t], pkg.INF_WEIGHT) {
		return 0, 0, nil, false
	}

	eta, pathDist, pathCoords := us.buildRoute(s, t)
	return eta, pathDist, pathCoords, true
}

func (us *Dijkstra) relaxOutEdges(uId da.Index) {
	us.engine.graph.ForOutEdgesOf(uId, func(outArc da.OutEdge, edgeId da.Index) {
		if !outArc.AllowsVehicle(us.vehicle) {
			return
		}

		vId := outArc.GetHead()

		edgeWeight := us.costFunction.GetWeight(outArc)

		newDist := us.dist[uId] + edgeWeight
		if da.Ge(newDist, pkg.INF_WEIGHT) {
			return
		}

		if da.Lt(newDist, us.dist[vId]) {
			us.dist[vId] = newDist
			us.predNode[vId] = uId
			us.predEdge[vId] = edgeId

			us.pq.Insert(da.NewPriorityQueueNode(newDist, vId))
		}
	})
}

func (us *Dijkstra) Preallocate() {
	n := us.engine.graph.NumberOfVertices()
	us.dist = make([]float64, n)
	us.predNode = make([]da.Index, n)
	us.predEdge = make([]da.Index, n)
	for i := 0; i < n; i++ {
		us.dist[i] = pkg.INF_WEIGHT
		us.predNode[i] = da.INVALID_VERTEX_ID
		us.predEdge[i] = da.INVALID_EDGE_ID
	}
	us.pq.Preallocate(n)
}

func (us *Dijkstra) GetNumSettledNodes() int {
	return us.numSettledNodes
}
