package usecases

import (
	"errors"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

var (
	ErrNodeNotFound  = errors.New("osm node id is not in the graph")
	ErrRouteNotFound = errors.New("no route found")
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialIndex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialIndex,
		searchRadius: searchRadius,
	}
}

// Route compute the best path between two osm node ids. eta comes back in
// seconds and distance in meters, the geometry both as [lat,lon] pairs and as
// an encoded polyline. every query builds its own search state, so concurrent
// requests share nothing but the read-only graph.
func (rs *RoutingService) Route(sourceOsmId, targetOsmId int64, vehicle, metric string) (float64, float64, [][]float64, string, error) {
	graph := rs.engine.GetGraph()

	s, ok := graph.ResolveOsmId(sourceOsmId)
	if !ok {
		return 0, 0, nil, "", util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound,
			"source osm node id %d is not in the graph", sourceOsmId)
	}
	t, ok := graph.ResolveOsmId(targetOsmId)
	if !ok {
		return 0, 0, nil, "", util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound,
			"target osm node id %d is not in the graph", targetOsmId)
	}

	v := pkg.VehicleFromString(vehicle)

	query := routing.NewDijkstra(rs.engine.(*routing.RoutingEngine), costfunction.FromMetric(metric, v), v)
	eta, dist, pathCoords, found := query.ShortestPathSearch(s, t)
	if !found {
		return 0, 0, nil, "", util.WrapErrorf(ErrRouteNotFound, util.ErrNotFound,
			"no %s route found from osm node %d to %d", v.String(), sourceOsmId, targetOsmId)
	}

	path := make([][]float64, len(pathCoords))
	for i, coord := range pathCoords {
		path[i] = []float64{coord.GetLat(), coord.GetLon()}
	}
	pathPolyline := geo.PoylineFromCoords(datastructure.NewGeoCoordinates(pathCoords))

	return eta, dist, path, pathPolyline, nil
}

// NearestNode snap a coordinate to the nearest graph node and return its osm
// id and position. entry point for clients that have a gps fix, not a node id.
func (rs *RoutingService) NearestNode(lat, lon float64) (int64, float64, float64, error) {
	nearest, ok := rs.spatialIndex.SnapToNearestNode(lat, lon, rs.searchRadius)
	if !ok {
		return 0, 0, 0, util.WrapErrorf(ErrNodeNotFound, util.ErrNotFound,
			"no graph node within %.0f meters of %f,%f", rs.searchRadius*1000, lat, lon)
	}

	vertex := rs.engine.GetGraph().GetVertex(nearest)
	return vertex.GetOsmId(), vertex.GetLat(), vertex.GetLon(), nil
}

func (rs *RoutingService) GraphInfo() (int, int, *datastructure.BoundingBox) {
	graph := rs.engine.GetGraph()
	return graph.NumberOfVertices(), graph.NumberOfEdges(), graph.GetBoundingBox()
}
