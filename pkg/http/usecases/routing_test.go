package usecases_test

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/osmroute/pkg"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

/*
same network as the dijkstra tests, addressed by osm node ids:

	101(0,1) ---10---> 102(1,1)
	^                  ^
	|                  |
	10                 5
	|                  |
	100(0,0) ---5----> 103(1,0)

100->101, 101->102: length 10, way speed 10 m/s, every mode
100->103, 103->102: length  5, way speed  1 m/s, car only
*/
func newTestService(t *testing.T) *usecases.RoutingService {
	t.Helper()

	a := da.NewVertex(0.0, 0.0, 0, 100)
	a.SetFirstOut(0)
	b := da.NewVertex(0.0, 1.0, 1, 101)
	b.SetFirstOut(2)
	c := da.NewVertex(1.0, 1.0, 2, 102)
	c.SetFirstOut(3)
	d := da.NewVertex(1.0, 0.0, 3, 103)
	d.SetFirstOut(3)
	sentinel := da.NewVertex(0, 0, 4, 0)
	sentinel.SetFirstOut(4)

	outEdges := []da.OutEdge{
		da.NewOutEdge(1, 10.0, 10.0, pkg.FLAG_ALL),
		da.NewOutEdge(3, 5.0, 1.0, pkg.FLAG_CAR),
		da.NewOutEdge(2, 10.0, 10.0, pkg.FLAG_ALL),
		da.NewOutEdge(2, 5.0, 1.0, pkg.FLAG_CAR),
	}

	graph := da.NewGraph([]da.Vertex{a, b, c, d, sentinel}, outEdges)
	require.NoError(t, graph.Validate())

	engine := routing.NewRoutingEngine(graph, zap.NewNop())

	rtree := spatialindex.NewRtree()
	rtree.Build(graph, 0.05, zap.NewNop())

	return usecases.NewRoutingService(zap.NewNop(), engine, rtree, 10.0)
}

func TestRouteHappyPath(t *testing.T) {
	rs := newTestService(t)

	eta, dist, path, pathPolyline, err := rs.Route(100, 102, "car", "distance")
	require.NoError(t, err)

	assert.InDelta(t, 10.0, dist, 1e-6)
	assert.InDelta(t, 10.0, eta, 1e-6)
	assert.Equal(t, [][]float64{{1.0, 0.0}, {1.0, 1.0}}, path)
	assert.Equal(t, geo.PoylineFromCoords([]geo.Coordinate{
		geo.NewCoordinate(1.0, 0.0),
		geo.NewCoordinate(1.0, 1.0),
	}), pathPolyline)
}

func TestRouteUnknownSource(t *testing.T) {
	rs := newTestService(t)

	_, _, _, _, err := rs.Route(999, 102, "car", "time")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecases.ErrNodeNotFound)
	assertNotFoundCode(t, err)
	assert.Contains(t, err.Error(), "source osm node id 999")
}

func TestRouteUnknownTarget(t *testing.T) {
	rs := newTestService(t)

	_, _, _, _, err := rs.Route(100, 999, "car", "time")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecases.ErrNodeNotFound)
	assertNotFoundCode(t, err)
	assert.Contains(t, err.Error(), "target osm node id 999")
}

func TestRouteNoRoute(t *testing.T) {
	rs := newTestService(t)

	// 103 only leads to 102, 101 is unreachable from there
	_, _, _, _, err := rs.Route(103, 101, "car", "time")
	require.Error(t, err)
	assert.ErrorIs(t, err, usecases.ErrRouteNotFound)
	assertNotFoundCode(t, err)
	assert.Contains(t, err.Error(), "no car route found")
}

func TestRouteUnknownVehicleFallsBackToCar(t *testing.T) {
	rs := newTestService(t)

	_, dist, _, _, err := rs.Route(100, 102, "horse", "distance")
	require.NoError(t, err)
	assert.InDelta(t, 10.0, dist, 1e-6)
}

func TestRouteSourceEqualsTarget(t *testing.T) {
	rs := newTestService(t)

	eta, dist, path, _, err := rs.Route(102, 102, "car", "time")
	require.NoError(t, err)
	assert.Equal(t, 0.0, eta)
	assert.Equal(t, 0.0, dist)
	assert.Empty(t, path)
}

func TestNearestNodeSnaps(t *testing.T) {
	rs := newTestService(t)

	osmNodeId, lat, lon, err := rs.NearestNode(0.001, 0.001)
	require.NoError(t, err)
	assert.Equal(t, int64(100), osmNodeId)
	assert.Equal(t, 0.0, lat)
	assert.Equal(t, 0.0, lon)
}

func TestNearestNodeMiss(t *testing.T) {
	rs := newTestService(t)

	_, _, _, err := rs.NearestNode(45.0, 90.0)
	require.Error(t, err)
	assertNotFoundCode(t, err)
}

func TestGraphInfo(t *testing.T) {
	rs := newTestService(t)

	vertices, edges, bbox := rs.GraphInfo()
	assert.Equal(t, 4, vertices)
	assert.Equal(t, 4, edges)
	require.NotNil(t, bbox)
	assert.Equal(t, 0.0, bbox.GetMinLat())
	assert.Equal(t, 1.0, bbox.GetMaxLon())
}

func assertNotFoundCode(t *testing.T, err error) {
	t.Helper()
	var werr *util.Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, util.ErrNotFound, werr.Code())
}
