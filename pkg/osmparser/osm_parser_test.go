package osmparser

import (
	"testing"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *OsmParser {
	p := NewOSMParser()
	p.acceptedNodeMap[1] = nodeCoord{lat: -7.55, lon: 110.79}
	p.acceptedNodeMap[2] = nodeCoord{lat: -7.55, lon: 110.80}
	p.acceptedNodeMap[3] = nodeCoord{lat: -7.56, lon: 110.80}
	return p
}

func twoNodeWay(tags ...osm.Tag) *osm.Way {
	way := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}
	way.Tags = append(way.Tags, tags...)
	return way
}

func parseWay(p *OsmParser, way *osm.Way) []Edge {
	edgeSet := make(map[uint32]map[uint32]struct{})
	scannedEdges := make([]Edge, 0)
	p.processWay(way, edgeSet, &scannedEdges)
	return scannedEdges
}

func TestRoadTypeMaxSpeed(t *testing.T) {
	tests := []struct {
		roadType string
		want     float64
	}{
		{"motorway", 100},
		{"trunk", 70},
		{"residential", 30},
		{"living_street", 5},
		{"cycleway", 15},
		{"footway", 5},
		{"no_such_class", 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, roadTypeMaxSpeed(tt.roadType), "class %q", tt.roadType)
	}
}

func TestWayVehicleFlags(t *testing.T) {
	tests := []struct {
		name string
		tags osm.Tags
		want pkg.VehicleFlag
	}{
		{"motorway is car only",
			osm.Tags{{Key: "highway", Value: "motorway"}},
			pkg.FLAG_CAR},
		{"residential serves every mode",
			osm.Tags{{Key: "highway", Value: "residential"}},
			pkg.FLAG_ALL},
		{"footway is foot only",
			osm.Tags{{Key: "highway", Value: "footway"}},
			pkg.FLAG_WALK},
		{"path serves bike and foot",
			osm.Tags{{Key: "highway", Value: "path"}},
			pkg.FLAG_BIKE | pkg.FLAG_WALK},
		{"cycleway is bike only",
			osm.Tags{{Key: "highway", Value: "cycleway"}},
			pkg.FLAG_BIKE},
		{"access no closes the way",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "access", Value: "no"}},
			0},
		{"access private closes the way",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "access", Value: "private"}},
			0},
		{"foot yes grants walking on a motorway",
			osm.Tags{{Key: "highway", Value: "motorway"}, {Key: "foot", Value: "yes"}},
			pkg.FLAG_CAR | pkg.FLAG_WALK},
		{"bicycle no revokes bikes",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "bicycle", Value: "no"}},
			pkg.FLAG_CAR | pkg.FLAG_WALK},
		{"bicycle yes grants bikes on a footway",
			osm.Tags{{Key: "highway", Value: "footway"}, {Key: "bicycle", Value: "yes"}},
			pkg.FLAG_WALK | pkg.FLAG_BIKE},
		{"motor_vehicle no revokes cars",
			osm.Tags{{Key: "highway", Value: "residential"}, {Key: "motor_vehicle", Value: "no"}},
			pkg.FLAG_BIKE | pkg.FLAG_WALK},
		{"not a road at all",
			osm.Tags{{Key: "building", Value: "yes"}},
			0},
		{"roundabout without highway class",
			osm.Tags{{Key: "junction", Value: "roundabout"}},
			pkg.FLAG_ALL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			way := &osm.Way{Tags: tt.tags}
			assert.Equal(t, tt.want, wayVehicleFlags(way))
		})
	}
}

func TestAcceptOsmWay(t *testing.T) {
	accepted := &osm.Way{Tags: osm.Tags{{Key: "highway", Value: "residential"}}}
	assert.True(t, acceptOsmWay(accepted))

	building := &osm.Way{Tags: osm.Tags{{Key: "building", Value: "yes"}}}
	assert.False(t, acceptOsmWay(building))

	proposed := &osm.Way{Tags: osm.Tags{{Key: "highway", Value: "proposed"}}}
	assert.False(t, acceptOsmWay(proposed))

	circular := &osm.Way{Tags: osm.Tags{{Key: "junction", Value: "circular"}}}
	assert.True(t, acceptOsmWay(circular))
}

func TestMaxSpeedParsing(t *testing.T) {
	tests := []struct {
		name    string
		tags    []osm.Tag
		wantKmh float64
	}{
		{"mph converts to km/h", []osm.Tag{{Key: "maxspeed", Value: "40 mph"}}, 40 * 1.60934},
		{"bare number is km/h", []osm.Tag{{Key: "maxspeed", Value: "50"}}, 50},
		{"explicit km/h", []osm.Tag{{Key: "maxspeed", Value: "30 km/h"}}, 30},
		{"knots convert to km/h", []osm.Tag{{Key: "maxspeed", Value: "10 knots"}}, 10 * 1.852},
		{"signals falls back to the class speed", []osm.Tag{{Key: "maxspeed", Value: "signals"}}, 30},
		{"no tag falls back to the class speed", nil, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			edges := parseWay(p, twoNodeWay(tt.tags...))

			require.NotEmpty(t, edges)
			assert.InDelta(t, tt.wantKmh/3.6, edges[0].GetSpeed(), 1e-9)
		})
	}
}

func TestTwoWayStreetGetsBothArcs(t *testing.T) {
	p := newTestParser()
	edges := parseWay(p, twoNodeWay())

	require.Len(t, edges, 2)
	assert.Equal(t, datastructure.Index(0), edges[0].GetFrom())
	assert.Equal(t, datastructure.Index(1), edges[0].GetTo())
	assert.Equal(t, datastructure.Index(1), edges[1].GetFrom())
	assert.Equal(t, datastructure.Index(0), edges[1].GetTo())
	assert.Equal(t, pkg.FLAG_ALL, edges[0].GetFlags())
	assert.Equal(t, pkg.FLAG_ALL, edges[1].GetFlags())
}

func TestOneWayKeepsReverseWalkArc(t *testing.T) {
	p := newTestParser()
	edges := parseWay(p, twoNodeWay(osm.Tag{Key: "oneway", Value: "yes"}))

	require.Len(t, edges, 2)
	assert.Equal(t, datastructure.Index(0), edges[0].GetFrom())
	assert.Equal(t, datastructure.Index(1), edges[0].GetTo())
	assert.Equal(t, pkg.FLAG_ALL, edges[0].GetFlags())

	// pedestrians may still walk against the driving direction
	assert.Equal(t, datastructure.Index(1), edges[1].GetFrom())
	assert.Equal(t, datastructure.Index(0), edges[1].GetTo())
	assert.Equal(t, pkg.FLAG_WALK, edges[1].GetFlags())
}

func TestOneWayMinusOneReversesDirection(t *testing.T) {
	p := newTestParser()
	edges := parseWay(p, twoNodeWay(osm.Tag{Key: "oneway", Value: "-1"}))

	require.Len(t, edges, 2)
	assert.Equal(t, datastructure.Index(1), edges[0].GetFrom())
	assert.Equal(t, datastructure.Index(0), edges[0].GetTo())
	assert.Equal(t, pkg.FLAG_ALL, edges[0].GetFlags())
}

func TestOneWayCarOnlyHasNoWalkBack(t *testing.T) {
	p := newTestParser()
	way := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
		Tags: osm.Tags{
			{Key: "highway", Value: "motorway"},
			{Key: "oneway", Value: "yes"},
		},
	}
	edges := parseWay(p, way)

	require.Len(t, edges, 1)
	assert.Equal(t, pkg.FLAG_CAR, edges[0].GetFlags())
}

func TestRoundaboutIsImplicitlyOneWay(t *testing.T) {
	p := newTestParser()
	edges := parseWay(p, twoNodeWay(osm.Tag{Key: "junction", Value: "roundabout"}))

	require.Len(t, edges, 2)
	assert.Equal(t, datastructure.Index(0), edges[0].GetFrom())
	assert.Equal(t, datastructure.Index(1), edges[0].GetTo())
	assert.Equal(t, pkg.FLAG_ALL, edges[0].GetFlags())
	assert.Equal(t, pkg.FLAG_WALK, edges[1].GetFlags())
}

func TestEdgeDistanceFollowsGeometry(t *testing.T) {
	p := newTestParser()
	edges := parseWay(p, twoNodeWay())

	wantMeter := geo.CalculateHaversineDistance(-7.55, 110.79, -7.55, 110.80) * 1000
	require.Len(t, edges, 2)
	assert.InDelta(t, wantMeter, edges[0].GetDistance(), 1e-9)
}

func TestJunctionNodeSplitsWay(t *testing.T) {
	p := newTestParser()
	// node 2 also belongs to another way, so the chain 1-2-3 splits there
	p.wayNodeMap[2] = JUNCTION_NODE

	way := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}
	edges := parseWay(p, way)

	require.Len(t, edges, 4)
	assert.Len(t, p.nodeIDMap, 3)

	firstHop := geo.CalculateHaversineDistance(-7.55, 110.79, -7.55, 110.80) * 1000
	secondHop := geo.CalculateHaversineDistance(-7.55, 110.80, -7.56, 110.80) * 1000
	assert.InDelta(t, firstHop, edges[0].GetDistance(), 1e-9)
	assert.InDelta(t, secondHop, edges[2].GetDistance(), 1e-9)
}

func TestBetweenNodeIsContractedAway(t *testing.T) {
	p := newTestParser()
	// node 2 only shapes the way, it does not become a graph vertex
	p.wayNodeMap[2] = BETWEEN_NODE

	way := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}
	edges := parseWay(p, way)

	require.Len(t, edges, 2)
	assert.Len(t, p.nodeIDMap, 2)

	wantMeter := (geo.CalculateHaversineDistance(-7.55, 110.79, -7.55, 110.80) +
		geo.CalculateHaversineDistance(-7.55, 110.80, -7.56, 110.80)) * 1000
	assert.InDelta(t, wantMeter, edges[0].GetDistance(), 1e-9)
}

func TestBuildGraphFromWays(t *testing.T) {
	p := newTestParser()
	p.wayNodeMap[2] = JUNCTION_NODE

	edgeSet := make(map[uint32]map[uint32]struct{})
	scannedEdges := make([]Edge, 0)
	way1 := &osm.Way{
		ID:    1,
		Nodes: osm.WayNodes{{ID: 1}, {ID: 2}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}
	way2 := &osm.Way{
		ID:    2,
		Nodes: osm.WayNodes{{ID: 2}, {ID: 3}},
		Tags:  osm.Tags{{Key: "highway", Value: "residential"}},
	}
	p.processWay(way1, edgeSet, &scannedEdges)
	p.processWay(way2, edgeSet, &scannedEdges)

	graph := p.BuildGraph(scannedEdges)

	assert.Equal(t, 3, graph.NumberOfVertices())
	assert.Equal(t, 4, graph.NumberOfEdges())
	assert.NoError(t, graph.Validate())

	// node 2 sits between both ways, so it has arcs back to 1 and on to 3
	mid, ok := graph.ResolveOsmId(2)
	require.True(t, ok)
	assert.Equal(t, datastructure.Index(2), graph.GetOutDegree(mid))

	end, ok := graph.ResolveOsmId(3)
	require.True(t, ok)
	assert.Equal(t, datastructure.Index(1), graph.GetOutDegree(end))

	v := graph.GetVertex(mid)
	assert.Equal(t, -7.55, v.GetLat())
	assert.Equal(t, 110.80, v.GetLon())
}

func TestDuplicateEdgeIsDroppedOnce(t *testing.T) {
	p := newTestParser()

	edgeSet := make(map[uint32]map[uint32]struct{})
	scannedEdges := make([]Edge, 0)
	way := twoNodeWay()
	p.processWay(way, edgeSet, &scannedEdges)
	p.processWay(way, edgeSet, &scannedEdges)

	assert.Len(t, scannedEdges, 2)
}
