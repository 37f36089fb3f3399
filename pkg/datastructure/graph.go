package datastructure

import (
	"math"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

type Index uint32

const (
	INVALID_VERTEX_ID Index = math.MaxUint32
	INVALID_EDGE_ID   Index = math.MaxUint32
)

type Vertex struct {
	lat      float64
	lon      float64
	firstOut Index // index of the first outEdge of this vertex in the flattened graph.outEdges array
	id       Index
	osmId    int64
}

func NewVertex(lat, lon float64, id Index, osmId int64) Vertex {
	return Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		osmId: osmId,
	}
}

func (v *Vertex) SetFirstOut(firstOut Index) {
	v.firstOut = firstOut
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetFirstOut() Index {
	return v.firstOut
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

// OutEdge is one directed arc of the packed adjacency array. arcs leaving the
// same tail vertex are contiguous, delimited by the tail's firstOut and the
// next vertex's firstOut.
type OutEdge struct {
	head  Index
	dist  float64 // meter
	speed float64 // meter/second
	flags pkg.VehicleFlag
}

func NewOutEdge(head Index, dist, speed float64, flags pkg.VehicleFlag) OutEdge {
	return OutEdge{
		head:  head,
		dist:  dist,
		speed: speed,
		flags: flags,
	}
}

func (e OutEdge) GetHead() Index {
	return e.head
}

func (e OutEdge) GetLength() float64 {
	return e.dist
}

func (e OutEdge) GetSpeed() float64 {
	return e.speed
}

func (e OutEdge) GetFlags() pkg.VehicleFlag {
	return e.flags
}

// AllowsVehicle one shared mode bit is enough for permission.
func (e OutEdge) AllowsVehicle(vehicle pkg.VehicleFlag) bool {
	return e.flags&vehicle != 0
}

// main routing graph. static (i.e. can't add new edges after construction).
// shared read-only by every concurrent query, immutability is the only
// synchronization.
type Graph struct {
	vertices []Vertex // one extra sentinel vertex at the end, so vertices[u+1].firstOut is valid for every real vertex u
	outEdges []OutEdge
	osmIdMap map[int64]Index // external osm node id -> internal dense index

	boundingBox *BoundingBox
}

func NewGraph(vertices []Vertex, outEdges []OutEdge) *Graph {
	g := &Graph{
		vertices: vertices,
		outEdges: outEdges,
		osmIdMap: make(map[int64]Index, len(vertices)),
	}
	if len(vertices) == 0 {
		return g
	}

	bb := NewBoundingBox(vertices[0].lat, vertices[0].lon, vertices[0].lat, vertices[0].lon)
	for i := 0; i < g.NumberOfVertices(); i++ {
		v := &vertices[i]
		g.osmIdMap[v.osmId] = v.id
		bb.Extend(v.lat, v.lon)
	}
	g.boundingBox = bb
	return g
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices) - 1
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.vertices[u+1].firstOut - g.vertices[u].firstOut
}

// GetExitOffset. index of the first out edge of u in the flat out edge array.
func (g *Graph) GetExitOffset(u Index) Index {
	return g.vertices[u].firstOut
}

func (g *Graph) GetOutEdge(e Index) OutEdge {
	return g.outEdges[e]
}

func (g *Graph) GetVertex(u Index) Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e OutEdge, id Index)) {
	for e := g.vertices[u].firstOut; e < g.vertices[u+1].firstOut; e++ {
		handle(g.outEdges[e], e)
	}
}

func (g *Graph) ForVertices(handle func(v Vertex, id Index)) {
	for i := 0; i < g.NumberOfVertices(); i++ {
		handle(g.vertices[i], Index(i))
	}
}

// ResolveOsmId translate a client-supplied osm node id to the internal dense
// index. the second result is false for ids outside the loaded graph.
func (g *Graph) ResolveOsmId(osmId int64) (Index, bool) {
	id, ok := g.osmIdMap[osmId]
	return id, ok
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}

// Validate check the packed adjacency invariants: the offset table must be
// non-decreasing, the sentinel offset must close exactly at the edge array
// length, and every arc head must be a real vertex. run once at load time,
// a graph that fails here must never serve queries.
func (g *Graph) Validate() error {
	n := g.NumberOfVertices()
	if n < 0 {
		return util.WrapErrorf(nil, util.ErrInvalidGraph, "graph has no sentinel vertex")
	}

	for u := 0; u < n; u++ {
		if g.vertices[u].firstOut > g.vertices[u+1].firstOut {
			return util.WrapErrorf(nil, util.ErrInvalidGraph,
				"offset table decreases at vertex %d", u)
		}
	}

	if int(g.vertices[n].firstOut) != len(g.outEdges) {
		return util.WrapErrorf(nil, util.ErrInvalidGraph,
			"sentinel offset %d does not close the edge array of length %d",
			g.vertices[n].firstOut, len(g.outEdges))
	}

	for i, e := range g.outEdges {
		if int(e.head) >= n {
			return util.WrapErrorf(nil, util.ErrInvalidGraph,
				"edge %d has dangling head %d (graph has %d vertices)", i, e.head, n)
		}
	}
	return nil
}
