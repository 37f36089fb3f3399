package spatialindex

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

type Rtree struct {
	tr *rtree.RTreeG[VertexPoint]
}

// VertexPoint a graph vertex with its location, the leaf payload of the
// r-tree. snapping a raw gps coordinate to the road network means finding the
// nearest VertexPoint and routing from its vertex id.
type VertexPoint struct {
	id  datastructure.Index
	lat float64
	lon float64
}

func (vp VertexPoint) GetID() datastructure.Index {
	return vp.id
}

func (vp VertexPoint) GetLat() float64 {
	return vp.lat
}

func (vp VertexPoint) GetLon() float64 {
	return vp.lon
}

func newVertexPoint(id datastructure.Index, lat, lon float64) VertexPoint {
	return VertexPoint{
		id:  id,
		lat: lat,
		lon: lon,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[VertexPoint]
	return &Rtree{
		tr: &tr,
	}
}

// Build. build r-tree over the graph vertices, with each leaf having bounding box with radius boundingBoxRadius (in km)
func (rt *Rtree) Build(graph *datastructure.Graph, boundingBoxRadius float64, log *zap.Logger) {
	log.Info("Building R-tree spatial index...")
	graph.ForVertices(func(v datastructure.Vertex, id datastructure.Index) {
		lat := v.GetLat()
		lon := v.GetLon()

		lowerLat, lowerLon := geo.GetDestinationPoint(lat, lon, 225, boundingBoxRadius)
		upperLat, upperLon := geo.GetDestinationPoint(lat, lon, 45, boundingBoxRadius)

		rt.tr.Insert([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			newVertexPoint(id, lat, lon))
	})

	log.Info("R-tree spatial index built.")
}

// SearchWithinRadius search for all graph vertices within radius (in km) from the query point (qLat, qLon)
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []VertexPoint {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]VertexPoint, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data VertexPoint) bool {
			results = append(results, data)
			if len(results) >= 20 {
				return false
			}
			return true
		})
	return results
}

// SnapToNearestNode vertex closest to (qLat, qLon) among the candidates within
// radius km. reports false when no vertex is nearby at all.
func (rt *Rtree) SnapToNearestNode(qLat, qLon, radius float64) (datastructure.Index, bool) {
	candidates := rt.SearchWithinRadius(qLat, qLon, radius)
	if len(candidates) == 0 {
		return 0, false
	}

	q := geo.NewCoordinate(qLat, qLon)
	best := candidates[0]
	bestDist := geo.AngleDistance(q, geo.NewCoordinate(best.lat, best.lon))
	for _, c := range candidates[1:] {
		d := geo.AngleDistance(q, geo.NewCoordinate(c.lat, c.lon))
		if d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best.id, true
}
