package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

// BuildGraph pack the scanned edges into the final adjacency-array graph. each
// vertex owns the contiguous run outEdges[firstOut(u) : firstOut(u+1)), the
// extra sentinel vertex at the end closes the last run.
func (p *OsmParser) BuildGraph(scannedEdges []Edge) *datastructure.Graph {
	var (
		outEdges [][]datastructure.OutEdge = make([][]datastructure.OutEdge, len(p.nodeIDMap))
		vertices []datastructure.Vertex    = make([]datastructure.Vertex, len(p.nodeIDMap)+1)
	)

	// invert nodeIDMap so every internal index knows its openstreetmap node id
	osmIds := make([]int64, len(p.nodeIDMap))
	for osmId, idx := range p.nodeIDMap {
		osmIds[idx] = osmId
	}

	for _, e := range scannedEdges {
		u := e.GetFrom()
		outEdges[u] = append(outEdges[u], datastructure.NewOutEdge(e.GetTo(),
			e.GetDistance(), e.GetSpeed(), e.GetFlags()))
	}

	for i := 0; i < len(p.nodeIDMap); i++ {
		coord := p.acceptedNodeMap[osmIds[i]]
		vertices[i] = datastructure.NewVertex(coord.lat, coord.lon, datastructure.Index(i), osmIds[i])
	}

	outEdgeOffset := datastructure.Index(0)
	for i := 0; i < len(vertices)-1; i++ {
		vertices[i].SetFirstOut(outEdgeOffset)
		outEdgeOffset += datastructure.Index(len(outEdges[i]))
	}

	vertices[len(vertices)-1] = datastructure.NewVertex(0, 0, datastructure.Index(len(vertices)-1), 0)
	vertices[len(vertices)-1].SetFirstOut(outEdgeOffset)

	flattenOutEdges := flatten(outEdges)
	graph := datastructure.NewGraph(vertices, flattenOutEdges)

	return graph
}

func flatten[T any](container [][]T) []T {
	finalSize := 0
	for _, part := range container {
		finalSize += len(part)
	}

	result := make([]T, finalSize)
	idx := 0
	for _, part := range container {
		for _, elem := range part {
			result[idx] = elem
			idx++
		}
	}
	return result
}
