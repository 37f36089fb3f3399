package datastructure

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/util"
)

func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	// vertex count includes the sentinel vertex at the end.
	fmt.Fprintf(w, "%d %d\n", len(g.vertices), g.NumberOfEdges())

	for vId := 0; vId < len(g.vertices); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %s %s %d\n",
			v.firstOut, v.id, latF, lonF, v.osmId)
	}

	for _, e := range g.outEdges {
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
		speedF := strconv.FormatFloat(e.speed, 'f', -1, 64)

		fmt.Fprintf(w, "%d %s %s %d\n",
			e.head, distF, speedF, e.flags)
	}

	return w.Flush()
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)

	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "missing header")
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrInvalidGraph, "header: expected 2 fields, got %d", len(tokens))
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "header")
	}

	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "header")
	}

	if numVertices == 0 {
		return nil, util.WrapErrorf(nil, util.ErrInvalidGraph, "vertex array misses its sentinel")
	}

	vertices := make([]Vertex, numVertices)

	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "vertex %d", i)
		}
		vertices[i], err = parseVertex(vertexLine)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "vertex %d", i)
		}
	}

	outEdges := make([]OutEdge, numEdges)
	for i := 0; i < int(numEdges); i++ {
		outEdgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "out edge %d", i)
		}
		outEdges[i], err = parseOutEdge(outEdgeLine)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrInvalidGraph, "out edge %d", i)
		}
	}

	graph := NewGraph(vertices, outEdges)
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

func parseVertex(line string) (Vertex, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return Vertex{}, fmt.Errorf("expected 5 fields, got %d", len(tokens))
	}
	firstOut, err := ParseIndex(tokens[0])
	if err != nil {
		return Vertex{}, err
	}

	id, err := ParseIndex(tokens[1])
	if err != nil {
		return Vertex{}, err
	}

	lat, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Vertex{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Vertex{}, fmt.Errorf("lon: %w", err)
	}

	osmId, err := strconv.ParseInt(tokens[4], 10, 64)
	if err != nil {
		return Vertex{}, fmt.Errorf("osmId: %w", err)
	}

	return Vertex{
		firstOut: firstOut,
		lat:      lat, lon: lon, id: id, osmId: osmId,
	}, nil
}

func parseOutEdge(line string) (OutEdge, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 4 {
		return OutEdge{}, fmt.Errorf("expected 4 fields, got %d", len(tokens))
	}
	head, err := ParseIndex(tokens[0])
	if err != nil {
		return OutEdge{}, err
	}
	dist, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return OutEdge{}, err
	}
	speed, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return OutEdge{}, err
	}

	flags, err := strconv.ParseUint(tokens[3], 10, 8)
	if err != nil {
		return OutEdge{}, err
	}

	return NewOutEdge(head, dist, speed, pkg.VehicleFlag(flags)), nil
}
