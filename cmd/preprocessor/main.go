package main

import (
	"flag"

	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
)

var (
	mapFile   = flag.String("map_file", "./data/washington.osm.pbf", "openstreetmap pbf extract to parse")
	graphFile = flag.String("graph_file", "./data/map.graph", "output routing graph file")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOSMParser()
	graph, err := osmParser.Parse(*mapFile, logger)
	if err != nil {
		panic(err)
	}

	err = graph.WriteGraph(*graphFile)
	if err != nil {
		panic(err)
	}

	logger.Sugar().Infof("graph with %d vertices and %d edges written to %s",
		graph.NumberOfVertices(), graph.NumberOfEdges(), *graphFile)
}
