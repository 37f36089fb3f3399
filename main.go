package main

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/osmparser"
)

// end to end smoke run of the preprocessing pipeline: pbf in, graph file out,
// graph file back in.
func main() {
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	osmParser := osmparser.NewOSMParser()
	graph, err := osmParser.Parse("./data/solo_jogja.osm.pbf", logger)
	if err != nil {
		panic(err)
	}

	if err := graph.WriteGraph("./data/solo_jogja.graph"); err != nil {
		panic(err)
	}
	if _, err := datastructure.ReadGraph("./data/solo_jogja.graph"); err != nil {
		panic(err)
	}
}
