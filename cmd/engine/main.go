package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/http"
	"github.com/lintang-b-s/osmroute/pkg/http/usecases"
	"github.com/lintang-b-s/osmroute/pkg/logger"
	"github.com/lintang-b-s/osmroute/pkg/spatialindex"
	"github.com/lintang-b-s/osmroute/pkg/util"
	"go.uber.org/zap"
)

var (
	graphFile             = flag.String("graph_file", "./data/map.graph", "routing graph file written by cmd/preprocessor")
	leafBoundingBoxRadius = flag.Float64("leaf_bounding_box_radius", 0.05, "leaf node (r-tree) bounding box radius in km")
	snapRadius            = flag.Float64("snap_radius", 0.5, "nearest node search radius in km")
	useRateLimit          = flag.Bool("rate_limit", false, "rate limit api requests per client ip")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	if err := util.ReadConfig(); err != nil {
		panic(err)
	}

	routingEngine, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		panic(err)
	}

	rtree := spatialindex.NewRtree()
	rtree.Build(routingEngine.GetRoutingEngine().GetGraph(), *leafBoundingBoxRadius, logger)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine.GetRoutingEngine(), rtree, *snapRadius)

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	api.Use(ctx,
		logger, *useRateLimit, routingService, routingService)

	signal := http.GracefulShutdown()

	logger.Info("osmroute engine server stopped", zap.String("signal", signal.String()))
	cleanup()
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
