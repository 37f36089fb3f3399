package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"net/http"

	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/concurrent"
	"github.com/lintang-b-s/osmroute/pkg/costfunction"
	da "github.com/lintang-b-s/osmroute/pkg/datastructure"
	"github.com/lintang-b-s/osmroute/pkg/engine"
	"github.com/lintang-b-s/osmroute/pkg/engine/routing"
	log "github.com/lintang-b-s/osmroute/pkg/logger"

	_ "net/http/pprof"
)

var (
	graphFile  = flag.String("graph_file", "./data/map.graph", "routing graph file")
	numQueries = flag.Int("n", 10000, "number of random queries")
	numWorkers = flag.Int("workers", 16, "concurrent query workers")
	vehicle    = flag.String("vehicle", "car", "travel mode: car | bike | walk")
	metric     = flag.String("metric", "time", "cost metric: time | distance")
	seed       = flag.Int64("seed", 42, "random source seed, fixed for reproducible runs")
	outFile    = flag.String("out", "rand_queries_result.csv", "per-query result csv")
)

func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	re, err := engine.NewEngine(*graphFile, logger)
	if err != nil {
		panic(err)
	}

	g := re.GetRoutingEngine().GetGraph()
	n := g.NumberOfVertices()

	type spParam struct {
		row int
		s   da.Index
		t   da.Index
	}
	newSPParam := func(row int, s, t da.Index) spParam {
		return spParam{row, s, t}
	}

	rng := rand.New(rand.NewSource(*seed))
	queries := make([]spParam, *numQueries)
	for i := range queries {
		queries[i] = newSPParam(i, da.Index(rng.Intn(n)), da.Index(rng.Intn(n)))
	}

	lock := sync.Mutex{}

	randfout, err := os.Create(*outFile)
	if err != nil {
		panic(err)
	}
	defer randfout.Close()
	w := bufio.NewWriter(randfout)
	defer w.Flush()

	go func() {
		http.ListenAndServe("localhost:6060", nil)
	}()

	v := pkg.VehicleFromString(*vehicle)
	costFunction := costfunction.FromMetric(*metric, v)

	latencies := make([]float64, len(queries))
	settled := make([]int, len(queries))

	calcsSP := func(p spParam) any {

		s := p.s
		t := p.t
		row := p.row

		before := time.Now()
		query := routing.NewDijkstra(re.GetRoutingEngine(), costFunction, v)
		eta, dist, _, found := query.ShortestPathSearch(s, t)
		duration := time.Since(before)

		latencies[row] = float64(duration.Microseconds()) / 1000.0
		settled[row] = query.GetNumSettledNodes()

		lock.Lock()
		fmt.Fprintf(w, "%d %d %s %s %d %s %t\n", s, t,
			strconv.FormatFloat(eta, 'f', -1, 64),
			strconv.FormatFloat(dist, 'f', -1, 64),
			query.GetNumSettledNodes(),
			strconv.FormatFloat(latencies[row], 'f', -1, 64),
			found)
		lock.Unlock()

		if (row+1)%1000 == 0 {
			logger.Sugar().Infof("done query %v", row+1)
		}

		return nil
	}

	workers := concurrent.NewWorkerPool[spParam, any](*numWorkers, len(queries))

	for _, q := range queries {
		workers.AddJob(q)
	}

	workers.Close()
	workers.Start(calcsSP)
	workers.Wait()

	sort.Float64s(latencies)
	var sumLat float64
	var sumSettled int
	for i := range latencies {
		sumLat += latencies[i]
		sumSettled += settled[i]
	}
	logger.Sugar().Infof("%d queries: avg %.3f ms, p50 %.3f ms, p99 %.3f ms, avg settled nodes %d",
		len(queries),
		sumLat/float64(len(queries)),
		latencies[len(latencies)/2],
		latencies[len(latencies)*99/100],
		sumSettled/len(queries))
}
