package controllers

import (
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type RoutingService interface {
	Route(sourceOsmId, targetOsmId int64, vehicle, metric string) (float64, float64, [][]float64, string, error)
	NearestNode(lat, lon float64) (int64, float64, float64, error)
}

type GraphInfoService interface {
	GraphInfo() (int, int, *datastructure.BoundingBox)
}
