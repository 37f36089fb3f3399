package osmparser

import (
	"github.com/lintang-b-s/osmroute/pkg"
	"github.com/lintang-b-s/osmroute/pkg/datastructure"
)

type NodeType uint8

const (
	END_NODE NodeType = iota
	BETWEEN_NODE
	JUNCTION_NODE
)

type nodeCoord struct {
	lat float64
	lon float64
}

type node struct {
	id    int64
	coord nodeCoord
}

type Edge struct {
	from     uint32
	to       uint32
	distance float64 // meter
	speed    float64 // meter/second
	flags    pkg.VehicleFlag
}

func NewEdge(from, to uint32, distance, speed float64, flags pkg.VehicleFlag) Edge {
	return Edge{
		from:     from,
		to:       to,
		distance: distance,
		speed:    speed,
		flags:    flags,
	}
}

func (e *Edge) GetFrom() datastructure.Index {
	return datastructure.Index(e.from)
}

func (e *Edge) GetTo() datastructure.Index {
	return datastructure.Index(e.to)
}

func (e *Edge) GetDistance() float64 {
	return e.distance
}

func (e *Edge) GetSpeed() float64 {
	return e.speed
}

func (e *Edge) GetFlags() pkg.VehicleFlag {
	return e.flags
}
