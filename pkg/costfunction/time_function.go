package costfunction

import (
	"github.com/lintang-b-s/osmroute/pkg"
)

type TimeFunction struct {
	maxSpeed float64 // meter/second cap of the vehicle class
}

func NewTimeCostFunction(vehicle pkg.VehicleFlag) *TimeFunction {
	return &TimeFunction{
		maxSpeed: vehicle.MaxSpeed(),
	}
}

// GetWeight travel time over the edge in seconds. the stored way speed is
// capped at the vehicle class maximum, so a bike on a motorway still rides at
// bike pace.
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	speed := e.GetSpeed()
	if speed == 0 || speed > tf.maxSpeed {
		speed = tf.maxSpeed
	}
	return e.GetLength() / speed
}
