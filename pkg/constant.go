package pkg

// VehicleFlag is a bitmask of travel modes permitted on an edge. Exactly one
// bit is set per mode, so edgeFlags&requested != 0 tests permission.
type VehicleFlag uint8

const (
	FLAG_CAR VehicleFlag = 1 << iota
	FLAG_BIKE
	FLAG_WALK

	FLAG_ALL = FLAG_CAR | FLAG_BIKE | FLAG_WALK
)

const (
	INF_WEIGHT float64 = 1e15

	// vehicle class maximum speeds in meter/second
	MAX_SPEED_CAR  float64 = 130.0 / 3.6
	MAX_SPEED_BIKE float64 = 15.0 / 3.6
	MAX_SPEED_WALK float64 = 5.0 / 3.6
)

// VehicleFromString map vehicle query param to its flag. unrecognized names
// fall back to car, same policy as the query layer default.
func VehicleFromString(vehicle string) VehicleFlag {
	switch vehicle {
	case "car":
		return FLAG_CAR
	case "bike":
		return FLAG_BIKE
	case "walk":
		return FLAG_WALK
	default:
		return FLAG_CAR
	}
}

func (f VehicleFlag) String() string {
	switch f {
	case FLAG_CAR:
		return "car"
	case FLAG_BIKE:
		return "bike"
	case FLAG_WALK:
		return "walk"
	default:
		return "unknown"
	}
}

// MaxSpeed upper bound of the vehicle class in meter/second. travel time on an
// edge never assumes a speed above this, no matter what the way tag says.
func (f VehicleFlag) MaxSpeed() float64 {
	switch f {
	case FLAG_BIKE:
		return MAX_SPEED_BIKE
	case FLAG_WALK:
		return MAX_SPEED_WALK
	default:
		return MAX_SPEED_CAR
	}
}
