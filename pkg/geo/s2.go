package geo

import (
	"github.com/golang/geo/s2"
)

// AngleDistance. angular distance between two coordinates on the unit
// sphere. monotone in the great-circle distance, so it is enough for
// ordering snap candidates without the haversine trig per comparison.
func AngleDistance(a, b Coordinate) float64 {
	pointA := s2.PointFromLatLng(s2.LatLngFromDegrees(a.Lat, a.Lon))
	pointB := s2.PointFromLatLng(s2.LatLngFromDegrees(b.Lat, b.Lon))
	return float64(pointA.Distance(pointB))
}
