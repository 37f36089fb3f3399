package geo

import (
	"github.com/twpayne/go-polyline"
)

// PoylineFromCoords encode coords as a google encoded polyline string
// (precision 5), the format the web client feeds straight into leaflet.
func PoylineFromCoords(coords []Coordinate) string {
	latLons := make([][]float64, len(coords))
	for i, c := range coords {
		latLons[i] = []float64{c.GetLat(), c.GetLon()}
	}
	return string(polyline.EncodeCoords(latLons))
}
