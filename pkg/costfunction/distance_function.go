package costfunction

type DistanceFunction struct {
}

func NewDistanceCostFunction() *DistanceFunction {
	return &DistanceFunction{}
}

// GetWeight edge length in meters, speed plays no role.
func (df *DistanceFunction) GetWeight(e EdgeAttributes) float64 {
	return e.GetLength()
}
