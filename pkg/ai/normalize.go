package ai

// Range is the expected domain of one input feature.
type Range struct {
	Min float64
	Max float64
}

// Normalize maps v from the range onto [0, 1]. Values outside the range
// are not clamped.
func (r Range) Normalize(v float64) float64 {
	return (v - r.Min) / (r.Max - r.Min)
}

var (
	ElapsedTimeRange        = Range{Min: 0, Max: 60}
	BeastSpeedRange         = Range{Min: 0, Max: 75}
	BeastRotationSpeedRange = Range{Min: 50, Max: 360}
	BeastPositionRange      = Range{Min: -70, Max: 70}
	GridPositionRange       = Range{Min: 0, Max: 159}
	BallCarrierRange        = Range{Min: -1, Max: 7}
	PositionXRange          = Range{Min: -60, Max: 60}
	PositionZRange          = Range{Min: -50, Max: 50}
	DistanceRange           = Range{Min: 0, Max: 130}
	RotationRange           = Range{Min: -1, Max: 360}
	LivesRange              = Range{Min: -1, Max: 9}
	ScoreRange              = Range{Min: -11, Max: 70}
)
