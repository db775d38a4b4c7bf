package scoring

import "github.com/okian/rondo/internal/config"

// Interpolate performs a piecewise-linear lookup of value over ordered
// (threshold, score) breakpoints. Values outside the table clamp to the
// nearest boundary score. For monotonic tables the result is monotonic
// non-decreasing in value.
func Interpolate(value float64, points []config.Breakpoint) float64 {
	if len(points) == 0 {
		return 0
	}
	if value <= points[0].Value {
		return points[0].Score
	}
	last := points[len(points)-1]
	if value >= last.Value {
		return last.Score
	}
	for i := 1; i < len(points); i++ {
		lo, hi := points[i-1], points[i]
		if value <= hi.Value {
			ratio := (value - lo.Value) / (hi.Value - lo.Value)
			return lo.Score + ratio*(hi.Score-lo.Score)
		}
	}
	return last.Score
}
