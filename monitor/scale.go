package monitor

import "math"

// Rescale shrinks values so every element fits within ±limit. When they
// already fit, values is returned as is with factor 1. The input is never
// modified.
func Rescale(values []float64, limit float64) (scaled []float64, factor float64) {
	if len(values) == 0 {
		return values, 1
	}

	maxVal, minVal := values[0], values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
		if v < minVal {
			minVal = v
		}
	}
	if maxVal <= limit && minVal >= -limit {
		return values, 1
	}

	factor = limit / math.Max(math.Abs(maxVal), math.Abs(minVal))
	scaled = make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * factor
	}
	return scaled, factor
}
