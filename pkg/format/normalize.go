package format

import "math"

// Normalize maps a raw value into the coordinate space the interpolator
// consumes, branching on the scale family.
//
// Sequential scales use (value - min) / (max - min) over the dataset's
// extracted values, not the scale's own domain. A flat dataset makes the
// division non-finite; the result is passed through unchanged and the
// interpolator clamps it to the first range color.
//
// Diverging scales use value / max(|v|), a signed ratio to the largest
// magnitude in the dataset. The result is deliberately not confined to
// [0,1]: negative positions select the negative half of the domain.
//
// An unknown scale family returns ok=false and the caller skips color
// computation entirely.
func Normalize(value float64, dataset []float64, scale ColorScale) (pos float64, ok bool) {
	switch scale.Family {
	case ScaleSequential:
		min, max := extent(dataset)
		return (value - min) / (max - min), true
	case ScaleDiverging:
		return value / maxAbs(dataset), true
	default:
		return 0, false
	}
}

// extent returns the minimum and maximum of vals.
// An empty dataset yields (0, 0), which normalizes to a non-finite
// position and clamps downstream.
func extent(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// maxAbs returns the largest absolute value in vals, or 0 when empty.
func maxAbs(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}
