// SPDX-License-Identifier: EPL-2.0

// Package utils holds scalar sample helpers shared by the decoders, the
// format converters and the mixer.
package utils

import "math"

const pcm16Scale = 32768.0

// PCM16ToFloat32 maps a 16-bit sample to [-1, 1).
func PCM16ToFloat32(v int16) float32 {
	return float32(v) / pcm16Scale
}

// Float32ToPCM16 is the inverse of PCM16ToFloat32. Values outside [-1, 1)
// saturate, and any value produced by PCM16ToFloat32 converts back exactly.
func Float32ToPCM16(x float32) int16 {
	v := x * pcm16Scale
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}
	// NaN fails both comparisons above
	if v != v {
		return 0
	}

	return int16(v)
}

// SaturateInt16 clamps v into the int16 range.
func SaturateInt16(v int32) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// CubicInterpolate evaluates a Catmull-Rom spline through y0..y3 at x, the
// fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := 0.5 * (y2 - y0)

	return ((a*x+b)*x+c)*x + y1
}
