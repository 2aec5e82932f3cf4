package anim

import (
	"fmt"

	"github.com/fogleman/ease"
)

// Curve maps normalized time in [0,1] to normalized progress. A curve must
// satisfy c(0) = 0 and c(1) = 1; values in between may overshoot for
// back/elastic style easings.
type Curve func(t float64) float64

// Standard is the default easing used across the module, the closest
// analogue of the Material fast-out-slow-in curve.
var Standard Curve = ease.InOutCubic

// Linear passes time through unchanged.
var Linear Curve = ease.Linear

// Interval restricts c to a sub-interval of the clock: the result is 0
// before begin, 1 after end, and c stretched over [begin, end] in between.
// Panics unless 0 <= begin < end <= 1, which is a programming error.
func Interval(begin, end float64, c Curve) Curve {
	if begin < 0 || end > 1 || begin >= end {
		panic(fmt.Sprintf("anim: invalid curve interval [%v, %v]", begin, end))
	}
	return func(t float64) float64 {
		return c(clamp01((t - begin) / (end - begin)))
	}
}

// Flip reverses c in time: Flip(c)(t) = 1 - c(1-t). A flipped ease-out plays
// as the matching ease-in. Flip(Flip(c)) behaves as c.
func Flip(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(1-t)
	}
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
