// Package geometry holds the small numeric helpers shared by the render
// pipeline: style dimensions, scale clamping and fit-to-width scaling.
package geometry

import (
	"math"
	"strconv"
	"strings"
)

const (
	MinScale = 0.1
	MaxScale = 10.0
	// ZoomStep is the nominal scale change applied by one zoom request.
	ZoomStep = 0.2
)

// Dimension returns the numeric value of a computed style dimension such as
// "640px" or "640". Anything that does not parse yields 0.
func Dimension(style string) float64 {
	s := strings.TrimSpace(style)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ClampScale bounds s to [MinScale, MaxScale].
func ClampScale(s float64) float64 {
	switch {
	case math.IsNaN(s), s < MinScale:
		return MinScale
	case s > MaxScale:
		return MaxScale
	default:
		return s
	}
}

// RealScale is the scale at which a page whose viewport is viewportWidth wide
// fills containerWidth, rounded to two decimals.
func RealScale(containerWidth, viewportWidth float64) float64 {
	if viewportWidth <= 0 || containerWidth <= 0 {
		return 0
	}
	return Round2(containerWidth / viewportWidth)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
