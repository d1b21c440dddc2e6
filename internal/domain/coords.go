package domain

import "math"

// Point is a single landmark position. Coordinates may be pixels or
// percentages depending on context; a missing coordinate is NaN, matching
// the convention of the annotation tables. Missing is never zero.
type Point struct {
	X float64
	Y float64
}

// MissingPoint returns a point with both coordinates missing
func MissingPoint() Point {
	return Point{X: math.NaN(), Y: math.NaN()}
}

// Missing reports whether either coordinate is absent
func (p Point) Missing() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

// ToRemote converts absolute pixel coordinates to the percentage
// coordinates used by the annotation host. Missing coordinates pass
// through unchanged.
func ToRemote(x, y float64, width, height int) (xPct, yPct float64, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimension
	}
	if !math.IsNaN(x) {
		x = x / float64(width) * 100
	}
	if !math.IsNaN(y) {
		y = y / float64(height) * 100
	}
	return x, y, nil
}

// FromRemote converts percentage coordinates back to absolute pixels.
// Missing coordinates pass through unchanged.
func FromRemote(xPct, yPct float64, width, height int) (x, y float64, err error) {
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimension
	}
	if !math.IsNaN(xPct) {
		xPct = xPct * float64(width) / 100
	}
	if !math.IsNaN(yPct) {
		yPct = yPct * float64(height) / 100
	}
	return xPct, yPct, nil
}
