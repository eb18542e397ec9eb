package analysis

import (
	"fmt"
	"sort"
)

// Resample evaluates curve on a new grid by linear interpolation between the
// two nearest source points. Target points outside the source range get 0:
// no signal is assumed beyond the measured range, which means residuals at
// the spectrum edges vanish there by construction rather than extrapolating.
//
// Resampling a curve onto its own grid reproduces it exactly, since every
// target point lands on a source point.
func Resample(curve Curve, target []float64) (Curve, error) {
	if len(curve.X) < 2 {
		return Curve{}, fmt.Errorf("%w: source curve needs at least 2 points, got %d",
			ErrInvalidInput, len(curve.X))
	}
	if len(curve.X) != len(curve.Y) {
		return Curve{}, fmt.Errorf("%w: source curve has %d grid points but %d intensities",
			ErrInvalidInput, len(curve.X), len(curve.Y))
	}
	if err := validateGrid(curve.X); err != nil {
		return Curve{}, err
	}

	y := make([]float64, len(target))
	for i, t := range target {
		y[i] = interpolate(curve, t)
	}
	return Curve{X: target, Y: y}, nil
}

// interpolate returns the linearly interpolated value of curve at t, or 0
// outside [curve.X[0], curve.X[last]].
func interpolate(curve Curve, t float64) float64 {
	x, yv := curve.X, curve.Y
	n := len(x)
	if t < x[0] || t > x[n-1] {
		return 0
	}
	// First index with x[j] >= t; j is in [0, n-1] because t <= x[n-1].
	j := sort.SearchFloat64s(x, t)
	if x[j] == t {
		return yv[j]
	}
	frac := (t - x[j-1]) / (x[j] - x[j-1])
	return yv[j-1] + frac*(yv[j]-yv[j-1])
}
