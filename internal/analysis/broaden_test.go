package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/raman_fitter_go/internal/theory"
)

func uniformGrid(min, max, step float64) []float64 {
	var grid []float64
	for x := min; x <= max+step/2; x += step {
		grid = append(grid, x)
	}
	return grid
}

func TestLorentzianShape(t *testing.T) {
	assert.Equal(t, 1.0, Lorentzian(0, 10))
	// Half maximum sits at d = ±width.
	assert.InDelta(t, 0.5, Lorentzian(10, 10), 1e-15)
	assert.InDelta(t, 0.5, Lorentzian(-10, 10), 1e-15)
}

func TestBroadenSinglePeak(t *testing.T) {
	peaks := theory.PeakSet{Name: "test", Peaks: []theory.Peak{{Wavenumber: 310, Intensity: 1.0}}}
	grid := uniformGrid(300, 330, 1)

	curve, err := Broaden(peaks, grid, 5, 4)
	require.NoError(t, err)
	require.Len(t, curve.Y, len(grid))

	// Curve value equals the peak intensity exactly at the shifted position.
	peakIdx := 15 // x = 315 = 310 + shift
	assert.Equal(t, 315.0, curve.X[peakIdx])
	assert.InDelta(t, 1.0, curve.Y[peakIdx], 1e-15)

	// Strictly decreasing moving away from the peak on both sides.
	for i := peakIdx; i < len(grid)-1; i++ {
		assert.Greater(t, curve.Y[i], curve.Y[i+1], "right tail at index %d", i)
	}
	for i := peakIdx; i > 0; i-- {
		assert.Greater(t, curve.Y[i], curve.Y[i-1], "left tail at index %d", i)
	}
}

func TestBroadenLinearInIntensity(t *testing.T) {
	base := theory.Spectra["SnCl6"]
	scaled := theory.PeakSet{Name: "scaled"}
	const k = 3.5
	for _, p := range base.Peaks {
		scaled.Peaks = append(scaled.Peaks, theory.Peak{Wavenumber: p.Wavenumber, Intensity: k * p.Intensity})
	}
	grid := uniformGrid(100, 400, 2)

	curveBase, err := Broaden(base, grid, 0, 6)
	require.NoError(t, err)
	curveScaled, err := Broaden(scaled, grid, 0, 6)
	require.NoError(t, err)

	for i := range grid {
		assert.InDelta(t, k*curveBase.Y[i], curveScaled.Y[i], 1e-9)
	}
}

func TestBroadenShiftInvariance(t *testing.T) {
	base := theory.Spectra["SnCl3Br3 (mer)"]
	const shift = -12.5
	moved := theory.PeakSet{Name: "moved"}
	for _, p := range base.Peaks {
		moved.Peaks = append(moved.Peaks, theory.Peak{Wavenumber: p.Wavenumber + shift, Intensity: p.Intensity})
	}
	grid := uniformGrid(50, 350, 1)

	shifted, err := Broaden(base, grid, shift, 4)
	require.NoError(t, err)
	preShifted, err := Broaden(moved, grid, 0, 4)
	require.NoError(t, err)

	for i := range grid {
		assert.InDelta(t, preShifted.Y[i], shifted.Y[i], 1e-9)
	}
}

func TestBroadenEmptyPeakSet(t *testing.T) {
	grid := uniformGrid(0, 100, 5)
	curve, err := Broaden(theory.PeakSet{Name: "empty"}, grid, 0, 4)
	require.NoError(t, err)
	for i, y := range curve.Y {
		assert.Zero(t, y, "grid point %d", i)
	}
}

func TestBroadenInvalidInputs(t *testing.T) {
	peaks := theory.Spectra["SnCl6"]
	grid := uniformGrid(0, 100, 5)

	tests := []struct {
		name string
		grid []float64
		fwhm float64
	}{
		{"zero fwhm", grid, 0},
		{"negative fwhm", grid, -2},
		{"single-point grid", []float64{100}, 4},
		{"empty grid", nil, 4},
		{"non-increasing grid", []float64{100, 100, 105}, 4},
		{"decreasing grid", []float64{105, 100}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Broaden(peaks, tt.grid, 0, tt.fwhm)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestBroadenAllMatchesSequential(t *testing.T) {
	grid := uniformGrid(80, 320, 1)
	sets := theory.Ordered()

	curves, err := BroadenAll(sets, grid, 3, 5)
	require.NoError(t, err)
	require.Len(t, curves, theory.NumReferences)

	// Output order is index-aligned with the input regardless of which
	// goroutine finishes first.
	for i, set := range sets {
		want, err := Broaden(set, grid, 3, 5)
		require.NoError(t, err)
		assert.Equal(t, want.Y, curves[i].Y, "reference %s", set.Name)
	}
}

func TestBroadenAllInvalidFWHM(t *testing.T) {
	grid := uniformGrid(80, 320, 1)
	_, err := BroadenAll(theory.Ordered(), grid, 0, math.Inf(-1))
	require.ErrorIs(t, err, ErrInvalidParameter)
}
