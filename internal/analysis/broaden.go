package analysis

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/user/raman_fitter_go/internal/theory"
)

// Lorentzian evaluates the line-shape profile at distance d from the peak
// center. The curve has value 1 at d=0 and value 0.5 at d=±width, matching
// the width convention of the published theory tables (width is used directly
// as the half-maximum distance, not halved).
func Lorentzian(d, width float64) float64 {
	w2 := width * width
	return w2 / (d*d + w2)
}

// Broaden converts the discrete peaks of one theory spectrum into a
// continuous intensity curve on grid. Every peak is shifted by shift cm⁻¹ and
// broadened with the same Lorentzian width; peak heights scale with the
// tabulated intensities, so the curve value at a lone peak's shifted position
// equals its intensity exactly.
//
// Every peak contributes to every grid point. Tails are never truncated:
// grids run to a few thousand points and peak sets to a few tens, so the
// full O(peaks × points) sum stays cheap and exact.
//
// An empty PeakSet yields an all-zero curve.
func Broaden(peaks theory.PeakSet, grid []float64, shift, fwhm float64) (Curve, error) {
	if fwhm <= 0 {
		return Curve{}, fmt.Errorf("%w: fwhm must be positive, got %g", ErrInvalidParameter, fwhm)
	}
	if err := validateGrid(grid); err != nil {
		return Curve{}, err
	}

	y := make([]float64, len(grid))
	for _, p := range peaks.Peaks {
		center := p.Wavenumber + shift
		for i, x := range grid {
			y[i] += p.Intensity * Lorentzian(x-center, fwhm)
		}
	}
	return Curve{X: grid, Y: y}, nil
}

// BroadenAll broadens a set of reference spectra onto a shared grid. The ten
// broadenings are independent, so they run concurrently; the returned slice
// is index-aligned with sets regardless of completion order.
func BroadenAll(sets []theory.PeakSet, grid []float64, shift, fwhm float64) ([]Curve, error) {
	if fwhm <= 0 {
		return nil, fmt.Errorf("%w: fwhm must be positive, got %g", ErrInvalidParameter, fwhm)
	}
	if err := validateGrid(grid); err != nil {
		return nil, err
	}

	curves := make([]Curve, len(sets))
	var g errgroup.Group
	for i, set := range sets {
		g.Go(func() error {
			c, err := Broaden(set, grid, shift, fwhm)
			if err != nil {
				return fmt.Errorf("reference %q: %w", set.Name, err)
			}
			curves[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return curves, nil
}

// validateGrid checks the shared-grid invariant: at least two sample points,
// strictly increasing.
func validateGrid(grid []float64) error {
	if len(grid) < 2 {
		return fmt.Errorf("%w: grid needs at least 2 points, got %d", ErrInvalidParameter, len(grid))
	}
	for i := 1; i < len(grid); i++ {
		if grid[i] <= grid[i-1] {
			return fmt.Errorf("%w: grid not strictly increasing at index %d (%g after %g)",
				ErrInvalidParameter, i, grid[i], grid[i-1])
		}
	}
	return nil
}
