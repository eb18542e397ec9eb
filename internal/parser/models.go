package parser

import (
	"fmt"
	"sort"
)

// Spectrum is an experimental spectrum as read from an XY file: paired
// wavenumber and intensity columns in order of appearance. Non-fatal problems
// found while reading are collected in ParseErrors rather than aborting the
// parse.
type Spectrum struct {
	X           []float64 // wavenumbers, order of appearance
	Y           []float64 // intensities, one per wavenumber
	ParseErrors []string
}

// Len returns the number of data points.
func (s *Spectrum) Len() int {
	return len(s.X)
}

// FilterRange returns a copy restricted to wavenumbers in [min, max],
// preserving order. ParseErrors carry over unchanged.
func (s *Spectrum) FilterRange(min, max float64) *Spectrum {
	out := &Spectrum{ParseErrors: s.ParseErrors}
	for i, x := range s.X {
		if x >= min && x <= max {
			out.X = append(out.X, x)
			out.Y = append(out.Y, s.Y[i])
		}
	}
	return out
}

// Normalize returns a copy scaled so the maximum intensity equals target,
// bringing uploaded spectra onto the same scale as the theory tables. A
// spectrum with no positive intensity is returned unscaled with a warning.
func (s *Spectrum) Normalize(target float64) *Spectrum {
	maxY := 0.0
	for _, y := range s.Y {
		if y > maxY {
			maxY = y
		}
	}

	out := &Spectrum{
		X:           append([]float64(nil), s.X...),
		Y:           append([]float64(nil), s.Y...),
		ParseErrors: s.ParseErrors,
	}
	if maxY <= 0 {
		out.ParseErrors = append(out.ParseErrors,
			"Warning: spectrum has no positive intensity, normalization skipped.")
		return out
	}

	scale := target / maxY
	for i := range out.Y {
		out.Y[i] *= scale
	}
	return out
}

// Sorted returns a copy sorted by ascending wavenumber with duplicate
// wavenumbers dropped (first occurrence wins), establishing the
// strictly-increasing grid the fitting core requires. Dropped duplicates are
// recorded as warnings.
func (s *Spectrum) Sorted() *Spectrum {
	idx := make([]int, len(s.X))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return s.X[idx[a]] < s.X[idx[b]] })

	out := &Spectrum{ParseErrors: s.ParseErrors}
	for _, i := range idx {
		if n := len(out.X); n > 0 && s.X[i] == out.X[n-1] {
			out.ParseErrors = append(out.ParseErrors,
				fmt.Sprintf("Warning: duplicate wavenumber %g dropped.", s.X[i]))
			continue
		}
		out.X = append(out.X, s.X[i])
		out.Y = append(out.Y, s.Y[i])
	}
	return out
}
