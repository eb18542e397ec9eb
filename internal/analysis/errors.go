package analysis

import "errors"

// Sentinel errors for the fitting core. Every precondition failure wraps one
// of these with context naming the offending input, so callers can match with
// errors.Is and still show a useful message.
var (
	// ErrInvalidParameter covers out-of-range fit parameters: non-positive
	// FWHM, malformed grids, negative manual coefficients.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput covers structurally bad inputs: curves with fewer than
	// two points, a reference set that is not exactly ten curves.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGridMismatch is returned when the experimental and reference curves
	// do not share identical wavenumber grids. Curves are never truncated or
	// padded to force alignment.
	ErrGridMismatch = errors.New("grid mismatch")

	// ErrNumericalInstability is returned when the least-squares design
	// matrix is singular or near-singular, e.g. duplicate or all-zero
	// reference curves at the current shift and FWHM.
	ErrNumericalInstability = errors.New("numerical instability")
)
