package analysis

// Curve pairs a wavenumber grid with equal-length intensity samples. All
// curves taking part in one fit share identical grids; Fit rejects anything
// else. The slices are treated as read-only by every function in this
// package.
type Curve struct {
	X []float64 // wavenumber grid, strictly increasing
	Y []float64 // intensities, one per grid point
}

// FitParameters holds the user-controlled inputs of one fit evaluation.
// Shift and FWHM apply to the broadening step; Coefficients are used in
// manual mode and ignored when Auto is set. Constructed fresh per fit and
// never mutated during one.
type FitParameters struct {
	Shift        float64   // rigid wavenumber shift in cm⁻¹, applied to all theory peaks
	FWHM         float64   // Lorentzian width in cm⁻¹, shared by all peaks, > 0
	Coefficients []float64 // manual per-reference weights, non-negative, index-aligned with the reference set

	// Auto selects the ordinary least-squares solve instead of the manual
	// coefficients. Solved coefficients may come out negative and are
	// reported as-is.
	Auto bool

	// NonNegative switches the auto solve to non-negative least squares
	// (Lawson–Hanson). Opt-in extension: it changes the solved coefficients
	// and is never the default. Implies Auto.
	NonNegative bool
}

// FitResult is the outcome of one fit evaluation. Derived data only,
// recomputed from scratch on every parameter change.
type FitResult struct {
	Fitted   Curve // Σ coefficient_i × reference_i on the shared grid
	Residual Curve // experimental − fitted, same grid

	// Coefficients are the weights actually used: the manual values in
	// manual mode, the solved values in auto mode.
	Coefficients []float64

	RSquared float64 // coefficient of determination; NaN when the experimental curve is constant
	RMS      float64 // root-mean-square residual
	Scale    float64 // sum of the coefficients, an overall intensity-scale indicator
}
