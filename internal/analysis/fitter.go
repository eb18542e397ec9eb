package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/user/raman_fitter_go/internal/theory"
)

// Fit evaluates one fit of the experimental curve against the ten reference
// curves. In manual mode the supplied coefficients are used directly; in auto
// mode they are solved by unconstrained ordinary least squares (or NNLS when
// params.NonNegative is set). All curves must share the experimental grid
// exactly; misaligned curves are rejected, never truncated or padded.
//
// Fit is a pure function: it reads its inputs and allocates a fresh
// FitResult every call.
func Fit(experimental Curve, references []Curve, params FitParameters) (FitResult, error) {
	if len(references) != theory.NumReferences {
		return FitResult{}, fmt.Errorf("%w: expected %d reference curves, got %d",
			ErrInvalidInput, theory.NumReferences, len(references))
	}
	if len(experimental.X) < 2 {
		return FitResult{}, fmt.Errorf("%w: experimental curve needs at least 2 points, got %d",
			ErrInvalidInput, len(experimental.X))
	}
	if len(experimental.X) != len(experimental.Y) {
		return FitResult{}, fmt.Errorf("%w: experimental curve has %d grid points but %d intensities",
			ErrInvalidInput, len(experimental.X), len(experimental.Y))
	}
	for i, ref := range references {
		if !sameGrid(ref.X, experimental.X) {
			return FitResult{}, fmt.Errorf("%w: reference %d is not on the experimental grid",
				ErrGridMismatch, i)
		}
		if len(ref.X) != len(ref.Y) {
			return FitResult{}, fmt.Errorf("%w: reference %d has %d grid points but %d intensities",
				ErrInvalidInput, i, len(ref.X), len(ref.Y))
		}
	}

	var coeffs []float64
	var err error
	switch {
	case params.Auto && params.NonNegative:
		coeffs, err = solveNNLS(experimental, references)
	case params.Auto:
		coeffs, err = solveOLS(experimental, references)
	default:
		coeffs, err = manualCoefficients(params.Coefficients)
	}
	if err != nil {
		return FitResult{}, err
	}

	n := len(experimental.X)
	fitted := make([]float64, n)
	for j, ref := range references {
		if coeffs[j] == 0 {
			continue
		}
		floats.AddScaled(fitted, coeffs[j], ref.Y)
	}

	residual := make([]float64, n)
	for i := range residual {
		residual[i] = experimental.Y[i] - fitted[i]
	}

	return FitResult{
		Fitted:       Curve{X: experimental.X, Y: fitted},
		Residual:     Curve{X: experimental.X, Y: residual},
		Coefficients: coeffs,
		RSquared:     rSquared(experimental.Y, residual),
		RMS:          rms(residual),
		Scale:        floats.Sum(coeffs),
	}, nil
}

// manualCoefficients validates user-supplied weights: exactly one per
// reference, finite, non-negative. The UI clamps its sliders to valid
// ranges, but the contract is enforced here regardless.
func manualCoefficients(coeffs []float64) ([]float64, error) {
	if len(coeffs) != theory.NumReferences {
		return nil, fmt.Errorf("%w: expected %d coefficients, got %d",
			ErrInvalidInput, theory.NumReferences, len(coeffs))
	}
	out := make([]float64, len(coeffs))
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return nil, fmt.Errorf("%w: coefficient %d must be finite and non-negative, got %g",
				ErrInvalidParameter, i, c)
		}
		out[i] = c
	}
	return out, nil
}

// solveOLS solves min ‖experimental − Σ c_i·reference_i‖² by QR
// factorization of the design matrix whose columns are the reference
// intensity vectors. Negative solutions are returned as-is.
func solveOLS(experimental Curve, references []Curve) ([]float64, error) {
	n := len(experimental.X)
	k := len(references)

	a := mat.NewDense(n, k, nil)
	for j, ref := range references {
		a.SetCol(j, ref.Y)
	}
	b := mat.NewVecDense(n, experimental.Y)
	c := mat.NewVecDense(k, nil)

	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveVecTo(c, false, b); err != nil {
		return nil, fmt.Errorf("%w: least-squares solve failed: %v", ErrNumericalInstability, err)
	}

	coeffs := make([]float64, k)
	for i := range coeffs {
		v := c.AtVec(i)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: least-squares solution is not finite (coefficient %d)",
				ErrNumericalInstability, i)
		}
		coeffs[i] = v
	}
	return coeffs, nil
}

// rms is the root-mean-square of the residual vector.
func rms(residual []float64) float64 {
	sum := 0.0
	for _, r := range residual {
		sum += r * r
	}
	return math.Sqrt(sum / float64(len(residual)))
}

// rSquared is 1 − SS_res/SS_tot. A constant experimental curve has
// SS_tot == 0, leaving the metric undefined: NaN is returned as the sentinel
// rather than dividing by zero, and callers handle the display case.
func rSquared(experimental, residual []float64) float64 {
	mean := floats.Sum(experimental) / float64(len(experimental))

	ssTot := 0.0
	for _, y := range experimental {
		d := y - mean
		ssTot += d * d
	}
	if ssTot == 0 {
		return math.NaN()
	}

	ssRes := 0.0
	for _, r := range residual {
		ssRes += r * r
	}
	return 1 - ssRes/ssTot
}

// sameGrid reports whether two grids have identical length and coordinates.
// Exact comparison: a grid that is merely close is still a different grid.
func sameGrid(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
