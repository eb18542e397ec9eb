package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// solveNNLS solves min ‖experimental − Σ c_i·reference_i‖² subject to
// c_i ≥ 0, using the Lawson–Hanson active-set algorithm. Each inner
// least-squares subproblem is a QR solve restricted to the passive columns.
//
// Unlike unconstrained OLS, zero reference columns are harmless here: their
// gradient never becomes positive, so they simply stay clamped at 0.
func solveNNLS(experimental Curve, references []Curve) ([]float64, error) {
	n := len(experimental.X)
	k := len(references)

	x := make([]float64, k)
	passive := make([]bool, k)
	w := make([]float64, k) // gradient of the objective, Aᵀ(b − Ax)

	// Tolerance scaled to the data: gradient entries below this are treated
	// as zero when picking the next column to free.
	tol := 1e-10 * maxAbsY(experimental, references)

	// Each outer iteration moves one column into the passive set; the inner
	// loop can move columns back out. 3k outer iterations is far beyond what
	// a 10-column system needs and guards against cycling.
	for iter := 0; iter < 3*k; iter++ {
		residual := make([]float64, n)
		copy(residual, experimental.Y)
		for j := 0; j < k; j++ {
			if x[j] == 0 {
				continue
			}
			for i := 0; i < n; i++ {
				residual[i] -= x[j] * references[j].Y[i]
			}
		}

		best, bestW := -1, tol
		for j := 0; j < k; j++ {
			if passive[j] {
				continue
			}
			w[j] = floats.Dot(references[j].Y, residual)
			if w[j] > bestW {
				best, bestW = j, w[j]
			}
		}
		if best < 0 {
			return x, nil // KKT conditions met
		}
		passive[best] = true

		for {
			z, err := solvePassive(experimental, references, passive)
			if err != nil {
				return nil, err
			}

			// Feasible subproblem solution: accept and go free another column.
			if minPassive(z, passive) > 0 {
				for j := 0; j < k; j++ {
					if passive[j] {
						x[j] = z[j]
					} else {
						x[j] = 0
					}
				}
				break
			}

			// Step from x toward z only as far as feasibility allows, then
			// drop the columns that hit zero from the passive set.
			alpha := math.Inf(1)
			for j := 0; j < k; j++ {
				if passive[j] && z[j] <= 0 {
					if a := x[j] / (x[j] - z[j]); a < alpha {
						alpha = a
					}
				}
			}
			for j := 0; j < k; j++ {
				if passive[j] {
					x[j] += alpha * (z[j] - x[j])
					if x[j] <= tol {
						x[j] = 0
						passive[j] = false
					}
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: non-negative least squares did not converge", ErrNumericalInstability)
}

// solvePassive solves the unconstrained least-squares problem restricted to
// the passive columns, returning a full-length coefficient vector with zeros
// in the active positions.
func solvePassive(experimental Curve, references []Curve, passive []bool) ([]float64, error) {
	n := len(experimental.X)
	cols := make([]int, 0, len(references))
	for j, in := range passive {
		if in {
			cols = append(cols, j)
		}
	}
	if len(cols) == 0 {
		return make([]float64, len(references)), nil
	}

	a := mat.NewDense(n, len(cols), nil)
	for jj, j := range cols {
		a.SetCol(jj, references[j].Y)
	}
	b := mat.NewVecDense(n, experimental.Y)
	z := mat.NewVecDense(len(cols), nil)

	var qr mat.QR
	qr.Factorize(a)
	if err := qr.SolveVecTo(z, false, b); err != nil {
		return nil, fmt.Errorf("%w: NNLS subproblem solve failed: %v", ErrNumericalInstability, err)
	}

	out := make([]float64, len(references))
	for jj, j := range cols {
		v := z.AtVec(jj)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: NNLS subproblem solution is not finite", ErrNumericalInstability)
		}
		out[j] = v
	}
	return out, nil
}

func minPassive(z []float64, passive []bool) float64 {
	min := math.Inf(1)
	for j, in := range passive {
		if in && z[j] < min {
			min = z[j]
		}
	}
	return min
}

// maxAbsY is the largest absolute intensity across all curves, used to scale
// the NNLS gradient tolerance.
func maxAbsY(experimental Curve, references []Curve) float64 {
	max := 0.0
	for _, y := range experimental.Y {
		if a := math.Abs(y); a > max {
			max = a
		}
	}
	for _, ref := range references {
		for _, y := range ref.Y {
			if a := math.Abs(y); a > max {
				max = a
			}
		}
	}
	if max == 0 {
		return 1
	}
	return max
}
