package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/raman_fitter_go/internal/analysis"
	"github.com/user/raman_fitter_go/internal/parser"
	"github.com/user/raman_fitter_go/internal/report"
	"github.com/user/raman_fitter_go/internal/theory"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit an experimental XY spectrum against the theory set",
	Long: `Fit reads a two-column XY spectrum, restricts it to the configured
wavenumber range, normalizes it onto the theory intensity scale, broadens the
ten theory spectra with the given FWHM and rigid shift, and evaluates the
linear combination fit on the experimental grid.

Coefficients come from --coeffs (ten comma-separated values), or are solved
by ordinary least squares with --auto. --nonneg switches the solve to
non-negative least squares; that constraint changes the solved values, so it
is opt-in rather than the default.`,
	Args: cobra.NoArgs,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().String("input", "", "experimental XY spectrum file (required)")
	fitCmd.Flags().Float64("fwhm", 4.0, "Lorentzian peak width in cm⁻¹ (> 0)")
	fitCmd.Flags().Float64("shift", 0.0, "rigid wavenumber shift applied to all theory peaks, cm⁻¹")
	fitCmd.Flags().String("coeffs", "", "ten comma-separated manual coefficients, in canonical species order")
	fitCmd.Flags().Bool("auto", false, "solve coefficients by ordinary least squares")
	fitCmd.Flags().Bool("nonneg", false, "solve with non-negative least squares (implies --auto)")
	fitCmd.Flags().Float64("range-min", 0, "lower wavenumber bound, cm⁻¹")
	fitCmd.Flags().Float64("range-max", 400, "upper wavenumber bound, cm⁻¹")
	fitCmd.Flags().Int("grid-points", 2000, "display grid density for broadening and plots")
	fitCmd.Flags().Float64("normalize-to", 1000, "scale experimental maximum to this intensity")
	fitCmd.Flags().Bool("no-normalize", false, "keep the experimental intensity scale as-is")
	fitCmd.Flags().String("plot", "", "write the fit overlay PNG to this path")
	fitCmd.Flags().String("residual-plot", "", "write the residual PNG to this path")
	fitCmd.Flags().String("pdf", "", "write the full fit report PDF to this path")
	_ = fitCmd.MarkFlagRequired("input")

	for _, name := range []string{"fwhm", "shift", "range-min", "range-max", "grid-points", "normalize-to"} {
		_ = viper.BindPFlag(name, fitCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(fitCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	coeffsArg, _ := cmd.Flags().GetString("coeffs")
	auto, _ := cmd.Flags().GetBool("auto")
	nonNeg, _ := cmd.Flags().GetBool("nonneg")
	noNormalize, _ := cmd.Flags().GetBool("no-normalize")
	plotPath, _ := cmd.Flags().GetString("plot")
	residualPath, _ := cmd.Flags().GetString("residual-plot")
	pdfPath, _ := cmd.Flags().GetString("pdf")

	fwhm := viper.GetFloat64("fwhm")
	shift := viper.GetFloat64("shift")
	rangeMin := viper.GetFloat64("range-min")
	rangeMax := viper.GetFloat64("range-max")
	gridPoints := viper.GetInt("grid-points")
	normalizeTo := viper.GetFloat64("normalize-to")

	if coeffsArg != "" && (auto || nonNeg) {
		return fmt.Errorf("--coeffs conflicts with --auto/--nonneg")
	}
	if gridPoints < 2 {
		return fmt.Errorf("--grid-points must be at least 2, got %d", gridPoints)
	}
	if rangeMax <= rangeMin {
		return fmt.Errorf("--range-max (%g) must be greater than --range-min (%g)", rangeMax, rangeMin)
	}

	params := analysis.FitParameters{
		Shift:       shift,
		FWHM:        fwhm,
		Auto:        auto || nonNeg,
		NonNegative: nonNeg,
	}
	if !params.Auto {
		coeffs, err := parseCoefficients(coeffsArg)
		if err != nil {
			return err
		}
		params.Coefficients = coeffs
	}

	spectrum, err := parser.ParseXYFile(input)
	if err != nil {
		return err
	}
	spectrum = spectrum.FilterRange(rangeMin, rangeMax).Sorted()
	if !noNormalize {
		spectrum = spectrum.Normalize(normalizeTo)
	}
	for _, w := range spectrum.ParseErrors {
		logger.Warn(w)
	}
	if spectrum.Len() < parser.MinDataRows {
		return fmt.Errorf("spectrum has %d point(s) in range [%g, %g], need at least %d",
			spectrum.Len(), rangeMin, rangeMax, parser.MinDataRows)
	}
	logger.Infow("spectrum loaded", "file", input, "points", spectrum.Len(),
		"range_min", rangeMin, "range_max", rangeMax)

	experimental := analysis.Curve{X: spectrum.X, Y: spectrum.Y}

	// Broaden on a dense uniform grid for smooth plot curves, then resample
	// onto the experimental grid where the fit and metrics live.
	displayGrid := uniformGrid(rangeMin, rangeMax, gridPoints)
	denseRefs, err := analysis.BroadenAll(theory.Ordered(), displayGrid, shift, fwhm)
	if err != nil {
		return err
	}

	fitRefs := make([]analysis.Curve, len(denseRefs))
	for i, ref := range denseRefs {
		fitRefs[i], err = analysis.Resample(ref, experimental.X)
		if err != nil {
			return fmt.Errorf("reference %q: %w", theory.SpectrumOrder[i], err)
		}
	}

	result, err := analysis.Fit(experimental, fitRefs, params)
	if err != nil {
		return err
	}
	logger.Infow("fit complete", "r_squared", result.RSquared, "rms", result.RMS,
		"scale_factor", result.Scale)

	printResult(cmd, result)

	if plotPath == "" && residualPath == "" && pdfPath == "" {
		return nil
	}
	return writeOutputs(result, params, denseRefs, experimental, plotPath, residualPath, pdfPath)
}

// parseCoefficients parses the --coeffs value into the ten manual weights.
// An empty value means all-zero coefficients, matching the reference
// application's initial slider state.
func parseCoefficients(arg string) ([]float64, error) {
	coeffs := make([]float64, theory.NumReferences)
	if arg == "" {
		return coeffs, nil
	}

	parts := strings.Split(arg, ",")
	if len(parts) != theory.NumReferences {
		return nil, fmt.Errorf("--coeffs needs %d comma-separated values, got %d",
			theory.NumReferences, len(parts))
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("--coeffs value %d (%q) is not a number", i+1, part)
		}
		coeffs[i] = v
	}
	return coeffs, nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func uniformGrid(min, max float64, points int) []float64 {
	grid := make([]float64, points)
	step := (max - min) / float64(points-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	return grid
}

func printResult(cmd *cobra.Command, result analysis.FitResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\n%-20s %-12s %s\n", "Species", "Coefficient", "Fraction")
	for i, name := range theory.SpectrumOrder {
		fraction := "-"
		if result.Scale > 0 {
			fraction = fmt.Sprintf("%.1f%%", 100*result.Coefficients[i]/result.Scale)
		}
		fmt.Fprintf(out, "%-20s %-12.4f %s\n", name, result.Coefficients[i], fraction)
	}

	rsq := "undefined (constant spectrum)"
	if !math.IsNaN(result.RSquared) {
		rsq = fmt.Sprintf("%.4f", result.RSquared)
	}
	fmt.Fprintf(out, "\nR²:           %s\n", rsq)
	fmt.Fprintf(out, "RMS residual: %.2f\n", result.RMS)
	fmt.Fprintf(out, "Scale factor: %.3f\n", result.Scale)
}

// writeOutputs renders the requested PNG and PDF artifacts. Component and
// fitted curves are rebuilt on the dense display grid so the plots stay
// smooth regardless of the experimental sampling.
func writeOutputs(result analysis.FitResult, params analysis.FitParameters,
	denseRefs []analysis.Curve, experimental analysis.Curve,
	plotPath, residualPath, pdfPath string) error {

	components := make([]report.NamedCurve, len(denseRefs))
	fittedDense := analysis.Curve{
		X: denseRefs[0].X,
		Y: make([]float64, len(denseRefs[0].X)),
	}
	for i, ref := range denseRefs {
		scaled := make([]float64, len(ref.Y))
		for j, y := range ref.Y {
			scaled[j] = result.Coefficients[i] * y
			fittedDense.Y[j] += scaled[j]
		}
		components[i] = report.NamedCurve{
			Name:  theory.SpectrumOrder[i],
			Curve: analysis.Curve{X: ref.X, Y: scaled},
		}
	}

	spectrumPNG, err := report.CreateSpectrumPlot(&experimental, components, fittedDense)
	if err != nil {
		return fmt.Errorf("failed to render fit overlay: %w", err)
	}
	residualPNG, err := report.CreateResidualPlot(result.Residual)
	if err != nil {
		return fmt.Errorf("failed to render residual plot: %w", err)
	}

	if plotPath != "" {
		if err := writeFile(plotPath, spectrumPNG); err != nil {
			return err
		}
		logger.Infow("overlay plot written", "path", plotPath)
	}
	if residualPath != "" {
		if err := writeFile(residualPath, residualPNG); err != nil {
			return err
		}
		logger.Infow("residual plot written", "path", residualPath)
	}
	if pdfPath != "" {
		plots := map[string][]byte{"spectrum": spectrumPNG, "residual": residualPNG}
		if err := report.BuildPDFReport(pdfPath, result, params, theory.SpectrumOrder,
			len(experimental.X), plots); err != nil {
			return fmt.Errorf("failed to build PDF report: %w", err)
		}
		logger.Infow("PDF report written", "path", pdfPath)
	}
	return nil
}
