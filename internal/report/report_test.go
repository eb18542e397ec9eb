package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/raman_fitter_go/internal/analysis"
	"github.com/user/raman_fitter_go/internal/theory"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func testCurves(t *testing.T) (analysis.Curve, []NamedCurve, analysis.Curve) {
	t.Helper()
	grid := make([]float64, 201)
	for i := range grid {
		grid[i] = 100 + 2*float64(i)
	}

	refs, err := analysis.BroadenAll(theory.Ordered(), grid, 0, 4)
	require.NoError(t, err)

	components := make([]NamedCurve, len(refs))
	fitted := analysis.Curve{X: grid, Y: make([]float64, len(grid))}
	for i, ref := range refs {
		components[i] = NamedCurve{Name: theory.SpectrumOrder[i], Curve: ref}
		for j, y := range ref.Y {
			fitted.Y[j] += 0.1 * y
		}
	}

	experimental := analysis.Curve{X: grid, Y: fitted.Y}
	return experimental, components, fitted
}

func TestCreateSpectrumPlot(t *testing.T) {
	experimental, components, fitted := testCurves(t)

	png, err := CreateSpectrumPlot(&experimental, components, fitted)
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestCreateSpectrumPlotWithoutExperimental(t *testing.T) {
	_, components, fitted := testCurves(t)

	png, err := CreateSpectrumPlot(nil, components, fitted)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestCreateResidualPlot(t *testing.T) {
	experimental, _, _ := testCurves(t)

	png, err := CreateResidualPlot(experimental)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])

	_, err = CreateResidualPlot(analysis.Curve{})
	require.Error(t, err)
}

func TestBuildPDFReport(t *testing.T) {
	experimental, _, fitted := testCurves(t)

	coeffs := make([]float64, theory.NumReferences)
	for i := range coeffs {
		coeffs[i] = 0.1
	}
	result := analysis.FitResult{
		Fitted:       fitted,
		Residual:     analysis.Curve{X: experimental.X, Y: make([]float64, len(experimental.X))},
		Coefficients: coeffs,
		RSquared:     0.9987,
		RMS:          3.2,
		Scale:        1.0,
	}
	params := analysis.FitParameters{FWHM: 4, Shift: -2, Auto: true}

	spectrumPNG, err := CreateSpectrumPlot(&experimental, nil, fitted)
	require.NoError(t, err)
	residualPNG, err := CreateResidualPlot(result.Residual)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fit_report.pdf")
	err = BuildPDFReport(path, result, params, theory.SpectrumOrder, len(experimental.X),
		map[string][]byte{"spectrum": spectrumPNG, "residual": residualPNG})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Greater(t, len(data), 1000)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuildPDFReportNameCountMismatch(t *testing.T) {
	result := analysis.FitResult{Coefficients: make([]float64, 3)}
	err := BuildPDFReport(filepath.Join(t.TempDir(), "bad.pdf"), result,
		analysis.FitParameters{}, theory.SpectrumOrder, 0, nil)
	require.Error(t, err)
}
