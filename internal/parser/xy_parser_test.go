package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXYSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"spaces", "100 5\n200 10\n300 2.5\n"},
		{"tabs", "100\t5\n200\t10\n300\t2.5\n"},
		{"commas", "100,5\n200,10\n300,2.5\n"},
		{"mixed", "100, 5\n200\t 10\n300 ,2.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spectrum, err := ParseXY(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, []float64{100, 200, 300}, spectrum.X)
			assert.Equal(t, []float64{5, 10, 2.5}, spectrum.Y)
			assert.Empty(t, spectrum.ParseErrors)
		})
	}
}

func TestParseXYCommentsAndBlanks(t *testing.T) {
	input := "# Raman spectrum, 532 nm\n\n100 5\n   \n# midway comment\n200 10\n"
	spectrum, err := ParseXY(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, spectrum.Len())
	assert.Empty(t, spectrum.ParseErrors)
}

func TestParseXYExtraColumnsIgnored(t *testing.T) {
	input := "100 5 999 extra\n200 10 888\n"
	spectrum, err := ParseXY(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10}, spectrum.Y)
}

func TestParseXYBadLinesWarned(t *testing.T) {
	input := "100 5\nnot a number\n150\n200 ten\n300 10\n"
	spectrum, err := ParseXY(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 300}, spectrum.X)
	// One warning per skipped line, none fatal.
	assert.Len(t, spectrum.ParseErrors, 3)
}

func TestParseXYTooFewRows(t *testing.T) {
	_, err := ParseXY(strings.NewReader("100 5\n"))
	require.Error(t, err)

	_, err = ParseXY(strings.NewReader("# only comments\n"))
	require.Error(t, err)
}

func TestParseXYFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spectrum.xy")
	require.NoError(t, os.WriteFile(path, []byte("100 5\n200 10\n"), 0o644))

	spectrum, err := ParseXYFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, spectrum.Len())

	_, err = ParseXYFile(filepath.Join(t.TempDir(), "missing.xy"))
	require.Error(t, err)
}

func TestFilterRange(t *testing.T) {
	spectrum := &Spectrum{X: []float64{50, 100, 250, 400, 450}, Y: []float64{1, 2, 3, 4, 5}}

	out := spectrum.FilterRange(100, 400)
	assert.Equal(t, []float64{100, 250, 400}, out.X)
	assert.Equal(t, []float64{2, 3, 4}, out.Y)
	// Source untouched.
	assert.Len(t, spectrum.X, 5)
}

func TestNormalize(t *testing.T) {
	spectrum := &Spectrum{X: []float64{100, 200, 300}, Y: []float64{5, 50, 20}}

	out := spectrum.Normalize(1000)
	assert.InDelta(t, 100.0, out.Y[0], 1e-12)
	assert.InDelta(t, 1000.0, out.Y[1], 1e-12)
	assert.InDelta(t, 400.0, out.Y[2], 1e-12)
	// Source untouched.
	assert.Equal(t, 50.0, spectrum.Y[1])
}

func TestNormalizeNoPositiveSignal(t *testing.T) {
	spectrum := &Spectrum{X: []float64{100, 200}, Y: []float64{0, -3}}

	out := spectrum.Normalize(1000)
	assert.Equal(t, []float64{0, -3}, out.Y)
	require.Len(t, out.ParseErrors, 1)
	assert.Contains(t, out.ParseErrors[0], "normalization skipped")
}

func TestSorted(t *testing.T) {
	// Raman spectra are often recorded with descending wavenumbers.
	spectrum := &Spectrum{X: []float64{400, 300, 200, 100}, Y: []float64{4, 3, 2, 1}}

	out := spectrum.Sorted()
	assert.Equal(t, []float64{100, 200, 300, 400}, out.X)
	assert.Equal(t, []float64{1, 2, 3, 4}, out.Y)
}

func TestSortedDropsDuplicates(t *testing.T) {
	spectrum := &Spectrum{X: []float64{100, 200, 100, 300}, Y: []float64{1, 2, 99, 3}}

	out := spectrum.Sorted()
	assert.Equal(t, []float64{100, 200, 300}, out.X)
	// First occurrence wins.
	assert.Equal(t, []float64{1, 2, 3}, out.Y)
	require.Len(t, out.ParseErrors, 1)
	assert.Contains(t, out.ParseErrors[0], "duplicate wavenumber")
}
