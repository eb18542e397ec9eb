package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// MinDataRows is the smallest spectrum the fitting core can work with.
const MinDataRows = 2

// ParseXYFile reads a two-column XY spectrum from a file on disk.
func ParseXYFile(filepath string) (*Spectrum, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XY file: %w", err)
	}
	defer file.Close()

	spectrum, err := ParseXY(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return spectrum, nil
}

// ParseXY parses plain-text XY spectrum data: one data point per line, the
// first two columns read as wavenumber and intensity. Columns may be
// separated by spaces, tabs, or commas. Blank lines and lines starting with
// '#' are skipped. Lines that do not yield two numbers are skipped with a
// warning recorded on the returned Spectrum; only a spectrum with fewer than
// MinDataRows usable points is a hard error.
func ParseXY(r io.Reader) (*Spectrum, error) {
	spectrum := &Spectrum{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.ReplaceAll(line, ",", " ")
		line = strings.ReplaceAll(line, "\t", " ")
		fields := strings.Fields(line)
		if len(fields) < 2 {
			spectrum.ParseErrors = append(spectrum.ParseErrors,
				fmt.Sprintf("Warning: line %d has %d column(s), expected 2. Skipped.", lineNo, len(fields)))
			continue
		}

		x, errX := strconv.ParseFloat(fields[0], 64)
		y, errY := strconv.ParseFloat(fields[1], 64)
		if errX != nil || errY != nil {
			spectrum.ParseErrors = append(spectrum.ParseErrors,
				fmt.Sprintf("Warning: line %d is not numeric (%q). Skipped.", lineNo, line))
			continue
		}

		spectrum.X = append(spectrum.X, x)
		spectrum.Y = append(spectrum.Y, y)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read XY data: %w", err)
	}

	if spectrum.Len() < MinDataRows {
		return nil, fmt.Errorf("spectrum has %d data row(s), need at least %d", spectrum.Len(), MinDataRows)
	}
	return spectrum, nil
}
