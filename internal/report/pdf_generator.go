package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/user/raman_fitter_go/internal/analysis"
)

const (
	inchToMm        = 25.4
	pdfPageWidth    = 8.5 * inchToMm // Letter portrait
	pdfPageHeight   = 11 * inchToMm
	pdfMargin       = 0.5 * inchToMm
	pdfContentWidth = pdfPageWidth - (2 * pdfMargin)
)

// pdfStyler holds reusable styling and manual Y tracking for flowing report
// content across pages.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	currentY   float64
	pageHeight float64
	topY       float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		styles:     make(map[string]func()),
		lineHeight: 6, // mm
		pageHeight: pdfPageHeight - pdfMargin,
		topY:       pdfMargin,
	}
	s.currentY = s.topY
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.topY
	}
}

func (s *pdfStyler) writeParagraph(text, style, align string) {
	s.applyStyle(style)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable renders a bordered table with a filled header row.
func (s *pdfStyler) writeTable(headers []string, rows [][]string, relWidths []float64) {
	widths := make([]float64, len(relWidths))
	for i, rel := range relWidths {
		widths[i] = rel * pdfContentWidth
	}

	s.checkAddPage(s.lineHeight * float64(len(rows)+1))

	x := pdfMargin
	s.applyStyle("tableHeader")
	for i, h := range headers {
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	s.currentY += s.lineHeight

	s.applyStyle("tableCell")
	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		x = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(imgBytes []byte, name string, width, height float64) {
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(imgBytes))
	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}
	s.checkAddPage(height)
	s.pdf.Image(name, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	s.addSpacer(3)
}

// formatMetric renders a metric value, showing "undefined" for the NaN
// sentinel (constant experimental curve) instead of a bare NaN.
func formatMetric(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "undefined"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

// BuildPDFReport writes the fit report: parameters, fit-quality metrics, the
// per-species coefficient table with relative fractions, and the overlay and
// residual plots. plotImages is keyed "spectrum" and "residual"; missing
// plots are noted in the report rather than failing it.
func BuildPDFReport(filepath string, result analysis.FitResult, params analysis.FitParameters,
	speciesNames []string, numPoints int, plotImages map[string][]byte) error {

	if len(speciesNames) != len(result.Coefficients) {
		return fmt.Errorf("species name count %d does not match coefficient count %d",
			len(speciesNames), len(result.Coefficients))
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()
	styler := newPDFStyler(pdf)

	styler.writeParagraph("Raman Spectrum Fit Report - SnX6 Octahedra", "h1", "C")
	styler.addSpacer(3)

	mode := "manual coefficients"
	if params.Auto && params.NonNegative {
		mode = "non-negative least squares (extension)"
	} else if params.Auto {
		mode = "ordinary least squares"
	}
	styler.writeParagraph(fmt.Sprintf("Mode: %s | FWHM: %.2f cm-1 | Rigid shift: %+.2f cm-1 | Grid points: %d",
		mode, params.FWHM, params.Shift, numPoints), "normal", "L")
	styler.addSpacer(3)

	styler.writeParagraph("Fit Quality", "h2", "L")
	styler.writeTable(
		[]string{"R-squared", "RMS Residual", "Scale Factor (sum c)"},
		[][]string{{
			formatMetric(result.RSquared, 4),
			formatMetric(result.RMS, 2),
			formatMetric(result.Scale, 3),
		}},
		[]float64{0.34, 0.33, 0.33},
	)
	styler.addSpacer(5)

	styler.writeParagraph("Species Contributions", "h2", "L")
	total := result.Scale
	rows := make([][]string, 0, len(speciesNames))
	for i, name := range speciesNames {
		c := result.Coefficients[i]
		fraction := "-"
		if total > 0 {
			fraction = fmt.Sprintf("%.1f%%", 100*c/total)
		}
		rows = append(rows, []string{name, fmt.Sprintf("%.4f", c), fraction})
	}
	styler.writeTable(
		[]string{"Species", "Coefficient", "Relative Fraction"},
		rows,
		[]float64{0.4, 0.3, 0.3},
	)
	styler.addSpacer(5)

	plotDefs := []struct{ Key, Title string }{
		{"spectrum", "Fit Overlay"},
		{"residual", "Residual"},
	}
	imgWidth := pdfContentWidth * 0.95
	for _, def := range plotDefs {
		styler.writeParagraph(def.Title, "h2", "L")
		if img, ok := plotImages[def.Key]; ok && len(img) > 0 {
			height := imgWidth * 0.5
			if def.Key == "residual" {
				height = imgWidth * 0.33
			}
			styler.addImage(img, def.Key, imgWidth, height)
		} else {
			styler.writeParagraph(fmt.Sprintf("Plot %q not available.", def.Key), "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(filepath)
}
