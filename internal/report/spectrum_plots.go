package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/user/raman_fitter_go/internal/analysis"
)

// NamedCurve pairs a reference curve with its species name for plotting and
// reporting. Slices of NamedCurve keep the canonical reference order.
type NamedCurve struct {
	Name  string
	Curve analysis.Curve
}

// componentColors is the palette for the per-species curves, one entry per
// reference in canonical order.
var componentColors = []color.Color{
	color.RGBA{R: 228, G: 26, B: 28, A: 255},
	color.RGBA{R: 55, G: 126, B: 184, A: 255},
	color.RGBA{R: 77, G: 175, B: 74, A: 255},
	color.RGBA{R: 152, G: 78, B: 163, A: 255},
	color.RGBA{R: 255, G: 127, B: 0, A: 255},
	color.RGBA{R: 255, G: 255, B: 51, A: 255},
	color.RGBA{R: 166, G: 86, B: 40, A: 255},
	color.RGBA{R: 247, G: 129, B: 191, A: 255},
	color.RGBA{R: 153, G: 153, B: 153, A: 255},
	color.RGBA{R: 102, G: 194, B: 165, A: 255},
}

// CreateSpectrumPlot renders the fit overlay as PNG bytes: the experimental
// spectrum in black, each active weighted component in its palette color, and
// the fitted sum as a dashed red line. The wavenumber axis is inverted, Raman
// convention. experimental may be nil when only theory curves are shown.
func CreateSpectrumPlot(experimental *analysis.Curve, components []NamedCurve, fitted analysis.Curve) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Raman Spectrum Fit"
	p.X.Label.Text = "Wavenumber (cm⁻¹)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	if experimental != nil {
		expLine, err := plotter.NewLine(curvePoints(*experimental))
		if err != nil {
			return nil, fmt.Errorf("failed to create experimental line: %v", err)
		}
		expLine.Color = color.Black
		expLine.LineStyle.Width = vg.Points(1.5)
		p.Add(expLine)
		p.Legend.Add("Experimental", expLine)
	}

	for i, comp := range components {
		if allZero(comp.Curve.Y) {
			continue
		}
		line, err := plotter.NewLine(curvePoints(comp.Curve))
		if err != nil {
			return nil, fmt.Errorf("failed to create line for %s: %v", comp.Name, err)
		}
		line.Color = componentColors[i%len(componentColors)]
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(comp.Name, line)
	}

	if !allZero(fitted.Y) {
		fitLine, err := plotter.NewLine(curvePoints(fitted))
		if err != nil {
			return nil, fmt.Errorf("failed to create fitted line: %v", err)
		}
		fitLine.Color = color.RGBA{R: 255, A: 255}
		fitLine.LineStyle.Width = vg.Points(1.5)
		fitLine.LineStyle.Dashes =[]vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(fitLine)
		p.Legend.Add("Fitted Sum", fitLine)
	}

	p.Legend.Top = true
	p.Legend.Left = true

	return renderPNG(p, vg.Points(800), vg.Points(450))
}

// CreateResidualPlot renders the residual (experimental − fitted) as PNG
// bytes, with a dashed zero line for reference. Same inverted wavenumber
// axis as the overlay plot.
func CreateResidualPlot(residual analysis.Curve) ([]byte, error) {
	if len(residual.X) == 0 {
		return nil, fmt.Errorf("no residual to plot")
	}

	p := plot.New()
	p.Title.Text = "Residual (Experimental - Fit)"
	p.X.Label.Text = "Wavenumber (cm⁻¹)"
	p.Y.Label.Text = "Residual Intensity"
	p.X.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	zero, err := plotter.NewLine(plotter.XYs{
		{X: residual.X[0], Y: 0},
		{X: residual.X[len(residual.X)-1], Y: 0},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create zero line: %v", err)
	}
	zero.Color = color.Black
	zero.LineStyle.Dashes =[]vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(zero)

	line, err := plotter.NewLine(curvePoints(residual))
	if err != nil {
		return nil, fmt.Errorf("failed to create residual line: %v", err)
	}
	line.Color = color.Gray{Y: 110}
	line.LineStyle.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("Residual", line)
	p.Legend.Top = true
	p.Legend.Left = true

	return renderPNG(p, vg.Points(800), vg.Points(280))
}

func curvePoints(c analysis.Curve) plotter.XYs {
	pts := make(plotter.XYs, len(c.X))
	for i := range c.X {
		pts[i] = plotter.XY{X: c.X[i], Y: c.Y[i]}
	}
	return pts
}

func allZero(y []float64) bool {
	for _, v := range y {
		if v != 0 {
			return false
		}
	}
	return true
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
