package profile

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var palette = []color.Color{
	color.RGBA{R: 31, G: 119, B: 180, A: 255},
	color.RGBA{R: 255, G: 127, B: 14, A: 255},
	color.RGBA{R: 44, G: 160, B: 44, A: 255},
	color.RGBA{R: 214, G: 39, B: 40, A: 255},
	color.RGBA{R: 148, G: 103, B: 189, A: 255},
}

// Chart draws the series against rail index.
func Chart(title string, ss []Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "rail"
	p.Y.Label.Text = "value"

	for i, s := range ss {
		pts := make(plotter.XYs, len(s.Values))
		for k, v := range s.Values {
			pts[k] = plotter.XY{X: float64(k), Y: v}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("profile: %s: %w", s.Name, err)
		}
		line.Color = palette[i%len(palette)]
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	p.Add(plotter.NewGrid())
	return p, nil
}

// Save writes the chart to path; the extension picks the format
// (png, svg, pdf, ...).
func Save(title string, ss []Series, path string) error {
	p, err := Chart(title, ss)
	if err != nil {
		return err
	}
	return p.Save(14*vg.Inch, 6*vg.Inch, path)
}

// Write encodes the chart in format to w.
func Write(w io.Writer, title string, ss []Series, format string) error {
	p, err := Chart(title, ss)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
