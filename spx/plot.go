/*
 * plot.go, part of goAton.
 *
 * Copyright 2025 Raul Mera <rmeraatusachdotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package spx

import (
	"fmt"
	"image/color"
	"math"

	aton "github.com/rmera/goaton"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HSVToRGB takes hue (0-360), v and s (0-1), and returns r, g, b (0-255).
func HSVToRGB(h, s, v float64) (uint8, uint8, uint8) {
	c := 255.0 * v
	if s == 0 {
		return uint8(c), uint8(c), uint8(c)
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return uint8(r * c), uint8(g * c), uint8(b * c)
}

// Color returns the color of the line key out of steps, going from red to violet.
func Color(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	h := 260.0 * float64(key) / float64(steps)
	r, g, b := HSVToRGB(h, 1, 0.85)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

var yLabels = map[string]string{
	"ins":   "S(Q,E)",
	"qens":  "S(Q,E)",
	"atr":   "Absorbance",
	"raman": "Intensity",
}

// Plot draws the spectra with its plotting options and saves the figure to path.
// The format is given by the extension of path (png, svg, pdf...).
// The spectra are normalized first if the plotting options say so; s is not modified.
func Plot(s *Spectra, path string) error {
	if len(s.Data) == 0 {
		return fmt.Errorf("spx: no spectra to plot")
	}
	s = s.Copy()
	if err := s.Normalize(); err != nil {
		return err
	}
	o := s.Plotting
	p := plot.New()
	p.Title.Text = o.Title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = o.XLabel
	if p.X.Label.Text == "" {
		p.X.Label.Text = "Energy / " + UnitString(s.Units)
	}
	p.Y.Label.Text = o.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = yLabels[s.Type]
	}
	var offset float64
	if o.Offset {
		min, max := math.Inf(1), math.Inf(-1)
		for _, d := range s.Data {
			min = math.Min(min, floats.Min(d.Y))
			max = math.Max(max, floats.Max(d.Y))
		}
		scaling := o.Scaling
		if scaling == 0 {
			scaling = 1
		}
		offset = (max - min) * scaling
	}
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for i, d := range s.Data {
		shift := float64(len(s.Data)-1-i) * offset
		xys := make(plotter.XYs, 0, d.Len())
		for k := range d.X {
			if o.LogXScale && d.X[k] <= 0 {
				continue
			}
			y := d.Y[k] + shift
			if o.LogYScale && y <= 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: d.X[k], Y: y})
			ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("spx: dataset %d: %w", i, err)
		}
		l.LineStyle.Color = Color(i, len(s.Data))
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		if i < len(o.Legend) && o.Legend[i] != "" {
			p.Legend.Add(o.Legend[i], l)
		}
	}
	p.Legend.Top = true
	if o.LogXScale {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if o.LogYScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if o.XLim[0] != o.XLim[1] {
		p.X.Min, p.X.Max = o.XLim[0], o.XLim[1]
	}
	if o.YLim[0] != o.YLim[1] {
		p.Y.Min, p.Y.Max = o.YLim[0], o.YLim[1]
	} else if o.Margins != [2]float64{} && ymax > ymin && !o.LogYScale {
		p.Y.Min = ymin - o.Margins[0]*(ymax-ymin)
		p.Y.Max = ymax + o.Margins[1]*(ymax-ymin)
	}
	if o.HideYTicks {
		p.Y.Tick.Marker = plot.ConstantTicks([]plot.Tick{})
	}
	w, h := o.Width, o.Height
	if w == 0 || h == 0 {
		w, h = 16, 10
	}
	if err := p.Save(vg.Length(w)*vg.Centimeter, vg.Length(h)*vg.Centimeter, path); err != nil {
		return fmt.Errorf("spx: %w", err)
	}
	aton.L().Info("spectra plotted", zap.String("path", path), zap.Int("datasets", len(s.Data)))
	return nil
}
