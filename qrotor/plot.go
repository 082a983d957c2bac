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

package qrotor

import (
	"fmt"
	"math"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/spx"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var angleTicks = plot.ConstantTicks([]plot.Tick{
	{Value: 0, Label: "0"},
	{Value: math.Pi / 2, Label: "π/2"},
	{Value: math.Pi, Label: "π"},
	{Value: 3 * math.Pi / 2, Label: "3π/2"},
	{Value: 2 * math.Pi, Label: "2π"},
})

func newPlot(title, deftitle, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	if title == "" {
		title = deftitle
	}
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Legend.Top = true
	return p
}

func save(p *plot.Plot, path string, w, h vg.Length) error {
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("qrotor: %w", err)
	}
	aton.L().Debug("plot saved", zap.String("path", path))
	return nil
}

// line returns a solid line for x, y with the color of key out of steps.
func line(x, y []float64, key, steps int) (*plotter.Line, error) {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i].X, xys[i].Y = x[i], y[i]
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, fmt.Errorf("qrotor: %w", err)
	}
	l.LineStyle.Color = spx.Color(key, steps)
	l.LineStyle.Width = vg.Points(1)
	return l, nil
}

// closed returns the grid and values of s with the first point repeated at 2pi.
func closed(s *System) ([]float64, []float64, error) {
	if len(s.Grid) == 0 || len(s.Grid) != len(s.PotentialValues) {
		return nil, nil, fmt.Errorf("qrotor: system without potential values")
	}
	return append(append([]float64(nil), s.Grid...), s.Grid[0]+2*math.Pi),
		append(append([]float64(nil), s.PotentialValues...), s.PotentialValues[0]), nil
}

// PlotPotential plots the potential of the systems to path. If title is empty
// the comment of the first system is used.
func PlotPotential(systems []*System, title, path string) error {
	if len(systems) == 0 {
		return fmt.Errorf("qrotor: no systems to plot")
	}
	p := newPlot(title, systems[0].Comment, "Angle / rad", "Potential energy / meV")
	if p.Title.Text == "" {
		p.Title.Text = "Rotational potential energy"
	}
	p.X.Tick.Marker = angleTicks
	for i, s := range systems {
		x, y, err := closed(s)
		if err != nil {
			return err
		}
		l, err := line(x, y, i, len(systems))
		if err != nil {
			return err
		}
		p.Add(l)
		if s.Comment != "" && len(systems) > 1 {
			p.Legend.Add(s.Comment, l)
		}
	}
	return save(p, path, 16*vg.Centimeter, 10*vg.Centimeter)
}

// PlotEnergies plots the potential and the eigenvalues of the systems to path.
func PlotEnergies(systems []*System, title, path string) error {
	if len(systems) == 0 {
		return fmt.Errorf("qrotor: no systems to plot")
	}
	p := newPlot(title, systems[0].Comment, "Angle / rad", "Energy / meV")
	if p.Title.Text == "" {
		p.Title.Text = "Energy eigenvalues"
	}
	p.X.Tick.Marker = angleTicks
	var potentials [][]float64
	groups := Groups(systems)
	for i, s := range systems {
		x, y, err := closed(s)
		if err != nil {
			return err
		}
		unique := true
		for _, v := range potentials {
			if len(v) == len(y) && floats.Equal(v, y) {
				unique = false
				break
			}
		}
		if unique {
			potentials = append(potentials, y)
			l, err := line(x, y, i, len(systems))
			if err != nil {
				return err
			}
			p.Add(l)
		}
		var labels plotter.XYLabels
		for j, e := range s.Eigenvalues {
			l, err := line([]float64{0, 2 * math.Pi}, []float64{e, e}, i, len(systems))
			if err != nil {
				return err
			}
			l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(l)
			if j == 0 && len(groups) > 1 {
				p.Legend.Add(s.Group+" energies", l)
			}
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(j%3) + float64(i), Y: e})
			labels.Labels = append(labels.Labels, fmt.Sprintf("E%d = %.4f", j, e))
		}
		if len(labels.XYs) > 0 {
			lb, err := plotter.NewLabels(labels)
			if err != nil {
				return fmt.Errorf("qrotor: %w", err)
			}
			p.Add(lb)
		}
	}
	return save(p, path, 20*vg.Centimeter, 12*vg.Centimeter)
}

// PlotReducedEnergies plots the reduced energies E/B of the systems as a function
// of their reduced potential barrier max(V)/B.
func PlotReducedEnergies(systems []*System, title, path string) error {
	if len(systems) == 0 {
		return fmt.Errorf("qrotor: no systems to plot")
	}
	p := newPlot(title, systems[0].Comment, "V / B", "E / B")
	if p.Title.Text == "" {
		p.Title.Text = "Reduced energies"
	}
	levels := len(systems[0].Eigenvalues)
	for _, s := range systems {
		if len(s.Eigenvalues) < levels {
			levels = len(s.Eigenvalues)
		}
	}
	if levels == 0 {
		return fmt.Errorf("qrotor: unsolved systems")
	}
	x := make([]float64, len(systems))
	for i, s := range systems {
		x[i] = s.PotentialMax / s.B
	}
	for j := 0; j < levels; j++ {
		y := make([]float64, len(systems))
		for i, s := range systems {
			y[i] = s.Eigenvalues[j] / s.B
		}
		l, err := line(x, y, j, levels)
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return save(p, path, 16*vg.Centimeter, 10*vg.Centimeter)
}

// PlotWavefunction plots the potential of the system and its eigenvectors for the given
// levels, or their squares if square is true, each one drawn at the height of its energy.
func PlotWavefunction(s *System, levels []int, square bool, title, path string) error {
	if len(s.Eigenvectors) == 0 {
		return fmt.Errorf("qrotor: the system has no eigenvectors")
	}
	ylabel := "Energy / meV, wavefunction"
	if square {
		ylabel = "Energy / meV, squared wavefunction"
	}
	p := newPlot(title, s.Comment, "Angle / rad", ylabel)
	if p.Title.Text == "" {
		p.Title.Text = "System wavefunction"
	}
	p.X.Tick.Marker = angleTicks
	x, v, err := closed(s)
	if err != nil {
		return err
	}
	l, err := line(x, v, 0, 1)
	if err != nil {
		return err
	}
	p.Add(l)
	height := s.PotentialMax - s.PotentialMin
	if height == 0 {
		height = s.B
	}
	for k, level := range levels {
		if level < 0 || level >= len(s.Eigenvectors) {
			return fmt.Errorf("qrotor: no eigenvector for level %d", level)
		}
		psi := append(append([]float64(nil), s.Eigenvectors[level]...), s.Eigenvectors[level][0])
		if square {
			floats.Mul(psi, psi)
		}
		scale := 0.3 * height / math.Max(floats.Max(psi), -floats.Min(psi))
		floats.Scale(scale, psi)
		floats.AddConst(s.Eigenvalues[level], psi)
		l, err := line(x, psi, k+1, len(levels)+1)
		if err != nil {
			return err
		}
		l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%d", level), l)
	}
	return save(p, path, 16*vg.Centimeter, 10*vg.Centimeter)
}

// PlotConvergence plots, in log scale, the deviation of the energy levels from the
// free rotor values as a function of the grid size. The systems must have been
// solved with the zero potential. Only one level of each degenerate pair is shown.
func PlotConvergence(systems []*System, title, path string) error {
	if len(systems) == 0 {
		return fmt.Errorf("qrotor: no systems to plot")
	}
	p := newPlot(title, systems[0].Comment, "Grid size", "Error / meV")
	if p.Title.Text == "" {
		p.Title.Text = "Energy convergence vs grid size"
	}
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	levels := len(systems[0].Eigenvalues)
	added := 0
	for j := 1; j < levels; j += 2 {
		var xys plotter.XYs
		for _, s := range systems {
			if j >= len(s.Eigenvalues) {
				continue
			}
			dev := math.Abs(IdealE(j)*s.B - s.Eigenvalues[j])
			if dev > 0 {
				xys = append(xys, plotter.XY{X: float64(s.Gridsize), Y: dev})
			}
		}
		if len(xys) == 0 {
			continue
		}
		l, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("qrotor: %w", err)
		}
		l.LineStyle.Color = spx.Color(j/2, levels/2)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("E%d", (j+1)/2), l)
		added++
	}
	if added == 0 {
		return fmt.Errorf("qrotor: no deviations to plot")
	}
	return save(p, path, 16*vg.Centimeter, 10*vg.Centimeter)
}
