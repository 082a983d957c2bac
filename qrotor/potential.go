/*
 * potential.go, part of goAton.
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
	"sort"

	"github.com/rmera/goaton/alias"
	"github.com/rmera/goaton/phys"
	"github.com/rmera/goaton/spx"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// Potential returns the potential energy, in meV, at the angle x (radians), for the given constants.
type Potential func(x float64, c []float64) float64

// constant returns c[i], or 0 if c has no such element.
func constant(c []float64, i int) float64 {
	if i < len(c) {
		return c[i]
	}
	return 0
}

// Potentials available by name. Missing constants are taken as zero.
var Potentials = map[string]Potential{
	"zero": func(x float64, c []float64) float64 { return 0 },
	//C0 + C1 sin(3x + C2) + C3 sin(6x + C4)
	"sine": func(x float64, c []float64) float64 {
		return constant(c, 0) + constant(c, 1)*math.Sin(3*x+constant(c, 2)) + constant(c, 3)*math.Sin(6*x+constant(c, 4))
	},
	//K. Titov et al., Phys. Rev. Mater. 7, 073402 (2023):
	//C0 + C1 sin(3x) + C2 cos(3x) + C3 sin(6x) + C4 cos(6x)
	"titov2023": func(x float64, c []float64) float64 {
		return constant(c, 0) + constant(c, 1)*math.Sin(3*x) + constant(c, 2)*math.Cos(3*x) +
			constant(c, 3)*math.Sin(6*x) + constant(c, 4)*math.Cos(6*x)
	},
	"test": func(x float64, c []float64) float64 { return 2 * math.Sin(x) },
}

// SetPotential computes the potential values on the grid for the named potential
// of the system, creating the grid first if needed. Systems without potential
// name keep their custom values, which must match the grid. The offset is then
// corrected if requested, and the minimum and maximum are updated.
// PotentialOffset accumulates every shift applied to custom values, so it is
// kept when the system is solved again.
func (s *System) SetPotential() error {
	if s.Gridsize == 0 || len(s.Grid) != s.Gridsize || !regular(s.Grid) {
		if err := s.SetGrid(s.Gridsize); err != nil {
			return err
		}
	}
	if s.PotentialName != "" {
		f, ok := Potentials[s.PotentialName]
		if !ok {
			return fmt.Errorf("qrotor: unknown potential %q", s.PotentialName)
		}
		if s.PotentialName == "titov2023" && len(s.PotentialConstants) == 0 {
			return fmt.Errorf("qrotor: the titov2023 potential needs its constants")
		}
		s.PotentialOffset = 0
		s.PotentialValues = make([]float64, len(s.Grid))
		for i, x := range s.Grid {
			s.PotentialValues[i] = f(x, s.PotentialConstants)
		}
	}
	if len(s.PotentialValues) != len(s.Grid) {
		return fmt.Errorf("qrotor: %d potential values for a grid of %d points", len(s.PotentialValues), len(s.Grid))
	}
	if low := floats.Min(s.PotentialValues); s.CorrectPotentialOffset && low != 0 {
		s.PotentialOffset += low
		floats.AddConst(-low, s.PotentialValues)
	}
	s.PotentialMin = floats.Min(s.PotentialValues)
	s.PotentialMax = floats.Max(s.PotentialValues)
	return nil
}

// LoadPotential reads the potential of the system from a file with two columns,
// angle and energy, in the given units ("deg" or "rad", and any energy unit, see
// alias.Units). Angles are wrapped to [0, 2pi) and the last point is dropped if it
// repeats the first one. The grid of the system is set to the read angles, and
// the values are interpolated to a regular grid by SetGrid or before solving.
func (s *System) LoadPotential(path, angleUnit, energyUnit string) error {
	d, err := spx.Load(path)
	if err != nil {
		return fmt.Errorf("qrotor: %w", err)
	}
	au, ok := alias.Unit(angleUnit)
	if !ok || (au != "deg" && au != "rad") {
		return fmt.Errorf("qrotor: bad angle unit %q", angleUnit)
	}
	eu, ok := alias.Unit(energyUnit)
	if !ok {
		return fmt.Errorf("qrotor: bad energy unit %q", energyUnit)
	}
	f, err := phys.EnergyFactor(eu, "meV")
	if err != nil {
		return fmt.Errorf("qrotor: %w", err)
	}
	type point struct{ x, v float64 }
	points := make([]point, 0, len(d.X))
	for i, x := range d.X {
		if au == "deg" {
			x *= phys.Deg2Rad
		}
		x = math.Mod(x, 2*math.Pi)
		if x < 0 {
			x += 2 * math.Pi
		}
		if 2*math.Pi-x < 1e-9 {
			x = 0
		}
		points = append(points, point{x, d.Y[i] * f})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].x < points[j].x })
	s.Grid, s.PotentialValues = nil, nil
	for _, p := range points {
		if n := len(s.Grid); n > 0 && p.x-s.Grid[n-1] < 1e-9 {
			continue
		}
		s.Grid = append(s.Grid, p.x)
		s.PotentialValues = append(s.PotentialValues, p.v)
	}
	if len(s.Grid) < 3 {
		return fmt.Errorf("qrotor: %s: not enough points", path)
	}
	s.Gridsize = len(s.Grid)
	s.PotentialName = ""
	return nil
}

// interpolate moves the potential values to a regular grid of n points, with an
// Akima spline closed over the period.
func (s *System) interpolate(n int) error {
	xs := append(append([]float64(nil), s.Grid...), s.Grid[0]+2*math.Pi)
	ys := append(append([]float64(nil), s.PotentialValues...), s.PotentialValues[0])
	var spline interp.AkimaSpline
	if err := spline.Fit(xs, ys); err != nil {
		return fmt.Errorf("qrotor: interpolating the potential: %w", err)
	}
	grid := Grid(n)
	values := make([]float64, n)
	for i, x := range grid {
		if x < xs[0] {
			x += 2 * math.Pi
		}
		values[i] = spline.Predict(x)
	}
	s.Grid, s.PotentialValues, s.Gridsize = grid, values, n
	return nil
}

// Fourier returns the first terms coefficients of the Fourier series of the potential
// values of s, V = a0 + sum_k a_k cos(kx) + b_k sin(kx), as a and b. a[0] is the mean
// value and b[0] is always zero. The grid must be regular, as set by SetGrid.
func (s *System) Fourier(terms int) (a, b []float64, err error) {
	n := len(s.PotentialValues)
	if n == 0 || n != len(s.Grid) {
		return nil, nil, fmt.Errorf("qrotor: no potential values")
	}
	if terms > n/2+1 {
		terms = n/2 + 1
	}
	fft := fourier.NewFFT(n)
	c := fft.Coefficients(nil, s.PotentialValues)
	a = make([]float64, terms)
	b = make([]float64, terms)
	a[0] = real(c[0]) / float64(n)
	for k := 1; k < terms; k++ {
		a[k] = 2 * real(c[k]) / float64(n)
		b[k] = -2 * imag(c[k]) / float64(n)
	}
	return a, b, nil
}
