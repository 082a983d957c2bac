/*
 * normalize.go, part of goAton.
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
	"math"

	"github.com/rmera/goaton/alias"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
)

// limits returns the given range, or the whole X range of d if xmin == xmax.
func limits(d *Dataset, xmin, xmax float64) (float64, float64) {
	if xmin == xmax {
		return math.Inf(-1), math.Inf(1)
	}
	return xmin, xmax
}

// scale multiplies the Y values, and errors, of the dataset by f.
func (d *Dataset) scale(f float64) {
	floats.Scale(f, d.Y)
	if d.YErr != nil {
		floats.Scale(f, d.YErr)
	}
}

// Height scales all datasets so their maximum between xmin and xmax matches the
// maximum of the dataset idx in the same range. The whole spectra are used if
// xmin == xmax.
func Height(s *Spectra, xmin, xmax float64, idx int) error {
	return normalize(s, xmin, xmax, idx, func(x, y []float64) float64 {
		if len(y) == 0 {
			return 0
		}
		return floats.Max(y)
	})
}

// Area scales all datasets so their area between xmin and xmax matches the area
// of the dataset idx in the same range. The whole spectra are used if xmin == xmax.
func Area(s *Spectra, xmin, xmax float64, idx int) error {
	return normalize(s, xmin, xmax, idx, func(x, y []float64) float64 {
		if len(y) < 2 {
			return 0
		}
		return integrate.Trapezoidal(x, y)
	})
}

func normalize(s *Spectra, xmin, xmax float64, idx int, measure func(x, y []float64) float64) error {
	ref, err := s.dataset(idx)
	if err != nil {
		return err
	}
	value := func(d *Dataset) float64 {
		i, j := d.window(limits(d, xmin, xmax))
		return measure(d.X[i:j], d.Y[i:j])
	}
	target := value(ref)
	if target == 0 {
		return fmt.Errorf("spx: cannot normalize to a zero reference between %g and %g", xmin, xmax)
	}
	for n, d := range s.Data {
		v := value(d)
		if v == 0 {
			return fmt.Errorf("spx: cannot normalize dataset %d, zero between %g and %g", n, xmin, xmax)
		}
		d.scale(target / v)
	}
	return nil
}

// Normalize applies the normalization set in the plotting options, if any,
// using the range and reference of the scaling options.
func (s *Spectra) Normalize() error {
	sc := s.Scaling
	if s.Plotting.Normalize == "" {
		return nil
	}
	switch n, _ := alias.Lookup(alias.Spatial, s.Plotting.Normalize); n {
	case "height":
		return Height(s, sc.XMin, sc.XMax, sc.Index)
	case "area":
		return Area(s, sc.XMin, sc.XMax, sc.Index)
	}
	return fmt.Errorf("spx: unknown normalization %q", s.Plotting.Normalize)
}

var unitStrings = map[string]string{
	"cm-1":     "cm⁻¹",
	"A":        "Å",
	"kcal/mol": "kcal mol⁻¹",
	"kJ/mol":   "kJ mol⁻¹",
	"deg":      "°",
}

// UnitString returns the printable label for the given unit.
func UnitString(unit string) string {
	u, ok := alias.Unit(unit)
	if !ok {
		return unit
	}
	if s, ok := unitStrings[u]; ok {
		return s
	}
	return u
}
