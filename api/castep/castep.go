/*
 * castep.go, part of goAton.
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

//Package castep reads CASTEP output (.castep) and cell (.cell) files.
package castep

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rmera/goaton/phys"
	"github.com/rmera/goaton/txt"
)

// Output contains the final results of a CASTEP calculation. Values that were
// not found are zero.
type Output struct {
	Enthalpy         float64 //eV
	Energy           float64 //eV
	SpaceGroup       string  //such as "221: Pm-3m"
	SpaceGroupNumber int
	Volume           float64 //A^3
	Density          float64 //amu/A^3
	DensityGcm3      float64 //g/cm^3
	A, B, C          float64 //A
	Alpha, Beta      float64 //degrees
	Gamma            float64
	Runtime          float64 //s
	Success          bool    //the geometry optimization completed successfully
}

// ReadOutput reads the last values of a .castep output file.
func ReadOutput(path string) (*Output, error) {
	o := new(Output)
	lines := func(key string, additional int) []string {
		l, err := txt.Lines(path, key, -1, additional, true, true)
		if err != nil {
			return nil
		}
		return l
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("castep: %w", err)
	}
	number := func(dest *float64, key, name string) {
		l := lines(key, 0)
		if len(l) == 0 {
			return
		}
		if n, err := txt.Number(l[0], name); err == nil {
			*dest = n
		}
	}
	number(&o.Enthalpy, `Final Enthalpy`, "=")
	number(&o.Energy, `Final energy`, "=")
	number(&o.Volume, `Current cell volume`, "=")
	number(&o.Runtime, `Total time`, "=")
	number(&o.A, `(?m)^[ \t]*a[ \t]*=.*alpha`, "a =")
	number(&o.Alpha, `(?m)^[ \t]*a[ \t]*=.*alpha`, "alpha")
	number(&o.B, `(?m)^[ \t]*b[ \t]*=.*beta`, "b =")
	number(&o.Beta, `(?m)^[ \t]*b[ \t]*=.*beta`, "beta")
	number(&o.C, `(?m)^[ \t]*c[ \t]*=.*gamma`, "c =")
	number(&o.Gamma, `(?m)^[ \t]*c[ \t]*=.*gamma`, "gamma")
	if l := lines(`density[ \t]*=.*AMU`, 1); len(l) == 2 {
		if n, err := txt.Number(l[0], "="); err == nil {
			o.Density = n
		}
		if n, err := txt.Number(l[1], "="); err == nil {
			o.DensityGcm3 = n
		}
	}
	if l := lines(`Space group of crystal`, 0); len(l) > 0 {
		if s, err := txt.String(l[0], "Space group of crystal", ",", true); err == nil {
			o.SpaceGroup = s
			if n, err := strconv.Atoi(strings.TrimSpace(strings.Split(s, ":")[0])); err == nil {
				o.SpaceGroupNumber = n
			}
		}
	}
	o.Success = len(lines(`optimization completed successfully`, 0)) > 0
	return o, nil
}

// Atom in a cell file.
type Atom struct {
	Element  string
	Label    string //the label after the colon, as in H:D, if any
	Position [3]float64
}

// Cell is the structure in a .cell file.
type Cell struct {
	Lattice [3][3]float64 //rows are the lattice vectors, in A
	Atoms   []Atom        //fractional coordinates
}

// ReadCell reads the lattice, from a LATTICE_CART or LATTICE_ABC block, and the
// fractional positions of a .cell file.
func ReadCell(path string) (*Cell, error) {
	c := new(Cell)
	block, err := txt.Between(path, `(?i)%BLOCK\s+LATTICE_CART`, `(?i)%ENDBLOCK\s+LATTICE_CART`, false, 1, true)
	if err == nil {
		factor := 1.0
		row := 0
		for _, l := range strings.Split(block, "\n") {
			if strings.Contains(strings.ToLower(l), "bohr") {
				factor = phys.Bohr2A
			}
			v := txt.Coords(l)
			if len(v) < 3 || row > 2 {
				continue
			}
			c.Lattice[row] = [3]float64{v[0] * factor, v[1] * factor, v[2] * factor}
			row++
		}
		if row != 3 {
			return nil, fmt.Errorf("castep: %s: incomplete LATTICE_CART block", path)
		}
	} else {
		block, err = txt.Between(path, `(?i)%BLOCK\s+LATTICE_ABC`, `(?i)%ENDBLOCK\s+LATTICE_ABC`, false, 1, true)
		if err != nil {
			return nil, fmt.Errorf("castep: %s: no lattice: %w", path, err)
		}
		var abc []float64
		for _, l := range strings.Split(block, "\n") {
			abc = append(abc, txt.Coords(l)...)
		}
		if len(abc) < 6 {
			return nil, fmt.Errorf("castep: %s: incomplete LATTICE_ABC block", path)
		}
		c.Lattice = Vectors(abc[0], abc[1], abc[2], abc[3], abc[4], abc[5])
	}
	block, err = txt.Between(path, `(?i)%BLOCK\s+POSITIONS_FRAC`, `(?i)%ENDBLOCK\s+POSITIONS_FRAC`, false, 1, true)
	if err != nil {
		return nil, fmt.Errorf("castep: %s: no fractional positions: %w", path, err)
	}
	for _, l := range strings.Split(block, "\n") {
		f := strings.Fields(l)
		if len(f) < 4 {
			continue
		}
		v := txt.Coords(strings.Join(f[1:], " "))
		if len(v) < 3 {
			continue
		}
		a := Atom{Element: f[0], Position: [3]float64{v[0], v[1], v[2]}}
		if el, label, ok := strings.Cut(f[0], ":"); ok {
			a.Element, a.Label = el, label
		}
		c.Atoms = append(c.Atoms, a)
	}
	return c, nil
}

// Vectors returns the lattice vectors for the given lattice parameters, with
// a along x and b in the xy plane. Angles are in degrees.
func Vectors(a, b, c, alpha, beta, gamma float64) [3][3]float64 {
	al, be, ga := alpha*phys.Deg2Rad, beta*phys.Deg2Rad, gamma*phys.Deg2Rad
	cx := c * math.Cos(be)
	cy := c * (math.Cos(al) - math.Cos(be)*math.Cos(ga)) / math.Sin(ga)
	cz := math.Sqrt(c*c - cx*cx - cy*cy)
	return [3][3]float64{
		{a, 0, 0},
		{b * math.Cos(ga), b * math.Sin(ga), 0},
		{cx, cy, cz},
	}
}
