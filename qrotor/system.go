/*
 * system.go, part of goAton.
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

//Package qrotor solves the quantum hindered rotor: the energy levels of a
//methyl or amine group rotating in a one-dimensional periodic potential.
//
//	s := qrotor.NewSystem("CH3")
//	s.PotentialName = "titov2023"
//	s.PotentialConstants = []float64{2.78, 0.01, -1.53, -0.004, -1.28}
//	err := s.Solve()
//
//Energies are in meV and angles in radians.
package qrotor

import (
	"fmt"
	"math"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/alias"
	"github.com/rmera/goaton/file"
	"github.com/rmera/goaton/phys"
)

// Default values for new systems.
const (
	DefaultGridsize = 400
	DefaultELevels  = 15
)

//Distances of the hydrogens to the rotation axis, in A, for tetrahedral groups with
//C-H and N-H bonds of 1.09 and 1.03 A.
var (
	rCH = 1.09 * math.Sin(math.Acos(-1.0/3))
	rNH = 1.03 * math.Sin(math.Acos(-1.0/3))
)

// RotationalB returns the rotational constant B = hbar^2/2I, in meV, of three
// atoms of mass m (amu) at a distance r (A) of the rotation axis.
func RotationalB(m, r float64) float64 {
	i := 3 * m * phys.AMU2Kg * r * r * phys.A2M * phys.A2M
	return phys.Hbar * phys.Hbar / (2 * i) * phys.J2MeV
}

// Rotational constants of the supported groups, in meV.
var (
	BCH3 = RotationalB(phys.Atoms["H"].Isotope[1].Mass, rCH)
	BCD3 = RotationalB(phys.Atoms["H"].Isotope[2].Mass, rCH)
	BNH3 = RotationalB(phys.Atoms["H"].Isotope[1].Mass, rNH)
	BND3 = RotationalB(phys.Atoms["H"].Isotope[2].Mass, rNH)
)

var groupB = map[string]float64{"CH3": BCH3, "CD3": BCD3, "NH3": BNH3, "ND3": BND3}

// System contains the inputs and the results of a single hindered rotor calculation.
type System struct {
	Version                string    `json:"version"`
	Comment                string    `json:"comment,omitempty"`
	Group                  string    `json:"group"` //CH3, CD3, NH3 or ND3
	ELevels                int       `json:"E_levels"`
	CorrectPotentialOffset bool      `json:"correct_potential_offset"`
	SaveEigenvectors       bool      `json:"save_eigenvectors"`
	Gridsize               int       `json:"gridsize"`
	Grid                   []float64 `json:"grid,omitempty"` //from 0 to 2pi, without 2pi itself
	B                      float64   `json:"B"`
	PotentialName          string    `json:"potential_name"`             //see Potentials. Empty for custom values
	PotentialConstants     []float64 `json:"potential_constants"`        //used by the named potentials
	PotentialValues        []float64 `json:"potential_values,omitempty"` //meV, one per grid point
	//Results
	PotentialOffset float64     `json:"potential_offset"` //min(V) before the offset correction
	PotentialMin    float64     `json:"potential_min"`
	PotentialMax    float64     `json:"potential_max"`
	Eigenvalues     []float64   `json:"eigenvalues"`
	Eigenvectors    [][]float64 `json:"eigenvectors,omitempty"` //one per energy level
	EnergyBarrier   float64     `json:"energy_barrier"`         //max(V) - min(eigenvalues)
	Transitions     []float64   `json:"transitions"`            //eigenvalues[i] - eigenvalues[0], i > 0
	Runtime         float64     `json:"runtime"`                //s
}

// NewSystem returns a system for the given group, with its rotational constant
// and the default number of levels and grid size.
func NewSystem(group string) *System {
	s := &System{
		Version:                aton.Version,
		ELevels:                DefaultELevels,
		CorrectPotentialOffset: true,
		SaveEigenvectors:       true,
		Gridsize:               DefaultGridsize,
	}
	s.SetGroup(group, 0)
	return s
}

// SetGroup normalizes the name of the group (see alias.Chemical) and sets B to the
// given value or, if b is zero, to the rotational constant of the group.
// Unknown groups are kept as given, and B is not changed unless b is given.
func (s *System) SetGroup(group string, b float64) {
	g, ok := alias.ChemicalGroup(group)
	if !ok {
		s.Group = group
		if b != 0 {
			s.B = b
		}
		return
	}
	s.Group = g
	if b == 0 {
		b = groupB[g]
	}
	s.B = b
}

// SetGrid sets a grid of gridsize points over the full rotation. If the system
// already has a grid and potential values, the values are interpolated to the
// new grid. A zero gridsize keeps the current one.
func (s *System) SetGrid(gridsize int) error {
	if gridsize == 0 {
		gridsize = s.Gridsize
	}
	if gridsize < 3 {
		return fmt.Errorf("qrotor: a grid needs at least 3 points, got %d", gridsize)
	}
	if gridsize == len(s.Grid) && regular(s.Grid) {
		s.Gridsize = gridsize
		return nil
	}
	if len(s.PotentialValues) > 0 && len(s.PotentialValues) == len(s.Grid) {
		return s.interpolate(gridsize)
	}
	s.Gridsize = gridsize
	s.Grid = Grid(gridsize)
	s.PotentialValues = nil
	return nil
}

// Grid returns n equidistant angles from 0 to 2pi, the last one excluded.
func Grid(n int) []float64 {
	g := make([]float64, n)
	dx := 2 * math.Pi / float64(n)
	for i := range g {
		g[i] = float64(i) * dx
	}
	return g
}

// regular returns true if g is a grid as returned by Grid.
func regular(g []float64) bool {
	dx := 2 * math.Pi / float64(len(g))
	for i, x := range g {
		if math.Abs(x-float64(i)*dx) > 1e-9 {
			return false
		}
	}
	return true
}

// ReduceSize discards the eigenvectors, the grid and the potential values.
func (s *System) ReduceSize() {
	s.Eigenvectors = nil
	s.PotentialValues = nil
	s.Grid = nil
}

// Summary contains the scalar results of a system.
type Summary struct {
	Version            string    `json:"version"`
	Comment            string    `json:"comment,omitempty"`
	Group              string    `json:"group"`
	Gridsize           int       `json:"gridsize"`
	B                  float64   `json:"B"`
	PotentialName      string    `json:"potential_name"`
	PotentialConstants []float64 `json:"potential_constants"`
	PotentialOffset    float64   `json:"potential_offset"`
	PotentialMin       float64   `json:"potential_min"`
	PotentialMax       float64   `json:"potential_max"`
	Eigenvalues        []float64 `json:"eigenvalues"`
	EnergyBarrier      float64   `json:"energy_barrier"`
	Transitions        []float64 `json:"transitions"`
	Runtime            float64   `json:"runtime"`
}

// Summary returns the summary of s.
func (s *System) Summary() Summary {
	return Summary{
		Version:            s.Version,
		Comment:            s.Comment,
		Group:              s.Group,
		Gridsize:           s.Gridsize,
		B:                  s.B,
		PotentialName:      s.PotentialName,
		PotentialConstants: s.PotentialConstants,
		PotentialOffset:    s.PotentialOffset,
		PotentialMin:       s.PotentialMin,
		PotentialMax:       s.PotentialMax,
		Eigenvalues:        s.Eigenvalues,
		EnergyBarrier:      s.EnergyBarrier,
		Transitions:        s.Transitions,
		Runtime:            s.Runtime,
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("%s %s, B = %.4f meV, %d points, V %s %v: barrier %.4f meV, E = %.4f",
		s.Comment, s.Group, s.B, s.Gridsize, s.PotentialName, s.PotentialConstants, s.EnergyBarrier, s.Eigenvalues)
}

// Save writes the systems as JSON to path, compressed if path ends in .zst or .gz.
func Save(path string, systems ...*System) error {
	if err := file.Save(systems, path); err != nil {
		return fmt.Errorf("qrotor: %w", err)
	}
	return nil
}

// Load reads the systems saved with Save.
func Load(path string) ([]*System, error) {
	var s []*System
	if err := file.Load(path, &s); err != nil {
		return nil, fmt.Errorf("qrotor: %w", err)
	}
	return s, nil
}
