/*
 * material.go, part of goAton.
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
	"sort"
	"strings"

	"github.com/rmera/goaton/phys"
)

// Material is a sample, defined by the number of atoms of each element (such as "C")
// or isotope (such as "H2" or "D") per formula unit.
type Material struct {
	Name       string
	Elements   map[string]float64
	Grams      float64 //mass of the sample, optional
	GramsError float64
	//The following are calculated by Set
	MolarMass    float64 //g/mol
	CrossSection float64 //total bound neutron scattering cross section per formula unit, barns
	Mols         float64
	MolsError    float64
}

// elements returns the element names of m, sorted.
func (m *Material) elements() []string {
	r := make([]string, 0, len(m.Elements))
	for k := range m.Elements {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Set calculates the molar mass and the cross section of the material and,
// if the mass of the sample is known, its mols and their error.
func (m *Material) Set() error {
	if len(m.Elements) == 0 {
		return fmt.Errorf("spx: material %q has no elements", m.Name)
	}
	m.MolarMass, m.CrossSection = 0, 0
	for _, el := range m.elements() {
		mass, xs, err := phys.IsotopeData(el)
		if err != nil {
			return fmt.Errorf("spx: material %q: %w", m.Name, err)
		}
		n := m.Elements[el]
		m.MolarMass += n * mass
		m.CrossSection += n * xs
	}
	m.Mols, m.MolsError = 0, 0
	if m.Grams != 0 {
		m.Mols = m.Grams / m.MolarMass
		m.MolsError = m.Mols * math.Abs(m.GramsError/m.Grams)
	}
	return nil
}

func (m *Material) String() string {
	var b strings.Builder
	name := m.Name
	if name == "" {
		name = "Material"
	}
	b.WriteString(name + ":")
	for _, el := range m.elements() {
		fmt.Fprintf(&b, " %s%g", el, m.Elements[el])
	}
	fmt.Fprintf(&b, "\n  Molar mass: %g g/mol\n  Cross section: %g barns", m.MolarMass, m.CrossSection)
	if m.Grams != 0 {
		fmt.Fprintf(&b, "\n  Mass: %g +- %g g\n  Mols: %g +- %g", m.Grams, m.GramsError, m.Mols, m.MolsError)
	}
	return b.String()
}
