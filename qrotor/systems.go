/*
 * systems.go, part of goAton.
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

import "sort"

//Helpers for sets of systems, such as convergence tests.

// Energies returns the eigenvalues of each system, nil for unsolved systems.
func Energies(systems []*System) [][]float64 {
	r := make([][]float64, len(systems))
	for i, s := range systems {
		if len(s.Eigenvalues) > 0 {
			r[i] = s.Eigenvalues
		}
	}
	return r
}

// Gridsizes returns the grid size of each system.
func Gridsizes(systems []*System) []int {
	r := make([]int, len(systems))
	for i, s := range systems {
		r[i] = s.Gridsize
	}
	return r
}

// Runtimes returns the runtime of each system, in s.
func Runtimes(systems []*System) []float64 {
	r := make([]float64, len(systems))
	for i, s := range systems {
		r[i] = s.Runtime
	}
	return r
}

// Groups returns the chemical groups of the systems, without repetitions,
// in order of appearance.
func Groups(systems []*System) []string {
	var r []string
	seen := make(map[string]bool)
	for _, s := range systems {
		if !seen[s.Group] {
			seen[s.Group] = true
			r = append(r, s.Group)
		}
	}
	return r
}

// SortByGridsize sorts the systems in place by increasing grid size, and returns them.
func SortByGridsize(systems []*System) []*System {
	sort.SliceStable(systems, func(i, j int) bool { return systems[i].Gridsize < systems[j].Gridsize })
	return systems
}

// ReduceSizes calls ReduceSize on all the systems, and returns them.
func ReduceSizes(systems []*System) []*System {
	for _, s := range systems {
		s.ReduceSize()
	}
	return systems
}

// IdealE returns the energy, in units of B, of the level with index level
// for a free rotor: levels are doubly degenerate above the ground state,
// with E = m^2.
func IdealE(level int) float64 {
	m := level / 2
	if level%2 != 0 {
		m = (level + 1) / 2
	}
	return float64(m * m)
}
