/*
 * castep_test.go, part of goAton.
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

package castep

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOutput(t *testing.T) {
	o, err := ReadOutput("../../test/castep/test.castep")
	require.NoError(t, err)
	want := Output{
		Enthalpy:         -3001.5,
		Energy:           -3001.5,
		SpaceGroup:       "221: Pm-3m",
		SpaceGroupNumber: 221,
		Volume:           238,
		Density:          1.8,
		DensityGcm3:      2.989,
		A:                6.1,
		B:                6.2,
		C:                6.3,
		Alpha:            90,
		Beta:             91,
		Gamma:            92,
		Runtime:          125.5,
		Success:          true,
	}
	assert.Equal(t, want, *o)
	_, err = ReadOutput("../../test/castep/missing.castep")
	assert.Error(t, err)
}

func TestReadCell(t *testing.T) {
	c, err := ReadCell("../../test/castep/test.cell")
	require.NoError(t, err)
	assert.Equal(t, [3][3]float64{{6.1, 0, 0}, {0, 6.2, 0}, {0, 0, 6.3}}, c.Lattice)
	require.Len(t, c.Atoms, 5)
	assert.Equal(t, Atom{"Pb", "", [3]float64{0.5, 0.5, 0.5}}, c.Atoms[0])
	assert.Equal(t, Atom{"H", "D", [3]float64{0.05, 0.1, 0}}, c.Atoms[4])
}

func TestVectors(t *testing.T) {
	v := Vectors(2, 3, 4, 90, 90, 90)
	for i := range v {
		for j := range v[i] {
			want := 0.0
			if i == j {
				want = float64(i + 2)
			}
			assert.InDelta(t, want, v[i][j], 1e-12)
		}
	}
	v = Vectors(1, 1, 1, 90, 90, 120)
	assert.InDelta(t, -0.5, v[1][0], 1e-12)
	assert.InDelta(t, math.Sqrt(3)/2, v[1][1], 1e-12)
}
