/*
 * qrotor_test.go, part of goAton.
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
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeRotor(gridsize int) *System {
	s := NewSystem("CH3")
	s.B = 1
	s.PotentialName = "zero"
	s.ELevels = 7
	s.Gridsize = gridsize
	return s
}

func TestRotationalB(t *testing.T) {
	assert.InDelta(t, 0.6546, BCH3, 1e-3)
	assert.InDelta(t, 2.0141017778/1.00782503207, BCH3/BCD3, 1e-12)
	assert.Greater(t, BNH3, BCH3)
	assert.Greater(t, BND3, BCD3)
}

func TestSetGroup(t *testing.T) {
	s := NewSystem("methyl")
	assert.Equal(t, "CH3", s.Group)
	assert.Equal(t, BCH3, s.B)
	assert.Equal(t, DefaultGridsize, s.Gridsize)
	s.SetGroup("nd3", 0.1)
	assert.Equal(t, "ND3", s.Group)
	assert.Equal(t, 0.1, s.B)
	s.SetGroup("OH", 0)
	assert.Equal(t, "OH", s.Group)
	assert.Equal(t, 0.1, s.B)
}

func TestFreeRotor(t *testing.T) {
	s := freeRotor(400)
	require.NoError(t, s.Solve())
	require.Len(t, s.Eigenvalues, 7)
	for i, e := range s.Eigenvalues {
		assert.InDelta(t, IdealE(i), e, 1e-2, "level %d", i)
	}
	assert.Len(t, s.Transitions, 6)
	assert.InDelta(t, 1, s.Transitions[0], 1e-2)
	assert.InDelta(t, 0, s.EnergyBarrier, 1e-9)
	require.Len(t, s.Eigenvectors, 7)
	assert.Len(t, s.Eigenvectors[0], 400)
	assert.InDelta(t, 0.05, math.Abs(s.Eigenvectors[0][123]), 1e-9)
	assert.Greater(t, s.Runtime, 0.0)
	assert.Contains(t, s.Summary().String(), "CH3")

	s = freeRotor(100)
	s.SaveEigenvectors = false
	require.NoError(t, s.Solve())
	assert.Nil(t, s.Eigenvectors)
}

func TestHinderedRotor(t *testing.T) {
	s := NewSystem("CH3")
	s.PotentialName = "sine"
	s.PotentialConstants = []float64{1, 2}
	s.ELevels = 5
	s.Gridsize = 300
	require.NoError(t, s.Solve())
	assert.InDelta(t, -1, s.PotentialOffset, 1e-3)
	assert.InDelta(t, 0, s.PotentialMin, 1e-12)
	assert.InDelta(t, 4, s.PotentialMax, 1e-3)
	assert.InDelta(t, s.PotentialMax-s.Eigenvalues[0], s.EnergyBarrier, 1e-12)
	assert.Greater(t, s.Eigenvalues[0], 0.0)
	for i := 1; i < len(s.Eigenvalues); i++ {
		assert.GreaterOrEqual(t, s.Eigenvalues[i], s.Eigenvalues[i-1])
	}

	s.PotentialName = "titov2023"
	s.PotentialConstants = nil
	assert.Error(t, s.Solve())
	s.PotentialName = "nope"
	assert.Error(t, s.Solve())
	s = freeRotor(100)
	s.B = 0
	assert.Error(t, s.Solve())
	s = freeRotor(0)
	assert.Error(t, s.Solve())
}

func TestCustomPotentialOffset(t *testing.T) {
	s := NewSystem("CH3")
	s.ELevels = 3
	s.Gridsize = 60
	s.Grid = Grid(60)
	s.PotentialValues = make([]float64, 60)
	for i, x := range s.Grid {
		s.PotentialValues[i] = 5 + math.Cos(3*x)
	}
	require.NoError(t, s.Solve())
	assert.InDelta(t, 4, s.PotentialOffset, 1e-12)
	first := append([]float64(nil), s.Eigenvalues...)
	require.NoError(t, s.Solve())
	assert.InDelta(t, 4, s.PotentialOffset, 1e-12)
	assert.InDelta(t, 0, s.PotentialMin, 1e-12)
	assert.InDeltaSlice(t, first, s.Eigenvalues, 1e-9)

	//named potentials start again from their formula
	s = NewSystem("CH3")
	s.PotentialName = "sine"
	s.PotentialConstants = []float64{1, 2}
	s.ELevels = 3
	s.Gridsize = 60
	require.NoError(t, s.Solve())
	require.NoError(t, s.Solve())
	assert.InDelta(t, -1, s.PotentialOffset, 1e-3)
}

func TestSetGrid(t *testing.T) {
	s := NewSystem("CH3")
	s.PotentialName = "test"
	s.CorrectPotentialOffset = false
	s.Gridsize = 100
	require.NoError(t, s.SetPotential())
	require.Len(t, s.PotentialValues, 100)
	require.NoError(t, s.SetGrid(250))
	assert.Equal(t, 250, s.Gridsize)
	require.Len(t, s.PotentialValues, 250)
	for i, x := range s.Grid {
		assert.InDelta(t, 2*math.Sin(x), s.PotentialValues[i], 2e-2)
	}
	assert.Error(t, s.SetGrid(2))
	assert.InDelta(t, 2*math.Pi/250, s.Grid[1], 1e-12)
}

func TestLoadPotential(t *testing.T) {
	var b strings.Builder
	b.WriteString("angle,energy\n")
	for deg := 0; deg <= 360; deg += 10 {
		fmt.Fprintf(&b, "%d,%g\n", deg, 100*math.Cos(3*float64(deg)*math.Pi/180))
	}
	path := filepath.Join(t.TempDir(), "potential.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	s := NewSystem("ND3")
	s.PotentialName = "zero"
	require.NoError(t, s.LoadPotential(path, "degrees", "cm-1"))
	assert.Equal(t, 36, s.Gridsize)
	assert.Equal(t, "", s.PotentialName)
	assert.InDelta(t, 100*0.12398419843320026, s.PotentialValues[0], 1e-9)
	require.NoError(t, s.SetGrid(300))
	s.ELevels = 4
	require.NoError(t, s.Solve())
	assert.Len(t, s.Eigenvalues, 4)
	assert.InDelta(t, 2*100*0.12398419843320026, s.PotentialMax, 0.1)

	assert.Error(t, s.LoadPotential(path, "meV", "cm-1"))
	assert.Error(t, s.LoadPotential(filepath.Join(t.TempDir(), "missing.csv"), "deg", "meV"))
}

func TestFourier(t *testing.T) {
	s := NewSystem("CH3")
	s.PotentialName = "titov2023"
	s.PotentialConstants = []float64{2.7, 0.01, -1.5, -0.004, -1.3}
	s.CorrectPotentialOffset = false
	s.Gridsize = 64
	require.NoError(t, s.SetPotential())
	a, b, err := s.Fourier(7)
	require.NoError(t, err)
	require.Len(t, a, 7)
	assert.InDelta(t, 2.7, a[0], 1e-9)
	assert.InDelta(t, 0.01, b[3], 1e-9)
	assert.InDelta(t, -1.5, a[3], 1e-9)
	assert.InDelta(t, -0.004, b[6], 1e-9)
	assert.InDelta(t, -1.3, a[6], 1e-9)
	assert.InDelta(t, 0, a[1], 1e-9)
	_, _, err = NewSystem("CH3").Fourier(3)
	assert.Error(t, err)
}

func TestSolveAll(t *testing.T) {
	systems := []*System{freeRotor(200), freeRotor(50), freeRotor(100)}
	require.NoError(t, SolveAll(context.Background(), systems, 2))
	for _, e := range Energies(systems) {
		require.NotNil(t, e)
		assert.InDelta(t, 1, e[1], 2e-2)
	}
	assert.Equal(t, []int{200, 50, 100}, Gridsizes(systems))
	SortByGridsize(systems)
	assert.Equal(t, []int{50, 100, 200}, Gridsizes(systems))
	assert.Len(t, Runtimes(systems), 3)
	assert.Equal(t, []string{"CH3"}, Groups(systems))
	ReduceSizes(systems)
	assert.Nil(t, systems[0].Grid)
	assert.Nil(t, systems[0].Eigenvectors)
	assert.NotNil(t, systems[0].Eigenvalues)

	unsolved := []*System{freeRotor(50), NewSystem("NH3")}
	assert.Nil(t, Energies(unsolved)[1])
	assert.Equal(t, []string{"CH3", "NH3"}, Groups(unsolved))
	bad := freeRotor(50)
	bad.PotentialName = "nope"
	assert.Error(t, SolveAll(context.Background(), []*System{freeRotor(50), bad}, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, SolveAll(ctx, []*System{freeRotor(50)}, 1), context.Canceled)
}

func TestIdealE(t *testing.T) {
	want := []float64{0, 1, 1, 4, 4, 9, 9}
	for i, w := range want {
		assert.Equal(t, w, IdealE(i))
	}
}

func TestSaveLoad(t *testing.T) {
	s := freeRotor(60)
	s.Comment = "free rotor"
	require.NoError(t, s.Solve())
	path := filepath.Join(t.TempDir(), "systems.json.zst")
	require.NoError(t, Save(path, s, freeRotor(30)))
	l, err := Load(path)
	require.NoError(t, err)
	require.Len(t, l, 2)
	assert.Equal(t, s.Eigenvalues, l[0].Eigenvalues)
	assert.Equal(t, s.Summary(), l[0].Summary())
	assert.Equal(t, 30, l[1].Gridsize)
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPlots(t *testing.T) {
	dir := t.TempDir()
	free := []*System{freeRotor(50), freeRotor(100), freeRotor(200)}
	require.NoError(t, SolveAll(context.Background(), free, 0))
	hindered := NewSystem("CH3")
	hindered.PotentialName = "sine"
	hindered.PotentialConstants = []float64{0, 3}
	hindered.Gridsize = 120
	hindered.ELevels = 4
	hindered.Comment = "sine"
	require.NoError(t, hindered.Solve())
	plots := map[string]func(string) error{
		"potential.png": func(p string) error { return PlotPotential([]*System{hindered, free[0]}, "", p) },
		"energies.png":  func(p string) error { return PlotEnergies([]*System{hindered, free[0]}, "Energies", p) },
		"wave.png":      func(p string) error { return PlotWavefunction(hindered, []int{0, 1, 2}, true, "", p) },
		"reduced.png":   func(p string) error { return PlotReducedEnergies(append(free, hindered), "", p) },
		"conv.png":      func(p string) error { return PlotConvergence(free, "", p) },
	}
	for name, f := range plots {
		path := filepath.Join(dir, name)
		require.NoError(t, f(path), name)
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.NotZero(t, info.Size(), name)
	}
	assert.Error(t, PlotWavefunction(hindered, []int{9}, false, "", filepath.Join(dir, "x.png")))
	assert.Error(t, PlotPotential(nil, "", filepath.Join(dir, "x.png")))
}
