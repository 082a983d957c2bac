/*
 * solve.go, part of goAton.
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
	"time"

	aton "github.com/rmera/goaton"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Hamiltonian returns the Hamiltonian of the system on its grid, with the kinetic
// term -B d2/dx2 as periodic second-order finite differences. The grid must be regular.
func (s *System) Hamiltonian() (*mat.SymDense, error) {
	n := len(s.Grid)
	if n < 3 || len(s.PotentialValues) != n {
		return nil, fmt.Errorf("qrotor: the system has no grid or potential")
	}
	dx := 2 * math.Pi / float64(n)
	k := s.B / (dx * dx)
	h := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		h.SetSym(i, i, 2*k+s.PotentialValues[i])
		h.SetSym(i, (i+1)%n, -k)
	}
	return h, nil
}

// Solve computes the potential of the system, diagonalizes its Hamiltonian and
// keeps the lowest ELevels eigenvalues and, if requested, eigenvectors. It also
// sets the energy barrier, the transitions and the runtime.
func (s *System) Solve() error {
	start := time.Now()
	if s.B <= 0 {
		return fmt.Errorf("qrotor: B must be positive, got %g", s.B)
	}
	if err := s.SetPotential(); err != nil {
		return err
	}
	h, err := s.Hamiltonian()
	if err != nil {
		return err
	}
	var es mat.EigenSym
	if ok := es.Factorize(h, s.SaveEigenvectors); !ok {
		return fmt.Errorf("qrotor: the eigendecomposition failed")
	}
	values := es.Values(nil)
	levels := s.ELevels
	if levels <= 0 || levels > len(values) {
		levels = len(values)
	}
	s.Eigenvalues = values[:levels:levels]
	s.Eigenvectors = nil
	if s.SaveEigenvectors {
		var vecs mat.Dense
		es.VectorsTo(&vecs)
		for j := 0; j < levels; j++ {
			s.Eigenvectors = append(s.Eigenvectors, mat.Col(nil, j, &vecs))
		}
	}
	s.EnergyBarrier = s.PotentialMax - floats.Min(s.Eigenvalues)
	s.Transitions = make([]float64, 0, levels-1)
	for _, e := range s.Eigenvalues[1:] {
		s.Transitions = append(s.Transitions, e-s.Eigenvalues[0])
	}
	s.Runtime = time.Since(start).Seconds()
	aton.L().Info("system solved", zap.String("group", s.Group), zap.String("potential", s.PotentialName),
		zap.Int("gridsize", s.Gridsize), zap.Float64s("eigenvalues", s.Eigenvalues), zap.Float64("runtime", s.Runtime))
	return nil
}

// SolveAll solves the systems concurrently, with at most workers at a time
// (no limit if workers <= 0). It stops at the first error or when ctx is done.
func SolveAll(ctx context.Context, systems []*System, workers int) error {
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, s := range systems {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.Solve(); err != nil {
				return fmt.Errorf("qrotor: system %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}
