/*
 * phonopy.go, part of goAton.
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

//Package phonopy prepares finite-displacement phonon calculations with
//Phonopy and Quantum ESPRESSO.
package phonopy

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/api/qe"
	"github.com/rmera/goaton/api/slurm"
	"github.com/rmera/goaton/call"
	"github.com/rmera/goaton/file"
	"go.uber.org/zap"
)

// Options for MakeSupercells.
type Options struct {
	Folder string //the folder with the scf input, "." by default
	Scf    string //the relaxed scf input, "scf.in" by default
	Dim    [3]int //supercell dimensions, 2 2 2 by default
	Extra  string //additional phonopy flags
	Submit bool   //submit the supercells to Slurm after creating them
	Slurm  slurm.Options
}

// SetDefaults fills the empty fields of o.
func (o *Options) SetDefaults() {
	if o.Folder == "" {
		o.Folder = "."
	}
	if o.Scf == "" {
		o.Scf = "scf.in"
	}
	if o.Dim == [3]int{} {
		o.Dim = [3]int{2, 2, 2}
	}
}

// Supercells returns the paths of the supercell inputs created by phonopy in folder.
func Supercells(folder string) ([]string, error) {
	l, err := file.List(folder, []string{"supercell-", ".in"}, nil, true)
	if err != nil {
		return nil, fmt.Errorf("phonopy: %w", err)
	}
	return l, nil
}

// MakeSupercells runs phonopy to create the displaced supercells from the scf input,
// completes them with SupercellsFromScf and, if requested, submits them with Sbatch.
// It returns the paths of the supercell inputs.
func MakeSupercells(ctx context.Context, o Options) ([]string, error) {
	o.SetDefaults()
	command := fmt.Sprintf("phonopy --qe -d --dim=\"%d %d %d\" -c %s %s", o.Dim[0], o.Dim[1], o.Dim[2], o.Scf, o.Extra)
	out, err := call.Bash(ctx, strings.TrimSpace(command), o.Folder, false)
	if err != nil {
		return nil, fmt.Errorf("phonopy: %w: %s", err, out)
	}
	aton.L().Info("supercells created", zap.String("folder", o.Folder), zap.Ints("dim", o.Dim[:]))
	supercells, err := SupercellsFromScf(o.Folder, o.Scf)
	if err != nil {
		return nil, err
	}
	if o.Submit {
		if _, err := Sbatch(ctx, o.Folder, o.Slurm); err != nil {
			return supercells, err
		}
	}
	return supercells, nil
}

// SupercellsFromScf turns every supercell-XXX.in file in folder into a complete pw.x
// input: the namelists, ATOMIC_SPECIES and K_POINTS are taken from the scf input,
// and the cell, positions and number of atoms from the supercell. Forces and
// stresses are requested.
func SupercellsFromScf(folder, scf string) ([]string, error) {
	if scf == "" {
		scf = "scf.in"
	}
	supercells, err := Supercells(folder)
	if err != nil {
		return nil, err
	}
	if len(supercells) == 0 {
		return nil, fmt.Errorf("phonopy: no supercells in %s", folder)
	}
	scfpath := filepath.Join(folder, scf)
	for _, s := range supercells {
		if err := fromScf(scfpath, s); err != nil {
			return nil, fmt.Errorf("phonopy: %s: %w", s, err)
		}
	}
	aton.L().Info("supercells completed", zap.String("folder", folder), zap.Int("supercells", len(supercells)))
	return supercells, nil
}

type setting struct {
	key   string
	value any
}

func fromScf(scf, supercell string) error {
	sc, err := qe.ReadIn(supercell)
	if err != nil {
		return err
	}
	cell := sc.Card("CELL_PARAMETERS")
	positions := sc.Card("ATOMIC_POSITIONS")
	if len(cell) == 0 || len(positions) == 0 {
		return fmt.Errorf("no cell or positions")
	}
	if err := file.Copy(scf, supercell); err != nil {
		return err
	}
	set := []setting{
		{"calculation", "'scf'"},
		{"ibrav", 0},
		{"tstress", true},
		{"tprnfor", true},
		{"CELL_PARAMETERS", cell},
		{"ATOMIC_POSITIONS", positions},
	}
	//phonopy writes the cell in bohr or angstrom, which is incompatible with a lattice parameter
	if !strings.Contains(cell[0], "alat") {
		set = append(set, setting{"celldm(1)", ""}, setting{"A", ""})
	}
	for _, v := range set {
		if err := qe.SetValue(supercell, v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

// Sbatch submits all the supercells in folder through Slurm. The folder and the
// input filter of o are overwritten.
func Sbatch(ctx context.Context, folder string, o slurm.Options) ([]slurm.Submission, error) {
	o.Folder = folder
	o.Include = []string{"supercell-", ".in"}
	if o.Prefix == "" {
		o.Prefix = "ph_"
	}
	s, err := slurm.Sbatch(ctx, o)
	if err != nil {
		return s, fmt.Errorf("phonopy: %w", err)
	}
	return s, nil
}
