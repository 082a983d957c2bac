/*
 * phonopy_test.go, part of goAton.
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

package phonopy

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rmera/goaton/api/qe"
	"github.com/rmera/goaton/api/slurm"
	"github.com/rmera/goaton/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const supercell = `&SYSTEM
   ibrav = 0
   nat = 4
   ntyp = 3
/
CELL_PARAMETERS bohr
   20.0000000000000000    0.0000000000000000    0.0000000000000000
    0.0000000000000000   20.0000000000000000    0.0000000000000000
    0.0000000000000000    0.0000000000000000   10.0000000000000000
ATOMIC_SPECIES
 I  126.90447   I.upf
 N   14.00670   N.upf
 C   12.01070   C.upf
ATOMIC_POSITIONS crystal
 I   0.5050000000000000  0.0000000000000000  0.0000000000000000
 I   0.0000000000000000  0.5000000000000000  0.0000000000000000
 C   0.0000000000000000  0.2500000000000000  0.0000000000000000
 N   0.0000000000000000  0.0000000000000000  0.5000000000000000
`

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, file.Copy("../../test/qe/relax.in", filepath.Join(dir, "scf.in")))
	for i := 1; i <= 2; i++ {
		name := filepath.Join(dir, fmt.Sprintf("supercell-%03d.in", i))
		require.NoError(t, os.WriteFile(name, []byte(supercell), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "supercell.in"), []byte(supercell), 0o644))
	return dir
}

func TestSupercellsFromScf(t *testing.T) {
	dir := setup(t)
	sc, err := SupercellsFromScf(dir, "")
	require.NoError(t, err)
	require.Len(t, sc, 2)
	assert.Equal(t, filepath.Join(dir, "supercell-001.in"), sc[0])
	for _, s := range sc {
		v, err := qe.ReadIn(s)
		require.NoError(t, err)
		assert.Equal(t, 4, v["nat"])
		assert.Equal(t, 0, v["ibrav"])
		assert.Equal(t, "'scf'", v["calculation"])
		assert.Equal(t, true, v["tprnfor"])
		assert.Equal(t, "'PBEsol'", v["input_dft"])
		assert.Equal(t, "2 2 2 0 0 0", v["K_POINTS"])
		assert.NotContains(t, v, "A")
		assert.Equal(t, "CELL_PARAMETERS bohr", v.Card("CELL_PARAMETERS")[0])
		assert.Len(t, v.Card("ATOMIC_POSITIONS"), 5)
		assert.Len(t, v.Card("ATOMIC_SPECIES"), 4)
	}
	_, err = SupercellsFromScf(t.TempDir(), "")
	assert.Error(t, err)
}

func TestSbatch(t *testing.T) {
	dir := setup(t)
	subs, err := Sbatch(context.Background(), dir, slurm.Options{Testing: true})
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, filepath.Join(dir, "ph_supercell-002.slurm"), subs[1].Script)
}

func TestMakeSupercells(t *testing.T) {
	if _, err := exec.LookPath("phonopy"); err != nil {
		t.Skip("phonopy is not installed")
	}
	dir := t.TempDir()
	require.NoError(t, file.Copy("../../test/qe/relax.in", filepath.Join(dir, "scf.in")))
	sc, err := MakeSupercells(context.Background(), Options{Folder: dir, Dim: [3]int{1, 1, 1}})
	require.NoError(t, err)
	assert.NotEmpty(t, sc)
}
