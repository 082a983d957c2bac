/*
 * file_test.go, part of goAton.
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

package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"relax.in", "relax.out", "scf.in"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
	got, err := Get(filepath.Join(dir, "scf.in"), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scf.in"), got)

	got, err = Get(dir, []string{"relax", ".out"}, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "relax.out"), got)

	got, err = Get(dir, []string{".in"}, []string{"scf"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "relax.in"), got)

	_, err = Get(dir, []string{".in"}, nil)
	assert.Error(t, err)
	_, err = Get(dir, []string{"nothing"}, nil)
	assert.Error(t, err)
	_, err = Get(filepath.Join(dir, "missing"), nil, nil)
	assert.Error(t, err)

	l, err := List(dir, nil, nil, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"relax.in", "relax.out", "scf.in"}, l)
}

func TestCopyMoveRemove(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(a, []byte("hello"), 0o644))
	require.NoError(t, Copy(a, filepath.Join(dir, "b.txt")))
	require.NoError(t, Move(filepath.Join(dir, "b.txt"), filepath.Join(dir, "c.txt")))
	b, err := os.ReadFile(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	require.NoError(t, RenameOnFolder("c.", "d.", dir))
	_, err = os.Stat(filepath.Join(dir, "d.txt"))
	assert.NoError(t, err)
	require.NoError(t, CopyToFolders(dir, []string{"d.txt"}, nil))
	_, err = os.Stat(filepath.Join(dir, "d", "d.txt"))
	assert.NoError(t, err)
	require.NoError(t, Remove(filepath.Join(dir, "d")))
	require.NoError(t, Remove(filepath.Join(dir, "d")))
	_, err = os.Stat(filepath.Join(dir, "d"))
	assert.True(t, os.IsNotExist(err))
}

func TestCompressedSaveLoad(t *testing.T) {
	type data struct {
		Name   string
		Values []float64
	}
	in := data{"methyl", []float64{1, 2.5, -3}}
	for _, ext := range []string{".json", ".json.zst", ".json.gz"} {
		path := filepath.Join(t.TempDir(), "data"+ext)
		require.NoError(t, Save(in, path), ext)
		var out data
		require.NoError(t, Load(path, &out), ext)
		assert.Equal(t, in, out, ext)
	}
	//the compressed file must not be plain JSON
	path := filepath.Join(t.TempDir(), "data.zst")
	require.NoError(t, Save(in, path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, byte('{'), raw[0])
}

func TestErrorDecoration(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	e, ok := err.(Error)
	require.True(t, ok)
	assert.Equal(t, []string{"Open", "Read"}, e.Decorate(""))
	assert.Equal(t, []string{"Open", "Read", "Caller"}, e.Decorate("Caller"))
	assert.Equal(t, []string{"Open", "Read"}, e.Decorate(""))
	assert.True(t, e.Critical())
	assert.Contains(t, e.FileName(), "missing.txt")
}
