/*
 * slurm_test.go, part of goAton.
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

package slurm

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	c := DefaultConfig()
	c.Partition = "general"
	c.Memory = "64G"
	c.Extra = []string{"--exclusive"}
	want := []string{
		"#!/bin/bash",
		"#SBATCH --job-name=JOBNAME",
		"#SBATCH --output=slurm-%j.out",
		"#SBATCH --partition=general",
		"#SBATCH --nodes=1",
		"#SBATCH --ntasks=32",
		"#SBATCH --cpus-per-task=1",
		"#SBATCH --mem=64G",
		"#SBATCH --time=1-00:00:00",
		"#SBATCH --exclusive",
		"",
		"module purge",
		"module load QuantumESPRESSO",
		"",
		"srun pw.x -inp INPUT > OUTPUT",
	}
	got := c.Make()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, wanted %#v", got, want)
	}
}

func TestRender(t *testing.T) {
	tmpl, err := NewTemplate("#SBATCH --job-name=JOBNAME\n#SBATCH --ntasks={{.Config.Tasks}}\nmpirun pw.x < INPUT > {{.Output}}\n")
	if err != nil {
		t.Fatal(err)
	}
	c := DefaultConfig()
	c.Tasks = 8
	got, err := tmpl.Render(Job{Name: "scf", Input: "scf.in", Output: "scf.out", Config: c})
	if err != nil {
		t.Fatal(err)
	}
	want := "#SBATCH --job-name=scf\n#SBATCH --ntasks=8\nmpirun pw.x < scf.in > scf.out\n"
	if got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

func TestCheckTemplate(t *testing.T) {
	if err := CheckTemplate("JOBNAME INPUT OUTPUT"); err != nil {
		t.Error(err)
	}
	if err := CheckTemplate("{{.Name}} {{.Input}} {{.Output}}"); err != nil {
		t.Error(err)
	}
	err := CheckTemplate("JOBNAME only")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "INPUT, OUTPUT") {
		t.Errorf("wrong error %s", err)
	}
	if _, err := NewTemplate("no placeholders"); err == nil {
		t.Error("expected an error")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slurm.yaml")
	yml := "partition: short\nntasks: 4\nmodules:\n  - Phonopy\n  - QuantumESPRESSO\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Partition = "short"
	want.Tasks = 4
	want.Modules = []string{"Phonopy", "QuantumESPRESSO"}
	if !reflect.DeepEqual(c, want) {
		t.Errorf("got %#v, wanted %#v", c, want)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSbatchTesting(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"scf.in", "relax.in", "relax.out"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	subs, err := Sbatch(context.Background(), Options{Folder: dir, Prefix: "t_", Testing: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d submissions, wanted 2", len(subs))
	}
	if subs[0].Script != filepath.Join(dir, "t_relax.slurm") || subs[0].JobID != 0 {
		t.Errorf("wrong submission %#v", subs[0])
	}
	b, err := os.ReadFile(subs[1].Script)
	if err != nil {
		t.Fatal(err)
	}
	script := string(b)
	for _, s := range []string{"--job-name=t_scf", "srun pw.x -inp scf.in > scf.out"} {
		if !strings.Contains(script, s) {
			t.Errorf("%q not in script:\n%s", s, script)
		}
	}
	//scripts from a previous run are not taken as inputs
	subs, err = Sbatch(context.Background(), Options{Folder: dir, Include: []string{"relax"}, Testing: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 2 {
		t.Errorf("got %d submissions, wanted relax.in and relax.out", len(subs))
	}
}

func TestParseJobID(t *testing.T) {
	id, err := ParseJobID("Submitted batch job 775241\n")
	if err != nil || id != 775241 {
		t.Errorf("got %d %v, wanted 775241", id, err)
	}
	if _, err := ParseJobID("sbatch: error: invalid partition"); err == nil {
		t.Error("expected an error")
	}
	if err := Scancel(context.Background(), nil); err != nil {
		t.Error(err)
	}
}
