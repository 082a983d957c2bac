/*
 * txt_test.go, part of goAton.
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

package txt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/goaton/file"
)

const sample = `line1
key line2
line3
key line4
line5
end line6
line7`

func writeSample(Te *testing.T, content string) string {
	Te.Helper()
	path := filepath.Join(Te.TempDir(), "sample.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		Te.Fatal(err)
	}
	return path
}

func readBack(Te *testing.T, path string) string {
	Te.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		Te.Fatal(err)
	}
	return string(b)
}

func TestFindPos(Te *testing.T) {
	c := []byte(sample)
	all := FindPos(c, "key", 0)
	if diff := cmp.Diff([]Span{{6, 9}, {22, 25}}, all); diff != "" {
		Te.Errorf("all matches (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Span{{6, 9}}, FindPos(c, "key", 1)); diff != "" {
		Te.Errorf("first match (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Span{{22, 25}}, FindPos(c, "key", -1)); diff != "" {
		Te.Errorf("last match (-want +got):\n%s", diff)
	}
	re, err := FindPosRegex(c, `line\d`, -2)
	if err != nil {
		Te.Fatal(err)
	}
	if len(re) != 2 || string(c[re[0].Start:re[0].End]) != "line6" || string(c[re[1].Start:re[1].End]) != "line7" {
		Te.Errorf("wrong regex matches %v", re)
	}
	if _, err := FindPosRegex(c, `(`, 0); err == nil {
		Te.Error("expected an error for a bad regexp")
	}
}

func TestNextAndLinePos(Te *testing.T) {
	c := []byte(sample)
	first := FindPos(c, "key", 1)[0]
	next := NextPos(c, first, "key", 1)
	if next != (Span{22, 25}) {
		Te.Errorf("wrong next position %v", next)
	}
	if back := NextPos(c, next, "key", -1); back != first {
		Te.Errorf("wrong previous position %v", back)
	}
	if none := NextPos(c, next, "key", 1); none.Found() {
		Te.Errorf("expected no match, got %v", none)
	}
	nr, err := NextPosRegex(c, first, `line\d`, 2)
	if err != nil {
		Te.Fatal(err)
	}
	if string(c[nr.Start:nr.End]) != "line3" {
		Te.Errorf("wrong regex next %q", c[nr.Start:nr.End])
	}
	l := LinePos(c, first, 0)
	if string(c[l.Start:l.End]) != "key line2" {
		Te.Errorf("wrong line %q", c[l.Start:l.End])
	}
	l = LinePos(c, first, 2)
	if string(c[l.Start:l.End]) != "key line4" {
		Te.Errorf("wrong line below %q", c[l.Start:l.End])
	}
	l = LinePos(c, first, -1)
	if string(c[l.Start:l.End]) != "line1" {
		Te.Errorf("wrong line above %q", c[l.Start:l.End])
	}
	if LinePos(c, NoSpan, 0).Found() {
		Te.Error("NoSpan must stay NoSpan")
	}
}

func TestBetween(Te *testing.T) {
	path := writeSample(Te, sample)
	b, err := Between(path, "key", "end", false, 1, false)
	if err != nil {
		Te.Fatal(err)
	}
	if b != "line3\nkey line4\nline5" {
		Te.Errorf("wrong between %q", b)
	}
	b, err = Between(path, "key", "end", true, -1, false)
	if err != nil {
		Te.Fatal(err)
	}
	if b != "key line4\nline5\nend line6" {
		Te.Errorf("wrong between from the end %q", b)
	}
	b, err = Between(path, `line5`, `nothing`, true, 1, true)
	if err != nil {
		Te.Fatal(err)
	}
	if b != "line5\nend line6\nline7" {
		Te.Errorf("wrong between to the end %q", b)
	}
	b, err = Between(path, "key", "end", false, 5, false)
	if err != nil {
		Te.Fatal(err)
	}
	if b != "line5" {
		Te.Errorf("wrong between with few matches %q", b)
	}
	b, err = Between(path, "key", "line", true, 1, false)
	if err != nil {
		Te.Fatal(err)
	}
	if b != "key line2" {
		Te.Errorf("wrong between with both keys in one line %q", b)
	}
	if _, err := Between(path, "nothing", "end", true, 1, false); err == nil {
		Te.Error("expected an error for a missing key")
	}
}

func TestLines(Te *testing.T) {
	path := writeSample(Te, sample)
	l, err := Lines(path, "key", 0, 0, false, false)
	if err != nil {
		Te.Fatal(err)
	}
	if diff := cmp.Diff([]string{"key line2", "key line4"}, l); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	l, _ = Lines(path, "key", -1, 1, false, false)
	if diff := cmp.Diff([]string{"key line4\nline5"}, l); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	l, _ = Lines(path, "key", 1, -1, true, false)
	if diff := cmp.Diff([]string{"line1", "key line2"}, l); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
	l, _ = Lines(path, "line7", 1, 3, false, false)
	if diff := cmp.Diff([]string{"line7"}, l); diff != "" {
		Te.Errorf("(-want +got):\n%s", diff)
	}
}

func TestEdit(Te *testing.T) {
	path := writeSample(Te, "a\nb\nc\n")
	if err := InsertAt(path, "z", -1); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "a\nb\nc\nz\n" {
		Te.Errorf("InsertAt end: %q", got)
	}
	if err := InsertAt(path, "first", 0); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "first\na\nb\nc\nz\n" {
		Te.Errorf("InsertAt start: %q", got)
	}
	if err := InsertUnder(path, "b", "under b", 0, 0, false); err != nil {
		Te.Fatal(err)
	}
	if err := InsertUnder(path, "b", "above b", 1, -1, false); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "first\na\nabove b\nb\nunder b\nc\nz\n" {
		Te.Errorf("InsertUnder: %q", got)
	}
	if err := ReplaceLine(path, "under", "", 0, 0, 0, false); err != nil {
		Te.Fatal(err)
	}
	if err := ReplaceLine(path, "above", "B", 0, 1, 0, false); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "first\na\nabove b\nB\nc\nz\n" {
		Te.Errorf("ReplaceLine: %q", got)
	}
	if err := Replace(path, `(?m)b$`, "X", 0, true); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "first\na\nabove X\nB\nc\nz\n" {
		Te.Errorf("Replace: %q", got)
	}
	if err := ReplaceBetween(path, "first", "c", "new", false, false, false); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "first\nnew\nc\nz\n" {
		Te.Errorf("ReplaceBetween: %q", got)
	}
	if err := ReplaceBetween(path, "first", "new", "", true, false, false); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "c\nz\n" {
		Te.Errorf("ReplaceBetween deleting keys: %q", got)
	}
	if err := DeleteUnder(path, "c", 1, 0, false); err != nil {
		Te.Fatal(err)
	}
	if got := readBack(Te, path); got != "c\n" {
		Te.Errorf("DeleteUnder: %q", got)
	}
	if err := Replace(path, "nothing", "X", 0, false); err == nil {
		Te.Error("expected an error for a missing key")
	}
}

func TestFromTemplate(Te *testing.T) {
	tmpl := writeSample(Te, "#SBATCH --job-name=JOBNAME\nrun INPUT > OUTPUT\n")
	out := filepath.Join(filepath.Dir(tmpl), "job.sh")
	err := FromTemplate(tmpl, out, map[string]string{"JOBNAME": "test", "INPUT": "scf.in", "OUTPUT": "scf.out"}, "#!/bin/bash")
	if err != nil {
		Te.Fatal(err)
	}
	want := "#!/bin/bash\n#SBATCH --job-name=test\nrun scf.in > scf.out\n"
	if got := readBack(Te, out); got != want {
		Te.Errorf("got %q want %q", got, want)
	}
}

func TestExtract(Te *testing.T) {
	n, err := Number("     etot_conv_thr = 1.0d-12", "etot_conv_thr")
	if err != nil || n != 1.0e-12 {
		Te.Errorf("wrong number %v %v", n, err)
	}
	n, err = Number("  celldm(1) = 10.0", "celldm(1)")
	if err != nil || n != 10 {
		Te.Errorf("wrong celldm %v %v", n, err)
	}
	if _, err := Number("no numbers here", ""); err == nil {
		Te.Error("expected an error")
	}
	s, err := String("  pseudo_dir = './pseudos/'", "pseudo_dir", "", true)
	if err != nil || s != "./pseudos/" {
		Te.Errorf("wrong string %q %v", s, err)
	}
	s, _ = String("Space group of crystal =  14: P21/c, ", "Space group of crystal", ",", true)
	if s != "14: P21/c" {
		Te.Errorf("wrong string with stop %q", s)
	}
	c, err := Column("  H   0.1  0.2  0.3", -1)
	if err != nil || c != 0.3 {
		Te.Errorf("wrong column %v %v", c, err)
	}
	coords := Coords("He4   1.0   -2.5   3e-1")
	if diff := cmp.Diff([]float64{1, -2.5, 0.3}, coords); diff != "" {
		Te.Errorf("coords (-want +got):\n%s", diff)
	}
	el, err := Element("  He4   4.0026   He.upf", 0)
	if err != nil || el != "He4" {
		Te.Errorf("wrong element %q %v", el, err)
	}
	el, err = Element("  Cl  1.0  1.0  1.0", 0)
	if err != nil || el != "Cl" {
		Te.Errorf("wrong element %q %v", el, err)
	}
}

func TestErrorDecoration(Te *testing.T) {
	path := writeSample(Te, sample)
	err := InsertUnder(path, "(", "text", 1, 0, true)
	e, ok := err.(Error)
	if !ok {
		Te.Fatalf("expected a txt error, got %v", err)
	}
	if d := e.Decorate(""); len(d) != 2 || d[0] != "regexp.Compile" || d[1] != "InsertUnder" {
		Te.Errorf("wrong decoration %v", d)
	}
	_, err = Lines(filepath.Join(Te.TempDir(), "missing.txt"), "key", 1, 0, false, false)
	var fe file.Error
	if !errors.As(err, &fe) {
		Te.Fatalf("the file error must be kept, got %v", err)
	}
	if d := fe.Decorate(""); len(d) != 2 || d[0] != "Open" || d[1] != "Read" {
		Te.Errorf("wrong file error decoration %v", d)
	}
	if got := err.Error(); len(got) < 7 || got[:7] != "Lines: " {
		Te.Errorf("the error must be wrapped with the caller name, got %q", got)
	}
}
