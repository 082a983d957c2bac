/*
 * read.go, part of goAton.
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

package qe

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/file"
	"github.com/rmera/goaton/txt"
	"go.uber.org/zap"
)

// ReadIn reads the namelist values and cards of the pw.x input in path.
func ReadIn(path string) (Values, error) {
	b, err := file.Read(path)
	if err != nil {
		return nil, errDecorate(err, "ReadIn")
	}
	lines := strings.Split(string(b), "\n")
	ret := make(Values)
	inNamelist := false
	for i := 0; i < len(lines); i++ {
		l := strings.TrimSpace(lines[i])
		if l == "" || strings.HasPrefix(l, "!") || strings.HasPrefix(l, "#") {
			continue
		}
		if strings.HasPrefix(l, "&") {
			inNamelist = true
			continue
		}
		if inNamelist {
			if l == "/" {
				inNamelist = false
				continue
			}
			for k, v := range assignments(l) {
				ret[k] = parseValue(v)
			}
			continue
		}
		c := isCard(l)
		if c == "" {
			continue
		}
		if c == "K_POINTS" {
			ret[c] = kpoints(lines[i:])
			continue
		}
		ret[c] = NormalizeCard(lines[i:])
	}
	return ret, nil
}

// kpoints returns the values under the K_POINTS header, or the header option
// (such as gamma) if there are none.
func kpoints(lines []string) string {
	f := strings.Fields(strings.NewReplacer("{", " ", "}", " ", "(", " ", ")", " ").Replace(lines[0]))
	for _, l := range lines[1:] {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "!") {
			continue
		}
		if isCard(l) != "" || strings.HasPrefix(l, "&") {
			break
		}
		return strings.Join(strings.Fields(l), " ")
	}
	if len(f) > 1 {
		return f[1]
	}
	return ""
}

// assignments splits a namelist line such as "nat = 3, ntyp = 2 ! comment" into its
// key = value pairs. Commas and exclamation marks between quotes are respected.
func assignments(l string) map[string]string {
	ret := make(map[string]string)
	var parts []string
	quote := rune(0)
	start := 0
	for i, r := range l {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			parts = append(parts, l[start:i])
			start = i + 1
		case r == '!':
			parts = append(parts, l[start:i])
			start = len(l)
		}
		if start == len(l) {
			break
		}
	}
	if start < len(l) {
		parts = append(parts, l[start:])
	}
	for _, p := range parts {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.ReplaceAll(strings.TrimSpace(kv[0]), " ", "")
		if k == "" {
			continue
		}
		ret[k] = strings.TrimSpace(kv[1])
	}
	return ret
}

// ReadOut reads the results of the pw.x output in path. The keys are:
// Energy (Ry), Volume (a.u.^3), Density (g/cm^3), Alat (bohr), ibrav,
// "BFGS converged", "BFGS failed", "Total force", "Total SCF correction",
// Runtime (the CPU time), Success (JOB DONE was printed) and, if the
// output contains final coordinates, CELL_PARAMETERS_out and
// ATOMIC_POSITIONS_out. Values that are not in the output are not set.
func ReadOut(path string) (Values, error) {
	b, err := file.Read(path)
	if err != nil {
		return nil, errDecorate(err, "ReadOut")
	}
	content := string(b)
	ret := make(Values)
	last := func(key string, regex bool) string {
		l, err := txt.Lines(path, key, -1, 0, false, regex)
		if err != nil || len(l) == 0 {
			return ""
		}
		return l[0]
	}
	number := func(name, key, after string, regex bool) {
		l := last(key, regex)
		if l == "" {
			return
		}
		if n, err := txt.Number(l, after); err == nil {
			ret[name] = n
		}
	}
	number("Energy", `(?m)^!\s+total energy`, "=", true)
	number("Volume", "unit-cell volume", "=", false)
	number("Density", `density\s*=.*g/cm`, "=", true)
	number("Total force", "Total force", "Total force", false)
	number("Total SCF correction", "Total SCF correction", "Total SCF correction", false)
	if l, err := txt.Lines(path, "lattice parameter (alat)", 1, 0, false, false); err == nil && len(l) > 0 {
		if n, err := txt.Number(l[0], "="); err == nil {
			ret["Alat"] = n
		}
	}
	if l := last("bravais-lattice index", false); l != "" {
		if n, err := txt.Number(l, "="); err == nil {
			ret["ibrav"] = int(n)
		}
	}
	if l := last(`PWSCF.*WALL`, true); l != "" {
		if s, err := txt.String(l, "PWSCF", "CPU", true); err == nil {
			ret["Runtime"] = s
		}
	}
	ret["BFGS converged"] = strings.Contains(content, "bfgs converged")
	ret["BFGS failed"] = strings.Contains(content, "bfgs failed") ||
		strings.Contains(content, "The maximum number of steps has been reached")
	ret["Success"] = strings.Contains(content, "JOB DONE")
	final, err := txt.Between(path, "Begin final coordinates", "End final coordinates", false, -1, false)
	if err == nil {
		lines := strings.Split(final, "\n")
		for i, l := range lines {
			switch isCard(l) {
			case "CELL_PARAMETERS":
				ret["CELL_PARAMETERS_out"] = NormalizeCard(lines[i:])
			case "ATOMIC_POSITIONS":
				ret["ATOMIC_POSITIONS_out"] = NormalizeCard(lines[i:])
			}
		}
	}
	return ret, nil
}

// ReadDir reads the input and output files of a calculation in folder. in and out
// are strings contained in the input and output file names, ".in" and ".out" if empty,
// and must match a single file each. The output values override the input ones.
// A missing output is not an error.
func ReadDir(folder, in, out string) (Values, error) {
	if in == "" {
		in = ".in"
	}
	if out == "" {
		out = ".out"
	}
	inpath, err := file.Get(folder, []string{in}, nil)
	if err != nil {
		return nil, errDecorate(err, "ReadDir")
	}
	ret, err := ReadIn(inpath)
	if err != nil {
		return nil, errDecorate(err, "ReadDir")
	}
	outpath, err := file.Get(folder, []string{out}, nil)
	if err != nil {
		aton.L().Warn("no output found", zap.String("folder", folder), zap.Error(err))
		return ret, nil
	}
	o, err := ReadOut(outpath)
	if err != nil {
		return nil, errDecorate(err, "ReadDir")
	}
	for k, v := range o {
		ret[k] = v
	}
	return ret, nil
}

// ReadDirs reads the calculations in every subfolder of dir whose name contains calc
// (all the subfolders if calc is empty), with ReadDir, and writes a CSV summary
// named calc.csv (results.csv if calc is empty) inside dir. Only the scalar values are
// written; cards are skipped. It returns the path of the CSV file.
func ReadDirs(dir, in, out, calc string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", Error{err.Error(), dir, []string{"os.ReadDir", "ReadDirs"}, true}
	}
	var rows []Values
	var names []string
	keys := make(map[string]bool)
	for _, e := range entries {
		if !e.IsDir() || !strings.Contains(e.Name(), calc) {
			continue
		}
		v, err := ReadDir(filepath.Join(dir, e.Name()), in, out)
		if err != nil {
			aton.L().Warn("skipping folder", zap.String("folder", e.Name()), zap.Error(err))
			continue
		}
		for k, val := range v {
			if _, ok := val.([]string); !ok {
				keys[k] = true
			}
		}
		rows = append(rows, v)
		names = append(names, e.Name())
	}
	if len(rows) == 0 {
		return "", Error{ErrNotFound + ": no calculations", dir, []string{"ReadDirs"}, true}
	}
	header := Values{}
	for k := range keys {
		header[k] = nil
	}
	columns := header.Keys()
	name := calc
	if name == "" {
		name = "results"
	}
	path := filepath.Join(dir, name+".csv")
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write(append([]string{"folder"}, columns...))
	for i, r := range rows {
		record := []string{names[i]}
		for _, c := range columns {
			record = append(record, csvValue(r[c]))
		}
		w.Write(record)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", Error{err.Error(), path, []string{"csv.Write", "ReadDirs"}, true}
	}
	if err := file.WriteAtomic(path, []byte(b.String())); err != nil {
		return "", errDecorate(err, "ReadDirs")
	}
	aton.L().Info("calculations summarized", zap.String("file", path), zap.Int("calculations", len(rows)))
	return path, nil
}

func csvValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return FormatValue(v)
}
