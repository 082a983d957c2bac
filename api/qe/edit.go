/*
 * edit.go, part of goAton.
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
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/file"
	"github.com/rmera/goaton/phys"
	"github.com/rmera/goaton/txt"
	"go.uber.org/zap"
)

func keyRegex(key string) string {
	return `(?i)^\s*` + regexp.QuoteMeta(key) + `\s*=`
}

// SetValue sets key to value in the pw.x input in path. key can be a namelist
// key or a card. Namelist values are formatted with FormatValue, so strings must
// carry their quotes, as in "'scf'". Cards take a []string with their lines (the
// header may be omitted if the card is already present in the file), or a string
// with the values of K_POINTS. An empty string or nil removes the key.
// New keys are added to their namelist. Setting A removes celldm(1) and the other way
// around, and setting ATOMIC_POSITIONS updates nat.
func SetValue(path, key string, value any) error {
	if c := isCard(key); c != "" && strings.EqualFold(c, key) {
		if err := setCard(path, c, value); err != nil {
			return errDecorate(err, "SetValue")
		}
		if lines, ok := value.([]string); ok && c == "ATOMIC_POSITIONS" {
			nat := 0
			for _, n := range CountElements(NormalizeCard(cardWithHeader(c, lines))) {
				nat += n
			}
			return SetValue(path, "nat", nat)
		}
		return nil
	}
	if s, ok := value.(string); value == nil || (ok && s == "") {
		return removeKey(path, key)
	}
	namelist := NamelistOf(key)
	if namelist == "" {
		return Error{ErrBadKey + ": " + key, path, []string{"SetValue"}, true}
	}
	line := "  " + key + " = " + FormatValue(value)
	content, err := file.Read(path)
	if err != nil {
		return errDecorate(err, "SetValue")
	}
	re := regexp.MustCompile(`(?m)` + keyRegex(key))
	if re.Match(content) {
		err = txt.ReplaceLine(path, keyRegex(key), line, 1, 0, 0, true)
	} else {
		err = insertKey(path, string(content), namelist, line)
	}
	if err != nil {
		return errDecorate(err, "SetValue")
	}
	aton.L().Debug("value set", zap.String("file", path), zap.String("key", key), zap.String("value", FormatValue(value)))
	switch strings.ToLower(key) {
	case "a":
		return removeKey(path, "celldm(1)")
	case "celldm(1)":
		return removeKey(path, "A")
	}
	return nil
}

func removeKey(path, key string) error {
	if c := isCard(key); c != "" && strings.EqualFold(c, key) {
		return setCard(path, c, nil)
	}
	content, err := file.Read(path)
	if err != nil {
		return errDecorate(err, "removeKey")
	}
	if !regexp.MustCompile(`(?m)` + keyRegex(key)).Match(content) {
		return nil
	}
	return txt.ReplaceLine(path, keyRegex(key), "", 0, 0, 0, true)
}

// insertKey adds the line under the header of namelist, creating the namelist,
// in its place, if needed.
func insertKey(path, content, namelist, line string) error {
	header := `(?i)^\s*&` + namelist + `\b`
	if regexp.MustCompile(`(?m)` + header).MatchString(content) {
		return txt.InsertUnder(path, header, line, 1, 0, true)
	}
	order := 0
	for i, n := range Namelists {
		if n == namelist {
			order = i
		}
	}
	lines := strings.Split(content, "\n")
	position := len(lines)
	inside := false
	for i, l := range lines {
		l = strings.TrimSpace(l)
		if inside {
			inside = l != "/"
			continue
		}
		if isCard(l) != "" {
			position = i
			break
		}
		if !strings.HasPrefix(l, "&") {
			continue
		}
		inside = true
		f := strings.Fields(l[1:])
		if len(f) == 0 {
			continue
		}
		name := strings.ToUpper(f[0])
		for j, n := range Namelists {
			if n == name && j > order {
				position = i
			}
		}
		if position != len(lines) {
			break
		}
	}
	block := "&" + namelist + "\n" + line + "\n/"
	return txt.InsertAt(path, block, position)
}

func cardWithHeader(card string, lines []string) []string {
	if len(lines) > 0 && isCard(lines[0]) == card {
		return lines
	}
	return append([]string{card}, lines...)
}

// setCard replaces a card in the file in path, or appends it if absent.
// A nil value deletes it.
func setCard(path, card string, value any) error {
	b, err := file.Read(path)
	if err != nil {
		return err
	}
	lines := strings.Split(string(b), "\n")
	start, end := -1, len(lines)
	for i, l := range lines {
		if start < 0 {
			if isCard(l) == card {
				start = i
			}
			continue
		}
		t := strings.TrimSpace(l)
		if isCard(t) != "" || strings.HasPrefix(t, "&") {
			end = i
			break
		}
	}
	//trailing blank lines are not part of the card
	for start >= 0 && end > start+1 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	var newcard []string
	switch v := value.(type) {
	case nil:
	case string:
		if v == "" {
			break
		}
		header := card
		if card == "K_POINTS" {
			header = "K_POINTS automatic"
		}
		if start >= 0 {
			header = strings.TrimSpace(lines[start])
		}
		newcard = []string{header, "  " + v}
	case []string:
		if len(v) > 0 && isCard(v[0]) != card {
			if start < 0 {
				return Error{ErrNotFound + ": header for " + card, path, []string{"setCard"}, true}
			}
			v = append([]string{lines[start]}, v...)
		}
		newcard = NormalizeCard(v)
	default:
		return Error{fmt.Sprintf("%s: %T for card %s", ErrBadValue, value, card), path, []string{"setCard"}, true}
	}
	var result []string
	if start < 0 {
		if len(newcard) == 0 {
			return nil
		}
		result = lines
		for len(result) > 0 && strings.TrimSpace(result[len(result)-1]) == "" {
			result = result[:len(result)-1]
		}
		result = append(result, newcard...)
		result = append(result, "")
	} else {
		result = append(result, lines[:start]...)
		result = append(result, newcard...)
		result = append(result, lines[end:]...)
	}
	if err := file.WriteAtomic(path, []byte(strings.Join(result, "\n"))); err != nil {
		return err
	}
	aton.L().Debug("card set", zap.String("file", path), zap.String("card", card))
	return nil
}

// AddAtom adds an atom to the ATOMIC_POSITIONS card of the pw.x input in path.
// position is a row such as "O  0.0  0.0  0.0". nat is updated. If the element
// is new, it is added to ATOMIC_SPECIES, with the mass from phys and a
// pseudopotential named Element.upf, and ntyp is updated.
func AddAtom(path, position string) error {
	v, err := ReadIn(path)
	if err != nil {
		return errDecorate(err, "AddAtom")
	}
	f := strings.Fields(position)
	if len(f) < 4 {
		return Error{ErrBadValue + ": position " + position, path, []string{"AddAtom"}, true}
	}
	element := f[0]
	positions := v.Card("ATOMIC_POSITIONS")
	if len(positions) == 0 {
		positions = []string{"ATOMIC_POSITIONS crystal"}
	}
	positions = append(positions, position)
	if err := SetValue(path, "ATOMIC_POSITIONS", positions); err != nil {
		return errDecorate(err, "AddAtom")
	}
	species := v.Card("ATOMIC_SPECIES")
	if len(species) == 0 {
		species = []string{"ATOMIC_SPECIES"}
	}
	for _, l := range species[1:] {
		if s := strings.Fields(l); len(s) > 0 && s[0] == element {
			aton.L().Debug("atom added", zap.String("file", path), zap.String("position", position))
			return nil
		}
	}
	mass, _, err := phys.IsotopeData(element)
	if err != nil {
		return errDecorate(err, "AddAtom")
	}
	species = append(species, fmt.Sprintf("%s   %s   %s.upf", element, formatFloat(mass), element))
	if err := SetValue(path, "ATOMIC_SPECIES", species); err != nil {
		return errDecorate(err, "AddAtom")
	}
	if err := SetValue(path, "ntyp", len(species)-1); err != nil {
		return errDecorate(err, "AddAtom")
	}
	aton.L().Debug("atom added", zap.String("file", path), zap.String("position", position), zap.Bool("new species", true))
	return nil
}

// GetAtom returns the row of the ATOMIC_POSITIONS card in the pw.x input in path
// whose coordinates are equal to coords after rounding both to precision decimals.
func GetAtom(path string, coords [3]float64, precision int) (string, error) {
	v, err := ReadIn(path)
	if err != nil {
		return "", errDecorate(err, "GetAtom")
	}
	p := math.Pow(10, float64(precision))
	round := func(f float64) float64 { return math.Round(f*p) / p }
	for _, l := range v.Card("ATOMIC_POSITIONS") {
		if isCard(l) != "" {
			continue
		}
		c := txt.Coords(l)
		if len(c) < 3 {
			continue
		}
		if round(c[0]) == round(coords[0]) && round(c[1]) == round(coords[1]) && round(c[2]) == round(coords[2]) {
			return l, nil
		}
	}
	return "", Error{fmt.Sprintf("%s: %v", ErrNoPosition, coords), path, []string{"GetAtom"}, false}
}

// ScfFromRelax creates an scf.in input in folder from the relaxation input and
// output (relax.in and relax.out if empty). The final cell and positions of the
// relaxation are used with ibrav = 0 and celldm(1) = alat.
func ScfFromRelax(folder, relaxIn, relaxOut string) error {
	if relaxIn == "" {
		relaxIn = "relax.in"
	}
	if relaxOut == "" {
		relaxOut = "relax.out"
	}
	out, err := ReadOut(filepath.Join(folder, relaxOut))
	if err != nil {
		return errDecorate(err, "ScfFromRelax")
	}
	alat, ok := out.Float("Alat")
	cell := out.Card("CELL_PARAMETERS_out")
	positions := out.Card("ATOMIC_POSITIONS_out")
	if !ok || len(cell) == 0 || len(positions) == 0 {
		return Error{ErrNotFound + ": final coordinates", filepath.Join(folder, relaxOut), []string{"ScfFromRelax"}, true}
	}
	scf := filepath.Join(folder, "scf.in")
	if err := file.Copy(filepath.Join(folder, relaxIn), scf); err != nil {
		return errDecorate(err, "ScfFromRelax")
	}
	cell = append([]string{"CELL_PARAMETERS alat"}, cell[1:]...)
	set := []struct {
		key   string
		value any
	}{
		{"calculation", "'scf'"},
		{"celldm(1)", alat},
		{"ibrav", 0},
		{"CELL_PARAMETERS", cell},
		{"ATOMIC_POSITIONS", positions},
	}
	for _, s := range set {
		if err := SetValue(scf, s.key, s.value); err != nil {
			return errDecorate(err, "ScfFromRelax")
		}
	}
	aton.L().Info("scf input created", zap.String("file", scf), zap.Float64("alat", alat))
	return nil
}
