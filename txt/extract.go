/*
 * extract.go, part of goAton.
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
	"regexp"
	"strconv"
	"strings"

	"github.com/rmera/goaton/phys"
)

//Fortran double precision exponents (1.0d-12) are accepted.
var numberRe = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eEdD][-+]?\d+)?`)

//A chemical symbol, optionally followed by a mass number (isotopes, as in He4).
var elementRe = regexp.MustCompile(`\b[A-Z][a-z]?\d*\b`)

// ParseFloat parses a number that may use a Fortran exponent ("1.0d-5").
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("d", "e", "D", "e").Replace(s)
	return strconv.ParseFloat(s, 64)
}

// after returns the text after the first occurrence of name,
// or the whole text if name is empty.
func after(text, name string) (string, bool) {
	if name == "" {
		return text, true
	}
	i := strings.Index(text, name)
	if i < 0 {
		return "", false
	}
	return text[i+len(name):], true
}

// Number returns the first number in text after name. If name is empty,
// the first number in text is returned.
func Number(text, name string) (float64, error) {
	t, ok := after(text, name)
	if !ok {
		return 0, Error{ErrNotFound + ": " + name, "", []string{"Number"}, false}
	}
	n := numberRe.FindString(t)
	if n == "" {
		return 0, Error{ErrBadValue + ": no number after " + name, "", []string{"Number"}, false}
	}
	f, err := ParseFloat(n)
	if err != nil {
		return 0, Error{err.Error(), "", []string{"Number"}, false}
	}
	return f, nil
}

// String returns the text after name, skipping an '=' or ':' sign if present, and
// until stop, if stop is not empty, or until the end of the line. If strip is true,
// the spaces and quotes around the value are removed.
func String(text, name, stop string, strip bool) (string, error) {
	t, ok := after(text, name)
	if !ok {
		return "", Error{ErrNotFound + ": " + name, "", []string{"String"}, false}
	}
	trimmed := strings.TrimLeft(t, " \t")
	if strings.HasPrefix(trimmed, "=") || strings.HasPrefix(trimmed, ":") {
		t = trimmed[1:]
	}
	if stop != "" {
		if i := strings.Index(t, stop); i >= 0 {
			t = t[:i]
		}
	}
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[:i]
	}
	if strip {
		t = strings.TrimSpace(t)
		t = strings.Trim(t, `'"`)
		t = strings.TrimSpace(t)
	}
	return t, nil
}

// Column returns the number in the given column (0-based) of text, where columns
// are separated by spaces. Negative columns count from the end.
func Column(text string, column int) (float64, error) {
	fields := strings.Fields(text)
	if column < 0 {
		column += len(fields)
	}
	if column < 0 || column >= len(fields) {
		return 0, Error{ErrNotFound + ": column " + strconv.Itoa(column), "", []string{"Column"}, false}
	}
	f, err := ParseFloat(fields[column])
	if err != nil {
		return 0, Error{ErrBadValue + ": " + fields[column], "", []string{"Column"}, false}
	}
	return f, nil
}

// Coords returns all the numbers in text, such as the coordinates in the line of
// an atom, "C  0.1 0.2 0.3". Mass numbers glued to element symbols (He4) are not
// taken as numbers.
func Coords(text string) []float64 {
	ret := make([]float64, 0, 3)
	for _, v := range strings.Fields(text) {
		for _, n := range numberRe.FindAllStringIndex(v, -1) {
			//skip digits that belong to a word, such as He4 or celldm(1)
			if n[0] > 0 && isLetter(v[n[0]-1]) {
				continue
			}
			f, err := ParseFloat(v[n[0]:n[1]])
			if err == nil {
				ret = append(ret, f)
			}
		}
	}
	return ret
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '('
}

// Element returns the index-th (0-based) chemical element or isotope symbol in text,
// for instance "He4" or "C". Only symbols present in phys.Atoms are returned.
func Element(text string, index int) (string, error) {
	n := 0
	for _, v := range elementRe.FindAllString(text, -1) {
		if _, _, err := phys.SplitIsotope(v); err != nil {
			continue
		}
		if n == index {
			return v, nil
		}
		n++
	}
	return "", Error{ErrNotFound + ": element " + strconv.Itoa(index), "", []string{"Element"}, false}
}
