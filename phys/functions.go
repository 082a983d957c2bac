/*
 * functions.go, part of goAton.
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

package phys

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

//Common isotope names that don't follow the Symbol+A convention.
var isotopeNicknames = map[string]string{
	"D": "H2",
	"T": "H3",
}

// AllowedIsotopes returns the mass numbers of the isotopes available for
// the element with the given symbol, in increasing order.
func AllowedIsotopes(symbol string) ([]int, error) {
	el, ok := Atoms[symbol]
	if !ok {
		return nil, fmt.Errorf("phys: unknown element %q", symbol)
	}
	ret := make([]int, 0, len(el.Isotope))
	for a := range el.Isotope {
		ret = append(ret, a)
	}
	sort.Ints(ret)
	return ret, nil
}

// SplitIsotope splits an isotope name such as "He4" or "H2" into its
// element symbol and mass number. "D" and "T" are understood as H2 and H3.
// An element name without mass number returns 0 as mass number.
// It returns an error if the element is not in the Atoms table, or if the
// isotope is not available for that element.
func SplitIsotope(name string) (string, int, error) {
	name = strings.TrimSpace(name)
	if n, ok := isotopeNicknames[name]; ok {
		name = n
	}
	i := strings.IndexFunc(name, unicode.IsDigit)
	if i < 0 {
		if _, ok := Atoms[name]; !ok {
			return "", 0, fmt.Errorf("phys: unknown element %q", name)
		}
		return name, 0, nil
	}
	symbol := name[:i]
	a, err := strconv.Atoi(name[i:])
	if err != nil {
		return "", 0, fmt.Errorf("phys: can't read the mass number of %q: %w", name, err)
	}
	el, ok := Atoms[symbol]
	if !ok {
		return "", 0, fmt.Errorf("phys: unknown element %q", symbol)
	}
	if _, ok := el.Isotope[a]; !ok {
		return "", 0, fmt.Errorf("phys: isotope %d not available for %s", a, symbol)
	}
	return symbol, a, nil
}

// IsotopeData returns the mass (amu) and the total bound neutron cross section
// (barns) of an element, for names such as "C", or of an isotope, for
// names such as "H2" or "D".
func IsotopeData(name string) (mass, crossSection float64, err error) {
	symbol, a, err := SplitIsotope(name)
	if err != nil {
		return 0, 0, err
	}
	el := Atoms[symbol]
	if a == 0 {
		return el.Mass, el.CrossSection, nil
	}
	iso := el.Isotope[a]
	return iso.Mass, iso.CrossSection, nil
}
