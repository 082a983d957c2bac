/*
 * alias.go, part of goAton.
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

//Package alias contains common dictionaries to normalise and correct user inputs.
//All aliases are compared in lowercase, so "Electronvolts" matches the "eV" unit.
//
//	unit, ok := alias.Unit("Electronvolts") // "eV", true
package alias

import (
	"fmt"
	"strings"
)

// Table maps a canonical name to its accepted aliases.
type Table map[string][]string

// Units with their aliases.
var Units = Table{
	"mol":      {"mol", "mols", "mole", "moles"},
	"g":        {"g", "gram", "grams"},
	"kg":       {"kg", "kilogram", "kilograms"},
	"amu":      {"amu", "atomicmassunit", "atomicmassunits"},
	"eV":       {"ev", "electronvolt", "electronvolts"},
	"meV":      {"mev", "millielectronvolt", "millielectronvolts"},
	"J":        {"j", "joule", "joules"},
	"cal":      {"cal", "calorie", "calories"},
	"kcal":     {"kcal", "kilocalorie", "kilocalories"},
	"kcal/mol": {"kcal/mol", "kcalmol", "kcal mol-1", "kcal/mole"},
	"kJ/mol":   {"kj/mol", "kjmol", "kj mol-1", "kj/mole"},
	"Ry":       {"ry", "rydberg", "rydbergs"},
	"Ha":       {"ha", "hartree", "hartrees"},
	"cm-1":     {"cm^{-1}", "cm1", "cm-1", "cm^-1", "wavenumber", "wavenumbers"},
	"cm":       {"cm", "centimeter", "centimeters"},
	"A":        {"a", "aa", "angstrom", "angstroms", "armstrong", "armstrongs"},
	"bohr":     {"bohr", "bohrs", "bohrradii"},
	"m":        {"m", "meter", "meters"},
	"deg":      {"deg", "degree", "degrees"},
	"rad":      {"rad", "radian", "radians"},
	"bar":      {"bar", "bars"},
	"kbar":     {"kbar", "kilobar", "kilobars"},
	"Pa":       {"pa", "pascal", "pascals"},
	"GPa":      {"gpa", "gigapascal", "gigapascals"},
	"s":        {"s", "second", "seconds"},
	"H":        {"h", "hour", "hours"},
	"K":        {"k", "kelvin", "kelvins"},
}

// Spatial parameters. Note that "h" is both height and horizontal.
var Spatial = Table{
	"height": {"height", "h"},
	"area":   {"area", "a"},
	"volume": {"volume", "vol"},
	"x":      {"x", "horizontal", "h"},
	"y":      {"y", "vertical", "v"},
	"z":      {"z"},
}

// Chemical groups.
var Chemical = Table{
	"CH3": {"ch", "ch3", "methyl"},
	"NH3": {"nh", "nh3", "amine"},
	"CD3": {"cd", "cd3", "deuterated methyl"},
	"ND3": {"nd", "nd3", "deuterated amine"},
}

// Experiments available in the spx package.
var Experiments = Table{
	"ins":   {"ins", "inelasticneutronscattering", "inelastic neutron scattering"},
	"atr":   {"atr", "ftir", "attenuatedtotalreflection", "attenuated total reflection"},
	"raman": {"raman"},
	"qens":  {"qens", "quasielasticneutronscattering", "quasielastic neutron scattering", "quasi elastic neutron scattering"},
}

// Files contains strings related to files.
var Files = Table{
	"file":  {"file", "files", "f", "filepath", "file path", "filename", "file name"},
	"dir":   {"dir", "directory", "d", "folder"},
	"error": {"error", "errors", "e", "err"},
}

// Bool contains the strings understood as booleans.
var Bool = map[bool][]string{
	true:  {"yes", "y", "t", "true", ".true.", "si", "s", "1"},
	false: {"no", "n", "f", "false", ".false.", "0"},
}

// Lookup returns the canonical name in table for the alias s, and true, or
// an empty string and false if s is not a known alias. Canonical names are
// accepted as their own aliases. Map iteration order is irrelevant, except
// for aliases that are shared by several keys (see Spatial), for which the
// lexicographically first key is returned.
func Lookup(table Table, s string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(s))
	found := ""
	for key, aliases := range table {
		if strings.ToLower(key) != low && !isInString(aliases, low) {
			continue
		}
		if found == "" || key < found {
			found = key
		}
	}
	return found, found != ""
}

// Unit returns the canonical name of the unit s.
func Unit(s string) (string, bool) {
	//Exact canonical names first, since "meV" and "MeV" or "H" and "h" would be ambiguous otherwise.
	if _, ok := Units[strings.TrimSpace(s)]; ok {
		return strings.TrimSpace(s), true
	}
	return Lookup(Units, s)
}

// Experiment returns the canonical name of the experiment s.
func Experiment(s string) (string, bool) {
	return Lookup(Experiments, s)
}

// ChemicalGroup returns the canonical name of the chemical group s.
func ChemicalGroup(s string) (string, bool) {
	return Lookup(Chemical, s)
}

// ParseBool parses the string s as a boolean, using the aliases in Bool.
func ParseBool(s string) (bool, error) {
	low := strings.ToLower(strings.TrimSpace(s))
	for val, aliases := range Bool {
		if isInString(aliases, low) {
			return val, nil
		}
	}
	return false, fmt.Errorf("alias: %q is not a boolean", s)
}

//Same as the previous, but with strings.
func isInString(container []string, test string) bool {
	if container == nil {
		return false
	}
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
