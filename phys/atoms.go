/*
 * atoms.go, part of goAton.
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

// Isotope contains the data for a given isotope of an element.
type Isotope struct {
	A            int     //mass number
	Mass         float64 //in amu
	Abundance    float64 //natural abundance, fraction of 1
	CrossSection float64 //total bound neutron scattering cross section, in barns
}

// Element contains the data for a given chemical element, with the isotopes
// that are relevant for neutron science.
type Element struct {
	Z            int
	Symbol       string
	Name         string
	Mass         float64 //standard atomic weight, amu
	CrossSection float64 //total bound neutron scattering cross section, natural abundance, barns
	Isotope      map[int]*Isotope
}

//Standard atomic weights from IUPAC 2009.
//Neutron cross sections from V. F. Sears, Neutron News 3, 26-37 (1992).
//A cross section of 0 means that the value is not included in the table.

// Atoms maps element symbols to their data.
var Atoms = map[string]*Element{
	"H": {Z: 1, Symbol: "H", Name: "Hydrogen", Mass: 1.00794, CrossSection: 82.02, Isotope: map[int]*Isotope{
		1: {A: 1, Mass: 1.00782503207, Abundance: 0.999885, CrossSection: 82.03},
		2: {A: 2, Mass: 2.0141017778, Abundance: 0.000115, CrossSection: 7.64},
		3: {A: 3, Mass: 3.0160492777, Abundance: 0, CrossSection: 3.03},
	}},
	"He": {Z: 2, Symbol: "He", Name: "Helium", Mass: 4.002602, CrossSection: 1.34, Isotope: map[int]*Isotope{
		3: {A: 3, Mass: 3.0160293191, Abundance: 0.00000134, CrossSection: 5.99},
		4: {A: 4, Mass: 4.00260325415, Abundance: 0.99999866, CrossSection: 1.34},
	}},
	"Li": {Z: 3, Symbol: "Li", Name: "Lithium", Mass: 6.941, CrossSection: 1.37, Isotope: map[int]*Isotope{
		6: {A: 6, Mass: 6.015122795, Abundance: 0.0759, CrossSection: 0.97},
		7: {A: 7, Mass: 7.01600455, Abundance: 0.9241, CrossSection: 1.4},
	}},
	"Be": {Z: 4, Symbol: "Be", Name: "Beryllium", Mass: 9.012182, CrossSection: 7.63},
	"B": {Z: 5, Symbol: "B", Name: "Boron", Mass: 10.811, CrossSection: 5.24, Isotope: map[int]*Isotope{
		10: {A: 10, Mass: 10.0129370, Abundance: 0.199, CrossSection: 3.1},
		11: {A: 11, Mass: 11.0093054, Abundance: 0.801, CrossSection: 5.77},
	}},
	"C": {Z: 6, Symbol: "C", Name: "Carbon", Mass: 12.0107, CrossSection: 5.551, Isotope: map[int]*Isotope{
		12: {A: 12, Mass: 12.0, Abundance: 0.9893, CrossSection: 5.559},
		13: {A: 13, Mass: 13.0033548378, Abundance: 0.0107, CrossSection: 4.84},
	}},
	"N": {Z: 7, Symbol: "N", Name: "Nitrogen", Mass: 14.0067, CrossSection: 11.51, Isotope: map[int]*Isotope{
		14: {A: 14, Mass: 14.0030740048, Abundance: 0.99636, CrossSection: 11.53},
		15: {A: 15, Mass: 15.0001088982, Abundance: 0.00364, CrossSection: 5.21},
	}},
	"O": {Z: 8, Symbol: "O", Name: "Oxygen", Mass: 15.9994, CrossSection: 4.232, Isotope: map[int]*Isotope{
		16: {A: 16, Mass: 15.99491461956, Abundance: 0.99757, CrossSection: 4.232},
		17: {A: 17, Mass: 16.99913170, Abundance: 0.00038, CrossSection: 4.2},
		18: {A: 18, Mass: 17.9991610, Abundance: 0.00205, CrossSection: 4.29},
	}},
	"F":  {Z: 9, Symbol: "F", Name: "Fluorine", Mass: 18.9984032, CrossSection: 4.018},
	"Ne": {Z: 10, Symbol: "Ne", Name: "Neon", Mass: 20.1797, CrossSection: 2.628},
	"Na": {Z: 11, Symbol: "Na", Name: "Sodium", Mass: 22.98976928, CrossSection: 3.28},
	"Mg": {Z: 12, Symbol: "Mg", Name: "Magnesium", Mass: 24.3050, CrossSection: 3.71},
	"Al": {Z: 13, Symbol: "Al", Name: "Aluminium", Mass: 26.9815386, CrossSection: 1.503},
	"Si": {Z: 14, Symbol: "Si", Name: "Silicon", Mass: 28.0855, CrossSection: 2.167},
	"P":  {Z: 15, Symbol: "P", Name: "Phosphorus", Mass: 30.973762, CrossSection: 3.312},
	"S":  {Z: 16, Symbol: "S", Name: "Sulfur", Mass: 32.065, CrossSection: 1.026},
	"Cl": {Z: 17, Symbol: "Cl", Name: "Chlorine", Mass: 35.453, CrossSection: 16.8},
	"Ar": {Z: 18, Symbol: "Ar", Name: "Argon", Mass: 39.948, CrossSection: 0.683},
	"K":  {Z: 19, Symbol: "K", Name: "Potassium", Mass: 39.0983, CrossSection: 1.96},
	"Ca": {Z: 20, Symbol: "Ca", Name: "Calcium", Mass: 40.078, CrossSection: 2.83},
	"Sc": {Z: 21, Symbol: "Sc", Name: "Scandium", Mass: 44.955912, CrossSection: 23.5},
	"Ti": {Z: 22, Symbol: "Ti", Name: "Titanium", Mass: 47.867, CrossSection: 4.35},
	"V":  {Z: 23, Symbol: "V", Name: "Vanadium", Mass: 50.9415, CrossSection: 5.1},
	"Cr": {Z: 24, Symbol: "Cr", Name: "Chromium", Mass: 51.9961, CrossSection: 3.49},
	"Mn": {Z: 25, Symbol: "Mn", Name: "Manganese", Mass: 54.938045, CrossSection: 2.15},
	"Fe": {Z: 26, Symbol: "Fe", Name: "Iron", Mass: 55.845, CrossSection: 11.62},
	"Co": {Z: 27, Symbol: "Co", Name: "Cobalt", Mass: 58.933195, CrossSection: 5.6},
	"Ni": {Z: 28, Symbol: "Ni", Name: "Nickel", Mass: 58.6934, CrossSection: 18.5},
	"Cu": {Z: 29, Symbol: "Cu", Name: "Copper", Mass: 63.546, CrossSection: 8.03},
	"Zn": {Z: 30, Symbol: "Zn", Name: "Zinc", Mass: 65.38, CrossSection: 4.131},
	"Ga": {Z: 31, Symbol: "Ga", Name: "Gallium", Mass: 69.723, CrossSection: 6.83},
	"Ge": {Z: 32, Symbol: "Ge", Name: "Germanium", Mass: 72.64, CrossSection: 8.6},
	"As": {Z: 33, Symbol: "As", Name: "Arsenic", Mass: 74.92160, CrossSection: 5.5},
	"Se": {Z: 34, Symbol: "Se", Name: "Selenium", Mass: 78.96, CrossSection: 8.3},
	"Br": {Z: 35, Symbol: "Br", Name: "Bromine", Mass: 79.904, CrossSection: 5.9},
	"Kr": {Z: 36, Symbol: "Kr", Name: "Krypton", Mass: 83.798, CrossSection: 7.68},
	"Rb": {Z: 37, Symbol: "Rb", Name: "Rubidium", Mass: 85.4678, CrossSection: 6.8},
	"Sr": {Z: 38, Symbol: "Sr", Name: "Strontium", Mass: 87.62, CrossSection: 6.25},
	"Y":  {Z: 39, Symbol: "Y", Name: "Yttrium", Mass: 88.90585, CrossSection: 7.7},
	"Zr": {Z: 40, Symbol: "Zr", Name: "Zirconium", Mass: 91.224, CrossSection: 6.46},
	"Nb": {Z: 41, Symbol: "Nb", Name: "Niobium", Mass: 92.90638, CrossSection: 6.255},
	"Mo": {Z: 42, Symbol: "Mo", Name: "Molybdenum", Mass: 95.96, CrossSection: 5.71},
	"Ru": {Z: 44, Symbol: "Ru", Name: "Ruthenium", Mass: 101.07, CrossSection: 6.6},
	"Rh": {Z: 45, Symbol: "Rh", Name: "Rhodium", Mass: 102.90550, CrossSection: 4.6},
	"Pd": {Z: 46, Symbol: "Pd", Name: "Palladium", Mass: 106.42, CrossSection: 4.48},
	"Ag": {Z: 47, Symbol: "Ag", Name: "Silver", Mass: 107.8682, CrossSection: 4.99},
	"Cd": {Z: 48, Symbol: "Cd", Name: "Cadmium", Mass: 112.411, CrossSection: 6.5},
	"In": {Z: 49, Symbol: "In", Name: "Indium", Mass: 114.818, CrossSection: 2.62},
	"Sn": {Z: 50, Symbol: "Sn", Name: "Tin", Mass: 118.710, CrossSection: 4.892},
	"Sb": {Z: 51, Symbol: "Sb", Name: "Antimony", Mass: 121.760, CrossSection: 3.9},
	"Te": {Z: 52, Symbol: "Te", Name: "Tellurium", Mass: 127.60, CrossSection: 4.32},
	"I":  {Z: 53, Symbol: "I", Name: "Iodine", Mass: 126.90447, CrossSection: 3.81},
	"Xe": {Z: 54, Symbol: "Xe", Name: "Xenon", Mass: 131.293, CrossSection: 4.35},
	"Cs": {Z: 55, Symbol: "Cs", Name: "Caesium", Mass: 132.9054519, CrossSection: 3.9},
	"Ba": {Z: 56, Symbol: "Ba", Name: "Barium", Mass: 137.327, CrossSection: 3.38},
	"La": {Z: 57, Symbol: "La", Name: "Lanthanum", Mass: 138.90547, CrossSection: 9.66},
	"Ce": {Z: 58, Symbol: "Ce", Name: "Cerium", Mass: 140.116, CrossSection: 2.94},
	"Hf": {Z: 72, Symbol: "Hf", Name: "Hafnium", Mass: 178.49, CrossSection: 10.2},
	"Ta": {Z: 73, Symbol: "Ta", Name: "Tantalum", Mass: 180.94788, CrossSection: 6.01},
	"W":  {Z: 74, Symbol: "W", Name: "Tungsten", Mass: 183.84, CrossSection: 4.6},
	"Re": {Z: 75, Symbol: "Re", Name: "Rhenium", Mass: 186.207, CrossSection: 11.5},
	"Os": {Z: 76, Symbol: "Os", Name: "Osmium", Mass: 190.23, CrossSection: 14.7},
	"Ir": {Z: 77, Symbol: "Ir", Name: "Iridium", Mass: 192.217, CrossSection: 14},
	"Pt": {Z: 78, Symbol: "Pt", Name: "Platinum", Mass: 195.084, CrossSection: 11.71},
	"Au": {Z: 79, Symbol: "Au", Name: "Gold", Mass: 196.966569, CrossSection: 7.75},
	"Hg": {Z: 80, Symbol: "Hg", Name: "Mercury", Mass: 200.59, CrossSection: 26.8},
	"Tl": {Z: 81, Symbol: "Tl", Name: "Thallium", Mass: 204.3833, CrossSection: 9.89},
	"Pb": {Z: 82, Symbol: "Pb", Name: "Lead", Mass: 207.2, CrossSection: 11.118},
	"Bi": {Z: 83, Symbol: "Bi", Name: "Bismuth", Mass: 208.98040, CrossSection: 9.156},
	"Th": {Z: 90, Symbol: "Th", Name: "Thorium", Mass: 232.03806, CrossSection: 13.36},
	"U":  {Z: 92, Symbol: "U", Name: "Uranium", Mass: 238.02891, CrossSection: 8.908},
}
