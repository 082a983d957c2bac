/*
 * units.go, part of goAton.
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

//Package phys contains physico-chemical constants: unit conversion factors,
//fundamental constants, and the elements and isotopes data, as used in
//neutron science.
package phys

import (
	"fmt"
	"math"
)

//This provides useful conversion factors and other constants.
//Values from CODATA 2018 unless stated otherwise.

//Fundamental constants, SI units
const (
	H            = 6.62607015e-34    //Planck constant, J s
	Hbar         = H / (2 * math.Pi) //J s
	C            = 299792458.0       //speed of light, m/s
	KB           = 1.380649e-23      //Boltzmann constant, J/K
	NA           = 6.02214076e23     //Avogadro number
	E            = 1.602176634e-19   //elementary charge, C
	AMU          = 1.66053906660e-27
	ElectronMass = 9.1093837015e-31   //kg
	Bohr         = 0.529177210903e-10 //Bohr radius, m
)

//Energy conversions
const (
	EV2J       = E
	J2EV       = 1 / EV2J
	MeV2J      = EV2J / 1000
	J2MeV      = 1 / MeV2J
	EV2MeV     = 1000.0
	MeV2EV     = 1 / EV2MeV
	Ry2EV      = 13.605693122994
	EV2Ry      = 1 / Ry2EV
	Ry2MeV     = Ry2EV * 1000
	MeV2Ry     = 1 / Ry2MeV
	Ha2EV      = 2 * Ry2EV
	EV2Ha      = 1 / Ha2EV
	Ha2Ry      = 2.0
	Icm2MeV    = 0.12398419843320026 //cm^-1 (wavenumber) to meV
	MeV2Icm    = 1 / Icm2MeV
	Icm2EV     = Icm2MeV / 1000
	EV2Icm     = 1 / Icm2EV
	K2MeV      = 0.08617333262 //temperature to k_B*T
	MeV2K      = 1 / K2MeV
	Cal2J      = 4.184
	J2Cal      = 1 / Cal2J
	Kcal2J     = 4184.0
	J2Kcal     = 1 / Kcal2J
	KcalMol2EV = Kcal2J / NA * J2EV //kcal/mol to eV per particle
	EV2KcalMol = 1 / KcalMol2EV
	KJMol2EV   = 1000 / NA * J2EV
	EV2KJMol   = 1 / KJMol2EV
)

//Length, mass, pressure, angle and time conversions
const (
	A2M      = 1e-10
	M2A      = 1 / A2M
	Bohr2A   = Bohr * M2A
	A2Bohr   = 1 / Bohr2A
	Cm2M     = 1e-2
	M2Cm     = 1 / Cm2M
	AMU2Kg   = AMU
	Kg2AMU   = 1 / AMU2Kg
	GPa2Pa   = 1e9
	Pa2GPa   = 1 / GPa2Pa
	Bar2Pa   = 1e5
	Pa2Bar   = 1 / Bar2Pa
	KBar2Pa  = 1e8
	Pa2KBar  = 1 / KBar2Pa
	GPa2KBar = 10.0
	KBar2GPa = 1 / GPa2KBar
	Deg2Rad  = math.Pi / 180
	Rad2Deg  = 180 / math.Pi
	H2S      = 3600.0 //hours to seconds
	S2H      = 1 / H2S
)

//energyInEV holds the value of one unit of each supported energy unit, in eV.
//Keys are the canonical names used in the alias package.
var energyInEV = map[string]float64{
	"eV":       1,
	"meV":      MeV2EV,
	"J":        J2EV,
	"Ry":       Ry2EV,
	"Ha":       Ha2EV,
	"cm-1":     Icm2EV,
	"K":        K2MeV * MeV2EV,
	"kcal/mol": KcalMol2EV,
	"kJ/mol":   KJMol2EV,
}

//lengthInA is the same as energyInEV, for lengths in Angstrom.
var lengthInA = map[string]float64{
	"A":    1,
	"bohr": Bohr2A,
	"m":    M2A,
	"cm":   Cm2M * M2A,
}

// EnergyFactor returns the factor that converts energies given in the from unit
// to the to unit. Units must be given by their canonical names
// (see alias.Unit), for instance "meV" or "cm-1".
func EnergyFactor(from, to string) (float64, error) {
	return factor(energyInEV, from, to)
}

// LengthFactor returns the factor that converts lengths in the from unit to the
// to unit.
func LengthFactor(from, to string) (float64, error) {
	return factor(lengthInA, from, to)
}

// ConvertEnergy converts the given values, in place, from one energy unit to another.
// It returns the same slice.
func ConvertEnergy(values []float64, from, to string) ([]float64, error) {
	f, err := EnergyFactor(from, to)
	if err != nil {
		return nil, err
	}
	for i := range values {
		values[i] *= f
	}
	return values, nil
}

func factor(table map[string]float64, from, to string) (float64, error) {
	f, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("phys: unknown unit %q", from)
	}
	t, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("phys: unknown unit %q", to)
	}
	return f / t, nil
}
