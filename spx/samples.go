/*
 * samples.go, part of goAton.
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

package spx

//Common samples. Each call returns a new Material, so it can be modified freely.

// MAPbI3 is CH3NH3PbI3.
func MAPbI3() *Material {
	return &Material{Name: "MAPbI3", Elements: map[string]float64{"Pb": 1, "I": 3, "C": 1, "N": 1, "H": 6}}
}

// MAPbI3ND is CH3ND3PbI3.
func MAPbI3ND() *Material {
	return &Material{Name: "MAPbI3-ND", Elements: map[string]float64{"Pb": 1, "I": 3, "C": 1, "N": 1, "H": 3, "H2": 3}}
}

// MAPbI3CD is CD3NH3PbI3.
func MAPbI3CD() *Material {
	return &Material{Name: "MAPbI3-CD", Elements: map[string]float64{"Pb": 1, "I": 3, "C": 1, "N": 1, "H": 3, "H2": 3}}
}

// MAPbI3CDND is CD3ND3PbI3.
func MAPbI3CDND() *Material {
	return &Material{Name: "MAPbI3-CDND", Elements: map[string]float64{"Pb": 1, "I": 3, "C": 1, "N": 1, "H2": 6}}
}

// MAI is CH3NH3I.
func MAI() *Material {
	return &Material{Name: "MAI", Elements: map[string]float64{"I": 1, "C": 1, "N": 1, "H": 6}}
}

// MACl is CH3NH3Cl.
func MACl() *Material {
	return &Material{Name: "MACl", Elements: map[string]float64{"Cl": 1, "C": 1, "N": 1, "H": 6}}
}
