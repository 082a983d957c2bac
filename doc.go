/*
 * doc.go, part of goAton.
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

/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*
Package aton is the root package of goAton, the Ab-iniTiO & Neutron research toolbox.
The root package only holds the library version, the shared logger and the error
interface. The actual functionality lives in the sub-packages:

	phys      Physico-chemical constants, elements and isotopes.
	alias     Dictionaries to normalise user input (units, booleans, experiments...).
	file      File lookup, copy/move helpers and compressed JSON persistence.
	txt       Find, extract and edit text in files, by keyword or regular expression.
	call      Runs shell commands.
	api/qe    Quantum ESPRESSO input/output reading and editing.
	api/phonopy  Phonopy supercell generation from QE inputs.
	api/castep   CASTEP output and .cell readers.
	api/slurm    Slurm batch scripts from templates, sbatch and scancel.
	spx       Spectra loading, normalisation, fitting, deuteration estimation and plots.
	qrotor    Quantum hindered rotor (methyl and amine groups) solver.

goAton does not print. Reports are returned as values, and progress is logged through
a go.uber.org/zap logger, which is a no-op logger unless SetLogger is called:

	l, _ := zap.NewDevelopment()
	aton.SetLogger(l)
*/
package aton
