/*
 * values.go, part of goAton.
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

//Package qe reads and edits Quantum ESPRESSO pw.x input and output files.
//
//Input values are returned in a Values map. Namelist values are typed as
//int, float64, bool or, for anything else, a string that keeps its quotes,
//as in "'relax'", so they can be written back as they are. Cards are
//normalized (see NormalizeCard) and stored as a []string whose first element
//is the card header. K_POINTS is stored as a string with its values.
package qe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rmera/goaton/txt"
)

// Values holds the contents of input and output files, by key.
type Values map[string]any

// Float returns the value of key as a float64. Integer values are converted.
func (v Values) Float(key string) (float64, bool) {
	switch t := v[key].(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	}
	return 0, false
}

// Int returns the integer value of key.
func (v Values) Int(key string) (int, bool) {
	i, ok := v[key].(int)
	return i, ok
}

// Bool returns the boolean value of key.
func (v Values) Bool(key string) (bool, bool) {
	b, ok := v[key].(bool)
	return b, ok
}

// String returns the string value of key. Quotes are kept.
func (v Values) String(key string) (string, bool) {
	s, ok := v[key].(string)
	return s, ok
}

// Card returns the lines of a card, header included.
func (v Values) Card(key string) []string {
	c, _ := v[key].([]string)
	return c
}

// Keys returns the keys of v, sorted.
func (v Values) Keys() []string {
	ret := make([]string, 0, len(v))
	for k := range v {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Cards of pw.x inputs.
var Cards = []string{
	"ATOMIC_SPECIES",
	"ATOMIC_POSITIONS",
	"K_POINTS",
	"ADDITIONAL_K_POINTS",
	"CELL_PARAMETERS",
	"CONSTRAINTS",
	"OCCUPATIONS",
	"ATOMIC_VELOCITIES",
	"ATOMIC_FORCES",
	"SOLVENTS",
	"HUBBARD",
}

// Namelists of pw.x inputs, in the order in which they must appear.
var Namelists = []string{"CONTROL", "SYSTEM", "ELECTRONS", "IONS", "CELL", "FCP", "RISM"}

// NamelistKeys lists the keys of each namelist. Indexed keys, such as celldm(1),
// are listed without the index.
var NamelistKeys = map[string][]string{
	"CONTROL": {"calculation", "title", "verbosity", "restart_mode", "wf_collect", "nstep",
		"iprint", "tstress", "tprnfor", "dt", "outdir", "wfcdir", "prefix", "lkpoint_dir",
		"max_seconds", "etot_conv_thr", "forc_conv_thr", "disk_io", "pseudo_dir", "tefield",
		"dipfield", "lelfield", "nberrycyc", "lorbm", "lberry", "gdir", "nppstr", "gate",
		"twochem", "lfcp", "trism"},
	"SYSTEM": {"ibrav", "celldm", "A", "B", "C", "cosAB", "cosAC", "cosBC", "nat", "ntyp",
		"nbnd", "nbnd_cond", "tot_charge", "starting_charge", "tot_magnetization",
		"starting_magnetization", "ecutwfc", "ecutrho", "ecutfock", "nr1", "nr2", "nr3",
		"nr1s", "nr2s", "nr3s", "nosym", "nosym_evc", "noinv", "no_t_rev", "force_symmorphic",
		"use_all_frac", "occupations", "one_atom_occupations", "starting_spin_angle",
		"degauss_cond", "nelec_cond", "degauss", "smearing", "nspin", "sic_gamma", "pol_type",
		"sic_energy", "sci_vb", "sci_cb", "noncolin", "ecfixed", "qcutz", "q2sigma",
		"input_dft", "ace", "exx_fraction", "screening_parameter", "exxdiv_treatment",
		"x_gamma_extrapolation", "ecutvcut", "nqx1", "nqx2", "nqx3", "localization_thr",
		"Hubbard_occ", "Hubbard_alpha", "Hubbard_beta", "starting_ns_eigenvalue",
		"dmft", "dmft_prefix", "ensemble_energies", "edir", "emaxpos", "eopreg", "eamp",
		"angle1", "angle2", "lforcet", "constrained_magnetization", "fixed_magnetization",
		"lambda", "report", "lspinorb", "assume_isolated", "esm_bc", "esm_w", "esm_efield",
		"esm_nfit", "lgcscf", "gcscf_mu", "gcscf_conv_thr", "gcscf_beta", "vdw_corr",
		"london", "london_s6", "london_c6", "london_rvdw", "london_rcut", "dftd3_version",
		"dftd3_threebody", "ts_vdw_econv_thr", "ts_vdw_isolated", "xdm", "xdm_a1", "xdm_a2",
		"space_group", "uniqueb", "origin_choice", "rhombohedral", "zgate", "relaxz",
		"block", "block_1", "block_2", "block_height", "nextffield"},
	"ELECTRONS": {"electron_maxstep", "exx_maxstep", "scf_must_converge", "conv_thr",
		"adaptive_thr", "conv_thr_init", "conv_thr_multi", "mixing_mode", "mixing_beta",
		"mixing_ndim", "mixing_fixed_ns", "diagonalization", "diago_thr_init",
		"diago_cg_maxiter", "diago_ppcg_maxiter", "diago_david_ndim", "diago_rmm_ndim",
		"diago_rmm_conv", "diago_gs_nblock", "diago_full_acc", "efield", "efield_cart",
		"efield_phase", "startingpot", "startingwfc", "tqr", "real_space"},
	"IONS": {"ion_positions", "ion_velocities", "ion_dynamics", "pot_extrapolation",
		"wfc_extrapolation", "remove_rigid_rot", "ion_temperature", "tempw", "tolp",
		"delta_t", "nraise", "refold_pos", "upscale", "bfgs_ndim", "trust_radius_max",
		"trust_radius_min", "trust_radius_ini", "w_1", "w_2", "fire_alpha_init",
		"fire_falpha", "fire_nmin", "fire_f_inc", "fire_f_dec", "fire_dtmax"},
	"CELL": {"cell_dynamics", "press", "wmass", "cell_factor", "press_conv_thr", "cell_dofree"},
	"FCP":  {"fcp_mu", "fcp_dynamics", "fcp_conv_thr", "fcp_ndiis", "fcp_mass", "fcp_velocity", "fcp_temperature", "fcp_tempw", "fcp_tolp", "fcp_delta_t", "fcp_nraise", "freeze_all_atoms"},
	"RISM": {"nsolv", "closure", "tempv", "ecutsolv", "solute_lj", "solute_epsilon", "solute_sigma", "starting1d", "starting3d", "smear1d", "smear3d", "rism1d_maxstep", "rism3d_maxstep", "rism1d_conv_thr", "rism3d_conv_thr", "mdiis1d_size", "mdiis3d_size", "mdiis1d_step", "mdiis3d_step", "rism1d_bond_width", "rism1d_dielectric", "rism1d_molesize", "rism1d_nproc", "rism3d_conv_level", "rism3d_planar_average", "laue_nfit", "laue_expand_right", "laue_expand_left", "laue_starting_right", "laue_starting_left", "laue_buffer_right", "laue_buffer_left", "laue_both_hands", "laue_wall", "laue_wall_z", "laue_wall_rho", "laue_wall_epsilon", "laue_wall_sigma", "laue_wall_lj6"},
}

// NamelistOf returns the namelist that contains key, or an empty string
// if the key is unknown. The comparison is case-insensitive.
func NamelistOf(key string) string {
	base := key
	if i := strings.IndexByte(base, '('); i > 0 {
		base = base[:i]
	}
	base = strings.TrimSpace(base)
	for _, n := range Namelists {
		for _, k := range NamelistKeys[n] {
			if strings.EqualFold(k, base) {
				return n
			}
		}
	}
	return ""
}

// isCard returns the card name that the line starts, or an empty string.
// Namelist assignments, such as occupations = 'fixed', are never cards.
func isCard(line string) string {
	f := strings.Fields(line)
	if len(f) == 0 || strings.Contains(line, "=") {
		return ""
	}
	w := strings.ToUpper(f[0])
	if i := strings.IndexAny(w, "{("); i > 0 {
		w = w[:i]
	}
	for _, c := range Cards {
		if w == c {
			return c
		}
	}
	return ""
}

// FormatValue returns the text that represents v in a pw.x input.
// Strings are written as they are, so they must include their quotes
// if they need them.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return ".true."
		}
		return ".false."
	case int:
		return strconv.Itoa(t)
	case float64:
		return formatFloat(t)
	case float32:
		return formatFloat(float64(t))
	}
	return ""
}

//formatFloat writes the shortest representation of f that is read back as f,
//always with a decimal point or an exponent, so it is read as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// parseValue types a namelist value.
func parseValue(s string) any {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case ".true.", "true", ".t.":
		return true
	case ".false.", "false", ".f.":
		return false
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if strings.ContainsAny(s, "'\"") {
		return s
	}
	if f, err := txt.ParseFloat(s); err == nil {
		return f
	}
	return s
}
