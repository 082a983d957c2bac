/*
 * card.go, part of goAton.
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
	"strings"

	"github.com/rmera/goaton/txt"
)

// NormalizeCard returns the lines of a card in a uniform format, so cards
// from different files can be compared. The header loses its braces and
// parentheses, and its numbers are rewritten in their shortest form, so
// "CELL_PARAMETERS (alat= 10.0000)" becomes "CELL_PARAMETERS alat= 10.0".
// Coordinates are written with 15 decimals. Blank and commented lines are
// skipped, and the card ends at the next card or namelist.
// The lines can also be given as a single string with newlines.
func NormalizeCard(lines []string) []string {
	if len(lines) == 1 && strings.Contains(lines[0], "\n") {
		lines = strings.Split(lines[0], "\n")
	}
	ret := make([]string, 0, len(lines))
	card := ""
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasPrefix(l, "!") || strings.HasPrefix(l, "#") {
			continue
		}
		if c := isCard(l); c != "" {
			if card != "" {
				break
			}
			card = c
			ret = append(ret, normalizeHeader(l))
			continue
		}
		if card == "" {
			continue
		}
		if strings.HasPrefix(l, "&") || strings.HasPrefix(l, "/") || strings.HasPrefix(strings.ToLower(l), "end") {
			break
		}
		ret = append(ret, normalizeRow(card, l))
	}
	return ret
}

func normalizeHeader(l string) string {
	l = strings.NewReplacer("{", " ", "}", " ", "(", " ", ")", " ").Replace(l)
	f := strings.Fields(l)
	f[0] = strings.ToUpper(f[0])
	for i, v := range f[1:] {
		if n, err := txt.ParseFloat(v); err == nil && !strings.ContainsAny(v, "dD") {
			f[i+1] = formatFloat(n)
		}
	}
	return strings.Join(f, " ")
}

func normalizeRow(card, l string) string {
	f := strings.Fields(l)
	switch card {
	case "CELL_PARAMETERS":
		return "  " + strings.Join(fixed(f, 0), "   ")
	case "ATOMIC_POSITIONS":
		if len(f) < 4 {
			break
		}
		row := append([]string{f[0]}, fixed(f[1:4], 0)...)
		row = append(row, f[4:]...) //if_pos flags
		return "  " + strings.Join(row, "   ")
	case "ATOMIC_SPECIES":
		if len(f) < 3 {
			break
		}
		if m, err := txt.ParseFloat(f[1]); err == nil {
			f[1] = formatFloat(m)
		}
		return "  " + strings.Join(f, "   ")
	}
	return "  " + strings.Join(f, " ")
}

//fixed formats the numbers in f starting from the index from with 15 decimals.
//Fields that are not numbers are kept.
func fixed(f []string, from int) []string {
	ret := make([]string, len(f))
	copy(ret, f)
	for i := from; i < len(f); i++ {
		n, err := txt.ParseFloat(f[i])
		if err != nil {
			continue
		}
		ret[i] = fmt.Sprintf("%.15f", n)
	}
	return ret
}

// CountElements returns the number of atoms of each element in the rows of
// an ATOMIC_POSITIONS card. The header, if present, is ignored.
func CountElements(positions []string) map[string]int {
	ret := make(map[string]int)
	for _, l := range positions {
		if isCard(l) != "" {
			continue
		}
		f := strings.Fields(l)
		if len(f) < 4 {
			continue
		}
		ret[f[0]]++
	}
	return ret
}
