/*
 * errors.go, part of goAton.
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

	aton "github.com/rmera/goaton"
)

//Errors

const (
	ErrNotFound   = "Value not found"
	ErrBadValue   = "Value could not be read"
	ErrBadKey     = "Unknown input key"
	ErrNoPosition = "Atom not found"
)

// Error is the general structure for errors in this package. It fulfills aton.FileError.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

var _ aton.FileError = Error{}

func (err Error) Error() string {
	if err.filename == "" {
		return "qe error: " + err.message
	}
	return fmt.Sprintf("qe: file %s error: %s", err.filename, err.message)
}

// Decorate returns the decoration of the error plus deco, if not empty.
// E itself is not changed, errDecorate returns the decorated copy.
func (E Error) Decorate(deco string) []string {
	if deco == "" {
		return E.deco
	}
	return append(E.deco[:len(E.deco):len(E.deco)], deco)
}

func (err Error) FileName() string { return err.filename }

func (err Error) Critical() bool { return err.critical }

//errDecorate returns a copy of err decorated with the caller's name if err is
//an Error of this package. Other errors, including the aton.Error of other
//packages, are wrapped.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = e.Decorate(caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
