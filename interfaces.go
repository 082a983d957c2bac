/*
 * interfaces.go, part of goAton.
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

package aton

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to retrieve and extend the info of the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate returns the decoration of the error (the names of the functions in the calling stack, plus, optionally,
	//some information in the form "FunctionName: Extra info") with the given string appended.
	//An empty string only returns it. Errors are values, so the receiver is not changed.
	Decorate(string) []string

	//Critical is false for errors that leave the data in a usable state (for instance, a missing optional value).
	Critical() bool
}

// FileError is an Error that happened while reading or writing a given file.
type FileError interface {
	Error
	FileName() string
}
