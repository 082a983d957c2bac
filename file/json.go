/*
 * json.go, part of goAton.
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

package file

import (
	"encoding/json"

	aton "github.com/rmera/goaton"
	"go.uber.org/zap"
)

// Save encodes v as JSON into path. The file is compressed if path ends
// in .zst or .gz, which is a good idea for large data sets, such as
// eigenvectors.
func Save(v any, path string) error {
	b, err := json.Marshal(v)
	if err != nil {
		return Error{err.Error(), path, []string{"json.Marshal", "Save"}, true}
	}
	if err := WriteAtomic(path, b); err != nil {
		return errDecorate(err, "Save")
	}
	aton.L().Info("saved data", zap.String("file", path), zap.Int("bytes", len(b)))
	return nil
}

// Load decodes the JSON content of path, previously written with Save, into v.
func Load(path string, v any) error {
	b, err := Read(path)
	if err != nil {
		return errDecorate(err, "Load")
	}
	if err := json.Unmarshal(b, v); err != nil {
		return Error{err.Error(), path, []string{"json.Unmarshal", "Load"}, true}
	}
	return nil
}
