/*
 * aton.go, part of goAton.
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

import (
	"sync"

	"go.uber.org/zap"
)

// Version of the library.
const Version = "0.3.0"

var (
	logmu  sync.RWMutex
	logger = zap.NewNop()
)

// SetLogger sets the logger used by all goAton packages. A nil logger
// silences the library again.
func SetLogger(l *zap.Logger) {
	logmu.Lock()
	defer logmu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the current library logger. It never returns nil.
func L() *zap.Logger {
	logmu.RLock()
	defer logmu.RUnlock()
	return logger
}
