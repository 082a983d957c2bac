/*
 * call.go, part of goAton.
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

//Package call runs shell commands and moves the working directory around.
package call

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	aton "github.com/rmera/goaton"
	"go.uber.org/zap"
)

// Bash runs command with "sh -c" in the folder cwd (the current one if cwd is empty)
// and returns its combined standard output and error. If verbose is true, the output is
// also logged at info level. The command is killed if ctx is cancelled.
func Bash(ctx context.Context, command, cwd string, verbose bool) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if cwd != "" {
		cmd.Dir = cwd
	}
	aton.L().Debug("running command", zap.String("command", command), zap.String("cwd", cwd))
	out, err := cmd.CombinedOutput()
	ret := strings.TrimRight(string(out), "\n")
	if verbose {
		aton.L().Info("command output", zap.String("command", command), zap.String("output", ret))
	}
	if err != nil {
		return ret, fmt.Errorf("call: %q failed: %w", command, err)
	}
	return ret, nil
}

// Here changes the working directory to the folder of the source file that calls it,
// which allows scripts to work with relative paths regardless of where they are
// launched from. It returns the new working directory.
func Here() (string, error) {
	_, f, _, ok := runtime.Caller(1)
	if !ok {
		return "", fmt.Errorf("call: can't determine the caller's file")
	}
	dir := filepath.Dir(f)
	if err := os.Chdir(dir); err != nil {
		return "", fmt.Errorf("call: %w", err)
	}
	return dir, nil
}
