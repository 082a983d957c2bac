/*
 * slurm.go, part of goAton.
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

package slurm

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/call"
	"github.com/rmera/goaton/file"
	"go.uber.org/zap"
)

// Options for Sbatch.
type Options struct {
	Folder   string    //where the input files are, and the scripts are written
	Include  []string  //strings that the input file names must contain
	Exclude  []string  //strings that the input file names must not contain
	Template *Template //if nil, the template from DefaultConfig is used
	Config   Config    //available to the template as {{.Config}}
	Prefix   string    //prepended to the job names
	OutExt   string    //extension of the output files, ".out" by default
	Retries  int       //extra sbatch attempts for each job
	Testing  bool      //write the scripts but don't submit them
}

// Submission is a batch script written, and maybe submitted, by Sbatch.
type Submission struct {
	Input  string
	Script string
	JobID  int //0 if the job was not submitted
}

func (o *Options) setDefaults() error {
	if o.Folder == "" {
		o.Folder = "."
	}
	if len(o.Include) == 0 {
		o.Include = []string{".in"}
	}
	if o.OutExt == "" {
		o.OutExt = ".out"
	}
	if o.Config.Command == "" {
		o.Config = DefaultConfig()
	}
	if o.Template == nil {
		t, err := o.Config.Template()
		if err != nil {
			return err
		}
		o.Template = t
	}
	return nil
}

// Sbatch writes a batch script for each input file in the folder of the options,
// and submits it, unless Testing is set. Scripts are named after the input,
// with the .slurm extension. It returns the submissions done before the
// first error, if any.
func Sbatch(ctx context.Context, o Options) ([]Submission, error) {
	if err := o.setDefaults(); err != nil {
		return nil, errDecorate(err, "Sbatch")
	}
	inputs, err := file.List(o.Folder, o.Include, append(o.Exclude, ".slurm"), false)
	if err != nil {
		return nil, errDecorate(err, "Sbatch")
	}
	ret := make([]Submission, 0, len(inputs))
	for _, in := range inputs {
		base := strings.TrimSuffix(in, filepath.Ext(in))
		job := Job{Name: o.Prefix + base, Input: in, Output: base + o.OutExt, Config: o.Config}
		text, err := o.Template.Render(job)
		if err != nil {
			return ret, errDecorate(err, "Sbatch")
		}
		script := filepath.Join(o.Folder, o.Prefix+base+".slurm")
		if err := file.WriteAtomic(script, []byte(text)); err != nil {
			return ret, errDecorate(err, "Sbatch")
		}
		if err := os.Chmod(script, 0o755); err != nil {
			return ret, Error{err.Error(), script, []string{"os.Chmod", "Sbatch"}, false}
		}
		s := Submission{Input: filepath.Join(o.Folder, in), Script: script}
		if o.Testing {
			aton.L().Info("batch script written", zap.String("script", script))
			ret = append(ret, s)
			continue
		}
		s.JobID, err = submit(ctx, o.Folder, filepath.Base(script), o.Retries)
		if err != nil {
			return ret, errDecorate(err, "Sbatch")
		}
		aton.L().Info("job submitted", zap.String("script", script), zap.Int("id", s.JobID))
		ret = append(ret, s)
	}
	return ret, nil
}

func submit(ctx context.Context, folder, script string, retries int) (int, error) {
	var out string
	var err error
	for i := 0; i <= retries; i++ {
		out, err = call.Bash(ctx, "sbatch "+script, folder, false)
		if err == nil {
			return ParseJobID(out)
		}
		aton.L().Warn("sbatch failed", zap.String("script", script), zap.Int("attempt", i+1), zap.Error(err))
		select {
		case <-ctx.Done():
			return 0, Error{ErrSubmission + ": " + ctx.Err().Error(), script, []string{"submit"}, true}
		case <-time.After(time.Second):
		}
	}
	return 0, Error{ErrSubmission + ": " + err.Error() + ": " + out, script, []string{"submit"}, true}
}

// ParseJobID returns the job ID in the output of sbatch, "Submitted batch job 1234".
func ParseJobID(out string) (int, error) {
	f := strings.Fields(out)
	for i := len(f) - 1; i >= 0; i-- {
		if id, err := strconv.Atoi(f[i]); err == nil {
			return id, nil
		}
	}
	return 0, Error{ErrNoJobID + ": " + out, "", []string{"ParseJobID"}, true}
}

// Scancel cancels the given jobs.
func Scancel(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, strconv.Itoa(id))
	}
	if _, err := call.Bash(ctx, "scancel "+strings.Join(s, " "), "", false); err != nil {
		return Error{err.Error(), "", []string{"Scancel"}, true}
	}
	aton.L().Info("jobs cancelled", zap.Ints("ids", ids))
	return nil
}
