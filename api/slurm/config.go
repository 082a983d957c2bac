/*
 * config.go, part of goAton.
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

//Package slurm writes Slurm batch scripts from a template and submits them with sbatch.
//
//A template is any text with the JOBNAME, INPUT and OUTPUT placeholders, which
//are replaced for each job. Templates are also run through text/template with
//the Job as data, so {{.Name}}, {{.Input}}, {{.Output}} and the fields of
//{{.Config}} can be used too.
package slurm

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/rmera/goaton/file"
	"gopkg.in/yaml.v3"
)

// Placeholders that must be present in every template.
const (
	JobName = "JOBNAME"
	Input   = "INPUT"
	Output  = "OUTPUT"
)

// Config holds the resources and commands of a job. It can be read from a YAML file.
type Config struct {
	Partition string   `yaml:"partition"`
	Nodes     int      `yaml:"nodes"`
	Tasks     int      `yaml:"ntasks"`
	CPUs      int      `yaml:"cpus_per_task"`
	Memory    string   `yaml:"mem"`
	Time      string   `yaml:"time"`
	Modules   []string `yaml:"modules"`
	Extra     []string `yaml:"extra"` //additional #SBATCH options, such as "--exclusive"
	Command   string   `yaml:"command"`
}

// DefaultConfig returns the configuration for a Quantum ESPRESSO pw.x run on one node.
func DefaultConfig() Config {
	return Config{
		Nodes:   1,
		Tasks:   32,
		CPUs:    1,
		Time:    "1-00:00:00",
		Modules: []string{"QuantumESPRESSO"},
		Command: "srun pw.x -inp INPUT > OUTPUT",
	}
}

// LoadConfig reads a YAML configuration from path. Fields missing in the file keep
// the values from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	b, err := file.Read(path)
	if err != nil {
		return c, errDecorate(err, "LoadConfig")
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, Error{err.Error(), path, []string{"yaml.Unmarshal", "LoadConfig"}, true}
	}
	return c, nil
}

// MakeHead returns the shebang and #SBATCH lines for c.
func (c Config) MakeHead() []string {
	head := []string{"#!/bin/bash"}
	add := func(option, value string) {
		if value != "" && value != "0" {
			head = append(head, fmt.Sprintf("#SBATCH --%s=%s", option, value))
		}
	}
	add("job-name", JobName)
	add("output", "slurm-%j.out")
	add("partition", c.Partition)
	add("nodes", fmt.Sprint(c.Nodes))
	add("ntasks", fmt.Sprint(c.Tasks))
	add("cpus-per-task", fmt.Sprint(c.CPUs))
	add("mem", c.Memory)
	add("time", c.Time)
	for _, e := range c.Extra {
		head = append(head, "#SBATCH "+e)
	}
	return head
}

// MakeBody returns the module loads and the command.
func (c Config) MakeBody() []string {
	body := []string{"", "module purge"}
	for _, m := range c.Modules {
		body = append(body, "module load "+m)
	}
	body = append(body, "", c.Command)
	return body
}

// Make returns all the lines of the template for c.
func (c Config) Make() []string {
	return append(c.MakeHead(), c.MakeBody()...)
}

// Template is a parsed batch script template.
type Template struct {
	text string
	tmpl *template.Template
}

// Job is the data a template is rendered with.
type Job struct {
	Name   string
	Input  string
	Output string
	Config Config
}

// NewTemplate parses text as a template. It fails if a placeholder is missing
// (see CheckTemplate).
func NewTemplate(text string) (*Template, error) {
	if err := CheckTemplate(text); err != nil {
		return nil, errDecorate(err, "NewTemplate")
	}
	t, err := template.New("slurm").Parse(text)
	if err != nil {
		return nil, Error{err.Error(), "", []string{"template.Parse", "NewTemplate"}, true}
	}
	return &Template{text: text, tmpl: t}, nil
}

// LoadTemplate reads and parses the template in path.
func LoadTemplate(path string) (*Template, error) {
	b, err := file.Read(path)
	if err != nil {
		return nil, errDecorate(err, "LoadTemplate")
	}
	t, err := NewTemplate(string(b))
	if err != nil {
		if e, ok := err.(Error); ok {
			e.filename = path
			return nil, e
		}
		return nil, err
	}
	return t, nil
}

// Template returns the template built from c.
func (c Config) Template() (*Template, error) {
	return NewTemplate(strings.Join(c.Make(), "\n") + "\n")
}

// CheckTemplate returns an error if text lacks any of the JOBNAME, INPUT and
// OUTPUT placeholders, either literal or as {{.Name}}, {{.Input}} and {{.Output}}.
func CheckTemplate(text string) error {
	var missing []string
	for _, p := range [][2]string{{JobName, ".Name"}, {Input, ".Input"}, {Output, ".Output"}} {
		if !strings.Contains(text, p[0]) && !strings.Contains(text, p[1]) {
			missing = append(missing, p[0])
		}
	}
	if len(missing) > 0 {
		return Error{ErrNoPlaceholder + ": " + strings.Join(missing, ", "), "", []string{"CheckTemplate"}, true}
	}
	return nil
}

// Render returns the script for job.
func (t *Template) Render(job Job) (string, error) {
	var b bytes.Buffer
	if err := t.tmpl.Execute(&b, job); err != nil {
		return "", Error{err.Error(), "", []string{"template.Execute", "Render"}, true}
	}
	r := strings.NewReplacer(JobName, job.Name, Input, job.Input, Output, job.Output)
	return r.Replace(b.String()), nil
}

// Text returns the unrendered template.
func (t *Template) Text() string {
	return t.text
}
