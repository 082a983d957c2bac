/*
 * spectra.go, part of goAton.
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

//Package spx contains spectral analysis tools: loading of INS, ATR and Raman
//spectra, plateau and peak fitting, normalization, deuteration estimation
//and plotting.
//
//	ins, err := spx.NewSpectra("INS", []string{"h.csv", "d.csv"}, "cm-1", "meV")
//	mean, std, err := spx.Plateau(ins, [2]float64{33, 36}, 0)
package spx

import (
	"bufio"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/alias"
	"github.com/rmera/goaton/file"
	"github.com/rmera/goaton/phys"
	"github.com/rmera/goaton/txt"
	"go.uber.org/zap"
)

// Dataset is one spectrum, sorted by increasing X.
type Dataset struct {
	Name string
	X    []float64
	Y    []float64
	YErr []float64 //nil if the spectrum has no errors
}

// Len returns the number of points in the dataset.
func (d *Dataset) Len() int { return len(d.X) }

// Less and Swap make Dataset a sort.Interface, ordered by X.
func (d *Dataset) Less(i, j int) bool { return d.X[i] < d.X[j] }

func (d *Dataset) Swap(i, j int) {
	d.X[i], d.X[j] = d.X[j], d.X[i]
	d.Y[i], d.Y[j] = d.Y[j], d.Y[i]
	if d.YErr != nil {
		d.YErr[i], d.YErr[j] = d.YErr[j], d.YErr[i]
	}
}

// Copy returns a deep copy of the dataset.
func (d *Dataset) Copy() *Dataset {
	r := &Dataset{Name: d.Name}
	r.X = append([]float64(nil), d.X...)
	r.Y = append([]float64(nil), d.Y...)
	if d.YErr != nil {
		r.YErr = append([]float64(nil), d.YErr...)
	}
	return r
}

// window returns the indexes of the first point with X >= xmin and
// one past the last point with X <= xmax.
func (d *Dataset) window(xmin, xmax float64) (int, int) {
	i := sort.SearchFloat64s(d.X, xmin)
	j := sort.Search(len(d.X), func(k int) bool { return d.X[k] > xmax })
	if j < i {
		j = i
	}
	return i, j
}

// Plotting options.
type Plotting struct {
	Title          string
	XLim, YLim     [2]float64 //equal values mean automatic limits
	Margins        [2]float64 //fraction of the y range added below and above the data
	Offset         bool       //stack the datasets vertically
	Scaling        float64    //factor applied to the offset between datasets, 1 if zero
	Normalize      string     //"height" or "area" normalize with the Scaling options before plotting
	XLabel, YLabel string     //default labels are built from the units and the type of spectra
	Legend         []string
	LogXScale      bool
	LogYScale      bool
	HideYTicks     bool
	Width, Height  float64 //in cm, 16x10 if zero
}

// Scaling options, used when normalizing the spectra.
type Scaling struct {
	XMin, XMax float64 //range used to normalize, the whole spectra if equal
	Index      int     //reference dataset
}

// Spectra is a set of spectra of the same type, in the same units.
type Spectra struct {
	Type     string //canonical experiment name, see alias.Experiments
	Comment  string
	Files    []string
	Data     []*Dataset
	Units    string //canonical unit of the X axis, see alias.Units
	Plotting Plotting
	Scaling  Scaling
}

// defaultUnits returns the usual X units for each experiment.
func defaultUnits(experiment string) string {
	switch experiment {
	case "atr", "raman":
		return "cm-1"
	default:
		return "meV"
	}
}

// NewSpectra loads the given files as spectra of the experiment typ (see
// alias.Experiments). The X values are read in unitsIn units and converted
// to units. If units is empty, meV is used for neutron scattering and cm-1
// for optical spectra. If unitsIn is empty, it is taken to be equal to units.
func NewSpectra(typ string, files []string, unitsIn, units string) (*Spectra, error) {
	exp, ok := alias.Experiment(typ)
	if !ok {
		return nil, fmt.Errorf("spx: unknown type of spectra %q", typ)
	}
	if units == "" {
		units = defaultUnits(exp)
	}
	if unitsIn == "" {
		unitsIn = units
	}
	s := &Spectra{Type: exp, Files: files}
	for _, f := range files {
		d, err := Load(f)
		if err != nil {
			return nil, err
		}
		s.Data = append(s.Data, d)
	}
	s.Units = unitsIn
	if err := s.SetUnits(units, unitsIn); err != nil {
		return nil, err
	}
	aton.L().Debug("spectra loaded", zap.String("type", exp), zap.Strings("files", files), zap.String("units", s.Units))
	return s, nil
}

func isSeparator(r rune) bool {
	return r == ',' || r == ';' || r == ' ' || r == '\t'
}

// Load reads a spectrum from a file with two or three columns (x, y and
// optionally the y error) separated by commas, semicolons or blanks.
// Lines that do not start with a number, such as headers and comments,
// are skipped. Compressed files are read transparently.
func Load(path string) (*Dataset, error) {
	r, err := file.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spx: %w", err)
	}
	defer r.Close()
	d := &Dataset{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	witherr := true
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.FieldsFunc(scanner.Text(), isSeparator)
		if len(fields) < 2 {
			continue
		}
		x, err := txt.ParseFloat(fields[0])
		if err != nil {
			continue
		}
		y, err := txt.ParseFloat(fields[1])
		if err != nil {
			return nil, fmt.Errorf("spx: %s: bad value %q", path, fields[1])
		}
		d.X = append(d.X, x)
		d.Y = append(d.Y, y)
		e := math.NaN()
		if len(fields) > 2 {
			e, err = txt.ParseFloat(fields[2])
		}
		if err != nil || math.IsNaN(e) {
			witherr = false
		}
		d.YErr = append(d.YErr, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spx: %s: %w", path, err)
	}
	if len(d.X) == 0 {
		return nil, fmt.Errorf("spx: %s: no data", path)
	}
	if !witherr {
		d.YErr = nil
	}
	sort.Stable(d)
	return d, nil
}

// SetUnits converts the X values of all datasets from the from units to the to
// units. If from is empty, the current units of the spectra are used.
func (s *Spectra) SetUnits(to, from string) error {
	if from == "" {
		from = s.Units
	}
	cto, ok := alias.Unit(to)
	if !ok {
		return fmt.Errorf("spx: unknown unit %q", to)
	}
	cfrom, ok := alias.Unit(from)
	if !ok {
		return fmt.Errorf("spx: unknown unit %q", from)
	}
	if cto == cfrom {
		s.Units = cto
		return nil
	}
	f, err := phys.EnergyFactor(cfrom, cto)
	if err != nil {
		return fmt.Errorf("spx: %w", err)
	}
	for _, d := range s.Data {
		for i := range d.X {
			d.X[i] *= f
		}
	}
	s.Units = cto
	return nil
}

// Copy returns a deep copy of the spectra.
func (s *Spectra) Copy() *Spectra {
	r := *s
	r.Files = append([]string(nil), s.Files...)
	r.Plotting.Legend = append([]string(nil), s.Plotting.Legend...)
	r.Data = make([]*Dataset, len(s.Data))
	for i, d := range s.Data {
		r.Data[i] = d.Copy()
	}
	return &r
}

// dataset returns the dataset with index idx.
func (s *Spectra) dataset(idx int) (*Dataset, error) {
	if idx < 0 || idx >= len(s.Data) {
		return nil, fmt.Errorf("spx: no dataset with index %d, there are %d", idx, len(s.Data))
	}
	return s.Data[idx], nil
}

// Sample returns the name of the dataset idx: its legend if there is one,
// or its file name otherwise.
func (s *Spectra) Sample(idx int) string {
	if idx >= 0 && idx < len(s.Plotting.Legend) {
		return s.Plotting.Legend[idx]
	}
	if idx >= 0 && idx < len(s.Files) {
		return s.Files[idx]
	}
	if idx >= 0 && idx < len(s.Data) {
		return s.Data[idx].Name
	}
	return ""
}
