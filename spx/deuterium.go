/*
 * deuterium.go, part of goAton.
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

package spx

import (
	"fmt"
	"math"
	"strings"

	aton "github.com/rmera/goaton"
	"github.com/rmera/goaton/alias"
	"go.uber.org/zap"
)

// DefaultThreshold is the energy, in meV, where the deep inelastic plateau
// starts, for ImpulseApprox.
const DefaultThreshold = 600.0

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ImpulseResult is the deuteration estimated with the impulse approximation.
type ImpulseResult struct {
	PlateauH, PlateauHError float64 //plateaus divided by the mols of each sample
	PlateauD, PlateauDError float64
	Ratio, RatioError       float64 //plateau D / plateau H
	IdealRatio              float64 //cross section D / cross section H
	Deuteration             float64 //rounded to 2 decimals
	DeuterationError        float64
}

func (r *ImpulseResult) String() string {
	return fmt.Sprintf(`Normalized plateau H:      %g +- %g
Normalized plateau D:      %g +- %g
Ratio D/H plateaus:        %g +- %g
Ratio D/H cross sections:  %g
Deuteration: %.2f +- %.2f`, r.PlateauH, r.PlateauHError, r.PlateauD, r.PlateauDError,
		r.Ratio, r.RatioError, r.IdealRatio, r.Deuteration, r.DeuterationError)
}

// ImpulseApprox estimates the deuteration of a sample from the INS spectra of
// the protonated (dataset hIdx) and deuterated (dataset dIdx) materials, with the
// Impulse Approximation (Andreani et al., Advances in Physics 66, 1-73, 2017).
// The plateaus of both spectra above threshold (meV), divided by the mols of each
// sample, should have the same ratio as the cross sections of the materials. The
// deuteration is (1 - ratio) / (1 - ideal ratio).
// Materials without mass are taken to weight 1 g. ins is not modified.
func ImpulseApprox(ins *Spectra, h, d Material, threshold float64, hIdx, dIdx int) (*ImpulseResult, error) {
	for _, m := range []*Material{&h, &d} {
		if m.Grams == 0 {
			m.Grams = 1
		}
		if err := m.Set(); err != nil {
			return nil, err
		}
		aton.L().Info("material", zap.Stringer("material", m))
	}
	if u, _ := alias.Unit(ins.Units); u != "meV" {
		ins = ins.Copy()
		if err := ins.SetUnits("meV", ""); err != nil {
			return nil, err
		}
	}
	cuts := [2]float64{threshold, math.Inf(1)}
	ph, phErr, err := Plateau(ins, cuts, hIdx)
	if err != nil {
		return nil, err
	}
	pd, pdErr, err := Plateau(ins, cuts, dIdx)
	if err != nil {
		return nil, err
	}
	r := new(ImpulseResult)
	r.PlateauH = ph / h.Mols
	r.PlateauHError = math.Abs(r.PlateauH) * math.Hypot(phErr/ph, h.MolsError/h.Mols)
	r.PlateauD = pd / d.Mols
	r.PlateauDError = math.Abs(r.PlateauD) * math.Hypot(pdErr/pd, d.MolsError/d.Mols)
	r.Ratio = r.PlateauD / r.PlateauH
	r.IdealRatio = d.CrossSection / h.CrossSection
	r.RatioError = math.Abs(r.Ratio) * math.Hypot(r.PlateauHError/r.PlateauH, r.PlateauDError/r.PlateauD)
	deut := (1 - r.Ratio) / (1 - r.IdealRatio)
	deutErr := math.Abs(deut * r.RatioError / r.Ratio)
	r.Deuteration, r.DeuterationError = round2(deut), round2(deutErr)
	aton.L().Info("impulse approximation", zap.Float64("deuteration", r.Deuteration), zap.Float64("error", r.DeuterationError),
		zap.Float64("ratio", r.Ratio), zap.Float64("ideal ratio", r.IdealRatio))
	return r, nil
}

// PeakNames are the keys of the INS disrotatory peaks of the CH3NH3 isotopologues
// used by PeaksMAPbI3, from fully protonated (h6d0) to fully deuterated (h0d6).
var PeakNames = []string{"h6d0", "h5d1", "h4d2", "h3d3", "h2d4", "h1d5", "h0d6"}

var (
	peakDivisors    = []float64{6, 5, 4, 3, 2, 1, 1}
	partialLabels   = []string{"HHH", "DHH", "DDH", "DDD"}
	totalLabels     = []string{"HHH-HHH", "DHH-HHH", "DDH-HHH", "DDD-HHH", "DDD-DHH", "DDD-DDH", "DDD-DDD"}
	aminePartial    = []float64{0, 1.0 / 3, 2.0 / 3, 1}
	aminePartialInv = []float64{1, 2.0 / 3, 1.0 / 3, 0}
)

// MAPbI3Peaks contains the limits of each disrotatory peak, by name (see PeakNames),
// and the baseline to subtract from all of them.
type MAPbI3Peaks struct {
	Baseline      float64
	BaselineError float64
	Limits        map[string][2]float64
}

// PeakRatio is the fraction of one isotopologue.
type PeakRatio struct {
	Name   string
	Label  string
	Limits [2]float64
	Ratio  float64
	Error  float64
}

// MAPbI3Result is the deuteration of a CH3NH3PbI3 sample estimated from its
// disrotatory peaks. The total values are only calculated if the peaks of the
// deuterated methyl isotopologues (h2d4, h1d5, h0d6) were given.
type MAPbI3Result struct {
	Sample                         string
	Baseline, BaselineError        float64
	Total                          bool
	Peaks                          []PeakRatio
	AmineDeuteration, AmineError   float64
	AmineProtonation, AmineProtErr float64
	Deuteration, DeuterationError  float64
	Protonation, ProtonationError  float64
}

// Short returns the amine deuteration and, for total deuteration, the total
// deuteration, with their errors.
func (r *MAPbI3Result) Short() string {
	s := fmt.Sprintf("%.2f +- %.2f", r.AmineDeuteration, r.AmineError)
	if r.Total {
		s += fmt.Sprintf(" / %.2f +- %.2f", r.Deuteration, r.DeuterationError)
	}
	return s
}

func (r *MAPbI3Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sample:  %s\nCorrected baseline: %.2f +- %.2f\n", r.Sample, r.Baseline, r.BaselineError)
	for _, p := range r.Peaks {
		fmt.Fprintf(&b, "%s %v:  %.2f  +-  %.2f\n", p.Label, p.Limits, p.Ratio, p.Error)
	}
	if r.Total {
		fmt.Fprintf(&b, "Total deuteration:  %.2f  +-  %.2f\n", r.Deuteration, r.DeuterationError)
		fmt.Fprintf(&b, "Total protonation:  %.2f  +-  %.2f\n", r.Protonation, r.ProtonationError)
	}
	fmt.Fprintf(&b, "Amine deuteration:  %.2f  +-  %.2f\n", r.AmineDeuteration, r.AmineError)
	fmt.Fprintf(&b, "Amine protonation:  %.2f  +-  %.2f", r.AmineProtonation, r.AmineProtErr)
	return b.String()
}

// weighted returns the sum of the ratios times the weights, and its error.
func weighted(p []PeakRatio, w []float64) (float64, float64) {
	var v, sq float64
	for i := range w {
		v += w[i] * p[i].Ratio
		e := w[i] * p[i].Error
		sq += e * e
	}
	return v, math.Sqrt(sq)
}

// PeaksMAPbI3 estimates the deuteration of CH3NH3PbI3 from the areas of the INS
// disrotatory peaks of dataset idx, about 38 meV in the protonated sample.
// The peaks h6d0, h5d1, h4d2 and h3d3 are required, and give the amine
// deuteration of a sample with a protonated methyl group. If h2d4, h1d5 and h0d6
// are also given, the total deuteration is estimated too. The area of each peak
// is divided by its number of equivalent configurations, and its ratio to the
// sum of all areas gives the fraction of that isotopologue. A peak absent
// from the sample should be given as a small range of baseline.
func PeaksMAPbI3(ins *Spectra, peaks MAPbI3Peaks, idx int) (*MAPbI3Result, error) {
	n := 0
	for i, name := range PeakNames {
		if _, ok := peaks.Limits[name]; !ok {
			if i < 4 {
				return nil, fmt.Errorf("spx: missing peak %s, the peaks h6d0, h5d1, h4d2 and h3d3 are required", name)
			}
			break
		}
		n++
	}
	total := n == len(PeakNames)
	if !total {
		n = 4
	}
	r := &MAPbI3Result{Sample: ins.Sample(idx), Baseline: peaks.Baseline, BaselineError: peaks.BaselineError, Total: total}
	areas := make([]float64, n)
	errs := make([]float64, n)
	var sum, sumsq float64
	for i := 0; i < n; i++ {
		lim := peaks.Limits[PeakNames[i]]
		a, e, err := AreaUnderPeak(ins, Peak{lim[0], lim[1], peaks.Baseline, peaks.BaselineError}, idx, true, false)
		if err != nil {
			return nil, fmt.Errorf("spx: peak %s: %w", PeakNames[i], err)
		}
		areas[i], errs[i] = a/peakDivisors[i], e/peakDivisors[i]
		sum += areas[i]
		sumsq += errs[i] * errs[i]
	}
	sumErr := math.Sqrt(sumsq)
	labels := partialLabels
	if total {
		labels = totalLabels
	}
	for i := 0; i < n; i++ {
		ratio, e, err := RatioAreas(areas[i], sum, errs[i], sumErr, false)
		if err != nil {
			return nil, fmt.Errorf("spx: peak %s: %w", PeakNames[i], err)
		}
		r.Peaks = append(r.Peaks, PeakRatio{PeakNames[i], labels[i], peaks.Limits[PeakNames[i]], ratio, e})
	}
	if !total {
		r.AmineDeuteration, r.AmineError = weighted(r.Peaks, aminePartial)
		r.AmineProtonation, r.AmineProtErr = weighted(r.Peaks, aminePartialInv)
	} else {
		deut := make([]float64, 7)
		prot := make([]float64, 7)
		for k := range deut {
			deut[k] = float64(k) / 6
			prot[k] = float64(6-k) / 6
		}
		r.Deuteration, r.DeuterationError = weighted(r.Peaks, deut)
		r.Protonation, r.ProtonationError = weighted(r.Peaks, prot)
		r.AmineDeuteration, r.AmineError = weighted(r.Peaks[3:], aminePartial)
		r.AmineProtonation, r.AmineProtErr = weighted(r.Peaks[3:], aminePartialInv)
	}
	aton.L().Info("MAPbI3 deuteration", zap.String("sample", r.Sample), zap.String("deuteration", r.Short()))
	return r, nil
}
