/*
 * spx_test.go, part of goAton.
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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSpectrum writes a spectrum file with x from 0 to xmax in steps of 0.25.
func writeSpectrum(t *testing.T, name string, xmax float64, y func(x float64) float64, witherr bool) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("# a comment\nx,y,err\n")
	for i := 0; float64(i)*0.25 <= xmax; i++ {
		x := float64(i) * 0.25
		if witherr {
			fmt.Fprintf(&b, "%g,%g,%g\n", x, y(x), 0.1)
		} else {
			fmt.Fprintf(&b, "%g %g\n", x, y(x))
		}
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func constant(c float64) func(float64) float64 {
	return func(float64) float64 { return c }
}

func TestLoad(t *testing.T) {
	d, err := Load(writeSpectrum(t, "a.csv", 10, func(x float64) float64 { return 2 * x }, true))
	require.NoError(t, err)
	assert.Equal(t, "a", d.Name)
	assert.Len(t, d.X, 41)
	assert.Equal(t, 20.0, d.Y[40])
	require.NotNil(t, d.YErr)
	assert.Equal(t, 0.1, d.YErr[3])
	d, err = Load(writeSpectrum(t, "b.dat", 1, constant(1), false))
	require.NoError(t, err)
	assert.Nil(t, d.YErr)
	path := filepath.Join(t.TempDir(), "desc.csv")
	require.NoError(t, os.WriteFile(path, []byte("3;30\n1;10\n2;20\n"), 0o644))
	d, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, d.X)
	assert.Equal(t, []float64{10, 20, 30}, d.Y)
	empty := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte("x,y\n"), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestNewSpectraAndUnits(t *testing.T) {
	path := writeSpectrum(t, "a.csv", 10, constant(1), false)
	s, err := NewSpectra("Inelastic Neutron Scattering", []string{path}, "wavenumbers", "meV")
	require.NoError(t, err)
	assert.Equal(t, "ins", s.Type)
	assert.Equal(t, "meV", s.Units)
	assert.InDelta(t, 10*0.12398419843320026, s.Data[0].X[40], 1e-9)
	require.NoError(t, s.SetUnits("cm-1", ""))
	assert.InDelta(t, 10, s.Data[0].X[40], 1e-9)
	assert.Equal(t, "cm-1", s.Units)
	assert.Error(t, s.SetUnits("parsecs", ""))
	s, err = NewSpectra("ATR", []string{path}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "cm-1", s.Units)
	_, err = NewSpectra("NMR", []string{path}, "", "")
	assert.Error(t, err)
}

func TestPlateauAndArea(t *testing.T) {
	path := writeSpectrum(t, "a.csv", 20, func(x float64) float64 {
		if x >= 10 && x <= 12 {
			return 3
		}
		if x >= 15 {
			return 1 + 0.5*math.Pow(-1, x*4)
		}
		return 1
	}, true)
	s, err := NewSpectra("ins", []string{path}, "meV", "meV")
	require.NoError(t, err)
	mean, std, err := Plateau(s, [2]float64{2, 8}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, mean, 1e-12)
	assert.InDelta(t, 0, std, 1e-12)
	mean, std, err = Plateau(s, [2]float64{15, math.Inf(1)}, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1, mean, 0.05)
	assert.Greater(t, std, 0.4)
	_, _, err = Plateau(s, [2]float64{30, 40}, 0)
	assert.Error(t, err)
	_, _, err = Plateau(s, [2]float64{2, 8}, 3)
	assert.Error(t, err)

	area, areaErr, err := AreaUnderPeak(s, Peak{XMin: 10, XMax: 12, Baseline: 1, BaselineError: 0.1}, 0, true, false)
	require.NoError(t, err)
	assert.InDelta(t, 4, area, 1e-12)
	//8 steps of 0.25: weights 0.125 at the ends, 0.25 inside
	assert.InDelta(t, 0.1*math.Sqrt(2*0.125*0.125+7*0.25*0.25), areaErr, 1e-12)
	area, _, err = AreaUnderPeak(s, Peak{XMin: 10, XMax: 12}, 0, true, true)
	require.NoError(t, err)
	assert.InDelta(t, 0, area, 1e-12)
	area, areaErr, err = AreaUnderPeak(s, Peak{XMin: 10, XMax: 12}, 0, false, false)
	require.NoError(t, err)
	assert.InDelta(t, 6, area, 1e-12)
	assert.InDelta(t, 0.1*math.Sqrt(2*0.125*0.125+7*0.25*0.25), areaErr, 1e-12)
	_, _, err = AreaUnderPeak(s, Peak{XMin: 12, XMax: 10}, 0, true, false)
	assert.Error(t, err)
}

func TestRatioAreas(t *testing.T) {
	r, e, err := RatioAreas(1, 4, 0.1, 0.2, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, r, 1e-12)
	assert.InDelta(t, 0.25*math.Hypot(0.1, 0.05), e, 1e-12)
	r, e, err = RatioAreas(1, 4, 0.1, 0.2, true)
	require.NoError(t, err)
	assert.InDelta(t, 4, r, 1e-12)
	assert.InDelta(t, 4*math.Hypot(0.1, 0.05), e, 1e-12)
	//a zero area still has the error of the area
	r, e, err = RatioAreas(0, 4, 0.2, 0.2, false)
	require.NoError(t, err)
	assert.Zero(t, r)
	assert.InDelta(t, 0.05, e, 1e-12)
	_, _, err = RatioAreas(0, 4, 0.1, 0.2, true)
	assert.Error(t, err)
	_, _, err = RatioAreas(1, 0, 0.1, 0.2, false)
	assert.Error(t, err)
	r, e, err = RatioAreas(0, 4, 0, 0.2, false)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(r) || math.IsNaN(e))
}

func TestPeakFits(t *testing.T) {
	gauss := writeSpectrum(t, "g.csv", 10, func(x float64) float64 {
		u := (x - 5) / 0.7
		return 3*math.Exp(-u*u/2) + 0.5
	}, false)
	lorentz := writeSpectrum(t, "l.csv", 10, func(x float64) float64 {
		u := (x - 4.5) / 0.6
		return 2/(1+u*u) + 0.2
	}, false)
	s, err := NewSpectra("raman", []string{gauss, lorentz}, "cm-1", "cm-1")
	require.NoError(t, err)
	g, err := Gaussian(s, 0, 10, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5, g.Center, 0.01)
	assert.InDelta(t, 3, g.Height, 0.02)
	assert.InDelta(t, 0.7, g.Width, 0.01)
	assert.InDelta(t, 3*0.7*math.Sqrt(2*math.Pi), g.Area, 0.05)
	assert.InDelta(t, 3.5, g.Eval(5), 0.02)
	l, err := Lorentzian(s, 0, 10, 1)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, l.Center, 0.01)
	assert.InDelta(t, 1.2, l.FWHM, 0.02)
	_, err = Gaussian(s, 0, 0.5, 0)
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	a := writeSpectrum(t, "a.csv", 10, constant(2), true)
	b := writeSpectrum(t, "b.csv", 10, func(x float64) float64 { return x }, true)
	s, err := NewSpectra("ins", []string{a, b}, "", "")
	require.NoError(t, err)
	require.NoError(t, Height(s, 0, 4, 0))
	assert.InDelta(t, 2, s.Data[1].Y[16], 1e-12)
	assert.InDelta(t, 0.05, s.Data[1].YErr[0], 1e-12)
	assert.InDelta(t, 2, s.Data[0].Y[0], 1e-12)

	s, err = NewSpectra("ins", []string{a, b}, "", "")
	require.NoError(t, err)
	s.Plotting.Normalize = "area"
	s.Scaling = Scaling{XMin: 0, XMax: 2, Index: 1}
	require.NoError(t, s.Normalize())
	assert.InDelta(t, 1, s.Data[0].Y[0], 1e-12)
	s.Plotting.Normalize = "volume"
	assert.Error(t, s.Normalize())

	assert.Equal(t, "cm⁻¹", UnitString("wavenumbers"))
	assert.Equal(t, "meV", UnitString("millielectronvolts"))
	assert.Equal(t, "arbitrary", UnitString("arbitrary"))
}

func TestMaterial(t *testing.T) {
	m := MAPbI3()
	m.Grams = 2
	m.GramsError = 0.02
	require.NoError(t, m.Set())
	mm := 207.2 + 3*126.90447 + 12.0107 + 14.0067 + 6*1.00794
	assert.InDelta(t, mm, m.MolarMass, 1e-9)
	assert.InDelta(t, 11.118+3*3.81+5.551+11.51+6*82.02, m.CrossSection, 1e-9)
	assert.InDelta(t, 2/mm, m.Mols, 1e-12)
	assert.InDelta(t, 0.01*2/mm, m.MolsError, 1e-12)
	assert.Contains(t, m.String(), "MAPbI3: C1 H6 I3 N1 Pb1")
	d := MAPbI3CDND()
	require.NoError(t, d.Set())
	assert.InDelta(t, 11.118+3*3.81+5.551+11.51+6*7.64, d.CrossSection, 1e-9)
	bad := &Material{Name: "bad", Elements: map[string]float64{"Xx": 1}}
	assert.Error(t, bad.Set())
	assert.Error(t, (&Material{}).Set())
}

func TestImpulseApprox(t *testing.T) {
	h, d := *MAPbI3(), *MAPbI3CDND()
	h.Grams, d.Grams = 2.02, 1.284
	hs, ds := h, d
	require.NoError(t, hs.Set())
	require.NoError(t, ds.Set())
	ideal := ds.CrossSection / hs.CrossSection
	hfile := writeSpectrum(t, "h.csv", 800, constant(10), false)
	//fully deuterated: the plateaus per mol keep the ratio of the cross sections
	dfile := writeSpectrum(t, "d.csv", 800, constant(10*ideal*ds.Mols/hs.Mols), false)
	ins, err := NewSpectra("ins", []string{hfile, dfile}, "meV", "meV")
	require.NoError(t, err)
	r, err := ImpulseApprox(ins, h, d, DefaultThreshold, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.Deuteration)
	assert.Equal(t, 0.0, r.DeuterationError)
	assert.InDelta(t, ideal, r.IdealRatio, 1e-12)
	assert.Contains(t, r.String(), "Deuteration: 1.00 +- 0.00")

	//protonated: same plateau per mol
	dfile = writeSpectrum(t, "d.csv", 800, constant(10*ds.Mols/hs.Mols), false)
	ins, err = NewSpectra("ins", []string{hfile, dfile}, "meV", "meV")
	require.NoError(t, err)
	r, err = ImpulseApprox(ins, h, d, DefaultThreshold, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Deuteration)

	//the spectra are converted to meV without modifying the original
	ins.Units = "cm-1"
	_, err = ImpulseApprox(ins, h, d, DefaultThreshold, 0, 1)
	assert.Error(t, err) //no points above 600 meV after the conversion
	assert.Equal(t, 800.0, ins.Data[0].X[ins.Data[0].Len()-1])
}

func peakBlocks(blocks map[float64]float64) func(float64) float64 {
	return func(x float64) float64 {
		for start, h := range blocks {
			if x >= start && x <= start+1 {
				return h
			}
		}
		return 0
	}
}

func TestPeaksMAPbI3(t *testing.T) {
	limits := map[string][2]float64{
		"h6d0": {41, 42},
		"h5d1": {38, 39},
		"h4d2": {35, 36},
		"h3d3": {32, 33},
	}
	path := writeSpectrum(t, "mapi.csv", 50, peakBlocks(map[float64]float64{41: 6, 38: 5, 35: 4, 32: 3}), false)
	ins, err := NewSpectra("ins", []string{path}, "meV", "meV")
	require.NoError(t, err)
	ins.Plotting.Legend = []string{"MAPI-ND"}
	r, err := PeaksMAPbI3(ins, MAPbI3Peaks{Limits: limits}, 0)
	require.NoError(t, err)
	assert.False(t, r.Total)
	require.Len(t, r.Peaks, 4)
	for _, p := range r.Peaks {
		assert.InDelta(t, 0.25, p.Ratio, 1e-12)
	}
	assert.InDelta(t, 0.5, r.AmineDeuteration, 1e-12)
	assert.InDelta(t, 0.5, r.AmineProtonation, 1e-12)
	assert.Equal(t, "0.50 +- 0.00", r.Short())
	assert.Contains(t, r.String(), "Sample:  MAPI-ND")

	limits["h2d4"] = [2]float64{26, 27}
	limits["h1d5"] = [2]float64{23, 24}
	limits["h0d6"] = [2]float64{20, 21}
	path = writeSpectrum(t, "mapi.csv", 50, peakBlocks(map[float64]float64{41: 6, 38: 5, 35: 4, 32: 3, 26: 2, 23: 1, 20: 1}), false)
	ins, err = NewSpectra("ins", []string{path}, "meV", "meV")
	require.NoError(t, err)
	r, err = PeaksMAPbI3(ins, MAPbI3Peaks{Limits: limits}, 0)
	require.NoError(t, err)
	assert.True(t, r.Total)
	require.Len(t, r.Peaks, 7)
	assert.Equal(t, "DDD-DDD", r.Peaks[6].Label)
	assert.InDelta(t, 0.5, r.Deuteration, 1e-12)
	assert.InDelta(t, 0.5, r.Protonation, 1e-12)
	assert.InDelta(t, 2.0/7, r.AmineDeuteration, 1e-12)
	assert.Equal(t, "0.29 +- 0.00 / 0.50 +- 0.00", r.Short())

	delete(limits, "h4d2")
	_, err = PeaksMAPbI3(ins, MAPbI3Peaks{Limits: limits}, 0)
	assert.Error(t, err)

	//only baseline in every range
	flat := map[string][2]float64{"h6d0": {45, 46}, "h5d1": {46, 47}, "h4d2": {47, 48}, "h3d3": {48, 49}}
	_, err = PeaksMAPbI3(ins, MAPbI3Peaks{Limits: flat}, 0)
	assert.Error(t, err)
}

func TestPlot(t *testing.T) {
	a := writeSpectrum(t, "a.csv", 100, func(x float64) float64 { return math.Sin(x / 10) }, false)
	b := writeSpectrum(t, "b.csv", 100, func(x float64) float64 { return math.Cos(x / 10) }, false)
	s, err := NewSpectra("ins", []string{a, b}, "cm-1", "meV")
	require.NoError(t, err)
	s.Plotting = Plotting{
		Title:     "Example spectra",
		XLim:      [2]float64{1, 12},
		Offset:    true,
		Scaling:   0.9,
		Margins:   [2]float64{0.2, 0.2},
		Legend:    []string{"example 1", "example 2"},
		LogXScale: true,
		Normalize: "height",
	}
	path := filepath.Join(t.TempDir(), "spectra.png")
	require.NoError(t, Plot(s, path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
	assert.Error(t, Plot(&Spectra{}, path))
}

func TestColor(t *testing.T) {
	c := Color(0, 4)
	assert.Equal(t, uint8(216), c.R)
	assert.Zero(t, c.B)
	r, g, b := HSVToRGB(120, 1, 1)
	assert.Equal(t, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})
	r, g, b = HSVToRGB(0, 0, 0.5)
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
