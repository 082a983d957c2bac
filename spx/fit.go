/*
 * fit.go, part of goAton.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Plateau returns the mean and the standard deviation of the Y values of the
// dataset idx with cuts[0] <= X <= cuts[1]. Use math.Inf for open ranges.
func Plateau(s *Spectra, cuts [2]float64, idx int) (mean, std float64, err error) {
	d, err := s.dataset(idx)
	if err != nil {
		return 0, 0, err
	}
	i, j := d.window(cuts[0], cuts[1])
	if i == j {
		return 0, 0, fmt.Errorf("spx: no points between %g and %g", cuts[0], cuts[1])
	}
	y := d.Y[i:j]
	if len(y) == 1 {
		return y[0], 0, nil
	}
	mean, std = stat.MeanStdDev(y, nil)
	return mean, std, nil
}

// Peak contains the limits of a peak and the baseline below it.
type Peak struct {
	XMin, XMax    float64
	Baseline      float64
	BaselineError float64
}

// trapezoidWeights returns the weights w such that the trapezoidal integral
// of y over x is the sum of w[i]*y[i].
func trapezoidWeights(x []float64) []float64 {
	w := make([]float64, len(x))
	for i := 1; i < len(x); i++ {
		h := (x[i] - x[i-1]) / 2
		w[i-1] += h
		w[i] += h
	}
	return w
}

// AreaUnderPeak integrates, with the trapezoidal rule, the dataset idx between
// the limits of peak, after subtracting the baseline. If minAsBaseline is true
// and the baseline is zero, the minimum Y value in the range is taken as the
// baseline. If errorsAsInBaseline is true, or the dataset has no errors, the
// error of every point is the baseline error. Otherwise the errors of the
// dataset are used, and the baseline error is added as a systematic shift.
func AreaUnderPeak(s *Spectra, peak Peak, idx int, errorsAsInBaseline, minAsBaseline bool) (area, areaError float64, err error) {
	d, err := s.dataset(idx)
	if err != nil {
		return 0, 0, err
	}
	if peak.XMax <= peak.XMin {
		return 0, 0, fmt.Errorf("spx: wrong peak limits %g %g", peak.XMin, peak.XMax)
	}
	i, j := d.window(peak.XMin, peak.XMax)
	if j-i < 2 {
		return 0, 0, fmt.Errorf("spx: less than 2 points between %g and %g", peak.XMin, peak.XMax)
	}
	x := d.X[i:j]
	y := make([]float64, j-i)
	copy(y, d.Y[i:j])
	baseline := peak.Baseline
	if minAsBaseline && baseline == 0 {
		baseline = floats.Min(y)
	}
	floats.AddConst(-baseline, y)
	area = integrate.Trapezoidal(x, y)
	w := trapezoidWeights(x)
	var sq float64
	for k := range w {
		e := peak.BaselineError
		if !errorsAsInBaseline && d.YErr != nil {
			e = d.YErr[i+k]
		}
		sq += w[k] * w[k] * e * e
	}
	if !errorsAsInBaseline && d.YErr != nil {
		shift := (x[len(x)-1] - x[0]) * peak.BaselineError
		sq += shift * shift
	}
	return area, math.Sqrt(sq), nil
}

// RatioAreas returns the ratio between area and total, or its inverse if inverse
// is true, and its error. It fails if the denominator is zero.
func RatioAreas(area, total, areaError, totalError float64, inverse bool) (ratio, ratioError float64, err error) {
	num, den := area, total
	numErr, denErr := areaError, totalError
	if inverse {
		num, den = total, area
		numErr, denErr = totalError, areaError
	}
	if den == 0 {
		return 0, 0, fmt.Errorf("spx: cannot divide %g by a zero area", num)
	}
	ratio = num / den
	ratioError = math.Hypot(numErr/den, num*denErr/(den*den))
	return ratio, ratioError, nil
}

// Fit is a peak fitted on a linear baseline.
type Fit struct {
	Shape     string  //"gaussian" or "lorentzian"
	Height    float64 //above the baseline
	Center    float64
	Width     float64 //standard deviation for gaussians, half width at half maximum for lorentzians
	Slope     float64 //of the baseline
	Intercept float64
	FWHM      float64
	Area      float64 //of the peak alone
	RMSD      float64 //of the fit
}

// Eval returns the value of the fitted function at x.
func (f *Fit) Eval(x float64) float64 {
	return shapes[f.Shape]([]float64{f.Height, f.Center, f.Width, f.Slope, f.Intercept}, x)
}

var shapes = map[string]func(p []float64, x float64) float64{
	"gaussian": func(p []float64, x float64) float64 {
		u := (x - p[1]) / p[2]
		return p[0]*math.Exp(-u*u/2) + p[3]*x + p[4]
	},
	"lorentzian": func(p []float64, x float64) float64 {
		u := (x - p[1]) / p[2]
		return p[0]/(1+u*u) + p[3]*x + p[4]
	},
}

// Gaussian fits a gaussian peak on a linear baseline to the dataset idx between xmin and xmax.
func Gaussian(s *Spectra, xmin, xmax float64, idx int) (*Fit, error) {
	return fitPeak(s, "gaussian", xmin, xmax, idx)
}

// Lorentzian fits a lorentzian peak on a linear baseline to the dataset idx between xmin and xmax.
func Lorentzian(s *Spectra, xmin, xmax float64, idx int) (*Fit, error) {
	return fitPeak(s, "lorentzian", xmin, xmax, idx)
}

func fitPeak(s *Spectra, shape string, xmin, xmax float64, idx int) (*Fit, error) {
	d, err := s.dataset(idx)
	if err != nil {
		return nil, err
	}
	i, j := d.window(xmin, xmax)
	if j-i < 5 {
		return nil, fmt.Errorf("spx: not enough points between %g and %g to fit a peak", xmin, xmax)
	}
	x, y := d.X[i:j], d.Y[i:j]
	f := shapes[shape]
	top := floats.MaxIdx(y)
	low := floats.Min(y)
	init := []float64{y[top] - low, x[top], (x[len(x)-1] - x[0]) / 6, 0, low}
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			if p[2] == 0 {
				return math.Inf(1)
			}
			var sse float64
			for k := range x {
				r := f(p, x[k]) - y[k]
				sse += r * r
			}
			return sse
		},
	}
	result, err := optimize.Minimize(problem, init, nil, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("spx: %s fit: %w", shape, err)
	}
	p := result.X
	ret := &Fit{
		Shape:     shape,
		Height:    p[0],
		Center:    p[1],
		Width:     math.Abs(p[2]),
		Slope:     p[3],
		Intercept: p[4],
		RMSD:      math.Sqrt(result.F / float64(len(x))),
	}
	if shape == "gaussian" {
		ret.FWHM = 2 * math.Sqrt(2*math.Ln2) * ret.Width
		ret.Area = ret.Height * ret.Width * math.Sqrt(2*math.Pi)
	} else {
		ret.FWHM = 2 * ret.Width
		ret.Area = math.Pi * ret.Height * ret.Width
	}
	return ret, nil
}
