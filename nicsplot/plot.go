/*
 * plot.go, part of gonics.
 *
 * Copyright 2026 Manuel Poblete
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

//Package nicsplot draws NICS scan profiles and simple stick-less spectra
//from the data the rest of the library produces.
package nicsplot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Scan is a NICS scan: the NICS value at each probe distance along the
// scan axis (normally the z axis after nics.AlignToZ, so "distance" is the
// height over the ring plane). Distances and Values are parallel.
type Scan struct {
	Distances []float64
	Values    []float64
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

// ScanPlot plots a NICS scan profile and saves it as plotname.png.
func ScanPlot(scan *Scan, title, plotname string) error {
	if scan == nil || scan.Distances == nil || scan.Values == nil {
		return Error{"Nil scan data given", []string{"ScanPlot"}}
	}
	if len(scan.Distances) != len(scan.Values) {
		return Error{fmt.Sprintf("%d distances but %d NICS values", len(scan.Distances), len(scan.Values)), []string{"ScanPlot"}}
	}
	p := basicPlot(title, "distance (A)", "NICS (ppm)")
	pts := make(plotter.XYs, len(scan.Distances))
	for i := range pts {
		pts[i].X = scan.Distances[i]
		pts[i].Y = scan.Values[i]
	}
	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return Error{err.Error(), []string{"ScanPlot"}}
	}
	p.Add(line, points)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png"); err != nil {
		return Error{err.Error(), []string{"ScanPlot"}}
	}
	return nil
}

// SpectrumPlot plots an intensity set against the mode wavenumbers, as
// produced by the spectro package, and saves it as plotname.png.
func SpectrumPlot(wavenumbers, intensities []float64, title, plotname string) error {
	if wavenumbers == nil || intensities == nil {
		return Error{"Nil spectrum data given", []string{"SpectrumPlot"}}
	}
	if len(wavenumbers) != len(intensities) {
		return Error{fmt.Sprintf("%d wavenumbers but %d intensities", len(wavenumbers), len(intensities)), []string{"SpectrumPlot"}}
	}
	p := basicPlot(title, "wavenumber (cm-1)", "activity")
	pts := make(plotter.XYs, len(wavenumbers))
	for i := range pts {
		pts[i].X = wavenumbers[i]
		pts[i].Y = intensities[i]
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), []string{"SpectrumPlot"}}
	}
	p.Add(line)
	if err := p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname+".png"); err != nil {
		return Error{err.Error(), []string{"SpectrumPlot"}}
	}
	return nil
}

//Errors

// Error is the error type for the package. It implements the decorated-error
// convention used across gonics.
type Error struct {
	message string
	deco    []string
}

func (err Error) Error() string { return err.message }

// Decorate adds the dec string to the decoration slice of strings of the
// error, and returns the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}
