/*
 * spectro.go, part of gonics.
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

//Package spectro aggregates per-vibrational-mode quantities scattered over
//Gaussian frequency, Raman and resonance-Raman logs into one table: one row
//per normal mode, one column per intensity set, plus the decomposition of
//each mode into molecule/mixed/surface internal coordinates.
package spectro

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

//auToNm converts a perturbation frequency in atomic units to the incident
//wavelength in nm, lambda = auToNm/freq.
const auToNm = 45.56335

//staticKey is the column name for non-resonant (static limit) Raman activities.
const staticKey = "SL"

// System accumulates per-mode data for one molecule/surface system.
type System struct {
	name string
	wn   []float64            //wavenumbers, one per mode
	ints map[string][]float64 //intensity sets, keyed by column name
	keys []string             //column insertion order, maps are unordered
	mol  []float64            //percent of each mode on molecule-only coordinates
	mix  []float64            //percent on mixed coordinates
	sur  []float64            //percent on surface-only coordinates
}

// NewSystem returns an empty System with the given name.
func NewSystem(name string) *System {
	S := new(System)
	S.name = name
	S.ints = make(map[string][]float64)
	return S
}

func (S *System) Name() string { return S.name }

// NModes returns the number of normal modes read so far.
func (S *System) NModes() int { return len(S.wn) }

func (S *System) addColumn(key string, data []float64) {
	if _, ok := S.ints[key]; !ok {
		S.keys = append(S.keys, key)
	}
	S.ints[key] = data
}

// ReadFrequencies collects the harmonic wavenumbers from every
// "Frequencies --" line of a frequency-job log.
func (S *System) ReadFrequencies(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var wn []float64
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Frequencies --") {
			continue
		}
		fields := strings.Fields(line)
		for _, v := range fields[2:] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse frequency %q: %s", v, err.Error()), []string{"ReadFrequencies"}}
			}
			wn = append(wn, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return Error{err.Error(), []string{"ReadFrequencies"}}
	}
	if wn == nil {
		return Error{"No \"Frequencies --\" lines found", []string{"ReadFrequencies"}}
	}
	S.wn = wn
	return nil
}

// ReadRaman collects the static-limit Raman activities from every
// "Raman Activ --" line, under the column name "SL".
func (S *System) ReadRaman(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var act []float64
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Raman Activ --") {
			continue
		}
		fields := strings.Fields(line)
		for _, v := range fields[3:] {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse Raman activity %q: %s", v, err.Error()), []string{"ReadRaman"}}
			}
			act = append(act, f)
		}
	}
	if err := scanner.Err(); err != nil {
		return Error{err.Error(), []string{"ReadRaman"}}
	}
	if act == nil {
		return Error{"No \"Raman Activ --\" lines found", []string{"ReadRaman"}}
	}
	S.addColumn(staticKey, act)
	return nil
}

// ReadResonanceRaman collects the resonance Raman activities of a log
// computed at one incident wavelength. The activities come from the
// "RamAct Fr= 1--" lines and the column is named after the wavelength
// (e.g. "466nm"), recovered from the "Using perturbation frequencies:"
// line of the same log.
func (S *System) ReadResonanceRaman(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	var act []float64
	wavelength := -1
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.Contains(line, "RamAct Fr= 1--"):
			raw := strings.SplitN(line, "--", 2)
			if len(raw) != 2 {
				return Error{fmt.Sprintf("Ill-formed RamAct line: %q", line), []string{"ReadResonanceRaman"}}
			}
			for _, v := range strings.Fields(raw[1]) {
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return Error{fmt.Sprintf("Can't parse RR activity %q: %s", v, err.Error()), []string{"ReadResonanceRaman"}}
				}
				act = append(act, f)
			}
		case strings.Contains(line, "Using perturbation frequencies:"):
			raw := strings.SplitN(line, ":", 2)
			freq, err := strconv.ParseFloat(strings.TrimSpace(raw[1]), 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse perturbation frequency in %q: %s", line, err.Error()), []string{"ReadResonanceRaman"}}
			}
			wavelength = int(math.Round(auToNm / freq))
		}
	}
	if err := scanner.Err(); err != nil {
		return Error{err.Error(), []string{"ReadResonanceRaman"}}
	}
	if act == nil {
		return Error{"No \"RamAct Fr= 1--\" lines found", []string{"ReadResonanceRaman"}}
	}
	if wavelength <= 0 {
		return Error{"No perturbation frequency found, can't name the intensity column", []string{"ReadResonanceRaman"}}
	}
	S.addColumn(fmt.Sprintf("%dnm", wavelength), act)
	return nil
}

// ReadInternalModes parses the "Normal Mode" blocks of an internal-coordinate
// decomposition log and classifies the weight of every mode over three
// groups: contributions whose atoms all belong to molAtoms (the molecule),
// those with no atom in molAtoms (the surface), and those straddling both.
// The three are normalized to percentages per mode. Atom numbers in the log
// are 1-based, molAtoms should use the same numbering.
func (S *System) ReadInternalModes(in io.Reader, molAtoms []int) error {
	scanner := bufio.NewScanner(in)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Error{err.Error(), []string{"ReadInternalModes"}}
	}
	var blocks [][]string
	reading := false
	start := 0
	for i, line := range lines {
		if strings.Contains(line, "Normal Mode") {
			reading = true
			start = i
		} else if strings.Contains(line, strings.Repeat("-", 80)) && reading && i-start > 3 {
			blocks = append(blocks, lines[start+4:i])
			reading = false
		}
	}
	if blocks == nil {
		return Error{"No \"Normal Mode\" blocks found", []string{"ReadInternalModes"}}
	}
	S.mol = make([]float64, 0, len(blocks))
	S.mix = make([]float64, 0, len(blocks))
	S.sur = make([]float64, 0, len(blocks))
	for _, block := range blocks {
		w := make([]float64, 3) //mol, mix, sur
		for _, vib := range block {
			fields := strings.Fields(vib)
			if len(fields) < 4 {
				return Error{fmt.Sprintf("Ill-formed internal coordinate line: %q", vib), []string{"ReadInternalModes"}}
			}
			atoms, err := descAtoms(fields[2])
			if err != nil {
				return Error{err.Error(), []string{"ReadInternalModes"}}
			}
			value, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return Error{fmt.Sprintf("Can't parse contribution in %q: %s", vib, err.Error()), []string{"ReadInternalModes"}}
			}
			switch membership(atoms, molAtoms) {
			case allIn:
				w[0] += math.Abs(value)
			case someIn:
				w[1] += math.Abs(value)
			default:
				w[2] += math.Abs(value)
			}
		}
		total := floats.Sum(w)
		if total <= 0 {
			return Error{"A normal mode block has no weight at all", []string{"ReadInternalModes"}}
		}
		floats.Scale(100.0/total, w)
		S.mol = append(S.mol, w[0])
		S.mix = append(S.mix, w[1])
		S.sur = append(S.sur, w[2])
	}
	return nil
}

//descAtoms pulls the atom numbers out of an internal coordinate description
//such as "STRE(1,2)" or "BEND(3,4,5)".
func descAtoms(desc string) ([]int, error) {
	open := strings.Index(desc, "(")
	close := strings.Index(desc, ")")
	if open < 0 || close < open {
		return nil, fmt.Errorf("No atom list in internal coordinate %q", desc)
	}
	var atoms []int
	for _, v := range strings.Split(desc[open+1:close], ",") {
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("Bad atom number in internal coordinate %q: %s", desc, err.Error())
		}
		atoms = append(atoms, i)
	}
	if atoms == nil {
		return nil, fmt.Errorf("Empty atom list in internal coordinate %q", desc)
	}
	return atoms, nil
}

type groupMembership int

const (
	noneIn groupMembership = iota
	someIn
	allIn
)

func membership(atoms, group []int) groupMembership {
	var in int
	for _, a := range atoms {
		for _, g := range group {
			if a == g {
				in++
				break
			}
		}
	}
	switch {
	case in == len(atoms):
		return allIn
	case in > 0:
		return someIn
	}
	return noneIn
}

//File-based conveniences, one per reader.

func (S *System) fileRead(name string, read func(io.Reader) error) error {
	f, err := os.Open(name)
	if err != nil {
		return Error{err.Error(), []string{"fileRead"}}
	}
	defer f.Close()
	return read(f)
}

func (S *System) FileReadFrequencies(name string) error {
	return S.fileRead(name, S.ReadFrequencies)
}

func (S *System) FileReadRaman(name string) error {
	return S.fileRead(name, S.ReadRaman)
}

func (S *System) FileReadResonanceRaman(name string) error {
	return S.fileRead(name, S.ReadResonanceRaman)
}

func (S *System) FileReadInternalModes(name string, molAtoms []int) error {
	return S.fileRead(name, func(r io.Reader) error { return S.ReadInternalModes(r, molAtoms) })
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
