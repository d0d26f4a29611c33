/*
 * table.go, part of gonics.
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

package spectro

import (
	"fmt"
	"strings"
)

// Table is the assembled per-mode table: one row per normal mode, indexed
// from 1 as in the quantum chemistry logs.
type Table struct {
	wn      []float64
	mol     []float64 //nil when no internal-mode decomposition was read
	mix     []float64
	sur     []float64
	keys    []string
	columns map[string][]float64
}

// Table builds the per-mode table from everything read into the System so
// far. Frequencies must have been read first, they define the modes, and
// every intensity set and the internal-mode decomposition (if present) must
// have exactly one value per mode.
func (S *System) Table() (*Table, error) {
	if S.wn == nil {
		return nil, Error{"No frequencies read, there are no modes to tabulate", []string{"Table"}}
	}
	n := len(S.wn)
	for _, k := range S.keys {
		if len(S.ints[k]) != n {
			return nil, Error{fmt.Sprintf("Intensity set %q has %d values for %d modes", k, len(S.ints[k]), n), []string{"Table"}}
		}
	}
	if S.mol != nil && len(S.mol) != n {
		return nil, Error{fmt.Sprintf("Internal-mode decomposition has %d values for %d modes", len(S.mol), n), []string{"Table"}}
	}
	T := new(Table)
	T.wn = S.wn
	T.mol = S.mol
	T.mix = S.mix
	T.sur = S.sur
	T.keys = S.keys
	T.columns = S.ints
	return T, nil
}

// NModes returns the number of rows of the table.
func (T *Table) NModes() int { return len(T.wn) }

// Wavenumber returns the wavenumber of the 1-based mode i.
func (T *Table) Wavenumber(i int) float64 { return T.wn[i-1] }

// Columns returns the names of the intensity columns, in the order
// they were read.
func (T *Table) Columns() []string {
	ret := make([]string, len(T.keys))
	copy(ret, T.keys)
	return ret
}

// Column returns the intensity set with the given name, or an error if no
// such column was read.
func (T *Table) Column(key string) ([]float64, error) {
	col, ok := T.columns[key]
	if !ok {
		return nil, Error{fmt.Sprintf("No intensity column %q", key), []string{"Column"}}
	}
	ret := make([]float64, len(col))
	copy(ret, col)
	return ret, nil
}

// String renders the table as fixed-width text, one mode per row.
func (T *Table) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %10s", "mode", "wn")
	if T.mol != nil {
		fmt.Fprintf(&b, " %8s %8s %8s", "mol%", "mix%", "sur%")
	}
	for _, k := range T.keys {
		fmt.Fprintf(&b, " %12s", k)
	}
	b.WriteString("\n")
	for i := 0; i < T.NModes(); i++ {
		fmt.Fprintf(&b, "%-6d %10.2f", i+1, T.wn[i])
		if T.mol != nil {
			fmt.Fprintf(&b, " %8.2f %8.2f %8.2f", T.mol[i], T.mix[i], T.sur[i])
		}
		for _, k := range T.keys {
			fmt.Fprintf(&b, " %12.4f", T.columns[k][i])
		}
		b.WriteString("\n")
	}
	return b.String()
}
