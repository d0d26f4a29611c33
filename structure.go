/*
 * structure.go, part of gonics.
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

package nics

import (
	"fmt"

	v3 "github.com/mpoblete/gonics/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Structure holds the atoms of a molecule (or a molecule plus NICS probes)
// as a sequence of symbols and a parallel set of cartesian coordinates, plus
// the two derived quantities the orientation procedure works with: the
// geometric center and the main (consensus) axis. The order of the atoms is
// meaningful, it pairs each symbol with its coordinates, so no operation here
// ever reorders them.
//
// The center and main axis are caches. They are only valid right after an
// Update* call: any mutation of the coordinates through this API marks them
// stale, and the accessors refuse to hand out stale values instead of
// silently returning geometry that no longer matches the coordinates.
type Structure struct {
	name     string
	atoms    []string
	coords   *v3.Matrix
	center   *v3.Matrix //1x3, geometric center
	mainAxis *v3.Matrix //1x3, unit, undirected
	centerOK bool
	axisOK   bool
}

// NewStructure builds a Structure from a slice of atom symbols and a matching
// set of coordinates. The number of symbols must equal the number of
// coordinate vectors. The optional name is used only for printing.
func NewStructure(atoms []string, coords *v3.Matrix, name ...string) (*Structure, error) {
	if atoms == nil || coords == nil {
		return nil, CError{string(ErrNilData), []string{"NewStructure"}}
	}
	if len(atoms) != coords.NVecs() {
		return nil, CError{fmt.Sprintf("%d atom symbols but %d coordinate vectors", len(atoms), coords.NVecs()), []string{"NewStructure"}}
	}
	S := new(Structure)
	S.name = "system"
	if len(name) > 0 {
		S.name = name[0]
	}
	S.atoms = atoms
	S.coords = coords
	return S, nil
}

// Len returns the number of atoms in the Structure.
func (S *Structure) Len() int {
	return len(S.atoms)
}

// Name returns the name given to the Structure on creation.
func (S *Structure) Name() string {
	return S.name
}

// Atom returns the symbol of the ith atom.
func (S *Structure) Atom(i int) string {
	return S.atoms[i]
}

// Coords returns the coordinate set itself, not a copy, so the caller can
// feed it to the geometric functions without copying. A caller that writes
// to it directly must call Invalidate afterwards, or the cached center and
// axis would go silently stale.
func (S *Structure) Coords() *v3.Matrix {
	return S.coords
}

// Invalidate marks the cached center and main axis as stale. It is only
// needed after writing to the matrix returned by Coords directly.
func (S *Structure) Invalidate() {
	S.centerOK = false
	S.axisOK = false
}

// Center returns a copy of the geometric center. It errors if the
// coordinates changed since the last time the center was computed.
func (S *Structure) Center() (*v3.Matrix, error) {
	if !S.centerOK {
		return nil, CError{"Center is stale, call UpdateCenter or UpdateGeometry first", []string{"Center"}}
	}
	ret := v3.Zeros(1)
	ret.Copy(S.center)
	return ret, nil
}

// MainAxis returns a copy of the consensus axis. It errors if the
// coordinates changed since the last time the axis was computed.
func (S *Structure) MainAxis() (*v3.Matrix, error) {
	if !S.axisOK {
		return nil, CError{"Main axis is stale, call UpdateAxis or UpdateGeometry first", []string{"MainAxis"}}
	}
	ret := v3.Zeros(1)
	ret.Copy(S.mainAxis)
	return ret, nil
}

// UpdateCenter recomputes the geometric center as the column-wise mean
// of the coordinates.
func (S *Structure) UpdateCenter() {
	col := make([]float64, S.Len())
	if S.center == nil {
		S.center = v3.Zeros(1)
	}
	for j := 0; j < 3; j++ {
		mat.Col(col, j, S.coords)
		S.center.Set(0, j, stat.Mean(col, nil))
	}
	S.centerOK = true
}

// UpdateAxis recomputes the main axis by consensus over every 3-atom subset,
// either of the whole molecule or, if an index slice is given, of that subset
// of atoms only (e.g. the atoms of an aromatic ring, leaving out substituents
// that would drag the average away from the ring normal).
func (S *Structure) UpdateAxis(indexes ...[]int) error {
	var sel []int
	if len(indexes) > 0 {
		sel = indexes[0]
		if sel != nil && len(sel) == 0 {
			return CError{"Empty atom subset given", []string{"UpdateAxis"}}
		}
	}
	axis, err := ConsensusAxis(S.coords, sel)
	if err != nil {
		return errDecorate(err, "UpdateAxis")
	}
	S.mainAxis = axis
	S.axisOK = true
	return nil
}

// UpdateGeometry recomputes both the center and the main axis.
func (S *Structure) UpdateGeometry() error {
	S.UpdateCenter()
	if err := S.UpdateAxis(); err != nil {
		return errDecorate(err, "UpdateGeometry")
	}
	return nil
}

// CenterOnOrigin translates the whole molecule so its geometric center sits
// at the origin, and refreshes the derived geometry. It is idempotent: a
// second call moves the coordinates only by floating point noise.
func (S *Structure) CenterOnOrigin() error {
	if err := S.UpdateGeometry(); err != nil {
		return errDecorate(err, "CenterOnOrigin")
	}
	S.coords.SubVec(S.coords, S.center)
	S.Invalidate()
	if err := S.UpdateGeometry(); err != nil {
		return errDecorate(err, "CenterOnOrigin")
	}
	return nil
}

// AlignToZ rotates the molecule, in place, so its main (consensus) axis ends
// up parallel to the z axis. The rotation pivots on the current geometric
// center, so the centroid stays where it is; combine with CenterOnOrigin to
// get the canonical frame. If the axis is already parallel to z there is
// nothing to rotate and the coordinates are left alone. This is a single-shot
// operation, not an iterative refinement: for a strongly non-planar molecule
// the result is only as good as the consensus axis itself.
func (S *Structure) AlignToZ() error {
	if err := S.UpdateGeometry(); err != nil {
		return errDecorate(err, "AlignToZ")
	}
	z, _ := v3.NewMatrix([]float64{0, 0, 1})
	cross := v3.Zeros(1)
	cross.Cross(S.mainAxis, z)
	if cross.Norm() <= appzero {
		//already aligned (the axis is sign-folded, so antiparallel
		//cannot happen), the identity would be a waste of flops.
		return nil
	}
	angle := Angle(S.mainAxis, z)
	direction, err := NormalFromVectors(S.mainAxis, z)
	if err != nil {
		return errDecorate(err, "AlignToZ")
	}
	M, err := RotationAbout(angle, direction, S.center)
	if err != nil {
		return errDecorate(err, "AlignToZ")
	}
	rotated, err := ApplyHomogeneous(M, S.coords)
	if err != nil {
		return errDecorate(err, "AlignToZ")
	}
	S.coords.Copy(rotated)
	S.Invalidate()
	if err := S.UpdateGeometry(); err != nil {
		return errDecorate(err, "AlignToZ")
	}
	return nil
}

func (S *Structure) String() string {
	return fmt.Sprintf("%s: %d atoms", S.name, S.Len())
}
