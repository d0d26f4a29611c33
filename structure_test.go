/*
 * structure_test.go, part of gonics.
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
	"math"
	"testing"

	v3 "github.com/mpoblete/gonics/v3"
)

func unitSquare() *v3.Matrix {
	coords, _ := v3.NewMatrix([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0})
	return coords
}

func pairwiseDistances(coords *v3.Matrix) []float64 {
	var ret []float64
	diff := v3.Zeros(1)
	for i := 0; i < coords.NVecs(); i++ {
		for j := i + 1; j < coords.NVecs(); j++ {
			diff.Sub(coords.VecView(i), coords.VecView(j))
			ret = append(ret, diff.Norm())
		}
	}
	return ret
}

func TestNewStructure(Te *testing.T) {
	coords := unitSquare()
	if _, err := NewStructure([]string{"C", "C", "C"}, coords); err == nil {
		Te.Error("Expected an error for mismatched atom/coordinate counts")
	}
	mol, err := NewStructure([]string{"C", "C", "C", "C"}, coords, "square")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 4 || mol.Name() != "square" || mol.Atom(2) != "C" {
		Te.Error("Structure not built as given:", mol)
	}
	//the caches start stale
	if _, err := mol.Center(); err == nil {
		Te.Error("Center should be stale before any update")
	}
	if _, err := mol.MainAxis(); err == nil {
		Te.Error("MainAxis should be stale before any update")
	}
}

func TestCenterOnOrigin(Te *testing.T) {
	coords, _ := v3.NewMatrix([]float64{
		1, 2, 3,
		2, 2, 3,
		1, 3, 3,
		2, 3, 4})
	mol, err := NewStructure([]string{"C", "C", "C", "C"}, coords)
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.CenterOnOrigin(); err != nil {
		Te.Fatal(err)
	}
	center, err := mol.Center()
	if err != nil {
		Te.Fatal(err)
	}
	if center.Norm() > tol {
		Te.Error("Centroid should be at the origin, got", center)
	}
	//idempotence: a second call moves nothing
	before := v3.Zeros(mol.Len())
	before.Copy(mol.Coords())
	if err := mol.CenterOnOrigin(); err != nil {
		Te.Fatal(err)
	}
	diff := v3.Zeros(1)
	for i := 0; i < mol.Len(); i++ {
		diff.Sub(before.VecView(i), mol.Coords().VecView(i))
		if diff.Norm() > tol {
			Te.Error("Second CenterOnOrigin moved atom", i, "by", diff.Norm())
		}
	}
}

func TestStaleness(Te *testing.T) {
	mol, err := NewStructure([]string{"C", "C", "C", "C"}, unitSquare())
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.UpdateGeometry(); err != nil {
		Te.Fatal(err)
	}
	if _, err := mol.Center(); err != nil {
		Te.Error("Center should be fresh after UpdateGeometry:", err)
	}
	//a raw write through Coords plus Invalidate must make the
	//accessors refuse until the next update.
	mol.Coords().Set(0, 0, 10)
	mol.Invalidate()
	if _, err := mol.Center(); err == nil {
		Te.Error("Center should be stale after Invalidate")
	}
	if _, err := mol.MainAxis(); err == nil {
		Te.Error("MainAxis should be stale after Invalidate")
	}
	if err := mol.UpdateGeometry(); err != nil {
		Te.Fatal(err)
	}
	if _, err := mol.Center(); err != nil {
		Te.Error("Center should be fresh again:", err)
	}
}

func TestAlignToZ(Te *testing.T) {
	//a unit square in the xy plane, rigidly rotated by 37 degrees about
	//the x axis and pushed away from the origin. AlignToZ must bring its
	//normal back onto z without distorting it, and CenterOnOrigin must
	//put its centroid on the origin.
	original := unitSquare()
	wantDists := pairwiseDistances(original)
	xdir, _ := v3.NewMatrix([]float64{1, 0, 0})
	M, err := RotationAbout(37*math.Pi/180, xdir, nil)
	if err != nil {
		Te.Fatal(err)
	}
	coords, err := ApplyHomogeneous(M, original)
	if err != nil {
		Te.Fatal(err)
	}
	shift, _ := v3.NewMatrix([]float64{5, 5, 5})
	coords.AddVec(coords, shift)
	mol, err := NewStructure([]string{"C", "C", "C", "C"}, coords, "tilted square")
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.CenterOnOrigin(); err != nil {
		Te.Fatal(err)
	}
	if err := mol.AlignToZ(); err != nil {
		Te.Fatal(err)
	}
	axis, err := mol.MainAxis()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("axis after alignment:", axis)
	if math.Abs(axis.At(0, 0)) > tol || math.Abs(axis.At(0, 1)) > tol || math.Abs(axis.At(0, 2)-1) > tol {
		Te.Error("Main axis should be (0,0,1) after AlignToZ, got", axis)
	}
	center, err := mol.Center()
	if err != nil {
		Te.Fatal(err)
	}
	if center.Norm() > tol {
		Te.Error("AlignToZ should preserve the centroid, got", center)
	}
	gotDists := pairwiseDistances(mol.Coords())
	for i := range wantDists {
		if math.Abs(wantDists[i]-gotDists[i]) > tol {
			Te.Errorf("Pairwise distance %d not preserved: %f vs %f", i, wantDists[i], gotDists[i])
		}
	}
}

func TestAlignToZQuiescent(Te *testing.T) {
	//already in the xy plane: nothing to rotate, nothing should move.
	mol, err := NewStructure([]string{"C", "C", "C", "C"}, unitSquare())
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.AlignToZ(); err != nil {
		Te.Fatal(err)
	}
	want := unitSquare()
	diff := v3.Zeros(1)
	for i := 0; i < mol.Len(); i++ {
		diff.Sub(want.VecView(i), mol.Coords().VecView(i))
		if diff.Norm() > tol {
			Te.Error("AlignToZ moved an already aligned molecule, atom", i)
		}
	}
	axis, err := mol.MainAxis()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(axis.At(0, 2)-1) > tol {
		Te.Error("Axis should be fresh and equal to z, got", axis)
	}
}

func TestUpdateAxisSubset(Te *testing.T) {
	//a benzene-like ring in the xy plane plus two out-of-plane atoms.
	//Restricted to the ring, the axis is exactly z.
	coords, _ := v3.NewMatrix([]float64{
		1.396, 0, 0,
		0.698, 1.209, 0,
		-0.698, 1.209, 0,
		-1.396, 0, 0,
		-0.698, -1.209, 0,
		0.698, -1.209, 0,
		0, 0.3, 1.8,
		0.1, -0.4, -2.1})
	atoms := []string{"C", "C", "C", "C", "C", "C", "X", "X"}
	mol, err := NewStructure(atoms, coords)
	if err != nil {
		Te.Fatal(err)
	}
	if err := mol.UpdateAxis([]int{0, 1, 2, 3, 4, 5}); err != nil {
		Te.Fatal(err)
	}
	axis, err := mol.MainAxis()
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(axis.At(0, 2)-1) > tol {
		Te.Error("Ring-restricted axis should be z, got", axis)
	}
	if err := mol.UpdateAxis([]int{}); err == nil {
		Te.Error("Expected an error for an empty subset")
	}
}
