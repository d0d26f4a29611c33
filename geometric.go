/*
 * geometric.go, part of gonics.
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

	v3 "github.com/mpoblete/gonics/v3"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Cos returns the cosine between the vectors v1 and v2, clamped to [-1,1]
//so rounding in the dot product can never push it out of the arccos domain.
//It panics on zero-norm input, as the angle is then undefined.
func Cos(v1, v2 *v3.Matrix) float64 {
	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 <= appzero || n2 <= appzero {
		panic(ErrZeroVector)
	}
	argument := v1.Dot(v2) / (n1 * n2)
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	return argument
}

//Angle returns the angle in radians between the vectors v1 and v2,
//in the range [0,pi]. It panics on zero-norm input.
func Angle(v1, v2 *v3.Matrix) float64 {
	angle := math.Acos(Cos(v1, v2))
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//NormalFromPoints returns the unit vector normal to the plane defined by the
//points a, b and c, i.e. unit((b-a)x(c-a)). A collinear triple has no defined
//normal and yields an error from the normalization.
func NormalFromPoints(a, b, c *v3.Matrix) (*v3.Matrix, error) {
	ab := v3.Zeros(1)
	ac := v3.Zeros(1)
	ab.Sub(b, a)
	ac.Sub(c, a)
	return NormalFromVectors(ab, ac)
}

//NormalFromVectors returns the unit vector normal to the plane defined by the
//vectors u and v, i.e. unit(uxv). Parallel u and v yield an error.
func NormalFromVectors(u, v *v3.Matrix) (*v3.Matrix, error) {
	dir := v3.Zeros(1)
	dir.Cross(u, v)
	normal := v3.Zeros(1)
	if err := normal.Unit(dir); err != nil {
		return nil, errDecorate(err, "NormalFromVectors")
	}
	return normal, nil
}

//ConsensusAxis returns the undirected unit axis that best represents the
//normal of the possibly non-planar set of points in coords, restricted to the
//vectors in indexes, or to all vectors if indexes is nil. It takes the normal
//of every distinct 3-element subset of the index set, folds its sign by taking
//the component-wise absolute value (a normal and its antiparallel twin are the
//same plane, the sign is an artifact of point ordering) and averages. The
//returned axis therefore has non-negative components and carries no
//orientation, only direction. Triples whose cross product norm is below
//numerical zero (collinear points) are skipped rather than allowed to poison
//the average. The cost is O(n^3) in the number of indexes, which is fine
//for the tens of atoms this library deals with.
func ConsensusAxis(coords *v3.Matrix, indexes []int) (*v3.Matrix, error) {
	if coords == nil {
		return nil, CError{string(ErrNilData), []string{"ConsensusAxis"}}
	}
	tot := coords.NVecs()
	if indexes == nil {
		indexes = make([]int, tot)
		for i := range indexes {
			indexes[i] = i
		}
	}
	if len(indexes) < 3 {
		return nil, CError{string(ErrNotEnoughPoints), []string{"ConsensusAxis"}}
	}
	for _, v := range indexes {
		if v < 0 || v >= tot {
			return nil, CError{fmt.Sprintf("Index %d out of range for %d points", v, tot), []string{"ConsensusAxis"}}
		}
	}
	sum := v3.Zeros(1)
	ab := v3.Zeros(1)
	ac := v3.Zeros(1)
	cross := v3.Zeros(1)
	var sampled int
	for i := 0; i < len(indexes)-2; i++ {
		for j := i + 1; j < len(indexes)-1; j++ {
			for k := j + 1; k < len(indexes); k++ {
				a := coords.VecView(indexes[i])
				b := coords.VecView(indexes[j])
				c := coords.VecView(indexes[k])
				ab.Sub(b, a)
				ac.Sub(c, a)
				cross.Cross(ab, ac)
				norm := cross.Norm()
				if norm <= appzero {
					continue //collinear triple, no normal to contribute
				}
				for l := 0; l < 3; l++ {
					sum.Set(0, l, sum.At(0, l)+math.Abs(cross.At(0, l))/norm)
				}
				sampled++
			}
		}
	}
	if sampled == 0 {
		return nil, CError{"All 3-point subsets are collinear, the point set defines no plane", []string{"ConsensusAxis"}}
	}
	axis := v3.Zeros(1)
	sum.Scale(1.0/float64(sampled), sum)
	if err := axis.Unit(sum); err != nil {
		return nil, errDecorate(err, "ConsensusAxis")
	}
	return axis, nil
}

//RotationAbout builds the 4x4 homogeneous transform for a rotation by angle
//radians about the axis with the given direction passing through pivot, using
//the axis-angle (Rodrigues) construction. The direction needs not be
//normalized. A nil pivot means the axis goes through the origin. A zero-norm
//direction is an error, except in the quiescent case of a zero angle, where
//no rotation direction is needed and the identity transform is returned.
func RotationAbout(angle float64, direction, pivot *v3.Matrix) (*mat.Dense, error) {
	if direction == nil || direction.Norm() <= appzero {
		if math.Abs(angle) <= appzero {
			return identityAffine(), nil
		}
		return nil, CError{string(ErrZeroVector), []string{"RotationAbout"}}
	}
	d := v3.Zeros(1)
	if err := d.Unit(direction); err != nil {
		return nil, errDecorate(err, "RotationAbout")
	}
	sin := math.Sin(angle)
	cos := math.Cos(angle)
	omc := 1.0 - cos
	ux := d.At(0, 0)
	uy := d.At(0, 1)
	uz := d.At(0, 2)
	//R = cos*I + (1-cos)*ddT + sin*[d]x
	operator := []float64{
		cos + ux*ux*omc, ux*uy*omc - uz*sin, ux*uz*omc + uy*sin, 0,
		uy*ux*omc + uz*sin, cos + uy*uy*omc, uy*uz*omc - ux*sin, 0,
		uz*ux*omc - uy*sin, uz*uy*omc + ux*sin, cos + uz*uz*omc, 0,
		0, 0, 0, 1}
	M := mat.NewDense(4, 4, operator)
	if pivot != nil {
		//the pivot must be a fixed point of the transform: t = p - R*p
		px := pivot.At(0, 0)
		py := pivot.At(0, 1)
		pz := pivot.At(0, 2)
		M.Set(0, 3, px-(M.At(0, 0)*px+M.At(0, 1)*py+M.At(0, 2)*pz))
		M.Set(1, 3, py-(M.At(1, 0)*px+M.At(1, 1)*py+M.At(1, 2)*pz))
		M.Set(2, 3, pz-(M.At(2, 0)*px+M.At(2, 1)*py+M.At(2, 2)*pz))
	}
	return M, nil
}

//ApplyHomogeneous applies the 4x4 homogeneous transform M to every point of
//coords: each row is homogenized with a unit fourth coordinate, transformed,
//and the fourth coordinate dropped. It returns the transformed set, leaving
//coords untouched.
func ApplyHomogeneous(M *mat.Dense, coords *v3.Matrix) (*v3.Matrix, error) {
	if M == nil || coords == nil {
		return nil, CError{string(ErrNilData), []string{"ApplyHomogeneous"}}
	}
	if r, c := M.Dims(); r != 4 || c != 4 {
		return nil, CError{fmt.Sprintf("Transform must be 4x4, got %dx%d", r, c), []string{"ApplyHomogeneous"}}
	}
	n := coords.NVecs()
	homog := mat.NewDense(n, 4, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			homog.Set(i, j, coords.At(i, j))
		}
		homog.Set(i, 3, 1.0)
	}
	//M*(X^T) transposed is X*M^T, which keeps the points as rows.
	out := mat.NewDense(n, 4, nil)
	out.Mul(homog, M.T())
	ret := v3.Zeros(n)
	ret.Copy(out.Slice(0, n, 0, 3))
	return ret, nil
}

func identityAffine() *mat.Dense {
	M := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		M.Set(i, i, 1.0)
	}
	return M
}
