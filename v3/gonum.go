/*
 * gonum.go, part of gonics.
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

package v3

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//Matrix is the main container, a set of row vectors in 3D space.
//It must be able to implement any gonum interface.
type Matrix struct {
	*mat.Dense
}

func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return &Matrix{A}
}

//NewMatrix creates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	rows := l / cols
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	r := mat.NewDense(rows, cols, data)
	return &Matrix{r}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//VecView returns a view of the ith vector of the matrix in the receiver.
//Changes in the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and
//c columns. Changes in the view are reflected in F and vice-versa.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//SwapVecs swaps the vectors i and j of F.
func (F *Matrix) SwapVecs(i, j int) {
	if i >= F.NVecs() || j >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	for k := 0; k < 3; k++ {
		tmp := F.At(i, k)
		F.Set(i, k, F.At(j, k))
		F.Set(j, k, tmp)
	}
}

//SomeVecs puts in F a matrix containing the vectors of A indexed by clist.
//The rows of F must equal the length of clist. It panics on shape mismatch.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < ac; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SomeVecsSafe is a version of SomeVecs that returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) error {
	var err error
	f := func() { F.SomeVecs(A, clist) }
	err = Maybe(Panicker(f))
	if err != nil {
		err = Error{err.Error(), []string{"SomeVecsSafe"}, true}
	}
	return err
}

//SetVecs puts the vectors of A in the rows of F indexed by clist.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, _ := F.Dims()
	if ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= fr {
			panic(ErrShape)
		}
		for j := 0; j < ac; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

//AddVec adds the row vector vec to each vector of A, putting
//the result in the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		j := A.VecView(i)
		f := F.VecView(i)
		f.Add(j, vec)
	}
}

//SubVec subtracts the row vector vec from each vector of A, putting
//the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	vec2 := Zeros(1)
	vec2.Scale(-1, vec)
	F.AddVec(A, vec2)
}

//Cross puts the cross product of the 3D row vectors a and b in the receiver.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() != 1 || b.NVecs() != 1 || F.NVecs() != 1 {
		panic(ErrNoCrossProduct)
	}
	//I don't think there is a reasonable way to do this with gonum
	//other than element by element.
	F.Set(0, 0, a.At(0, 1)*b.At(0, 2)-a.At(0, 2)*b.At(0, 1))
	F.Set(0, 1, a.At(0, 2)*b.At(0, 0)-a.At(0, 0)*b.At(0, 2))
	F.Set(0, 2, a.At(0, 0)*b.At(0, 1)-a.At(0, 1)*b.At(0, 0))
}

//Dot returns the dot product between the receiver and B, both of which
//must be 1x3 row vectors.
func (F *Matrix) Dot(B *Matrix) float64 {
	if F.NVecs() != 1 || B.NVecs() != 1 {
		panic(ErrVectorRequired)
	}
	var ret float64
	for i := 0; i < 3; i++ {
		ret += F.At(0, i) * B.At(0, i)
	}
	return ret
}

//Norm returns the Euclidean norm of the receiver, which must be a row vector.
func (F *Matrix) Norm() float64 {
	if F.NVecs() != 1 {
		panic(ErrVectorRequired)
	}
	return mat.Norm(F.Dense, 2)
}

//Unit puts in the receiver the unit vector in the direction of A.
//A zero-norm A is a precondition violation and yields an error, never
//a silent division by zero.
func (F *Matrix) Unit(A *Matrix) error {
	norm := A.Norm()
	if norm <= appzero {
		return Error{"Attempted to normalize a vector of zero norm", []string{"Unit"}, true}
	}
	F.Scale(1.0/norm, A)
	return nil
}

//Copy2Slice copies the receiver, which must be a row vector, to
//the given slice, which must have at least 3 elements.
func (F *Matrix) Copy2Slice(dest []float64) {
	if F.NVecs() != 1 || len(dest) < 3 {
		panic(ErrShape)
	}
	for i := 0; i < 3; i++ {
		dest[i] = F.At(0, i)
	}
}

//Errors

//Error is the concrete error type for the package. It implements the
//decorated-error convention used across gonics.
type Error struct {
	message  string
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err Error) Error() string {
	return fmt.Sprintf("%s", err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or can be ignored.
func (err Error) Critical() bool { return err.critical }

//Panicker is a function that can panic, to be wrapped by Maybe.
type Panicker func()

//Maybe runs the given function and recovers any panic into a regular error.
func Maybe(f Panicker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
		}
	}()
	f()
	return
}

//PanicMsg is a message used for panics. It does satisfy the error interface,
//but for recoverable conditions use Error instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("gonics/v3: A Matrix should have 3 columns")
	ErrNoCrossProduct  = PanicMsg("gonics/v3: Invalid matrix for cross product")
	ErrVectorRequired  = PanicMsg("gonics/v3: A 1x3 row vector is required")
	ErrShape           = PanicMsg("gonics/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("gonics/v3: Index out of range")
)
