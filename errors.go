/*
 * errors.go, part of gonics.
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

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows adding and retrieving info from the error without
// changing its type or wrapping it around something else. The decoration slice
// should contain the functions in the calling stack, plus, for each function,
// any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError (Concrete Error) is the concrete type implementing the Error interface
// for this package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of strings of the error,
// and returns the resulting slice. If dec is empty it just returns the current
// decoration.
func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. It will panic if used on an error
// that does not implement the interface.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics in "fundamental" functions, where
// a misuse most likely means the calling program is wrong and should crash.
// It satisfies the error interface, but for recoverable conditions use
// CError instead.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData         = PanicMsg("gonics: Nil data given")
	ErrZeroVector      = PanicMsg("gonics: Vector of zero norm given to a function expecting a direction")
	ErrNotEnoughPoints = PanicMsg("gonics: At least 3 points are needed to define a plane")
)

var _ Error = CError{} //CError must implement Error
