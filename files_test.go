/*
 * files_test.go, part of gonics.
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
	"bytes"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestXYZFileRead(Te *testing.T) {
	mol, err := XYZFileRead("test/benzene.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != 12 || mol.Name() != "benzene" {
		Te.Error("Wrong molecule read:", mol)
	}
	if mol.Atom(0) != "C" || mol.Atom(11) != "H" {
		Te.Error("Wrong atom symbols:", mol.Atom(0), mol.Atom(11))
	}
	if math.Abs(mol.Coords().At(0, 0)-1.396) > tol {
		Te.Error("Wrong first coordinate:", mol.Coords().At(0, 0))
	}
	//benzene is planar in the xy plane, its consensus axis is z.
	if err := mol.UpdateGeometry(); err != nil {
		Te.Fatal(err)
	}
	axis, err := mol.MainAxis()
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println("benzene axis:", axis)
	if math.Abs(axis.At(0, 2)-1) > 1e-6 {
		Te.Error("Benzene axis should be z, got", axis)
	}
}

func TestXYZFileReadGz(Te *testing.T) {
	mol, err := XYZFileRead("test/benzene.xyz.gz")
	if err != nil {
		Te.Fatal(err)
	}
	plain, err := XYZFileRead("test/benzene.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Len() != plain.Len() {
		Te.Error("Compressed and plain reads disagree")
	}
	for i := 0; i < mol.Len(); i++ {
		for j := 0; j < 3; j++ {
			if mol.Coords().At(i, j) != plain.Coords().At(i, j) {
				Te.Error("Compressed and plain coordinates differ at", i, j)
			}
		}
	}
}

func TestXYZRoundTrip(Te *testing.T) {
	mol, err := XYZFileRead("test/benzene.xyz")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := XYZWrite(&buf, mol); err != nil {
		Te.Fatal(err)
	}
	again, err := XYZRead(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if again.Len() != mol.Len() || again.Name() != mol.Name() {
		Te.Error("Round trip changed the molecule:", again)
	}
	for i := 0; i < mol.Len(); i++ {
		if again.Atom(i) != mol.Atom(i) {
			Te.Error("Round trip changed atom", i)
		}
		for j := 0; j < 3; j++ {
			if math.Abs(again.Coords().At(i, j)-mol.Coords().At(i, j)) > 1e-6 {
				Te.Error("Round trip changed coordinate", i, j)
			}
		}
	}
}

func TestXYZReadBad(Te *testing.T) {
	if _, err := XYZRead(strings.NewReader("not a number\ncomment\n")); err == nil {
		Te.Error("Expected an error for a malformed count line")
	}
	if _, err := XYZRead(strings.NewReader("2\ncomment\nC 0.0 0.0 0.0\nC 1.0 bad 0.0\n")); err == nil {
		Te.Error("Expected an error for a malformed coordinate")
	}
}

func TestGaussianFileRead(Te *testing.T) {
	mol, err := GaussianFileRead("test/benzene-nics.log")
	if err != nil {
		Te.Fatal(err)
	}
	//6 carbons plus the 2 NICS probes
	if mol.Len() != 8 {
		Te.Fatal("Expected 8 centers, got", mol.Len())
	}
	if mol.Atom(6) != "Bq" || mol.Atom(7) != "Bq" {
		Te.Error("The probes should be ghost atoms:", mol.Atom(6), mol.Atom(7))
	}
	if math.Abs(mol.Coords().At(7, 2)-2.0) > tol {
		Te.Error("Wrong probe height:", mol.Coords().At(7, 2))
	}
}

func TestShieldings(Te *testing.T) {
	nics, err := ShieldingsFileRead("test/benzene-nics.log")
	if err != nil {
		Te.Fatal(err)
	}
	//only the Bq lines count, and the sign is flipped
	if len(nics) != 2 {
		Te.Fatal("Expected 2 NICS values, got", len(nics))
	}
	if math.Abs(nics[0]+10.2168) > tol || math.Abs(nics[1]+4.1352) > tol {
		Te.Error("Wrong NICS values:", nics)
	}
}

func TestGaussianReadNoMolecule(Te *testing.T) {
	if _, err := GaussianRead(strings.NewReader("this is not a log\n")); err == nil {
		Te.Error("Expected an error for a stream with no molecule specification")
	}
}
