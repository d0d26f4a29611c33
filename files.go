/*
 * files.go, part of gonics.
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
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/mpoblete/gonics/v3"
)

//Gaussian logs and xyz files are often kept compressed, they are mostly
//air anyway. The *FileRead functions pick a decompressor by suffix so the
//caller does not need to care.

//zstd.Decoder has a Close with no return, so it can't be an io.ReadCloser
//by itself.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//closes the decompressor and then the underlying file.
type fileReader struct {
	io.ReadCloser
	f *os.File
}

func (r fileReader) Close() error {
	r.ReadCloser.Close()
	return r.f.Close()
}

func openMaybeCompressed(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{"Can't open zstd stream: " + err.Error(), []string{"openMaybeCompressed"}}
		}
		return fileReader{zstdql{d.Close, d}, f}, nil
	case strings.HasSuffix(name, ".gz"):
		d, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, CError{"Can't open gzip stream: " + err.Error(), []string{"openMaybeCompressed"}}
		}
		return fileReader{d, f}, nil
	}
	return f, nil
}

//XYZRead reads the first geometry of an xyz-formatted stream (atom count,
//comment line, then one "Symbol x y z" line per atom) and returns it as a
//Structure named after the comment line, or "system" if that line is blank.
func XYZRead(xyz io.Reader) (*Structure, error) {
	r := bufio.NewReader(xyz)
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, CError{"Failed to read the atom count line: " + err.Error(), []string{"XYZRead"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, CError{"Ill-formatted XYZ, the first line should be the atom count: " + err.Error(), []string{"XYZRead"}}
	}
	name, err := r.ReadString('\n')
	if err != nil {
		return nil, CError{"Ill-formatted XYZ, missing comment line", []string{"XYZRead"}}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "system"
	}
	atoms := make([]string, natoms)
	data := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, CError{fmt.Sprintf("Failed to read atom line %d: %s", i, err.Error()), []string{"XYZRead"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, CError{fmt.Sprintf("Atom line %d ill-formed: %q", i, line), []string{"XYZRead"}}
		}
		atoms[i] = fields[0]
		for j := 0; j < 3; j++ {
			data[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, CError{fmt.Sprintf("Can't parse coordinate %d of atom %d: %s", j, i, err.Error()), []string{"XYZRead"}}
			}
		}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol, err := NewStructure(atoms, coords, name)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	return mol, nil
}

//XYZFileRead reads an xyz file, which may be gzip- or zstd-compressed.
func XYZFileRead(xyzname string) (*Structure, error) {
	f, err := openMaybeCompressed(xyzname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := XYZRead(f)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+xyzname)
	}
	return mol, nil
}

//XYZWrite writes the Structure mol to out in xyz format, using the
//Structure's name as the comment line.
func XYZWrite(out io.Writer, mol *Structure) error {
	if mol == nil {
		return CError{string(ErrNilData), []string{"XYZWrite"}}
	}
	var err error
	if _, err = fmt.Fprintf(out, "%-4d\n%s\n", mol.Len(), mol.Name()); err != nil {
		return CError{err.Error(), []string{"XYZWrite"}}
	}
	coords := mol.Coords()
	for i := 0; i < mol.Len(); i++ {
		_, err = fmt.Fprintf(out, "%-2s  %12.6f  %12.6f  %12.6f\n", mol.Atom(i), coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
		if err != nil {
			return CError{err.Error(), []string{"XYZWrite"}}
		}
	}
	return nil
}

//XYZFileWrite writes the Structure mol to the file xyzname in xyz format.
//If the file exists it will be overwritten.
func XYZFileWrite(xyzname string, mol *Structure) error {
	out, err := os.Create(xyzname)
	if err != nil {
		return CError{err.Error(), []string{"XYZFileWrite"}}
	}
	defer out.Close()
	if err := XYZWrite(out, mol); err != nil {
		return errDecorate(err, "XYZFileWrite "+xyzname)
	}
	return nil
}

//GaussianRead extracts the molecule specification from a Gaussian log
//stream: the block of "Symbol x y z" lines that follows the line containing
//"Charge = ", up to the first blank line. This is the geometry the
//calculation started from, which is what a NICS job wants, the probes are
//placed relative to it.
func GaussianRead(in io.Reader) (*Structure, error) {
	scanner := bufio.NewScanner(in)
	var atoms []string
	var data []float64
	reading := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "Charge = ") {
			reading = true
			continue
		}
		if !reading {
			continue
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, CError{fmt.Sprintf("Ill-formed molecule specification line: %q", line), []string{"GaussianRead"}}
		}
		atoms = append(atoms, fields[0])
		for j := 1; j < 4; j++ {
			val, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, CError{fmt.Sprintf("Can't parse coordinate in line %q: %s", line, err.Error()), []string{"GaussianRead"}}
			}
			data = append(data, val)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{err.Error(), []string{"GaussianRead"}}
	}
	if len(atoms) == 0 {
		return nil, CError{"No molecule specification found, is this a Gaussian log?", []string{"GaussianRead"}}
	}
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, errDecorate(err, "GaussianRead")
	}
	mol, err := NewStructure(atoms, coords)
	if err != nil {
		return nil, errDecorate(err, "GaussianRead")
	}
	return mol, nil
}

//GaussianFileRead reads the molecule specification from a Gaussian log file,
//which may be gzip- or zstd-compressed.
func GaussianFileRead(logname string) (*Structure, error) {
	f, err := openMaybeCompressed(logname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := GaussianRead(f)
	if err != nil {
		return nil, errDecorate(err, "GaussianFileRead "+logname)
	}
	return mol, nil
}

//Shieldings reads the isotropic magnetic shieldings of the ghost (Bq) atoms
//from a Gaussian NMR log stream, in order of appearance, with the sign
//flipped: the NICS value at a probe is minus the isotropic shielding there.
func Shieldings(in io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(in)
	var nics []float64
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "Bq   Isotropic") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, CError{fmt.Sprintf("Ill-formed shielding line: %q", line), []string{"Shieldings"}}
		}
		val, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, CError{fmt.Sprintf("Can't parse shielding in line %q: %s", line, err.Error()), []string{"Shieldings"}}
		}
		nics = append(nics, -val)
	}
	if err := scanner.Err(); err != nil {
		return nil, CError{err.Error(), []string{"Shieldings"}}
	}
	return nics, nil
}

//ShieldingsFileRead reads the NICS values from a Gaussian NMR log file,
//which may be gzip- or zstd-compressed.
func ShieldingsFileRead(logname string) ([]float64, error) {
	f, err := openMaybeCompressed(logname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	nics, err := Shieldings(f)
	if err != nil {
		return nil, errDecorate(err, "ShieldingsFileRead "+logname)
	}
	return nics, nil
}
