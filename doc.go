/*
 * doc.go, part of gonics.
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

/*
Package nics puts molecules in a canonical frame for NICS (nucleus-independent
chemical shift) aromaticity calculations, and reads the quantities such
calculations produce.

The geometric core takes the atoms of a (close to) planar molecule, finds a
representative plane normal by averaging the sign-folded normals of every
3-atom subset, and rigidly moves the molecule so that normal lies on the z
axis and the centroid on the origin. With the ring in the xy plane, NICS
probes can be placed at fixed heights above the ring and the resulting
shielding scan read back with the functions in files.go.

The v3 subpackage holds the coordinate containers, the spectro subpackage
aggregates per-vibrational-mode data from frequency/Raman logs, and nicsplot
draws scan profiles.
*/
package nics
