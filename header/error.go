// versatiles-glyphs-go - renders TrueType/OpenType fonts to SDF glyph tiles
// Copyright (C) 2021  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package header reads the table directory of TrueType and OpenType font
// files.
// https://docs.microsoft.com/en-us/typography/opentype/spec/otff#table-directory
package header

import "fmt"

// ErrMissing indicates that a required table is missing from a TrueType or
// OpenType font file.
type ErrMissing struct {
	TableName string
}

func (err *ErrMissing) Error() string {
	return "sfnt: missing " + err.TableName + " table"
}

// IsMissing returns true, if err indicates a missing sfnt table.
func IsMissing(err error) bool {
	_, missing := err.(*ErrMissing)
	return missing
}

// ErrInvalid indicates that a font file is structurally broken in a way
// that prevents glyph rendering: a bad table directory, an out-of-range
// offset, or a truncated or malformed table.
type ErrInvalid struct {
	Reason string
}

func (err *ErrInvalid) Error() string {
	return fmt.Sprintf("sfnt: invalid font: %s", err.Reason)
}

// ErrUnsupported indicates a format this package does not decode (e.g.
// an unrecognised scaler type or cmap subtable format).
type ErrUnsupported struct {
	Feature string
}

func (err *ErrUnsupported) Error() string {
	return fmt.Sprintf("sfnt: unsupported: %s", err.Feature)
}
