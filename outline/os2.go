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

package outline

import "encoding/binary"

const (
	fsSelectionItalic = 1 << 0
)

// parseOS2 fills in the weight, width and italic fields of f from the
// "OS/2" table. Versions 0 through 5 share the same layout for the
// fields this pipeline needs (usWeightClass, usWidthClass, fsSelection),
// so no version dispatch is required.
func parseOS2(data []byte, f *Font) {
	if len(data) < 64 {
		return
	}
	weightClass := binary.BigEndian.Uint16(data[4:6])
	widthClass := binary.BigEndian.Uint16(data[6:8])
	fsSelection := binary.BigEndian.Uint16(data[62:64])

	if weightClass >= 1 && weightClass <= 1000 {
		f.Weight = int(weightClass)
	}
	if widthClass >= 1 && widthClass <= 9 {
		f.Width = int(widthClass)
	}
	f.Italic = fsSelection&fsSelectionItalic != 0
}
