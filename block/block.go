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

// Package block partitions Unicode code points into the fixed 256-wide
// ranges used as the unit of output for a rendered font.
package block

import (
	"fmt"
	"sort"
)

// Size is the number of code points covered by one block.
const Size = 256

// Range identifies one 256-code-point block.
type Range struct {
	Index int // block index, code points [Index*Size, Index*Size+Size-1]
}

// Start is the first code point covered by r.
func (r Range) Start() rune { return rune(r.Index * Size) }

// End is the last code point covered by r.
func (r Range) End() rune { return rune(r.Index*Size + Size - 1) }

// Name is the file name fragment this range is written under, e.g.
// "0-255".
func (r Range) Name() string {
	return fmt.Sprintf("%d-%d", r.Start(), r.End())
}

// Partition groups codePoints into ascending Ranges, skipping blocks with
// no covered code points. The returned Ranges are in ascending order of
// Index.
func Partition(codePoints []rune) []Range {
	covered := make(map[int]bool)
	for _, r := range codePoints {
		if r < 0 || r > 0xFFFF {
			continue // this pipeline only covers the Basic Multilingual Plane
		}
		covered[int(r)/Size] = true
	}

	var indices []int
	for idx := range covered {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	ranges := make([]Range, len(indices))
	for i, idx := range indices {
		ranges[i] = Range{Index: idx}
	}
	return ranges
}
