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

import (
	"github.com/versatiles-org/versatiles-glyphs-go/glyph"
	"github.com/versatiles-org/versatiles-glyphs-go/header"
)

// cffSource implements glyphSource for CFF-outline ("PostScript flavored")
// OpenType fonts. Only the pieces needed to turn a glyph index into a
// Type 2 charstring are read: the CharStrings INDEX, the top-level
// Private DICT and its local subroutines, and the Global Subr INDEX.
// CID-keyed CFF fonts (FDArray/FDSelect) are not supported: this pipeline
// renders by glyph index reached through a cmap lookup, which CID fonts
// do not expose directly, so there is no code path that would exercise
// them.
type cffSource struct {
	charStrings [][]byte
	gsubrs      [][]byte
	lsubrs      [][]byte
	gbias       int
	lbias       int
}

func newCFFSource(data []byte) (*cffSource, error) {
	if len(data) < 4 {
		return nil, &header.ErrInvalid{Reason: "CFF table too short"}
	}
	hdrSize := int(data[2])
	if hdrSize > len(data) {
		return nil, &header.ErrInvalid{Reason: "CFF header too long"}
	}
	pos := hdrSize

	_, pos, err := readCFFIndex(data, pos) // Name INDEX
	if err != nil {
		return nil, err
	}
	topDicts, pos, err := readCFFIndex(data, pos) // Top DICT INDEX
	if err != nil {
		return nil, err
	}
	if len(topDicts) == 0 {
		return nil, &header.ErrInvalid{Reason: "CFF: no top dict"}
	}
	_, pos, err = readCFFIndex(data, pos) // String INDEX
	if err != nil {
		return nil, err
	}
	gsubrs, _, err := readCFFIndex(data, pos) // Global Subr INDEX
	if err != nil {
		return nil, err
	}

	topDict := parseCFFDict(topDicts[0])

	charStringsOffset, ok := topDict.int(17, 0)
	if !ok || charStringsOffset <= 0 || charStringsOffset >= len(data) {
		return nil, &header.ErrInvalid{Reason: "CFF: missing CharStrings"}
	}
	charStrings, _, err := readCFFIndex(data, charStringsOffset)
	if err != nil {
		return nil, err
	}

	var lsubrs [][]byte
	if size, offset, ok := topDict.pair(18); ok && size > 0 {
		if offset < 0 || offset+size > len(data) {
			return nil, &header.ErrInvalid{Reason: "CFF: bad Private DICT"}
		}
		privateDict := parseCFFDict(data[offset : offset+size])
		if subrsOffset, ok := privateDict.int(19, 0); ok && subrsOffset > 0 {
			lsubrs, _, err = readCFFIndex(data, offset+subrsOffset)
			if err != nil {
				return nil, err
			}
		}
	}

	return &cffSource{
		charStrings: charStrings,
		gsubrs:      gsubrs,
		lsubrs:      lsubrs,
		gbias:       subrBias(len(gsubrs)),
		lbias:       subrBias(len(lsubrs)),
	}, nil
}

func (s *cffSource) numGlyphs() int { return len(s.charStrings) }

func (s *cffSource) outline(gid glyph.ID) ([]PathOp, Rect, error) {
	if int(gid) >= len(s.charStrings) {
		return nil, Rect{}, &header.ErrInvalid{Reason: "CFF: glyph index out of range"}
	}
	d := &t2decoder{
		gsubrs: s.gsubrs,
		lsubrs: s.lsubrs,
		gbias:  s.gbias,
		lbias:  s.lbias,
	}
	if err := d.run(s.charStrings[gid]); err != nil {
		return nil, Rect{}, err
	}
	return d.ops, d.bbox(), nil
}

// subrBias is the standard Type 2 charstring subroutine index bias.
func subrBias(n int) int {
	switch {
	case n < 1240:
		return 107
	case n < 33900:
		return 1131
	default:
		return 32768
	}
}

// --- minimal INDEX / DICT reading -----------------------------------

// readCFFIndex reads a CFF INDEX structure starting at pos, returning its
// entries and the position immediately following the structure. An empty
// INDEX (count == 0) occupies only its 2-byte count field.
func readCFFIndex(data []byte, pos int) ([][]byte, int, error) {
	if pos+2 > len(data) {
		return nil, 0, &header.ErrInvalid{Reason: "CFF: truncated INDEX"}
	}
	count := int(be16(data, pos))
	if count == 0 {
		return nil, pos + 2, nil
	}
	offSize := int(data[pos+2])
	if offSize < 1 || offSize > 4 {
		return nil, 0, &header.ErrInvalid{Reason: "CFF: bad INDEX offSize"}
	}
	offsetsStart := pos + 3
	offsets := make([]int, count+1)
	for i := range offsets {
		off := offsetsStart + i*offSize
		if off+offSize > len(data) {
			return nil, 0, &header.ErrInvalid{Reason: "CFF: truncated INDEX offsets"}
		}
		var v int
		for k := 0; k < offSize; k++ {
			v = v<<8 | int(data[off+k])
		}
		offsets[i] = v
	}
	dataStart := offsetsStart + (count+1)*offSize - 1
	entries := make([][]byte, count)
	for i := 0; i < count; i++ {
		start := dataStart + offsets[i]
		end := dataStart + offsets[i+1]
		if start < 0 || end > len(data) || start > end {
			return nil, 0, &header.ErrInvalid{Reason: "CFF: bad INDEX entry"}
		}
		entries[i] = data[start:end]
	}
	return entries, dataStart + offsets[count], nil
}

type cffDict map[int][]float64

func (d cffDict) int(op int, def int) (int, bool) {
	if v, ok := d[op]; ok && len(v) > 0 {
		return int(v[0]), true
	}
	return def, false
}

func (d cffDict) pair(op int) (a, b int, ok bool) {
	v, present := d[op]
	if !present || len(v) < 2 {
		return 0, 0, false
	}
	return int(v[0]), int(v[1]), true
}

// parseCFFDict decodes a CFF DICT's operator/operand pairs. Real-number
// operands (op 30) are parsed far enough to skip them correctly; this
// pipeline never needs a DICT's real-valued entries (FontMatrix and
// similar), only its integer offsets and sizes.
func parseCFFDict(data []byte) cffDict {
	d := make(cffDict)
	var operands []float64
	i := 0
	for i < len(data) {
		b0 := data[i]
		switch {
		case b0 <= 21:
			op := int(b0)
			i++
			if b0 == 12 && i < len(data) {
				op = 0xc00 | int(data[i])
				i++
			}
			d[op] = operands
			operands = nil
		case b0 == 28:
			if i+3 > len(data) {
				return d
			}
			v := int16(data[i+1])<<8 | int16(data[i+2])
			operands = append(operands, float64(v))
			i += 3
		case b0 == 29:
			if i+5 > len(data) {
				return d
			}
			v := int32(data[i+1])<<24 | int32(data[i+2])<<16 | int32(data[i+3])<<8 | int32(data[i+4])
			operands = append(operands, float64(v))
			i += 5
		case b0 == 30:
			i++
			for i < len(data) {
				nib := data[i]
				i++
				if nib&0x0f == 0x0f || nib>>4 == 0x0f {
					break
				}
			}
			operands = append(operands, 0)
		case b0 >= 32 && b0 <= 246:
			operands = append(operands, float64(int(b0)-139))
			i++
		case b0 >= 247 && b0 <= 250:
			if i+2 > len(data) {
				return d
			}
			operands = append(operands, float64((int(b0)-247)*256+int(data[i+1])+108))
			i += 2
		case b0 >= 251 && b0 <= 254:
			if i+2 > len(data) {
				return d
			}
			operands = append(operands, float64(-(int(b0)-251)*256-int(data[i+1])-108))
			i += 2
		default:
			i++
		}
	}
	return d
}
