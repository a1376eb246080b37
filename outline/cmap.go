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
	"sort"

	"github.com/versatiles-org/versatiles-glyphs-go/glyph"
	"github.com/versatiles-org/versatiles-glyphs-go/header"
)

// cmapTable is a single selected subtable, exposing only the operations
// the rendering pipeline needs: code point to glyph ID, and the set of
// code points it covers.
type cmapTable interface {
	lookup(r rune) glyph.ID
	codePoints() []rune
}

type platformEncoding struct {
	platformID, encodingID uint16
	offset                 uint32
}

// parseCmap decodes the "cmap" table and selects the subtable with the
// best coverage: Windows/Unicode-full (format 12) first, then
// Windows/Unicode-BMP (format 4), then the legacy byte-encoding table
// (format 0) as a last resort.
func parseCmap(data []byte) (cmapTable, error) {
	if len(data) < 4 {
		return nil, &header.ErrInvalid{Reason: "cmap table too short"}
	}
	numTables := int(be16(data, 2))
	if len(data) < 4+numTables*8 {
		return nil, &header.ErrInvalid{Reason: "cmap table too short"}
	}

	var entries []platformEncoding
	for i := 0; i < numTables; i++ {
		off := 4 + i*8
		entries = append(entries, platformEncoding{
			platformID: be16(data, off),
			encodingID: be16(data, off+2),
			offset:     be32(data, off+4),
		})
	}

	rank := func(e platformEncoding) int {
		switch {
		case e.platformID == 3 && e.encodingID == 10:
			return 0 // Windows, UCS-4
		case e.platformID == 0 && e.encodingID >= 4:
			return 0 // Unicode, full repertoire
		case e.platformID == 3 && e.encodingID == 1:
			return 1 // Windows, BMP
		case e.platformID == 0:
			return 1 // Unicode, BMP
		case e.platformID == 1 && e.encodingID == 0:
			return 2 // Macintosh Roman
		default:
			return 3
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return rank(entries[i]) < rank(entries[j]) })

	for _, e := range entries {
		if int(e.offset) >= len(data) {
			continue
		}
		sub := data[e.offset:]
		if len(sub) < 2 {
			continue
		}
		format := be16(sub, 0)
		var table cmapTable
		var err error
		switch format {
		case 0:
			table, err = decodeFormat0(sub)
		case 4:
			table, err = decodeFormat4(sub)
		case 12:
			table, err = decodeFormat12(sub)
		default:
			continue
		}
		if err != nil || table == nil {
			continue
		}
		return table, nil
	}
	return nil, &header.ErrUnsupported{Feature: "cmap subtable format"}
}

func be16(data []byte, off int) uint16 {
	return uint16(data[off])<<8 | uint16(data[off+1])
}

func be32(data []byte, off int) uint32 {
	return uint32(data[off])<<24 | uint32(data[off+1])<<16 | uint32(data[off+2])<<8 | uint32(data[off+3])
}

// format0Table is a "byte encoding table", covering code points 0..255.
type format0Table struct {
	data [256]byte
}

func decodeFormat0(data []byte) (cmapTable, error) {
	if len(data) < 6+256 {
		return nil, &header.ErrInvalid{Reason: "cmap format 0: too short"}
	}
	t := &format0Table{}
	copy(t.data[:], data[6:262])
	return t, nil
}

func (t *format0Table) lookup(r rune) glyph.ID {
	if r < 0 || r > 255 {
		return 0
	}
	return glyph.ID(t.data[r])
}

func (t *format0Table) codePoints() []rune {
	var out []rune
	for c := rune(0); c <= 255; c++ {
		if t.data[c] != 0 {
			out = append(out, c)
		}
	}
	return out
}

// format4Table is a "segment mapping to delta values" subtable, the
// common format for BMP-only TrueType fonts.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type format4Segment struct {
	startCode, endCode uint16
	idDelta            int16
	idRangeOffset      uint16
	idRangeOffsetPos   int // byte offset of idRangeOffset within the subtable
}

type format4Table struct {
	data     []byte
	segments []format4Segment
}

func decodeFormat4(data []byte) (cmapTable, error) {
	if len(data) < 14 {
		return nil, &header.ErrInvalid{Reason: "cmap format 4: too short"}
	}
	segCountX2 := int(be16(data, 6))
	segCount := segCountX2 / 2
	if segCount == 0 {
		return nil, &header.ErrInvalid{Reason: "cmap format 4: no segments"}
	}

	endCodesOff := 14
	startCodesOff := endCodesOff + segCountX2 + 2 // +2 for reservedPad
	idDeltasOff := startCodesOff + segCountX2
	idRangeOffsetsOff := idDeltasOff + segCountX2
	need := idRangeOffsetsOff + segCountX2
	if len(data) < need {
		return nil, &header.ErrInvalid{Reason: "cmap format 4: too short"}
	}

	segs := make([]format4Segment, segCount)
	for i := 0; i < segCount; i++ {
		pos := idRangeOffsetsOff + i*2
		segs[i] = format4Segment{
			endCode:          be16(data, endCodesOff+i*2),
			startCode:        be16(data, startCodesOff+i*2),
			idDelta:          int16(be16(data, idDeltasOff+i*2)),
			idRangeOffset:    be16(data, pos),
			idRangeOffsetPos: pos,
		}
	}
	return &format4Table{data: data, segments: segs}, nil
}

func (t *format4Table) lookup(r rune) glyph.ID {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	c := uint16(r)
	for _, seg := range t.segments {
		if c < seg.startCode || c > seg.endCode {
			continue
		}
		if seg.idRangeOffset == 0 {
			return glyph.ID(uint16(int32(c) + int32(seg.idDelta)))
		}
		glyphIndexPos := seg.idRangeOffsetPos + int(seg.idRangeOffset) + 2*int(c-seg.startCode)
		if glyphIndexPos+2 > len(t.data) {
			return 0
		}
		gid := be16(t.data, glyphIndexPos)
		if gid == 0 {
			return 0
		}
		return glyph.ID(uint16(int32(gid) + int32(seg.idDelta)))
	}
	return 0
}

func (t *format4Table) codePoints() []rune {
	var out []rune
	for _, seg := range t.segments {
		if seg.startCode == 0xFFFF && seg.endCode == 0xFFFF {
			continue // terminator segment
		}
		for c := uint32(seg.startCode); c <= uint32(seg.endCode); c++ {
			if t.lookup(rune(c)) != 0 {
				out = append(out, rune(c))
			}
		}
	}
	return out
}

// format12Table is a "segmented coverage" subtable, used by fonts that
// map code points outside the BMP.
type format12Segment struct {
	startCharCode, endCharCode, startGlyphID uint32
}

type format12Table struct {
	segments []format12Segment
}

func decodeFormat12(data []byte) (cmapTable, error) {
	if len(data) < 16 {
		return nil, &header.ErrInvalid{Reason: "cmap format 12: too short"}
	}
	nSegments := be32(data, 12)
	if nSegments > 1_000_000 || len(data) != 16+int(nSegments)*12 {
		return nil, &header.ErrInvalid{Reason: "cmap format 12: malformed"}
	}
	segs := make([]format12Segment, nSegments)
	for i := uint32(0); i < nSegments; i++ {
		base := 16 + int(i)*12
		segs[i] = format12Segment{
			startCharCode: be32(data, base),
			endCharCode:   be32(data, base+4),
			startGlyphID:  be32(data, base+8),
		}
	}
	return &format12Table{segments: segs}, nil
}

func (t *format12Table) lookup(r rune) glyph.ID {
	c := uint32(r)
	for _, seg := range t.segments {
		if c >= seg.startCharCode && c <= seg.endCharCode {
			return glyph.ID(uint16(seg.startGlyphID + (c - seg.startCharCode)))
		}
	}
	return 0
}

func (t *format12Table) codePoints() []rune {
	var out []rune
	for _, seg := range t.segments {
		for c := seg.startCharCode; c <= seg.endCharCode; c++ {
			out = append(out, rune(c))
			if c == 0x7FFFFFFF { // guard against uint32 overflow
				break
			}
		}
	}
	return out
}
