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

// Package outline reads the glyph outlines, metrics and identifying
// metadata of a TrueType or OpenType font, and flattens curved contours
// into line segments suitable for distance-field rendering.
package outline

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/versatiles-org/versatiles-glyphs-go/glyph"
	"github.com/versatiles-org/versatiles-glyphs-go/header"
)

// Font is a parsed TrueType or OpenType font, reduced to the tables this
// pipeline needs: cmap lookup, glyph outlines and a handful of metadata
// fields. Font is immutable once returned from Load.
type Font struct {
	UnitsPerEm uint16

	Ascent  int16
	Descent int16

	Weight int // 100..900, matches the OS/2 usWeightClass scale
	Width  int // 1..9, matches the OS/2 usWidthClass scale
	Italic bool

	Names *Names

	cmap   cmapTable
	glyphs glyphSource
	hmtx   []longHorMetric
}

type longHorMetric struct {
	AdvanceWidth uint16
	Lsb          int16
}

// glyphSource abstracts over the two outline formats a sfnt file may use.
type glyphSource interface {
	outline(gid glyph.ID) ([]PathOp, Rect, error)
	numGlyphs() int
}

// Load parses a TrueType or OpenType font from data.
func Load(data []byte) (*Font, error) {
	r := bytes.NewReader(data)
	toc, err := header.Read(r)
	if err != nil {
		return nil, err
	}

	headTable, err := toc.ReadTableBytes(r, "head")
	if err != nil {
		return nil, err
	}
	if len(headTable) < 54 {
		return nil, &header.ErrInvalid{Reason: "head table too short"}
	}
	unitsPerEm := binary.BigEndian.Uint16(headTable[18:20])
	indexToLocFormat := int16(binary.BigEndian.Uint16(headTable[50:52]))

	hheaTable, err := toc.ReadTableBytes(r, "hhea")
	if err != nil {
		return nil, err
	}
	if len(hheaTable) < 36 {
		return nil, &header.ErrInvalid{Reason: "hhea table too short"}
	}
	ascent := int16(binary.BigEndian.Uint16(hheaTable[4:6]))
	descent := int16(binary.BigEndian.Uint16(hheaTable[6:8]))
	numHMetrics := int(binary.BigEndian.Uint16(hheaTable[34:36]))

	maxpTable, err := toc.ReadTableBytes(r, "maxp")
	if err != nil {
		return nil, err
	}
	if len(maxpTable) < 6 {
		return nil, &header.ErrInvalid{Reason: "maxp table too short"}
	}
	numGlyphs := int(binary.BigEndian.Uint16(maxpTable[4:6]))

	hmtxTable, err := toc.ReadTableBytes(r, "hmtx")
	if err != nil {
		return nil, err
	}
	hmtx, err := readHmtx(hmtxTable, numHMetrics, numGlyphs)
	if err != nil {
		return nil, err
	}

	f := &Font{
		UnitsPerEm: unitsPerEm,
		Ascent:     ascent,
		Descent:    descent,
		Weight:     400,
		Width:      5,
		hmtx:       hmtx,
	}

	if nameTable, err := toc.ReadTableBytes(r, "name"); err == nil {
		f.Names = parseNames(nameTable)
	}

	if os2Table, err := toc.ReadTableBytes(r, "OS/2"); err == nil {
		parseOS2(os2Table, f)
	}

	cmapTableBytes, err := toc.ReadTableBytes(r, "cmap")
	if err != nil {
		return nil, err
	}
	f.cmap, err = parseCmap(cmapTableBytes)
	if err != nil {
		return nil, err
	}

	switch {
	case toc.Has("glyf", "loca"):
		locaTable, err := toc.ReadTableBytes(r, "loca")
		if err != nil {
			return nil, err
		}
		glyfTable, err := toc.ReadTableBytes(r, "glyf")
		if err != nil {
			return nil, err
		}
		f.glyphs, err = newGlyfSource(glyfTable, locaTable, indexToLocFormat, numGlyphs)
		if err != nil {
			return nil, err
		}
	case toc.Has("CFF "):
		cffTable, err := toc.ReadTableBytes(r, "CFF ")
		if err != nil {
			return nil, err
		}
		f.glyphs, err = newCFFSource(cffTable)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &header.ErrMissing{TableName: "glyf/CFF"}
	}

	return f, nil
}

func readHmtx(data []byte, numHMetrics, numGlyphs int) ([]longHorMetric, error) {
	if numHMetrics == 0 || len(data) < numHMetrics*4 {
		return nil, &header.ErrInvalid{Reason: "hmtx table too short"}
	}
	out := make([]longHorMetric, numGlyphs)
	var last longHorMetric
	for i := 0; i < numGlyphs; i++ {
		if i < numHMetrics {
			off := i * 4
			last = longHorMetric{
				AdvanceWidth: binary.BigEndian.Uint16(data[off : off+2]),
				Lsb:          int16(binary.BigEndian.Uint16(data[off+2 : off+4])),
			}
		}
		out[i] = last
	}
	return out, nil
}

// GID looks up the glyph index for a Unicode code point. It returns 0
// (the .notdef glyph) if the font has no mapping for r.
func (f *Font) GID(r rune) glyph.ID {
	return f.cmap.lookup(r)
}

// CodePoints returns every code point the font's cmap subtable covers, in
// ascending order. Some of these may map to glyph 0 (.notdef) and are
// filtered out by callers that require a real outline.
func (f *Font) CodePoints() []rune {
	return f.cmap.codePoints()
}

// NumGlyphs returns the number of glyphs defined in the font.
func (f *Font) NumGlyphs() int {
	return f.glyphs.numGlyphs()
}

// AdvanceWidth returns the horizontal advance of gid, in font design units.
func (f *Font) AdvanceWidth(gid glyph.ID) int16 {
	if int(gid) >= len(f.hmtx) {
		if len(f.hmtx) == 0 {
			return 0
		}
		return int16(f.hmtx[len(f.hmtx)-1].AdvanceWidth)
	}
	return int16(f.hmtx[gid].AdvanceWidth)
}

// GlyphOutline returns the path of gid in font design units, along with
// its bounding box. ok is false for glyphs with no contours (e.g. space).
func (f *Font) GlyphOutline(gid glyph.ID) (path []PathOp, box Rect, ok bool, err error) {
	if int(gid) >= f.glyphs.numGlyphs() {
		return nil, Rect{}, false, fmt.Errorf("outline: glyph index %d out of range", gid)
	}
	ops, box, err := f.glyphs.outline(gid)
	if err != nil {
		return nil, Rect{}, false, err
	}
	if len(ops) == 0 {
		return nil, Rect{}, false, nil
	}
	return ops, box, true, nil
}
