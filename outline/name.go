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
	"encoding/binary"
	"unicode/utf16"
)

// Names holds the subset of the sfnt "name" table this pipeline reads:
// family and style strings, preferring the typographic (16/17) entries
// over the legacy (1/2) ones when both are present, the way font tooling
// generally does.
type Names struct {
	Family    string
	Subfamily string
	FullName  string
}

const (
	nameIDFamily       = 1
	nameIDSubfamily    = 2
	nameIDFullName     = 4
	nameIDTypoFamily    = 16
	nameIDTypoSubfamily = 17

	platformWindows     = 3
	encodingUnicodeBMP  = 1
	platformMac         = 1
)

type nameRecord struct {
	platformID, encodingID, languageID, nameID uint16
	offset, length                             uint16
}

// parseNames decodes the "name" table, returning nil if the table is too
// short to contain a valid header.
func parseNames(data []byte) *Names {
	if len(data) < 6 {
		return nil
	}
	count := int(binary.BigEndian.Uint16(data[2:4]))
	storageOffset := int(binary.BigEndian.Uint16(data[4:6]))
	if len(data) < 6+count*12 {
		return nil
	}

	records := make([]nameRecord, count)
	for i := 0; i < count; i++ {
		off := 6 + i*12
		records[i] = nameRecord{
			platformID: binary.BigEndian.Uint16(data[off : off+2]),
			encodingID: binary.BigEndian.Uint16(data[off+2 : off+4]),
			languageID: binary.BigEndian.Uint16(data[off+4 : off+6]),
			nameID:     binary.BigEndian.Uint16(data[off+6 : off+8]),
			length:     binary.BigEndian.Uint16(data[off+8 : off+10]),
			offset:     binary.BigEndian.Uint16(data[off+10 : off+12]),
		}
	}

	decode := func(id uint16) string {
		var winVal, macVal string
		for _, rec := range records {
			if rec.nameID != id {
				continue
			}
			start := storageOffset + int(rec.offset)
			end := start + int(rec.length)
			if start < 0 || end > len(data) || start > end {
				continue
			}
			raw := data[start:end]
			switch rec.platformID {
			case platformWindows:
				if rec.encodingID == encodingUnicodeBMP && winVal == "" {
					winVal = decodeUTF16BE(raw)
				}
			case platformMac:
				if macVal == "" {
					macVal = string(raw)
				}
			}
		}
		if winVal != "" {
			return winVal
		}
		return macVal
	}

	n := &Names{
		Family:    decode(nameIDFamily),
		Subfamily: decode(nameIDSubfamily),
		FullName:  decode(nameIDFullName),
	}
	if typoFamily := decode(nameIDTypoFamily); typoFamily != "" {
		n.Family = typoFamily
	}
	if typoSub := decode(nameIDTypoSubfamily); typoSub != "" {
		n.Subfamily = typoSub
	}
	return n
}

func decodeUTF16BE(raw []byte) string {
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	units := make([]uint16, len(raw)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(raw[2*i : 2*i+2])
	}
	return string(utf16.Decode(units))
}
