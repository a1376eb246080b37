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

// Package font wraps a parsed outline.Font with the identity and
// metadata a glyph-serving pipeline needs: a stable font-id, family and
// style information (from the name table, OS/2, or the file name as a
// fallback), and the set of 256-code-point blocks it can render.
package font

import (
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// Metadata describes a font variant the way a web map style would
// reference it: a family name plus the weight/width/italic axis values
// that distinguish this file from its siblings.
type Metadata struct {
	Family string
	Style  string // e.g. "Regular", "Bold Italic"
	Weight int    // 100..900
	Width  int    // 1..9
	Italic bool
}

var weightNames = []struct {
	name  string
	value int
}{
	{"thin", 100},
	{"extralight", 200}, {"ultralight", 200},
	{"light", 300},
	{"regular", 400}, {"normal", 400}, {"book", 400},
	{"medium", 500},
	{"semibold", 600}, {"demibold", 600},
	{"bold", 700},
	{"extrabold", 800}, {"ultrabold", 800},
	{"black", 900}, {"heavy", 900},
}

var widthNames = []struct {
	name  string
	value int
}{
	{"ultracondensed", 1},
	{"extracondensed", 2},
	{"condensed", 3},
	{"semicondensed", 4},
	{"normal", 5},
	{"semiexpanded", 6},
	{"expanded", 7},
	{"extraexpanded", 8},
	{"ultraexpanded", 9},
}

// weightName returns the canonical name for the nearest named weight to
// w, for use in derived style strings.
func weightName(w int) string {
	best := weightNames[0]
	bestDist := abs(w - best.value)
	for _, wn := range weightNames[1:] {
		if d := abs(w - wn.value); d < bestDist {
			best, bestDist = wn, d
		}
	}
	return titleCaser.String(best.name)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// metadataFromFileName derives Metadata heuristically from a font file's
// base name, for use when the name table is missing or incomplete. Tokens
// are split on whitespace, underscores and dashes; recognised weight,
// width and italic/oblique tokens are consumed, everything else is
// joined back together to form the family name.
func metadataFromFileName(path string) Metadata {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	tokens := strings.FieldsFunc(base, func(r rune) bool {
		return r == ' ' || r == '_' || r == '-'
	})

	md := Metadata{Weight: 400, Width: 5, Style: "Regular"}
	var familyTokens []string
	var styleTokens []string

	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		switch lower {
		case "italic", "oblique":
			md.Italic = true
			styleTokens = append(styleTokens, titleCaser.String(lower))
			continue
		}
		if w, ok := lookupWeight(lower); ok {
			md.Weight = w
			styleTokens = append(styleTokens, weightName(w))
			continue
		}
		if w, ok := lookupWidth(lower); ok {
			md.Width = w
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 100 && n <= 900 {
			md.Weight = n
			styleTokens = append(styleTokens, weightName(n))
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil && n >= 1 && n <= 9 {
			md.Width = n
			continue
		}
		familyTokens = append(familyTokens, tok)
	}

	md.Family = strings.Join(familyTokens, " ")
	if md.Family == "" {
		md.Family = base
	}
	if len(styleTokens) > 0 {
		md.Style = strings.Join(styleTokens, " ")
	}
	return md
}

func lookupWeight(lower string) (int, bool) {
	for _, wn := range weightNames {
		if wn.name == lower {
			return wn.value, true
		}
	}
	return 0, false
}

func lookupWidth(lower string) (int, bool) {
	for _, wn := range widthNames {
		if wn.name == lower {
			return wn.value, true
		}
	}
	return 0, false
}
