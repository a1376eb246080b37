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

package font

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lowerCaser = cases.Lower(language.Und)

// slug derives the deterministic font-id used to route glyphs on the
// client: a lowercase, underscore-joined identifier built from the
// family name followed by the style modifiers that differ from the
// family's default, in the order width name, "italic", numeric weight
// (e.g. "noto_sans_condensed_italic_700"). A variant with no modifiers
// (weight 400, width 5, upright) gets "regular", e.g. "noto_sans_regular".
func slug(md Metadata) string {
	var parts []string
	parts = append(parts, fields(md.Family)...)
	familyLen := len(parts)

	if md.Width != 5 {
		name := widthNameFor(md.Width)
		parts = append(parts, fields(name)...)
	}
	if md.Italic {
		parts = append(parts, "italic")
	}
	if md.Weight != 400 {
		parts = append(parts, strconv.Itoa(md.Weight))
	}
	if len(parts) == familyLen {
		parts = append(parts, "regular")
	}

	if len(parts) == 0 {
		parts = []string{"font"}
	}
	return strings.Join(parts, "_")
}

func widthNameFor(w int) string {
	for _, wn := range widthNames {
		if wn.value == w {
			return wn.name
		}
	}
	return strconv.Itoa(w)
}

// fields splits s on whitespace and punctuation, lowercases each token,
// and drops empty tokens.
func fields(s string) []string {
	raw := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if tok == "" {
			continue
		}
		out = append(out, lowerCaser.String(tok))
	}
	return out
}
