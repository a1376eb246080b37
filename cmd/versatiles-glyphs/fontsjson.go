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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fontOverride is one entry of a fonts.json file: a group of input files
// that should share a font-id, with optional metadata overrides.
type fontOverride struct {
	ID     string   `json:"id"`
	Files  []string `json:"files"`
	Style  *string  `json:"style"`
	Weight *int     `json:"weight"`
	Width  *int     `json:"width"`
	Italic *bool    `json:"italic"`
}

// readFontsJSON parses a fonts.json file from dir, if present. It returns
// nil, nil when no such file exists.
func readFontsJSON(dir string) ([]fontOverride, error) {
	path := filepath.Join(dir, "fonts.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides []fontOverride
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i := range overrides {
		for j, f := range overrides[i].Files {
			overrides[i].Files[j] = filepath.Join(dir, f)
		}
	}
	return overrides, nil
}
