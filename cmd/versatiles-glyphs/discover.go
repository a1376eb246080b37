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
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// discovered is one input font file, with the fonts.json entry that named
// it, if any.
type discovered struct {
	path     string
	override *fontOverride
}

var fontExts = map[string]bool{".ttf": true, ".otf": true}

// discoverPath expands a CLI path argument into the font files it names.
// A file argument is returned as-is. A directory argument honors a
// fonts.json found directly inside it; absent that, every font file
// directly inside the directory is returned (non-recursively).
func discoverPath(path string) ([]discovered, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []discovered{{path: path}}, nil
	}

	overrides, err := readFontsJSON(path)
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		var out []discovered
		for i := range overrides {
			ov := &overrides[i]
			for _, f := range ov.Files {
				out = append(out, discovered{path: f, override: ov})
			}
		}
		return out, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if fontExts[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]discovered, len(names))
	for i, name := range names {
		out[i] = discovered{path: filepath.Join(path, name)}
	}
	return out, nil
}
