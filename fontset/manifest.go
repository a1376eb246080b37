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

package fontset

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/versatiles-org/versatiles-glyphs-go/block"
	"github.com/versatiles-org/versatiles-glyphs-go/sink"
)

func addInt64(addr *int64, delta int64) {
	atomic.AddInt64(addr, delta)
}

type indexManifest struct {
	Ranges []string `json:"ranges"`
}

type familyVariant struct {
	ID     string `json:"id"`
	Style  string `json:"style"`
	Weight int    `json:"weight"`
	Width  int    `json:"width"`
	Italic bool   `json:"italic"`
}

// writeManifests emits the per-group index.json files and the aggregate
// font_families.json, once every block has been rendered and every
// group's set of non-empty ranges is known.
func writeManifests(s *Set, dest sink.Sink) error {
	families := make(map[string][]familyVariant)

	for _, id := range s.ids() {
		g := s.groups[id]

		ranges := block.Partition(g.codePoints)
		names := make([]string, len(ranges))
		for i, r := range ranges {
			names[i] = r.Name()
		}

		idx, err := json.Marshal(indexManifest{Ranges: names})
		if err != nil {
			return fmt.Errorf("fontset: encoding index.json for %s: %w", id, err)
		}
		if err := dest.Write(id+"/index.json", idx); err != nil {
			return fmt.Errorf("fontset: %w", err)
		}

		families[g.meta.Family] = append(families[g.meta.Family], familyVariant{
			ID:     id,
			Style:  g.meta.Style,
			Weight: g.meta.Weight,
			Width:  g.meta.Width,
			Italic: g.meta.Italic,
		})
	}

	// encoding/json sorts map[string]... keys lexicographically by byte
	// value when marshaling, which matches the documented family
	// ordering, so the map can be marshaled directly.
	for name, variants := range families {
		sort.Slice(variants, func(i, j int) bool {
			a, b := variants[i], variants[j]
			if a.Weight != b.Weight {
				return a.Weight < b.Weight
			}
			if a.Italic != b.Italic {
				return !a.Italic
			}
			return a.Width < b.Width
		})
		families[name] = variants
	}

	data, err := json.Marshal(families)
	if err != nil {
		return fmt.Errorf("fontset: encoding font_families.json: %w", err)
	}
	if err := dest.Write("font_families.json", data); err != nil {
		return fmt.Errorf("fontset: %w", err)
	}
	return nil
}
