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

package outline_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/versatiles-org/versatiles-glyphs-go/outline"
)

func mustLoad(t *testing.T) *outline.Font {
	t.Helper()
	f, err := outline.Load(goregular.TTF)
	if err != nil {
		t.Fatalf("outline.Load: %v", err)
	}
	return f
}

func TestLoadMetadata(t *testing.T) {
	f := mustLoad(t)
	if f.UnitsPerEm == 0 {
		t.Fatal("UnitsPerEm is zero")
	}
	if f.Names == nil || f.Names.Family == "" {
		t.Fatal("expected a non-empty family name")
	}
}

func TestGlyphOutlineLetterA(t *testing.T) {
	f := mustLoad(t)
	gid := f.GID('A')
	if gid == 0 {
		t.Fatal("font has no glyph for 'A'")
	}
	ops, box, ok, err := f.GlyphOutline(gid)
	if err != nil {
		t.Fatalf("GlyphOutline: %v", err)
	}
	if !ok || len(ops) == 0 {
		t.Fatal("expected a non-empty outline for 'A'")
	}
	if box.XMax <= box.XMin || box.YMax <= box.YMin {
		t.Fatalf("degenerate bounding box: %+v", box)
	}
}

func TestGlyphOutlineSpaceIsEmpty(t *testing.T) {
	f := mustLoad(t)
	gid := f.GID(' ')
	if gid == 0 {
		t.Fatal("font has no glyph for space")
	}
	_, _, ok, err := f.GlyphOutline(gid)
	if err != nil {
		t.Fatalf("GlyphOutline: %v", err)
	}
	if ok {
		t.Fatal("expected space to have no contours")
	}
	if f.AdvanceWidth(gid) <= 0 {
		t.Fatal("expected a positive advance for space")
	}
}

func TestCodePointsCoverASCII(t *testing.T) {
	f := mustLoad(t)
	covered := make(map[rune]bool)
	for _, r := range f.CodePoints() {
		covered[r] = true
	}
	for _, r := range "ABCxyz019" {
		if !covered[r] {
			t.Errorf("expected code point %q to be covered", r)
		}
	}
}

func TestFlattenQuadProducesSegments(t *testing.T) {
	ops := []outline.PathOp{
		{Cmd: outline.MoveTo, Pts: [3]outline.Point{{0, 0}}},
		{Cmd: outline.QuadTo, Pts: [3]outline.Point{{5, 10}, {10, 0}}},
		{Cmd: outline.Close},
	}
	segs := outline.Flatten(ops, 0.25)
	if len(segs) == 0 {
		t.Fatal("expected at least one segment")
	}
	// endpoints of the full polyline must match the curve's endpoints
	if segs[0].P0 != (outline.Point{0, 0}) {
		t.Errorf("unexpected start point: %+v", segs[0].P0)
	}
	last := segs[len(segs)-1].P1
	if last != (outline.Point{0, 0}) {
		t.Errorf("expected the closing segment to return to the start, got %+v", last)
	}
}
