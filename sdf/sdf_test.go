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

package sdf_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/versatiles-org/versatiles-glyphs-go/outline"
	"github.com/versatiles-org/versatiles-glyphs-go/sdf"
)

func TestRenderGlyphEmpty(t *testing.T) {
	bmp := sdf.RenderGlyph(nil, false, 1000, 600, sdf.DefaultSize)
	if bmp.Width != 0 || bmp.Height != 0 || bmp.Data != nil {
		t.Fatalf("expected an empty bitmap, got %+v", bmp)
	}
	if bmp.Advance <= 0 {
		t.Fatal("expected a positive advance for an empty glyph")
	}
}

func TestRenderGlyphLetterA(t *testing.T) {
	f, err := outline.Load(goregular.TTF)
	if err != nil {
		t.Fatalf("outline.Load: %v", err)
	}
	gid := f.GID('A')
	ops, _, ok, err := f.GlyphOutline(gid)
	if err != nil || !ok {
		t.Fatalf("GlyphOutline('A'): ok=%v err=%v", ok, err)
	}

	bmp := sdf.RenderGlyph(ops, true, f.UnitsPerEm, f.AdvanceWidth(gid), sdf.DefaultSize)
	if bmp.Width == 0 || bmp.Height == 0 || len(bmp.Data) != bmp.Width*bmp.Height {
		t.Fatalf("unexpected bitmap dimensions: %dx%d data=%d", bmp.Width, bmp.Height, len(bmp.Data))
	}

	var sawEdge, sawFar bool
	for _, b := range bmp.Data {
		if b >= 192 {
			sawEdge = true
		}
		if b <= 64 {
			sawFar = true
		}
		if int(b) < 0 || int(b) > 255 {
			t.Fatalf("byte value out of range: %d", b)
		}
	}
	if !sawEdge {
		t.Error("expected at least one pixel near the outline edge (>=192)")
	}
	if !sawFar {
		t.Error("expected at least one pixel far outside the glyph (<=64)")
	}
}
