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

package font_test

import (
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/versatiles-org/versatiles-glyphs-go/font"
)

func TestLoadDerivesIdentity(t *testing.T) {
	f, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.ID() == "" {
		t.Fatal("expected a non-empty font id")
	}
	md := f.Metadata()
	if md.Weight != 400 {
		t.Fatalf("expected weight 400, got %d", md.Weight)
	}
	if md.Italic {
		t.Fatal("GoRegular should not be italic")
	}
}

func TestBlocksCoverASCII(t *testing.T) {
	f, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	blocks := f.Blocks()
	if len(blocks) == 0 {
		t.Fatal("expected at least one block")
	}
	if blocks[0].Index != 0 {
		t.Fatalf("expected the first block to cover ASCII, got index %d", blocks[0].Index)
	}
}

func TestRenderBlockProducesGlyphs(t *testing.T) {
	f, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	blocks := f.Blocks()
	data, err := f.RenderBlock(blocks[0])
	if err != nil {
		t.Fatalf("RenderBlock: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty encoded fontstack")
	}
}
