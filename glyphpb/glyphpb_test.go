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

package glyphpb_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/versatiles-org/versatiles-glyphs-go/glyphpb"
)

func TestRoundTrip(t *testing.T) {
	fs := glyphpb.FontStack{
		Name:  "noto_sans_regular",
		Range: "0-255",
		Glyphs: []glyphpb.Glyph{
			{ID: 32, Width: 0, Height: 0, Left: 0, Top: 0, Advance: 6},
			{ID: 65, Bitmap: []byte{0, 10, 200, 255, 3}, Width: 5, Height: 1, Left: -2, Top: 18, Advance: 14},
		},
	}

	data := glyphpb.EncodeFontStack(fs)
	got, err := glyphpb.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(fs, *got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	data := glyphpb.EncodeFontStack(glyphpb.FontStack{Name: "f", Range: "0-255"})
	_, err := glyphpb.Decode(data[:len(data)-1])
	if err == nil {
		t.Fatal("expected an error decoding truncated data")
	}
}
