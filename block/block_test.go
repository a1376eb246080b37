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

package block_test

import (
	"testing"

	"github.com/versatiles-org/versatiles-glyphs-go/block"
)

func TestPartitionSkipsEmptyBlocks(t *testing.T) {
	ranges := block.Partition([]rune{'A', 'Z', 0x0100, 0x2000})
	if len(ranges) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(ranges))
	}
	if ranges[0].Index != 0 || ranges[1].Index != 1 || ranges[2].Index != 32 {
		t.Fatalf("unexpected block indices: %+v", ranges)
	}
	if ranges[0].Name() != "0-255" {
		t.Fatalf("unexpected range name: %s", ranges[0].Name())
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	if ranges := block.Partition(nil); len(ranges) != 0 {
		t.Fatalf("expected no blocks, got %+v", ranges)
	}
}
