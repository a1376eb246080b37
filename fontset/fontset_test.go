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

package fontset_test

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/versatiles-org/versatiles-glyphs-go/font"
	"github.com/versatiles-org/versatiles-glyphs-go/fontset"
	"github.com/versatiles-org/versatiles-glyphs-go/glyphpb"
)

// memSink is a sink.Sink that records every write in memory, guarded by
// a mutex since RenderAll writes from multiple goroutines.
type memSink struct {
	mu      sync.Mutex
	entries map[string][]byte
	done    bool
}

func newMemSink() *memSink { return &memSink{entries: make(map[string][]byte)} }

func (m *memSink) Write(path string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.entries[path] = cp
	return nil
}

func (m *memSink) Finish() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.done = true
	return nil
}

func TestRenderAllEmptySet(t *testing.T) {
	s := fontset.New()
	dest := newMemSink()
	summary, err := s.RenderAll(context.Background(), dest, 1)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if summary.Fonts != 0 || summary.Glyphs != 0 {
		t.Fatalf("expected an empty summary, got %+v", summary)
	}
	if _, ok := dest.entries["font_families.json"]; !ok {
		t.Fatal("expected font_families.json to be written even for an empty set")
	}
}

func TestRenderAllSingleFont(t *testing.T) {
	f, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("font.Load: %v", err)
	}
	s := fontset.New()
	s.Add(f.ID(), f)

	dest := newMemSink()
	summary, err := s.RenderAll(context.Background(), dest, 1)
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if summary.Fonts != 1 || summary.Glyphs == 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	block0, ok := dest.entries[f.ID()+"/0-255.pbf"]
	if !ok {
		t.Fatal("expected a 0-255.pbf block for ASCII")
	}
	fs, err := glyphpb.Decode(block0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	var sawSpace, sawLetter bool
	for _, g := range fs.Glyphs {
		if g.ID == ' ' {
			sawSpace = true
			if g.Width != 0 || g.Height != 0 {
				t.Fatalf("space glyph should have no bitmap, got %+v", g)
			}
		}
		if g.ID == 'A' {
			sawLetter = true
			if len(g.Bitmap) == 0 {
				t.Fatal("expected 'A' to have a non-empty bitmap")
			}
		}
	}
	if !sawSpace || !sawLetter {
		t.Fatalf("expected both space and 'A' in the 0-255 block, sawSpace=%v sawLetter=%v", sawSpace, sawLetter)
	}

	if _, ok := dest.entries[f.ID()+"/index.json"]; !ok {
		t.Fatal("expected an index.json manifest")
	}
}

func TestMergePrefersFirstListedFile(t *testing.T) {
	regular, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("font.Load regular: %v", err)
	}
	bold, err := font.Load(gobold.TTF, "GoBold.ttf")
	if err != nil {
		t.Fatalf("font.Load bold: %v", err)
	}

	const mergedID = "merged"
	s := fontset.New()
	s.Add(mergedID, regular)
	s.Add(mergedID, bold)

	dest := newMemSink()
	if _, err := s.RenderAll(context.Background(), dest, 1); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}

	merged, err := glyphpb.Decode(dest.entries[mergedID+"/0-255.pbf"])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	regularGlyph, ok, err := regular.RenderCodePoint('A')
	if err != nil || !ok {
		t.Fatalf("RenderCodePoint on regular: ok=%v err=%v", ok, err)
	}

	var gotA *glyphpb.Glyph
	for i := range merged.Glyphs {
		if merged.Glyphs[i].ID == 'A' {
			gotA = &merged.Glyphs[i]
		}
	}
	if gotA == nil {
		t.Fatal("expected 'A' in the merged block")
	}
	if !bytes.Equal(gotA.Bitmap, regularGlyph.Bitmap) {
		t.Fatal("merged glyph for 'A' should come from the first-listed (regular) font")
	}
}

func TestSingleThreadedAndParallelOutputMatch(t *testing.T) {
	f, err := font.Load(goregular.TTF, "GoRegular.ttf")
	if err != nil {
		t.Fatalf("font.Load: %v", err)
	}

	build := func(workers int) map[string][]byte {
		s := fontset.New()
		s.Add(f.ID(), f)
		dest := newMemSink()
		if _, err := s.RenderAll(context.Background(), dest, workers); err != nil {
			t.Fatalf("RenderAll(workers=%d): %v", workers, err)
		}
		return dest.entries
	}

	single := build(1)
	parallel := build(4)

	if len(single) != len(parallel) {
		t.Fatalf("entry count mismatch: single=%d parallel=%d", len(single), len(parallel))
	}
	for path, want := range single {
		got, ok := parallel[path]
		if !ok {
			t.Fatalf("parallel output missing entry %s", path)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("entry %s differs between single-threaded and parallel output", path)
		}
	}

	var families map[string]json.RawMessage
	if err := json.Unmarshal(single["font_families.json"], &families); err != nil {
		t.Fatalf("Unmarshal font_families.json: %v", err)
	}
	if len(families) != 1 {
		t.Fatalf("expected exactly one family, got %d", len(families))
	}
}
