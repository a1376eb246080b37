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

package sink_test

import (
	"archive/tar"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/versatiles-org/versatiles-glyphs-go/sink"
)

func TestFSWritesUnderRoot(t *testing.T) {
	dir := t.TempDir()
	s := sink.NewFS(dir)
	if err := s.Write("noto_sans_regular/0-255.pbf", []byte("data")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "noto_sans_regular", "0-255.pbf"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "data" {
		t.Fatalf("got %q, want %q", got, "data")
	}
}

func TestTarAndFSProduceEquivalentContent(t *testing.T) {
	entries := map[string][]byte{
		"noto_sans_regular/0-255.pbf":   []byte("block-a"),
		"noto_sans_regular/index.json":  []byte(`{"ranges":["0-255"]}`),
		"font_families.json":            []byte(`{}`),
	}

	dir := t.TempDir()
	fs := sink.NewFS(dir)
	for path, data := range entries {
		if err := fs.Write(path, data); err != nil {
			t.Fatalf("FS Write: %v", err)
		}
	}
	if err := fs.Finish(); err != nil {
		t.Fatalf("FS Finish: %v", err)
	}

	var buf bytes.Buffer
	tarSink := sink.NewTar(&buf)
	for path, data := range entries {
		if err := tarSink.Write(path, data); err != nil {
			t.Fatalf("Tar Write: %v", err)
		}
	}
	if err := tarSink.Finish(); err != nil {
		t.Fatalf("Tar Finish: %v", err)
	}

	tr := tar.NewReader(&buf)
	found := map[string][]byte{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("tar Next: %v", err)
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("tar ReadAll: %v", err)
		}
		found[hdr.Name] = data
	}

	if len(found) != len(entries) {
		t.Fatalf("got %d tar entries, want %d", len(found), len(entries))
	}
	for path, want := range entries {
		got, ok := found[path]
		if !ok {
			t.Fatalf("missing tar entry %s", path)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("entry %s: got %q, want %q", path, got, want)
		}
	}
}
