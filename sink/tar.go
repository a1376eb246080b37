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

package sink

import (
	"archive/tar"
	"fmt"
	"io"
	"sync"
	"time"
)

// epoch is the fixed mtime every tar entry is stamped with, so output is
// reproducible across runs.
var epoch = time.Unix(0, 0)

// Tar writes every entry to a single tar stream, e.g. stdout. Appends are
// serialized with a mutex since archive/tar.Writer is not safe for
// concurrent use.
type Tar struct {
	mu sync.Mutex
	tw *tar.Writer
}

// NewTar returns a Sink that streams a tar archive to w.
func NewTar(w io.Writer) *Tar {
	return &Tar{tw: tar.NewWriter(w)}
}

func (s *Tar) Write(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	hdr := &tar.Header{
		Name:    path,
		Mode:    0o644,
		Size:    int64(len(data)),
		ModTime: epoch,
		Uid:     0,
		Gid:     0,
	}
	if err := s.tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("sink: writing tar header for %s: %w", path, err)
	}
	if _, err := s.tw.Write(data); err != nil {
		return fmt.Errorf("sink: writing tar data for %s: %w", path, err)
	}
	return nil
}

func (s *Tar) Finish() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tw.Close(); err != nil {
		return fmt.Errorf("sink: closing tar stream: %w", err)
	}
	return nil
}
