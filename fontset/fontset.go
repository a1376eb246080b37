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

// Package fontset groups parsed fonts by font-id, merges files that share
// an id, and drives the parallel rendering of every covered code-point
// block to a sink.Sink.
package fontset

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/versatiles-org/versatiles-glyphs-go/block"
	"github.com/versatiles-org/versatiles-glyphs-go/font"
	"github.com/versatiles-org/versatiles-glyphs-go/glyphpb"
	"github.com/versatiles-org/versatiles-glyphs-go/sink"
)

// Set groups one or more font.Font values under shared font-ids and
// renders them as a unit.
type Set struct {
	groups map[string]*group
	order  []string // ids in insertion order; rendering and manifests iterate ids(), which sorts
}

type group struct {
	id    string
	meta  font.Metadata
	fonts []*font.Font

	// owner maps a covered code point to the first (highest-priority)
	// font in fonts that covers it.
	owner      map[rune]*font.Font
	codePoints []rune
}

// New returns an empty Set.
func New() *Set {
	return &Set{groups: make(map[string]*group)}
}

// Add attaches f to the group named id, creating the group if it does not
// exist yet. When a group already has one or more fonts, f is treated as
// a lower-priority subset: code points it newly covers become available,
// but code points already owned by an earlier file in the group keep
// their original glyph.
func (s *Set) Add(id string, f *font.Font) {
	g, ok := s.groups[id]
	if !ok {
		g = &group{id: id, meta: f.Metadata(), owner: make(map[rune]*font.Font)}
		s.groups[id] = g
		s.order = append(s.order, id)
	}
	g.fonts = append(g.fonts, f)

	for _, cp := range f.CodePoints() {
		if _, taken := g.owner[cp]; taken {
			continue
		}
		g.owner[cp] = f
		g.codePoints = append(g.codePoints, cp)
	}
}

// ids returns the group ids in lexicographic order.
func (s *Set) ids() []string {
	ids := make([]string, 0, len(s.groups))
	for id := range s.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Summary reports what a RenderAll call produced.
type Summary struct {
	Fonts  int
	Glyphs int
}

// RenderAll renders every group's blocks and manifests to dest. Block
// rendering is distributed across workers goroutines; workers<=0 selects
// runtime.GOMAXPROCS(0), and workers==1 renders strictly sequentially
// (the --single-thread mode). A failure in any task cancels the
// remaining work and is returned.
func (s *Set) RenderAll(ctx context.Context, dest sink.Sink, workers int) (Summary, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(workers))

	var glyphCount int64
	ids := s.ids()
	for _, id := range ids {
		g := s.groups[id]
		blocks := block.Partition(g.codePoints)
		for _, r := range blocks {
			r := r
			if err := sem.Acquire(ctx, 1); err != nil {
				if werr := eg.Wait(); werr != nil {
					return Summary{}, werr
				}
				return Summary{}, fmt.Errorf("fontset: %w", err)
			}
			eg.Go(func() error {
				defer sem.Release(1)
				data, n, err := renderBlock(g, r)
				if err != nil {
					return err
				}
				if err := dest.Write(g.id+"/"+r.Name()+".pbf", data); err != nil {
					return fmt.Errorf("fontset: %w", err)
				}
				addInt64(&glyphCount, int64(n))
				return nil
			})
		}
	}

	if err := eg.Wait(); err != nil {
		return Summary{}, err
	}

	if err := writeManifests(s, dest); err != nil {
		return Summary{}, err
	}
	if err := dest.Finish(); err != nil {
		return Summary{}, fmt.Errorf("fontset: %w", err)
	}

	return Summary{Fonts: len(s.groups), Glyphs: int(glyphCount)}, nil
}

func renderBlock(g *group, r block.Range) ([]byte, int, error) {
	fs := glyphpb.FontStack{Name: g.id, Range: r.Name()}
	for cp := r.Start(); cp <= r.End(); cp++ {
		owner, ok := g.owner[cp]
		if !ok {
			continue
		}
		glyph, ok, err := owner.RenderCodePoint(cp)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			fs.Glyphs = append(fs.Glyphs, glyph)
		}
	}
	return glyphpb.EncodeFontStack(fs), len(fs.Glyphs), nil
}
