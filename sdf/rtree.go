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

package sdf

import (
	"math"
	"sort"

	"github.com/versatiles-org/versatiles-glyphs-go/outline"
)

// box64 is an axis-aligned bounding box in pixel space.
type box64 struct {
	xmin, ymin, xmax, ymax float64
}

func boxOf(s outline.Segment) box64 {
	return box64{
		xmin: min2(s.P0.X, s.P1.X),
		ymin: min2(s.P0.Y, s.P1.Y),
		xmax: max2(s.P0.X, s.P1.X),
		ymax: max2(s.P0.Y, s.P1.Y),
	}
}

func union(a, b box64) box64 {
	return box64{
		xmin: min2(a.xmin, b.xmin),
		ymin: min2(a.ymin, b.ymin),
		xmax: max2(a.xmax, b.xmax),
		ymax: max2(a.ymax, b.ymax),
	}
}

// minDist is the lower bound on the distance from p to any point inside
// the box: zero if p is inside or on the boundary.
func (b box64) minDist(p outline.Point) float64 {
	dx := 0.0
	if p.X < b.xmin {
		dx = b.xmin - p.X
	} else if p.X > b.xmax {
		dx = p.X - b.xmax
	}
	dy := 0.0
	if p.Y < b.ymin {
		dy = b.ymin - p.Y
	} else if p.Y > b.ymax {
		dy = p.Y - b.ymax
	}
	return math.Hypot(dx, dy)
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// segmentIndex is a bulk-loaded spatial index over a glyph's flattened
// segments, supporting nearest-segment queries in roughly O(log n) time
// instead of the O(n) brute-force scan a naive renderer would need. It is
// built fresh for every glyph and discarded once the glyph is rendered.
type segmentIndex struct {
	root *rnode
	segs []outline.Segment
}

type rnode struct {
	box      box64
	children []*rnode
	leaf     []int // indices into segmentIndex.segs, only set on leaf nodes
}

const leafSize = 8

// newSegmentIndex bulk-loads segs using a sort-tile-recursive strategy:
// segments are sorted by their bounding-box center into roughly
// sqrt(n/leafSize) vertical strips, each strip sorted by Y and chunked into leaves, and
// leaves grouped into parents the same way until a single root remains.
func newSegmentIndex(segs []outline.Segment) *segmentIndex {
	idx := &segmentIndex{segs: segs}
	if len(segs) == 0 {
		idx.root = &rnode{}
		return idx
	}

	type item struct {
		i   int
		box box64
	}
	items := make([]item, len(segs))
	for i, s := range segs {
		items[i] = item{i: i, box: boxOf(s)}
	}

	numStrips := int(math.Ceil(math.Sqrt(float64(len(items)) / leafSize)))
	if numStrips < 1 {
		numStrips = 1
	}
	sort.Slice(items, func(i, j int) bool {
		return (items[i].box.xmin + items[i].box.xmax) < (items[j].box.xmin + items[j].box.xmax)
	})

	perStrip := (len(items) + numStrips - 1) / numStrips
	var leaves []*rnode
	for s := 0; s < len(items); s += perStrip {
		end := s + perStrip
		if end > len(items) {
			end = len(items)
		}
		strip := items[s:end]
		sort.Slice(strip, func(i, j int) bool {
			return (strip[i].box.ymin + strip[i].box.ymax) < (strip[j].box.ymin + strip[j].box.ymax)
		})
		for s2 := 0; s2 < len(strip); s2 += leafSize {
			end2 := s2 + leafSize
			if end2 > len(strip) {
				end2 = len(strip)
			}
			chunk := strip[s2:end2]
			leaf := &rnode{leaf: make([]int, len(chunk))}
			leaf.box = chunk[0].box
			for k, it := range chunk {
				leaf.leaf[k] = it.i
				leaf.box = union(leaf.box, it.box)
			}
			leaves = append(leaves, leaf)
		}
	}

	idx.root = groupNodes(leaves)
	return idx
}

// groupNodes repeatedly groups sibling nodes into parents of up to
// leafSize children until a single root node remains.
func groupNodes(nodes []*rnode) *rnode {
	for len(nodes) > 1 {
		var parents []*rnode
		for i := 0; i < len(nodes); i += leafSize {
			end := i + leafSize
			if end > len(nodes) {
				end = len(nodes)
			}
			group := nodes[i:end]
			p := &rnode{children: append([]*rnode{}, group...)}
			p.box = group[0].box
			for _, c := range group {
				p.box = union(p.box, c.box)
			}
			parents = append(parents, p)
		}
		nodes = parents
	}
	if len(nodes) == 0 {
		return &rnode{}
	}
	return nodes[0]
}

// nearest returns the minimum distance from p to any segment in the
// index, along with the winning segment's index.
func (idx *segmentIndex) nearest(p outline.Point) (dist float64, segIdx int) {
	best := math.Inf(1)
	bestIdx := -1
	var visit func(n *rnode)
	visit = func(n *rnode) {
		if n == nil {
			return
		}
		if n.box.minDist(p) >= best {
			return
		}
		if n.leaf != nil {
			for _, i := range n.leaf {
				d := segmentPointDistance(idx.segs[i], p)
				if d < best {
					best = d
					bestIdx = i
				}
			}
			return
		}
		children := append([]*rnode{}, n.children...)
		sort.Slice(children, func(i, j int) bool {
			return children[i].box.minDist(p) < children[j].box.minDist(p)
		})
		for _, c := range children {
			visit(c)
		}
	}
	visit(idx.root)
	return best, bestIdx
}

// segmentPointDistance is the Euclidean distance from p to the segment s,
// clamping the projection to the segment's endpoints.
func segmentPointDistance(s outline.Segment, p outline.Point) float64 {
	dx, dy := s.P1.X-s.P0.X, s.P1.Y-s.P0.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-s.P0.X, p.Y-s.P0.Y)
	}
	t := ((p.X-s.P0.X)*dx + (p.Y-s.P0.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := s.P0.X + t*dx
	cy := s.P0.Y + t*dy
	return math.Hypot(p.X-cx, p.Y-cy)
}
