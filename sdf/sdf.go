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

// Package sdf rasterizes a glyph outline into a signed distance field
// bitmap, the format web map renderers composite client-side to draw
// crisp text at any zoom level.
package sdf

import (
	"math"

	"github.com/versatiles-org/versatiles-glyphs-go/outline"
)

const (
	// Radius is the SDF search radius in pixels: distances are encoded
	// relative to this band around the outline edge.
	Radius = 8.0
	// Cutoff places the outline edge at byte value 255*Cutoff (~192).
	Cutoff = 0.25
	// Buffer is the padding, in pixels, added on every side of a glyph
	// bitmap so neighboring glyphs do not bleed into the sampled radius.
	Buffer = 3
	// DefaultSize is the canonical glyph rendering size in pixels,
	// matching the Mapbox/MapLibre glyph protocol.
	DefaultSize = 24.0
)

// Bitmap is a single rendered glyph: an 8-bit signed distance field plus
// the metrics needed to place it on a text line.
type Bitmap struct {
	Width, Height int
	Left, Top     int // pixel offset of Data[0][0] relative to the pen position
	Advance       int
	Data          []byte // row-major, len == Width*Height, or nil for an empty glyph
}

// RenderGlyph rasterizes one glyph's outline (in font design units, as
// returned by outline.Font.GlyphOutline) into an SDF bitmap at the given
// pixel size. hasOutline=false (e.g. for whitespace) yields a bitmap with
// only Advance set.
func RenderGlyph(ops []outline.PathOp, hasOutline bool, unitsPerEm uint16, advanceUnits int16, size float64) *Bitmap {
	scale := size / float64(unitsPerEm)
	advance := int(math.Round(float64(advanceUnits) * scale))

	if !hasOutline || len(ops) == 0 {
		return &Bitmap{Advance: advance}
	}

	scaled := make([]outline.PathOp, len(ops))
	for i, op := range ops {
		var s outline.PathOp
		s.Cmd = op.Cmd
		for k := range op.Pts {
			s.Pts[k] = outline.Point{X: op.Pts[k].X * scale, Y: op.Pts[k].Y * scale}
		}
		scaled[i] = s
	}

	tolerance := 0.25 // pixels, see outline.Flatten
	segs := outline.Flatten(scaled, tolerance)
	if len(segs) == 0 {
		return &Bitmap{Advance: advance}
	}

	xmin, ymin, xmax, ymax := segs[0].P0.X, segs[0].P0.Y, segs[0].P0.X, segs[0].P0.Y
	grow := func(p outline.Point) {
		xmin, ymin = min2(xmin, p.X), min2(ymin, p.Y)
		xmax, ymax = max2(xmax, p.X), max2(ymax, p.Y)
	}
	for _, s := range segs {
		grow(s.P0)
		grow(s.P1)
	}

	left := int(math.Floor(xmin)) - Buffer
	right := int(math.Ceil(xmax)) + Buffer
	bottom := int(math.Floor(ymin)) - Buffer
	top := int(math.Ceil(ymax)) + Buffer

	width := right - left
	height := top - bottom
	if width <= 0 || height <= 0 {
		return &Bitmap{Advance: advance}
	}

	index := newSegmentIndex(segs)
	data := make([]byte, width*height)
	for row := 0; row < height; row++ {
		// row 0 is the top of the bitmap; outline Y increases upward.
		py := float64(top) - float64(row) - 0.5
		for col := 0; col < width; col++ {
			px := float64(left) + float64(col) + 0.5
			q := outline.Point{X: px, Y: py}

			dist, _ := index.nearest(q)
			if windingNonZero(segs, q) {
				dist = -dist
			}
			data[row*width+col] = encode(dist)
		}
	}

	return &Bitmap{
		Width:   width,
		Height:  height,
		Left:    left,
		Top:     top,
		Advance: advance,
		Data:    data,
	}
}

// encode maps a signed pixel distance to a clamped byte using the
// standard SDF encoding: 255*(Cutoff - d/Radius), rounded and clamped to
// [0, 255].
func encode(d float64) byte {
	v := math.Round(255 * (Cutoff - d/Radius))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// windingNonZero classifies q as inside the shape described by segs using
// the non-zero winding rule: a horizontal ray cast to the right from q is
// crossed by each segment that straddles q's Y coordinate, contributing
// +1 for an upward-going segment and -1 for a downward-going one.
func windingNonZero(segs []outline.Segment, q outline.Point) bool {
	winding := 0
	for _, s := range segs {
		y0, y1 := s.P0.Y, s.P1.Y
		if y0 == y1 {
			continue // horizontal segments never cross a horizontal ray
		}
		upward := y1 > y0
		lo, hi := y0, y1
		if upward {
			lo, hi = y0, y1
		} else {
			lo, hi = y1, y0
		}
		if q.Y < lo || q.Y >= hi {
			continue
		}
		t := (q.Y - s.P0.Y) / (s.P1.Y - s.P0.Y)
		x := s.P0.X + t*(s.P1.X-s.P0.X)
		if x <= q.X {
			continue
		}
		if upward {
			winding++
		} else {
			winding--
		}
	}
	return winding != 0
}
