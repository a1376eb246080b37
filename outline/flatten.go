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

package outline

import "math"

// Flatten converts a path already scaled into pixel space into a list of
// line segments. Quadratic and cubic Beziers are recursively subdivided
// via de Casteljau halving until the maximum perpendicular deviation of
// the control points from the chord between the endpoints is below
// tolerance (in the same units as the path coordinates).
func Flatten(ops []PathOp, tolerance float64) []Segment {
	var segs []Segment
	var start, cur Point
	haveStart := false

	line := func(p0, p1 Point) {
		if p0 == p1 {
			return
		}
		segs = append(segs, Segment{p0, p1})
	}

	for _, op := range ops {
		switch op.Cmd {
		case MoveTo:
			start = op.Pts[0]
			cur = start
			haveStart = true
		case LineTo:
			line(cur, op.Pts[0])
			cur = op.Pts[0]
		case QuadTo:
			flattenQuad(cur, op.Pts[0], op.Pts[1], tolerance, &segs)
			cur = op.Pts[1]
		case CubeTo:
			flattenCube(cur, op.Pts[0], op.Pts[1], op.Pts[2], tolerance, &segs)
			cur = op.Pts[2]
		case Close:
			if haveStart {
				line(cur, start)
			}
			cur = start
		}
	}
	return segs
}

// flattenQuad recursively subdivides the quadratic Bezier p0-p1-p2 (p1 the
// control point) until it is flat enough, appending the resulting line
// segments to segs.
func flattenQuad(p0, p1, p2 Point, tolerance float64, segs *[]Segment) {
	const maxDepth = 24
	var rec func(p0, p1, p2 Point, depth int)
	rec = func(p0, p1, p2 Point, depth int) {
		if depth >= maxDepth || quadFlatEnough(p0, p1, p2, tolerance) {
			if p0 != p2 {
				*segs = append(*segs, Segment{p0, p2})
			}
			return
		}
		p01 := midpoint(p0, p1)
		p12 := midpoint(p1, p2)
		p012 := midpoint(p01, p12)
		rec(p0, p01, p012, depth+1)
		rec(p012, p12, p2, depth+1)
	}
	rec(p0, p1, p2, 0)
}

// flattenCube recursively subdivides the cubic Bezier p0-p1-p2-p3.
func flattenCube(p0, p1, p2, p3 Point, tolerance float64, segs *[]Segment) {
	const maxDepth = 24
	var rec func(p0, p1, p2, p3 Point, depth int)
	rec = func(p0, p1, p2, p3 Point, depth int) {
		if depth >= maxDepth || cubeFlatEnough(p0, p1, p2, p3, tolerance) {
			if p0 != p3 {
				*segs = append(*segs, Segment{p0, p3})
			}
			return
		}
		p01 := midpoint(p0, p1)
		p12 := midpoint(p1, p2)
		p23 := midpoint(p2, p3)
		p012 := midpoint(p01, p12)
		p123 := midpoint(p12, p23)
		p0123 := midpoint(p012, p123)
		rec(p0, p01, p012, p0123, depth+1)
		rec(p0123, p123, p23, p3, depth+1)
	}
	rec(p0, p1, p2, p3, 0)
}

func midpoint(a, b Point) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

func quadFlatEnough(p0, p1, p2 Point, tolerance float64) bool {
	return pointLineDistance(p1, p0, p2) <= tolerance
}

func cubeFlatEnough(p0, p1, p2, p3 Point, tolerance float64) bool {
	return pointLineDistance(p1, p0, p3) <= tolerance &&
		pointLineDistance(p2, p0, p3) <= tolerance
}

// pointLineDistance is the perpendicular distance from p to the line
// through a and b (treated as a point if a == b).
func pointLineDistance(p, a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	// |cross product| / length
	return math.Abs(dx*(a.Y-p.Y)-(a.X-p.X)*dy) / length
}
