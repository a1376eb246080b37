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

// Point is a location in either font design units or device (pixel)
// units, depending on context.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box, font design units.
type Rect struct {
	XMin, YMin, XMax, YMax int16
}

// Segment is a single line segment, the only geometric primitive the SDF
// rasterizer consumes.
type Segment struct {
	P0, P1 Point
}

// Command identifies the kind of a PathOp.
type Command int

const (
	// MoveTo starts a new contour at Pts[0].
	MoveTo Command = iota
	// LineTo draws a straight line to Pts[0].
	LineTo
	// QuadTo draws a quadratic Bezier with control point Pts[0] and end
	// point Pts[1].
	QuadTo
	// CubeTo draws a cubic Bezier with control points Pts[0], Pts[1] and
	// end point Pts[2].
	CubeTo
	// Close closes the current contour back to its MoveTo point.
	Close
)

// PathOp is one drawing instruction of a glyph outline, in font design
// units, before curve flattening.
type PathOp struct {
	Cmd Command
	Pts [3]Point
}
