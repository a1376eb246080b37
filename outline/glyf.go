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

import (
	"github.com/versatiles-org/versatiles-glyphs-go/glyph"
	"github.com/versatiles-org/versatiles-glyphs-go/header"
)

// glyfSource implements glyphSource for TrueType-outline fonts ("glyf" and
// "loca" tables).
type glyfSource struct {
	glyf   []byte
	loca   []uint32 // len(loca) == numGlyphs+1
	glyphs int
}

func newGlyfSource(glyfData, locaData []byte, locaFormat int16, numGlyphs int) (*glyfSource, error) {
	offs := make([]uint32, numGlyphs+1)
	if locaFormat == 0 {
		if len(locaData) < 2*(numGlyphs+1) {
			return nil, &header.ErrInvalid{Reason: "loca table too short"}
		}
		for i := range offs {
			offs[i] = 2 * uint32(be16(locaData, 2*i))
		}
	} else {
		if len(locaData) < 4*(numGlyphs+1) {
			return nil, &header.ErrInvalid{Reason: "loca table too short"}
		}
		for i := range offs {
			offs[i] = be32(locaData, 4*i)
		}
	}
	return &glyfSource{glyf: glyfData, loca: offs, glyphs: numGlyphs}, nil
}

func (s *glyfSource) numGlyphs() int { return s.glyphs }

func (s *glyfSource) outline(gid glyph.ID) ([]PathOp, Rect, error) {
	return s.outlineAt(gid, 0)
}

func (s *glyfSource) outlineAt(gid glyph.ID, depth int) ([]PathOp, Rect, error) {
	i := int(gid)
	if i+1 >= len(s.loca) {
		return nil, Rect{}, &header.ErrInvalid{Reason: "glyph index out of range"}
	}
	start, end := s.loca[i], s.loca[i+1]
	if end < start || int(end) > len(s.glyf) {
		return nil, Rect{}, &header.ErrInvalid{Reason: "malformed loca entry"}
	}
	if start == end {
		return nil, Rect{}, nil // whitespace glyph: no contours
	}
	data := s.glyf[start:end]
	return s.decodeGlyph(data, depth)
}

// decodeGlyph decodes one glyf entry, recursing into composite glyph
// components. depth guards against pathological self-referencing fonts.
func (s *glyfSource) decodeGlyph(data []byte, depth int) ([]PathOp, Rect, error) {
	if depth > 8 {
		return nil, Rect{}, &header.ErrInvalid{Reason: "composite glyph nesting too deep"}
	}
	if len(data) < 10 {
		return nil, Rect{}, &header.ErrInvalid{Reason: "glyph header too short"}
	}
	numContours := int16(be16(data, 0))
	box := Rect{
		XMin: int16(be16(data, 2)),
		YMin: int16(be16(data, 4)),
		XMax: int16(be16(data, 6)),
		YMax: int16(be16(data, 8)),
	}
	body := data[10:]

	if numContours >= 0 {
		ops, err := decodeSimpleGlyph(body, int(numContours))
		return ops, box, err
	}

	ops, err := s.decodeCompositeGlyph(body, depth)
	return ops, box, err
}

const (
	flagOnCurve    = 0x01
	flagXShortVec  = 0x02
	flagYShortVec  = 0x04
	flagRepeat     = 0x08
	flagXSameOrPos = 0x10
	flagYSameOrPos = 0x20
)

// decodeSimpleGlyph decodes the quadratic on/off-curve contour points of a
// simple glyf entry and converts them directly into path operations: each
// contour starts with MoveTo at the first on-curve point (or the midpoint
// of the first and last points, if all points are off-curve), runs of
// on-curve points become LineTo, and on-curve/off-curve/on-curve triples
// become QuadTo, with an implicit on-curve midpoint inserted between
// consecutive off-curve points.
func decodeSimpleGlyph(buf []byte, numContours int) ([]PathOp, error) {
	if len(buf) < 2*numContours+2 {
		return nil, &header.ErrInvalid{Reason: "glyf: truncated simple glyph"}
	}
	endPts := make([]uint16, numContours)
	for i := range endPts {
		endPts[i] = be16(buf, 2*i)
	}
	buf = buf[2*numContours:]

	var numPoints int
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}

	if len(buf) < 2 {
		return nil, &header.ErrInvalid{Reason: "glyf: truncated simple glyph"}
	}
	instrLen := int(be16(buf, 0))
	buf = buf[2:]
	if len(buf) < instrLen {
		return nil, &header.ErrInvalid{Reason: "glyf: truncated instructions"}
	}
	buf = buf[instrLen:]

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if len(buf) < 1 {
			return nil, &header.ErrInvalid{Reason: "glyf: truncated flags"}
		}
		flag := buf[0]
		buf = buf[1:]
		flags[i] = flag
		i++
		if flag&flagRepeat != 0 {
			if len(buf) < 1 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated flags"}
			}
			count := int(buf[0])
			buf = buf[1:]
			for count > 0 && i < numPoints {
				flags[i] = flag
				i++
				count--
			}
		}
	}

	xs := make([]float64, numPoints)
	var x int32
	for i, flag := range flags {
		switch {
		case flag&flagXShortVec != 0:
			if len(buf) < 1 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated x coords"}
			}
			dx := int32(buf[0])
			buf = buf[1:]
			if flag&flagXSameOrPos != 0 {
				x += dx
			} else {
				x -= dx
			}
		case flag&flagXSameOrPos == 0:
			if len(buf) < 2 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated x coords"}
			}
			x += int32(int16(be16(buf, 0)))
			buf = buf[2:]
		}
		xs[i] = float64(x)
	}

	ys := make([]float64, numPoints)
	var y int32
	for i, flag := range flags {
		switch {
		case flag&flagYShortVec != 0:
			if len(buf) < 1 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated y coords"}
			}
			dy := int32(buf[0])
			buf = buf[1:]
			if flag&flagYSameOrPos != 0 {
				y += dy
			} else {
				y -= dy
			}
		case flag&flagYSameOrPos == 0:
			if len(buf) < 2 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated y coords"}
			}
			y += int32(int16(be16(buf, 0)))
			buf = buf[2:]
		}
		ys[i] = float64(y)
	}

	var ops []PathOp
	start := 0
	for c := 0; c < numContours; c++ {
		end := int(endPts[c]) + 1
		contourToPath(xs[start:end], ys[start:end], flags[start:end], &ops)
		start = end
	}
	return ops, nil
}

// contourToPath converts one contour's on/off-curve point list into MoveTo
// / LineTo / QuadTo / Close operations, appending them to ops.
func contourToPath(xs, ys []float64, flags []byte, ops *[]PathOp) {
	n := len(xs)
	if n < 2 {
		return
	}
	onCurve := func(i int) bool { return flags[i]&flagOnCurve != 0 }
	pt := func(i int) Point { return Point{xs[i], ys[i]} }
	mid := func(i, j int) Point {
		return Point{(xs[i] + xs[j]) / 2, (ys[i] + ys[j]) / 2}
	}

	start := 0
	for start < n && !onCurve(start) {
		start++
	}
	var startPt Point
	consumedReal := false
	if start == n {
		// all points off-curve: start at the midpoint of the first and last
		startPt = mid(0, n-1)
		start = 0
	} else {
		startPt = pt(start)
		consumedReal = true
	}
	*ops = append(*ops, PathOp{Cmd: MoveTo, Pts: [3]Point{startPt}})

	// count tracks how many of the n contour points (starting at `start`)
	// have been consumed; the point already emitted as MoveTo counts as
	// consumed only when it was a real on-curve point, not a synthesized
	// midpoint.
	count := 0
	if consumedReal {
		count = 1
	}
	for count < n {
		curIdx := (start + count) % n
		next := (start + count + 1) % n
		if onCurve(curIdx) {
			p := pt(curIdx)
			*ops = append(*ops, PathOp{Cmd: LineTo, Pts: [3]Point{p}})
			count++
			continue
		}
		// off-curve control point: find the end point (next on-curve
		// point, or an implicit midpoint if the next point is also
		// off-curve)
		ctrl := pt(curIdx)
		var end Point
		if onCurve(next) {
			end = pt(next)
			count += 2
		} else {
			end = mid(curIdx, next)
			count++
		}
		*ops = append(*ops, PathOp{Cmd: QuadTo, Pts: [3]Point{ctrl, end}})
	}
	*ops = append(*ops, PathOp{Cmd: Close})
}

func (s *glyfSource) decodeCompositeGlyph(buf []byte, depth int) ([]PathOp, error) {
	var ops []PathOp
	for {
		if len(buf) < 4 {
			return nil, &header.ErrInvalid{Reason: "glyf: truncated composite glyph"}
		}
		flags := be16(buf, 0)
		componentGID := glyph.ID(be16(buf, 2))
		buf = buf[4:]

		var dx, dy float64
		if flags&0x0001 != 0 { // ARG_1_AND_2_ARE_WORDS
			if len(buf) < 4 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated composite args"}
			}
			if flags&0x0002 != 0 { // ARGS_ARE_XY_VALUES
				dx = float64(int16(be16(buf, 0)))
				dy = float64(int16(be16(buf, 2)))
			}
			buf = buf[4:]
		} else {
			if len(buf) < 2 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated composite args"}
			}
			if flags&0x0002 != 0 {
				dx = float64(int8(buf[0]))
				dy = float64(int8(buf[1]))
			}
			buf = buf[2:]
		}

		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&0x0008 != 0: // WE_HAVE_A_SCALE
			if len(buf) < 2 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated composite scale"}
			}
			a = f2dot14(be16(buf, 0))
			d = a
			buf = buf[2:]
		case flags&0x0040 != 0: // WE_HAVE_AN_X_AND_Y_SCALE
			if len(buf) < 4 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated composite scale"}
			}
			a = f2dot14(be16(buf, 0))
			d = f2dot14(be16(buf, 2))
			buf = buf[4:]
		case flags&0x0080 != 0: // WE_HAVE_A_TWO_BY_TWO
			if len(buf) < 8 {
				return nil, &header.ErrInvalid{Reason: "glyf: truncated composite scale"}
			}
			a = f2dot14(be16(buf, 0))
			b = f2dot14(be16(buf, 2))
			c = f2dot14(be16(buf, 4))
			d = f2dot14(be16(buf, 6))
			buf = buf[8:]
		}

		compOps, _, err := s.outlineAt(componentGID, depth+1)
		if err != nil {
			return nil, err
		}
		for _, op := range compOps {
			var xf PathOp
			xf.Cmd = op.Cmd
			n := numPoints(op.Cmd)
			for k := 0; k < n; k++ {
				p := op.Pts[k]
				xf.Pts[k] = Point{
					X: a*p.X + c*p.Y + dx,
					Y: b*p.X + d*p.Y + dy,
				}
			}
			ops = append(ops, xf)
		}

		if flags&0x0020 == 0 { // no MORE_COMPONENTS
			break
		}
	}
	return ops, nil
}

func numPoints(cmd Command) int {
	switch cmd {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubeTo:
		return 3
	default:
		return 0
	}
}

func f2dot14(v uint16) float64 {
	return float64(int16(v)) / (1 << 14)
}
