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

import "github.com/versatiles-org/versatiles-glyphs-go/header"

// t2decoder interprets a Type 2 charstring and accumulates the resulting
// path as cubic Bezier operations. Hinting operators (hstem, vstem,
// hintmask, cntrmask) are consumed only for stack bookkeeping: this
// pipeline rasterizes outlines directly and has no use for hint data.
type t2decoder struct {
	gsubrs, lsubrs [][]byte
	gbias, lbias   int

	stack     []float64
	x, y      float64
	nStems    int
	haveWidth bool
	open      bool

	ops  []PathOp
	xmin, ymin, xmax, ymax float64
	haveBBox               bool
}

func (d *t2decoder) clear() { d.stack = d.stack[:0] }

func (d *t2decoder) track(x, y float64) {
	if !d.haveBBox || x < d.xmin {
		d.xmin = x
	}
	if !d.haveBBox || y < d.ymin {
		d.ymin = y
	}
	if !d.haveBBox || x > d.xmax {
		d.xmax = x
	}
	if !d.haveBBox || y > d.ymax {
		d.ymax = y
	}
	d.haveBBox = true
}

func (d *t2decoder) bbox() Rect {
	if !d.haveBBox {
		return Rect{}
	}
	return Rect{int16(d.xmin), int16(d.ymin), int16(d.xmax), int16(d.ymax)}
}

func (d *t2decoder) moveTo(dx, dy float64) {
	if d.open {
		d.ops = append(d.ops, PathOp{Cmd: Close})
	}
	d.x += dx
	d.y += dy
	d.ops = append(d.ops, PathOp{Cmd: MoveTo, Pts: [3]Point{{d.x, d.y}}})
	d.track(d.x, d.y)
	d.open = true
}

func (d *t2decoder) lineTo(dx, dy float64) {
	d.x += dx
	d.y += dy
	d.ops = append(d.ops, PathOp{Cmd: LineTo, Pts: [3]Point{{d.x, d.y}}})
	d.track(d.x, d.y)
}

func (d *t2decoder) curveTo(dxa, dya, dxb, dyb, dxc, dyc float64) {
	xa, ya := d.x+dxa, d.y+dya
	xb, yb := xa+dxb, ya+dyb
	d.x, d.y = xb+dxc, yb+dyc
	d.ops = append(d.ops, PathOp{Cmd: CubeTo, Pts: [3]Point{{xa, ya}, {xb, yb}, {d.x, d.y}}})
	d.track(xa, ya)
	d.track(xb, yb)
	d.track(d.x, d.y)
}

// takeWidth drops a leading width operand from the stack the first time a
// stem or move-to operator runs, if the operand count indicates one is
// present (odd count for stems, one more than expected for moves). The
// width value itself is metrics data this pipeline already has from hmtx,
// so it is discarded rather than stored.
func (d *t2decoder) takeWidth(hasExtra bool) {
	if d.haveWidth {
		return
	}
	d.haveWidth = true
	if hasExtra && len(d.stack) > 0 {
		d.stack = d.stack[1:]
	}
}

const maxCallDepth = 10

func (d *t2decoder) run(code []byte) error {
	return d.exec(code, 0)
}

func (d *t2decoder) exec(code []byte, depth int) error {
	if depth > maxCallDepth {
		return &header.ErrInvalid{Reason: "CFF: charstring call depth exceeded"}
	}
	for len(code) > 0 {
		b0 := code[0]
		switch {
		case b0 >= 32 && b0 <= 246:
			d.stack = append(d.stack, float64(int(b0)-139))
			code = code[1:]
			continue
		case b0 >= 247 && b0 <= 250:
			if len(code) < 2 {
				return &header.ErrInvalid{Reason: "CFF: truncated charstring"}
			}
			d.stack = append(d.stack, float64((int(b0)-247)*256+int(code[1])+108))
			code = code[2:]
			continue
		case b0 >= 251 && b0 <= 254:
			if len(code) < 2 {
				return &header.ErrInvalid{Reason: "CFF: truncated charstring"}
			}
			d.stack = append(d.stack, float64(-(int(b0)-251)*256-int(code[1])-108))
			code = code[2:]
			continue
		case b0 == 28:
			if len(code) < 3 {
				return &header.ErrInvalid{Reason: "CFF: truncated charstring"}
			}
			v := int16(code[1])<<8 | int16(code[2])
			d.stack = append(d.stack, float64(v))
			code = code[3:]
			continue
		case b0 == 255:
			if len(code) < 5 {
				return &header.ErrInvalid{Reason: "CFF: truncated charstring"}
			}
			v := int32(code[1])<<24 | int32(code[2])<<16 | int32(code[3])<<8 | int32(code[4])
			d.stack = append(d.stack, float64(v)/65536)
			code = code[5:]
			continue
		}

		op := int(b0)
		code = code[1:]
		if op == 12 {
			if len(code) < 1 {
				return &header.ErrInvalid{Reason: "CFF: truncated charstring"}
			}
			op = 0xc00 | int(code[0])
			code = code[1:]
		}

		switch op {
		case 21: // rmoveto
			d.takeWidth(len(d.stack) > 2)
			if len(d.stack) >= 2 {
				d.moveTo(d.stack[0], d.stack[1])
			}
			d.clear()
		case 22: // hmoveto
			d.takeWidth(len(d.stack) > 1)
			if len(d.stack) >= 1 {
				d.moveTo(d.stack[0], 0)
			}
			d.clear()
		case 4: // vmoveto
			d.takeWidth(len(d.stack) > 1)
			if len(d.stack) >= 1 {
				d.moveTo(0, d.stack[0])
			}
			d.clear()
		case 5: // rlineto
			for i := 0; i+1 < len(d.stack); i += 2 {
				d.lineTo(d.stack[i], d.stack[i+1])
			}
			d.clear()
		case 6, 7: // hlineto, vlineto
			horizontal := op == 6
			for _, v := range d.stack {
				if horizontal {
					d.lineTo(v, 0)
				} else {
					d.lineTo(0, v)
				}
				horizontal = !horizontal
			}
			d.clear()
		case 8: // rrcurveto
			s := d.stack
			for len(s) >= 6 {
				d.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				s = s[6:]
			}
			d.clear()
		case 24: // rcurveline
			s := d.stack
			for len(s) >= 8 {
				d.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				s = s[6:]
			}
			if len(s) >= 2 {
				d.lineTo(s[0], s[1])
			}
			d.clear()
		case 25: // rlinecurve
			s := d.stack
			for len(s) >= 8 {
				d.lineTo(s[0], s[1])
				s = s[2:]
			}
			if len(s) >= 6 {
				d.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
			}
			d.clear()
		case 26: // vvcurveto
			s := d.stack
			var dx1 float64
			if len(s)%4 != 0 {
				dx1, s = s[0], s[1:]
			}
			for len(s) >= 4 {
				d.curveTo(dx1, s[0], s[1], s[2], 0, s[3])
				dx1 = 0
				s = s[4:]
			}
			d.clear()
		case 27: // hhcurveto
			s := d.stack
			var dy1 float64
			if len(s)%4 != 0 {
				dy1, s = s[0], s[1:]
			}
			for len(s) >= 4 {
				d.curveTo(s[0], dy1, s[1], s[2], s[3], 0)
				dy1 = 0
				s = s[4:]
			}
			d.clear()
		case 31, 30: // hvcurveto, vhcurveto
			s := d.stack
			horizontal := op == 31
			for len(s) >= 4 {
				var extra float64
				if len(s) == 5 {
					extra = s[4]
				}
				if horizontal {
					d.curveTo(s[0], 0, s[1], s[2], extra, s[3])
				} else {
					d.curveTo(0, s[0], s[1], s[2], s[3], extra)
				}
				horizontal = !horizontal
				s = s[4:]
			}
			d.clear()
		case 34: // hflex
			if len(d.stack) >= 7 {
				s := d.stack
				d.curveTo(s[0], 0, s[1], s[2], s[3], 0)
				d.curveTo(s[4], 0, s[5], -s[2], s[6], 0)
			}
			d.clear()
		case 35: // flex
			if len(d.stack) >= 13 {
				s := d.stack
				d.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				d.curveTo(s[6], s[7], s[8], s[9], s[10], s[11])
			}
			d.clear()
		case 36: // hflex1
			if len(d.stack) >= 9 {
				s := d.stack
				d.curveTo(s[0], s[1], s[2], s[3], s[4], 0)
				dy := s[1] + s[3] + s[7]
				d.curveTo(s[5], 0, s[6], s[7], s[8], -dy)
			}
			d.clear()
		case 37: // flex1
			if len(d.stack) >= 11 {
				s := d.stack
				d.curveTo(s[0], s[1], s[2], s[3], s[4], s[5])
				dx := s[0] + s[2] + s[4] + s[6] + s[8]
				dy := s[1] + s[3] + s[5] + s[7] + s[9]
				if abs(dx) > abs(dy) {
					d.curveTo(s[6], s[7], s[8], s[9], s[10], -dy)
				} else {
					d.curveTo(s[6], s[7], s[8], s[9], -dx, s[10])
				}
			}
			d.clear()
		case 1, 3, 18, 23: // hstem, vstem, hstemhm, vstemhm
			d.takeWidth(len(d.stack)%2 == 1)
			d.nStems += len(d.stack) / 2
			d.clear()
		case 19, 20: // hintmask, cntrmask
			d.takeWidth(len(d.stack)%2 == 1)
			d.nStems += len(d.stack) / 2
			d.clear()
			skip := (d.nStems + 7) / 8
			if skip > len(code) {
				return &header.ErrInvalid{Reason: "CFF: truncated hintmask"}
			}
			code = code[skip:]
		case 11: // return
			return nil
		case 14: // endchar
			d.takeWidth(len(d.stack) == 1 || len(d.stack) > 4)
			if d.open {
				d.ops = append(d.ops, PathOp{Cmd: Close})
				d.open = false
			}
			return nil
		default:
			switch {
			case op == 10: // callsubr
				if len(d.stack) < 1 {
					return &header.ErrInvalid{Reason: "CFF: stack underflow"}
				}
				idx := int(d.stack[len(d.stack)-1]) + d.lbias
				d.stack = d.stack[:len(d.stack)-1]
				if idx < 0 || idx >= len(d.lsubrs) {
					return &header.ErrInvalid{Reason: "CFF: bad local subr index"}
				}
				if err := d.exec(d.lsubrs[idx], depth+1); err != nil {
					return err
				}
			case op == 29: // callgsubr
				if len(d.stack) < 1 {
					return &header.ErrInvalid{Reason: "CFF: stack underflow"}
				}
				idx := int(d.stack[len(d.stack)-1]) + d.gbias
				d.stack = d.stack[:len(d.stack)-1]
				if idx < 0 || idx >= len(d.gsubrs) {
					return &header.ErrInvalid{Reason: "CFF: bad global subr index"}
				}
				if err := d.exec(d.gsubrs[idx], depth+1); err != nil {
					return err
				}
			default:
				// unsupported or arithmetic operator (abs, add, and,
				// callothersubr, ...): these only matter for Type 1-style
				// hint replacement and MM fonts, neither exercised by the
				// fonts this pipeline renders; drop the operands and move
				// on instead of failing the whole glyph.
				d.clear()
			}
		}
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
