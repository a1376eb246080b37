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

package font

import (
	"fmt"

	"github.com/versatiles-org/versatiles-glyphs-go/block"
	"github.com/versatiles-org/versatiles-glyphs-go/glyphpb"
	"github.com/versatiles-org/versatiles-glyphs-go/outline"
	"github.com/versatiles-org/versatiles-glyphs-go/sdf"
)

// Font is one loaded font file, ready to be rendered into glyph blocks.
type Font struct {
	raw  *outline.Font
	meta Metadata
	id   string

	codePoints []rune
}

// Load parses a TrueType or OpenType font file and derives its metadata.
// path is used only as a fallback source of family/style information when
// the font's name table is absent or incomplete; it need not be a real
// filesystem path.
func Load(data []byte, path string) (*Font, error) {
	raw, err := outline.Load(data)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}

	md := metadataFromFileName(path)
	md.Weight = raw.Weight
	md.Width = raw.Width
	md.Italic = raw.Italic
	if raw.Names != nil && raw.Names.Family != "" {
		md.Family = raw.Names.Family
		if raw.Names.Subfamily != "" {
			md.Style = raw.Names.Subfamily
		}
	}

	f := &Font{raw: raw, meta: md}
	f.id = slug(md)

	var covered []rune
	for _, r := range raw.CodePoints() {
		if raw.GID(r) != 0 {
			covered = append(covered, r)
		}
	}
	f.codePoints = covered

	return f, nil
}

// ID is the stable identifier this font variant is addressed by, e.g.
// "noto_sans_regular".
func (f *Font) ID() string { return f.id }

// Override replaces derived metadata fields with explicit values from a
// fonts.json entry. A nil field is left as derived. If id is non-empty it
// replaces the computed slug outright; otherwise the slug is recomputed
// from the (possibly now-overridden) metadata.
func (f *Font) Override(id string, style *string, weight, width *int, italic *bool) {
	if style != nil {
		f.meta.Style = *style
	}
	if weight != nil {
		f.meta.Weight = *weight
	}
	if width != nil {
		f.meta.Width = *width
	}
	if italic != nil {
		f.meta.Italic = *italic
	}

	if id != "" {
		f.id = id
		return
	}
	f.id = slug(f.meta)
}

// Metadata returns the family/style information derived for this font.
func (f *Font) Metadata() Metadata { return f.meta }

// CodePoints returns every code point this font can render a real glyph
// for, in ascending order.
func (f *Font) CodePoints() []rune { return f.codePoints }

// Blocks returns the 256-code-point ranges this font has at least one
// renderable glyph in.
func (f *Font) Blocks() []block.Range {
	return block.Partition(f.codePoints)
}

// RenderBlock renders every code point of r that this font covers into a
// glyphs.proto-encoded fontstack message, ready to be written out as one
// file.
func (f *Font) RenderBlock(r block.Range) ([]byte, error) {
	fs := glyphpb.FontStack{
		Name:  f.id,
		Range: r.Name(),
	}

	for cp := r.Start(); cp <= r.End(); cp++ {
		g, ok, err := f.RenderCodePoint(cp)
		if err != nil {
			return nil, err
		}
		if ok {
			fs.Glyphs = append(fs.Glyphs, g)
		}
	}

	return glyphpb.EncodeFontStack(fs), nil
}

// RenderCodePoint renders the single glyph mapped to cp, if any. ok is
// false if this font has no glyph for cp.
func (f *Font) RenderCodePoint(cp rune) (g glyphpb.Glyph, ok bool, err error) {
	gid := f.raw.GID(cp)
	if gid == 0 {
		return glyphpb.Glyph{}, false, nil
	}
	ops, _, hasOutline, err := f.raw.GlyphOutline(gid)
	if err != nil {
		return glyphpb.Glyph{}, false, fmt.Errorf("font: rendering glyph for code point %d: %w", cp, err)
	}
	advance := f.raw.AdvanceWidth(gid)
	bmp := sdf.RenderGlyph(ops, hasOutline, f.raw.UnitsPerEm, advance, sdf.DefaultSize)

	return glyphpb.Glyph{
		ID:      uint32(cp),
		Bitmap:  bmp.Data,
		Width:   uint32(bmp.Width),
		Height:  uint32(bmp.Height),
		Left:    int32(bmp.Left),
		Top:     int32(bmp.Top),
		Advance: uint32(bmp.Advance),
	}, true, nil
}
