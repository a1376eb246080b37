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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/versatiles-org/versatiles-glyphs-go/glyphpb"
)

// runDebug implements "debug <dir> -f tsv": it walks dir for rendered
// .pbf files and dumps one line per glyph, for diffing a render against a
// reference.
func runDebug(args []string) error {
	fset := flag.NewFlagSet("debug", flag.ContinueOnError)
	format := fset.String("f", "tsv", "output format (only tsv is supported)")
	// flags may appear before or after the directory argument
	var dirs []string
	for rest := args; ; rest = fset.Args()[1:] {
		if err := fset.Parse(rest); err != nil {
			return err
		}
		if fset.NArg() == 0 {
			break
		}
		dirs = append(dirs, fset.Arg(0))
	}
	if *format != "tsv" {
		return fmt.Errorf("unsupported format %q", *format)
	}
	if len(dirs) != 1 {
		return fmt.Errorf("debug requires exactly one directory argument")
	}
	dir := dirs[0]

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	fmt.Fprintln(w, "file\tfont\trange\tid\twidth\theight\tleft\ttop\tadvance")

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".pbf") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		stack, err := glyphpb.Decode(data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		for _, g := range stack.Glyphs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
				rel, stack.Name, stack.Range, g.ID, g.Width, g.Height, g.Left, g.Top, g.Advance)
		}
		return nil
	})
}
