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

// Command versatiles-glyphs renders TrueType/OpenType fonts into the
// signed-distance-field glyph tiles served by MapLibre/Mapbox-style map
// renderers.
package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "recurse":
		err = runGroup(os.Args[2:], groupByDerivedID)
	case "merge":
		err = runGroup(os.Args[2:], groupAllAsOne)
	case "debug":
		err = runDebug(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Printf("versatiles-glyphs: %v", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  versatiles-glyphs recurse <paths...> [-o DIR | -tar] [--single-thread]
  versatiles-glyphs merge <paths...> [-o DIR | -tar] [--single-thread]
  versatiles-glyphs debug <dir> -f tsv`)
}
