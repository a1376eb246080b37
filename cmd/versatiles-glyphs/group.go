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
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/versatiles-org/versatiles-glyphs-go/font"
	"github.com/versatiles-org/versatiles-glyphs-go/fontset"
	"github.com/versatiles-org/versatiles-glyphs-go/sink"
)

type groupMode int

const (
	groupByDerivedID groupMode = iota
	groupAllAsOne
)

// runGroup implements both the "recurse" and "merge" subcommands, which
// differ only in how discovered files are assigned to font-id groups.
func runGroup(args []string, mode groupMode) error {
	fs := flag.NewFlagSet("versatiles-glyphs", flag.ContinueOnError)
	outDir := fs.String("o", "", "output directory")
	useTar := fs.Bool("tar", false, "stream a tar archive to stdout")
	singleThread := fs.Bool("single-thread", false, "render with a single worker")
	// flags may appear before, between or after the paths
	var paths []string
	for rest := args; ; rest = fs.Args()[1:] {
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if fs.NArg() == 0 {
			break
		}
		paths = append(paths, fs.Arg(0))
	}
	if len(paths) == 0 && mode != groupAllAsOne {
		return fmt.Errorf("no input paths given")
	}
	if *outDir == "" && !*useTar {
		return fmt.Errorf("one of -o or -tar is required")
	}

	var files []discovered
	for _, p := range paths {
		d, err := discoverPath(p)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", p, err)
		}
		files = append(files, d...)
	}
	if len(files) == 0 && mode != groupAllAsOne {
		return fmt.Errorf("no font files found")
	}

	set := fontset.New()
	var firstID string
	for _, d := range files {
		data, err := os.ReadFile(d.path)
		if err != nil {
			log.Printf("versatiles-glyphs: skipping %s: %v", d.path, err)
			continue
		}
		f, err := font.Load(data, d.path)
		if err != nil {
			log.Printf("versatiles-glyphs: skipping %s: invalid font: %v", d.path, err)
			continue
		}
		if d.override != nil {
			f.Override(d.override.ID, d.override.Style, d.override.Weight, d.override.Width, d.override.Italic)
		}

		id := f.ID()
		if d.override != nil && d.override.ID != "" {
			id = d.override.ID
		}
		if mode == groupAllAsOne {
			if firstID == "" {
				firstID = id
			}
			id = firstID
		}
		set.Add(id, f)
	}

	dest, closeDest, err := openSink(*outDir, *useTar)
	if err != nil {
		return err
	}
	defer closeDest()

	workers := 0
	if *singleThread {
		workers = 1
	}
	summary, err := set.RenderAll(context.Background(), dest, workers)
	if err != nil {
		return err
	}
	log.Printf("%d fonts, %d glyphs rendered", summary.Fonts, summary.Glyphs)
	return nil
}

func openSink(outDir string, useTar bool) (sink.Sink, func(), error) {
	if useTar {
		return sink.NewTar(os.Stdout), func() {}, nil
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	return sink.NewFS(outDir), func() {}, nil
}
