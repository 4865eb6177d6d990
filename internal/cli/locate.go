// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// locate.go - the "fsidx locate" command.
//
// Command: locate
// Short:   Run a query against the databases and print every hit
//
// Examples:
//   fsidx locate Anne Miller          Plain text, smart spaces
//   fsidx locate -c README            Case-sensitive from here on
//   fsidx locate --ls '/**/*.mp4'     Glob with literal separator
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/fsidx/internal/config"
	"github.com/jeranaias/fsidx/internal/query"
	"github.com/jeranaias/fsidx/internal/search"
)

// HandleLocate parses the locate arguments as a query and streams the
// results to stdout, one hit per line.
func HandleLocate(cfg *config.Config, opts *Options, args []string) error {
	defaults, err := cfg.Flags()
	if err != nil {
		return err
	}
	tokens, err := query.ParseArgs(args, defaults)
	if err != nil {
		return err
	}
	sink := &printSink{
		out:     os.Stdout,
		errOut:  os.Stderr,
		verbose: opts.Verbose(),
		styles:  NewStyles(),
	}
	return search.Run(context.Background(), cfg.Volumes(), tokens, sink)
}

// printSink writes hits to the terminal. With a non-nil selection it also
// remembers every hit so the shell's open commands can refer back to it.
type printSink struct {
	out       io.Writer
	errOut    io.Writer
	verbose   bool
	styles    *Styles
	selection *Selection
	hits      int
}

func (s *printSink) Searching(folder string) {
	if s.verbose {
		fmt.Fprintf(s.out, "Searching: %s\n", folder)
	}
}

func (s *printSink) SearchingDone(folder string) {
	if s.verbose {
		fmt.Fprintf(s.out, "Searching %s finished\n", folder)
	}
}

func (s *printSink) Hit(ordinal int, path []byte, size uint64, hasSize bool) error {
	s.hits++
	if s.selection != nil {
		s.selection.add(path, size, hasSize)
	}
	var err error
	if hasSize {
		_, err = fmt.Fprintf(s.out, "%s %s %s\n",
			s.styles.Ordinal.Render(fmt.Sprintf("%d.", ordinal)),
			path,
			s.styles.Size.Render(fmt.Sprintf("(%d bytes)", size)))
	} else {
		_, err = fmt.Fprintf(s.out, "%s %s\n",
			s.styles.Ordinal.Render(fmt.Sprintf("%d.", ordinal)),
			path)
	}
	return err
}

func (s *printSink) Warning(err error) {
	fmt.Fprintf(s.errOut, "%s: %v\n", s.styles.Error.Render("Warning"), err)
}
