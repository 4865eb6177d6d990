// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/jeranaias/fsidx/internal/fsdb"
	"github.com/jeranaias/fsidx/internal/query"
)

// ErrCancelled is returned when the cancel source fires mid-search.
var ErrCancelled = errors.New("search cancelled")

// Volume pairs a configured root folder with its database file.
type Volume struct {
	Folder   string
	Database string
}

// Sink receives search progress and results. Hit ordinals are 1-based
// and increase across the whole search. The path slice is only valid for
// the duration of the call; implementations must copy it to retain it.
type Sink interface {
	Searching(folder string)
	SearchingDone(folder string)
	Hit(ordinal int, path []byte, size uint64, hasSize bool) error
	Warning(err error)
}

// Run evaluates tokens against every volume in order. A missing database
// is a warning; a malformed one aborts that volume only. Cancellation is
// polled between records and surfaces as ErrCancelled.
func Run(ctx context.Context, volumes []Volume, tokens []query.Token, sink Sink) error {
	ordinal := 0
	for _, vol := range volumes {
		sink.Searching(vol.Folder)
		err := runVolume(ctx, vol, tokens, sink, &ordinal)
		switch {
		case err == nil:
			sink.SearchingDone(vol.Folder)
		case errors.Is(err, context.Canceled):
			return ErrCancelled
		case errors.Is(err, fsdb.ErrMalformedDatabase) || os.IsNotExist(err):
			sink.Warning(err)
		default:
			return err
		}
	}
	return nil
}

func runVolume(ctx context.Context, vol Volume, tokens []query.Token, sink Sink, ordinal *int) error {
	r, err := fsdb.Open(vol.Database)
	if err != nil {
		return err
	}
	defer r.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, size, hasSize, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if query.Match(tokens, string(path)) {
			*ordinal++
			if err := sink.Hit(*ordinal, path, size, hasSize); err != nil {
				return err
			}
		}
	}
}
