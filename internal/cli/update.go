// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// update.go - the "fsidx update" command.
//
// Command: update
// Short:   Rescan every configured folder and rebuild its database
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jeranaias/fsidx/internal/config"
	"github.com/jeranaias/fsidx/internal/fsdb"
)

// HandleUpdate rebuilds the database of every configured root. A failing
// root is reported and does not stop the remaining ones.
func HandleUpdate(ctx context.Context, cfg *config.Config, opts *Options, args []string) error {
	if len(args) > 0 {
		return usageErrorf("update takes no arguments")
	}
	if err := os.MkdirAll(cfg.Index.DBPath, 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	styles := NewStyles()
	events := &updateEvents{styles: styles}
	failed := 0
	for _, vol := range cfg.Volumes() {
		if err := fsdb.Update(ctx, vol.Folder, vol.Database, events); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			failed++
			fmt.Fprintf(os.Stderr, "%s: updating %s: %v\n",
				styles.Error.Render("Error"), vol.Folder, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d folder(s) failed to update", failed)
	}
	return nil
}

// updateEvents prints update progress to the terminal.
type updateEvents struct {
	styles *Styles
}

func (e *updateEvents) Scanning(folder string) {
	fmt.Printf("Scanning: %s\n", folder)
}

func (e *updateEvents) Finished(folder string) {
	fmt.Printf("Finished: %s\n", folder)
}

func (e *updateEvents) Warning(path string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s: %v\n", e.styles.Error.Render("Warning"), path, err)
}
