// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// init.go - the "fsidx init" command.
//
// Command: init
// Short:   Write a starter configuration file
package cli

import (
	"fmt"

	"github.com/jeranaias/fsidx/internal/config"
)

// HandleInit writes a template fsidx.toml to the default location, or to
// the --config-file path when one was given.
func HandleInit(opts *Options, args []string) error {
	if len(args) > 0 {
		return usageErrorf("init takes no arguments")
	}
	path := opts.ConfigFile
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	if err := config.WriteTemplate(path); err != nil {
		return err
	}
	fmt.Printf("Wrote %s - list your folders there and run `fsidx update`.\n", path)
	return nil
}
