// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/fsidx/internal/util"
)

// DefaultPath returns $HOME/.fsidx/fsidx.toml.
func DefaultPath() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine home directory: %w", err)
		}
	}
	return filepath.Join(home, ".fsidx", "fsidx.toml"), nil
}

// WriteTemplate writes a starter configuration to path. It refuses to
// overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	cfg := Default()
	cfg.Index.Folder = []string{"~/Documents"}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# fsidx configuration file")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintln(&buf, "# List the folders to index under [index] and run `fsidx update`.")
	fmt.Fprintln(&buf, "# Database files are stored next to this file unless dbpath is set.")
	fmt.Fprintln(&buf, "")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0644)
}
