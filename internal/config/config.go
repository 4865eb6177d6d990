// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads the fsidx TOML configuration.
//
// The configuration names the indexed root folders, the directory that
// holds the database files and the default locate flags. Search order for
// the file:
//   - --config-file on the command line
//   - $FSIDX_CONFIG_FILE
//   - $HOME/.fsidx/fsidx.toml
//   - /etc/fsidx/fsidx.toml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/fsidx/internal/query"
	"github.com/jeranaias/fsidx/internal/search"
)

// ErrNotFound is returned when no configuration file exists in any of
// the search locations.
var ErrNotFound = errors.New("configuration file not found")

// Config is the decoded fsidx.toml.
type Config struct {
	Index  Index  `toml:"index"`
	Locate Locate `toml:"locate"`
}

// Index lists the indexed roots and where their databases live. When
// DBPath is empty it defaults to the directory of the config file.
type Index struct {
	Folder []string `toml:"folder"`
	DBPath string   `toml:"dbpath"`
}

// Locate holds the default locate flags. Enum values use the dashed
// spellings also accepted on the command line ("any-order", "whole-path",
// "auto", ...).
type Locate struct {
	CaseSensitive    bool   `toml:"case_sensitive"`
	Order            string `toml:"order"`
	Scope            string `toml:"scope"`
	SmartSpaces      bool   `toml:"smart_spaces"`
	WordBoundaries   bool   `toml:"word_boundaries"`
	LiteralSeparator bool   `toml:"literal_separator"`
	Mode             string `toml:"mode"`
}

// Default returns the built-in configuration: no roots, documented locate
// defaults.
func Default() *Config {
	return &Config{
		Locate: Locate{
			Order:       "any-order",
			Scope:       "whole-path",
			SmartSpaces: true,
			Mode:        "auto",
		},
	}
}

// Load resolves and decodes the configuration. explicitPath comes from
// --config-file and wins over the environment and the default locations.
func Load(explicitPath string) (*Config, error) {
	path, err := resolvePath(explicitPath)
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

func resolvePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		return explicitPath, nil
	}
	if env := os.Getenv("FSIDX_CONFIG_FILE"); env != "" {
		return env, nil
	}
	if home := os.Getenv("HOME"); home != "" {
		path := filepath.Join(home, ".fsidx", "fsidx.toml")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	path := "/etc/fsidx/fsidx.toml"
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", ErrNotFound
}

// LoadFromPath decodes one specific file. Unknown keys are rejected so a
// typo in fsidx.toml does not silently fall back to a default.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if len(cfg.Index.Folder) == 0 {
		return nil, fmt.Errorf("%s: [index] folder list is empty", path)
	}
	resolveTilde(cfg)
	if cfg.Index.DBPath == "" {
		cfg.Index.DBPath = filepath.Dir(path)
	}
	if _, err := cfg.Flags(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// resolveTilde expands a leading ~/ in folder entries against $HOME.
func resolveTilde(cfg *Config) {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	for i, folder := range cfg.Index.Folder {
		if folder == "~" {
			cfg.Index.Folder[i] = home
		} else if strings.HasPrefix(folder, "~/") {
			cfg.Index.Folder[i] = filepath.Join(home, folder[2:])
		}
	}
}

// Flags converts the [locate] table into the default query flags.
func (c *Config) Flags() (query.Flags, error) {
	f := query.Flags{
		CaseSensitive:    c.Locate.CaseSensitive,
		SmartSpaces:      c.Locate.SmartSpaces,
		WordBoundaries:   c.Locate.WordBoundaries,
		LiteralSeparator: c.Locate.LiteralSeparator,
	}
	switch c.Locate.Order {
	case "", "any-order":
	case "same-order":
		f.Order = query.SameOrder
	default:
		return f, fmt.Errorf("locate.order: invalid value %q", c.Locate.Order)
	}
	switch c.Locate.Scope {
	case "", "whole-path":
	case "last-element":
		f.Scope = query.LastElement
	default:
		return f, fmt.Errorf("locate.scope: invalid value %q", c.Locate.Scope)
	}
	switch c.Locate.Mode {
	case "", "auto":
	case "plain":
		f.Mode = query.ModePlain
	case "glob":
		f.Mode = query.ModeGlob
	default:
		return f, fmt.Errorf("locate.mode: invalid value %q", c.Locate.Mode)
	}
	return f, nil
}

// DatabaseFile maps a root folder to its database filename under the
// configured database directory: every path separator becomes an
// underscore and the suffix is .fsdb.
func DatabaseFile(dbPath, folder string) string {
	name := strings.ReplaceAll(folder, string(os.PathSeparator), "_") + ".fsdb"
	return filepath.Join(dbPath, name)
}

// Volumes pairs every configured root with its database file, in
// configuration order.
func (c *Config) Volumes() []search.Volume {
	volumes := make([]search.Volume, 0, len(c.Index.Folder))
	for _, folder := range c.Index.Folder {
		volumes = append(volumes, search.Volume{
			Folder:   folder,
			Database: DatabaseFile(c.Index.DBPath, folder),
		})
	}
	return volumes
}
