// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fsidx/internal/query"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fsidx.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
[index]
folder = ["/Volumes/Music", "/data"]
dbpath = "/var/lib/fsidx"

[locate]
case_sensitive = true
order = "same-order"
scope = "last-element"
smart_spaces = false
word_boundaries = true
literal_separator = true
mode = "glob"
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Volumes/Music", "/data"}, cfg.Index.Folder)
	assert.Equal(t, "/var/lib/fsidx", cfg.Index.DBPath)

	flags, err := cfg.Flags()
	require.NoError(t, err)
	assert.Equal(t, query.Flags{
		CaseSensitive:    true,
		Order:            query.SameOrder,
		Scope:            query.LastElement,
		SmartSpaces:      false,
		WordBoundaries:   true,
		LiteralSeparator: true,
		Mode:             query.ModeGlob,
	}, flags)
}

func TestLoadDefaultsDBPathToConfigDir(t *testing.T) {
	path := writeConfig(t, `
[index]
folder = ["/data"]
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), cfg.Index.DBPath)

	flags, err := cfg.Flags()
	require.NoError(t, err)
	assert.Equal(t, query.DefaultFlags(), flags)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[index]
folder = ["/data"]
folders = ["/typo"]
`)
	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestLoadRejectsEmptyFolderList(t *testing.T) {
	path := writeConfig(t, `
[index]
folder = []
`)
	_, err := LoadFromPath(path)
	require.Error(t, err)
}

func TestLoadRejectsBadEnumValues(t *testing.T) {
	path := writeConfig(t, `
[index]
folder = ["/data"]

[locate]
order = "sideways"
`)
	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locate.order")
}

func TestLoadResolvesTilde(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	path := writeConfig(t, `
[index]
folder = ["~/Music", "/absolute"]
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/home/tester/Music", "/absolute"}, cfg.Index.Folder)
}

func TestResolvePathPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FSIDX_CONFIG_FILE", "")

	homeConfig := filepath.Join(home, ".fsidx", "fsidx.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(homeConfig), 0755))
	require.NoError(t, os.WriteFile(homeConfig, []byte("[index]\nfolder=[\"/a\"]\n"), 0644))

	// Home config is found.
	path, err := resolvePath("")
	require.NoError(t, err)
	assert.Equal(t, homeConfig, path)

	// The environment wins over the home directory.
	t.Setenv("FSIDX_CONFIG_FILE", "/env/fsidx.toml")
	path, err = resolvePath("")
	require.NoError(t, err)
	assert.Equal(t, "/env/fsidx.toml", path)

	// An explicit path wins over everything.
	path, err = resolvePath("/explicit/fsidx.toml")
	require.NoError(t, err)
	assert.Equal(t, "/explicit/fsidx.toml", path)
}

func TestDatabaseFile(t *testing.T) {
	assert.Equal(t,
		"/db/_Volumes_Music.fsdb",
		DatabaseFile("/db", "/Volumes/Music"))
	assert.Equal(t,
		"/db/_data.fsdb",
		DatabaseFile("/db", "/data"))
}

func TestVolumesKeepConfigurationOrder(t *testing.T) {
	cfg := Default()
	cfg.Index.Folder = []string{"/b", "/a"}
	cfg.Index.DBPath = "/db"
	volumes := cfg.Volumes()
	require.Len(t, volumes, 2)
	assert.Equal(t, "/b", volumes[0].Folder)
	assert.Equal(t, "/db/_b.fsdb", volumes[0].Database)
	assert.Equal(t, "/a", volumes[1].Folder)
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fsidx.toml")
	require.NoError(t, WriteTemplate(path))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Index.Folder)

	// Refuses to overwrite.
	require.Error(t, WriteTemplate(path))
}
