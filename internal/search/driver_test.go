// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package search

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fsidx/internal/fsdb"
	"github.com/jeranaias/fsidx/internal/query"
)

type hit struct {
	ordinal int
	path    string
	size    uint64
	hasSize bool
}

type testSink struct {
	hits     []hit
	warnings []error
	searched []string
	hitErr   error
	cancel   context.CancelFunc
}

func (s *testSink) Searching(folder string)     { s.searched = append(s.searched, folder) }
func (s *testSink) SearchingDone(folder string) {}
func (s *testSink) Warning(err error)           { s.warnings = append(s.warnings, err) }

func (s *testSink) Hit(ordinal int, path []byte, size uint64, hasSize bool) error {
	s.hits = append(s.hits, hit{ordinal: ordinal, path: string(path), size: size, hasSize: hasSize})
	if s.cancel != nil {
		s.cancel()
	}
	return s.hitErr
}

func writeVolume(t *testing.T, dir, name string, paths []string) Volume {
	t.Helper()
	database := filepath.Join(dir, name)
	w, err := fsdb.NewWriter(database)
	require.NoError(t, err)
	for i, p := range paths {
		require.NoError(t, w.Add(fsdb.Entry{Path: []byte(p), Size: uint64(i + 1), HasSize: true}))
	}
	require.NoError(t, w.Commit())
	return Volume{Folder: "/" + name, Database: database}
}

func tokens(t *testing.T, line string) []query.Token {
	t.Helper()
	tok, err := query.Parse(line, query.DefaultFlags())
	require.NoError(t, err)
	return tok
}

func TestRunStreamsHitsInOrder(t *testing.T) {
	dir := t.TempDir()
	vol1 := writeVolume(t, dir, "one.fsdb", []string{"/one", "/one/a.flac", "/one/b.mp3"})
	vol2 := writeVolume(t, dir, "two.fsdb", []string{"/two", "/two/c.flac"})

	sink := &testSink{}
	err := Run(context.Background(), []Volume{vol1, vol2}, tokens(t, "*.flac"), sink)
	require.NoError(t, err)

	require.Len(t, sink.hits, 2)
	assert.Equal(t, hit{ordinal: 1, path: "/one/a.flac", size: 2, hasSize: true}, sink.hits[0])
	assert.Equal(t, hit{ordinal: 2, path: "/two/c.flac", size: 2, hasSize: true}, sink.hits[1])
	assert.Equal(t, []string{"/one.fsdb", "/two.fsdb"}, sink.searched)
}

func TestRunOrdinalsSpanVolumes(t *testing.T) {
	dir := t.TempDir()
	vol1 := writeVolume(t, dir, "one.fsdb", []string{"/one/a", "/one/b"})
	vol2 := writeVolume(t, dir, "two.fsdb", []string{"/two/c"})

	sink := &testSink{}
	require.NoError(t, Run(context.Background(), []Volume{vol1, vol2}, tokens(t, `""`), sink))
	require.Len(t, sink.hits, 3)
	for i, h := range sink.hits {
		assert.Equal(t, i+1, h.ordinal)
	}
}

func TestRunSkipsMissingDatabase(t *testing.T) {
	dir := t.TempDir()
	missing := Volume{Folder: "/gone", Database: filepath.Join(dir, "gone.fsdb")}
	vol := writeVolume(t, dir, "one.fsdb", []string{"/one/a.flac"})

	sink := &testSink{}
	require.NoError(t, Run(context.Background(), []Volume{missing, vol}, tokens(t, "flac"), sink))
	assert.Len(t, sink.warnings, 1)
	assert.Len(t, sink.hits, 1)
}

func TestRunContinuesAfterMalformedDatabase(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.fsdb")
	require.NoError(t, os.WriteFile(bad, []byte("junk junk junk"), 0644))
	vol := writeVolume(t, dir, "good.fsdb", []string{"/good/a.flac"})

	sink := &testSink{}
	err := Run(context.Background(), []Volume{{Folder: "/bad", Database: bad}, vol}, tokens(t, "flac"), sink)
	require.NoError(t, err)
	require.Len(t, sink.warnings, 1)
	assert.ErrorIs(t, sink.warnings[0], fsdb.ErrMalformedDatabase)
	assert.Len(t, sink.hits, 1)
}

func TestRunCancellation(t *testing.T) {
	dir := t.TempDir()
	vol := writeVolume(t, dir, "one.fsdb", []string{"/one/a", "/one/b", "/one/c"})

	ctx, cancel := context.WithCancel(context.Background())
	sink := &testSink{cancel: cancel}
	err := Run(ctx, []Volume{vol}, tokens(t, `""`), sink)
	assert.ErrorIs(t, err, ErrCancelled)
	// The cancel fired after the first hit, so no further hits arrive.
	assert.Len(t, sink.hits, 1)
}

func TestRunPropagatesSinkErrors(t *testing.T) {
	dir := t.TempDir()
	vol := writeVolume(t, dir, "one.fsdb", []string{"/one/a"})

	sinkErr := errors.New("broken pipe")
	sink := &testSink{hitErr: sinkErr}
	err := Run(context.Background(), []Volume{vol}, tokens(t, `""`), sink)
	assert.ErrorIs(t, err, sinkErr)
}
