// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsdb

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// header identifies a version-1 database file.
const header = "fsdb v1\n"

// Writer streams delta-compressed records into a staged database file.
// The target path is only touched by Commit, which atomically renames the
// fully written staging file into place; Abort (or a failed Commit)
// removes the staging file so readers never observe a half-written
// database.
type Writer struct {
	target string
	staged string
	file   *os.File
	w      *bufio.Writer
	prev   []byte
	buf    []byte
}

// NewWriter creates the staging file next to target and writes the header.
func NewWriter(target string) (*Writer, error) {
	dir := filepath.Dir(target)
	f, err := os.CreateTemp(dir, filepath.Base(target)+".tmp-")
	if err != nil {
		return nil, fmt.Errorf("creating staging file: %w", err)
	}
	w := &Writer{
		target: target,
		staged: f.Name(),
		file:   f,
		w:      bufio.NewWriter(f),
	}
	if _, err := w.w.WriteString(header); err != nil {
		w.Abort()
		return nil, err
	}
	return w, nil
}

// Add encodes one walker entry. Entries must arrive in walker order for
// the prefix compression to be effective; correctness does not depend on
// the order.
func (w *Writer) Add(e Entry) error {
	lcp := commonPrefix(w.prev, e.Path)
	w.buf = w.buf[:0]
	w.buf = appendUvarint(w.buf, uint64(len(w.prev)-lcp))
	w.buf = appendUvarint(w.buf, uint64(len(e.Path)-lcp))
	w.buf = append(w.buf, e.Path[lcp:]...)
	if e.HasSize {
		w.buf = appendUvarint(w.buf, e.Size+1)
	} else {
		w.buf = appendUvarint(w.buf, 0)
	}
	if _, err := w.w.Write(w.buf); err != nil {
		return err
	}
	w.prev = append(w.prev[:0], e.Path...)
	return nil
}

// Commit flushes and syncs the staging file, then renames it over the
// target. On any error the staging file is removed.
func (w *Writer) Commit() error {
	if err := w.w.Flush(); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Sync(); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.staged)
		return err
	}
	if err := os.Rename(w.staged, w.target); err != nil {
		os.Remove(w.staged)
		return fmt.Errorf("replacing database: %w", err)
	}
	w.file = nil
	return nil
}

// Abort discards the staging file. Safe to call after Commit.
func (w *Writer) Abort() {
	if w.file == nil {
		return
	}
	w.file.Close()
	os.Remove(w.staged)
	w.file = nil
}

func commonPrefix(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
