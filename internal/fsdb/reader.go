// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package fsdb

import (
	"bufio"
	"io"
	"os"
)

// Reader streams records out of a database file. The decoded path lives
// in a buffer owned by the reader and is overwritten by the next call to
// Next; callers must copy it before retaining.
type Reader struct {
	database string
	file     *os.File
	r        *countingReader
	path     []byte
}

// countingReader tracks the byte offset for malformed-database diagnostics.
type countingReader struct {
	r      *bufio.Reader
	offset int64
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.offset++
	}
	return b, err
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.offset += int64(n)
	return n, err
}

// Open opens a database file and validates its header.
func Open(database string) (*Reader, error) {
	f, err := os.Open(database)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		database: database,
		file:     f,
		r:        &countingReader{r: bufio.NewReader(f)},
	}
	var magic [len(header)]byte
	if _, err := io.ReadFull(r.r, magic[:]); err != nil {
		f.Close()
		return nil, r.malformed("missing header")
	}
	if string(magic[:]) != header {
		f.Close()
		return nil, r.malformed("not a fsdb v1 file")
	}
	return r, nil
}

// Next decodes the next record. It returns the reconstructed path, the
// file size and whether a size is present. A clean end of file returns
// io.EOF; everything else that cuts a record short is reported as a
// MalformedDatabaseError with the offending byte offset.
func (r *Reader) Next() (path []byte, size uint64, hasSize bool, err error) {
	start := r.r.offset
	discard, _, err := readUvarint(r.r)
	if err != nil {
		if err == io.EOF {
			return nil, 0, false, io.EOF
		}
		return nil, 0, false, r.malformed("reading discard count: " + errText(err))
	}
	if discard > uint64(len(r.path)) {
		return nil, 0, false, &MalformedDatabaseError{
			Database: r.database,
			Offset:   start,
			Reason:   "discard count exceeds current path length",
		}
	}
	suffixLen, _, err := readUvarint(r.r)
	if err != nil {
		return nil, 0, false, r.malformed("reading suffix length: " + errText(err))
	}
	keep := len(r.path) - int(discard)
	r.path = r.path[:keep]
	if suffixLen > 0 {
		if cap(r.path) < keep+int(suffixLen) {
			grown := make([]byte, keep, keep+int(suffixLen))
			copy(grown, r.path)
			r.path = grown
		}
		r.path = r.path[:keep+int(suffixLen)]
		if _, err := io.ReadFull(r.r, r.path[keep:]); err != nil {
			return nil, 0, false, r.malformed("reading suffix: " + errText(err))
		}
	}
	sizePlusOne, _, err := readUvarint(r.r)
	if err != nil {
		return nil, 0, false, r.malformed("reading size: " + errText(err))
	}
	if sizePlusOne == 0 {
		return r.path, 0, false, nil
	}
	return r.path, sizePlusOne - 1, true, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

func (r *Reader) malformed(reason string) error {
	return &MalformedDatabaseError{
		Database: r.database,
		Offset:   r.r.offset,
		Reason:   reason,
	}
}

func errText(err error) string {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return "unexpected end of file"
	}
	return err.Error()
}
