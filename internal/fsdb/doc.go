// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fsdb implements the on-disk pathname database.
//
// A database file holds the pathnames and file sizes of one configured
// root folder. The file starts with an 8-byte magic/version header and
// continues with delta-compressed records until EOF. Consecutive walker
// paths share long common prefixes, so each record only stores how many
// trailing bytes of the previous path to discard and the literal suffix
// to append.
//
// # File layout
//
//	"fsdb v1\n"                     8-byte header
//	repeated records:
//	  discard     uvarint           trailing bytes to drop from previous path
//	  suffix_len  uvarint           length of the literal suffix
//	  suffix      suffix_len bytes  appended to form the new path
//	  size        uvarint           file size + 1; 0 means "no size"
//
// Integers use the 7-bit little-endian varint encoding from varint.go.
// The size field stores size+1 so that 0 can act as the sentinel for
// directories, symlinks and other non-regular entries.
//
// # Key Types
//
//   - Walk: deterministic recursive folder enumeration
//   - Writer: streaming delta encoder with staged-file atomicity
//   - Reader: streaming decoder yielding borrowed (path, size) views
package fsdb
