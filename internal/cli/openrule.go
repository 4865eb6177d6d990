// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// openrule.go - selection references for the shell's open command.
//
// A selection is the numbered result list of the last query. Open rules
// pick entries out of it:
//
//	12.            one entry by its ordinal
//	3.-7.          a range of ordinals
//	*.jpg          every selected path matching the glob
//	12./../*.flac  a glob anchored at the folder of entry 12
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/fsidx/internal/query"
)

// Selection remembers the hits of the most recent query.
type Selection struct {
	items []selectionItem
}

type selectionItem struct {
	path    string
	size    uint64
	hasSize bool
}

func (s *Selection) add(path []byte, size uint64, hasSize bool) {
	s.items = append(s.items, selectionItem{
		path:    string(path),
		size:    size,
		hasSize: hasSize,
	})
}

// Len returns the number of selected entries.
func (s *Selection) Len() int {
	return len(s.items)
}

// Path returns the path of the 1-based ordinal.
func (s *Selection) Path(ordinal int) (string, bool) {
	if ordinal < 1 || ordinal > len(s.items) {
		return "", false
	}
	return s.items[ordinal-1].path, true
}

type openRuleKind int

const (
	openGlob openRuleKind = iota
	openIndex
	openIndexRange
	openIndexGlob
)

// OpenRule is one parsed open argument.
type OpenRule struct {
	kind       openRuleKind
	index, end int
	glob       string
}

// ParseOpenRule classifies one open argument. Everything that is not an
// ordinal form is treated as a glob over the selection.
func ParseOpenRule(text string) OpenRule {
	if idx, rest, ok := leadingOrdinal(text); ok {
		switch {
		case rest == "":
			return OpenRule{kind: openIndex, index: idx}
		case strings.HasPrefix(rest, "/"):
			return OpenRule{kind: openIndexGlob, index: idx, glob: rest[1:]}
		case strings.HasPrefix(rest, "-"):
			if end, tail, ok := leadingOrdinal(rest[1:]); ok && tail == "" {
				return OpenRule{kind: openIndexRange, index: idx, end: end}
			}
		}
	}
	return OpenRule{kind: openGlob, glob: text}
}

// IsIndexed reports whether the rule refers to ordinals, which lets the
// shell treat a bare "12." line as an open command.
func (r OpenRule) IsIndexed() bool {
	return r.kind != openGlob
}

// leadingOrdinal splits "12.rest" into 12 and "rest".
func leadingOrdinal(text string) (int, string, bool) {
	dot := strings.IndexByte(text, '.')
	if dot < 1 {
		return 0, "", false
	}
	n, err := strconv.Atoi(text[:dot])
	if err != nil || n < 1 {
		return 0, "", false
	}
	return n, text[dot+1:], true
}

// Expand calls f with every selected path the rule refers to.
func (r OpenRule) Expand(sel *Selection, f func(path string) error) error {
	switch r.kind {
	case openIndex:
		return expandIndex(sel, r.index, f)
	case openIndexRange:
		for i := r.index; i <= r.end; i++ {
			if err := expandIndex(sel, i, f); err != nil {
				return err
			}
		}
		return nil
	case openIndexGlob:
		base, ok := sel.Path(r.index)
		if !ok {
			return fmt.Errorf("invalid selection index %d", r.index)
		}
		return expandGlob(sel, normalizeGlob(base+"/"+r.glob), f)
	default:
		return expandGlob(sel, r.glob, f)
	}
}

func expandIndex(sel *Selection, ordinal int, f func(path string) error) error {
	path, ok := sel.Path(ordinal)
	if !ok {
		return fmt.Errorf("invalid selection index %d", ordinal)
	}
	return f(path)
}

func expandGlob(sel *Selection, pattern string, f func(path string) error) error {
	g, err := query.CompileGlob(pattern, false, false)
	if err != nil {
		return err
	}
	for _, item := range sel.items {
		if g.Match(item.path) {
			if err := f(item.path); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeGlob collapses "segment/../" so rules like "12./../*.flac"
// address the parent folder of the selected entry.
func normalizeGlob(pattern string) string {
	for {
		up := strings.Index(pattern, "/../")
		if up < 0 {
			return pattern
		}
		slash := strings.LastIndex(pattern[:up], "/")
		if slash < 0 {
			return pattern
		}
		pattern = pattern[:slash+1] + pattern[up+4:]
	}
}
