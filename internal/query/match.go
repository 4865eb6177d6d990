// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"strings"
	"unicode/utf8"
)

// Match evaluates the compiled token list against a candidate absolute
// path. Every token must succeed; an empty token list matches nothing.
//
// Plain tokens search the scope subject under the token's case,
// smart-space and word-boundary rules. With same-order matching the
// search continues at the cursor left behind by the previous plain
// token; the cursor restarts at 0 whenever the scope flips between whole
// path and last element. Glob tokens match the whole subject and leave
// the cursor alone.
func Match(tokens []Token, path string) bool {
	if len(tokens) == 0 {
		return false
	}
	last := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		last = path[i+1:]
	}
	cursor := 0
	scope := WholePath
	for _, t := range tokens {
		subject := path
		if t.Flags.Scope == LastElement {
			subject = last
		}
		if t.Flags.Scope != scope {
			scope = t.Flags.Scope
			cursor = 0
		}
		if t.Glob != nil {
			if !t.Glob.Match(subject) {
				return false
			}
			continue
		}
		start := 0
		if t.Flags.Order == SameOrder {
			start = cursor
		}
		_, end, ok := findFragment(subject, t.Text, start, t.Flags)
		if !ok {
			return false
		}
		cursor = end
	}
	return true
}

// findFragment locates the first acceptable occurrence of needle in
// subject at or after start. At every candidate position the shortest
// match permitted by the smart-space rules is taken; if word boundaries
// are requested and the match fails the boundary check, the search
// continues at the next position.
func findFragment(subject, needle string, start int, f Flags) (int, int, bool) {
	for pos := start; pos <= len(subject); {
		if end, ok := matchFragmentAt(subject, pos, needle, f); ok {
			if !f.WordBoundaries || boundaryOK(subject, pos, end) {
				return pos, end, true
			}
		}
		if pos == len(subject) {
			break
		}
		_, sz := utf8.DecodeRuneInString(subject[pos:])
		pos += sz
	}
	return 0, 0, false
}

// matchFragmentAt matches needle anchored at pos, returning the end
// offset of the shortest match. A literal space in the needle matches
// one of space, dash, underscore or tab, or nothing at all, when smart
// spaces are active.
func matchFragmentAt(subject string, pos int, needle string, f Flags) (int, bool) {
	if needle == "" {
		return pos, true
	}
	nr, nsz := utf8.DecodeRuneInString(needle)
	rest := needle[nsz:]
	if nr == ' ' && f.SmartSpaces {
		if end, ok := matchFragmentAt(subject, pos, rest, f); ok {
			return end, true
		}
		if pos < len(subject) {
			sr, ssz := utf8.DecodeRuneInString(subject[pos:])
			if sr == ' ' || sr == '-' || sr == '_' || sr == '\t' {
				return matchFragmentAt(subject, pos+ssz, rest, f)
			}
		}
		return 0, false
	}
	if pos >= len(subject) {
		return 0, false
	}
	sr, ssz := utf8.DecodeRuneInString(subject[pos:])
	// Invalid bytes fold to themselves: compare them verbatim instead of
	// through the replacement rune.
	if (sr == utf8.RuneError && ssz == 1) || (nr == utf8.RuneError && nsz == 1) {
		if subject[pos] != needle[0] {
			return 0, false
		}
	} else if !runesEqual(sr, nr, f.CaseSensitive) {
		return 0, false
	}
	return matchFragmentAt(subject, pos+ssz, rest, f)
}

// boundaryOK checks the word-boundary condition on the match [s,e): the
// character before the match must not share a class with the first
// matched character, and the character after must not share a class with
// the last matched one. Classes are lowercase, uppercase, digit and
// other, which makes the lowercase-to-uppercase transition a boundary as
// well. An empty match passes.
func boundaryOK(subject string, s, e int) bool {
	if s == e {
		return true
	}
	if s > 0 {
		prev, _ := utf8.DecodeLastRuneInString(subject[:s])
		first, _ := utf8.DecodeRuneInString(subject[s:])
		if classOf(prev) == classOf(first) {
			return false
		}
	}
	if e < len(subject) {
		last, _ := utf8.DecodeLastRuneInString(subject[:e])
		next, _ := utf8.DecodeRuneInString(subject[e:])
		if classOf(last) == classOf(next) {
			return false
		}
	}
	return true
}
