// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainTexts(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		if t.Glob == nil {
			out = append(out, t.Text)
		}
	}
	return out
}

func TestParseSplitsOnWhitespace(t *testing.T) {
	tokens, err := Parse("This text\tis split  on whitespace", DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []string{"This", "text", "is", "split", "on", "whitespace"}, plainTexts(tokens))
}

func TestParseQuotedLiterals(t *testing.T) {
	tokens, err := Parse(`Herr "Max Mustermann"`, DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []string{"Herr", "Max Mustermann"}, plainTexts(tokens))

	// Quote segments join with the surrounding word.
	tokens, err = Parse(`a"bc"de`, DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []string{"abcde"}, plainTexts(tokens))
}

func TestParseQuoteEscapes(t *testing.T) {
	tokens, err := Parse(`"tab\there" "q\"uote" "back\\slash"`, DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []string{"tab\there", `q"uote`, `back\slash`}, plainTexts(tokens))
}

func TestParseRejectsBadEscapes(t *testing.T) {
	_, err := Parse(`"bad\x"`, DefaultFlags())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseRejectsUnterminatedQuote(t *testing.T) {
	_, err := Parse(`"open ended`, DefaultFlags())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseBackslashIsLiteralOutsideQuotes(t *testing.T) {
	tokens, err := Parse(`a\b`, Flags{}) // smart spaces off, keep the raw text
	require.NoError(t, err)
	assert.Equal(t, []string{`a\b`}, plainTexts(tokens))
}

func TestParseFlagSnapshots(t *testing.T) {
	tokens, err := Parse("before -c -l after", DefaultFlags())
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.False(t, tokens[0].Flags.CaseSensitive)
	assert.Equal(t, WholePath, tokens[0].Flags.Scope)
	assert.True(t, tokens[1].Flags.CaseSensitive)
	assert.Equal(t, LastElement, tokens[1].Flags.Scope)
}

func TestParseConcatenatedShortFlags(t *testing.T) {
	tokens, err := Parse("-clo x", DefaultFlags())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.True(t, tokens[0].Flags.CaseSensitive)
	assert.Equal(t, LastElement, tokens[0].Flags.Scope)
	assert.Equal(t, SameOrder, tokens[0].Flags.Order)
}

func TestParseRejectsUnknownFlags(t *testing.T) {
	_, err := Parse("--frobnicate x", DefaultFlags())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	_, err = Parse("-cx", DefaultFlags())
	require.ErrorAs(t, err, &parseErr)
}

func TestParseSingleDashIsText(t *testing.T) {
	tokens, err := Parse("a - b", DefaultFlags())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "-", "b"}, plainTexts(tokens))
}

func TestParseModeClassification(t *testing.T) {
	// auto: metacharacters make a glob
	tokens, err := Parse("plain *.flac", DefaultFlags())
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Nil(t, tokens[0].Glob)
	assert.NotNil(t, tokens[1].Glob)

	// -1 forces plain even with metacharacters
	tokens, err = Parse("-1 *.flac", DefaultFlags())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Nil(t, tokens[0].Glob)

	// -2 forces glob
	tokens, err = Parse("-2 flac", DefaultFlags())
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.NotNil(t, tokens[0].Glob)
}

func TestParseArgsMatchesParse(t *testing.T) {
	fromLine, err := Parse("-c Foo *.mp4", DefaultFlags())
	require.NoError(t, err)
	fromArgs, err := ParseArgs([]string{"-c", "Foo", "*.mp4"}, DefaultFlags())
	require.NoError(t, err)
	require.Len(t, fromArgs, len(fromLine))
	for i := range fromLine {
		assert.Equal(t, fromLine[i].Text, fromArgs[i].Text)
		assert.Equal(t, fromLine[i].Flags, fromArgs[i].Flags)
		assert.Equal(t, fromLine[i].Glob == nil, fromArgs[i].Glob == nil)
	}
}

func TestSmartSpaceCanonicalization(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"AnneMiller", "Anne Miller"},
		{"foo", "foo"},
		{"FooBar2Baz", "Foo Bar 2 Baz"},
		{"mp3player", "mp 3 player"},
		{"HTTPServer", "HTTPServer"}, // no lowercase before the uppercase run
		{"Anne Miller", "Anne Miller"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, insertSmartSpaces(tc.in), "input %q", tc.in)
	}
}

func TestSmartSpaceCanonicalizationIsIdempotent(t *testing.T) {
	for _, in := range []string{"AnneMiller", "FooBar2Baz", "a1b2C3", "already done"} {
		once := insertSmartSpaces(in)
		assert.Equal(t, once, insertSmartSpaces(once), "input %q", in)
	}
}

func TestParseSkipsCanonicalizationWithoutSmartSpaces(t *testing.T) {
	flags := DefaultFlags()
	tokens, err := Parse("-S AnneMiller", flags)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "AnneMiller", tokens[0].Text)
}
