// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package query

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Token is one compiled query element. Glob is non-nil for glob tokens;
// otherwise Text holds the canonicalized plain-text fragment. Flags is
// the state snapshot taken when the token was parsed.
type Token struct {
	Text  string
	Glob  *Glob
	Flags Flags
}

// Parse splits a free-form query line into compiled tokens, starting from
// the given default flags. Flags encountered in the line mutate the state
// for all subsequent tokens.
func Parse(line string, defaults Flags) ([]Token, error) {
	raw, err := splitQuery(line)
	if err != nil {
		return nil, err
	}
	flags := defaults
	var tokens []Token
	for _, rt := range raw {
		if rt.isFlag {
			if err := applyFlagToken(&flags, rt.text); err != nil {
				return nil, err
			}
			continue
		}
		tok, err := compileToken(rt.text, flags)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// ParseArgs is Parse for pre-split argv tokens, as handed to the locate
// subcommand. Quote processing already happened in the invoking shell.
func ParseArgs(args []string, defaults Flags) ([]Token, error) {
	flags := defaults
	var tokens []Token
	for _, arg := range args {
		if len(arg) > 1 && arg[0] == '-' {
			if err := applyFlagToken(&flags, arg); err != nil {
				return nil, err
			}
			continue
		}
		tok, err := compileToken(arg, flags)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// applyFlagToken handles one "-abc" or "--long" token. Short flags may be
// concatenated: -cls is -c -l -s.
func applyFlagToken(flags *Flags, text string) error {
	if strings.HasPrefix(text, "--") {
		return flags.applyFlag(text[2:])
	}
	for _, r := range text[1:] {
		if err := flags.applyFlag(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// compileToken classifies and compiles one non-flag token under the
// active mode.
func compileToken(text string, flags Flags) (Token, error) {
	glob := false
	switch flags.Mode {
	case ModePlain:
	case ModeGlob:
		glob = true
	default:
		glob = strings.ContainsAny(text, "*?[]{}")
	}
	if glob {
		g, err := CompileGlob(text, flags.CaseSensitive, flags.LiteralSeparator)
		if err != nil {
			return Token{}, err
		}
		return Token{Text: text, Glob: g, Flags: flags}, nil
	}
	// Queries are typed in composed form; filenames on disk may not be.
	text = norm.NFC.String(text)
	if flags.SmartSpaces {
		text = insertSmartSpaces(text)
	}
	return Token{Text: text, Flags: flags}, nil
}

type rawToken struct {
	text   string
	isFlag bool
}

func isQuerySpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// splitQuery splits on whitespace outside double quotes. Within quotes
// the escapes \t \n \r \" and \\ are recognized; any other backslash
// sequence and an unterminated quote are hard errors. Outside quotes a
// backslash has no special meaning.
func splitQuery(line string) ([]rawToken, error) {
	var out []rawToken
	i, n := 0, len(line)
	for i < n {
		for i < n && isQuerySpace(line[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		var sb strings.Builder
		quoted := false
		everQuoted := false
		for i < n {
			c := line[i]
			if !quoted && isQuerySpace(c) {
				break
			}
			switch {
			case c == '"':
				quoted = !quoted
				everQuoted = true
				i++
			case c == '\\' && quoted:
				if i+1 >= n {
					return nil, &ParseError{Input: line[start:], Reason: "unterminated quote"}
				}
				switch line[i+1] {
				case 't':
					sb.WriteByte('\t')
				case 'n':
					sb.WriteByte('\n')
				case 'r':
					sb.WriteByte('\r')
				case '"':
					sb.WriteByte('"')
				case '\\':
					sb.WriteByte('\\')
				default:
					return nil, &ParseError{Input: line[start:], Reason: "invalid escape sequence in quotes"}
				}
				i += 2
			default:
				sb.WriteByte(c)
				i++
			}
		}
		if quoted {
			return nil, &ParseError{Input: line[start:], Reason: "unterminated quote"}
		}
		text := sb.String()
		isFlag := !everQuoted && len(text) > 1 && text[0] == '-'
		out = append(out, rawToken{text: text, isFlag: isFlag})
	}
	return out, nil
}

// insertSmartSpaces converts camel-case boundaries into spaces: an upper
// case letter preceded by a lower case letter or digit, and any
// letter/digit transition, start a new word. Applying it twice is a
// no-op, since an inserted space breaks the triggering adjacency.
func insertSmartSpaces(text string) string {
	var sb strings.Builder
	var prev rune
	for i, r := range text {
		if i > 0 && smartBoundary(prev, r) {
			sb.WriteByte(' ')
		}
		sb.WriteRune(r)
		prev = r
	}
	return sb.String()
}

func smartBoundary(prev, r rune) bool {
	switch {
	case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
		return true
	case unicode.IsDigit(r) && unicode.IsLetter(prev):
		return true
	case unicode.IsLetter(r) && unicode.IsDigit(prev):
		return true
	}
	return false
}
