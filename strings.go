// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package commonmark

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isASCIILetter reports whether c is in [A-Za-z].
func isASCIILetter(c byte) bool {
	return 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z'
}

// isASCIIPunctuation reports whether c is one of the 28 ASCII punctuation
// characters that backslash-escapes and entity substitutions are
// restricted to, per https://spec.commonmark.org/0.30/#ascii-punctuation-character.
func isASCIIPunctuation(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	default:
		return false
	}
}

// isSpaceOrTab reports whether c is an ASCII space or tab.
func isSpaceOrTab(c byte) bool {
	return c == ' ' || c == '\t'
}

// isSpaceTabOrLineEnding reports whether c is whitespace that terminates a
// scanner token: space, tab, CR, or LF.
func isSpaceTabOrLineEnding(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// trimLeftSpaceTab trims leading spaces and tabs from s.
func trimLeftSpaceTab(s string) string {
	return strings.TrimLeft(s, " \t")
}

// trimRightSpaceTab trims trailing spaces and tabs from s.
func trimRightSpaceTab(s string) string {
	return strings.TrimRight(s, " \t")
}

// isBlankLine reports whether line consists only of whitespace (spaces,
// tabs, and line endings).
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}

// chopTrailingHashtags removes a trailing run of unescaped '#' characters
// (and the whitespace separating it from the content) from an ATX heading
// line, per https://spec.commonmark.org/0.30/#atx-headings.
func chopTrailingHashtags(s string) string {
	s = trimRightSpaceTab(s)
	trimmed := strings.TrimRight(s, "#")
	if trimmed == s {
		return s
	}
	if trimmed == "" {
		return trimmed
	}
	last := trimmed[len(trimmed)-1]
	if !isSpaceOrTab(last) {
		// The hash run wasn't preceded by whitespace, so it's part of the
		// content (e.g. "foo###").
		return s
	}
	return trimRightSpaceTab(trimmed)
}

// unescapeBackslashes replaces backslash-escaped ASCII punctuation with
// the bare punctuation character, per
// https://spec.commonmark.org/0.30/#backslash-escapes.
func unescapeBackslashes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunctuation(s[i+1]) {
			sb.WriteByte(s[i+1])
			i++
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// unescapeString performs full inline text unescaping used when preparing
// literal content for attributes (link destinations, titles, info
// strings): backslash-escapes are resolved and entities are decoded.
func unescapeString(s string) string {
	if !strings.ContainsAny(s, "\\&") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && isASCIIPunctuation(s[i+1]) {
				sb.WriteByte(s[i+1])
				i += 2
				continue
			}
			sb.WriteByte(s[i])
			i++
		case '&':
			if decoded, n := decodeEntityAt(s[i:]); n > 0 {
				sb.WriteString(decoded)
				i += n
				continue
			}
			sb.WriteByte(s[i])
			i++
		default:
			sb.WriteByte(s[i])
			i++
		}
	}
	return sb.String()
}

// normalizeReferenceLabel case-folds and whitespace-collapses a reference
// label for use as a refmap key, per
// https://spec.commonmark.org/0.30/#matches.
func normalizeReferenceLabel(label string) string {
	fields := strings.Fields(label)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return foldCase(strings.Join(fields, " "))
}

// foldCase applies Unicode simple case folding, matching comrak's use of
// full case folding for reference label comparison.
func foldCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		sb.WriteRune(unicode.ToLower(unicode.ToUpper(r)))
	}
	return sb.String()
}

// cleanURL unescapes and trims a raw link destination for use as a URL.
func cleanURL(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '<' && s[len(s)-1] == '>' {
		s = s[1 : len(s)-1]
	}
	return unescapeString(s)
}

// cleanTitle unescapes a raw link title, stripping its surrounding
// quote/paren delimiters.
func cleanTitle(s string) string {
	if len(s) < 2 {
		return unescapeString(s)
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '(' && last == ')') {
		s = s[1 : len(s)-1]
	}
	return unescapeString(s)
}

// unescapePipe replaces escaped pipe characters with bare pipes, used
// when splitting GFM table rows into cells.
func unescapePipe(s string) string {
	return strings.ReplaceAll(s, `\|`, "|")
}

// collapseWhitespace replaces runs of Unicode whitespace with a single
// space and trims the result, used for table cell text and similar
// normalization per the GFM table spec.
func collapseWhitespace(s string) string {
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// runeWidth1 reports the number of bytes the first rune of s occupies,
// defaulting to 1 for invalid encodings (matching CommonMark's
// byte-for-byte tolerance of malformed UTF-8).
func runeWidth1(s string) int {
	if len(s) == 0 {
		return 0
	}
	_, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return 1
	}
	return n
}
